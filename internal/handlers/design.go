package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/diewo77/interiorhome/auth"
	"github.com/diewo77/interiorhome/httpx"
	"github.com/diewo77/interiorhome/internal/logger"
	"github.com/diewo77/interiorhome/internal/models"
	"github.com/diewo77/interiorhome/internal/services"
)

// DesignHandler serves the "My Designs" pages. Every route here sits
// behind RequireSession; ownership scoping happens in the service.
type DesignHandler struct {
	Designs *services.DesignService
}

func NewDesignHandler(designs *services.DesignService) *DesignHandler {
	return &DesignHandler{Designs: designs}
}

func (h *DesignHandler) Index(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		httpx.MethodNotAllowed(w, "GET, POST")
	}
}

func (h *DesignHandler) list(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	designs, pg, err := h.Designs.List(sess.UserID(), page)
	if err != nil {
		logger.L.Error().Err(err).Msg("list designs failed")
		renderTemplate(w, r, "designs", map[string]any{"Error": genericError})
		return
	}
	data := map[string]any{
		"Designs":    designs,
		"Page":       pg.Page,
		"TotalPages": pg.TotalPages,
		"Total":      pg.Total,
		"Categories": models.Categories,
		"Form":       sess.PopForm(),
	}
	if r.URL.Query().Get("action") == "edit" {
		id := formUint(r, "id")
		current, err := h.Designs.Get(id, sess.UserID())
		if err != nil {
			sess.FlashError("Design not found or you don't have permission")
			http.Redirect(w, r, "/designs", http.StatusSeeOther)
			return
		}
		data["Current"] = current
	}
	renderTemplate(w, r, "designs", data)
}

func (h *DesignHandler) create(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	if !sess.VerifyCSRF(r.PostFormValue("csrf_token")) {
		sess.FlashError("Invalid form submission")
		http.Redirect(w, r, "/designs", http.StatusSeeOther)
		return
	}
	if _, err := h.Designs.Create(sess.UserID(), designInput(r)); err != nil {
		h.mutationFailed(w, r, sess, err, "/designs")
		return
	}
	sess.FlashSuccess("Design created successfully!")
	http.Redirect(w, r, "/designs", http.StatusSeeOther)
}

func (h *DesignHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	sess := auth.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	id := formUint(r, "id")
	back := fmt.Sprintf("/designs?action=edit&id=%d", id)
	if !sess.VerifyCSRF(r.PostFormValue("csrf_token")) {
		sess.FlashError("Invalid form submission")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	if err := h.Designs.Update(id, sess.UserID(), designInput(r)); err != nil {
		h.mutationFailed(w, r, sess, err, back)
		return
	}
	sess.FlashSuccess("Design updated successfully!")
	http.Redirect(w, r, "/designs", http.StatusSeeOther)
}

func (h *DesignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	sess := auth.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	if !sess.VerifyCSRF(r.PostFormValue("csrf_token")) {
		sess.FlashError("Invalid form submission")
		http.Redirect(w, r, "/designs", http.StatusSeeOther)
		return
	}
	if err := h.Designs.Delete(formUint(r, "id"), sess.UserID()); err != nil {
		if err == services.ErrNotFoundOrForbidden {
			sess.FlashError("Design not found or you don't have permission")
		} else {
			logger.L.Error().Err(err).Msg("delete design failed")
			sess.FlashError(genericError)
		}
		http.Redirect(w, r, "/designs", http.StatusSeeOther)
		return
	}
	sess.FlashSuccess("Design deleted successfully!")
	http.Redirect(w, r, "/designs", http.StatusSeeOther)
}

func (h *DesignHandler) mutationFailed(w http.ResponseWriter, r *http.Request, sess *auth.Session, err error, back string) {
	switch {
	case err == services.ErrNotFoundOrForbidden:
		sess.FlashError("Design not found or you don't have permission")
	default:
		if ve, ok := services.AsValidation(err); ok {
			sess.FlashError(ve.Reason)
		} else {
			logger.L.Error().Err(err).Msg("design mutation failed")
			sess.FlashError(genericError)
		}
	}
	sess.StashForm(url.Values{
		"title":       {r.PostFormValue("title")},
		"description": {r.PostFormValue("description")},
		"image_url":   {r.PostFormValue("image_url")},
		"category":    {r.PostFormValue("category")},
	})
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func designInput(r *http.Request) services.DesignInput {
	return services.DesignInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		ImageURL:    r.PostFormValue("image_url"),
		Category:    r.PostFormValue("category"),
	}
}
