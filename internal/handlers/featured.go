package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/diewo77/interiorhome/auth"
	"github.com/diewo77/interiorhome/httpx"
	"github.com/diewo77/interiorhome/internal/logger"
	"github.com/diewo77/interiorhome/internal/services"
)

// AdminHandler curates the featured cards shown on the landing page.
// The whole surface sits behind RequireRole(admin).
type AdminHandler struct {
	Cards *services.CardService
}

func NewAdminHandler(cards *services.CardService) *AdminHandler {
	return &AdminHandler{Cards: cards}
}

func (h *AdminHandler) Index(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.dashboard(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		httpx.MethodNotAllowed(w, "GET, POST")
	}
}

func (h *AdminHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	cards, err := h.Cards.All()
	if err != nil {
		logger.L.Error().Err(err).Msg("list cards failed")
		renderTemplate(w, r, "admin", map[string]any{"Error": genericError})
		return
	}
	data := map[string]any{
		"Cards": cards,
		"Form":  sess.PopForm(),
	}
	if r.URL.Query().Get("action") == "edit" {
		current, err := h.Cards.Get(formUint(r, "id"))
		if err != nil {
			sess.FlashError("Card not found")
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		data["Current"] = current
	}
	renderTemplate(w, r, "admin", data)
}

func (h *AdminHandler) create(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	if !sess.VerifyCSRF(r.PostFormValue("csrf_token")) {
		sess.FlashError("Invalid form submission")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	if _, err := h.Cards.Create(cardInput(r)); err != nil {
		h.mutationFailed(w, r, sess, err, "/admin")
		return
	}
	sess.FlashSuccess("Card created successfully!")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	back := fmt.Sprintf("/admin?action=edit&id=%d", id)
	if !sess.VerifyCSRF(r.PostFormValue("csrf_token")) {
		sess.FlashError("Invalid form submission")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	if err := h.Cards.Update(id, cardInput(r)); err != nil {
		if err == services.ErrNotFoundOrForbidden {
			sess.FlashError("Card not found or no changes made")
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		h.mutationFailed(w, r, sess, err, back)
		return
	}
	sess.FlashSuccess("Card updated successfully!")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	if err := h.Cards.Delete(formUint(r, "id")); err != nil {
		if err == services.ErrNotFoundOrForbidden {
			sess.FlashError("Card not found")
		} else {
			logger.L.Error().Err(err).Msg("delete card failed")
			sess.FlashError(genericError)
		}
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	sess.FlashSuccess("Card deleted successfully!")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) mutationFailed(w http.ResponseWriter, r *http.Request, sess *auth.Session, err error, back string) {
	if ve, ok := services.AsValidation(err); ok {
		sess.FlashError(ve.Reason)
	} else {
		logger.L.Error().Err(err).Msg("card mutation failed")
		sess.FlashError(genericError)
	}
	sess.StashForm(url.Values{
		"title":       {r.PostFormValue("title")},
		"description": {r.PostFormValue("description")},
		"image_url":   {r.PostFormValue("image_url")},
	})
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func cardInput(r *http.Request) services.CardInput {
	return services.CardInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		ImageURL:    r.PostFormValue("image_url"),
	}
}
