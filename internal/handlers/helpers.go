package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/interiorhome/internal/logger"
	"github.com/diewo77/interiorhome/internal/models"
	"github.com/diewo77/interiorhome/view"
)

// genericError is what users see when the store fails mid-request.
const genericError = "Something went wrong. Please try again later."

// renderTemplate uses the shared view.Render so every page gets the
// layout, partials, and session defaults.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name+".html", data); err != nil {
		logger.L.Error().Err(err).Str("template", name).Msg("render failed")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("template error"))
	}
}

// formUint reads a record id from the form or query string.
func formUint(r *http.Request, field string) uint {
	v := r.FormValue(field)
	if v == "" {
		v = r.URL.Query().Get(field)
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// roleHome is the role-appropriate default landing page.
func roleHome(role string) string {
	if role == models.RoleAdmin {
		return "/admin"
	}
	return "/"
}
