package handlers

import (
	"net/http"

	"github.com/diewo77/interiorhome/auth"
	"github.com/diewo77/interiorhome/httpx"
	"github.com/diewo77/interiorhome/internal/logger"
	"github.com/diewo77/interiorhome/internal/services"
)

// PagesHandler serves the landing, profile, and developer pages.
type PagesHandler struct {
	Accounts *services.AccountService
	Designs  *services.DesignService
	Cards    *services.CardService
}

func NewPagesHandler(accounts *services.AccountService, designs *services.DesignService, cards *services.CardService) *PagesHandler {
	return &PagesHandler{Accounts: accounts, Designs: designs, Cards: cards}
}

// Home renders the public landing page with the newest featured cards.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	cards, err := h.Cards.Recent(services.HomeCardCount)
	if err != nil {
		logger.L.Error().Err(err).Msg("load featured cards failed")
		renderTemplate(w, r, "home", map[string]any{"Error": genericError})
		return
	}
	renderTemplate(w, r, "home", map[string]any{"Cards": cards})
}

// Profile shows the logged-in user's account details and design count.
func (h *PagesHandler) Profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	sess := auth.FromContext(r.Context())
	user, err := h.Accounts.Get(sess.UserID())
	if err != nil {
		logger.L.Error().Err(err).Msg("load profile failed")
		renderTemplate(w, r, "profile", map[string]any{"Error": genericError})
		return
	}
	count, err := h.Designs.CountForUser(sess.UserID())
	if err != nil {
		logger.L.Error().Err(err).Msg("count designs failed")
	}
	renderTemplate(w, r, "profile", map[string]any{"User": user, "DesignCount": count})
}

// Developer is a public static page.
func (h *PagesHandler) Developer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	renderTemplate(w, r, "developer", nil)
}
