package server

import (
	"net/http"
	"time"

	"github.com/diewo77/interiorhome/auth"
	"github.com/diewo77/interiorhome/httpx"
	"github.com/diewo77/interiorhome/internal/handlers"
	"github.com/diewo77/interiorhome/internal/logger"
	"github.com/diewo77/interiorhome/internal/models"
	"github.com/diewo77/interiorhome/internal/services"

	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. Every route runs behind the session middleware; protected
// surfaces add RequireSession or RequireRole on top.
func New(db *gorm.DB, sessions *auth.Manager) http.Handler {
	mux := http.NewServeMux()

	accounts := services.NewAccountService(db)
	designs := services.NewDesignService(db)
	cards := services.NewCardService(db)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(accounts, sessions)
	authHandler.Register(mux)

	// My Designs (owner-scoped CRUD). List/Create via /designs,
	// Update/Delete via dedicated POST routes.
	dh := handlers.NewDesignHandler(designs)
	mux.Handle("/designs", auth.RequireSession(http.HandlerFunc(dh.Index)))
	mux.Handle("/designs/update", auth.RequireSession(http.HandlerFunc(dh.Update)))
	mux.Handle("/designs/delete", auth.RequireSession(http.HandlerFunc(dh.Delete)))

	// Featured cards (admin only, global resource)
	requireAdmin := auth.RequireRole(models.RoleAdmin)
	ah := handlers.NewAdminHandler(cards)
	mux.Handle("/admin", requireAdmin(http.HandlerFunc(ah.Index)))
	mux.Handle("/admin/update", requireAdmin(http.HandlerFunc(ah.Update)))
	mux.Handle("/admin/delete", requireAdmin(http.HandlerFunc(ah.Delete)))

	// Pages
	ph := handlers.NewPagesHandler(accounts, designs, cards)
	mux.Handle("/profile", auth.RequireSession(http.HandlerFunc(ph.Profile)))
	mux.HandleFunc("/developer", ph.Developer)
	mux.HandleFunc("/", ph.Home)

	return sessions.Middleware(withRecover(withLogging(mux)))
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logger.L.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.L.Error().Any("panic", rec).Str("path", r.URL.Path).Msg("recovered")
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
