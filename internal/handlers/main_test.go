package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/diewo77/interiorhome/auth"
	"github.com/diewo77/interiorhome/internal/models"
	"github.com/diewo77/interiorhome/internal/services"
	"github.com/diewo77/interiorhome/view"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testApp wires the handlers behind the same middleware chain the real
// router uses, backed by an in-memory database.
type testApp struct {
	handler  http.Handler
	sessions *auth.Manager
	db       *gorm.DB
	accounts *services.AccountService
	designs  *services.DesignService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	view.SetBaseDir("../../templates")

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Design{}, &models.FeaturedCard{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	accounts := services.NewAccountService(db)
	designs := services.NewDesignService(db)
	cards := services.NewCardService(db)
	sessions := auth.NewManager(0)

	mux := http.NewServeMux()
	NewAuthHandler(accounts, sessions).Register(mux)
	dh := NewDesignHandler(designs)
	mux.Handle("/designs", auth.RequireSession(http.HandlerFunc(dh.Index)))
	mux.Handle("/designs/update", auth.RequireSession(http.HandlerFunc(dh.Update)))
	mux.Handle("/designs/delete", auth.RequireSession(http.HandlerFunc(dh.Delete)))
	ah := NewAdminHandler(cards)
	mux.Handle("/admin", auth.RequireRole(models.RoleAdmin)(http.HandlerFunc(ah.Index)))

	return &testApp{
		handler:  sessions.Middleware(mux),
		sessions: sessions,
		db:       db,
		accounts: accounts,
		designs:  designs,
	}
}

// get performs a GET, carrying the given session cookie if non-empty,
// and returns the recorder plus the (possibly refreshed) cookie value.
func (a *testApp) get(t *testing.T, path, cookie string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: cookie})
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec, pickCookie(rec, cookie)
}

func (a *testApp) post(t *testing.T, path, cookie string, form url.Values) (*httptest.ResponseRecorder, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: cookie})
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec, pickCookie(rec, cookie)
}

// pickCookie returns the session cookie set by the response, falling
// back to the one already held.
func pickCookie(rec *httptest.ResponseRecorder, current string) string {
	// A later Set-Cookie overrides an earlier one for the same name, as
	// in a browser: login responses first start a session and then
	// regenerate its identifier, and only the final value resolves.
	picked := current
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			picked = c.Value
		}
	}
	return picked
}

// session resolves the live server-side session for a cookie value.
func (a *testApp) session(t *testing.T, cookie string) *auth.Session {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: cookie})
	s, ok := a.sessions.Load(req)
	if !ok {
		t.Fatalf("no session for cookie %q", cookie)
	}
	return s
}

// signIn creates an account directly and runs the login flow, returning
// the authenticated cookie.
func (a *testApp) signIn(t *testing.T, username, role string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret99x"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := models.User{Username: username, Email: username + "@example.com", PasswordHash: string(hash), Role: role}
	if err := a.db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	rec, cookie := a.post(t, "/login", "", url.Values{
		"username": {username},
		"password": {"secret99x"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login: expected 303, got %d", rec.Code)
	}
	return cookie
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}
