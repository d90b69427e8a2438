// Package view renders HTML pages from the templates directory with a
// shared layout, partials, and session-derived defaults.
package view

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/diewo77/interiorhome/auth"
	"github.com/diewo77/interiorhome/internal/models"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// SetBaseDir overrides the template base directory (useful for tests).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
}

// ResetForTests clears the cache and forces base dir detection to rerun.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
	baseDir = ""
	once = sync.Once{}
}

// Funcs returns the shared template helpers.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"year": func() int { return time.Now().Year() },
		"add":  func(a, b int) int { return a + b },
		"sub":  func(a, b int) int { return a - b },
		// dict builds a map from key-value pairs for partial invocations.
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// Render executes the named page template inside layout.html. Session
// state, CSRF token, and pending flash messages are injected as
// defaults; flash injection consumes the message, so a page renders it
// at most once. All escaping happens here via html/template -- stored
// text is treated as untrusted at every render.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	if baseDir == "" {
		once.Do(detectBase)
	}
	if data == nil {
		data = map[string]any{}
	}
	if s := auth.FromContext(r.Context()); s != nil {
		if _, ok := data["IsLoggedIn"]; !ok {
			data["IsLoggedIn"] = s.Authenticated()
		}
		if _, ok := data["Username"]; !ok {
			data["Username"] = s.Username()
		}
		if _, ok := data["IsAdmin"]; !ok {
			data["IsAdmin"] = s.Role() == models.RoleAdmin
		}
		if _, ok := data["CSRFToken"]; !ok {
			data["CSRFToken"] = s.CSRFToken()
		}
		if _, ok := data["Success"]; !ok {
			if msg, ok := s.PopSuccess(); ok {
				data["Success"] = msg
			}
		}
		if _, ok := data["Error"]; !ok {
			if msg, ok := s.PopError(); ok {
				data["Error"] = msg
			}
		}
	}
	t, err := load(name)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

func load(name string) (*template.Template, error) {
	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && t != nil {
			return t, nil
		}
	}
	files := []string{
		filepath.Join(baseDir, "layout.html"),
		filepath.Join(baseDir, name),
	}
	for _, p := range []string{"navbar.html", "flash.html"} {
		pp := filepath.Join(baseDir, "partials", p)
		if fi, err := os.Stat(pp); err == nil && !fi.IsDir() {
			files = append(files, pp)
		}
	}
	t, err := template.New("layout.html").Funcs(Funcs()).ParseFiles(files...)
	if err != nil {
		return nil, err
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	return t, nil
}
