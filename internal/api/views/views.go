package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/isdelr/staff-portal/internal/models"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var files embed.FS

// Pages lists every page template. Each is parsed together with layout.html.
var Pages = []string{
	"login",
	"dashboard",
	"profile",
	"news",
	"news_detail",
	"news_form",
	"employee_form",
	"documents",
	"notifications",
	"activity",
	"error",
}

// Page is the data every template receives.
type Page struct {
	Title       string
	CurrentPage string
	CSRFToken   string
	User        *models.User
	Notice      string
	Error       string
	Data        interface{}
}

// Renderer executes the page templates.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02.01.2006")
	},
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02.01.2006 15:04")
	},
	"ago": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return humanize.Time(t)
	},
	"bytes": func(n int64) string {
		if n <= 0 {
			return ""
		}
		return humanize.Bytes(uint64(n))
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"orNA": func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	},
	"sexLabel": models.SexLabel,
	"roles":    func() []models.Role { return models.Roles },
	"blockedUser": func(n models.Notification) int {
		id, _ := n.BlockedUserID()
		return id
	},
	"add": func(a, b int) int { return a + b },
}

// New parses every page template.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}
	for _, name := range Pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes the named page with the given status code. The page is rendered into a buffer
// first so a template error never produces a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := r.pages[name]
	if !ok {
		log.Error().Str("page", name).Msg("Unknown page template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	page.CurrentPage = name

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		log.Error().Err(err).Str("page", name).Msg("Failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
