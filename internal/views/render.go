// Package views serves the server-rendered employee pages.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"login.html", "dashboard.html", "fleet.html"}

// titleCase upper-cases the first letter of each word. Casers are not safe
// for concurrent use, so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

var funcs = template.FuncMap{
	"statusLabel": func(s any) string { return titleCase(fmt.Sprint(s)) },
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"coords": func(lat, lng *float64) string {
		if lat == nil || lng == nil {
			return ""
		}
		return fmt.Sprintf("%.5f, %.5f", *lat, *lng)
	},
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// render executes into a buffer first so a template error never leaves a
// half-written page. Errors writing to the client are not reported.
func (r *renderer) render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
	return nil
}
