package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

// TemplateEngine loads and renders the embedded HTML templates. Each
// page template is parsed together with the shared layout and the legal
// text partials so the layout wraps every page.
type TemplateEngine struct {
	templates map[string]*template.Template
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"lower":    strings.ToLower,
		"upper":    strings.ToUpper,
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"date": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.UTC().Format("2006-01-02")
		},
	}
}

// NewTemplateEngine parses all embedded templates and returns a
// ready-to-use engine.
func NewTemplateEngine() (*TemplateEngine, error) {
	funcs := templateFuncs()

	pages := []string{
		"home.html",
		"legalcode.html",
		"deed.html",
		"dev_index.html",
		"translation_status.html",
		"branch_status.html",
		"error.html",
	}

	engine := &TemplateEngine{
		templates: make(map[string]*template.Template),
	}

	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/partials/*.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		engine.templates[page] = t
	}

	return engine, nil
}

// Page wraps a view payload with the chrome the layout needs.
type Page struct {
	Title string
	Data  any
}

// Render executes the named template and writes the result to w with a
// text/html content type.
func (e *TemplateEngine) Render(w http.ResponseWriter, name string, page Page) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, "layout.html", page)
}

// RenderTo executes the named template to an arbitrary writer. Used by
// the static publisher and by tests.
func (e *TemplateEngine) RenderTo(w io.Writer, name string, page Page) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return t.ExecuteTemplate(w, "layout.html", page)
}
