package web

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/mkantor/tasklog/internal/errors"
	"github.com/mkantor/tasklog/internal/ops"
)

// PageData holds the fields every page template expects.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "tasks", "search"
}

// ListPageData is the template data for the task list page.
type ListPageData struct {
	PageData
	Items []ops.Item
	Count int
	Order ops.Order
}

// SearchPageData is the template data for the search page.
type SearchPageData struct {
	PageData
	Keyword  string
	Items    []ops.Item
	Count    int
	HasQuery bool
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer owns the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer parses the layout and page templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"renderMarkdown": renderMarkdown,
	}

	// Each page is a clone of the layout with its "content" block filled in.
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"list":   "list.html",
		"search": "search.html",
		"error":  "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// renderPage renders a page with HTTP 200.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a page with the given status code. The page is
// buffered first so a template failure yields a 500 instead of a torn body.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		log.Printf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error page for an operation error.
func (r *Renderer) renderError(w http.ResponseWriter, err error) {
	var jErr *errors.JournalError
	if !stderrors.As(err, &jErr) {
		jErr = errors.NewIOFailure("", err)
	}

	r.renderPageStatus(w, jErr.Status, "error", ErrorPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Error %d", jErr.Status),
			Version: r.version,
		},
		StatusCode: jErr.Status,
		Message:    jErr.Message,
	})
}

// renderMarkdown converts task text to HTML using goldmark. Raw HTML in the
// input is escaped by goldmark's default renderer.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
