package web

import (
	"net/http"

	"github.com/mkantor/tasklog/internal/config"
	"github.com/mkantor/tasklog/internal/ops"
)

// Handlers contains HTTP route handlers for the web viewer.
type Handlers struct {
	journalFile string
	cfg         *config.Config
	renderer    *Renderer
}

// HandleList handles GET /tasks — list tasks in creation order.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	order := r.URL.Query().Get("order")
	if order == "" {
		order = h.cfg.DefaultOrder
	}

	result, err := ops.List(ops.ListInput{
		JournalFile: h.journalFile,
		Order:       ops.Order(order),
	})
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData: PageData{
			Title:   "Tasks",
			Version: h.renderer.version,
			Nav:     "tasks",
		},
		Items: result.Items,
		Count: result.Count,
		Order: result.Order,
	})
}

// HandleSearch handles GET /tasks/search — keyword search.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	keyword, hasQuery := queryParam(r, "q")

	data := SearchPageData{
		PageData: PageData{
			Title:   "Search",
			Version: h.renderer.version,
			Nav:     "search",
		},
		Keyword:  keyword,
		HasQuery: hasQuery,
	}

	if !hasQuery {
		h.renderer.renderPage(w, "search", data)
		return
	}

	result, err := ops.Search(ops.SearchInput{
		JournalFile: h.journalFile,
		Keyword:     keyword,
	})
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	data.Items = result.Items
	data.Count = result.Count
	h.renderer.renderPage(w, "search", data)
}

// queryParam returns a query parameter and whether it was present at all.
// An empty q is a valid search (it matches every task).
func queryParam(r *http.Request, name string) (string, bool) {
	values := r.URL.Query()
	if _, ok := values[name]; !ok {
		return "", false
	}
	return values.Get(name), true
}
