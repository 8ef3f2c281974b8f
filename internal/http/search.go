package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/entities"
	"github.com/mrlokans/bookclub/internal/search"
	"github.com/mrlokans/bookclub/internal/session"
)

// SearchController serves the per-session search, both as HTMX pages and as
// a JSON API. Every handler expects SearcherMiddleware to have run.
type SearchController struct{}

func NewSearchController() *SearchController {
	return &SearchController{}
}

type pageData struct {
	State     entities.UIState
	CSRFToken string
}

// bookView is what the "book" template renders for one grid entry.
type bookView struct {
	Index    int
	Book     entities.DisplayBook
	Expanded bool
}

func newBookView(index int, book entities.DisplayBook, expanded bool) bookView {
	return bookView{Index: index, Book: book, Expanded: expanded}
}

// searchRequest is the JSON body of PUT /api/search. An empty query is
// valid and resets the search.
type searchRequest struct {
	Query *string `json:"query"`
}

// --- HTML ---

// Page renders the search page with the session's current state.
func (s *SearchController) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{
		State:     GetSearcher(c).State(),
		CSRFToken: session.GetCSRFToken(c),
	})
}

// Search takes the "q" form field as the new query and renders the results
// fragment, which shows the loader while the lookup runs.
func (s *SearchController) Search(c *gin.Context) {
	ctrl := GetSearcher(c)
	ctrl.SetQuery(c.PostForm("q"))
	c.HTML(http.StatusOK, "results", ctrl.State())
}

// Results renders the current results fragment. The loader polls it.
func (s *SearchController) Results(c *gin.Context) {
	respondHTMXOrJSON(c, http.StatusOK, "results", GetSearcher(c).State())
}

// ToggleEntry expands the clicked entry, or collapses it if it was open. A
// stale index (the list changed under the click) just re-renders.
func (s *SearchController) ToggleEntry(c *gin.Context) {
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}
	ctrl := GetSearcher(c)
	_ = ctrl.Toggle(index)
	c.HTML(http.StatusOK, "results", ctrl.State())
}

// CollapseEntry closes the expanded entry.
func (s *SearchController) CollapseEntry(c *gin.Context) {
	ctrl := GetSearcher(c)
	ctrl.Collapse()
	c.HTML(http.StatusOK, "results", ctrl.State())
}

// --- JSON ---

func (s *SearchController) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, GetSearcher(c).State())
}

// SetQuery starts a lookup cycle and returns the state right after, which
// is Loading for a non-blank query.
func (s *SearchController) SetQuery(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == nil {
		respondBadRequest(c, "body must be a JSON object with a \"query\" string")
		return
	}
	ctrl := GetSearcher(c)
	ctrl.SetQuery(*req.Query)
	c.JSON(http.StatusOK, ctrl.State())
}

func (s *SearchController) Expand(c *gin.Context) {
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}
	ctrl := GetSearcher(c)
	if err := ctrl.Expand(index); err != nil {
		if errors.Is(err, search.ErrIndexOutOfRange) {
			respondError(c, http.StatusBadRequest, "index_out_of_range", err.Error())
			return
		}
		respondInternalError(c, err, "expand")
		return
	}
	c.JSON(http.StatusOK, ctrl.State())
}

func (s *SearchController) Collapse(c *gin.Context) {
	ctrl := GetSearcher(c)
	ctrl.Collapse()
	c.JSON(http.StatusOK, ctrl.State())
}
