package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/catalog"
	"github.com/mrlokans/bookclub/internal/diagnostics"
	"github.com/mrlokans/bookclub/internal/entities"
)

// statusClientClosedRequest is answered when the caller went away mid-lookup.
const statusClientClosedRequest = 499

// VolumesResponse is one stateless lookup, normalized.
type VolumesResponse struct {
	Query string                 `json:"query"`
	Count int                    `json:"count"`
	Books []entities.DisplayBook `json:"books"`
}

// VolumesController runs single lookups outside any session.
type VolumesController struct {
	client catalog.Client
	sink   diagnostics.Sink
}

func NewVolumesController(client catalog.Client, sink diagnostics.Sink) *VolumesController {
	if sink == nil {
		sink = diagnostics.LogSink{}
	}
	return &VolumesController{client: client, sink: sink}
}

// Lookup handles GET /api/volumes?q=. A blank query answers an empty list
// without calling the catalog.
func (v *VolumesController) Lookup(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, VolumesResponse{Books: []entities.DisplayBook{}})
		return
	}

	items, err := v.client.Lookup(c.Request.Context(), query)
	switch {
	case err == nil:
	case errors.Is(err, catalog.ErrCancelled):
		c.AbortWithStatus(statusClientClosedRequest)
		return
	case errors.Is(err, catalog.ErrInvalidResponse):
		items = nil
	case catalog.IsNetworkError(err):
		v.sink.Report("volumes", err)
		respondError(c, http.StatusBadGateway, "catalog_unavailable", err.Error())
		return
	default:
		respondInternalError(c, err, "volumes lookup")
		return
	}

	books := catalog.Normalize(items)
	c.JSON(http.StatusOK, VolumesResponse{
		Query: query,
		Count: len(books),
		Books: books,
	})
}
