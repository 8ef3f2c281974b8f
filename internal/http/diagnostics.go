package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/diagnostics"
)

// DiagnosticsResponse lists recent lookup failures, oldest first.
type DiagnosticsResponse struct {
	Total   uint64              `json:"total"`
	Entries []diagnostics.Entry `json:"entries"`
}

type DiagnosticsController struct {
	ring *diagnostics.Ring
}

func NewDiagnosticsController(ring *diagnostics.Ring) *DiagnosticsController {
	return &DiagnosticsController{ring: ring}
}

func (d *DiagnosticsController) Recent(c *gin.Context) {
	if d.ring == nil {
		c.JSON(http.StatusOK, DiagnosticsResponse{Entries: []diagnostics.Entry{}})
		return
	}
	c.JSON(http.StatusOK, DiagnosticsResponse{
		Total:   d.ring.Total(),
		Entries: d.ring.Snapshot(),
	})
}
