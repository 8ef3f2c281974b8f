package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// SearcherCounter reports how many searchers are live.
type SearcherCounter interface {
	Len() int
}

type HealthController struct {
	searchers        SearcherCounter
	apiKeyConfigured bool
	version          string
}

func NewHealthController(searchers SearcherCounter, apiKeyConfigured bool, version string) *HealthController {
	return &HealthController{
		searchers:        searchers,
		apiKeyConfigured: apiKeyConfigured,
		version:          version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// The catalog answers anonymous requests too, only with a lower quota.
	if h.apiKeyConfigured {
		checks["catalog"] = "ok"
	} else {
		checks["catalog"] = "no api key configured"
	}

	if h.searchers != nil {
		checks["searchers"] = strconv.Itoa(h.searchers.Len())
	} else {
		checks["searchers"] = "not configured"
		status = "unhealthy"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
