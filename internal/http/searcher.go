package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/search"
	"github.com/mrlokans/bookclub/internal/session"
)

// ContextKeySearcher is the Gin context key holding the request's controller.
const ContextKeySearcher = "searcher"

// SearcherMiddleware resolves the session's search controller, creating
// one (and binding it to the session) on first use or after eviction.
// The session middleware must run first.
func SearcherMiddleware(registry *search.Registry, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id, ctrl := registry.Acquire(sessions.SearcherID(ctx))
		sessions.BindSearcher(ctx, id)
		c.Set(ContextKeySearcher, ctrl)
		c.Next()
	}
}

// GetSearcher returns the controller set by SearcherMiddleware.
func GetSearcher(c *gin.Context) *search.Controller {
	if v, ok := c.Get(ContextKeySearcher); ok {
		if ctrl, ok := v.(*search.Controller); ok {
			return ctrl
		}
	}
	return nil
}
