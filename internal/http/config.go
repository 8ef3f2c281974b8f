package http

import (
	"github.com/mrlokans/bookclub/internal/catalog"
	"github.com/mrlokans/bookclub/internal/diagnostics"
	"github.com/mrlokans/bookclub/internal/search"
	"github.com/mrlokans/bookclub/internal/session"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Per-session searchers
	Registry *search.Registry
	Sessions *session.Manager

	// Stateless lookups
	Catalog catalog.Client

	// Failure reporting; Diagnostics is also served at /api/diagnostics
	Sink        diagnostics.Sink
	Diagnostics *diagnostics.Ring

	// CSRF protection for the HTML routes, disabled when empty
	CSRFSecret    []byte
	SecureCookies bool

	// Application info
	Version          string
	APIKeyConfigured bool
}
