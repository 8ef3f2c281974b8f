package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookclub/internal/catalog"
	"github.com/mrlokans/bookclub/internal/diagnostics"
	"github.com/mrlokans/bookclub/internal/http"
	"github.com/mrlokans/bookclub/internal/scheduler"
	"github.com/mrlokans/bookclub/internal/search"
	"github.com/mrlokans/bookclub/internal/tui"
)

// =============================================================================
// External Services
// =============================================================================

// Catalog implementations
var _ catalog.Client = (*catalog.GoogleBooksClient)(nil)

// =============================================================================
// Diagnostics
// =============================================================================

var _ diagnostics.Sink = diagnostics.LogSink{}
var _ diagnostics.Sink = (*diagnostics.Ring)(nil)
var _ diagnostics.Sink = diagnostics.Multi(nil)
var _ tui.FailureLog = (*diagnostics.Ring)(nil)

// =============================================================================
// Searchers
// =============================================================================

var _ tui.Searcher = (*search.Controller)(nil)
var _ tui.Observable = (*search.Controller)(nil)
var _ scheduler.Evicter = (*search.Registry)(nil)
var _ http.SearcherCounter = (*search.Registry)(nil)
