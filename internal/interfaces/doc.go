// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## External Service Interfaces
//
//   - catalog.Client: volume lookups against a book catalog (internal/catalog/types.go)
//
// ## Failure Reporting
//
//   - diagnostics.Sink: receives lookup failures that are not shown to the user
//     (internal/diagnostics/sink.go)
//   - tui.FailureLog: most recent failure for the terminal status line
//
// ## Front-end Interfaces
//
//   - tui.Searcher / tui.Observable: what the terminal UI needs from a
//     search controller (internal/tui/model.go, internal/tui/program.go)
//   - http.SearcherCounter: live searcher count for /health
//   - scheduler.Evicter: idle searcher eviction driven by the janitor
//
// # Adding a New Catalog
//
// To search a different catalog (e.g. OpenLibrary):
//
//  1. Implement catalog.Client in internal/catalog/, mapping the catalog's
//     documents onto catalog.RawItem so the normalizer rules still apply:
//
//     type OpenLibraryClient struct {
//         httpClient *http.Client
//     }
//
//     func (c *OpenLibraryClient) Lookup(ctx context.Context, query string) ([]RawItem, error)
//
//     var _ Client = (*OpenLibraryClient)(nil)
//
//  2. Return catalog.ErrCancelled when ctx is done and *catalog.NetworkError
//     for transport or status failures.
//
//  3. Construct it in entrypoint.go instead of the Google Books client.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
