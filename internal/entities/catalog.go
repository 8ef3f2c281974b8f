package entities

import "strconv"

// Placeholders substituted when a catalog entry lacks an optional field.
const (
	DescriptionPlaceholder = "No description available"
	PricePlaceholder       = "Price not available"
)

// DisplayBook is a catalog volume normalized for display.
// Title and Image are always non-empty.
type DisplayBook struct {
	Title       string `json:"title"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Pages       *int   `json:"pages,omitempty"`
}

// PagesLabel renders the page count, or an empty string when unknown.
func (b DisplayBook) PagesLabel() string {
	if b.Pages == nil {
		return ""
	}
	return strconv.Itoa(*b.Pages)
}

// Phase is the lifecycle stage of the current lookup cycle.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
)

// NoneExpanded marks that no entry of the result list is expanded.
const NoneExpanded = -1

// UIState is a snapshot of one searcher: the query it last saw, the list on
// display, the lookup phase and which entry (if any) is expanded.
type UIState struct {
	Query    string        `json:"query"`
	Phase    Phase         `json:"phase"`
	Books    []DisplayBook `json:"books"`
	Expanded int           `json:"expanded"`
	// Touched is false until the first non-empty query; the greeting is
	// shown while it stays false.
	Touched bool `json:"touched"`
}

// IsExpanded reports whether the entry at index i is the expanded one.
func (s UIState) IsExpanded(i int) bool {
	return s.Expanded != NoneExpanded && s.Expanded == i
}

// ExpandedBook returns the expanded entry, if any.
func (s UIState) ExpandedBook() (DisplayBook, bool) {
	if s.Expanded < 0 || s.Expanded >= len(s.Books) {
		return DisplayBook{}, false
	}
	return s.Books[s.Expanded], true
}
