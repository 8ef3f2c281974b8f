package config

import "time"

// Catalog API defaults
const (
	// DefaultCatalogBaseURL is the Google Books API root; lookups hit <base>/volumes.
	DefaultCatalogBaseURL = "https://www.googleapis.com/books/v1"

	// PageSize is the fixed number of volumes requested per lookup.
	PageSize = 40

	// DefaultUserAgent identifies outbound catalog requests.
	DefaultUserAgent = "Bookclub/1.0 (https://github.com/mrlokans/bookclub)"
)

// Search defaults
const (
	DefaultIdleTimeout     = 30 * time.Minute
	DefaultJanitorSchedule = "* * * * *" // every minute
	DefaultTUILogFile      = "bookclub.log"
)
