package catalog

import "context"

// Client looks up volumes in an external book catalog.
type Client interface {
	Lookup(ctx context.Context, query string) ([]RawItem, error)
}

// RawItem is one volume as returned by the catalog. Every field is optional;
// it is read-only and discarded once normalized.
type RawItem struct {
	ID         string     `json:"id,omitempty"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
	SaleInfo   SaleInfo   `json:"saleInfo"`
}

type VolumeInfo struct {
	Title       string      `json:"title,omitempty"`
	Authors     []string    `json:"authors,omitempty"`
	Description string      `json:"description,omitempty"`
	PageCount   *int        `json:"pageCount,omitempty"`
	ImageLinks  *ImageLinks `json:"imageLinks,omitempty"`
}

type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
}

type SaleInfo struct {
	RetailPrice *Price `json:"retailPrice,omitempty"`
}

// Price is a retail price in a given currency.
type Price struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
}

// thumbnail returns the small thumbnail URL the result grid displays.
func (item RawItem) thumbnail() string {
	if item.VolumeInfo.ImageLinks == nil {
		return ""
	}
	return item.VolumeInfo.ImageLinks.SmallThumbnail
}
