package catalog

import (
	"strconv"
	"strings"

	"github.com/mrlokans/bookclub/internal/entities"
)

// Normalize turns raw catalog items into display records.
//
// Items without a small thumbnail are dropped first, then items without a
// title. Survivors keep their relative order. Missing descriptions and
// prices become placeholders; Normalize never fails.
func Normalize(items []RawItem) []entities.DisplayBook {
	books := make([]entities.DisplayBook, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.thumbnail()) == "" {
			continue
		}
		if strings.TrimSpace(item.VolumeInfo.Title) == "" {
			continue
		}
		books = append(books, toDisplayBook(item))
	}
	return books
}

func toDisplayBook(item RawItem) entities.DisplayBook {
	book := entities.DisplayBook{
		Title:       item.VolumeInfo.Title,
		Image:       item.thumbnail(),
		Description: item.VolumeInfo.Description,
		Price:       FormatPrice(item.SaleInfo.RetailPrice),
	}
	if book.Description == "" {
		book.Description = entities.DescriptionPlaceholder
	}
	if item.VolumeInfo.PageCount != nil {
		pages := *item.VolumeInfo.PageCount
		book.Pages = &pages
	}
	return book
}

// FormatPrice renders "<amount> <currency>" using the shortest decimal form
// of the amount, or the placeholder when there is no retail price.
func FormatPrice(p *Price) string {
	if p == nil {
		return entities.PricePlaceholder
	}
	amount := strconv.FormatFloat(p.Amount, 'f', -1, 64)
	return strings.TrimSpace(amount + " " + p.CurrencyCode)
}
