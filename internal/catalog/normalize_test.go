package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookclub/internal/entities"
)

func intPtr(v int) *int { return &v }

func volume(title, thumb string) RawItem {
	item := RawItem{VolumeInfo: VolumeInfo{Title: title}}
	if thumb != "" {
		item.VolumeInfo.ImageLinks = &ImageLinks{SmallThumbnail: thumb}
	}
	return item
}

func TestNormalize_Dune(t *testing.T) {
	dune := volume("Dune", "http://img/dune.jpg")
	dune.VolumeInfo.Description = "A desert planet..."
	dune.VolumeInfo.PageCount = intPtr(412)
	dune.SaleInfo.RetailPrice = &Price{Amount: 9.99, CurrencyCode: "USD"}

	noImage := volume("Dune Messiah", "")

	books := Normalize([]RawItem{dune, noImage})

	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "http://img/dune.jpg", books[0].Image)
	assert.Equal(t, "9.99 USD", books[0].Price)
	assert.Equal(t, "A desert planet...", books[0].Description)
	require.NotNil(t, books[0].Pages)
	assert.Equal(t, 412, *books[0].Pages)
}

func TestNormalize_FilterRules(t *testing.T) {
	tests := []struct {
		name   string
		items  []RawItem
		titles []string
	}{
		{"empty input", nil, []string{}},
		{"missing image links", []RawItem{volume("A", "")}, []string{}},
		{"blank thumbnail", []RawItem{volume("A", "   ")}, []string{}},
		{
			"only large thumbnail",
			[]RawItem{{VolumeInfo: VolumeInfo{Title: "A", ImageLinks: &ImageLinks{Thumbnail: "http://img/a"}}}},
			[]string{},
		},
		{"missing title", []RawItem{volume("", "http://img/a")}, []string{}},
		{"whitespace title", []RawItem{volume("  ", "http://img/a")}, []string{}},
		{
			"keeps relative order",
			[]RawItem{
				volume("First", "http://img/1"),
				volume("", "http://img/2"),
				volume("Third", ""),
				volume("Fourth", "http://img/4"),
			},
			[]string{"First", "Fourth"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books := Normalize(tt.items)
			titles := make([]string, 0, len(books))
			for _, b := range books {
				titles = append(titles, b.Title)
				assert.NotEmpty(t, b.Title)
				assert.NotEmpty(t, b.Image)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}

func TestNormalize_Placeholders(t *testing.T) {
	books := Normalize([]RawItem{volume("Bare", "http://img/bare")})

	require.Len(t, books, 1)
	assert.Equal(t, entities.DescriptionPlaceholder, books[0].Description)
	assert.Equal(t, entities.PricePlaceholder, books[0].Price)
	assert.Nil(t, books[0].Pages)
	assert.Equal(t, "", books[0].PagesLabel())
}

func TestNormalize_Idempotent(t *testing.T) {
	full := volume("Full", "http://img/full")
	full.VolumeInfo.PageCount = intPtr(100)
	full.SaleInfo.RetailPrice = &Price{Amount: 12, CurrencyCode: "EUR"}
	items := []RawItem{full, volume("Bare", "http://img/bare"), volume("", "")}

	assert.Equal(t, Normalize(items), Normalize(items))
}

func TestNormalize_PagesAreCopied(t *testing.T) {
	item := volume("Copy", "http://img/c")
	item.VolumeInfo.PageCount = intPtr(10)

	books := Normalize([]RawItem{item})
	*item.VolumeInfo.PageCount = 99

	require.NotNil(t, books[0].Pages)
	assert.Equal(t, 10, *books[0].Pages)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price    *Price
		expected string
	}{
		{nil, entities.PricePlaceholder},
		{&Price{Amount: 9.99, CurrencyCode: "USD"}, "9.99 USD"},
		{&Price{Amount: 10, CurrencyCode: "EUR"}, "10 EUR"},
		{&Price{Amount: 0.5, CurrencyCode: "GBP"}, "0.5 GBP"},
		{&Price{Amount: 7}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPrice(tt.price))
		})
	}
}
