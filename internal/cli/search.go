package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	urfave "github.com/urfave/cli/v3"

	"github.com/mrlokans/bookclub/internal/catalog"
	"github.com/mrlokans/bookclub/internal/diagnostics"
	"github.com/mrlokans/bookclub/internal/entities"
	"github.com/mrlokans/bookclub/internal/search"
)

// SearchCommand runs a single lookup cycle and prints the normalized list.
func SearchCommand() *urfave.Command {
	return &urfave.Command{
		Name:      "search",
		Usage:     "Look up books once and print the results",
		ArgsUsage: "<query>",
		Flags: []urfave.Flag{
			&urfave.BoolFlag{
				Name:  "json",
				Usage: "Print results as JSON",
			},
		},
		Action: func(ctx context.Context, c *urfave.Command) error {
			query := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return errors.New("a search query is required")
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			client := catalog.NewGoogleBooksClient(cfg.Catalog)
			state, err := searchOnce(ctx, client, query)
			if err != nil {
				return err
			}
			return printBooks(c.Root().Writer, state.Books, c.Bool("json"))
		},
	}
}

// searchOnce drives a controller through one cycle and returns the settled
// state. Failures the controller would only report are returned here.
func searchOnce(ctx context.Context, client catalog.Client, query string) (entities.UIState, error) {
	ring := diagnostics.NewRing(1)
	ctrl := search.NewController(client, ring)
	defer ctrl.Close()

	settled := make(chan entities.UIState, 1)
	ctrl.OnChange(func(s entities.UIState) {
		if s.Phase != entities.PhaseLoading {
			select {
			case settled <- s:
			default:
			}
		}
	})

	ctrl.SetQuery(query)

	select {
	case <-ctx.Done():
		return entities.UIState{}, ctx.Err()
	case state := <-settled:
		if last, ok := ring.Last(); ok {
			return state, fmt.Errorf("search failed: %s", last.Message)
		}
		return state, nil
	}
}

func printBooks(w io.Writer, books []entities.DisplayBook, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(books)
	}

	if len(books) == 0 {
		fmt.Fprintln(w, "No books found.")
		return nil
	}

	fmt.Fprintf(w, "Found %d books:\n", len(books))
	for i, book := range books {
		pages := "unknown"
		if book.Pages != nil {
			pages = book.PagesLabel()
		}
		fmt.Fprintf(w, "%d. %s\n", i+1, book.Title)
		fmt.Fprintf(w, "   Pages: %s | Recommended retail price: %s\n", pages, book.Price)
		fmt.Fprintf(w, "   %s\n", book.Description)
	}
	return nil
}
