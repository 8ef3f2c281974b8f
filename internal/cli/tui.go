package cli

import (
	"context"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	urfave "github.com/urfave/cli/v3"

	"github.com/mrlokans/bookclub/internal/catalog"
	"github.com/mrlokans/bookclub/internal/entrypoint"
	"github.com/mrlokans/bookclub/internal/search"
	"github.com/mrlokans/bookclub/internal/tui"
)

// TUICommand opens the terminal UI, optionally with an initial query.
func TUICommand() *urfave.Command {
	return &urfave.Command{
		Name:      "tui",
		Usage:     "Search interactively in the terminal",
		ArgsUsage: "[query]",
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the terminal UI owns the screen (defaults to TUI_LOG_FILE)",
			},
		},
		Action: func(ctx context.Context, c *urfave.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			logFile := cfg.TUI.LogFile
			if c.String("log-file") != "" {
				logFile = c.String("log-file")
			}
			f, err := tea.LogToFile(logFile, "bookclub")
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer f.Close()

			client := catalog.NewGoogleBooksClient(cfg.Catalog)
			sink, ring := entrypoint.NewSink(cfg.Search)
			ctrl := search.NewController(client, sink, entrypoint.ControllerOptions(cfg.Search)...)
			defer ctrl.Close()

			log.Printf("Terminal UI started")
			if query := strings.Join(c.Args().Slice(), " "); query != "" {
				ctrl.SetQuery(query)
			}
			return tui.Run(ctrl, ring)
		},
	}
}
