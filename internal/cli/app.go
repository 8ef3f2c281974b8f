package cli

import (
	"context"
	"fmt"

	urfave "github.com/urfave/cli/v3"

	"github.com/mrlokans/bookclub/internal/config"
	"github.com/mrlokans/bookclub/internal/entrypoint"
)

// BuildInfo is stamped at build time via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
}

// NewApp builds the root command. Without a subcommand it serves the web UI.
func NewApp(build BuildInfo) *urfave.Command {
	serve := ServeCommand(build)
	return &urfave.Command{
		Name:  "bookclub",
		Usage: "Search the Google Books catalog from the browser or the terminal",
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:  "config",
				Usage: "Optional configuration file layered under the environment",
			},
		},
		Action: serve.Action,
		Commands: []*urfave.Command{
			serve,
			TUICommand(),
			SearchCommand(),
			VersionCommand(build),
		},
	}
}

// ServeCommand starts the web server.
func ServeCommand(build BuildInfo) *urfave.Command {
	return &urfave.Command{
		Name:  "serve",
		Usage: "Start the HTTP server (default if no command given)",
		Action: func(ctx context.Context, c *urfave.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			entrypoint.Run(cfg, build.Version)
			return nil
		},
	}
}

// VersionCommand prints build information.
func VersionCommand(build BuildInfo) *urfave.Command {
	return &urfave.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(ctx context.Context, c *urfave.Command) error {
			fmt.Fprintf(c.Root().Writer, "bookclub %s (%s)\n", build.Version, build.Commit)
			return nil
		},
	}
}

func loadConfig(c *urfave.Command) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
