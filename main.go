package main

import (
	"context"
	"log"
	"os"

	"github.com/mrlokans/bookclub/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	app := cli.NewApp(cli.BuildInfo{Version: Version, Commit: Commit})
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
