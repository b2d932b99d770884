package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/wirehttp-go/internal/handler"
	"github.com/yndnr/wirehttp-go/internal/routeconf"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "Validate the configuration and route declarations without serving",
		Action: check,
	}
}

func check(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "configuration: ok")

	// Route problems are reported here instead of being skipped at startup.
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	entries, err := routeconf.Load(cfg.Server.RoutesFile, quiet)
	if err != nil {
		return fmt.Errorf("load routes: %w", err)
	}

	bad := 0
	for _, e := range entries {
		if !handler.IsKnown(e.Handler) {
			fmt.Fprintf(c.App.Writer, "route %s %s: unknown handler %q\n", e.Method, e.Path, e.Handler)
			bad++
		}
	}

	fmt.Fprintf(c.App.Writer, "routes: %d declared, %d with unknown handlers\n", len(entries), bad)
	if bad > 0 {
		return fmt.Errorf("%d route(s) reference unknown handlers", bad)
	}
	return nil
}
