package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/wirehttp-go/internal/infra/buildinfo"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "wirehttp-server",
		Usage:   "HTTP/1.1 server built directly on TCP",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
				EnvVars: []string{"WIREHTTP_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			checkCommand(),
			hashpwCommand(),
			versionCommand(),
		},
		DefaultCommand: "serve",
	}
}
