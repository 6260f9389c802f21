package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/cmd"
)

const (
	version = "0.1.0"
)

func main() {
	// Values already present in the environment win over .env entries
	godotenv.Load()

	app := &cli.App{
		Name:    "pr-review",
		Usage:   "AI-generated review comments for GitLab merge requests and pushes",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE` (environment variables take precedence)",
			},
		},
		Commands: []*cli.Command{
			cmd.ServeCommand(),
			cmd.ConfigCommand(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
