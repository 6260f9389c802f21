package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/internal/ai"
	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/internal/api"
	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/internal/config"
	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/internal/gitlab"
	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/internal/review"
)

// ServeCommand returns the CLI command for starting the webhook server
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the review webhook server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port for the webhook server (overrides PORT)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if c.IsSet("port") {
				cfg.Port = c.Int("port")
			}

			// Missing settings are fatal at launch
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}

			gitlabClient, err := gitlab.NewClient(cfg.GitLabURL, cfg.GitLabToken)
			if err != nil {
				return err
			}

			connector, err := ai.NewConnector(ai.ConnectorOptions{
				APIKey:  cfg.OpenAIAPIKey,
				Model:   cfg.OpenAIModel,
				BaseURL: cfg.OpenAIBaseURL,
			})
			if err != nil {
				return err
			}

			service := review.NewService(gitlabClient, gitlabClient, connector)
			server := api.NewServer(cfg, service)

			log.Info().
				Int("port", cfg.Port).
				Str("gitlab_url", cfg.GitLabURL).
				Str("model", cfg.OpenAIModel).
				Msg("Starting review webhook server")

			return server.Start()
		},
	}
}
