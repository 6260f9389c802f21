package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ConnectorOptions contains options for creating a connector
type ConnectorOptions struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Connector represents a connection to the completion API. One operation:
// send a prompt, get the generated Markdown back. No retries, no streaming.
type Connector struct {
	llm     llms.Model
	options ConnectorOptions
}

// NewConnector creates a new connector for the configured completion API.
func NewConnector(options ConnectorOptions) (*Connector, error) {
	log.Debug().
		Str("model", options.Model).
		Str("base_url", options.BaseURL).
		Msg("Creating new connector")

	opts := []openai.Option{
		openai.WithToken(options.APIKey),
		openai.WithModel(options.Model),
	}

	// Add custom base URL if provided
	if options.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(options.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion model: %w", err)
	}

	return &Connector{
		llm:     model,
		options: options,
	}, nil
}

// Review sends the prompt to the completion API and returns the generated
// Markdown text.
func (c *Connector) Review(ctx context.Context, prompt string) (string, error) {
	log.Debug().
		Str("model", c.options.Model).
		Int("prompt_chars", len(prompt)).
		Msg("Calling completion API")

	response, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt)
	if err != nil {
		log.Error().Err(err).
			Str("model", c.options.Model).
			Msg("Completion call failed")
		return "", classifyErr(err)
	}

	log.Debug().
		Int("response_chars", len(response)).
		Msg("Completion API responded")

	return strings.TrimSpace(response), nil
}

// classifyErr maps upstream failures onto the connector error kinds.
// Quota detection matches "429"/"quota" the same way credential detection
// matches "401"/"invalid api key"; the upstream libraries only expose the
// status through the error string.
func classifyErr(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit"):
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, err)
	case strings.Contains(msg, "401") || strings.Contains(msg, "invalid api key") || strings.Contains(msg, "incorrect api key"):
		return fmt.Errorf("%w: %s", ErrAuthentication, err)
	default:
		return NetworkError{Err: err}
	}
}
