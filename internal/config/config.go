package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// RequiredVars are the environment variables the service cannot run without.
// The order is fixed so that error messages and the health payload are stable.
var RequiredVars = []string{
	"OPENAI_API_KEY",
	"GITLAB_TOKEN",
	"GITLAB_URL",
	"EXPECTED_GITLAB_TOKEN",
}

// Config represents the application configuration, resolved once at startup
// and passed into each component. Business logic never reads the environment.
type Config struct {
	OpenAIAPIKey  string `koanf:"openai_api_key"`
	OpenAIModel   string `koanf:"openai_api_model"`
	OpenAIBaseURL string `koanf:"openai_api_base"`
	GitLabToken   string `koanf:"gitlab_token"`
	GitLabURL     string `koanf:"gitlab_url"`
	WebhookSecret string `koanf:"expected_gitlab_token"`
	Port          int    `koanf:"port"`
}

// ConfigurationError reports the required settings missing at startup.
type ConfigurationError struct {
	Missing []string
}

func (e ConfigurationError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// LoadConfig loads the configuration from defaults, an optional TOML file
// and the environment, in that order. Environment values win.
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Set up default configuration
	k.Load(confmap.Provider(map[string]interface{}{
		"openai_api_model": "gpt-3.5-turbo",
		"port":             8080,
	}, "."), nil)

	// Load from TOML file if one was given
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}

	// Load from environment variables; keys are the uppercase variable names
	// (OPENAI_API_KEY, GITLAB_TOKEN, ...) lowercased to match the koanf tags.
	// Empty values count as unset and never override file values or defaults.
	k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	}), nil)

	// Unmarshal into Config struct
	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// Validate checks that every required setting is present. It returns a
// ConfigurationError naming each missing variable.
func Validate(config *Config) error {
	var missing []string
	for _, name := range RequiredVars {
		if !config.has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return ConfigurationError{Missing: missing}
	}
	return nil
}

// Presence reports, per required variable, whether a value is set. The
// health endpoint serves this map directly.
func (c *Config) Presence() map[string]bool {
	present := make(map[string]bool, len(RequiredVars))
	for _, name := range RequiredVars {
		present[name] = c.has(name)
	}
	return present
}

func (c *Config) has(name string) bool {
	switch name {
	case "OPENAI_API_KEY":
		return c.OpenAIAPIKey != ""
	case "GITLAB_TOKEN":
		return c.GitLabToken != ""
	case "GITLAB_URL":
		return c.GitLabURL != ""
	case "EXPECTED_GITLAB_TOKEN":
		return c.WebhookSecret != ""
	}
	return false
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	sampleConfig := `# PR review service configuration.
# Every value here can also be set through the environment variable of the
# same name in uppercase; environment values take precedence.

gitlab_url = "https://gitlab.example.com/api/v4"
gitlab_token = "your-gitlab-token"
expected_gitlab_token = "your-webhook-secret"

openai_api_key = "your-openai-api-key"
openai_api_model = "gpt-3.5-turbo"
# openai_api_base = "https://api.groq.com/openai/v1"

port = 8080
`
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}
	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}
