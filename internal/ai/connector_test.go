package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"quota by status", errors.New("API returned unexpected status code: 429"), ErrQuotaExceeded},
		{"quota by message", errors.New("You exceeded your current quota"), ErrQuotaExceeded},
		{"rate limit", errors.New("Rate limit reached for gpt-3.5-turbo"), ErrQuotaExceeded},
		{"auth by status", errors.New("API returned unexpected status code: 401"), ErrAuthentication},
		{"auth by message", errors.New("Incorrect API key provided: sk-****"), ErrAuthentication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyErr(tt.err), tt.want)
		})
	}

	t.Run("transport failure", func(t *testing.T) {
		err := classifyErr(errors.New("dial tcp: connection refused"))
		var netErr NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Contains(t, netErr.Error(), "connection refused")
	})
}

func TestNewConnectorRequiresAPIKey(t *testing.T) {
	// The underlying client falls back to the environment when no token is
	// passed; blank it so the test is hermetic.
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewConnector(ConnectorOptions{Model: "gpt-3.5-turbo"})
	assert.Error(t, err)
}

func TestNewConnector(t *testing.T) {
	conn, err := NewConnector(ConnectorOptions{
		APIKey:  "sk-test",
		Model:   "gpt-3.5-turbo",
		BaseURL: "https://api.groq.com/openai/v1",
	})
	require.NoError(t, err)
	assert.NotNil(t, conn.llm)
}
