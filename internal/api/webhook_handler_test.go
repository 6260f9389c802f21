package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/internal/config"
	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/pkg/models"
)

const testSecret = "hook-secret"

// fakeReviewer records the chain invocations the handler triggers.
type fakeReviewer struct {
	mrCalls   int
	pushCalls int
	projectID int
	mrIID     int
	sha       string
	err       error
}

func (f *fakeReviewer) ReviewMergeRequest(ctx context.Context, projectID, mrIID int) (*models.ReviewResult, error) {
	f.mrCalls++
	f.projectID = projectID
	f.mrIID = mrIID
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReviewResult{Markdown: "## Revisión"}, nil
}

func (f *fakeReviewer) ReviewPush(ctx context.Context, projectID int, sha string) (*models.ReviewResult, error) {
	f.pushCalls++
	f.projectID = projectID
	f.sha = sha
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReviewResult{Markdown: "## Revisión"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		OpenAIAPIKey:  "sk-test",
		OpenAIModel:   "gpt-3.5-turbo",
		GitLabToken:   "glpat-test",
		GitLabURL:     "https://gitlab.example.com/api/v4",
		WebhookSecret: testSecret,
		Port:          8080,
	}
}

// postWebhook drives the webhook handler directly with the given body/token.
func postWebhook(t *testing.T, s *Server, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("X-Gitlab-Token", token)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	require.NoError(t, s.WebhookHandler(c))
	return rec
}

const mergeRequestOpenBody = `{
	"object_kind": "merge_request",
	"project": {"id": 42, "name": "demo", "path_with_namespace": "group/demo"},
	"object_attributes": {"iid": 7, "action": "open", "state": "opened", "title": "Add feature"}
}`

const pushBody = `{
	"object_kind": "push",
	"project_id": 42,
	"after": "abc123",
	"project": {"id": 42, "name": "demo"}
}`

func TestWebhookRejectsBadToken(t *testing.T) {
	reviewer := &fakeReviewer{}
	s := NewServer(testConfig(), reviewer)

	rec := postWebhook(t, s, "wrong-token", mergeRequestOpenBody)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, reviewer.mrCalls)
	assert.Zero(t, reviewer.pushCalls)
}

func TestWebhookRejectsMissingToken(t *testing.T) {
	reviewer := &fakeReviewer{}
	s := NewServer(testConfig(), reviewer)

	rec := postWebhook(t, s, "", mergeRequestOpenBody)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, reviewer.mrCalls)
}

func TestWebhookMergeRequestOpen(t *testing.T) {
	reviewer := &fakeReviewer{}
	s := NewServer(testConfig(), reviewer)

	rec := postWebhook(t, s, testSecret, mergeRequestOpenBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, reviewer.mrCalls)
	assert.Equal(t, 42, reviewer.projectID)
	assert.Equal(t, 7, reviewer.mrIID)
	assert.Zero(t, reviewer.pushCalls)
	assert.Contains(t, rec.Body.String(), "reviewed")
}

func TestWebhookMergeRequestNonOpenActionIgnored(t *testing.T) {
	body := strings.Replace(mergeRequestOpenBody, `"action": "open"`, `"action": "update"`, 1)
	reviewer := &fakeReviewer{}
	s := NewServer(testConfig(), reviewer)

	rec := postWebhook(t, s, testSecret, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, reviewer.mrCalls)
	assert.Contains(t, rec.Body.String(), "ignored")
}

func TestWebhookPush(t *testing.T) {
	reviewer := &fakeReviewer{}
	s := NewServer(testConfig(), reviewer)

	rec := postWebhook(t, s, testSecret, pushBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, reviewer.pushCalls)
	assert.Equal(t, 42, reviewer.projectID)
	assert.Equal(t, "abc123", reviewer.sha)
	assert.Zero(t, reviewer.mrCalls)
}

func TestWebhookUnrecognizedKindAcknowledged(t *testing.T) {
	reviewer := &fakeReviewer{}
	s := NewServer(testConfig(), reviewer)

	rec := postWebhook(t, s, testSecret, `{"object_kind": "note"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, reviewer.mrCalls)
	assert.Zero(t, reviewer.pushCalls)
	assert.Contains(t, rec.Body.String(), "ignored")
}

func TestWebhookMalformedJSON(t *testing.T) {
	reviewer := &fakeReviewer{}
	s := NewServer(testConfig(), reviewer)

	rec := postWebhook(t, s, testSecret, `{"object_kind": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, reviewer.mrCalls)
}

func TestWebhookReviewFailureIsServerError(t *testing.T) {
	reviewer := &fakeReviewer{err: errors.New("gitlab: not found")}
	s := NewServer(testConfig(), reviewer)

	rec := postWebhook(t, s, testSecret, mergeRequestOpenBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, reviewer.mrCalls)
	assert.Contains(t, rec.Body.String(), "internal error")
}

func TestEventKindOf(t *testing.T) {
	assert.Equal(t, EventMergeRequest, eventKindOf("merge_request"))
	assert.Equal(t, EventPush, eventKindOf("push"))
	assert.Equal(t, EventUnrecognized, eventKindOf("note"))
	assert.Equal(t, EventUnrecognized, eventKindOf(""))
}
