package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/pkg/models"
)

// Client talks to the GitLab REST API. Merge request changes and notes go
// through a plain HTTP client against the plural merge_requests endpoints
// (the official client has endpoint issues there); the commit diff and
// commit comment operations use the official client.
//
// There is no retry logic anywhere: a failure is reported upward immediately.
type Client struct {
	baseURL  string
	token    string
	client   *http.Client
	official *gitlab.Client
}

// NewClient creates a GitLab client for the given base URL. The URL may be
// the instance root or the full API prefix; "/api/v4" is appended when absent.
func NewClient(rawURL, token string) (*Client, error) {
	baseURL := strings.TrimRight(rawURL, "/")
	if !strings.HasSuffix(baseURL, "/api/v4") {
		baseURL = baseURL + "/api/v4"
	}

	official, err := gitlab.NewClient(token,
		gitlab.WithBaseURL(baseURL),
		gitlab.WithoutRetries(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return &Client{
		baseURL:  baseURL,
		token:    token,
		client:   &http.Client{},
		official: official,
	}, nil
}

// mergeRequestChanges mirrors the /changes response shape.
type mergeRequestChanges struct {
	ID      int               `json:"id"`
	IID     int               `json:"iid"`
	Changes []models.CodeDiff `json:"changes"`
}

// MergeRequestChanges fetches the per-file diffs of a merge request.
func (c *Client) MergeRequestChanges(ctx context.Context, projectID, mrIID int) (models.DiffSet, error) {
	requestURL := fmt.Sprintf("%s/projects/%d/merge_requests/%d/changes", c.baseURL, projectID, mrIID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("PRIVATE-TOKEN", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var changes mergeRequestChanges
	if err := json.NewDecoder(resp.Body).Decode(&changes); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return models.DiffSet(changes.Changes), nil
}

// CreateMergeRequestNote posts a comment on a merge request.
func (c *Client) CreateMergeRequestNote(ctx context.Context, projectID, mrIID int, body string) error {
	requestURL := fmt.Sprintf("%s/projects/%d/merge_requests/%d/notes", c.baseURL, projectID, mrIID)

	form := url.Values{}
	form.Add("body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("PRIVATE-TOKEN", c.token)
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return statusError(resp)
	}

	return nil
}

// CommitDiff fetches the per-file diffs of a single commit.
func (c *Client) CommitDiff(ctx context.Context, projectID int, sha string) (models.DiffSet, error) {
	diffs, resp, err := c.official.Commits.GetCommitDiff(projectID, sha, &gitlab.GetCommitDiffOptions{}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, officialError(resp, err)
	}

	set := make(models.DiffSet, 0, len(diffs))
	for _, diff := range diffs {
		set = append(set, models.CodeDiff{
			OldPath:   diff.OldPath,
			NewPath:   diff.NewPath,
			Diff:      diff.Diff,
			IsNew:     diff.NewFile,
			IsRenamed: diff.RenamedFile,
			IsDeleted: diff.DeletedFile,
		})
	}

	return set, nil
}

// PostCommitComment posts a comment on a commit.
func (c *Client) PostCommitComment(ctx context.Context, projectID int, sha, note string) error {
	opt := &gitlab.PostCommitCommentOptions{Note: gitlab.Ptr(note)}
	_, resp, err := c.official.Commits.PostCommitComment(projectID, sha, opt, gitlab.WithContext(ctx))
	if err != nil {
		return officialError(resp, err)
	}
	return nil
}

// statusError maps an unexpected HTTP status onto the client error kinds.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status %d: %s", ErrAuthentication, resp.StatusCode, strings.TrimSpace(string(body)))
	case http.StatusNotFound:
		return fmt.Errorf("%w: status %d: %s", ErrNotFound, resp.StatusCode, strings.TrimSpace(string(body)))
	default:
		return NetworkError{Err: fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}
}

// officialError maps errors from the official client onto the same kinds.
func officialError(resp *gitlab.Response, err error) error {
	if resp == nil {
		return NetworkError{Err: err}
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuthentication, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, err)
	default:
		return NetworkError{Err: err}
	}
}
