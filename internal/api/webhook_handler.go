package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// EventKind is the closed set of webhook event types the handler knows.
type EventKind int

const (
	EventUnrecognized EventKind = iota
	EventMergeRequest
	EventPush
)

// eventKindOf maps GitLab's object_kind string onto the closed variant.
func eventKindOf(objectKind string) EventKind {
	switch objectKind {
	case "merge_request":
		return EventMergeRequest
	case "push":
		return EventPush
	default:
		return EventUnrecognized
	}
}

// WebhookPayload represents the structure of GitLab webhook payloads. Only
// the fields the handler dispatches on are mapped: merge request events
// carry project.id and object_attributes.iid, push events carry the
// project id and head SHA at the top level.
type WebhookPayload struct {
	ObjectKind       string           `json:"object_kind"`
	ProjectID        int              `json:"project_id"`
	After            string           `json:"after"`
	Project          Project          `json:"project"`
	ObjectAttributes ObjectAttributes `json:"object_attributes"`
}

// Project represents a GitLab project
type Project struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	PathWithNamespace string `json:"path_with_namespace"`
}

// ObjectAttributes represents the object_attributes field in merge request
// webhook payloads
type ObjectAttributes struct {
	IID    int    `json:"iid"`
	Title  string `json:"title"`
	State  string `json:"state"`
	Action string `json:"action"`
}

// WebhookHandler handles incoming GitLab webhook events. The shared secret
// is checked before anything else; a mismatch ends the request with 401 and
// no upstream call.
func (s *Server) WebhookHandler(c echo.Context) error {
	token := c.Request().Header.Get("X-Gitlab-Token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.WebhookSecret)) != 1 {
		log.Warn().Msg("Webhook token mismatch, rejecting")
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "unauthorized",
		})
	}

	var payload WebhookPayload
	if err := c.Bind(&payload); err != nil {
		log.Error().Err(err).Msg("Failed to parse webhook payload")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid webhook payload",
		})
	}

	log.Info().
		Str("object_kind", payload.ObjectKind).
		Str("project", payload.Project.PathWithNamespace).
		Msg("Received GitLab webhook")

	switch eventKindOf(payload.ObjectKind) {
	case EventMergeRequest:
		return s.handleMergeRequest(c, payload)
	case EventPush:
		return s.handlePush(c, payload)
	default:
		// Acknowledge receipt, do nothing
		log.Info().Str("object_kind", payload.ObjectKind).Msg("Unsupported event type, ignoring")
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ignored",
		})
	}
}

// handleMergeRequest reviews newly opened merge requests. Every other MR
// action (update, close, merge, ...) is acknowledged without processing.
func (s *Server) handleMergeRequest(c echo.Context, payload WebhookPayload) error {
	action := payload.ObjectAttributes.Action
	if action != "open" {
		log.Info().Str("action", action).Msg("Merge request action is not open, ignoring")
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ignored",
		})
	}

	projectID := payload.Project.ID
	mrIID := payload.ObjectAttributes.IID

	if _, err := s.reviews.ReviewMergeRequest(c.Request().Context(), projectID, mrIID); err != nil {
		log.Error().Err(err).
			Int("project_id", projectID).
			Int("mr_iid", mrIID).
			Msg("Merge request review failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "internal error",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "reviewed",
	})
}

// handlePush reviews the head commit of a push.
func (s *Server) handlePush(c echo.Context, payload WebhookPayload) error {
	projectID := payload.ProjectID
	if projectID == 0 {
		projectID = payload.Project.ID
	}
	sha := payload.After

	if _, err := s.reviews.ReviewPush(c.Request().Context(), projectID, sha); err != nil {
		log.Error().Err(err).
			Int("project_id", projectID).
			Str("commit", sha).
			Msg("Push review failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "internal error",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "reviewed",
	})
}
