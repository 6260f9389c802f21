package review

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/internal/prompts"
	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/pkg/models"
)

// DiffSource fetches diffs for merge requests and pushed commits.
type DiffSource interface {
	MergeRequestChanges(ctx context.Context, projectID, mrIID int) (models.DiffSet, error)
	CommitDiff(ctx context.Context, projectID int, sha string) (models.DiffSet, error)
}

// CommentSink posts review comments back onto the MR or commit.
type CommentSink interface {
	CreateMergeRequestNote(ctx context.Context, projectID, mrIID int, body string) error
	PostCommitComment(ctx context.Context, projectID int, sha, note string) error
}

// Generator produces review text for a prompt.
type Generator interface {
	Review(ctx context.Context, prompt string) (string, error)
}

// Service represents the review orchestration service. Each call runs the
// fetch → build → review → post chain exactly once; every failure is
// terminal for that single request.
type Service struct {
	source    DiffSource
	sink      CommentSink
	generator Generator
	prompts   *prompts.PromptBuilder
}

// NewService creates a new review service
func NewService(source DiffSource, sink CommentSink, generator Generator) *Service {
	return &Service{
		source:    source,
		sink:      sink,
		generator: generator,
		prompts:   prompts.NewPromptBuilder(),
	}
}

// ReviewMergeRequest fetches the merge request diff, generates a review and
// posts it as an MR note.
func (s *Service) ReviewMergeRequest(ctx context.Context, projectID, mrIID int) (*models.ReviewResult, error) {
	log.Info().
		Int("project_id", projectID).
		Int("mr_iid", mrIID).
		Msg("Reviewing merge request")

	diffs, err := s.source.MergeRequestChanges(ctx, projectID, mrIID)
	if err != nil {
		return nil, fmt.Errorf("fetching merge request changes: %w", err)
	}
	log.Info().Int("files", len(diffs)).Msg("Fetched merge request changes")

	prompt := s.prompts.BuildMergeRequestPrompt(diffs)
	result := s.generate(ctx, prompt, prompts.MergeRequestApology)

	if err := s.sink.CreateMergeRequestNote(ctx, projectID, mrIID, result.Markdown); err != nil {
		return nil, fmt.Errorf("posting merge request note: %w", err)
	}

	log.Info().
		Int("project_id", projectID).
		Int("mr_iid", mrIID).
		Bool("fallback", result.Fallback).
		Msg("Posted merge request review")
	return result, nil
}

// ReviewPush fetches the diff of the pushed head commit, generates a review
// and posts it as a commit comment.
func (s *Service) ReviewPush(ctx context.Context, projectID int, sha string) (*models.ReviewResult, error) {
	log.Info().
		Int("project_id", projectID).
		Str("commit", sha).
		Msg("Reviewing pushed commit")

	diffs, err := s.source.CommitDiff(ctx, projectID, sha)
	if err != nil {
		return nil, fmt.Errorf("fetching commit diff: %w", err)
	}
	log.Info().Int("files", len(diffs)).Msg("Fetched commit diff")

	prompt := s.prompts.BuildPushPrompt(diffs)
	result := s.generate(ctx, prompt, prompts.PushApology)

	if err := s.sink.PostCommitComment(ctx, projectID, sha, result.Markdown); err != nil {
		return nil, fmt.Errorf("posting commit comment: %w", err)
	}

	log.Info().
		Int("project_id", projectID).
		Str("commit", sha).
		Bool("fallback", result.Fallback).
		Msg("Posted commit review")
	return result, nil
}

// generate calls the completion API. When the call fails, the apology text
// is used instead so a comment still gets posted; the failure is recorded
// in the comment and the log, not surfaced as a request error.
func (s *Service) generate(ctx context.Context, prompt, apology string) *models.ReviewResult {
	text, err := s.generator.Review(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("Completion call failed, posting fallback comment")
		return &models.ReviewResult{
			Markdown: prompts.FallbackComment(apology, err),
			Fallback: true,
		}
	}
	return &models.ReviewResult{Markdown: prompts.DecorateComment(text)}
}
