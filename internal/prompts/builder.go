package prompts

import (
	"fmt"
	"strings"

	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/pkg/models"
)

// PromptBuilder provides methods for building the review prompts. It is a
// pure function of the DiffSet: identical input yields identical text.
type PromptBuilder struct{}

// NewPromptBuilder creates a new prompt builder instance
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMergeRequestPrompt generates the review prompt for a merge request.
func (pb *PromptBuilder) BuildMergeRequestPrompt(diffs models.DiffSet) string {
	return pb.build(MergeRequestSystemRole, MergeRequestPreamble, MergeRequestQuestions, diffs)
}

// BuildPushPrompt generates the review prompt for a pushed commit.
func (pb *PromptBuilder) BuildPushPrompt(diffs models.DiffSet) string {
	return pb.build(PushSystemRole, PushPreamble, PushQuestions, diffs)
}

func (pb *PromptBuilder) build(system, preamble, questions string, diffs models.DiffSet) string {
	var prompt strings.Builder

	prompt.WriteString(system)
	prompt.WriteString("\n\n")
	prompt.WriteString(preamble)
	prompt.WriteString("\n\n")

	if len(diffs) == 0 {
		prompt.WriteString(NoChangesMarker)
		prompt.WriteString("\n\n")
	} else {
		pb.addCodeDiffs(&prompt, diffs)
	}

	prompt.WriteString(questions)
	prompt.WriteString("\n\n")
	prompt.WriteString(MarkdownStyle)

	return prompt.String()
}

// addCodeDiffs adds the actual code changes to the prompt
func (pb *PromptBuilder) addCodeDiffs(prompt *strings.Builder, diffs models.DiffSet) {
	for _, diff := range diffs {
		prompt.WriteString(fmt.Sprintf("%s%s\n", FilePrefix, diff.NewPath))

		if diff.IsNew {
			prompt.WriteString(NewFileMarker + "\n")
		} else if diff.IsDeleted {
			prompt.WriteString(DeletedFileMarker + "\n")
		} else if diff.IsRenamed {
			prompt.WriteString(fmt.Sprintf("%s%s%s\n", RenamedFilePrefix, diff.OldPath, RenamedFileSuffix))
		}
		prompt.WriteString("\n")

		prompt.WriteString("```diff\n")
		prompt.WriteString(strings.TrimRight(diff.Diff, "\n"))
		prompt.WriteString("\n```\n\n")
	}
}

// DecorateComment appends the fixed signature line to generated review text.
func DecorateComment(markdown string) string {
	return strings.TrimSpace(markdown) + "\n\n" + CommentSignature
}

// FallbackComment builds the comment posted when the completion call fails:
// the apology, the signature and the upstream error for the record.
func FallbackComment(apology string, err error) string {
	return apology + "\n\n" + CommentSignature + "\n\n" + fmt.Sprintf("Error: %s", err)
}
