package models

// CodeDiff represents the changes to a single file, as returned by the
// GitLab API. The Diff field holds the raw unified diff text.
type CodeDiff struct {
	OldPath   string `json:"old_path"`
	NewPath   string `json:"new_path"`
	Diff      string `json:"diff"`
	IsNew     bool   `json:"new_file"`
	IsRenamed bool   `json:"renamed_file"`
	IsDeleted bool   `json:"deleted_file"`
}

// DiffSet is the ordered list of per-file diffs for one merge request or
// one pushed commit. It lives for a single webhook invocation.
type DiffSet []CodeDiff

// ReviewResult is the Markdown review text produced for one webhook
// invocation, posted back to GitLab verbatim.
type ReviewResult struct {
	Markdown string
	// Fallback is true when the completion call failed and the apology
	// text was posted instead of a generated review.
	Fallback bool
}
