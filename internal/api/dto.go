package api

import "github.com/nathanvale/cortex/internal/output"

// SuccessEnvelope wraps every successful response (aliased from the output layer).
type SuccessEnvelope = output.SuccessEnvelope

// ErrorEnvelope wraps every failed response (aliased from the output layer).
type ErrorEnvelope = output.ErrorEnvelope

// DocItem documents the default shape of one entry in a list or search
// response. Unrecognized frontmatter keys are included verbatim.
type DocItem struct {
	Path    string   `json:"path" example:"/home/me/.config/cortex/docs/plans/auth.md" validate:"required"`
	Stem    string   `json:"stem" example:"auth" validate:"required"`
	Title   string   `json:"title,omitempty" example:"Auth design"`
	Type    string   `json:"type,omitempty" example:"plan"`
	Project string   `json:"project,omitempty" example:"cortex"`
	Status  string   `json:"status,omitempty" example:"draft"`
	Tags    []string `json:"tags,omitempty" example:"auth,security"`
	Created string   `json:"created,omitempty" example:"2026-01-31"`
	Updated string   `json:"updated,omitempty" example:"2026-02-01"`
}

// DocDetail is DocItem plus the Markdown body.
type DocDetail struct {
	DocItem
	Body string `json:"body" example:"# Auth design" validate:"required"`
}
