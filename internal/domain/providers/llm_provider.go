package providers

import "context"

// LLMProvider defines the interface for the generative language service used
// by the triage and specialist lookup flows.
type LLMProvider interface {
	// Generate returns a plain text completion for a prompt
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateGrounded returns a completion grounded in web search results,
	// with the source pages that backed it
	GenerateGrounded(ctx context.Context, prompt string) (*GroundedResponse, error)
}

// GroundedSource is one cited page behind a grounded response
type GroundedSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// GroundedResponse is a completion plus its citations
type GroundedResponse struct {
	Text    string           `json:"text"`
	Sources []GroundedSource `json:"sources"`
}
