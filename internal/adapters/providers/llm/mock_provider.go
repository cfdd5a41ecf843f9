package llm

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/medigate/clinic-navigator/internal/domain/providers"
)

// MockProvider implements the LLMProvider interface with canned responses.
// It lets the API run end to end without a Gemini API key.
type MockProvider struct{}

// NewMockProvider creates a new mock LLM provider
func NewMockProvider() *MockProvider {
	log.Warn().Msg("Using mock LLM provider; set GEMINI_API_KEY for real responses")
	return &MockProvider{}
}

// Generate returns a canned response shaped like the real triage output
func (p *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "【推奨する診療科】") {
		return "症状から判断して、まずは内科の受診をおすすめします。\n\n【推奨する診療科】内科", nil
	}
	return "1. いつ頃から症状がありますか?\n2. 症状の強さはどの程度ですか?\n3. 他に気になる症状はありますか?", nil
}

// GenerateGrounded returns a canned grounded response with no sources
func (p *MockProvider) GenerateGrounded(ctx context.Context, prompt string) (*providers.GroundedResponse, error) {
	return &providers.GroundedResponse{Text: "不明"}, nil
}
