package llm

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/medigate/clinic-navigator/internal/domain/providers"
	"github.com/medigate/clinic-navigator/pkg/errors"
	"github.com/medigate/clinic-navigator/pkg/retry"
)

// GeminiProvider implements the LLMProvider interface using the Gemini API
type GeminiProvider struct {
	client   *genai.Client
	model    string
	retryCfg retry.Config
}

// NewGeminiProvider creates a new Gemini LLM provider
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.NewValidationError("gemini api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.NewExternalError("failed to create gemini client", err)
	}

	return &GeminiProvider{
		client:   client,
		model:    model,
		retryCfg: retry.DefaultConfig(),
	}, nil
}

// Generate sends a prompt to the model and returns the response text
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.generateWithRetry(ctx, prompt, nil)
	if err != nil {
		return "", errors.NewExternalError("gemini generation failed", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// GenerateGrounded sends a prompt with web search grounding enabled and
// returns the response text together with its cited sources
func (p *GeminiProvider) GenerateGrounded(ctx context.Context, prompt string) (*providers.GroundedResponse, error) {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	resp, err := p.generateWithRetry(ctx, prompt, config)
	if err != nil {
		return nil, errors.NewExternalError("gemini grounded generation failed", err)
	}

	grounded := &providers.GroundedResponse{Text: strings.TrimSpace(resp.Text())}
	for _, candidate := range resp.Candidates {
		if candidate.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			grounded.Sources = append(grounded.Sources, providers.GroundedSource{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		}
	}
	return grounded, nil
}

func (p *GeminiProvider) generateWithRetry(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var resp *genai.GenerateContentResponse
	err := retry.Do(ctx, p.retryCfg, func() error {
		var genErr error
		resp, genErr = p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), config)
		if genErr != nil {
			log.Warn().Err(genErr).Str("model", p.model).Msg("Gemini request failed, retrying")
		}
		return genErr
	})
	return resp, err
}
