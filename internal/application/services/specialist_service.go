package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/medigate/clinic-navigator/internal/domain/providers"
	apperrors "github.com/medigate/clinic-navigator/pkg/errors"
)

const specialistPrompt = `以下の医療機関について、専門医・認定医・学会認定・指導医などの情報をウェブで調べ、ソース（参照したURL）を明示できる形で簡潔にまとめてください。

- 医療機関名: %s
- 公式HP: %s
- 標ぼう科目: %s

ルール:
- 見つかった情報は箇条書きで、どのサイトの情報か分かるように記載してください。
- 情報がまったく見つからない場合は「公表されている専門医・認定医の情報は見つかりませんでした」と記載してください。
- 推測や創作はせず、検索結果に基づく事実のみを記載してください。
- 日本語で回答してください。`

// SpecialistService looks up board-certification and society-accreditation
// information for a clinic through the web-search-grounded generative
// service, returning the summary together with its cited sources.
type SpecialistService struct {
	llm providers.LLMProvider
}

// NewSpecialistService creates a new specialist lookup service
func NewSpecialistService(llm providers.LLMProvider) *SpecialistService {
	return &SpecialistService{llm: llm}
}

// Lookup researches a clinic's specialist credentials.
func (s *SpecialistService) Lookup(ctx context.Context, clinicName, clinicURL, departments string) (*providers.GroundedResponse, error) {
	if strings.TrimSpace(clinicName) == "" {
		return nil, apperrors.NewValidationError("clinic name is required")
	}
	if clinicURL == "" {
		clinicURL = "不明"
	}
	if departments == "" {
		departments = "不明"
	}

	resp, err := s.llm.GenerateGrounded(ctx, fmt.Sprintf(specialistPrompt, clinicName, clinicURL, departments))
	if err != nil {
		return nil, apperrors.NewExternalError("specialist lookup failed", err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		resp.Text = "情報を取得できませんでした。"
	}
	return resp, nil
}
