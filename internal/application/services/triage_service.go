package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/medigate/clinic-navigator/internal/domain/providers"
	apperrors "github.com/medigate/clinic-navigator/pkg/errors"
)

const followupPrompt = `あなたは患者の症状を詳しく把握するための質問を考える医療アシスタントです。
患者が「%s」と訴えています。
診断はせず、症状をより正確に把握するために医師が確認すべき追加質問を2〜5個、箇条書きで出力してください。
各質問は1行で、番号をつけてください。
日本語で出力してください。`

const recommendationPrompt = `あなたは適切な診療科を案内する医療ナビゲーターです。
患者の訴え: %s
追加情報: %s

以下の2つを出力してください。診断は絶対にしないでください。

【推奨する診療科】
上記情報に基づき、受診を推奨する診療科を1〜3つ、理由とともに箇条書きで示してください。

【重要な注意】
「このシステムは診断を行いません。正確な診断は医師の診察が必要です。」という旨を、
患者向けに分かりやすい日本語で1〜2文で記載してください。`

const pqrstPrompt = `あなたは医師の診察を補助するメモを作成するアシスタントです。
以下の患者情報から、医師が診察時に参照するPQRST形式のメモを作成してください。

患者の訴え: %s
追加情報: %s

PQRST形式で以下の項目に沿って整理してください。情報が不明な項目は「不明」と記載してください。
- P (誘発・軽減要因): 何をすると悪化/軽減するか
- Q (性質): 症状の性質（鋭い、鈍い、ズキズキ等）
- R (部位・放散): 症状の部位と放散の有無
- S (重症度): 重症度の目安（1-10 scale等）
- T (発症・持続時間): いつから、どれくらい続いているか

日本語で、医師向けの簡潔なメモとして出力してください。`

const disclaimerMarker = "【重要な注意】"
const recommendationMarker = "【推奨する診療科】"

// departmentCandidates are the specialty names the recommendation text is
// scanned for, longest-specific first where it matters.
var departmentCandidates = []string{
	"内科", "呼吸器内科", "消化器内科", "循環器内科", "腎臓内科",
	"小児科", "耳鼻咽喉科", "皮膚科", "整形外科", "外科",
	"婦人科", "泌尿器科", "眼科", "脳神経外科",
	"心療内科", "精神科",
}

// mentalHealthKeywords drive the caller-side exclusion policy: internal
// medicine searches tend to drag in mental-health clinics, so they are
// excluded unless the recommendation itself is mental-health-adjacent.
var mentalHealthKeywords = []string{"心療内科", "精神科", "メンタル"}

// TriageService turns a patient's free-text symptom description into
// follow-up questions, department recommendations, and physician-facing
// notes via the generative language service. It produces the resolved
// include/exclude keyword lists the search engine consumes; keyword policy
// lives here, never in the engine.
type TriageService struct {
	llm providers.LLMProvider
}

// NewTriageService creates a new triage service
func NewTriageService(llm providers.LLMProvider) *TriageService {
	return &TriageService{llm: llm}
}

// FollowupQuestions generates 2-5 clarifying questions for a symptom.
func (s *TriageService) FollowupQuestions(ctx context.Context, symptom string) (string, error) {
	if strings.TrimSpace(symptom) == "" {
		return "", apperrors.NewValidationError("symptom is required")
	}
	text, err := s.llm.Generate(ctx, fmt.Sprintf(followupPrompt, symptom))
	if err != nil {
		return "", apperrors.NewExternalError("failed to generate followup questions", err)
	}
	return strings.TrimSpace(text), nil
}

// DepartmentRecommendation generates a department recommendation and the
// non-diagnosis disclaimer from a symptom plus the patient's answers to the
// follow-up questions.
func (s *TriageService) DepartmentRecommendation(ctx context.Context, symptom, additionalAnswers string) (recommendation, disclaimer string, err error) {
	if strings.TrimSpace(symptom) == "" {
		return "", "", apperrors.NewValidationError("symptom is required")
	}
	text, err := s.llm.Generate(ctx, fmt.Sprintf(recommendationPrompt, symptom, additionalAnswers))
	if err != nil {
		return "", "", apperrors.NewExternalError("failed to generate department recommendation", err)
	}

	text = strings.TrimSpace(text)
	parts := strings.SplitN(text, disclaimerMarker, 2)
	recommendation = strings.TrimSpace(strings.ReplaceAll(parts[0], recommendationMarker, ""))
	if len(parts) > 1 {
		disclaimer = strings.TrimSpace(parts[1])
	}
	return recommendation, disclaimer, nil
}

// PQRSTNotes generates a PQRST-format memo for the examining physician.
func (s *TriageService) PQRSTNotes(ctx context.Context, symptom, additionalAnswers string) (string, error) {
	if strings.TrimSpace(symptom) == "" {
		return "", apperrors.NewValidationError("symptom is required")
	}
	text, err := s.llm.Generate(ctx, fmt.Sprintf(pqrstPrompt, symptom, additionalAnswers))
	if err != nil {
		return "", apperrors.NewExternalError("failed to generate pqrst notes", err)
	}
	return strings.TrimSpace(text), nil
}

// GuessDepartmentKeywords extracts department keywords from a recommendation
// text by candidate matching, falling back to 内科 when nothing matches.
func GuessDepartmentKeywords(recommendation string) []string {
	t := strings.NewReplacer(" ", "", "　", "").Replace(recommendation)

	var hits []string
	for _, c := range departmentCandidates {
		if strings.Contains(t, c) {
			hits = append(hits, c)
		}
	}
	if len(hits) == 0 {
		return []string{"内科"}
	}
	return hits
}

// BuildExcludeDepartments resolves the mental-health exclusion policy for a
// set of requested departments: excluded by default, kept when the request
// itself asks for a mental-health specialty.
func BuildExcludeDepartments(departmentKeywords []string) []string {
	for _, kw := range departmentKeywords {
		for _, m := range mentalHealthKeywords {
			if kw == m {
				return nil
			}
		}
	}
	out := make([]string, len(mentalHealthKeywords))
	copy(out, mentalHealthKeywords)
	return out
}
