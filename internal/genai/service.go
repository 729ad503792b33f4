package genai

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
)

// Service exposes the generation operations over a Client. It owns the
// prompt templates and the lenient response handling; transport and
// configuration problems are the only errors it returns.
type Service struct {
	client Client
}

// NewService wraps a client.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// Result is the generic outcome of a generation operation. Payload is nil
// when the model reply carried no parseable JSON; Raw always holds the full
// reply text.
type Result struct {
	RequestID uuid.UUID      `json:"request_id"`
	Parsed    bool           `json:"parsed"`
	Payload   map[string]any `json:"payload,omitempty"`
	Raw       string         `json:"raw"`
}

func (s *Service) run(ctx context.Context, prompt string, maxTokens int) (*Result, error) {
	completion, err := s.client.Complete(ctx, prompt, maxTokens)
	if err != nil {
		return nil, err
	}
	res := &Result{RequestID: completion.RequestID, Raw: completion.Text}
	if ex := ExtractJSON(completion.Text); ex.Parsed {
		res.Parsed = true
		res.Payload = ex.Object
	}
	return res, nil
}

// analysisSchema is the minimal shape a job analysis payload must satisfy.
// Anything weaker is treated like a parse failure.
const analysisSchema = `{
	"type": "object",
	"required": ["fitScore"],
	"properties": {
		"fitScore": {"type": "number"}
	}
}`

var analysisSchemaLoader = gojsonschema.NewStringLoader(analysisSchema)

// JobAnalysis is the structured outcome of analyzing a posting. When the
// model reply could not be parsed or failed the shape check, Degraded is set
// and FitScore/Summary carry the neutral fallback.
type JobAnalysis struct {
	RequestID             uuid.UUID `json:"request_id"`
	Degraded              bool      `json:"degraded"`
	FitScore              float64   `json:"fit_score"`
	Summary               string    `json:"summary"`
	Strengths             []string  `json:"strengths,omitempty"`
	Concerns              []string  `json:"concerns,omitempty"`
	MissingQualifications []string  `json:"missing_qualifications,omitempty"`
	Recommendations       []string  `json:"recommendations,omitempty"`
	SalaryAssessment      string    `json:"salary_assessment,omitempty"`
	FullAnalysis          string    `json:"full_analysis"`
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringSliceField(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func degradedAnalysis(id uuid.UUID, raw string) *JobAnalysis {
	return &JobAnalysis{
		RequestID:    id,
		Degraded:     true,
		FitScore:     50,
		Summary:      Truncate(raw, 200),
		FullAnalysis: raw,
	}
}

// AnalyzeJob asks the model to score a posting against the job details.
// A reply without a well-formed payload degrades to a neutral fit score with
// the raw text preserved; only transport and config failures are errors.
func (s *Service) AnalyzeJob(ctx context.Context, job JobFields) (*JobAnalysis, error) {
	completion, err := s.client.Complete(ctx, analyzeJobPrompt(job), analyzeJobMaxTokens)
	if err != nil {
		return nil, err
	}

	ex := ExtractJSON(completion.Text)
	if !ex.Parsed {
		return degradedAnalysis(completion.RequestID, completion.Text), nil
	}

	check, err := gojsonschema.Validate(analysisSchemaLoader, gojsonschema.NewGoLoader(ex.Object))
	if err != nil || !check.Valid() {
		return degradedAnalysis(completion.RequestID, completion.Text), nil
	}

	fitScore, _ := ex.Object["fitScore"].(float64)
	return &JobAnalysis{
		RequestID:             completion.RequestID,
		FitScore:              fitScore,
		Summary:               stringField(ex.Object, "summary"),
		Strengths:             stringSliceField(ex.Object, "strengths"),
		Concerns:              stringSliceField(ex.Object, "concerns"),
		MissingQualifications: stringSliceField(ex.Object, "missingQualifications"),
		Recommendations:       stringSliceField(ex.Object, "recommendations"),
		SalaryAssessment:      stringField(ex.Object, "salaryAssessment"),
		FullAnalysis:          completion.Text,
	}, nil
}

// ResumePackage is the structured outcome of tailoring a resume to a
// posting. A reply without parseable JSON falls back to the whole text as
// the resume body.
type ResumePackage struct {
	RequestID              uuid.UUID `json:"request_id"`
	TailoredResume         string    `json:"tailored_resume"`
	CoverLetter            string    `json:"cover_letter"`
	InterviewTalkingPoints []string  `json:"interview_talking_points"`
}

// GenerateResumePackage tailors the master resume to one posting.
func (s *Service) GenerateResumePackage(ctx context.Context, job JobFields, resume ResumeFields) (*ResumePackage, error) {
	completion, err := s.client.Complete(ctx, generateResumePrompt(job, resume), generateResumeMaxTokens)
	if err != nil {
		return nil, err
	}

	ex := ExtractJSON(completion.Text)
	if !ex.Parsed {
		return &ResumePackage{
			RequestID:      completion.RequestID,
			TailoredResume: completion.Text,
		}, nil
	}
	return &ResumePackage{
		RequestID:              completion.RequestID,
		TailoredResume:         stringField(ex.Object, "tailoredResume"),
		CoverLetter:            stringField(ex.Object, "coverLetter"),
		InterviewTalkingPoints: stringSliceField(ex.Object, "interviewTalkingPoints"),
	}, nil
}

// GenerateCoverLetter writes a cover letter for one posting. The reply is
// prose, not JSON, so the raw text is the payload.
func (s *Service) GenerateCoverLetter(ctx context.Context, job JobFields, resume ResumeFields) (string, error) {
	completion, err := s.client.Complete(ctx, coverLetterPrompt(job, resume), coverLetterMaxTokens)
	if err != nil {
		return "", err
	}
	return completion.Text, nil
}

// InterviewPrep returns question frameworks and research topics for one
// posting.
func (s *Service) InterviewPrep(ctx context.Context, job JobFields) (*Result, error) {
	return s.run(ctx, interviewPrepPrompt(job), interviewPrepMaxTokens)
}

// GenerateMealPlan drafts a multi-day plan from household constraints.
func (s *Service) GenerateMealPlan(ctx context.Context, req MealPlanRequest) (*Result, error) {
	if req.Days <= 0 || req.People <= 0 {
		return nil, fmt.Errorf("meal plan request needs positive days and people, got %d and %d", req.Days, req.People)
	}
	return s.run(ctx, mealPlanPrompt(req), mealPlanMaxTokens)
}

// GenerateRecipe drafts a recipe from on-hand ingredients.
func (s *Service) GenerateRecipe(ctx context.Context, ingredients []string) (*Result, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("recipe generation needs at least one ingredient")
	}
	return s.run(ctx, recipeFromIngredientsPrompt(ingredients), recipeMaxTokens)
}

// OptimizeShoppingList reorganizes a list by store section with savings
// suggestions.
func (s *Service) OptimizeShoppingList(ctx context.Context, items []ListedItem, store string) (*Result, error) {
	return s.run(ctx, optimizeShoppingListPrompt(items, store), optimizeListMaxTokens)
}

// MatchCoupons pairs list items with clipped coupons by name similarity.
func (s *Service) MatchCoupons(ctx context.Context, items []string, coupons []CouponLine) (*Result, error) {
	return s.run(ctx, matchCouponsPrompt(items, coupons), matchCouponsMaxTokens)
}

// AnalyzeNutrition rates the balance of one day's scheduled meals.
func (s *Service) AnalyzeNutrition(ctx context.Context, meals []MealLine) (*Result, error) {
	return s.run(ctx, analyzeNutritionPrompt(meals), nutritionMaxTokens)
}
