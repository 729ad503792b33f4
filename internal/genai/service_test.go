package genai

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// stubClient returns a canned reply and records the prompt it was sent.
type stubClient struct {
	reply      string
	lastPrompt string
	lastTokens int
}

func (c *stubClient) Complete(_ context.Context, prompt string, maxTokens int) (*Completion, error) {
	c.lastPrompt = prompt
	c.lastTokens = maxTokens
	return &Completion{RequestID: uuid.New(), Text: c.reply}, nil
}

func TestAnalyzeJobParsesPayload(t *testing.T) {
	stub := &stubClient{reply: `Analysis below.
{"fitScore": 82, "summary": "strong match", "strengths": ["Go"], "concerns": [], "salaryAssessment": "competitive"}`}
	svc := NewService(stub)

	analysis, err := svc.AnalyzeJob(context.Background(), JobFields{Title: "Engineer", Company: "Acme"})
	if err != nil {
		t.Fatal(err)
	}
	if analysis.Degraded {
		t.Fatal("expected parsed analysis, got degraded")
	}
	if analysis.FitScore != 82 {
		t.Errorf("fitScore = %v, want 82", analysis.FitScore)
	}
	if analysis.Summary != "strong match" {
		t.Errorf("summary = %q", analysis.Summary)
	}
	if len(analysis.Strengths) != 1 || analysis.Strengths[0] != "Go" {
		t.Errorf("strengths = %v", analysis.Strengths)
	}
	if stub.lastTokens != analyzeJobMaxTokens {
		t.Errorf("maxTokens = %d, want %d", stub.lastTokens, analyzeJobMaxTokens)
	}
	if !strings.Contains(stub.lastPrompt, "Engineer") || !strings.Contains(stub.lastPrompt, "Acme") {
		t.Error("prompt does not carry the job fields")
	}
}

func TestAnalyzeJobDegradesOnUnparseableReply(t *testing.T) {
	raw := "I think this role is a reasonable match but I cannot quantify it."
	svc := NewService(&stubClient{reply: raw})

	analysis, err := svc.AnalyzeJob(context.Background(), JobFields{Title: "Engineer", Company: "Acme"})
	if err != nil {
		t.Fatal(err)
	}
	if !analysis.Degraded {
		t.Fatal("expected degraded analysis")
	}
	if analysis.FitScore != 50 {
		t.Errorf("fitScore = %v, want neutral 50", analysis.FitScore)
	}
	if analysis.Summary != raw {
		t.Errorf("summary = %q, want the raw text (short enough to keep whole)", analysis.Summary)
	}
	if analysis.FullAnalysis != raw {
		t.Error("raw text was not preserved")
	}
}

func TestAnalyzeJobDegradesOnShapeMismatch(t *testing.T) {
	// Parseable JSON whose fitScore is not a number fails the shape check
	// and degrades exactly like a parse failure.
	svc := NewService(&stubClient{reply: `{"fitScore": "high", "summary": "good"}`})

	analysis, err := svc.AnalyzeJob(context.Background(), JobFields{Title: "Engineer", Company: "Acme"})
	if err != nil {
		t.Fatal(err)
	}
	if !analysis.Degraded {
		t.Fatal("expected degraded analysis for non-numeric fitScore")
	}
	if analysis.FitScore != 50 {
		t.Errorf("fitScore = %v, want 50", analysis.FitScore)
	}
}

func TestAnalyzeJobDegradedSummaryTruncated(t *testing.T) {
	raw := strings.Repeat("x", 500)
	svc := NewService(&stubClient{reply: raw})

	analysis, err := svc.AnalyzeJob(context.Background(), JobFields{Title: "T", Company: "C"})
	if err != nil {
		t.Fatal(err)
	}
	if len([]rune(analysis.Summary)) != 203 { // 200 runes plus the ellipsis
		t.Errorf("summary length = %d", len([]rune(analysis.Summary)))
	}
}

func TestGenerateResumePackage(t *testing.T) {
	svc := NewService(&stubClient{reply: `{"tailoredResume": "resume", "coverLetter": "letter", "interviewTalkingPoints": ["p1", "p2"]}`})

	pkg, err := svc.GenerateResumePackage(context.Background(),
		JobFields{Title: "Engineer", Company: "Acme"},
		ResumeFields{Content: "master"})
	if err != nil {
		t.Fatal(err)
	}
	if pkg.TailoredResume != "resume" || pkg.CoverLetter != "letter" {
		t.Errorf("package = %+v", pkg)
	}
	if len(pkg.InterviewTalkingPoints) != 2 {
		t.Errorf("talking points = %v", pkg.InterviewTalkingPoints)
	}
}

func TestGenerateResumePackageFallsBackToRawText(t *testing.T) {
	svc := NewService(&stubClient{reply: "Here is a resume without any JSON structure."})

	pkg, err := svc.GenerateResumePackage(context.Background(),
		JobFields{Title: "T", Company: "C"}, ResumeFields{Content: "m"})
	if err != nil {
		t.Fatal(err)
	}
	if pkg.TailoredResume != "Here is a resume without any JSON structure." {
		t.Errorf("tailoredResume = %q", pkg.TailoredResume)
	}
	if pkg.CoverLetter != "" || len(pkg.InterviewTalkingPoints) != 0 {
		t.Error("fallback should leave the other fields empty")
	}
}

func TestGenerateMealPlanValidatesRequest(t *testing.T) {
	svc := NewService(&stubClient{reply: "{}"})

	if _, err := svc.GenerateMealPlan(context.Background(), MealPlanRequest{}); err == nil {
		t.Error("expected error for zero days and people")
	}
}

func TestGenericOperationsReturnResult(t *testing.T) {
	stub := &stubClient{reply: `{"matches": []}`}
	svc := NewService(stub)

	res, err := svc.MatchCoupons(context.Background(),
		[]string{"Milk"}, []CouponLine{{Product: "Milk", DiscountType: "amount", DiscountValue: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Parsed {
		t.Error("expected parsed result")
	}
	if stub.lastTokens != matchCouponsMaxTokens {
		t.Errorf("maxTokens = %d", stub.lastTokens)
	}
	if !strings.Contains(stub.lastPrompt, "Milk: amount 1") {
		t.Errorf("prompt = %q", stub.lastPrompt)
	}
}

func TestGenerateRecipeNeedsIngredients(t *testing.T) {
	svc := NewService(&stubClient{reply: "{}"})

	if _, err := svc.GenerateRecipe(context.Background(), nil); err == nil {
		t.Error("expected error for empty ingredient list")
	}
}
