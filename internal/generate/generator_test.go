package generate

import (
	"context"
	"errors"
	"testing"

	"resumeflow/internal/ai"
	flowErrors "resumeflow/internal/errors"
	"resumeflow/internal/types"
)

// fakeWriter scripts evaluation qualities per pass and records calls.
type fakeWriter struct {
	qualities []int // overall_quality per evaluation pass
	failOn    string

	evaluateCalls int
	feedbackCalls int
	reviseCalls   int
	formatCalls   int

	draftReq ai.DraftRequest
}

var errWriter = errors.New("model unavailable")

func usage() *ai.TokenUsage {
	return &ai.TokenUsage{InputTokens: 10, OutputTokens: 10, TotalTokens: 20}
}

func (f *fakeWriter) AnalyzeProfile(ctx context.Context, candidateProfile, jobDescription string) (types.ProfileAnalysis, *ai.TokenUsage, error) {
	if f.failOn == "profile" {
		return types.ProfileAnalysis{}, nil, errWriter
	}
	return types.ProfileAnalysis{Strengths: []string{"go"}}, usage(), nil
}

func (f *fakeWriter) AnalyzeJob(ctx context.Context, jobDescription string) (types.JobAnalysis, *ai.TokenUsage, error) {
	if f.failOn == "job" {
		return types.JobAnalysis{}, nil, errWriter
	}
	return types.JobAnalysis{Keywords: []string{"go", "sql"}}, usage(), nil
}

func (f *fakeWriter) BuildMatchMatrix(ctx context.Context, req ai.MatchMatrixRequest) (types.MatchMatrix, *ai.TokenUsage, error) {
	if f.failOn == "matrix" {
		return types.MatchMatrix{}, nil, errWriter
	}
	return types.MatchMatrix{OverallFitScore: 80}, usage(), nil
}

func (f *fakeWriter) GenerateResume(ctx context.Context, req ai.DraftRequest) (string, *ai.TokenUsage, error) {
	f.draftReq = req
	return "SKILLS\nGo, SQL", usage(), nil
}

func (f *fakeWriter) EvaluateResume(ctx context.Context, req ai.EvaluateRequest) (types.ResumeEvaluation, *ai.TokenUsage, error) {
	quality := 90
	if f.evaluateCalls < len(f.qualities) {
		quality = f.qualities[f.evaluateCalls]
	}
	f.evaluateCalls++
	return types.ResumeEvaluation{OverallQuality: quality}, usage(), nil
}

func (f *fakeWriter) DraftFeedback(ctx context.Context, req ai.FeedbackRequest) (types.ResumeFeedback, *ai.TokenUsage, error) {
	f.feedbackCalls++
	return types.ResumeFeedback{PriorityChanges: []string{"add metrics"}}, usage(), nil
}

func (f *fakeWriter) ReviseResume(ctx context.Context, req ai.ReviseRequest) (string, *ai.TokenUsage, error) {
	f.reviseCalls++
	return req.Resume + "\nrevised", usage(), nil
}

func (f *fakeWriter) FormatResume(ctx context.Context, resume, format string) (string, *ai.TokenUsage, error) {
	f.formatCalls++
	return resume, usage(), nil
}

func (f *fakeWriter) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "fake", Available: true}
}

func (f *fakeWriter) GetCircuitBreakerStats() map[string]any { return nil }

func (f *fakeWriter) Close() error { return nil }

func testLogger(t *testing.T) *flowErrors.Logger {
	t.Helper()
	logger, err := flowErrors.New("error")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return logger
}

func testInput() types.GenerateInput {
	return types.GenerateInput{
		CandidateProfile: "profile text",
		JobDescription:   "job text",
	}
}

func TestGeneratorConvergesFirstDraft(t *testing.T) {
	writer := &fakeWriter{qualities: []int{90}}
	gen := NewGenerator(writer, Options{MaxIterations: 3, QualityThreshold: 80}, testLogger(t))

	out, tokens, err := gen.Run(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if out.Status != types.StatusConverged {
		t.Errorf("Status = %s, want converged", out.Status)
	}
	if out.Iterations != 0 {
		t.Errorf("Iterations = %d, want 0", out.Iterations)
	}
	if writer.reviseCalls != 0 || writer.feedbackCalls != 0 {
		t.Errorf("no revision expected, got %d feedback / %d revise calls", writer.feedbackCalls, writer.reviseCalls)
	}
	if writer.formatCalls != 1 {
		t.Errorf("formatCalls = %d, want 1", writer.formatCalls)
	}
	if out.Profile == nil || out.Job == nil || out.Matrix == nil {
		t.Error("analysis results missing from output")
	}
	if len(out.Sections) != 1 || out.Sections[0].SectionName != "SKILLS" {
		t.Errorf("Sections = %+v, want one SKILLS section", out.Sections)
	}
	// profile + job + matrix + generate + evaluate + format = 6 calls
	if tokens == nil || tokens.TotalTokens != 120 {
		t.Errorf("tokens = %+v, want 120 total", tokens)
	}
	if out.Drafts != nil {
		t.Error("drafts should be omitted unless requested")
	}
}

func TestGeneratorRevisesUntilConverged(t *testing.T) {
	writer := &fakeWriter{qualities: []int{60, 70, 85}}
	gen := NewGenerator(writer, Options{MaxIterations: 3, QualityThreshold: 80, KeepDrafts: true}, testLogger(t))

	out, _, err := gen.Run(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if out.Status != types.StatusConverged {
		t.Errorf("Status = %s, want converged", out.Status)
	}
	if out.Iterations != 2 {
		t.Errorf("Iterations = %d, want 2", out.Iterations)
	}
	if writer.evaluateCalls != 3 {
		t.Errorf("evaluateCalls = %d, want 3", writer.evaluateCalls)
	}
	if writer.reviseCalls != 2 {
		t.Errorf("reviseCalls = %d, want 2", writer.reviseCalls)
	}
	if len(out.Drafts) != 3 {
		t.Errorf("Drafts = %d, want 3 versions", len(out.Drafts))
	}
	if out.Drafts[0].Version != 1 || out.Drafts[2].Version != 3 {
		t.Errorf("draft versions wrong: %+v", out.Drafts)
	}
	if out.Evaluation.OverallQuality != 85 {
		t.Errorf("final quality = %d, want 85", out.Evaluation.OverallQuality)
	}
}

func TestGeneratorIterationBudgetExceeded(t *testing.T) {
	writer := &fakeWriter{qualities: []int{50, 55, 60, 65}}
	gen := NewGenerator(writer, Options{MaxIterations: 3, QualityThreshold: 80}, testLogger(t))

	out, _, err := gen.Run(context.Background(), testInput())
	if err != nil {
		t.Fatalf("budget exhaustion must not be an error: %v", err)
	}

	if out.Status != types.StatusIterationBudgetExceeded {
		t.Errorf("Status = %s, want iteration_budget_exceeded", out.Status)
	}
	if out.Iterations != 3 {
		t.Errorf("Iterations = %d, want 3", out.Iterations)
	}
	// max_iterations+1 evaluation passes, then formatting still runs.
	if writer.evaluateCalls != 4 {
		t.Errorf("evaluateCalls = %d, want 4", writer.evaluateCalls)
	}
	if writer.formatCalls != 1 {
		t.Errorf("formatCalls = %d, want 1", writer.formatCalls)
	}
	if out.Resume == "" {
		t.Error("best-effort resume should still be returned")
	}
}

func TestGeneratorDefaultKeywordTarget(t *testing.T) {
	writer := &fakeWriter{qualities: []int{90}}
	gen := NewGenerator(writer, Options{MaxIterations: 1, QualityThreshold: 80}, testLogger(t))

	if _, _, err := gen.Run(context.Background(), testInput()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if writer.draftReq.KeywordTargetPercent != 80 {
		t.Errorf("KeywordTargetPercent = %d, want default 80", writer.draftReq.KeywordTargetPercent)
	}
}

func TestGeneratorAnalysisFailure(t *testing.T) {
	for _, failOn := range []string{"profile", "job", "matrix"} {
		t.Run(failOn, func(t *testing.T) {
			writer := &fakeWriter{failOn: failOn}
			gen := NewGenerator(writer, Options{}, testLogger(t))

			out, tokens, err := gen.Run(context.Background(), testInput())
			if !errors.Is(err, errWriter) {
				t.Fatalf("err = %v, want wrapped model error", err)
			}
			if out.Resume != "" || out.Status != "" {
				t.Error("failed run must not expose partial output")
			}
			if tokens != nil {
				t.Error("failed run should not report usage")
			}
		})
	}
}
