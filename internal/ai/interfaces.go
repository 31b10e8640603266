package ai

import (
	"context"
	"sync"

	"resumeflow/internal/types"
)

// Provider is the lifecycle surface common to all completion providers.
type Provider interface {
	GetModelInfo(ctx context.Context) *ModelInfo
	GetCircuitBreakerStats() map[string]any
	Close() error
}

// ScanAnalyzer performs the per-aspect analyses of the ATS scanner.
// All methods return token usage information - callers can ignore it if not needed.
type ScanAnalyzer interface {
	Provider
	AnalyzeFormat(ctx context.Context, resume string) (types.FormatAnalysis, *TokenUsage, error)
	AnalyzeKeywords(ctx context.Context, resume, jobDescription string) (types.KeywordAnalysis, *TokenUsage, error)
	AnalyzeSkills(ctx context.Context, resume, jobDescription string) (types.SkillAnalysis, *TokenUsage, error)
	AnalyzeExperience(ctx context.Context, resume, jobDescription string) (types.ExperienceAnalysis, *TokenUsage, error)
	AnalyzeEducation(ctx context.Context, resume, jobDescription string) (types.EducationAnalysis, *TokenUsage, error)
	ScanFeedback(ctx context.Context, resume, jobDescription string) ([]string, *TokenUsage, error)
}

// MatchMatrixRequest carries the fan-in inputs for the match matrix step.
type MatchMatrixRequest struct {
	Profile          types.ProfileAnalysis
	Job              types.JobAnalysis
	CandidateProfile string
}

// DraftRequest carries the inputs for the initial resume generation.
type DraftRequest struct {
	CandidateProfile     string
	Job                  types.JobAnalysis
	Matrix               types.MatchMatrix
	KeywordTargetPercent int
}

// EvaluateRequest carries a draft and the criteria it is judged against.
type EvaluateRequest struct {
	Resume         string
	JobDescription string
	Keywords       []string
}

// FeedbackRequest asks for revision guidance on an evaluated draft.
type FeedbackRequest struct {
	Evaluation    types.ResumeEvaluation
	Resume        string
	Job           types.JobAnalysis
	Iteration     int
	MaxIterations int
}

// ReviseRequest carries a draft plus the feedback to apply to it.
type ReviseRequest struct {
	Resume        string
	Feedback      types.ResumeFeedback
	Job           types.JobAnalysis
	HumanFeedback string
}

// ResumeWriter performs the steps of the resume generator pipeline.
type ResumeWriter interface {
	Provider
	AnalyzeProfile(ctx context.Context, candidateProfile, jobDescription string) (types.ProfileAnalysis, *TokenUsage, error)
	AnalyzeJob(ctx context.Context, jobDescription string) (types.JobAnalysis, *TokenUsage, error)
	BuildMatchMatrix(ctx context.Context, req MatchMatrixRequest) (types.MatchMatrix, *TokenUsage, error)
	GenerateResume(ctx context.Context, req DraftRequest) (string, *TokenUsage, error)
	EvaluateResume(ctx context.Context, req EvaluateRequest) (types.ResumeEvaluation, *TokenUsage, error)
	DraftFeedback(ctx context.Context, req FeedbackRequest) (types.ResumeFeedback, *TokenUsage, error)
	ReviseResume(ctx context.Context, req ReviseRequest) (string, *TokenUsage, error)
	FormatResume(ctx context.Context, resume, format string) (string, *TokenUsage, error)
}

// UsageTally accumulates token usage across concurrent pipeline steps.
type UsageTally struct {
	mu    sync.Mutex
	total TokenUsage
	seen  bool
}

// Add folds one operation's usage into the tally. Nil usage is ignored.
func (t *UsageTally) Add(usage *TokenUsage) {
	if usage == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen = true
	t.total.InputTokens += usage.InputTokens
	t.total.OutputTokens += usage.OutputTokens
	t.total.TotalTokens += usage.TotalTokens
}

// Total returns the accumulated usage, or nil if nothing was recorded.
func (t *UsageTally) Total() *TokenUsage {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.seen {
		return nil
	}
	total := t.total
	return &total
}
