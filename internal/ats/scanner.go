package ats

import (
	"context"

	"resumeflow/internal/ai"
	"resumeflow/internal/errors"
	"resumeflow/internal/graph"
	"resumeflow/internal/types"
)

// Scanner runs the ATS screening pipeline: the five aspect analyses in
// parallel, then scoring, then the decision with feedback.
type Scanner struct {
	provider ai.ScanAnalyzer
	feedback FeedbackStrategy
	logger   *errors.Logger
}

// NewScanner creates a scanner. A nil strategy selects rule-based feedback.
func NewScanner(provider ai.ScanAnalyzer, feedback FeedbackStrategy, logger *errors.Logger) *Scanner {
	if feedback == nil {
		feedback = RuleFeedback{}
	}
	return &Scanner{
		provider: provider,
		feedback: feedback,
		logger:   logger,
	}
}

// Step names of the scan graph.
const (
	stepAnalyzeFormat     = "analyze_format"
	stepAnalyzeKeywords   = "analyze_keywords"
	stepAnalyzeSkills     = "analyze_skills"
	stepAnalyzeExperience = "analyze_experience"
	stepAnalyzeEducation  = "analyze_education"
	stepCalculateScore    = "calculate_score"
	stepMakeDecision      = "make_decision"
)

// Run executes a full scan. On any step failure the scan aborts and
// returns no partial output.
func (s *Scanner) Run(ctx context.Context, in types.ScanInput) (types.ScanOutput, *ai.TokenUsage, error) {
	var (
		out   types.ScanOutput
		tally ai.UsageTally
	)

	g := graph.New()

	g.MustAdd(graph.Step{Name: stepAnalyzeFormat, Run: func(ctx context.Context) error {
		analysis, usage, err := s.provider.AnalyzeFormat(ctx, in.Resume)
		if err != nil {
			return err
		}
		out.Format = &analysis
		tally.Add(usage)
		return nil
	}})

	g.MustAdd(graph.Step{Name: stepAnalyzeKeywords, Run: func(ctx context.Context) error {
		analysis, usage, err := s.provider.AnalyzeKeywords(ctx, in.Resume, in.JobDescription)
		if err != nil {
			return err
		}
		out.Keywords = &analysis
		tally.Add(usage)
		return nil
	}})

	g.MustAdd(graph.Step{Name: stepAnalyzeSkills, Run: func(ctx context.Context) error {
		analysis, usage, err := s.provider.AnalyzeSkills(ctx, in.Resume, in.JobDescription)
		if err != nil {
			return err
		}
		out.Skills = &analysis
		tally.Add(usage)
		return nil
	}})

	g.MustAdd(graph.Step{Name: stepAnalyzeExperience, Run: func(ctx context.Context) error {
		analysis, usage, err := s.provider.AnalyzeExperience(ctx, in.Resume, in.JobDescription)
		if err != nil {
			return err
		}
		out.Experience = &analysis
		tally.Add(usage)
		return nil
	}})

	g.MustAdd(graph.Step{Name: stepAnalyzeEducation, Run: func(ctx context.Context) error {
		analysis, usage, err := s.provider.AnalyzeEducation(ctx, in.Resume, in.JobDescription)
		if err != nil {
			return err
		}
		out.Education = &analysis
		tally.Add(usage)
		return nil
	}})

	aspects := []string{
		stepAnalyzeFormat,
		stepAnalyzeKeywords,
		stepAnalyzeSkills,
		stepAnalyzeExperience,
		stepAnalyzeEducation,
	}

	g.MustAdd(graph.Step{Name: stepCalculateScore, Needs: aspects, Run: func(ctx context.Context) error {
		score, err := CalculateScore(out.AspectAnalyses)
		if err != nil {
			return err
		}
		out.Score = score
		return nil
	}})

	g.MustAdd(graph.Step{Name: stepMakeDecision, Needs: []string{stepCalculateScore}, Run: func(ctx context.Context) error {
		decision, err := Decide(out.Score.OverallScore)
		if err != nil {
			return err
		}
		out.Decision = decision

		feedback, usage, err := s.feedback.Synthesize(ctx, in, out.AspectAnalyses, out.Score)
		if err != nil {
			return err
		}
		out.Feedback = feedback
		tally.Add(usage)
		return nil
	}})

	if err := g.Run(ctx); err != nil {
		s.logger.LogError(err, "ATS scan failed",
			"resume_length", len(in.Resume),
			"job_length", len(in.JobDescription))
		return types.ScanOutput{}, nil, err
	}

	s.logger.Info("ATS scan completed",
		"overall_score", out.Score.OverallScore,
		"decision", string(out.Decision),
		"feedback_strategy", s.feedback.Name(),
		"feedback_items", len(out.Feedback))

	return out, tally.Total(), nil
}
