// Package generate implements the resume generator pipeline: profile and
// job analysis fanned out concurrently, a match matrix fan-in, then a
// quality-gated draft/evaluate/revise loop ending in a formatting pass.
package generate

import (
	"context"

	"resumeflow/internal/ai"
	"resumeflow/internal/errors"
	"resumeflow/internal/graph"
	"resumeflow/internal/types"
)

// DefaultKeywordTargetPercent is the share of job keywords a draft
// should incorporate.
const DefaultKeywordTargetPercent = 80

// Options tune the generator pipeline.
type Options struct {
	MaxIterations        int
	QualityThreshold     int
	KeywordTargetPercent int
	// KeepDrafts retains every intermediate draft on the output.
	KeepDrafts bool
}

// Generator runs the resume generation pipeline.
type Generator struct {
	provider ai.ResumeWriter
	opts     Options
	logger   *errors.Logger
}

func NewGenerator(provider ai.ResumeWriter, opts Options, logger *errors.Logger) *Generator {
	if opts.KeywordTargetPercent <= 0 {
		opts.KeywordTargetPercent = DefaultKeywordTargetPercent
	}
	return &Generator{
		provider: provider,
		opts:     opts,
		logger:   logger,
	}
}

// Step names of the analysis fan-out.
const (
	stepAnalyzeProfile = "analyze_profile"
	stepAnalyzeJob     = "analyze_job"
	stepMatchMatrix    = "build_match_matrix"
)

// Run executes the full pipeline. Iteration budget exhaustion is
// reported via the output status, never as an error.
func (g *Generator) Run(ctx context.Context, in types.GenerateInput) (types.GenerateOutput, *ai.TokenUsage, error) {
	var (
		out   types.GenerateOutput
		tally ai.UsageTally
	)

	if in.OutputFormat == "" {
		in.OutputFormat = "markdown"
	}

	fanout := graph.New()

	fanout.MustAdd(graph.Step{Name: stepAnalyzeProfile, Run: func(ctx context.Context) error {
		analysis, usage, err := g.provider.AnalyzeProfile(ctx, in.CandidateProfile, in.JobDescription)
		if err != nil {
			return err
		}
		out.Profile = &analysis
		tally.Add(usage)
		return nil
	}})

	fanout.MustAdd(graph.Step{Name: stepAnalyzeJob, Run: func(ctx context.Context) error {
		analysis, usage, err := g.provider.AnalyzeJob(ctx, in.JobDescription)
		if err != nil {
			return err
		}
		out.Job = &analysis
		tally.Add(usage)
		return nil
	}})

	fanout.MustAdd(graph.Step{Name: stepMatchMatrix, Needs: []string{stepAnalyzeProfile, stepAnalyzeJob}, Run: func(ctx context.Context) error {
		matrix, usage, err := g.provider.BuildMatchMatrix(ctx, ai.MatchMatrixRequest{
			Profile:          *out.Profile,
			Job:              *out.Job,
			CandidateProfile: in.CandidateProfile,
		})
		if err != nil {
			return err
		}
		out.Matrix = &matrix
		tally.Add(usage)
		return nil
	}})

	if err := fanout.Run(ctx); err != nil {
		g.logger.LogError(err, "Resume generation analysis failed",
			"profile_length", len(in.CandidateProfile),
			"job_length", len(in.JobDescription))
		return types.GenerateOutput{}, nil, err
	}

	ctrl := NewController(g.opts.MaxIterations, g.opts.QualityThreshold)

	draft, usage, err := g.provider.GenerateResume(ctx, ai.DraftRequest{
		CandidateProfile:     in.CandidateProfile,
		Job:                  *out.Job,
		Matrix:               *out.Matrix,
		KeywordTargetPercent: g.opts.KeywordTargetPercent,
	})
	if err != nil {
		return types.GenerateOutput{}, nil, err
	}
	tally.Add(usage)
	drafts := []types.ResumeDraft{{Version: 1, Text: draft}}
	if err := ctrl.DraftComplete(); err != nil {
		return types.GenerateOutput{}, nil, err
	}

	var evaluation types.ResumeEvaluation
	for {
		evaluation, usage, err = g.provider.EvaluateResume(ctx, ai.EvaluateRequest{
			Resume:         draft,
			JobDescription: in.JobDescription,
			Keywords:       out.Job.Keywords,
		})
		if err != nil {
			return types.GenerateOutput{}, nil, err
		}
		tally.Add(usage)

		revise, err := ctrl.EvaluationComplete(evaluation.OverallQuality)
		if err != nil {
			return types.GenerateOutput{}, nil, err
		}
		if !revise {
			break
		}

		g.logger.Debug("Draft below quality threshold, revising",
			"overall_quality", evaluation.OverallQuality,
			"quality_threshold", ctrl.QualityThreshold(),
			"iteration", ctrl.Iteration())

		feedback, usage, err := g.provider.DraftFeedback(ctx, ai.FeedbackRequest{
			Evaluation:    evaluation,
			Resume:        draft,
			Job:           *out.Job,
			Iteration:     ctrl.Iteration() + 1,
			MaxIterations: ctrl.MaxIterations(),
		})
		if err != nil {
			return types.GenerateOutput{}, nil, err
		}
		tally.Add(usage)

		draft, usage, err = g.provider.ReviseResume(ctx, ai.ReviseRequest{
			Resume:        draft,
			Feedback:      feedback,
			Job:           *out.Job,
			HumanFeedback: in.HumanFeedback,
		})
		if err != nil {
			return types.GenerateOutput{}, nil, err
		}
		tally.Add(usage)
		if err := ctrl.RevisionComplete(); err != nil {
			return types.GenerateOutput{}, nil, err
		}
		drafts = append(drafts, types.ResumeDraft{Version: len(drafts) + 1, Text: draft})
	}

	final, usage, err := g.provider.FormatResume(ctx, draft, in.OutputFormat)
	if err != nil {
		return types.GenerateOutput{}, nil, err
	}
	tally.Add(usage)
	if err := ctrl.FinalizeComplete(); err != nil {
		return types.GenerateOutput{}, nil, err
	}

	out.Resume = final
	out.Sections = ParseSections(final)
	out.Evaluation = evaluation
	out.Iterations = ctrl.Iteration()
	out.Status = ctrl.Status()
	if g.opts.KeepDrafts {
		out.Drafts = drafts
	}

	g.logger.Info("Resume generation completed",
		"status", string(out.Status),
		"iterations", out.Iterations,
		"overall_quality", evaluation.OverallQuality,
		"sections", len(out.Sections))

	return out, tally.Total(), nil
}
