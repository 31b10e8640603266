package ats

import (
	"context"
	"fmt"
	"strings"

	"resumeflow/internal/ai"
	"resumeflow/internal/types"
)

// Feedback rule thresholds and caps.
const (
	keywordFeedbackThreshold = 70
	strongAspectThreshold    = 80
	maxMissedKeywords        = 3
	maxMissingSkills         = 3
	maxFormatIssues          = 2
)

// FeedbackStrategy produces the candidate-facing feedback list for a
// completed scan. Exactly one strategy runs per scan; they are never merged.
type FeedbackStrategy interface {
	Name() string
	Synthesize(ctx context.Context, in types.ScanInput, analyses types.AspectAnalyses, score types.ATSScore) ([]string, *ai.TokenUsage, error)
}

// RuleFeedback derives feedback deterministically from the aspect
// analyses with a fixed rule table. It makes no model calls.
type RuleFeedback struct{}

func (RuleFeedback) Name() string { return "rules" }

func (RuleFeedback) Synthesize(_ context.Context, _ types.ScanInput, analyses types.AspectAnalyses, _ types.ATSScore) ([]string, *ai.TokenUsage, error) {
	feedback := []string{}

	if kw := analyses.Keywords; kw != nil && kw.MatchScore < keywordFeedbackThreshold {
		missed := topN(kw.MissedKeywords, maxMissedKeywords)
		if len(missed) > 0 {
			feedback = append(feedback, fmt.Sprintf("Missing important keywords: %s", strings.Join(missed, ", ")))
		}
	}

	if sk := analyses.Skills; sk != nil && len(sk.MissingRequired) > 0 {
		missing := topN(sk.MissingRequired, maxMissingSkills)
		feedback = append(feedback, fmt.Sprintf("Missing required skills: %s", strings.Join(missing, ", ")))
	}

	if exp := analyses.Experience; exp != nil && !exp.MeetsRequirement {
		feedback = append(feedback, fmt.Sprintf("Insufficient experience: %d years versus %d required", exp.EstimatedYears, exp.RequiredYears))
	}

	if edu := analyses.Education; edu != nil && !edu.MeetsRequirement {
		feedback = append(feedback, fmt.Sprintf("Education requirement not met: %s required", edu.RequiredEducation))
	}

	if f := analyses.Format; f != nil {
		for _, issue := range topN(f.FormatIssues, maxFormatIssues) {
			feedback = append(feedback, fmt.Sprintf("Format issue: %s", issue))
		}
	}

	if kw := analyses.Keywords; kw != nil && kw.MatchScore >= strongAspectThreshold {
		feedback = append(feedback, "Strong keyword optimization")
	}
	if sk := analyses.Skills; sk != nil && sk.RequiredScore >= strongAspectThreshold {
		feedback = append(feedback, "Excellent skills match")
	}

	return feedback, nil, nil
}

func topN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// ModelFeedback delegates feedback writing to the completion service.
type ModelFeedback struct {
	Provider ai.ScanAnalyzer
}

func (ModelFeedback) Name() string { return "model" }

func (m ModelFeedback) Synthesize(ctx context.Context, in types.ScanInput, _ types.AspectAnalyses, _ types.ATSScore) ([]string, *ai.TokenUsage, error) {
	return m.Provider.ScanFeedback(ctx, in.Resume, in.JobDescription)
}

// NewFeedbackStrategy selects a strategy by config name. Unknown names
// fall back to the rule-based strategy.
func NewFeedbackStrategy(name string, provider ai.ScanAnalyzer) FeedbackStrategy {
	if name == "model" && provider != nil {
		return ModelFeedback{Provider: provider}
	}
	return RuleFeedback{}
}
