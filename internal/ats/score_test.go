package ats

import (
	"errors"
	"testing"

	"resumeflow/internal/types"
)

func fullAnalyses() types.AspectAnalyses {
	return types.AspectAnalyses{
		Format:     &types.FormatAnalysis{FormatScore: 90},
		Keywords:   &types.KeywordAnalysis{MatchScore: 80},
		Skills:     &types.SkillAnalysis{RequiredScore: 70, PreferredScore: 90},
		Experience: &types.ExperienceAnalysis{ExperienceScore: 85},
		Education:  &types.EducationAnalysis{EducationScore: 100},
	}
}

func TestBlendSkillScores(t *testing.T) {
	tests := []struct {
		name      string
		required  int
		preferred int
		want      int
	}{
		{"required dominates", 70, 90, 74},
		{"all zero", 0, 0, 0},
		{"all max", 100, 100, 100},
		{"required only", 100, 0, 80},
		{"preferred only", 0, 100, 20},
		{"mixed values", 50, 75, 55},
		{"rounds to nearest", 33, 67, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BlendSkillScores(tt.required, tt.preferred); got != tt.want {
				t.Errorf("BlendSkillScores(%d, %d) = %d, want %d", tt.required, tt.preferred, got, tt.want)
			}
		})
	}
}

func TestCalculateScore(t *testing.T) {
	score, err := CalculateScore(fullAnalyses())
	if err != nil {
		t.Fatalf("CalculateScore: %v", err)
	}

	if score.SkillsScore != 74 {
		t.Errorf("SkillsScore = %d, want 74", score.SkillsScore)
	}
	// 80*.25 + 74*.30 + 85*.25 + 100*.10 + 90*.10 = 82.45 -> 82
	if score.OverallScore != 82 {
		t.Errorf("OverallScore = %d, want 82", score.OverallScore)
	}
	if score.Weights != Weights {
		t.Errorf("Weights = %+v, want %+v", score.Weights, Weights)
	}
}

func TestCalculateScoreMissingAspect(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.AspectAnalyses)
		aspect string
	}{
		{"format", func(a *types.AspectAnalyses) { a.Format = nil }, "format"},
		{"keywords", func(a *types.AspectAnalyses) { a.Keywords = nil }, "keyword"},
		{"skills", func(a *types.AspectAnalyses) { a.Skills = nil }, "skill"},
		{"experience", func(a *types.AspectAnalyses) { a.Experience = nil }, "experience"},
		{"education", func(a *types.AspectAnalyses) { a.Education = nil }, "education"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyses := fullAnalyses()
			tt.mutate(&analyses)

			_, err := CalculateScore(analyses)
			var missingErr *MissingAspectError
			if !errors.As(err, &missingErr) {
				t.Fatalf("err = %v, want MissingAspectError", err)
			}
			if missingErr.Aspect != tt.aspect {
				t.Errorf("Aspect = %q, want %q", missingErr.Aspect, tt.aspect)
			}
		})
	}
}

func TestCalculateScoreOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.AspectAnalyses)
	}{
		{"negative keyword", func(a *types.AspectAnalyses) { a.Keywords.MatchScore = -1 }},
		{"format above range", func(a *types.AspectAnalyses) { a.Format.FormatScore = 101 }},
		{"required skill above range", func(a *types.AspectAnalyses) { a.Skills.RequiredScore = 150 }},
		{"preferred skill negative", func(a *types.AspectAnalyses) { a.Skills.PreferredScore = -5 }},
		{"experience above range", func(a *types.AspectAnalyses) { a.Experience.ExperienceScore = 200 }},
		{"education negative", func(a *types.AspectAnalyses) { a.Education.EducationScore = -10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyses := fullAnalyses()
			tt.mutate(&analyses)

			_, err := CalculateScore(analyses)
			var rangeErr *ScoreOutOfRangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("err = %v, want ScoreOutOfRangeError", err)
			}
		})
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		score int
		want  types.Decision
	}{
		{100, types.DecisionPass},
		{82, types.DecisionPass},
		{75, types.DecisionPass},
		{74, types.DecisionReview},
		{50, types.DecisionReview},
		{49, types.DecisionReject},
		{0, types.DecisionReject},
	}

	for _, tt := range tests {
		got, err := Decide(tt.score)
		if err != nil {
			t.Errorf("Decide(%d): %v", tt.score, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Decide(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestDecideOutOfRange(t *testing.T) {
	for _, score := range []int{-1, 101} {
		_, err := Decide(score)
		var rangeErr *ScoreOutOfRangeError
		if !errors.As(err, &rangeErr) {
			t.Errorf("Decide(%d) err = %v, want ScoreOutOfRangeError", score, err)
		}
	}
}

func TestWeightsSumToOne(t *testing.T) {
	sum := Weights.Keywords + Weights.Skills + Weights.Experience + Weights.Education + Weights.Format
	if sum != 1.0 {
		t.Errorf("weights sum to %v, want 1.0", sum)
	}
}
