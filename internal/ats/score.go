// Package ats implements the resume screening pipeline: five concurrent
// aspect analyses folded into a weighted score and a screening decision.
package ats

import (
	"fmt"
	"math"

	"resumeflow/internal/types"
)

// Weights is the fixed per-aspect weighting of the overall score.
var Weights = types.ScoreWeights{
	Keywords:   0.25,
	Skills:     0.30,
	Experience: 0.25,
	Education:  0.10,
	Format:     0.10,
}

// Decision thresholds on the overall score.
const (
	PassThreshold   = 75
	ReviewThreshold = 50
)

// Skills blend: required skills dominate preferred ones.
const (
	requiredSkillWeight  = 0.8
	preferredSkillWeight = 0.2
)

// MissingAspectError reports that an aspect analysis required for
// scoring was never produced.
type MissingAspectError struct {
	Aspect string
}

func (e *MissingAspectError) Error() string {
	return fmt.Sprintf("missing %s analysis", e.Aspect)
}

// ScoreOutOfRangeError reports an aspect or overall score outside the
// 0-100 range. Scores are never clamped; an out-of-range value means an
// upstream bug and scoring refuses to proceed.
type ScoreOutOfRangeError struct {
	Aspect string
	Score  int
}

func (e *ScoreOutOfRangeError) Error() string {
	return fmt.Sprintf("%s score %d out of range [0,100]", e.Aspect, e.Score)
}

func checkRange(aspect string, score int) error {
	if score < 0 || score > 100 {
		return &ScoreOutOfRangeError{Aspect: aspect, Score: score}
	}
	return nil
}

// BlendSkillScores folds the required and preferred skill scores into a
// single skills score, weighted toward required skills.
func BlendSkillScores(required, preferred int) int {
	return int(math.Round(float64(required)*requiredSkillWeight + float64(preferred)*preferredSkillWeight))
}

// CalculateScore aggregates the five aspect analyses into a weighted
// overall score. Every aspect must be present and in range.
func CalculateScore(analyses types.AspectAnalyses) (types.ATSScore, error) {
	switch {
	case analyses.Format == nil:
		return types.ATSScore{}, &MissingAspectError{Aspect: "format"}
	case analyses.Keywords == nil:
		return types.ATSScore{}, &MissingAspectError{Aspect: "keyword"}
	case analyses.Skills == nil:
		return types.ATSScore{}, &MissingAspectError{Aspect: "skill"}
	case analyses.Experience == nil:
		return types.ATSScore{}, &MissingAspectError{Aspect: "experience"}
	case analyses.Education == nil:
		return types.ATSScore{}, &MissingAspectError{Aspect: "education"}
	}

	if err := checkRange("format", analyses.Format.FormatScore); err != nil {
		return types.ATSScore{}, err
	}
	if err := checkRange("keyword", analyses.Keywords.MatchScore); err != nil {
		return types.ATSScore{}, err
	}
	if err := checkRange("required skill", analyses.Skills.RequiredScore); err != nil {
		return types.ATSScore{}, err
	}
	if err := checkRange("preferred skill", analyses.Skills.PreferredScore); err != nil {
		return types.ATSScore{}, err
	}
	if err := checkRange("experience", analyses.Experience.ExperienceScore); err != nil {
		return types.ATSScore{}, err
	}
	if err := checkRange("education", analyses.Education.EducationScore); err != nil {
		return types.ATSScore{}, err
	}

	skillsScore := BlendSkillScores(analyses.Skills.RequiredScore, analyses.Skills.PreferredScore)

	overall := float64(analyses.Keywords.MatchScore)*Weights.Keywords +
		float64(skillsScore)*Weights.Skills +
		float64(analyses.Experience.ExperienceScore)*Weights.Experience +
		float64(analyses.Education.EducationScore)*Weights.Education +
		float64(analyses.Format.FormatScore)*Weights.Format

	return types.ATSScore{
		KeywordScore:    analyses.Keywords.MatchScore,
		SkillsScore:     skillsScore,
		ExperienceScore: analyses.Experience.ExperienceScore,
		EducationScore:  analyses.Education.EducationScore,
		FormatScore:     analyses.Format.FormatScore,
		OverallScore:    int(math.Round(overall)),
		Weights:         Weights,
	}, nil
}

// Decide maps an overall score onto the screening decision.
func Decide(overallScore int) (types.Decision, error) {
	if err := checkRange("overall", overallScore); err != nil {
		return "", err
	}
	switch {
	case overallScore >= PassThreshold:
		return types.DecisionPass, nil
	case overallScore >= ReviewThreshold:
		return types.DecisionReview, nil
	default:
		return types.DecisionReject, nil
	}
}
