package ats

import (
	"context"
	"slices"
	"strings"
	"testing"

	"resumeflow/internal/types"
)

func TestRuleFeedbackLowKeywordMatch(t *testing.T) {
	analyses := fullAnalyses()
	analyses.Keywords.MatchScore = 60
	analyses.Keywords.MissedKeywords = []string{"kubernetes", "terraform", "golang", "grpc", "redis"}

	feedback, usage, err := RuleFeedback{}.Synthesize(context.Background(), types.ScanInput{}, analyses, types.ATSScore{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if usage != nil {
		t.Error("rule feedback should not report token usage")
	}

	want := "Missing important keywords: kubernetes, terraform, golang"
	if !slices.Contains(feedback, want) {
		t.Errorf("feedback %v missing %q", feedback, want)
	}
	for _, item := range feedback {
		if strings.Contains(item, "grpc") || strings.Contains(item, "redis") {
			t.Errorf("feedback should list at most three missed keywords, got %q", item)
		}
	}
}

func TestRuleFeedbackKeywordAtThreshold(t *testing.T) {
	// A match score of exactly 70 triggers no keyword complaint.
	analyses := fullAnalyses()
	analyses.Keywords.MatchScore = 70
	analyses.Keywords.MissedKeywords = []string{"kubernetes"}

	feedback, _, err := RuleFeedback{}.Synthesize(context.Background(), types.ScanInput{}, analyses, types.ATSScore{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	for _, item := range feedback {
		if strings.HasPrefix(item, "Missing important keywords") {
			t.Errorf("unexpected keyword feedback at threshold: %q", item)
		}
	}
}

func TestRuleFeedbackMissingRequiredSkills(t *testing.T) {
	analyses := fullAnalyses()
	analyses.Skills.MissingRequired = []string{"go", "sql", "docker", "aws"}

	feedback, _, err := RuleFeedback{}.Synthesize(context.Background(), types.ScanInput{}, analyses, types.ATSScore{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	want := "Missing required skills: go, sql, docker"
	if !slices.Contains(feedback, want) {
		t.Errorf("feedback %v missing %q", feedback, want)
	}
}

func TestRuleFeedbackExperienceAndEducationShortfalls(t *testing.T) {
	analyses := fullAnalyses()
	analyses.Experience.MeetsRequirement = false
	analyses.Experience.EstimatedYears = 3
	analyses.Experience.RequiredYears = 5
	analyses.Education.MeetsRequirement = false
	analyses.Education.RequiredEducation = "Bachelor's degree"

	feedback, _, err := RuleFeedback{}.Synthesize(context.Background(), types.ScanInput{}, analyses, types.ATSScore{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if !slices.Contains(feedback, "Insufficient experience: 3 years versus 5 required") {
		t.Errorf("missing experience shortfall in %v", feedback)
	}
	if !slices.Contains(feedback, "Education requirement not met: Bachelor's degree required") {
		t.Errorf("missing education shortfall in %v", feedback)
	}
}

func TestRuleFeedbackFormatIssuesCapped(t *testing.T) {
	analyses := fullAnalyses()
	analyses.Format.FormatIssues = []string{"no email address", "inconsistent dates", "missing skills section"}

	feedback, _, err := RuleFeedback{}.Synthesize(context.Background(), types.ScanInput{}, analyses, types.ATSScore{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	count := 0
	for _, item := range feedback {
		if strings.HasPrefix(item, "Format issue:") {
			count++
		}
	}
	if count != 2 {
		t.Errorf("got %d format issues, want 2: %v", count, feedback)
	}
	if slices.Contains(feedback, "Format issue: missing skills section") {
		t.Error("third format issue should be dropped")
	}
}

func TestRuleFeedbackPositives(t *testing.T) {
	analyses := fullAnalyses()
	analyses.Keywords.MatchScore = 85
	analyses.Skills.RequiredScore = 90

	feedback, _, err := RuleFeedback{}.Synthesize(context.Background(), types.ScanInput{}, analyses, types.ATSScore{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if !slices.Contains(feedback, "Strong keyword optimization") {
		t.Errorf("missing keyword praise in %v", feedback)
	}
	if !slices.Contains(feedback, "Excellent skills match") {
		t.Errorf("missing skills praise in %v", feedback)
	}
}

func TestRuleFeedbackCleanScan(t *testing.T) {
	// High scores but below the praise threshold produce empty feedback,
	// never nil.
	analyses := fullAnalyses()
	analyses.Keywords.MatchScore = 75
	analyses.Skills.RequiredScore = 75
	analyses.Experience.MeetsRequirement = true
	analyses.Education.MeetsRequirement = true

	feedback, _, err := RuleFeedback{}.Synthesize(context.Background(), types.ScanInput{}, analyses, types.ATSScore{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if feedback == nil {
		t.Fatal("feedback should be an empty list, not nil")
	}
	if len(feedback) != 0 {
		t.Errorf("unexpected feedback: %v", feedback)
	}
}

func TestNewFeedbackStrategy(t *testing.T) {
	if got := NewFeedbackStrategy("rules", nil).Name(); got != "rules" {
		t.Errorf("Name() = %q, want rules", got)
	}
	if got := NewFeedbackStrategy("unknown", nil).Name(); got != "rules" {
		t.Errorf("unknown strategy should fall back to rules, got %q", got)
	}
	if got := NewFeedbackStrategy("model", &fakeScanAnalyzer{}).Name(); got != "model" {
		t.Errorf("Name() = %q, want model", got)
	}
	// Model strategy without a provider cannot work; fall back.
	if got := NewFeedbackStrategy("model", nil).Name(); got != "rules" {
		t.Errorf("model strategy without provider should fall back to rules, got %q", got)
	}
}
