package formatters

import (
	"strings"
	"testing"

	"resumeflow/internal/types"
)

func sampleScanOutput() types.ScanOutput {
	return types.ScanOutput{
		AspectAnalyses: types.AspectAnalyses{
			Keywords: &types.KeywordAnalysis{
				MissedKeywords: []string{"kubernetes", "terraform"},
				MatchScore:     65,
			},
			Skills: &types.SkillAnalysis{
				MissingRequired: []string{"Go"},
				RequiredScore:   70,
			},
			Format: &types.FormatAnalysis{
				FormatScore:  90,
				FormatIssues: []string{"Tables detected"},
			},
		},
		Score: types.ATSScore{
			KeywordScore:    65,
			SkillsScore:     70,
			ExperienceScore: 80,
			EducationScore:  100,
			FormatScore:     90,
			OverallScore:    76,
		},
		Decision: types.DecisionPass,
		Feedback: []string{"Missing important keywords: kubernetes, terraform"},
	}
}

func sampleGenerateOutput() types.GenerateOutput {
	return types.GenerateOutput{
		Resume: "PROFESSIONAL SUMMARY\nExperienced engineer.",
		Evaluation: types.ResumeEvaluation{
			KeywordCoverage:  85,
			ATSFriendliness:  90,
			ClarityScore:     88,
			AchievementFocus: 80,
			OverallQuality:   86,
		},
		Iterations: 2,
		Status:     types.StatusConverged,
	}
}

func TestScanTextFormatter(t *testing.T) {
	output, err := (&ScanTextFormatter{}).Format(sampleScanOutput())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	for _, want := range []string{
		"Decision: PASS",
		"Overall Score: 76/100",
		"- kubernetes",
		"Missing Required Skills:",
		"Format Issues:",
		"1. Missing important keywords",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestScanMarkdownFormatter(t *testing.T) {
	output, err := (&ScanMarkdownFormatter{}).Format(sampleScanOutput())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if !strings.Contains(output, "# ATS Scan Result") {
		t.Error("Expected markdown heading")
	}
	if !strings.Contains(output, "| Keywords | 65/100 |") {
		t.Error("Expected score table row")
	}
}

func TestGenerateTextFormatter(t *testing.T) {
	output, err := (&GenerateTextFormatter{}).Format(sampleGenerateOutput())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	for _, want := range []string{
		"=== GENERATED RESUME ===",
		"Overall Quality:   86/100",
		"Revision iterations: 2",
		"Status: converged",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestFormatterTypeMismatch(t *testing.T) {
	if _, err := (&ScanTextFormatter{}).Format("not a scan output"); err == nil {
		t.Error("Expected error for wrong data type")
	}
	if _, err := (&GenerateMarkdownFormatter{}).Format(42); err == nil {
		t.Error("Expected error for wrong data type")
	}
}

func TestRegistryFallsBackToJSON(t *testing.T) {
	registry := NewFormatterRegistry()

	// Unregistered type with json format uses the generic formatter
	output, err := registry.Format(map[string]string{"key": "value"}, "json")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(output, `"key": "value"`) {
		t.Errorf("Expected JSON output, got %q", output)
	}

	// Unknown format has no fallback
	if _, err := registry.Format(sampleScanOutput(), "xml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestRegistrySelectsTypedFormatter(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format(sampleScanOutput(), "text")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(output, "=== ATS SCAN RESULT ===") {
		t.Error("Expected typed text formatter to be selected")
	}

	output, err = registry.Format(sampleGenerateOutput(), "markdown")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(output, "# Generated Resume") {
		t.Error("Expected typed markdown formatter to be selected")
	}
}
