package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumeflow/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ScanOutput", &ScanTextFormatter{})
	registry.RegisterFormatter("markdown", "ScanOutput", &ScanMarkdownFormatter{})
	registry.RegisterFormatter("text", "GenerateOutput", &GenerateTextFormatter{})
	registry.RegisterFormatter("markdown", "GenerateOutput", &GenerateMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ScanOutput:
		return "ScanOutput"
	case types.GenerateOutput:
		return "GenerateOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ScanTextFormatter handles text formatting for ATS scan results
type ScanTextFormatter struct{}

func (stf *ScanTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScanOutput)
	if !ok {
		return "", fmt.Errorf("expected ScanOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS SCAN RESULT ===\n\n")
	output.WriteString(fmt.Sprintf("Decision: %s\n", result.Decision))
	output.WriteString(fmt.Sprintf("Overall Score: %d/100\n\n", result.Score.OverallScore))

	output.WriteString("=== SCORE BREAKDOWN ===\n")
	output.WriteString(fmt.Sprintf("Keywords:   %d/100\n", result.Score.KeywordScore))
	output.WriteString(fmt.Sprintf("Skills:     %d/100\n", result.Score.SkillsScore))
	output.WriteString(fmt.Sprintf("Experience: %d/100\n", result.Score.ExperienceScore))
	output.WriteString(fmt.Sprintf("Education:  %d/100\n", result.Score.EducationScore))
	output.WriteString(fmt.Sprintf("Format:     %d/100\n\n", result.Score.FormatScore))

	if kw := result.Keywords; kw != nil && len(kw.MissedKeywords) > 0 {
		output.WriteString("Missed Keywords:\n")
		for _, keyword := range kw.MissedKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", keyword))
		}
		output.WriteString("\n")
	}

	if sk := result.Skills; sk != nil && len(sk.MissingRequired) > 0 {
		output.WriteString("Missing Required Skills:\n")
		for _, skill := range sk.MissingRequired {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	if f := result.Format; f != nil && len(f.FormatIssues) > 0 {
		output.WriteString("Format Issues:\n")
		for _, issue := range f.FormatIssues {
			output.WriteString(fmt.Sprintf("- %s\n", issue))
		}
		output.WriteString("\n")
	}

	if len(result.Feedback) > 0 {
		output.WriteString("=== FEEDBACK ===\n")
		for i, item := range result.Feedback {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
		}
	}

	return output.String(), nil
}

func (stf *ScanTextFormatter) SupportedType() string {
	return "ScanOutput"
}

// ScanMarkdownFormatter handles markdown formatting for ATS scan results
type ScanMarkdownFormatter struct{}

func (smf *ScanMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScanOutput)
	if !ok {
		return "", fmt.Errorf("expected ScanOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Scan Result\n\n")
	output.WriteString(fmt.Sprintf("**Decision:** %s\n\n", result.Decision))
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", result.Score.OverallScore))

	output.WriteString("## Score Breakdown\n\n")
	output.WriteString("| Aspect | Score |\n")
	output.WriteString("|--------|-------|\n")
	output.WriteString(fmt.Sprintf("| Keywords | %d/100 |\n", result.Score.KeywordScore))
	output.WriteString(fmt.Sprintf("| Skills | %d/100 |\n", result.Score.SkillsScore))
	output.WriteString(fmt.Sprintf("| Experience | %d/100 |\n", result.Score.ExperienceScore))
	output.WriteString(fmt.Sprintf("| Education | %d/100 |\n", result.Score.EducationScore))
	output.WriteString(fmt.Sprintf("| Format | %d/100 |\n\n", result.Score.FormatScore))

	if kw := result.Keywords; kw != nil && len(kw.MissedKeywords) > 0 {
		output.WriteString("## Missed Keywords\n\n")
		for _, keyword := range kw.MissedKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", keyword))
		}
		output.WriteString("\n")
	}

	if sk := result.Skills; sk != nil && len(sk.MissingRequired) > 0 {
		output.WriteString("## Missing Required Skills\n\n")
		for _, skill := range sk.MissingRequired {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	if exp := result.Experience; exp != nil {
		output.WriteString("## Experience\n\n")
		output.WriteString(fmt.Sprintf("**Quality:** %s\n\n", exp.ExperienceQuality))
		output.WriteString(fmt.Sprintf("**Years:** %d (required: %d)\n\n", exp.EstimatedYears, exp.RequiredYears))
		if exp.Analysis != "" {
			output.WriteString(exp.Analysis)
			output.WriteString("\n\n")
		}
	}

	if f := result.Format; f != nil && len(f.FormatIssues) > 0 {
		output.WriteString("## Format Issues\n\n")
		for _, issue := range f.FormatIssues {
			output.WriteString(fmt.Sprintf("- %s\n", issue))
		}
		output.WriteString("\n")
	}

	if len(result.Feedback) > 0 {
		output.WriteString("## Feedback\n\n")
		for i, item := range result.Feedback {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
		}
	}

	return output.String(), nil
}

func (smf *ScanMarkdownFormatter) SupportedType() string {
	return "ScanOutput"
}

// GenerateTextFormatter handles text formatting for generation results
type GenerateTextFormatter struct{}

func (gtf *GenerateTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.GenerateOutput)
	if !ok {
		return "", fmt.Errorf("expected GenerateOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== GENERATED RESUME ===\n\n")
	output.WriteString(result.Resume)
	output.WriteString("\n\n")

	output.WriteString("=== QUALITY EVALUATION ===\n")
	output.WriteString(fmt.Sprintf("Overall Quality:   %d/100\n", result.Evaluation.OverallQuality))
	output.WriteString(fmt.Sprintf("Keyword Coverage:  %d/100\n", result.Evaluation.KeywordCoverage))
	output.WriteString(fmt.Sprintf("ATS Friendliness:  %d/100\n", result.Evaluation.ATSFriendliness))
	output.WriteString(fmt.Sprintf("Clarity:           %d/100\n", result.Evaluation.ClarityScore))
	output.WriteString(fmt.Sprintf("Achievement Focus: %d/100\n\n", result.Evaluation.AchievementFocus))

	output.WriteString(fmt.Sprintf("Revision iterations: %d\n", result.Iterations))
	output.WriteString(fmt.Sprintf("Status: %s\n", result.Status))

	if len(result.Evaluation.ImprovementSuggestions) > 0 {
		output.WriteString("\n=== REMAINING SUGGESTIONS ===\n")
		for i, suggestion := range result.Evaluation.ImprovementSuggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
	}

	return output.String(), nil
}

func (gtf *GenerateTextFormatter) SupportedType() string {
	return "GenerateOutput"
}

// GenerateMarkdownFormatter handles markdown formatting for generation results
type GenerateMarkdownFormatter struct{}

func (gmf *GenerateMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.GenerateOutput)
	if !ok {
		return "", fmt.Errorf("expected GenerateOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Generated Resume\n\n")
	output.WriteString(result.Resume)
	output.WriteString("\n\n")

	output.WriteString("## Quality Evaluation\n\n")
	output.WriteString("| Criterion | Score |\n")
	output.WriteString("|-----------|-------|\n")
	output.WriteString(fmt.Sprintf("| Overall Quality | %d/100 |\n", result.Evaluation.OverallQuality))
	output.WriteString(fmt.Sprintf("| Keyword Coverage | %d/100 |\n", result.Evaluation.KeywordCoverage))
	output.WriteString(fmt.Sprintf("| ATS Friendliness | %d/100 |\n", result.Evaluation.ATSFriendliness))
	output.WriteString(fmt.Sprintf("| Clarity | %d/100 |\n", result.Evaluation.ClarityScore))
	output.WriteString(fmt.Sprintf("| Achievement Focus | %d/100 |\n\n", result.Evaluation.AchievementFocus))

	output.WriteString(fmt.Sprintf("**Revision iterations:** %d\n\n", result.Iterations))
	output.WriteString(fmt.Sprintf("**Status:** %s\n\n", result.Status))

	if matrix := result.Matrix; matrix != nil {
		output.WriteString("## Match Matrix\n\n")
		output.WriteString(fmt.Sprintf("**Overall Fit:** %d/100\n\n", matrix.OverallFitScore))
		output.WriteString(fmt.Sprintf("**Experience Relevance:** %d/100\n\n", matrix.ExperienceRelevanceScore))
		output.WriteString(fmt.Sprintf("**Education Match:** %d/100\n\n", matrix.EducationMatchScore))
		if len(matrix.Recommendations) > 0 {
			output.WriteString("### Recommendations\n")
			for _, recommendation := range matrix.Recommendations {
				output.WriteString(fmt.Sprintf("- %s\n", recommendation))
			}
			output.WriteString("\n")
		}
	}

	if len(result.Sections) > 0 {
		output.WriteString("## Sections\n\n")
		for _, section := range result.Sections {
			output.WriteString(fmt.Sprintf("- %s\n", section.SectionName))
		}
		output.WriteString("\n")
	}

	if len(result.Evaluation.ImprovementSuggestions) > 0 {
		output.WriteString("## Remaining Suggestions\n\n")
		for i, suggestion := range result.Evaluation.ImprovementSuggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
	}

	return output.String(), nil
}

func (gmf *GenerateMarkdownFormatter) SupportedType() string {
	return "GenerateOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
