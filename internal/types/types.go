// Package types defines the shared data structures used across resumeflow.
package types

// Decision is the screening outcome for a scanned resume.
type Decision string

const (
	DecisionPass   Decision = "PASS"
	DecisionReview Decision = "REVIEW"
	DecisionReject Decision = "REJECT"
)

// ExperienceQuality buckets the model's assessment of work history.
type ExperienceQuality string

const (
	ExperienceHigh   ExperienceQuality = "high"
	ExperienceMedium ExperienceQuality = "medium"
	ExperienceLow    ExperienceQuality = "low"
)

// GenerateStatus reports how the revision loop ended.
type GenerateStatus string

const (
	// StatusConverged means the draft met the quality threshold.
	StatusConverged GenerateStatus = "converged"
	// StatusIterationBudgetExceeded means the loop stopped at max
	// iterations with the best draft so far. It is not an error.
	StatusIterationBudgetExceeded GenerateStatus = "iteration_budget_exceeded"
)

// ScanInput is the pair of documents the ATS scanner evaluates.
type ScanInput struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"jobDescription"`
}

// FormatAnalysis is the ATS-compatibility assessment of a resume's structure.
type FormatAnalysis struct {
	FormatScore  int      `json:"format_score"`
	Analysis     string   `json:"analysis"`
	FormatIssues []string `json:"format_issues"`
}

// KeywordAnalysis captures keyword overlap between resume and job description.
type KeywordAnalysis struct {
	JobKeywords    []string `json:"job_keywords"`
	ResumeKeywords []string `json:"resume_keywords"`
	MissedKeywords []string `json:"missed_keywords"`
	MatchScore     int      `json:"match_score"`
}

// SkillAnalysis compares required/preferred skills against the candidate's.
type SkillAnalysis struct {
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	CandidateSkills []string `json:"candidate_skills"`
	MissingRequired []string `json:"missing_required"`
	RequiredScore   int      `json:"required_score"`
	PreferredScore  int      `json:"preferred_score"`
}

// ExperienceAnalysis rates the candidate's work history against the role.
type ExperienceAnalysis struct {
	ExperienceQuality ExperienceQuality `json:"experience_quality"`
	ExperienceScore   int               `json:"experience_score"`
	EstimatedYears    int               `json:"estimated_years"`
	RequiredYears     int               `json:"required_years"`
	MeetsRequirement  bool              `json:"meets_requirement"`
	Analysis          string            `json:"analysis"`
}

// EducationAnalysis compares education levels on a 1..5 scale
// (1=high school, 2=associate, 3=bachelor, 4=master, 5=doctorate).
type EducationAnalysis struct {
	CandidateLevel    int    `json:"candidate_level"`
	RequiredLevel     int    `json:"required_level"`
	EducationScore    int    `json:"education_score"`
	MeetsRequirement  bool   `json:"meets_requirement"`
	RequiredEducation string `json:"required_education"`
}

// AspectAnalyses bundles the five per-aspect analyses produced by the
// scanner fan-out. Pointers distinguish "not produced" from zero values.
type AspectAnalyses struct {
	Format     *FormatAnalysis     `json:"format_analysis,omitempty"`
	Keywords   *KeywordAnalysis    `json:"keyword_analysis,omitempty"`
	Skills     *SkillAnalysis      `json:"skill_analysis,omitempty"`
	Experience *ExperienceAnalysis `json:"experience_analysis,omitempty"`
	Education  *EducationAnalysis  `json:"education_analysis,omitempty"`
}

// ScoreWeights is the per-aspect weighting used for the overall score.
type ScoreWeights struct {
	Keywords   float64 `json:"keywords"`
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Format     float64 `json:"format"`
}

// ATSScore is the weighted aggregate of the five aspect scores.
type ATSScore struct {
	KeywordScore    int          `json:"keyword_score"`
	SkillsScore     int          `json:"skills_score"`
	ExperienceScore int          `json:"experience_score"`
	EducationScore  int          `json:"education_score"`
	FormatScore     int          `json:"format_score"`
	OverallScore    int          `json:"overall_score"`
	Weights         ScoreWeights `json:"weights"`
}

// ScanOutput is the full result of an ATS scan.
type ScanOutput struct {
	AspectAnalyses
	Score    ATSScore `json:"final_score"`
	Decision Decision `json:"decision"`
	Feedback []string `json:"feedback"`
}

// GenerateInput drives the resume generator pipeline.
type GenerateInput struct {
	CandidateProfile string `json:"candidateProfile"`
	JobDescription   string `json:"jobDescription"`
	// OutputFormat is the formatting target for the final pass
	// (e.g. "markdown", "plain"). Defaults to markdown.
	OutputFormat string `json:"outputFormat,omitempty"`
	// HumanFeedback is optional reviewer guidance applied on revisions.
	HumanFeedback string `json:"humanFeedback,omitempty"`
}

// ProfileAnalysis summarizes the candidate profile against the target role.
type ProfileAnalysis struct {
	Strengths          []string `json:"strengths"`
	RelevantExperience []string `json:"relevant_experience"`
	SkillGaps          []string `json:"skill_gaps"`
	UniqueValueProps   []string `json:"unique_value_props"`
}

// JobAnalysis is the structured breakdown of a job description.
type JobAnalysis struct {
	RequiredSkills      []string `json:"required_skills"`
	PreferredSkills     []string `json:"preferred_skills"`
	KeyResponsibilities []string `json:"key_responsibilities"`
	CompanyCultureHints []string `json:"company_culture_hints"`
	Keywords            []string `json:"keywords"`
}

// MatchMatrix maps candidate strengths onto job requirements.
type MatchMatrix struct {
	SkillMatches             map[string]bool `json:"skill_matches"`
	ExperienceRelevanceScore int             `json:"experience_relevance_score"`
	EducationMatchScore      int             `json:"education_match_score"`
	OverallFitScore          int             `json:"overall_fit_score"`
	Recommendations          []string        `json:"recommendations"`
}

// ResumeSection is one named section split out of a generated resume.
type ResumeSection struct {
	SectionName  string   `json:"section_name"`
	Content      string   `json:"content"`
	KeywordsUsed []string `json:"keywords_used"`
}

// ResumeEvaluation scores a draft on the criteria the revision loop gates on.
type ResumeEvaluation struct {
	KeywordCoverage        int      `json:"keyword_coverage"`
	ATSFriendliness        int      `json:"ats_friendliness"`
	ClarityScore           int      `json:"clarity_score"`
	AchievementFocus       int      `json:"achievement_focus"`
	OverallQuality         int      `json:"overall_quality"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
}

// ResumeFeedback is the revision guidance derived from an evaluation.
type ResumeFeedback struct {
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
	SpecificRevisions []string `json:"specific_revisions"`
	PriorityChanges   []string `json:"priority_changes"`
}

// ResumeDraft is one versioned draft produced by the revision loop.
// Version 1 is the initial generation; each revision increments it.
type ResumeDraft struct {
	Version int    `json:"version"`
	Text    string `json:"text"`
}

// GenerateOutput is the full result of the generator pipeline.
type GenerateOutput struct {
	Resume     string           `json:"resume"`
	Sections   []ResumeSection  `json:"resume_sections"`
	Profile    *ProfileAnalysis `json:"profile_analysis,omitempty"`
	Job        *JobAnalysis     `json:"job_analysis,omitempty"`
	Matrix     *MatchMatrix     `json:"match_matrix,omitempty"`
	Evaluation ResumeEvaluation `json:"resume_evaluation"`
	Drafts     []ResumeDraft    `json:"drafts,omitempty"`
	Iterations int              `json:"iteration_count"`
	Status     GenerateStatus   `json:"status"`
}
