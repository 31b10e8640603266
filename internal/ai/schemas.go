package ai

import "google.golang.org/genai"

// Response schemas mirror the structs in internal/types; every model call
// is constrained to JSON matching one of these.

func floatPtr(v float64) *float64 { return &v }

// scoreSchema is an integer bounded to the 0-100 scoring range.
func scoreSchema() *genai.Schema {
	return &genai.Schema{
		Type:    genai.TypeInteger,
		Minimum: floatPtr(0),
		Maximum: floatPtr(100),
	}
}

func stringListSchema() *genai.Schema {
	return &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
}

func formatAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"format_score":  scoreSchema(),
			"analysis":      {Type: genai.TypeString},
			"format_issues": stringListSchema(),
		},
		Required: []string{"format_score", "analysis", "format_issues"},
	}
}

func keywordAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"job_keywords":    stringListSchema(),
			"resume_keywords": stringListSchema(),
			"missed_keywords": stringListSchema(),
			"match_score":     scoreSchema(),
		},
		Required: []string{"job_keywords", "resume_keywords", "missed_keywords", "match_score"},
	}
}

func skillAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"required_skills":  stringListSchema(),
			"preferred_skills": stringListSchema(),
			"candidate_skills": stringListSchema(),
			"missing_required": stringListSchema(),
			"required_score":   scoreSchema(),
			"preferred_score":  scoreSchema(),
		},
		Required: []string{"required_skills", "preferred_skills", "candidate_skills", "missing_required", "required_score", "preferred_score"},
	}
}

func experienceAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"experience_quality": {Type: genai.TypeString, Enum: []string{"high", "medium", "low"}},
			"experience_score":   scoreSchema(),
			"estimated_years":    {Type: genai.TypeInteger, Minimum: floatPtr(0)},
			"required_years":     {Type: genai.TypeInteger, Minimum: floatPtr(0)},
			"meets_requirement":  {Type: genai.TypeBoolean},
			"analysis":           {Type: genai.TypeString},
		},
		Required: []string{"experience_quality", "experience_score", "estimated_years", "required_years", "meets_requirement", "analysis"},
	}
}

func educationAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"candidate_level":    {Type: genai.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(5)},
			"required_level":     {Type: genai.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(5)},
			"education_score":    scoreSchema(),
			"meets_requirement":  {Type: genai.TypeBoolean},
			"required_education": {Type: genai.TypeString},
		},
		Required: []string{"candidate_level", "required_level", "education_score", "meets_requirement", "required_education"},
	}
}

func feedbackListSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"feedback": stringListSchema(),
		},
		Required: []string{"feedback"},
	}
}

func profileAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"strengths":           stringListSchema(),
			"relevant_experience": stringListSchema(),
			"skill_gaps":          stringListSchema(),
			"unique_value_props":  stringListSchema(),
		},
		Required: []string{"strengths", "relevant_experience", "skill_gaps", "unique_value_props"},
	}
}

func jobAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"required_skills":       stringListSchema(),
			"preferred_skills":      stringListSchema(),
			"key_responsibilities":  stringListSchema(),
			"company_culture_hints": stringListSchema(),
			"keywords":              stringListSchema(),
		},
		Required: []string{"required_skills", "preferred_skills", "key_responsibilities", "company_culture_hints", "keywords"},
	}
}

func matchMatrixSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			// Keyed by skill name; genai cannot express open maps, so the
			// model returns match entries that are folded into the map.
			"skill_matches": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"skill":   {Type: genai.TypeString},
						"matched": {Type: genai.TypeBoolean},
					},
					Required: []string{"skill", "matched"},
				},
			},
			"experience_relevance_score": scoreSchema(),
			"education_match_score":      scoreSchema(),
			"overall_fit_score":          scoreSchema(),
			"recommendations":            stringListSchema(),
		},
		Required: []string{"skill_matches", "experience_relevance_score", "education_match_score", "overall_fit_score", "recommendations"},
	}
}

// resumeTextSchema wraps plain-text resume output so every operation
// stays on the structured JSON path.
func resumeTextSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"resume": {Type: genai.TypeString},
		},
		Required: []string{"resume"},
	}
}

func resumeEvaluationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"keyword_coverage":        scoreSchema(),
			"ats_friendliness":        scoreSchema(),
			"clarity_score":           scoreSchema(),
			"achievement_focus":       scoreSchema(),
			"overall_quality":         scoreSchema(),
			"improvement_suggestions": stringListSchema(),
		},
		Required: []string{"keyword_coverage", "ats_friendliness", "clarity_score", "achievement_focus", "overall_quality", "improvement_suggestions"},
	}
}

func resumeFeedbackSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"strengths":          stringListSchema(),
			"weaknesses":         stringListSchema(),
			"specific_revisions": stringListSchema(),
			"priority_changes":   stringListSchema(),
		},
		Required: []string{"strengths", "weaknesses", "specific_revisions", "priority_changes"},
	}
}

// generationConfig wraps a response schema in the request config, applying
// the operation's temperature when set.
func (g *GeminiProvider) generationConfig(schema *genai.Schema) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	if *g.config.Temperature > 0 {
		cfg.Temperature = g.config.Temperature
	}
	return cfg
}
