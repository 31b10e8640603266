package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"resumeflow/internal/config"
	flowErrors "resumeflow/internal/errors"
	"resumeflow/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements ScanAnalyzer and ResumeWriter against Google Gemini.
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	operationType  string
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *flowErrors.Logger
}

var (
	_ ScanAnalyzer = (*GeminiProvider)(nil)
	_ ResumeWriter = (*GeminiProvider)(nil)
)

// NewGeminiProvider creates a Gemini provider for one operation type
// ("scan" or "generate"), carrying that operation's config.
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *flowErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, flowErrors.NewAIError(flowErrors.ErrCodeCompletionFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		operationType:  operationType,
		circuitBreaker: NewAICircuitBreaker(operationType, cfg, logger),
		modelBreaker:   NewModelCircuitBreaker(operationType, cfg, logger),
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

const modelCheckTimeout = 10 * time.Second

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Network errors (timeouts, connection refused) are worth retrying
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// executeAIOperation is a generic helper to run AI operations with common tracing, circuit breaker, and parsing logic.
func executeAIOperation[Out any](
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out
	tracer := otel.Tracer("resumeflow.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, flowErrors.NewAIError(flowErrors.ErrCodeCompletionFailed, "Failed to generate content for "+operationName, err)
	}

	if err := json.Unmarshal([]byte(result.Text()), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, flowErrors.NewAIError("AI_RESPONSE_PARSE_FAILED", "Failed to parse AI response for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return output, tokenUsage, nil
}

// AnalyzeFormat implements ScanAnalyzer
func (g *GeminiProvider) AnalyzeFormat(ctx context.Context, resume string) (types.FormatAnalysis, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpAnalyzeFormat), resume)

	output, tokenUsage, err := executeAIOperation[types.FormatAnalysis](
		g,
		ctx,
		OpAnalyzeFormat,
		userPrompt,
		g.getSystemPrompt(OpAnalyzeFormat),
		g.generationConfig(formatAnalysisSchema()),
		attribute.Int("input.resume_length", len(resume)),
	)
	if err != nil {
		return types.FormatAnalysis{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("format.score", output.FormatScore))
	}

	return output, tokenUsage, nil
}

// AnalyzeKeywords implements ScanAnalyzer
func (g *GeminiProvider) AnalyzeKeywords(ctx context.Context, resume, jobDescription string) (types.KeywordAnalysis, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpAnalyzeKeywords), jobDescription, resume)

	output, tokenUsage, err := executeAIOperation[types.KeywordAnalysis](
		g,
		ctx,
		OpAnalyzeKeywords,
		userPrompt,
		g.getSystemPrompt(OpAnalyzeKeywords),
		g.generationConfig(keywordAnalysisSchema()),
		attribute.Int("input.resume_length", len(resume)),
		attribute.Int("input.job_length", len(jobDescription)),
	)
	if err != nil {
		return types.KeywordAnalysis{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("keywords.match_score", output.MatchScore),
			attribute.Int("keywords.missed", len(output.MissedKeywords)),
		)
	}

	return output, tokenUsage, nil
}

// AnalyzeSkills implements ScanAnalyzer
func (g *GeminiProvider) AnalyzeSkills(ctx context.Context, resume, jobDescription string) (types.SkillAnalysis, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpAnalyzeSkills), jobDescription, resume)

	output, tokenUsage, err := executeAIOperation[types.SkillAnalysis](
		g,
		ctx,
		OpAnalyzeSkills,
		userPrompt,
		g.getSystemPrompt(OpAnalyzeSkills),
		g.generationConfig(skillAnalysisSchema()),
		attribute.Int("input.resume_length", len(resume)),
		attribute.Int("input.job_length", len(jobDescription)),
	)
	if err != nil {
		return types.SkillAnalysis{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("skills.required_score", output.RequiredScore),
			attribute.Int("skills.missing_required", len(output.MissingRequired)),
		)
	}

	return output, tokenUsage, nil
}

// AnalyzeExperience implements ScanAnalyzer
func (g *GeminiProvider) AnalyzeExperience(ctx context.Context, resume, jobDescription string) (types.ExperienceAnalysis, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpAnalyzeExperience), jobDescription, resume)

	output, tokenUsage, err := executeAIOperation[types.ExperienceAnalysis](
		g,
		ctx,
		OpAnalyzeExperience,
		userPrompt,
		g.getSystemPrompt(OpAnalyzeExperience),
		g.generationConfig(experienceAnalysisSchema()),
		attribute.Int("input.resume_length", len(resume)),
		attribute.Int("input.job_length", len(jobDescription)),
	)
	if err != nil {
		return types.ExperienceAnalysis{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("experience.score", output.ExperienceScore),
			attribute.String("experience.quality", string(output.ExperienceQuality)),
		)
	}

	return output, tokenUsage, nil
}

// AnalyzeEducation implements ScanAnalyzer
func (g *GeminiProvider) AnalyzeEducation(ctx context.Context, resume, jobDescription string) (types.EducationAnalysis, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpAnalyzeEducation), jobDescription, resume)

	output, tokenUsage, err := executeAIOperation[types.EducationAnalysis](
		g,
		ctx,
		OpAnalyzeEducation,
		userPrompt,
		g.getSystemPrompt(OpAnalyzeEducation),
		g.generationConfig(educationAnalysisSchema()),
		attribute.Int("input.resume_length", len(resume)),
		attribute.Int("input.job_length", len(jobDescription)),
	)
	if err != nil {
		return types.EducationAnalysis{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("education.score", output.EducationScore))
	}

	return output, tokenUsage, nil
}

// feedbackList wraps the model-written feedback bullet list.
type feedbackList struct {
	Feedback []string `json:"feedback"`
}

// ScanFeedback implements ScanAnalyzer; used by the model-delegated
// feedback strategy.
func (g *GeminiProvider) ScanFeedback(ctx context.Context, resume, jobDescription string) ([]string, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpScanFeedback), jobDescription, resume)

	output, tokenUsage, err := executeAIOperation[feedbackList](
		g,
		ctx,
		OpScanFeedback,
		userPrompt,
		g.getSystemPrompt(OpScanFeedback),
		g.generationConfig(feedbackListSchema()),
		attribute.Int("input.resume_length", len(resume)),
		attribute.Int("input.job_length", len(jobDescription)),
	)
	if err != nil {
		return nil, nil, err
	}

	return output.Feedback, tokenUsage, nil
}

// AnalyzeProfile implements ResumeWriter
func (g *GeminiProvider) AnalyzeProfile(ctx context.Context, candidateProfile, jobDescription string) (types.ProfileAnalysis, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpAnalyzeProfile), candidateProfile, jobDescription)

	output, tokenUsage, err := executeAIOperation[types.ProfileAnalysis](
		g,
		ctx,
		OpAnalyzeProfile,
		userPrompt,
		g.getSystemPrompt(OpAnalyzeProfile),
		g.generationConfig(profileAnalysisSchema()),
		attribute.Int("input.profile_length", len(candidateProfile)),
		attribute.Int("input.job_length", len(jobDescription)),
	)
	if err != nil {
		return types.ProfileAnalysis{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("profile.strengths", len(output.Strengths)),
			attribute.Int("profile.skill_gaps", len(output.SkillGaps)),
		)
	}

	return output, tokenUsage, nil
}

// AnalyzeJob implements ResumeWriter
func (g *GeminiProvider) AnalyzeJob(ctx context.Context, jobDescription string) (types.JobAnalysis, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpAnalyzeJob), jobDescription)

	output, tokenUsage, err := executeAIOperation[types.JobAnalysis](
		g,
		ctx,
		OpAnalyzeJob,
		userPrompt,
		g.getSystemPrompt(OpAnalyzeJob),
		g.generationConfig(jobAnalysisSchema()),
		attribute.Int("input.job_length", len(jobDescription)),
	)
	if err != nil {
		return types.JobAnalysis{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("job.required_skills", len(output.RequiredSkills)),
			attribute.Int("job.keywords", len(output.Keywords)),
		)
	}

	return output, tokenUsage, nil
}

// matchMatrixWire is the schema shape for the match matrix; skill matches
// arrive as entries and are folded into the map the rest of the pipeline uses.
type matchMatrixWire struct {
	SkillMatches []struct {
		Skill   string `json:"skill"`
		Matched bool   `json:"matched"`
	} `json:"skill_matches"`
	ExperienceRelevanceScore int      `json:"experience_relevance_score"`
	EducationMatchScore      int      `json:"education_match_score"`
	OverallFitScore          int      `json:"overall_fit_score"`
	Recommendations          []string `json:"recommendations"`
}

// BuildMatchMatrix implements ResumeWriter
func (g *GeminiProvider) BuildMatchMatrix(ctx context.Context, req MatchMatrixRequest) (types.MatchMatrix, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpMatchMatrix),
		promptJSON(req.Profile), promptJSON(req.Job), req.CandidateProfile)

	output, tokenUsage, err := executeAIOperation[matchMatrixWire](
		g,
		ctx,
		OpMatchMatrix,
		userPrompt,
		g.getSystemPrompt(OpMatchMatrix),
		g.generationConfig(matchMatrixSchema()),
		attribute.Int("input.profile_length", len(req.CandidateProfile)),
	)
	if err != nil {
		return types.MatchMatrix{}, nil, err
	}

	matrix := types.MatchMatrix{
		SkillMatches:             make(map[string]bool, len(output.SkillMatches)),
		ExperienceRelevanceScore: output.ExperienceRelevanceScore,
		EducationMatchScore:      output.EducationMatchScore,
		OverallFitScore:          output.OverallFitScore,
		Recommendations:          output.Recommendations,
	}
	for _, m := range output.SkillMatches {
		matrix.SkillMatches[m.Skill] = m.Matched
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("matrix.overall_fit", matrix.OverallFitScore))
	}

	return matrix, tokenUsage, nil
}

// resumeText wraps plain resume text so generation stays on the JSON path.
type resumeText struct {
	Resume string `json:"resume"`
}

// GenerateResume implements ResumeWriter
func (g *GeminiProvider) GenerateResume(ctx context.Context, req DraftRequest) (string, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpGenerateResume),
		req.CandidateProfile, promptJSON(req.Job), promptJSON(req.Matrix), req.KeywordTargetPercent)

	output, tokenUsage, err := executeAIOperation[resumeText](
		g,
		ctx,
		OpGenerateResume,
		userPrompt,
		g.getSystemPrompt(OpGenerateResume),
		g.generationConfig(resumeTextSchema()),
		attribute.Int("input.profile_length", len(req.CandidateProfile)),
	)
	if err != nil {
		return "", nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("output.resume_length", len(output.Resume)))
	}

	return output.Resume, tokenUsage, nil
}

// EvaluateResume implements ResumeWriter
func (g *GeminiProvider) EvaluateResume(ctx context.Context, req EvaluateRequest) (types.ResumeEvaluation, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpEvaluateResume),
		req.Resume, req.JobDescription, promptJSON(req.Keywords))

	output, tokenUsage, err := executeAIOperation[types.ResumeEvaluation](
		g,
		ctx,
		OpEvaluateResume,
		userPrompt,
		g.getSystemPrompt(OpEvaluateResume),
		g.generationConfig(resumeEvaluationSchema()),
		attribute.Int("input.resume_length", len(req.Resume)),
	)
	if err != nil {
		return types.ResumeEvaluation{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("evaluation.overall_quality", output.OverallQuality))
	}

	return output, tokenUsage, nil
}

// DraftFeedback implements ResumeWriter
func (g *GeminiProvider) DraftFeedback(ctx context.Context, req FeedbackRequest) (types.ResumeFeedback, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpDraftFeedback),
		promptJSON(req.Evaluation), req.Resume, promptJSON(req.Job), req.Iteration, req.MaxIterations)

	output, tokenUsage, err := executeAIOperation[types.ResumeFeedback](
		g,
		ctx,
		OpDraftFeedback,
		userPrompt,
		g.getSystemPrompt(OpDraftFeedback),
		g.generationConfig(resumeFeedbackSchema()),
		attribute.Int("feedback.iteration", req.Iteration),
	)
	if err != nil {
		return types.ResumeFeedback{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("feedback.priority_changes", len(output.PriorityChanges)))
	}

	return output, tokenUsage, nil
}

// ReviseResume implements ResumeWriter
func (g *GeminiProvider) ReviseResume(ctx context.Context, req ReviseRequest) (string, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpReviseResume),
		req.Resume, promptJSON(req.Feedback), promptJSON(req.Job), req.HumanFeedback)

	output, tokenUsage, err := executeAIOperation[resumeText](
		g,
		ctx,
		OpReviseResume,
		userPrompt,
		g.getSystemPrompt(OpReviseResume),
		g.generationConfig(resumeTextSchema()),
		attribute.Int("input.resume_length", len(req.Resume)),
	)
	if err != nil {
		return "", nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("output.resume_length", len(output.Resume)))
	}

	return output.Resume, tokenUsage, nil
}

// FormatResume implements ResumeWriter
func (g *GeminiProvider) FormatResume(ctx context.Context, resume, format string) (string, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(OpFormatResume), resume, format)

	output, tokenUsage, err := executeAIOperation[resumeText](
		g,
		ctx,
		OpFormatResume,
		userPrompt,
		g.getSystemPrompt(OpFormatResume),
		g.generationConfig(resumeTextSchema()),
		attribute.String("output.format", format),
	)
	if err != nil {
		return "", nil, err
	}

	return output.Resume, tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements Provider
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// getSystemPrompt resolves the system prompt for an operation:
// file-loaded content first, then config override, then the default.
func (g *GeminiProvider) getSystemPrompt(operation string) string {
	loaded := config.GetLoadedPrompts()
	return resolvePrompt(
		loaded.System[operation],
		g.config.CustomPrompts.System[operation],
		DefaultSystemPrompts[operation],
	)
}

// getUserPrompt resolves the user prompt template for an operation.
func (g *GeminiProvider) getUserPrompt(operation string) string {
	loaded := config.GetLoadedPrompts()
	return resolvePrompt(
		loaded.User[operation],
		g.config.CustomPrompts.User[operation],
		DefaultUserPrompts[operation],
	)
}

// resolvePrompt selects the correct prompt string based on a clear priority order:
// 1. A prompt loaded from a file.
// 2. A prompt defined directly in the configuration.
// 3. A hardcoded default prompt.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}

// promptJSON renders a value as indented JSON for embedding in prompts.
func promptJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
