package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"resumeflow/internal/observability"
	"resumeflow/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createScanHandler wraps the ATS scan handler with observability
func (s *Server) createScanHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeflow.api")
		ctx, span := tracer.Start(ctx, "api.scan")
		defer span.End()

		// Parse request
		var req ScanRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.Resume) == "" {
			err := fmt.Errorf("missing resume")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume", "resume field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if len(req.Resume) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume too large: %d chars", len(req.Resume))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume too large", fmt.Sprintf("resume exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}
		if len(req.JobDescription) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("jobDescription exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.Resume)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "scan"),
		)

		input := types.ScanInput{
			Resume:         req.Resume,
			JobDescription: req.JobDescription,
		}

		scanner, err := s.scanner()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "pipeline_creation"))
			writeErrorResponse(w, "Failed to create scan pipeline", err.Error(), http.StatusInternalServerError)
			return
		}

		// Track AI operation with observability and token usage
		metrics := om.GetMetrics()
		var result types.ScanOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "scan", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, scanErr := scanner.Run(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      scanErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_scanned", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to scan resume", err.Error(), http.StatusInternalServerError)
			return
		}

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "resume_scanned", true, om,
			attribute.Int("ats.score", result.Score.OverallScore),
			attribute.String("ats.decision", string(result.Decision)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", result.Score.OverallScore),
			attribute.String("ats.decision", string(result.Decision)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createGenerateHandler wraps the resume generation handler with observability
func (s *Server) createGenerateHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeflow.api")
		ctx, span := tracer.Start(ctx, "api.generate")
		defer span.End()

		var req GenerateRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.CandidateProfile) == "" {
			err := fmt.Errorf("missing candidate profile")
			span.RecordError(err)
			writeErrorResponse(w, "Missing candidate profile", "candidateProfile field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.profile_length", len(req.CandidateProfile)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "generate"),
		)

		input := types.GenerateInput{
			CandidateProfile: req.CandidateProfile,
			JobDescription:   req.JobDescription,
			OutputFormat:     req.OutputFormat,
			HumanFeedback:    req.HumanFeedback,
		}

		generator, err := s.generator()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "pipeline_creation"))
			writeErrorResponse(w, "Failed to create generation pipeline", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.GenerateOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "generate", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, genErr := generator.Run(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      genErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "resume_generated", false, om)
			writeErrorResponse(w, "Failed to generate resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_generated", true, om,
			attribute.Int("output.resume_length", len(result.Resume)),
			attribute.Int("quality_score", result.Evaluation.OverallQuality),
			attribute.String("generation.status", string(result.Status)))
		metrics.RecordRevisionIterations(ctx, result.Iterations, string(result.Status))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.resume_length", len(result.Resume)),
			attribute.Int("quality_score", result.Evaluation.OverallQuality),
			attribute.Int("iterations", result.Iterations),
			attribute.String("generation.status", string(result.Status)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
