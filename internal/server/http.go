package server

import (
	"time"

	"resumeflow/internal/ai"
	"resumeflow/internal/ats"
	"resumeflow/internal/config"
	flowErrors "resumeflow/internal/errors"
	"resumeflow/internal/generate"
)

// ScanRequest represents the request body for the scan endpoint
type ScanRequest struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"jobDescription"`
}

// GenerateRequest represents the request body for the generate endpoint
type GenerateRequest struct {
	CandidateProfile string `json:"candidateProfile"`
	JobDescription   string `json:"jobDescription"`
	OutputFormat     string `json:"outputFormat,omitempty"`
	HumanFeedback    string `json:"humanFeedback,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// AI provider registry shared by all pipelines
	Registry *ai.Registry

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *flowErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *flowErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		Registry:       ai.NewRegistry(logger),
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}

// scanner builds the ATS scan pipeline on the shared provider registry.
func (s *Server) scanner() (*ats.Scanner, error) {
	scanConfig := s.AppConfig.GetScanConfig()
	provider, err := s.Registry.Provider(&scanConfig, "scan")
	if err != nil {
		return nil, err
	}
	feedback := ats.NewFeedbackStrategy(s.AppConfig.ATS.FeedbackStrategy, provider)
	return ats.NewScanner(provider, feedback, s.Logger), nil
}

// generator builds the resume generation pipeline on the shared provider registry.
func (s *Server) generator() (*generate.Generator, error) {
	generateConfig := s.AppConfig.GetGenerateConfig()
	provider, err := s.Registry.Provider(&generateConfig, "generate")
	if err != nil {
		return nil, err
	}
	opts := generate.Options{
		MaxIterations:        s.AppConfig.Generate.MaxIterations,
		QualityThreshold:     s.AppConfig.Generate.QualityThreshold,
		KeywordTargetPercent: s.AppConfig.Generate.KeywordTargetPercent,
		KeepDrafts:           s.AppConfig.Generate.KeepDrafts,
	}
	return generate.NewGenerator(provider, opts, s.Logger), nil
}
