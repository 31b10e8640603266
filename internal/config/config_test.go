package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func baseConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:         "gemini",
			Model:            "gemini-2.0-flash",
			Timeout:          60 * time.Second,
			APIKey:           "global-key",
			MaxRetries:       3,
			Temperature:      0.7,
			UseSystemPrompts: true,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      1024 * 1024,
		},
		Generate: GenerateConfig{
			MaxIterations:        3,
			QualityThreshold:     80,
			KeywordTargetPercent: 80,
		},
	}
}

func TestGetScanConfigAppliesGlobalDefaults(t *testing.T) {
	cfg := baseConfig()

	scan := cfg.GetScanConfig()

	assert.Equal(t, "gemini", scan.Provider)
	assert.Equal(t, "gemini-2.0-flash", scan.Model)
	assert.Equal(t, "global-key", scan.APIKey)
	if assert.NotNil(t, scan.Timeout) {
		assert.Equal(t, 60*time.Second, *scan.Timeout)
	}
	if assert.NotNil(t, scan.MaxRetries) {
		assert.Equal(t, 3, *scan.MaxRetries)
	}
	if assert.NotNil(t, scan.Temperature) {
		assert.InDelta(t, 0.7, float64(*scan.Temperature), 0.001)
	}
	if assert.NotNil(t, scan.UseSystemPrompts) {
		assert.True(t, *scan.UseSystemPrompts)
	}
}

func TestGetGenerateConfigKeepsPipelineOverrides(t *testing.T) {
	cfg := baseConfig()
	timeout := 90 * time.Second
	temperature := float32(0.2)
	cfg.AI.Generate = OperationAIConfig{
		Model:       "gemini-2.5-pro",
		Timeout:     &timeout,
		Temperature: &temperature,
		APIKey:      "generate-key",
	}

	gen := cfg.GetGenerateConfig()

	assert.Equal(t, "gemini", gen.Provider) // Falls back to global
	assert.Equal(t, "gemini-2.5-pro", gen.Model)
	assert.Equal(t, "generate-key", gen.APIKey)
	assert.Equal(t, 90*time.Second, *gen.Timeout)
	assert.InDelta(t, 0.2, float64(*gen.Temperature), 0.001)
}

func TestGetScanConfigMergesPromptMaps(t *testing.T) {
	cfg := baseConfig()
	cfg.AI.CustomPrompts = PromptConfig{
		System: map[string]string{
			"analyze_keywords": "global keywords prompt",
			"analyze_skills":   "global skills prompt",
		},
	}
	cfg.AI.Scan.CustomPrompts = PromptConfig{
		System: map[string]string{
			"analyze_keywords": "scan keywords prompt",
		},
	}

	scan := cfg.GetScanConfig()

	assert.Equal(t, "scan keywords prompt", scan.CustomPrompts.System["analyze_keywords"])
	assert.Equal(t, "global skills prompt", scan.CustomPrompts.System["analyze_skills"])
}

func TestValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, baseConfig().Validate())
	})

	t.Run("missing API key", func(t *testing.T) {
		cfg := baseConfig()
		cfg.AI.APIKey = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "API key is required")
	})

	t.Run("invalid default format", func(t *testing.T) {
		cfg := baseConfig()
		cfg.App.DefaultFormat = "pdf"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid default format")
	})

	t.Run("invalid feedback strategy", func(t *testing.T) {
		cfg := baseConfig()
		cfg.ATS.FeedbackStrategy = "oracle"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "feedback strategy")
	})

	t.Run("rules and model strategies accepted", func(t *testing.T) {
		for _, strategy := range []string{"", "rules", "model"} {
			cfg := baseConfig()
			cfg.ATS.FeedbackStrategy = strategy
			assert.NoError(t, cfg.Validate())
		}
	})

	t.Run("negative max iterations", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Generate.MaxIterations = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("quality threshold out of range", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Generate.QualityThreshold = 101
		assert.Error(t, cfg.Validate())
	})
}

func TestApplyServerAPIKeyFallbacks(t *testing.T) {
	cfg := baseConfig()
	t.Setenv("RESUMEFLOW_SERVER_APIKEYS", "key-a, key-b ,key-c")

	cfg.applyFallbacks()

	assert.Equal(t, []string{"key-a", "key-b", "key-c"}, cfg.Server.APIKeys)
}

func TestApplyFallbacksObservabilityInstance(t *testing.T) {
	cfg := baseConfig()
	cfg.Observability.ServiceName = "resumeflow"

	cfg.applyFallbacks()

	assert.NotEmpty(t, cfg.Observability.ServiceInstance)
	assert.Contains(t, cfg.Observability.ServiceInstance, "resumeflow-")
}
