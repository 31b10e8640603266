package ai

import (
	"testing"
	"time"

	"resumeflow/internal/config"
)

func breakerConfig(model string, maxRequests uint32, minRequests uint32, threshold float64) *config.OperationAIConfig {
	return &config.OperationAIConfig{
		Provider: "gemini",
		Model:    model,
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      maxRequests,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      minRequests,
			FailureThreshold: threshold,
		},
	}
}

func TestIndependentCircuitBreakerConfigurations(t *testing.T) {
	// The scan and generate pipelines each get their own breaker with
	// their own thresholds.
	scanCB := NewAICircuitBreaker("scan", breakerConfig("gemini-2.5-flash", 3, 3, 0.6), nil)
	generateCB := NewAICircuitBreaker("generate", breakerConfig("gemini-2.5-pro", 5, 2, 0.7), nil)

	t.Run("ScanBreaker", func(t *testing.T) {
		stats := scanCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}
		if name != "AI-scan" {
			t.Errorf("Expected circuit breaker name 'AI-scan', got '%s'", name)
		}

		state, ok := stats["state"].(string)
		if !ok {
			t.Fatal("Circuit breaker state not found")
		}
		if state != "closed" {
			t.Errorf("Expected initial state 'closed', got '%s'", state)
		}

		enabled, ok := stats["enabled"].(bool)
		if !ok {
			t.Fatal("Circuit breaker enabled status not found")
		}
		if !enabled {
			t.Error("Circuit breaker should be enabled")
		}
	})

	t.Run("GenerateBreaker", func(t *testing.T) {
		stats := generateCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}
		if name != "AI-generate" {
			t.Errorf("Expected circuit breaker name 'AI-generate', got '%s'", name)
		}
	})

	t.Run("IndependentInstances", func(t *testing.T) {
		if scanCB == generateCB {
			t.Error("Scan and generate circuit breakers should be different instances")
		}
	})

	t.Run("IndependentHealthStates", func(t *testing.T) {
		if !scanCB.IsHealthy() {
			t.Error("Scan circuit breaker should be healthy initially")
		}
		if !generateCB.IsHealthy() {
			t.Error("Generate circuit breaker should be healthy initially")
		}
	})
}

func TestCircuitBreakerDisabled(t *testing.T) {
	disabledConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: false,
		},
	}

	cb := NewAICircuitBreaker("scan", disabledConfig, nil)
	if cb != nil {
		t.Fatal("Circuit breaker should be nil when disabled")
	}

	// A nil breaker executes the call directly and reports healthy.
	if !cb.IsHealthy() {
		t.Error("Disabled circuit breaker should report healthy")
	}
	stats := cb.GetStats()
	if enabled, _ := stats["enabled"].(bool); enabled {
		t.Error("Disabled circuit breaker stats should report enabled=false")
	}
}

func TestUsageTally(t *testing.T) {
	var tally UsageTally

	if tally.Total() != nil {
		t.Fatal("Empty tally should report nil usage")
	}

	tally.Add(&TokenUsage{InputTokens: 100, OutputTokens: 20, TotalTokens: 120})
	tally.Add(nil)
	tally.Add(&TokenUsage{InputTokens: 50, OutputTokens: 10, TotalTokens: 60})

	total := tally.Total()
	if total == nil {
		t.Fatal("Tally with recorded usage should not be nil")
	}
	if total.InputTokens != 150 || total.OutputTokens != 30 || total.TotalTokens != 180 {
		t.Errorf("Unexpected totals: %+v", total)
	}
}

func TestDefaultPromptsCoverAllOperations(t *testing.T) {
	for _, op := range Operations {
		if DefaultSystemPrompts[op] == "" {
			t.Errorf("Operation %q has no default system prompt", op)
		}
		if DefaultUserPrompts[op] == "" {
			t.Errorf("Operation %q has no default user prompt", op)
		}
	}
}
