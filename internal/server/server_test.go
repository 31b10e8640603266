package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resumeflow/internal/config"
	flowErrors "resumeflow/internal/errors"
)

func testServer(apiKeys []string) *Server {
	logger, _ := flowErrors.New("error")
	return NewServer(&config.Config{}, ServerConfig{
		Host:           "localhost",
		Port:           "8080",
		Version:        "test",
		APIKeys:        apiKeys,
		MaxRequestSize: 1024,
	}, logger)
}

func TestAuthMiddleware(t *testing.T) {
	s := testServer([]string{"secret-key"})

	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{"missing key", "", "", http.StatusUnauthorized},
		{"invalid key", "X-API-Key", "wrong-key", http.StatusUnauthorized},
		{"valid key", "X-API-Key", "secret-key", http.StatusOK},
		{"valid bearer token", "Authorization", "Bearer secret-key", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/scan", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestAuthMiddlewareNoKeysConfigured(t *testing.T) {
	s := testServer(nil)

	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/scan", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected open access without configured keys, got %d", rec.Code)
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	s := testServer(nil)

	handler := s.requestSizeLimitMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		var req ScanRequest
		if err := parseJSONRequest(r, &req); err != nil {
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("body within limit", func(t *testing.T) {
		body := `{"resume":"short","jobDescription":"short"}`
		req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
	})

	t.Run("body over limit", func(t *testing.T) {
		body := `{"resume":"` + strings.Repeat("x", 2048) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for oversized body, got %d", rec.Code)
		}
	})
}

func TestParseJSONRequestContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")

	var out ScanRequest
	if err := parseJSONRequest(req, &out); err == nil {
		t.Error("Expected error for non-JSON content type")
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("short"); got != "****" {
		t.Errorf("Expected short keys to be fully masked, got %q", got)
	}
	if got := maskAPIKey("abcdefghijklmnop"); got != "abcdefgh****" {
		t.Errorf("Expected prefix mask, got %q", got)
	}
}

func TestRateLimiterAllow(t *testing.T) {
	logger, _ := flowErrors.New("error")
	limiter := NewRateLimiter(60, time.Minute, 2, logger)
	defer limiter.Close()

	// Burst capacity allows the first two requests
	if !limiter.Allow("ip:10.0.0.1") {
		t.Error("Expected first request to be allowed")
	}
	if !limiter.Allow("ip:10.0.0.1") {
		t.Error("Expected second request within burst to be allowed")
	}
	if limiter.Allow("ip:10.0.0.1") {
		t.Error("Expected request beyond burst capacity to be denied")
	}

	// A different key gets its own bucket
	if !limiter.Allow("ip:10.0.0.2") {
		t.Error("Expected request from a new key to be allowed")
	}
}

func TestGetRateLimitKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/scan", nil)
	req.Header.Set("X-API-Key", "key-123")
	req.RemoteAddr = "192.168.1.5:4567"

	if key := getRateLimitKey(req, true, true); key != "api:key-123" {
		t.Errorf("Expected API key based limiting, got %q", key)
	}
	if key := getRateLimitKey(req, false, true); key != "ip:192.168.1.5" {
		t.Errorf("Expected IP based limiting, got %q", key)
	}
	if key := getRateLimitKey(req, false, false); key != "" {
		t.Errorf("Expected empty key when limiting is disabled, got %q", key)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "10.1.2.3:9999", nil, "10.1.2.3"},
		{"x-forwarded-for", "10.1.2.3:9999", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"x-real-ip", "10.1.2.3:9999", map[string]string{"X-Real-IP": "198.51.100.4"}, "198.51.100.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := getClientIP(req); got != tt.want {
				t.Errorf("Expected client IP %q, got %q", tt.want, got)
			}
		})
	}
}
