package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumeflow/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vaultTestLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	require.NoError(t, err)
	return logger
}

// fakeVault serves the minimal KVv2 surface the client touches:
// the health endpoint plus logical reads for the given secret paths.
func fakeVault(t *testing.T, secrets map[string]map[string]any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/sys/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"initialized": true,
			"sealed":      false,
			"version":     "1.20.0",
		})
	})
	mux.HandleFunc("/v1/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/v1/")
		data, ok := secrets[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"errors": []string{}})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"data":     data,
				"metadata": map[string]any{"version": 1},
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	cfg := &Config{Vault: VaultConfig{Enabled: false}}

	err := ApplyVaultSecrets(cfg, vaultTestLogger(t))

	assert.NoError(t, err)
	assert.Empty(t, cfg.AI.APIKey)
	assert.Empty(t, cfg.Server.APIKeys)
}

func TestApplyVaultSecretsUnreachable(t *testing.T) {
	cfg := &Config{
		Vault: VaultConfig{
			Enabled: true,
			Address: "http://127.0.0.1:1",
			Token:   "test-token",
		},
	}

	err := ApplyVaultSecrets(cfg, vaultTestLogger(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "vault")
}

func TestApplyVaultSecretsOverridesOtherSources(t *testing.T) {
	srv := fakeVault(t, map[string]map[string]any{
		"secret/data/resumeflow/gemini": {"api_key": "vault-gemini-key"},
		"secret/data/resumeflow/server": {"keys": "srv-key-1, srv-key-2"},
	})

	cfg := &Config{
		AI: AIConfig{
			APIKey:   "env-gemini-key",
			Scan:     OperationAIConfig{APIKey: "scan-override"},
			Generate: OperationAIConfig{},
		},
		Vault: VaultConfig{
			Enabled: true,
			Address: srv.URL,
			Token:   "test-token",
			Secrets: VaultSecrets{
				GeminiKey: "secret/data/resumeflow/gemini",
				APIKeys:   "secret/data/resumeflow/server",
			},
		},
	}

	err := ApplyVaultSecrets(cfg, vaultTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "vault-gemini-key", cfg.AI.APIKey, "vault key wins over the env-sourced key")
	assert.Equal(t, "scan-override", cfg.AI.Scan.APIKey, "per-pipeline override survives")
	assert.Equal(t, "vault-gemini-key", cfg.AI.Generate.APIKey)
	assert.Equal(t, []string{"srv-key-1", "srv-key-2"}, cfg.Server.APIKeys)
}

func TestApplyVaultSecretsTLSContent(t *testing.T) {
	srv := fakeVault(t, map[string]map[string]any{
		"secret/data/resumeflow/tls": {
			"cert": "cert-pem",
			"key":  "key-pem",
			"ca":   "ca-pem",
		},
	})

	cfg := &Config{
		Vault: VaultConfig{
			Enabled: true,
			Address: srv.URL,
			Token:   "test-token",
			Secrets: VaultSecrets{TLSCerts: "secret/data/resumeflow/tls"},
		},
	}

	err := ApplyVaultSecrets(cfg, vaultTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "cert-pem", cfg.Server.TLS.CertContent)
	assert.Equal(t, "key-pem", cfg.Server.TLS.KeyContent)
	assert.Equal(t, "ca-pem", cfg.Server.TLS.CAContent)
}

func TestApplyVaultSecretsRejectsFilePathFields(t *testing.T) {
	srv := fakeVault(t, map[string]map[string]any{
		"secret/data/resumeflow/tls": {
			"cert_file": "/etc/tls/server.crt",
		},
	})

	cfg := &Config{
		Vault: VaultConfig{
			Enabled: true,
			Address: srv.URL,
			Token:   "test-token",
			Secrets: VaultSecrets{TLSCerts: "secret/data/resumeflow/tls"},
		},
	}

	err := ApplyVaultSecrets(cfg, vaultTestLogger(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cert_file")
	assert.Contains(t, err.Error(), "no longer supported")
}

func TestApplyVaultSecretsMissingSecret(t *testing.T) {
	srv := fakeVault(t, nil)

	cfg := &Config{
		Vault: VaultConfig{
			Enabled: true,
			Address: srv.URL,
			Token:   "test-token",
			Secrets: VaultSecrets{GeminiKey: "secret/data/resumeflow/absent"},
		},
	}

	err := ApplyVaultSecrets(cfg, vaultTestLogger(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load Gemini API key")
}

func TestResolveVaultToken(t *testing.T) {
	logger := vaultTestLogger(t)

	t.Run("direct token", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "direct"}, logger)
		require.NoError(t, err)
		assert.Equal(t, "direct", token)
	})

	t.Run("token file is trimmed", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("  from-file \n"), 0600))

		token, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile}, logger)
		require.NoError(t, err)
		assert.Equal(t, "from-file", token)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vault token is required")
	})
}

func TestParseVersionValue(t *testing.T) {
	for _, tt := range []struct {
		name    string
		input   any
		want    int64
		wantErr bool
	}{
		{name: "int64", input: int64(7), want: 7},
		{name: "json float", input: float64(7), want: 7},
		{name: "numeric string", input: "7", want: 7},
		{name: "garbage string", input: "seven", wantErr: true},
		{name: "slice", input: []string{"7"}, wantErr: true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVersionValue(tt.input, "secret/data/x")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// LoadConfig must consult Vault when it is enabled: a broken Vault must
// fail configuration loading instead of being silently skipped.
func TestLoadConfigFailsOnUnreachableVault(t *testing.T) {
	t.Setenv("RESUMEFLOW_AI_APIKEY", "env-key")
	t.Setenv("RESUMEFLOW_VAULT_ENABLED", "true")
	t.Setenv("RESUMEFLOW_VAULT_ADDRESS", "http://127.0.0.1:1")
	t.Setenv("RESUMEFLOW_VAULT_TOKEN", "test-token")

	_, err := LoadConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "vault")
}

func TestLoadConfigAppliesVaultGeminiKey(t *testing.T) {
	srv := fakeVault(t, map[string]map[string]any{
		"secret/data/resumeflow/gemini": {"api_key": "vault-gemini-key"},
	})

	t.Setenv("RESUMEFLOW_AI_APIKEY", "env-key")
	t.Setenv("RESUMEFLOW_VAULT_ENABLED", "true")
	t.Setenv("RESUMEFLOW_VAULT_ADDRESS", srv.URL)
	t.Setenv("RESUMEFLOW_VAULT_TOKEN", "test-token")
	t.Setenv("RESUMEFLOW_VAULT_SECRETS_GEMINIKEY", "secret/data/resumeflow/gemini")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "vault-gemini-key", cfg.AI.APIKey)
	assert.Equal(t, "vault-gemini-key", cfg.AI.Scan.APIKey)
	assert.Equal(t, "vault-gemini-key", cfg.AI.Generate.APIKey)
}
