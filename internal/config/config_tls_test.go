package config

import (
	"strings"
	"testing"
)

func tlsConfig(tls TLSConfig) *Config {
	return &Config{Server: ServerConfig{TLS: tls}}
}

func TestValidateTLSConfigModes(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr string
	}{
		{
			name: "disabled mode needs nothing",
			tls:  TLSConfig{Mode: "disabled"},
		},
		{
			name:    "unknown mode",
			tls:     TLSConfig{Mode: "tls13-only"},
			wantErr: "invalid TLS mode",
		},
		{
			name: "server mode with cert files",
			tls:  TLSConfig{Mode: "server", CertFile: "server.crt", KeyFile: "server.key"},
		},
		{
			name: "server mode with inline content",
			tls:  TLSConfig{Mode: "server", CertContent: "cert-pem", KeyContent: "key-pem"},
		},
		{
			name:    "server mode missing key",
			tls:     TLSConfig{Mode: "server", CertFile: "server.crt"},
			wantErr: "certificate and key are required",
		},
		{
			name:    "server mode missing everything",
			tls:     TLSConfig{Mode: "server"},
			wantErr: "certificate and key are required",
		},
		{
			name: "mutual mode with CA file",
			tls: TLSConfig{
				Mode: "mutual", CertFile: "server.crt", KeyFile: "server.key", CAFile: "ca.crt",
			},
		},
		{
			name: "mutual mode with CA content",
			tls: TLSConfig{
				Mode: "mutual", CertContent: "cert-pem", KeyContent: "key-pem", CAContent: "ca-pem",
			},
		},
		{
			name: "mutual mode missing CA",
			tls: TLSConfig{
				Mode: "mutual", CertFile: "server.crt", KeyFile: "server.key",
			},
			wantErr: "CA certificate is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tlsConfig(tt.tls).ValidateTLSConfig()
			checkTLSErr(t, err, tt.wantErr)
		})
	}
}

func TestValidateTLSConfigRejectsDuplicateSources(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr string
	}{
		{
			name: "cert file and content",
			tls: TLSConfig{
				Mode: "server", CertFile: "server.crt", CertContent: "cert-pem", KeyFile: "server.key",
			},
			wantErr: "both certFile and certContent",
		},
		{
			name: "key file and content",
			tls: TLSConfig{
				Mode: "server", CertFile: "server.crt", KeyFile: "server.key", KeyContent: "key-pem",
			},
			wantErr: "both keyFile and keyContent",
		},
		{
			name: "CA file and content",
			tls: TLSConfig{
				Mode: "mutual", CertFile: "server.crt", KeyFile: "server.key",
				CAFile: "ca.crt", CAContent: "ca-pem",
			},
			wantErr: "both caFile and caContent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tlsConfig(tt.tls).ValidateTLSConfig()
			checkTLSErr(t, err, tt.wantErr)
		})
	}
}

func TestValidateTLSConfigClientAuthPolicy(t *testing.T) {
	base := TLSConfig{
		Mode: "mutual", CertFile: "server.crt", KeyFile: "server.key", CAFile: "ca.crt",
	}

	for _, policy := range []string{"", "require", "request", "verify"} {
		tls := base
		tls.ClientAuthPolicy = policy
		if err := tlsConfig(tls).ValidateTLSConfig(); err != nil {
			t.Errorf("policy %q rejected: %v", policy, err)
		}
	}

	tls := base
	tls.ClientAuthPolicy = "optional"
	err := tlsConfig(tls).ValidateTLSConfig()
	checkTLSErr(t, err, "invalid clientAuthPolicy")
}

func TestValidateTLSConfigMinVersion(t *testing.T) {
	for _, version := range []string{"", "1.2", "1.3"} {
		tls := TLSConfig{Mode: "disabled", MinVersion: version}
		if err := tlsConfig(tls).ValidateTLSConfig(); err != nil {
			t.Errorf("minVersion %q rejected: %v", version, err)
		}
	}

	tls := TLSConfig{Mode: "disabled", MinVersion: "1.0"}
	err := tlsConfig(tls).ValidateTLSConfig()
	checkTLSErr(t, err, "invalid TLS minVersion")
}

func checkTLSErr(t *testing.T, err error, want string) {
	t.Helper()
	if want == "" {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not contain %q", err.Error(), want)
	}
}
