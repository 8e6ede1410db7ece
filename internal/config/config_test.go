package config

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"short fully masked", "secret", maskedValue},
		{"exactly eight fully masked", "12345678", maskedValue},
		{"long keeps edges", "my_long_secret_key_123", "my<" + maskedValue + ">23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskSecret(tt.input); got != tt.want {
				t.Errorf("maskSecret(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMarshalJSON_MasksSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.PostgresPassword = "super_secret_password"
	cfg.Search.APIKey = "tvly-abcdef1234567890"

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := string(data)
	if strings.Contains(out, "super_secret_password") {
		t.Error("postgres password leaked in JSON output")
	}
	if strings.Contains(out, "tvly-abcdef1234567890") {
		t.Error("search API key leaked in JSON output")
	}
	if !strings.Contains(out, maskedValue) {
		t.Error("expected masked placeholder in JSON output")
	}
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.PostgresPassword = "another_secret_value"

	if strings.Contains(cfg.String(), "another_secret_value") {
		t.Error("String() leaked postgres password")
	}
}

func TestPostgresURL(t *testing.T) {
	cfg := validConfig()
	cfg.PostgresPassword = "p@ss word"
	cfg.PostgresSSLMode = "disable"

	got := cfg.PostgresURL()
	if !strings.HasPrefix(got, "postgres://infosetu:") {
		t.Errorf("PostgresURL() = %q, want postgres:// prefix with user", got)
	}
	if strings.Contains(got, "p@ss word") {
		t.Errorf("PostgresURL() = %q, password must be escaped", got)
	}
	if !strings.HasSuffix(got, "/infosetu?sslmode=disable") {
		t.Errorf("PostgresURL() = %q, want db name and sslmode suffix", got)
	}
}

func TestFullModelName(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		model    string
		want     string
	}{
		{"gemini default", ProviderGemini, "gemini-2.5-flash", "googleai/gemini-2.5-flash"},
		{"ollama", ProviderOllama, "llama3.2", "ollama/llama3.2"},
		{"already qualified", ProviderGemini, "ollama/llama3.2", "ollama/llama3.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Provider: tt.provider, ModelName: tt.model}
			if got := cfg.FullModelName(); got != tt.want {
				t.Errorf("FullModelName() = %q, want %q", got, tt.want)
			}
		})
	}
}
