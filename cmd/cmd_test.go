package cmd

import "testing"

func TestParseRateBurst(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", 0},
		{"valid", "120", 120},
		{"invalid", "abc", 0},
		{"negative", "-5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("INFOSETU_RATE_BURST", tt.value)
			if got := parseRateBurst(); got != tt.want {
				t.Errorf("parseRateBurst() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunVersion(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SEARCH_API_KEY", "")
	if err := runVersion(); err != nil {
		t.Errorf("runVersion() error = %v", err)
	}
}
