package i18n

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  Language
	}{
		{"en", LangEN},
		{"English", LangEN},
		{"hi", LangHI},
		{"Hindi", LangHI},
		{"bn", LangBN},
		{"mr", LangMR},
		{"te", LangTE},
		{"hinglish", LangHinglish},
		{"hi-en", LangHinglish},
		{"", LangEN},
		{"fr", LangEN},
		{"  HI  ", LangHI},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestT_FallsBackToEnglish(t *testing.T) {
	// Bengali has no message table; must serve the English string.
	got := T(LangBN, MsgDecline)
	want := T(LangEN, MsgDecline)
	if got != want {
		t.Errorf("T(bn) = %q, want English fallback %q", got, want)
	}
}

func TestT_HindiOverride(t *testing.T) {
	got := T(LangHI, MsgDecline)
	if got == T(LangEN, MsgDecline) {
		t.Error("expected Hindi translation for decline message, got English")
	}
	if !strings.Contains(got, "प्रयास") {
		t.Errorf("T(hi, decline) = %q, want Devanagari text", got)
	}
}

func TestT_UnknownKeyReturnsKey(t *testing.T) {
	if got := T(LangEN, "no.such.key"); got != "no.such.key" {
		t.Errorf("T() = %q, want key echo", got)
	}
}

func TestInstruction_AllLanguagesCovered(t *testing.T) {
	for _, lang := range Supported() {
		if Instruction(lang) == "" {
			t.Errorf("Instruction(%q) is empty", lang)
		}
	}
}

func TestInstruction_UnknownLanguageGetsEnglish(t *testing.T) {
	if got := Instruction(Language("xx")); got != Instruction(LangEN) {
		t.Errorf("Instruction(xx) = %q, want English instruction", got)
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported("hinglish") {
		t.Error("hinglish should be supported")
	}
	if IsSupported("de") {
		t.Error("de should not be supported")
	}
}
