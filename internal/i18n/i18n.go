// Package i18n provides per-request localization for infosetu.
//
// Unlike a process-global locale, every query carries its own target
// language, so lookups take the language explicitly. Missing translations
// fall back to English.
package i18n

import "strings"

// Language is a supported response language.
type Language string

// Supported languages.
const (
	LangEN       Language = "en"
	LangHI       Language = "hi"
	LangBN       Language = "bn"
	LangMR       Language = "mr"
	LangTE       Language = "te"
	LangHinglish Language = "hinglish"
)

// Message keys.
const (
	MsgRateLimited   = "guardrail.rate_limited"
	MsgPIIAadhaar    = "guardrail.pii_aadhaar"
	MsgPIIPAN        = "guardrail.pii_pan"
	MsgPIIPhone      = "guardrail.pii_phone"
	MsgTransactional = "guardrail.transactional"
	MsgInjection     = "guardrail.injection"
	MsgNoInfo        = "answer.no_info"
	MsgDecline       = "answer.decline"
	MsgCapabilities  = "answer.capabilities"
)

// messages stores all translations, keyed by language then message key.
// English is the complete reference set; other languages may be partial and
// fall back to English per key.
var messages = map[Language]map[string]string{
	LangEN: messagesEN,
	LangHI: messagesHI,
}

// Normalize maps a raw language string to a supported Language.
// Unknown or empty values default to English.
func Normalize(raw string) Language {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "en", "en-us", "english":
		return LangEN
	case "hi", "hindi":
		return LangHI
	case "bn", "bengali", "bangla":
		return LangBN
	case "mr", "marathi":
		return LangMR
	case "te", "telugu":
		return LangTE
	case "hinglish", "hi-en":
		return LangHinglish
	default:
		return LangEN
	}
}

// Supported returns all supported language codes.
func Supported() []Language {
	return []Language{LangEN, LangHI, LangBN, LangMR, LangTE, LangHinglish}
}

// IsSupported reports whether lang is a supported language code.
func IsSupported(raw string) bool {
	lang := Language(strings.ToLower(strings.TrimSpace(raw)))
	for _, s := range Supported() {
		if lang == s {
			return true
		}
	}
	return false
}

// T returns the translated message for the given key in the given language.
// Falls back to English, then to the key itself if no translation exists.
func T(lang Language, key string) string {
	if msg, ok := messages[lang][key]; ok {
		return msg
	}
	if msg, ok := messages[LangEN][key]; ok {
		return msg
	}
	return key
}

// Instruction returns the generation-time language instruction binding the
// model's output language. Every supported language has an entry; unknown
// languages get the English instruction.
func Instruction(lang Language) string {
	if inst, ok := instructions[lang]; ok {
		return inst
	}
	return instructions[LangEN]
}

// instructions bind the model to the target output language. The hinglish
// instruction deliberately keeps technical terms in Latin script, matching
// how citizens actually mix the two.
var instructions = map[Language]string{
	LangEN: "You are an official government assistant. Respond strictly in English. Maintain a formal, helpful tone.",
	LangHI: "आप एक आधिकारिक सरकारी सहायक हैं। कृपया उत्तर केवल हिंदी (देवनागरी लिपि) में दें। औपचारिक और सहायक लहज़ा बनाए रखें।",
	LangBN: "আপনি একজন সরকারি সহায়ক। দয়া করে উত্তর শুধুমাত্র বাংলায় দিন। আনুষ্ঠানিক এবং সহায়ক সুর বজায় রাখুন।",
	LangMR: "तुम्ही एक अधिकृत सरकारी सहाय्यक आहात. कृपया उत्तर फक्त मराठीत द्या. औपचारिक आणि मदतीचा सूर ठेवा.",
	LangTE: "మీరు ప్రభుత్వ సహాయకులు. దయచేసి సమాధానం తెలుగులో మాత్రమే ఇవ్వండి. అధికారిక మరియు సహాయక ధోరణిని కొనసాగించండి.",
	LangHinglish: "You are an official government assistant. Respond in Hinglish. Use Devanagari script for conversational Hindi text, " +
		"but keep technical terms (like 'Aadhaar', 'Scheme', 'Apply') strictly in English (Latin script). " +
		"Example: 'Aadhaar Card ke liye apply karein'.",
}
