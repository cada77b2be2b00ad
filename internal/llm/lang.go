package llm

import "strings"

// Language is the reply-language hint attached to generation prompts.
type Language string

const (
	// LanguageVietnamese instructs the model to answer in Vietnamese
	LanguageVietnamese Language = "vi"
	// LanguageEnglish instructs the model to answer in English
	LanguageEnglish Language = "en"
)

// Vietnamese letters that never occur in plain English text. ASCII-only
// Vietnamese input slips through and is treated as English, which is the
// acceptable failure mode for a hint.
const vietnameseLetters = "àáảãạăằắẳẵặâầấẩẫậèéẻẽẹêềếểễệìíỉĩịòóỏõọôồốổỗộơờớởỡợùúủũụưừứửữựỳýỷỹỵđ"

// DetectLanguage guesses the language of user-supplied prompt text so the
// model can be asked to reply in kind. Detection is a cheap character scan,
// not a classifier.
func DetectLanguage(text string) Language {
	lower := strings.ToLower(text)
	if strings.ContainsAny(lower, vietnameseLetters) {
		return LanguageVietnamese
	}
	return LanguageEnglish
}

// Instruction renders the hint as a sentence appended to system prompts.
func (l Language) Instruction() string {
	if l == LanguageVietnamese {
		return "Respond in Vietnamese."
	}
	return "Respond in English."
}
