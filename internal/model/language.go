// Package model defines the core domain models used throughout the application.
package model

// Language identifies a supported conversation language.
type Language string

// Supported languages.
const (
	LangChinese Language = "zh"
	LangEnglish Language = "en"
)

// LanguageTag is the detected language of one question together with
// the detector's confidence in that call.
type LanguageTag struct {
	Code       Language
	Confidence float64
}
