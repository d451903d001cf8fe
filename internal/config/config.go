package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/hsinyulin/ledgerchat/internal/model"
)

// Config is the resolved application configuration.
type Config struct {
	// Database is the SQLite file holding the spending records.
	Database string
	// Journal is the JSONL file answered turns are appended to, empty
	// to disable journaling.
	Journal string
	// Language forces "zh" or "en"; "auto" detects per question.
	Language string
	// ShowConfidence toggles the confidence footer.
	ShowConfidence bool

	LLM LLMConfig
}

// LLMConfig selects the text-generation backend.
type LLMConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
}

// SetDefaults registers every configuration default with viper. Called
// once before reading the config file.
func SetDefaults() {
	viper.SetDefault("database.path", "~/.local/share/ledgerchat/ledgerchat.db")
	viper.SetDefault("journal.path", "~/.local/share/ledgerchat/journal.jsonl")
	viper.SetDefault("language", "auto")
	viper.SetDefault("confidence.show", true)
	viper.SetDefault("llm.provider", "local")
	viper.SetDefault("llm.model", "")
	viper.SetDefault("llm.base_url", "")
	viper.SetDefault("llm.temperature", 0.3)
	viper.SetDefault("llm.max_tokens", 800)
}

// Load resolves the configuration from viper.
func Load() (Config, error) {
	cfg := Config{
		Database:       ExpandPath(viper.GetString("database.path")),
		Journal:        ExpandPath(viper.GetString("journal.path")),
		Language:       viper.GetString("language"),
		ShowConfidence: viper.GetBool("confidence.show"),
		LLM: LLMConfig{
			Provider:    viper.GetString("llm.provider"),
			APIKey:      viper.GetString("llm.api_key"),
			BaseURL:     viper.GetString("llm.base_url"),
			Model:       viper.GetString("llm.model"),
			Temperature: viper.GetFloat64("llm.temperature"),
			MaxTokens:   viper.GetInt("llm.max_tokens"),
		},
	}

	switch cfg.Language {
	case "auto", string(model.LangChinese), string(model.LangEnglish):
	default:
		return Config{}, fmt.Errorf("invalid language %q, expected auto, zh or en", cfg.Language)
	}
	return cfg, nil
}

// ForcedLanguage maps the language setting to the detector's forced
// language, empty for auto-detection.
func (c Config) ForcedLanguage() model.Language {
	if c.Language == "auto" {
		return ""
	}
	return model.Language(c.Language)
}
