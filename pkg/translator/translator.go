package translator

import (
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.French})

// InitTranslator loads every *.toml file of the translation folder. English is
// the fallback language and must come first in SupportedLanguages.
func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	tags := make([]language.Tag, 0, len(cfg.SupportedLanguages))
	for _, lang := range cfg.SupportedLanguages {
		tag, err := language.Parse(lang)
		if err != nil {
			zap.L().Warn("unsupported language in config", zap.String("lang", lang), zap.Error(err))
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) > 0 {
		matcher = language.NewMatcher(tags)
	}

	files, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
			continue
		}
		path := filepath.Join(cfg.TranslationFolder, f.Name())
		if _, err := Translator.LoadMessageFile(path); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

// Match picks the supported language closest to an Accept-Language header.
func Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	tag, _, _ := matcher.Match(tags...)
	base, _ := tag.Base()
	return base.String()
}
