// Package i18n provides localized unit names and symbols from the embedded
// locale files.
package i18n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-kronometer/internal/config"
	"github.com/tartampluch/go-kronometer/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// unitKeys maps each unit to its name and symbol message IDs.
var unitKeys = [...]struct{ name, symbol string }{
	engine.Second: {config.TKeySecond, config.TKeySecondSymbol},
	engine.Minute: {config.TKeyMinute, config.TKeyMinuteSymbol},
	engine.Hour:   {config.TKeyHour, config.TKeyHourSymbol},
	engine.Day:    {config.TKeyDay, config.TKeyDaySymbol},
	engine.Year:   {config.TKeyYear, config.TKeyYearSymbol},
}

// Catalog holds the translation bundle and the languages found in it.
type Catalog struct {
	bundle    *goi18n.Bundle
	languages []string
}

// Load builds the catalog from the embedded locale files. Files that fail to
// load are logged and skipped.
func Load() *Catalog {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	c := &Catalog{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return c
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		c.languages = append(c.languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}
	return c
}

// Languages returns the language codes that loaded successfully.
func (c *Catalog) Languages() []string {
	return append([]string(nil), c.languages...)
}

// Text translates key for lang. The key itself is returned when no
// translation exists.
func (c *Catalog) Text(lang, key string) string {
	return c.localize(lang, &goi18n.LocalizeConfig{MessageID: key})
}

// Plural translates key for lang, choosing the plural form for count.
func (c *Catalog) Plural(lang, key string, count int) string {
	return c.localize(lang, &goi18n.LocalizeConfig{MessageID: key, PluralCount: count})
}

func (c *Catalog) localize(lang string, lc *goi18n.LocalizeConfig) string {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	key := lc.MessageID
	loc := goi18n.NewLocalizer(c.bundle, lang, config.DefaultLanguage)
	msg, err := loc.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyLang, lang,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// FillUnits returns units with every empty name or symbol taken from lang.
func (c *Catalog) FillUnits(lang string, units engine.UnitTable) engine.UnitTable {
	for k := range units {
		u := &units[k]
		keys := unitKeys[k]
		if u.Singular == "" {
			u.Singular = c.Plural(lang, keys.name, 1)
			c.logDefaulted(lang, keys.name)
		}
		if u.Plural == "" {
			u.Plural = c.Plural(lang, keys.name, 2)
			c.logDefaulted(lang, keys.name)
		}
		if u.Symbol == "" {
			u.Symbol = c.Text(lang, keys.symbol)
			c.logDefaulted(lang, keys.symbol)
		}
	}
	return units
}

func (c *Catalog) logDefaulted(lang, key string) {
	slog.Debug(config.MsgNameDefaulted,
		config.LogKeyComponent, config.CompI18n,
		config.LogKeyLang, lang,
		config.LogKeyKey, key,
	)
}
