// Package settings holds the YAML settings file model: defaults, normalization,
// load/save and conversion into engine options.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tartampluch/go-kronometer/internal/config"
	"github.com/tartampluch/go-kronometer/internal/engine"
	"github.com/tartampluch/go-kronometer/internal/i18n"
	"gopkg.in/yaml.v3"
)

// Unit is one entry of the customTime section. Empty names are filled from the
// locale of the settings file.
type Unit struct {
	Singular string  `yaml:"singular,omitempty"`
	Plural   string  `yaml:"plural,omitempty"`
	Symbol   string  `yaml:"symbol,omitempty"`
	Value    float64 `yaml:"value"`
	Round    bool    `yaml:"round,omitempty"`
}

// CustomTime lists the five clock units.
type CustomTime struct {
	Second Unit `yaml:"second"`
	Minute Unit `yaml:"minute"`
	Hour   Unit `yaml:"hour"`
	Day    Unit `yaml:"day"`
	Year   Unit `yaml:"year"`
}

// Month is one calendar month.
type Month struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	Days   int    `yaml:"days"`
}

// Display is one date style: offsets plus the date, time and seconds templates.
type Display struct {
	OffsetTime     float64 `yaml:"offsetTime"`
	OffsetYear     int     `yaml:"offsetYear"`
	OffsetDay      int     `yaml:"offsetDay"`
	DisplayDate    string  `yaml:"displayDate"`
	DisplayTime    string  `yaml:"displayTime"`
	DisplaySeconds string  `yaml:"displaySeconds"`
}

// DisplayDates groups the three date styles.
type DisplayDates struct {
	PrintDate        Display `yaml:"printDate"`
	PrintDateNew     Display `yaml:"printDateNew"`
	PrintDateCompact Display `yaml:"printDateCompact"`
}

// Export configures the iCalendar export and the wall-clock mapping.
type Export struct {
	// Epoch is the RFC 3339 wall-clock instant of second zero.
	Epoch string `yaml:"epoch"`
	// Rate is the number of calendar seconds per real second.
	Rate float64 `yaml:"rate"`
	// Years is the number of calendar years exported.
	Years int `yaml:"years"`
}

// Server configures the HTTP feed.
type Server struct {
	Listen string `yaml:"listen"`
	// RefreshCron is a cron-style schedule string (e.g. "*/15 * * * *").
	RefreshCron string `yaml:"refresh"`
}

// Settings is the top-level settings file.
type Settings struct {
	Language                 string       `yaml:"language"`
	UseLeapYears             bool         `yaml:"useLeapYears"`
	ResetMonthsAfterYears    int          `yaml:"resetMonthsAfterYears"`
	ResetMonthNumAfterMonths int          `yaml:"resetMonthNumAfterMonths"`
	CustomTime               CustomTime   `yaml:"customTime"`
	Months                   []Month      `yaml:"months"`
	DisplayDate              DisplayDates `yaml:"displayDate"`
	Export                   Export       `yaml:"export"`
	Server                   Server       `yaml:"server"`
}

func displayFrom(t engine.DisplayTemplate) Display {
	return Display{
		OffsetTime:     t.OffsetTime,
		OffsetYear:     t.OffsetYear,
		OffsetDay:      t.OffsetDay,
		DisplayDate:    t.Date,
		DisplayTime:    t.Time,
		DisplaySeconds: t.Seconds,
	}
}

func (d Display) template() engine.DisplayTemplate {
	return engine.DisplayTemplate{
		OffsetTime: d.OffsetTime,
		OffsetYear: d.OffsetYear,
		OffsetDay:  d.OffsetDay,
		Date:       d.DisplayDate,
		Time:       d.DisplayTime,
		Seconds:    d.DisplaySeconds,
	}
}

func defaultUnitValues() CustomTime {
	u := engine.DefaultUnits(config.DefaultKerbinTime)
	return CustomTime{
		Second: Unit{Value: u[engine.Second].Value},
		Minute: Unit{Value: u[engine.Minute].Value},
		Hour:   Unit{Value: u[engine.Hour].Value},
		Day:    Unit{Value: u[engine.Day].Value},
		Year:   Unit{Value: u[engine.Year].Value},
	}
}

// DefaultSettings returns the stock settings: the Kerbin clock, no months and
// the stock display templates. Unit names come from the locale.
func DefaultSettings() *Settings {
	displays := engine.DefaultDisplays()
	return &Settings{
		Language:              config.DefaultLanguage,
		UseLeapYears:          config.DefaultUseLeapYears,
		ResetMonthsAfterYears: config.DefaultResetMonths,
		CustomTime:            defaultUnitValues(),
		Months:                []Month{},
		DisplayDate: DisplayDates{
			PrintDate:        displayFrom(displays.PrintDate),
			PrintDateNew:     displayFrom(displays.PrintDateNew),
			PrintDateCompact: displayFrom(displays.PrintDateCompact),
		},
		Export: Export{
			Epoch: config.DefaultEpoch,
			Rate:  config.DefaultExportRate,
			Years: config.DefaultExportYears,
		},
		Server: Server{
			Listen:      config.DefaultListen,
			RefreshCron: config.DefaultRefreshCron,
		},
	}
}

// Normalize fills in missing/zero values with defaults so that partially
// filled files still behave. A display style left out entirely gets the stock
// templates and offsets.
func (s *Settings) Normalize() {
	def := DefaultSettings()

	if s.Language == "" {
		s.Language = def.Language
	}
	if s.ResetMonthsAfterYears <= 0 {
		s.ResetMonthsAfterYears = def.ResetMonthsAfterYears
	}
	if s.ResetMonthNumAfterMonths < 0 {
		s.ResetMonthNumAfterMonths = 0
	}

	units := []*Unit{&s.CustomTime.Second, &s.CustomTime.Minute, &s.CustomTime.Hour, &s.CustomTime.Day, &s.CustomTime.Year}
	defaults := []Unit{def.CustomTime.Second, def.CustomTime.Minute, def.CustomTime.Hour, def.CustomTime.Day, def.CustomTime.Year}
	for i, u := range units {
		if u.Value == 0 {
			u.Value = defaults[i].Value
		}
	}

	if s.Months == nil {
		s.Months = []Month{}
	}

	displays := []*Display{&s.DisplayDate.PrintDate, &s.DisplayDate.PrintDateNew, &s.DisplayDate.PrintDateCompact}
	stock := []Display{def.DisplayDate.PrintDate, def.DisplayDate.PrintDateNew, def.DisplayDate.PrintDateCompact}
	for i, d := range displays {
		if *d == (Display{}) {
			*d = stock[i]
		}
	}

	if s.Export.Epoch == "" {
		s.Export.Epoch = def.Export.Epoch
	}
	if s.Export.Rate <= 0 {
		s.Export.Rate = def.Export.Rate
	}
	if s.Export.Years <= 0 {
		s.Export.Years = def.Export.Years
	}
	if s.Server.Listen == "" {
		s.Server.Listen = def.Server.Listen
	}
	if s.Server.RefreshCron == "" {
		s.Server.RefreshCron = def.Server.RefreshCron
	}
}

// Units converts the customTime section, taking empty names from cat.
func (s *Settings) Units(cat *i18n.Catalog) engine.UnitTable {
	conv := func(u Unit) engine.TimeUnit {
		return engine.TimeUnit{Singular: u.Singular, Plural: u.Plural, Symbol: u.Symbol, Value: u.Value, Round: u.Round}
	}
	t := engine.UnitTable{
		engine.Second: conv(s.CustomTime.Second),
		engine.Minute: conv(s.CustomTime.Minute),
		engine.Hour:   conv(s.CustomTime.Hour),
		engine.Day:    conv(s.CustomTime.Day),
		engine.Year:   conv(s.CustomTime.Year),
	}
	if cat != nil {
		t = cat.FillUnits(s.Language, t)
	}
	return t
}

// Options converts the settings into formatter options.
func (s *Settings) Options(cat *i18n.Catalog) engine.Options {
	months := make([]engine.Month, len(s.Months))
	for i, m := range s.Months {
		months[i] = engine.Month{Name: m.Name, Symbol: m.Symbol, Days: m.Days}
	}
	return engine.Options{
		Units:        s.Units(cat),
		Calendar:     engine.NewCalendar(months, s.ResetMonthsAfterYears, s.ResetMonthNumAfterMonths),
		UseLeapYears: s.UseLeapYears,
		Displays: engine.Displays{
			PrintDate:        s.DisplayDate.PrintDate.template(),
			PrintDateNew:     s.DisplayDate.PrintDateNew.template(),
			PrintDateCompact: s.DisplayDate.PrintDateCompact.template(),
		},
	}
}

// Formatter builds the formatter described by the settings. An
// engine.ErrInvalidUnits error means the custom clock must not be used.
func (s *Settings) Formatter(cat *i18n.Catalog) (*engine.Formatter, error) {
	return engine.NewFormatter(s.Options(cat))
}

// GameClock parses the export epoch and rate.
func (s *Settings) GameClock() (engine.GameClock, error) {
	epoch, err := time.Parse(time.RFC3339, s.Export.Epoch)
	if err != nil {
		return engine.GameClock{}, fmt.Errorf("%s: %w", config.ErrEpochParse, err)
	}
	return engine.NewGameClock(epoch, s.Export.Rate)
}

// DefaultPath returns the settings file location in the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrConfigDir, err)
	}
	return filepath.Join(dir, config.AppName, config.SettingsFileName), nil
}

// Load loads settings from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default file is written with 0600 perms
//     and the defaults are returned.
//   - Otherwise the YAML is unmarshalled and normalized.
func Load(path string) (*Settings, error) {
	if path == "" {
		return nil, errors.New(config.ErrSettingsPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info(config.MsgSettingsCreate,
				config.LogKeyComponent, config.CompSettings,
				config.LogKeyFile, path,
			)
			s := DefaultSettings()
			// Even if save fails, return the defaults with the error so the caller can decide.
			return s, Save(path, s)
		}
		return nil, fmt.Errorf("%s: %w", config.ErrSettingsRead, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSettingsParse, err)
	}
	s.Normalize()

	slog.Info(config.MsgSettingsLoaded,
		config.LogKeyComponent, config.CompSettings,
		config.LogKeyFile, path,
		config.LogKeyLeap, s.UseLeapYears,
		config.LogKeyMonths, len(s.Months),
	)
	return &s, nil
}

// Save normalizes s and writes it atomically via a temp file + rename. The
// parent directory is created with 0700 perms and the file ends up 0600.
func Save(path string, s *Settings) error {
	if path == "" {
		return errors.New(config.ErrSettingsPath)
	}
	if s == nil {
		return errors.New(config.ErrSettingsNil)
	}

	s.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSettingsWrite, err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSettingsWrite, err)
	}

	tmp, err := os.CreateTemp(dir, config.SettingsTempPrefix)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSettingsWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrSettingsWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrSettingsWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSettingsWrite, err)
	}
	if err := os.Chmod(tmpName, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSettingsWrite, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSettingsWrite, err)
	}
	return nil
}

// Save delegates to the package-level Save.
func (s *Settings) Save(path string) error {
	return Save(path, s)
}
