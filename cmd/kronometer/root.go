package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-kronometer/internal/config"
	"github.com/tartampluch/go-kronometer/internal/engine"
	"github.com/tartampluch/go-kronometer/internal/i18n"
	"github.com/tartampluch/go-kronometer/internal/settings"
)

// app holds the state shared by every command.
type app struct {
	configPath string
	debug      bool
	logToFile  bool
	level      slog.LevelVar
	logCloser  io.Closer

	catalog   *i18n.Catalog
	settings  *settings.Settings
	formatter *engine.Formatter
}

func newRootCmd(a *app) *cobra.Command {
	var showVersion bool

	root := &cobra.Command{
		Use:           config.CmdName,
		Short:         config.CmdShort,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.level.Set(slog.LevelWarn)
			a.logCloser = setupLogging(&a.level, a.debug, a.logToFile)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, config.FlagConfig, "", config.FlagDescConfig)
	root.PersistentFlags().BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)
	root.Flags().BoolVar(&showVersion, config.FlagVersion, false, config.FlagDescVersion)

	root.AddCommand(
		newDateCmd(a),
		newTimeCmd(a),
		newUnitsCmd(a),
		newExportCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

// load reads the settings file and builds the formatter.
func (a *app) load() error {
	if a.configPath == "" {
		path, err := settings.DefaultPath()
		if err != nil {
			return err
		}
		a.configPath = path
	}

	s, err := settings.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.catalog == nil {
		a.catalog = i18n.Load()
	}

	f, err := a.formatterFor(s)
	if err != nil {
		return err
	}
	a.settings, a.formatter = s, f
	return nil
}

// formatterFor builds the formatter for s. Units that do not validate disable
// the custom clock and the stock formatter is used instead.
func (a *app) formatterFor(s *settings.Settings) (*engine.Formatter, error) {
	f, err := s.Formatter(a.catalog)
	if errors.Is(err, engine.ErrInvalidUnits) {
		slog.Warn(config.ErrFormatterFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyFile, a.configPath,
			config.LogKeyError, err,
		)
		return engine.NewDefaultFormatter(), nil
	}
	return f, err
}

func parseSeconds(arg string) (float64, error) {
	t, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrArgTimestamp, err)
	}
	return t, nil
}
