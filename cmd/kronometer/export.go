package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-kronometer/internal/config"
	"github.com/tartampluch/go-kronometer/internal/engine"
	"github.com/tartampluch/go-kronometer/internal/ics"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		from  int
		years int
		out   string
	)

	cmd := &cobra.Command{
		Use:   config.CmdExportUse,
		Short: config.CmdExportShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			game, err := a.settings.GameClock()
			if err != nil {
				return err
			}

			x := &ics.Exporter{Formatter: a.formatter, Game: game, Clock: engine.RealClock{}}
			if !cmd.Flags().Changed(config.FlagFrom) {
				from = currentYear(a.formatter, game, time.Now())
			}
			if !cmd.Flags().Changed(config.FlagYears) {
				years = a.settings.Export.Years
			}

			data, err := x.Generate(cmd.Context(), from, years)
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrExport, err)
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, config.FilePermUserRW); err != nil {
				return fmt.Errorf("%s: %w", config.ErrExport, err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&from, config.FlagFrom, 0, config.FlagDescFrom)
	cmd.Flags().IntVar(&years, config.FlagYears, 0, config.FlagDescExportYears)
	cmd.Flags().StringVarP(&out, config.FlagOut, "o", "", config.FlagDescOut)
	return cmd
}

// currentYear is the calendar year the game clock is in at now.
func currentYear(f *engine.Formatter, game engine.GameClock, now time.Time) int {
	return f.Resolve(game.Seconds(now)).Year
}
