package main

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-kronometer/internal/config"
	"github.com/tartampluch/go-kronometer/internal/engine"
	"github.com/tartampluch/go-kronometer/internal/ics"
	"github.com/tartampluch/go-kronometer/internal/server"
	"github.com/tartampluch/go-kronometer/internal/settings"
	"github.com/tartampluch/go-kronometer/internal/watch"
	"github.com/tartampluch/go-kronometer/internal/worker"
)

// feedState is what the refresh job reads. It is replaced as a whole on reload.
type feedState struct {
	formatter *engine.Formatter
	game      engine.GameClock
	years     int
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdServeUse,
		Short: config.CmdServeShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.debug {
				a.level.Set(slog.LevelInfo)
			}
			logStartupInfo()

			if err := a.load(); err != nil {
				return err
			}
			return a.serve(cmd.Context())
		},
	}
}

// serve runs the feed server until ctx is cancelled.
func (a *app) serve(ctx context.Context) error {
	game, err := a.settings.GameClock()
	if err != nil {
		return err
	}

	clock := engine.RealClock{}
	srv := server.NewCalendarServer(a.settings.Server.Listen, clock)
	srv.SetFormatter(a.formatter, game)

	var state atomic.Pointer[feedState]
	state.Store(&feedState{formatter: a.formatter, game: game, years: a.settings.Export.Years})

	refresh := func(ctx context.Context) error {
		st := state.Load()
		x := &ics.Exporter{Formatter: st.formatter, Game: st.game, Clock: clock}
		data, err := x.Generate(ctx, currentYear(st.formatter, st.game, clock.Now()), st.years)
		if err != nil {
			return err
		}
		srv.Update(data)
		return nil
	}

	reload := func(ctx context.Context) error {
		s, err := settings.Load(a.configPath)
		if err != nil {
			return err
		}
		f, err := a.formatterFor(s)
		if err != nil {
			return err
		}
		g, err := s.GameClock()
		if err != nil {
			return err
		}
		state.Store(&feedState{formatter: f, game: g, years: s.Export.Years})
		srv.SetFormatter(f, g)
		return nil
	}

	w, err := watch.New(a.configPath, config.WatchDebounce)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	job, err := worker.New(a.settings.Server.RefreshCron, refresh, reload, w.Changes)
	if err != nil {
		return err
	}
	go job.Run(ctx)

	return srv.Start(ctx)
}
