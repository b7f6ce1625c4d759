package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-kronometer/internal/config"
	"github.com/tartampluch/go-kronometer/internal/engine"
)

func newDateCmd(a *app) *cobra.Command {
	var (
		style       string
		withTime    bool
		withSeconds bool
	)

	cmd := &cobra.Command{
		Use:     config.CmdDateUse,
		Short:   config.CmdDateShort,
		Example: config.CmdDateExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseSeconds(args[0])
			if err != nil {
				return err
			}
			if err := a.load(); err != nil {
				return err
			}
			out, err := renderDate(a.formatter, t, style, withTime, withSeconds)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&style, config.FlagStyle, config.StyleDate, config.FlagDescStyle)
	cmd.Flags().BoolVar(&withTime, config.FlagTime, false, config.FlagDescTime)
	cmd.Flags().BoolVar(&withSeconds, config.FlagSeconds, false, config.FlagDescSeconds)
	return cmd
}

func renderDate(f *engine.Formatter, t float64, style string, withTime, withSeconds bool) (string, error) {
	switch style {
	case config.StyleDate:
		return f.PrintDate(t, withTime, withSeconds), nil
	case config.StyleNew:
		return f.PrintDateNew(t, withTime), nil
	case config.StyleCompact:
		return f.PrintDateCompact(t, withTime, withSeconds), nil
	default:
		return "", fmt.Errorf("%s: %q", config.ErrUnknownStyle, style)
	}
}

// timeOptions are the flags of the time command.
type timeOptions struct {
	format      string
	days        bool
	years       bool
	values      int
	explicit    bool
	withTime    bool
	withSeconds bool
	abs         bool
}

func newTimeCmd(a *app) *cobra.Command {
	var o timeOptions

	cmd := &cobra.Command{
		Use:     config.CmdTimeUse,
		Short:   config.CmdTimeShort,
		Example: config.CmdTimeExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseSeconds(args[0])
			if err != nil {
				return err
			}
			if err := a.load(); err != nil {
				return err
			}
			out, err := renderTime(a.formatter, t, o)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.format, config.FlagFormat, config.FormatLong, config.FlagDescFormat)
	f.BoolVar(&o.days, config.FlagDays, false, config.FlagDescDays)
	f.BoolVar(&o.years, config.FlagYears, false, config.FlagDescYears)
	f.IntVar(&o.values, config.FlagValues, config.DefaultSignificant, config.FlagDescValues)
	f.BoolVar(&o.explicit, config.FlagExplicit, false, config.FlagDescExplicit)
	f.BoolVar(&o.withTime, config.FlagTime, false, config.FlagDescTime)
	f.BoolVar(&o.withSeconds, config.FlagSeconds, false, config.FlagDescSeconds)
	f.BoolVar(&o.abs, config.FlagAbs, false, config.FlagDescAbs)
	return cmd
}

func renderTime(f *engine.Formatter, t float64, o timeOptions) (string, error) {
	switch o.format {
	case config.FormatLong:
		return f.PrintTimeLong(t), nil
	case config.FormatStamp:
		return f.PrintTimeStamp(t, o.days, o.years), nil
	case config.FormatStampCompact:
		return f.PrintTimeStampCompact(t, o.days, o.years), nil
	case config.FormatSignificant:
		return f.PrintTime(t, o.values, o.explicit), nil
	case config.FormatCompact:
		return f.PrintTimeCompact(t, o.explicit), nil
	case config.FormatDelta:
		return f.PrintDateDelta(t, o.withTime, o.withSeconds, o.abs), nil
	case config.FormatDeltaCompact:
		return f.PrintDateDeltaCompact(t, o.withTime, o.withSeconds, o.abs), nil
	default:
		return "", fmt.Errorf("%s: %q", config.ErrUnknownFormat, o.format)
	}
}

func newUnitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUnitsUse,
		Short: config.CmdUnitsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			f := a.formatter
			units := f.Units()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, config.MsgUnitsOutput, units[engine.Year].Singular, f.SecondsPerYear())
			fmt.Fprintf(w, config.MsgUnitsOutput, units[engine.Day].Singular, f.SecondsPerDay())
			fmt.Fprintf(w, config.MsgUnitsOutput, units[engine.Hour].Singular, f.SecondsPerHour())
			fmt.Fprintf(w, config.MsgUnitsOutput, units[engine.Minute].Singular, f.SecondsPerMinute())
			fmt.Fprintf(w, config.MsgUnitsOutput, units[engine.Second].Singular, f.SecondsPerSecond())
			return nil
		},
	}
}
