// Package ics exports the year and month boundaries of the custom calendar as
// an iCalendar feed.
package ics

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-kronometer/internal/config"
	"github.com/tartampluch/go-kronometer/internal/engine"
	"github.com/teambition/rrule-go"
)

// Exporter turns calendar boundaries into VEVENTs placed on the wall clock.
type Exporter struct {
	Formatter *engine.Formatter
	// Game maps calendar seconds to wall-clock instants.
	Game engine.GameClock
	// Clock stamps DTSTAMP.
	Clock engine.Clock
}

// Generate returns a VCALENDAR covering calendar years [fromYear, fromYear+years).
// Every month start becomes an event. New years are a single recurring event
// when every year lasts the same whole number of wall seconds, one event per
// year otherwise.
func (x *Exporter) Generate(ctx context.Context, fromYear, years int) ([]byte, error) {
	start := time.Now()
	if years <= 0 {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(x.Clock.Now().UTC())

	var events []*ical.Event

	if period, ok := x.yearPeriod(); ok {
		ev, err := x.recurringNewYear(fromYear, years, period)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	} else {
		slog.Debug(config.MsgRRuleSkipped,
			config.LogKeyComponent, config.CompExport,
			config.LogKeyYear, x.Formatter.Units()[engine.Year].Value,
		)
		for y := fromYear; y < fromYear+years; y++ {
			events = append(events, x.newYear(y))
		}
	}

	for y := fromYear; y < fromYear+years; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, m := range x.Formatter.MonthStarts(y) {
			events = append(events, x.monthStart(y, m))
		}
	}

	for _, e := range events {
		e.Props.Set(dtStamp)
		cal.Children = append(cal.Children, e.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyEvents, len(events),
		config.LogKeyFrom, fromYear,
		config.LogKeyYears, years,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// yearPeriod returns the wall length of a year in seconds when every year has
// the same whole-second length.
func (x *Exporter) yearPeriod() (int, bool) {
	units := x.Formatter.Units()
	if x.Formatter.LeapYears() && math.Mod(units[engine.Year].Value, units[engine.Day].Value) != 0 {
		return 0, false
	}
	wall := units[engine.Year].Value / x.Game.Rate
	if wall < 1 || wall != math.Trunc(wall) || wall > math.MaxInt32 {
		return 0, false
	}
	return int(wall), true
}

func (x *Exporter) recurringNewYear(fromYear, years, period int) (*ical.Event, error) {
	at := x.Game.WallTime(x.Formatter.YearStart(fromYear)).UTC()

	opt := rrule.ROption{
		Freq:     rrule.SECONDLY,
		Interval: period,
		Count:    years,
		Dtstart:  at,
	}
	if period%config.WallSecondsPerDay == 0 {
		opt.Freq = rrule.DAILY
		opt.Interval = period / config.WallSecondsPerDay
	}
	if _, err := rrule.NewRRule(opt); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRRule, err)
	}

	year := x.Formatter.Units()[engine.Year].Singular
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatYearRRUID, config.ICalDomain))
	event.Props.SetText(config.PropSummary, fmt.Sprintf(config.FormatNewYearTitle, year))
	event.Props.SetDateTime(config.PropDTStart, at)
	event.Props.SetRecurrenceRule(&opt)
	return event, nil
}

func (x *Exporter) newYear(y int) *ical.Event {
	s := x.Formatter.YearStart(y)
	shown := x.Formatter.DisplayDate(s)

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatYearUID, y, config.ICalDomain))
	event.Props.SetText(config.PropSummary,
		fmt.Sprintf(config.FormatYearTitle, x.Formatter.Units()[engine.Year].Singular, shown.Year))
	event.Props.SetText(config.PropDesc, x.Formatter.PrintDate(s, true, true))
	event.Props.SetDateTime(config.PropDTStart, x.Game.WallTime(s).UTC())
	return event
}

func (x *Exporter) monthStart(y int, m engine.MonthStart) *ical.Event {
	shown := x.Formatter.DisplayDate(m.Seconds)

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatMonthUID, y, m.Lap, m.Index, config.ICalDomain))
	event.Props.SetText(config.PropSummary, fmt.Sprintf(config.FormatMonthTitle, m.Month.Name, shown.Year))
	event.Props.SetText(config.PropDesc, x.Formatter.PrintDate(m.Seconds, true, true))
	event.Props.SetDateTime(config.PropDTStart, x.Game.WallTime(m.Seconds).UTC())
	return event
}
