package engine

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/tartampluch/go-kronometer/internal/config"
)

// DisplayTemplate is one date style: the three template parts and the offsets
// applied around date resolution.
type DisplayTemplate struct {
	// OffsetTime is added to the timestamp before resolution.
	OffsetTime float64
	// OffsetYear and OffsetDay are added to the resolved year and days.
	OffsetYear int
	OffsetDay  int
	Date       string
	Time       string
	Seconds    string
}

// Displays groups the three date styles.
type Displays struct {
	PrintDate        DisplayTemplate
	PrintDateNew     DisplayTemplate
	PrintDateCompact DisplayTemplate
}

// DefaultDisplays returns the stock templates, with 1-indexed years and days.
func DefaultDisplays() Displays {
	mk := func(date, tm, secs string) DisplayTemplate {
		return DisplayTemplate{
			OffsetTime: config.DefaultOffsetTime,
			OffsetYear: config.DefaultOffsetYear,
			OffsetDay:  config.DefaultOffsetDay,
			Date:       date,
			Time:       tm,
			Seconds:    secs,
		}
	}
	return Displays{
		PrintDate:        mk(config.TmplDate, config.TmplTime, config.TmplSeconds),
		PrintDateNew:     mk(config.TmplNewDate, config.TmplNewTime, config.TmplNewSeconds),
		PrintDateCompact: mk(config.TmplCompactDate, config.TmplCompactTime, config.TmplCompactSecs),
	}
}

// Options is everything a Formatter is built from.
type Options struct {
	Units        UnitTable
	Calendar     Calendar
	UseLeapYears bool
	Displays     Displays
}

type compiledDisplay struct {
	DisplayTemplate
	date, time, seconds CompiledTemplate
}

func compileDisplay(t DisplayTemplate, units UnitTable) compiledDisplay {
	return compiledDisplay{
		DisplayTemplate: t,
		date:            Compile(t.Date, units),
		time:            Compile(t.Time, units),
		seconds:         Compile(t.Seconds, units),
	}
}

// Formatter renders elapsed seconds with a custom clock and calendar.
// It is immutable once built and safe for concurrent use.
type Formatter struct {
	units     UnitTable
	shape     yearShape
	calendar  Calendar
	leapYears bool

	printDate        compiledDisplay
	printDateNew     compiledDisplay
	printDateCompact compiledDisplay
}

// NewFormatter validates the units and compiles the display templates.
// A validation error means the custom clock must not be used.
func NewFormatter(opts Options) (*Formatter, error) {
	units := opts.Units.normalized()
	if err := units.Validate(); err != nil {
		return nil, err
	}

	cal := NewCalendar(opts.Calendar.Months, opts.Calendar.ResetMonths, opts.Calendar.ResetMonthNum)
	for i, m := range cal.Months {
		if m.Days < 0 {
			return nil, fmt.Errorf("%s: month %d (%s) = %d", config.ErrMonthDays, i, m.Name, m.Days)
		}
	}

	f := &Formatter{
		units:            units,
		shape:            units.shape(),
		calendar:         cal,
		leapYears:        opts.UseLeapYears,
		printDate:        compileDisplay(opts.Displays.PrintDate, units),
		printDateNew:     compileDisplay(opts.Displays.PrintDateNew, units),
		printDateCompact: compileDisplay(opts.Displays.PrintDateCompact, units),
	}

	slog.Debug(config.MsgFormatterReady,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyYear, units[Year].Value,
		config.LogKeyDay, units[Day].Value,
		config.LogKeyMonths, len(cal.Months),
		config.LogKeyLeap, opts.UseLeapYears)
	return f, nil
}

// NewDefaultFormatter returns the stock 6 hour day, 426 day year clock with no
// months. It is the fallback when custom units do not validate.
func NewDefaultFormatter() *Formatter {
	f, err := NewFormatter(Options{
		Units:    DefaultUnits(config.DefaultKerbinTime),
		Calendar: NewCalendar(nil, config.DefaultResetMonths, 0),
		Displays: DefaultDisplays(),
	})
	if err != nil {
		panic(err)
	}
	return f
}

// Units returns the unit table in use.
func (f *Formatter) Units() UnitTable { return f.units }

// Calendar returns a copy of the calendar in use.
func (f *Formatter) Calendar() Calendar {
	c := f.calendar
	c.Months = append([]Month(nil), c.Months...)
	return c
}

// LeapYears reports whether dates are resolved with leap-carry.
func (f *Formatter) LeapYears() bool { return f.leapYears }

// Displays returns the display templates in use.
func (f *Formatter) Displays() Displays {
	return Displays{
		PrintDate:        f.printDate.DisplayTemplate,
		PrintDateNew:     f.printDateNew.DisplayTemplate,
		PrintDateCompact: f.printDateCompact.DisplayTemplate,
	}
}

func (f *Formatter) SecondsPerSecond() int { return f.units.seconds(Second) }
func (f *Formatter) SecondsPerMinute() int { return f.units.seconds(Minute) }
func (f *Formatter) SecondsPerHour() int   { return f.units.seconds(Hour) }
func (f *Formatter) SecondsPerDay() int    { return f.units.seconds(Day) }
func (f *Formatter) SecondsPerYear() int   { return f.units.seconds(Year) }

// GetTime breaks a duration into years, days, hours, minutes and seconds by
// floor division. Days are not wrapped at the year length.
func (f *Formatter) GetTime(t float64) Span {
	return f.units.decompose(t)
}

// checkNum returns the sentinel for NaN and infinite timestamps.
func checkNum(t float64) (string, bool) {
	switch {
	case math.IsNaN(t):
		return config.SentinelNaN, true
	case math.IsInf(t, 1):
		return config.SentinelPosInf, true
	case math.IsInf(t, -1):
		return config.SentinelNegInf, true
	}
	return "", false
}

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 64)
		return &b
	},
}

func getBuf() *[]byte {
	return bufPool.Get().(*[]byte)
}

// release returns the buffer contents as a string and puts the buffer back.
func release(b *[]byte) string {
	s := string(*b)
	*b = (*b)[:0]
	bufPool.Put(b)
	return s
}
