package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/tartampluch/go-kronometer/internal/config"
)

// ErrInvalidUnits is returned when the five units do not satisfy
// year > day > hour > minute > second > 0. The custom clock must not be used.
var ErrInvalidUnits = errors.New(config.ErrUnitOrder)

// ErrInvalidUnit is returned when a single unit length is not a positive finite number.
var ErrInvalidUnit = errors.New(config.ErrUnitValue)

// UnitKind identifies one of the five calendar units.
type UnitKind int

const (
	Second UnitKind = iota
	Minute
	Hour
	Day
	Year
)

var unitKindNames = [...]string{"second", "minute", "hour", "day", "year"}

func (k UnitKind) String() string {
	if k < Second || k > Year {
		return fmt.Sprintf("UnitKind(%d)", int(k))
	}
	return unitKindNames[k]
}

// TimeUnit describes one unit of the clock: its display names and its length in base seconds.
type TimeUnit struct {
	Singular string
	Plural   string
	Symbol   string
	Value    float64
	// Round asks for Value to be rounded to the nearest integer before validation.
	Round bool
}

// Name returns the singular name when n == 1 and the plural name otherwise.
func (u TimeUnit) Name(n int) string {
	if n == 1 {
		return u.Singular
	}
	return u.Plural
}

// UnitTable holds the five units of a clock, indexed by UnitKind.
type UnitTable [5]TimeUnit

// DefaultUnits returns the stock table: 6 hour days and 426 day years when kerbin is
// true, 24 hour days and 365 day years otherwise.
func DefaultUnits(kerbin bool) UnitTable {
	day, year := config.SecondsPerEarthDay, config.SecondsPerEarthYear
	if kerbin {
		day, year = config.SecondsPerKerbinDay, config.SecondsPerKerbinYear
	}
	return UnitTable{
		Second: {Singular: config.NameSecond, Plural: config.NameSeconds, Symbol: config.SymbolSecond, Value: config.SecondsPerSecond},
		Minute: {Singular: config.NameMinute, Plural: config.NameMinutes, Symbol: config.SymbolMinute, Value: config.SecondsPerMinute},
		Hour:   {Singular: config.NameHour, Plural: config.NameHours, Symbol: config.SymbolHour, Value: config.SecondsPerHour},
		Day:    {Singular: config.NameDay, Plural: config.NameDays, Symbol: config.SymbolDay, Value: day},
		Year:   {Singular: config.NameYear, Plural: config.NameYears, Symbol: config.SymbolYear, Value: year},
	}
}

// normalized returns a copy of the table with every Round unit rounded.
func (t UnitTable) normalized() UnitTable {
	for k := range t {
		if t[k].Round {
			rounded := math.Round(t[k].Value)
			if rounded != t[k].Value {
				slog.Debug(config.MsgUnitRounded,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyUnit, UnitKind(k).String(),
					config.LogKeyOld, t[k].Value,
					config.LogKeyNew, rounded)
			}
			t[k].Value = rounded
		}
	}
	return t
}

// Validate checks that every unit is positive and finite and that the units are
// strictly decreasing from year to second.
func (t UnitTable) Validate() error {
	for k := range t {
		v := t[k].Value
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: %w: %s = %v", ErrInvalidUnits, ErrInvalidUnit, UnitKind(k), v)
		}
	}
	for k := Second; k < Year; k++ {
		if !(t[k+1].Value > t[k].Value) {
			return fmt.Errorf("%w: %s (%v) <= %s (%v)", ErrInvalidUnits,
				k+1, t[k+1].Value, k, t[k].Value)
		}
	}
	return nil
}

// seconds returns the whole-second length of unit k, truncated.
func (t UnitTable) seconds(k UnitKind) int {
	return int(t[k].Value)
}
