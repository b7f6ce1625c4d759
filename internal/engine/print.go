package engine

import (
	"strconv"

	"github.com/tartampluch/go-kronometer/internal/config"
)

var twoDigits = numSpec{kind: specDigits, width: 2}

// PrintTimeLong prints every unit with its name, e.g.
// "1 Year, 2 Days, 3 Hours, 4 Minutes, 5 Seconds".
func (f *Formatter) PrintTimeLong(t float64) string {
	if s, ok := checkNum(t); ok {
		return s
	}

	span := f.units.split(t)
	b := getBuf()
	for k := Year; k >= Second; k-- {
		v := span.value(k)
		*b = strconv.AppendInt(*b, int64(v), 10)
		*b = append(*b, ' ')
		*b = append(*b, f.units[k].Name(v)...)
		if k > Second {
			*b = append(*b, config.Separator...)
		}
	}
	return release(b)
}

// PrintTimeStamp prints "HH:MM:SS", optionally prefixed with "Year N, " and
// "Day N - ". Both prefixes use the configured singular unit names, so a
// renamed or localized day shows as such. Seconds are dropped once the
// duration reaches ten years.
func (f *Formatter) PrintTimeStamp(t float64, days, years bool) string {
	if s, ok := checkNum(t); ok {
		return s
	}

	span := f.units.split(t)
	b := getBuf()
	if years {
		*b = append(*b, f.units[Year].Singular...)
		*b = append(*b, ' ')
		*b = strconv.AppendInt(*b, int64(span.Years), 10)
		*b = append(*b, config.Separator...)
	}
	if days {
		*b = append(*b, f.units[Day].Singular...)
		*b = append(*b, ' ')
		*b = strconv.AppendInt(*b, int64(span.Days), 10)
		*b = append(*b, config.StampDaySeparator...)
	}
	*b = f.appendClock(*b, span)
	return release(b)
}

// PrintTimeStampCompact is PrintTimeStamp with unit symbols: "1y, 2d, 03:04:05".
func (f *Formatter) PrintTimeStampCompact(t float64, days, years bool) string {
	if s, ok := checkNum(t); ok {
		return s
	}

	span := f.units.split(t)
	b := getBuf()
	if years {
		*b = strconv.AppendInt(*b, int64(span.Years), 10)
		*b = append(*b, f.units[Year].Symbol...)
		*b = append(*b, config.Separator...)
	}
	if days {
		*b = strconv.AppendInt(*b, int64(span.Days), 10)
		*b = append(*b, f.units[Day].Symbol...)
		*b = append(*b, config.Separator...)
	}
	*b = f.appendClock(*b, span)
	return release(b)
}

func (f *Formatter) appendClock(b []byte, span Span) []byte {
	b = twoDigits.append(b, span.Hours)
	b = append(b, ':')
	b = twoDigits.append(b, span.Minutes)
	if span.Years < config.MaxYearsWithSeconds {
		b = append(b, ':')
		b = twoDigits.append(b, span.Seconds)
	}
	return b
}

// PrintTime prints the valuesOfInterest most significant units, starting from
// the largest non-zero one, e.g. "- 2d, 3h". Zero durations print only the sign.
func (f *Formatter) PrintTime(t float64, valuesOfInterest int, explicitPositive bool) string {
	if s, ok := checkNum(t); ok {
		return s
	}

	b := getBuf()
	if t < 0 {
		*b = append(*b, config.SignNegative...)
	} else if explicitPositive {
		*b = append(*b, config.SignPositive...)
	}

	span := f.units.split(t)
	top := Second - 1
	for k := Year; k >= Second; k-- {
		if span.value(k) != 0 {
			top = k
			break
		}
	}
	if top >= Second {
		lowest := top - UnitKind(valuesOfInterest)
		if lowest < Second-1 {
			lowest = Second - 1
		}
		for k := top; k > lowest; k-- {
			v := span.value(k)
			if v < 0 {
				v = -v
			}
			*b = strconv.AppendInt(*b, int64(v), 10)
			*b = append(*b, f.units[k].Symbol...)
			if k-1 > lowest {
				*b = append(*b, config.Separator...)
			}
		}
	}
	return release(b)
}

// PrintTimeCompact prints "[D:]HH:MM:SS" with a "T- " prefix for negative
// values and "T+ " for positive ones when explicitPositive is set.
func (f *Formatter) PrintTimeCompact(t float64, explicitPositive bool) string {
	if s, ok := checkNum(t); ok {
		return s
	}

	b := getBuf()
	if t < 0 {
		*b = append(*b, config.SignCountdown...)
		t = -t
	} else if explicitPositive {
		*b = append(*b, config.SignCountup...)
	}

	span := f.units.split(t)
	if span.Days > 0 {
		*b = strconv.AppendInt(*b, int64(span.Days), 10)
		*b = append(*b, ':')
	}
	*b = twoDigits.append(*b, span.Hours)
	*b = append(*b, ':')
	*b = twoDigits.append(*b, span.Minutes)
	*b = append(*b, ':')
	*b = twoDigits.append(*b, span.Seconds)
	return release(b)
}

// PrintDateDelta prints a human readable difference such as "1 Year, 2 Days".
// Units with a zero value are left out; hours and minutes need includeTime and
// seconds need both flags. Negative deltas count as zero unless useAbs is set.
func (f *Formatter) PrintDateDelta(t float64, includeTime, includeSeconds, useAbs bool) string {
	if s, ok := checkNum(t); ok {
		return s
	}
	if useAbs && t < 0 {
		t = -t
	}

	span := f.units.split(t)
	b := getBuf()
	add := func(k UnitKind) {
		v := span.value(k)
		if v <= 0 {
			return
		}
		if len(*b) > 0 {
			*b = append(*b, config.Separator...)
		}
		*b = strconv.AppendInt(*b, int64(v), 10)
		*b = append(*b, ' ')
		*b = append(*b, f.units[k].Name(v)...)
	}

	add(Year)
	add(Day)
	if includeTime {
		add(Hour)
		add(Minute)
		if includeSeconds {
			add(Second)
		}
	}

	if len(*b) == 0 {
		*b = append(*b, "0 "...)
		*b = append(*b, f.units[deltaFloor(includeTime, includeSeconds)].Plural...)
	}
	return release(b)
}

// PrintDateDeltaCompact is PrintDateDelta with unit symbols: "1y, 2d".
func (f *Formatter) PrintDateDeltaCompact(t float64, includeTime, includeSeconds, useAbs bool) string {
	if s, ok := checkNum(t); ok {
		return s
	}
	if useAbs && t < 0 {
		t = -t
	}

	span := f.units.split(t)
	b := getBuf()
	add := func(k UnitKind) {
		v := span.value(k)
		if v <= 0 {
			return
		}
		if len(*b) > 0 {
			*b = append(*b, config.Separator...)
		}
		*b = strconv.AppendInt(*b, int64(v), 10)
		*b = append(*b, f.units[k].Symbol...)
	}

	add(Year)
	add(Day)
	if includeTime {
		add(Hour)
		add(Minute)
		if includeSeconds {
			add(Second)
		}
	}

	if len(*b) == 0 {
		*b = append(*b, '0')
		*b = append(*b, f.units[deltaFloor(includeTime, includeSeconds)].Symbol...)
	}
	return release(b)
}

// deltaFloor is the smallest unit a delta prints.
func deltaFloor(includeTime, includeSeconds bool) UnitKind {
	switch {
	case !includeTime:
		return Day
	case !includeSeconds:
		return Minute
	default:
		return Second
	}
}

// PrintDate renders t with the PrintDate templates.
func (f *Formatter) PrintDate(t float64, includeTime, includeSeconds bool) string {
	return f.render(&f.printDate, t, includeTime, includeSeconds)
}

// PrintDateNew renders t with the PrintDateNew templates. The time and seconds
// templates are both included when includeTime is set.
func (f *Formatter) PrintDateNew(t float64, includeTime bool) string {
	return f.render(&f.printDateNew, t, includeTime, includeTime)
}

// PrintDateCompact renders t with the PrintDateCompact templates.
func (f *Formatter) PrintDateCompact(t float64, includeTime, includeSeconds bool) string {
	return f.render(&f.printDateCompact, t, includeTime, includeSeconds)
}

// DisplayDate resolves t the way PrintDate shows it, offsets applied.
func (f *Formatter) DisplayDate(t float64) ResolvedDate {
	return f.displayDate(&f.printDate, t)
}

func (f *Formatter) displayDate(c *compiledDisplay, t float64) ResolvedDate {
	d := f.Resolve(t + c.OffsetTime)
	d.Year += c.OffsetYear
	d.DayOfMonth += c.OffsetDay
	d.DayOfYear += c.OffsetDay
	return d
}

func (f *Formatter) render(c *compiledDisplay, t float64, includeTime, includeSeconds bool) string {
	if s, ok := checkNum(t); ok {
		return s
	}

	d := f.displayDate(c, t)
	b := getBuf()
	*b = c.date.AppendRender(*b, d, f.units)
	if includeTime {
		*b = c.time.AppendRender(*b, d, f.units)
	}
	if includeSeconds {
		*b = c.seconds.AppendRender(*b, d, f.units)
	}
	return release(b)
}
