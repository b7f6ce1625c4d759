package engine

import "math"

// ResolvedDate is a timestamp broken down along the calendar.
type ResolvedDate struct {
	Year int
	// Month is the zero Month when the calendar has no months.
	Month Month
	// MonthIndex is the position of Month in the calendar, -1 without months.
	MonthIndex int
	// MonthNumber is the displayed month number, 0 without months.
	MonthNumber int
	DayOfMonth  int
	DayOfYear   int
	Hours       int
	Minutes     int
	Seconds     int
}

// HasMonth reports whether the date falls in a configured month.
func (d ResolvedDate) HasMonth() bool {
	return d.MonthIndex >= 0
}

// yearShape describes how a year splits into days: n whole days plus carry
// seconds left over.
type yearShape struct {
	year, day float64
	carry     float64
	short     float64
	n         int
}

func (t UnitTable) shape() yearShape {
	y, d := t[Year].Value, t[Day].Value
	c := mod(y, d)
	short := y - c
	return yearShape{year: y, day: d, carry: c, short: short, n: int(math.Round(short / d))}
}

// startDay is the number of whole days elapsed before year begins. Both carry
// modes agree on it: year*n plus the whole days accumulated from the carry.
func (s yearShape) startDay(year int) int {
	return year*s.n + int(math.Floor(float64(year)*s.carry/s.day))
}

// leapYearStart is the instant at which year begins when leftover carry is
// granted as whole leap days.
func (s yearShape) leapYearStart(year int) float64 {
	return float64(year)*s.short + math.Floor(float64(year)*s.carry/s.day)*s.day
}

// GetDate resolves t keeping the day count continuous with the rotation of the
// day: when a year is not a whole number of days the carry is tracked within
// the year, so day 0 of a year may start before the year does.
func (f *Formatter) GetDate(t float64) ResolvedDate {
	s := f.shape
	yf := math.Floor(t / s.year)
	carry := mod(s.carry*yf, s.day)

	d := ResolvedDate{
		Year:      int(yf),
		DayOfYear: int(math.Floor((mod(t, s.year) + carry) / s.day)),
	}
	d.Hours, d.Minutes, d.Seconds = f.units.intraday(mod(t, s.day))
	f.resolveMonth(&d)
	return d
}

// GetLeapDate resolves t ending every year on its last whole day. The leftover
// fraction carries over from year to year and grants a leap day once it adds up
// to a full day; the leap day is the last day of the year that earned it.
//
// Year k starts at k*short + floor(k*carry/day)*day, so the current year is the
// largest k whose start is not after t. Timestamps before the epoch stay in
// year 0 with a negative day count.
func (f *Formatter) GetLeapDate(t float64) ResolvedDate {
	s := f.shape
	var d ResolvedDate

	left := t
	if t >= 0 {
		k := int(math.Floor(t/s.year)) + 1
		for k > 0 && s.leapYearStart(k) > t {
			k--
		}
		d.Year = k
		left = t - s.leapYearStart(k)
	}

	days := math.Floor(left / s.day)
	d.DayOfYear = int(days)
	d.Hours, d.Minutes, d.Seconds = f.units.intraday(left - days*s.day)
	f.resolveMonth(&d)
	return d
}

// Resolve picks GetLeapDate or GetDate according to the leap-year setting.
func (f *Formatter) Resolve(t float64) ResolvedDate {
	if f.leapYears {
		return f.GetLeapDate(t)
	}
	return f.GetDate(t)
}

// resolveMonth fills the month fields of d from its year and day of year.
// Days are counted from the start of the current reset cycle, which begins on
// a year divisible by ResetMonths, and wrap every cycleDays.
func (f *Formatter) resolveMonth(d *ResolvedDate) {
	d.MonthIndex = -1
	if f.calendar.Empty() {
		d.DayOfMonth = d.DayOfYear
		return
	}

	cycleStart := d.Year - imod(d.Year, f.calendar.ResetMonths)
	daysFromReset := d.DayOfYear + f.shape.startDay(d.Year) - f.shape.startDay(cycleStart)

	pos, dom := f.calendar.resolve(imod(daysFromReset, f.cycleDays()))
	d.Month = f.calendar.Months[pos]
	d.MonthIndex = pos
	d.MonthNumber = f.calendar.MonthNumber(pos)
	d.DayOfMonth = dom
}

// cycleDays is the number of days after which the months start over: the
// whole days of ResetMonths short years, plus the leap days those years earn
// in leap mode. It is at least 1 since a year is longer than a day.
func (f *Formatter) cycleDays() int {
	r := f.calendar.ResetMonths
	n := f.shape.n * r
	if f.leapYears {
		n += int(math.Floor(float64(r) * f.shape.carry / f.shape.day))
	}
	return n
}

// MonthStart is the instant, in elapsed seconds, at which a month begins.
type MonthStart struct {
	Index  int
	Number int
	Month  Month
	// Lap counts how many times the months wrapped since the reset cycle began.
	Lap     int
	Seconds float64
}

// YearStart returns the instant at which year begins.
func (f *Formatter) YearStart(year int) float64 {
	if f.leapYears {
		return f.shape.leapYearStart(year)
	}
	return float64(year) * f.shape.year
}

// MonthStarts lists the months that begin during year, in time order.
// A month that would begin before its reset cycle does starts with the cycle.
// Days left in a cycle after the last wrap start the months over, so a month
// may begin more than once in a year.
func (f *Formatter) MonthStarts(year int) []MonthStart {
	if f.calendar.Empty() {
		return nil
	}

	from, to := f.YearStart(year), f.YearStart(year+1)
	cycleYear := year - imod(year, f.calendar.ResetMonths)
	cycleStart := f.YearStart(cycleYear)
	base := float64(f.shape.startDay(cycleYear)) * f.shape.day

	days := f.cycleDays()
	lap := float64(days) * f.shape.day
	offsets := f.calendar.monthOffsets()
	last := len(offsets) - 1

	k := 0
	if from > base {
		k = int(math.Floor((from - base) / lap))
	}

	var out []MonthStart
	for ; base+float64(k)*lap < to; k++ {
		lapStart := base + float64(k)*lap
		for i, off := range offsets {
			m := f.calendar.Months[i]
			if off >= days || (m.Days == 0 && i != last) {
				continue
			}
			start := math.Max(lapStart+float64(off)*f.shape.day, cycleStart)
			if start < from || start >= to {
				continue
			}
			out = append(out, MonthStart{
				Index:   i,
				Number:  f.calendar.MonthNumber(i),
				Month:   m,
				Lap:     k,
				Seconds: start,
			})
		}
	}
	return out
}
