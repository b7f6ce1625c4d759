package engine

import "math"

// Span is a running-total breakdown of a duration. Days are not bounded by the
// length of a year.
type Span struct {
	Years   int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// seconds rebuilds the duration covered by the span, in base seconds.
func (s Span) seconds(u UnitTable) float64 {
	return float64(s.Years)*u[Year].Value +
		float64(s.Days)*u[Day].Value +
		float64(s.Hours)*u[Hour].Value +
		float64(s.Minutes)*u[Minute].Value +
		float64(s.Seconds)*u[Second].Value
}

// value returns the field of the span matching unit k.
func (s Span) value(k UnitKind) int {
	switch k {
	case Year:
		return s.Years
	case Day:
		return s.Days
	case Hour:
		return s.Hours
	case Minute:
		return s.Minutes
	default:
		return s.Seconds
	}
}

func (s Span) negate() Span {
	return Span{-s.Years, -s.Days, -s.Hours, -s.Minutes, -s.Seconds}
}

// peel takes as many whole units of length unit as fit in left, using floor division.
func peel(left, unit float64) (int, float64) {
	n := math.Floor(left / unit)
	return int(n), left - n*unit
}

// decompose splits t by sequential floor division, from years down to seconds.
func (t UnitTable) decompose(time float64) Span {
	var s Span
	left := time
	s.Years, left = peel(left, t[Year].Value)
	s.Days, left = peel(left, t[Day].Value)
	s.Hours, left = peel(left, t[Hour].Value)
	s.Minutes, left = peel(left, t[Minute].Value)
	s.Seconds, _ = peel(left, t[Second].Value)
	return s
}

// split breaks a duration down symmetrically around zero: the magnitude is
// decomposed and every field carries the sign of time.
func (t UnitTable) split(time float64) Span {
	if time < 0 {
		return t.decompose(-time).negate()
	}
	return t.decompose(time)
}

// intraday peels hours, minutes and seconds from a remainder shorter than a day.
func (t UnitTable) intraday(left float64) (hours, minutes, seconds int) {
	hours, left = peel(left, t[Hour].Value)
	minutes, left = peel(left, t[Minute].Value)
	seconds, _ = peel(left, t[Second].Value)
	return hours, minutes, seconds
}

// mod is the modulo whose result takes the sign of the divisor.
func mod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// imod is mod for integers.
func imod(a, b int) int {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}
