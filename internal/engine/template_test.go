package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompile_Render(t *testing.T) {
	units := DefaultUnits(true)
	date := ResolvedDate{
		Year: 12345, MonthIndex: 0, MonthNumber: 3,
		Month:      Month{Name: "Janus", Symbol: "Ja", Days: 30},
		DayOfMonth: 21, DayOfYear: 1, Hours: 5, Minutes: 7, Seconds: 255,
	}

	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "Plain values", src: "<Y>/<Mo>/<Dm>/<D> <H>:<M>:<S>", want: "12345/3/21/1 5:7:255"},
		{name: "Symbols", src: "<Y0><D0><H0><M0><S0>", want: "ydhms"},
		{name: "Singular names", src: "<Y1> <D1> <H1> <M1> <S1>", want: "Year Day Hour Minute Second"},
		{name: "Plural agreement", src: "<Y2> <D2> <H2>", want: "Years Days Hours"},
		{name: "Month tokens", src: "<Mo1> (<Mo0>)", want: "Janus (Ja)"},
		{name: "Ordinal", src: "<Dm><Dth>", want: "21st"},
		{name: "Escaped brackets", src: "<<Y>> >> <<", want: "<Y> > <"},
		{name: "Unknown token kept", src: "<Q> <Y>", want: "<Q> 12345"},
		{name: "Unterminated token", src: "Year <Y", want: "Year <Y"},
		{name: "Bad alignment kept", src: "<H,x>", want: "<H,x>"},
		{name: "Digits", src: "<H:D2>:<M:00>:<D:000>", want: "05:07:001"},
		{name: "Thousands", src: "<Y:N0> <Y:#,##0> <Y:N2>", want: "12,345 12,345 12,345.00"},
		{name: "Hex", src: "<S:X2> <S:x4>", want: "FF 00ff"},
		{name: "Right aligned", src: "[<H,3:D2>]", want: "[ 05]"},
		{name: "Left aligned", src: "[<H,-3>]", want: "[5  ]"},
		{name: "Unknown format is plain", src: "<H:Q9>", want: "5"},
		{name: "Empty", src: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Compile(tt.src, units)
			assert.Equal(t, tt.want, c.Render(date, units))
			assert.Equal(t, tt.src, c.String())
		})
	}
}

func TestCompile_DayPluralFollowsDayOfMonth(t *testing.T) {
	units := DefaultUnits(true)
	c := Compile("<Dm> <D2>", units)

	first := ResolvedDate{MonthIndex: 1, DayOfMonth: 1, DayOfYear: 40}
	assert.Equal(t, "1 Day", c.Render(first, units))

	later := ResolvedDate{MonthIndex: 1, DayOfMonth: 7, DayOfYear: 1}
	assert.Equal(t, "7 Days", c.Render(later, units))
}

func TestCompile_NoMonth(t *testing.T) {
	units := DefaultUnits(true)
	d := ResolvedDate{MonthIndex: -1, DayOfMonth: 2, DayOfYear: 2}
	c := Compile("<Mo>|<Mo0>|<Mo1>|<Dm><Dth>", units)
	assert.Equal(t, "0|NaM|NaM|2nd", c.Render(d, units))
}

func TestCompile_MergesText(t *testing.T) {
	c := Compile("<Y1> of <Y0>", DefaultUnits(true))
	assert.Len(t, c.segs, 1, "static tokens fold into a single text segment")
	assert.Equal(t, "Year of y", c.segs[0].text)
}

// TestDefaultDisplays_Resolve renders every stock template over a spread of
// timestamps and expects no template syntax in the output.
func TestDefaultDisplays_Resolve(t *testing.T) {
	f := mustFormatter(t, Options{
		Units:    DefaultUnits(true),
		Calendar: NewCalendar(kerbinMonths(100, 200, 126), 1, 0),
	})
	for _, ts := range []float64{0, 1, 3661, 21600 * 99, 9201600 * 3.5, 1e9} {
		for _, out := range []string{
			f.PrintDate(ts, true, true),
			f.PrintDateNew(ts, true),
			f.PrintDateCompact(ts, true, true),
		} {
			assert.False(t, strings.ContainsAny(out, "<>{}"), out)
		}
	}
}

func TestGetOrdinal(t *testing.T) {
	tests := map[int]string{
		0: "th", 1: "st", 2: "nd", 3: "rd", 4: "th",
		11: "th", 12: "th", 13: "th",
		21: "st", 22: "nd", 23: "rd",
		101: "st", 111: "th", 112: "th", 1002: "nd",
		-1: "st", -13: "th",
	}
	for n, want := range tests {
		assert.Equal(t, want, GetOrdinal(n), "n=%d", n)
	}
}
