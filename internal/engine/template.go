package engine

import (
	"strconv"
	"strings"

	"github.com/tartampluch/go-kronometer/internal/config"
)

// Template syntax
//
// Tokens are written between angle brackets; << and >> stand for literal
// brackets. Value tokens accept an optional alignment and format specifier,
// as in <H,3:D2>.
//
//	<Y> <Mo> <Dm> <D> <H> <M> <S>      year, month number, day of month, day of year, hours, minutes, seconds
//	<Y0> <D0> <H0> <M0> <S0>           unit symbol
//	<Y1> <D1> <H1> <M1> <S1>           unit singular name
//	<Y2> <D2> <H2> <M2> <S2>           unit name, plural unless the value is 1 (<D2> follows <Dm>)
//	<Mo0> <Mo1>                        month symbol and name
//	<Dth>                              ordinal suffix of the day of month
//
// Unknown tokens are copied to the output unchanged, brackets included.

// slot is the argument position a value token binds to.
type slot int

const (
	slotYear slot = iota
	slotMonth
	slotDayOfMonth
	slotDayOfYear
	slotHours
	slotMinutes
	slotSeconds
)

type segKind uint8

const (
	segText segKind = iota
	segValue
	segPlural
	segMonthSymbol
	segMonthName
	segOrdinal
)

type segment struct {
	kind  segKind
	text  string
	slot  slot
	unit  UnitKind
	spec  numSpec
	align int
}

// CompiledTemplate is a template whose unit symbols and names are already
// substituted. What remains depends on the date being rendered.
type CompiledTemplate struct {
	source string
	segs   []segment
}

// String returns the template source.
func (c CompiledTemplate) String() string {
	return c.source
}

type tokenInfo struct {
	kind segKind
	slot slot
	unit UnitKind
	// static resolves the token at compile time.
	static func(UnitTable) string
}

func symbolOf(k UnitKind) func(UnitTable) string {
	return func(u UnitTable) string { return u[k].Symbol }
}

func singularOf(k UnitKind) func(UnitTable) string {
	return func(u UnitTable) string { return u[k].Singular }
}

var tokens = map[string]tokenInfo{
	"Y":  {kind: segValue, slot: slotYear},
	"Mo": {kind: segValue, slot: slotMonth},
	"Dm": {kind: segValue, slot: slotDayOfMonth},
	"D":  {kind: segValue, slot: slotDayOfYear},
	"H":  {kind: segValue, slot: slotHours},
	"M":  {kind: segValue, slot: slotMinutes},
	"S":  {kind: segValue, slot: slotSeconds},

	"Y0": {kind: segText, static: symbolOf(Year)},
	"D0": {kind: segText, static: symbolOf(Day)},
	"H0": {kind: segText, static: symbolOf(Hour)},
	"M0": {kind: segText, static: symbolOf(Minute)},
	"S0": {kind: segText, static: symbolOf(Second)},

	"Y1": {kind: segText, static: singularOf(Year)},
	"D1": {kind: segText, static: singularOf(Day)},
	"H1": {kind: segText, static: singularOf(Hour)},
	"M1": {kind: segText, static: singularOf(Minute)},
	"S1": {kind: segText, static: singularOf(Second)},

	"Y2": {kind: segPlural, unit: Year},
	"D2": {kind: segPlural, unit: Day},
	"H2": {kind: segPlural, unit: Hour},
	"M2": {kind: segPlural, unit: Minute},
	"S2": {kind: segPlural, unit: Second},

	"Mo0": {kind: segMonthSymbol},
	"Mo1": {kind: segMonthName},
	"Dth": {kind: segOrdinal},
}

// Compile tokenizes src in a single pass, substituting unit symbols and names
// from units. Adjacent literal text is merged.
func Compile(src string, units UnitTable) CompiledTemplate {
	c := CompiledTemplate{source: src}
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			c.segs = append(c.segs, segment{kind: segText, text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(src); {
		ch := src[i]
		switch {
		case ch == '<' && i+1 < len(src) && src[i+1] == '<':
			text.WriteByte('<')
			i += 2
			continue
		case ch == '>' && i+1 < len(src) && src[i+1] == '>':
			text.WriteByte('>')
			i += 2
			continue
		case ch != '<':
			text.WriteByte(ch)
			i++
			continue
		}

		end := strings.IndexByte(src[i+1:], '>')
		if end < 0 {
			text.WriteString(src[i:])
			break
		}
		body := src[i+1 : i+1+end]
		i += end + 2

		seg, ok := parseToken(body)
		if !ok {
			text.WriteString("<" + body + ">")
			continue
		}
		if seg.kind == segText {
			text.WriteString(tokens[body].static(units))
			continue
		}
		flush()
		c.segs = append(c.segs, seg)
	}
	flush()
	return c
}

// parseToken parses NAME[,ALIGN][:FORMAT].
func parseToken(body string) (segment, bool) {
	name, rest := body, ""
	if j := strings.IndexAny(body, ",:"); j >= 0 {
		name, rest = body[:j], body[j:]
	}
	info, ok := tokens[name]
	if !ok {
		return segment{}, false
	}
	if info.kind != segValue {
		return segment{kind: info.kind, unit: info.unit}, rest == ""
	}

	seg := segment{kind: segValue, slot: info.slot}
	if strings.HasPrefix(rest, ",") {
		alignStr, format, _ := strings.Cut(rest[1:], ":")
		a, err := strconv.Atoi(strings.TrimSpace(alignStr))
		if err != nil {
			return segment{}, false
		}
		seg.align = a
		if strings.Contains(rest, ":") {
			rest = ":" + format
		} else {
			rest = ""
		}
	}
	if strings.HasPrefix(rest, ":") {
		spec, ok := parseNumSpec(rest[1:])
		if !ok {
			spec = numSpec{}
		}
		seg.spec = spec
	}
	return seg, true
}

// AppendRender writes the template bound to d to dst.
func (c CompiledTemplate) AppendRender(dst []byte, d ResolvedDate, units UnitTable) []byte {
	for i := range c.segs {
		s := &c.segs[i]
		switch s.kind {
		case segText:
			dst = append(dst, s.text...)
		case segValue:
			dst = appendAligned(dst, d.slotValue(s.slot), s.spec, s.align)
		case segPlural:
			dst = append(dst, units[s.unit].Name(d.unitValue(s.unit))...)
		case segMonthSymbol:
			if d.HasMonth() {
				dst = append(dst, d.Month.Symbol...)
			} else {
				dst = append(dst, config.SentinelNoMonth...)
			}
		case segMonthName:
			if d.HasMonth() {
				dst = append(dst, d.Month.Name...)
			} else {
				dst = append(dst, config.SentinelNoMonth...)
			}
		case segOrdinal:
			dst = append(dst, GetOrdinal(d.DayOfMonth)...)
		}
	}
	return dst
}

// Render returns the template bound to d.
func (c CompiledTemplate) Render(d ResolvedDate, units UnitTable) string {
	return string(c.AppendRender(nil, d, units))
}

func (d ResolvedDate) slotValue(s slot) int {
	switch s {
	case slotYear:
		return d.Year
	case slotMonth:
		return d.MonthNumber
	case slotDayOfMonth:
		return d.DayOfMonth
	case slotDayOfYear:
		return d.DayOfYear
	case slotHours:
		return d.Hours
	case slotMinutes:
		return d.Minutes
	default:
		return d.Seconds
	}
}

// unitValue is the value a plural token agrees with. Days agree with the day
// of the month, which is the day of the year when no months are configured.
func (d ResolvedDate) unitValue(k UnitKind) int {
	switch k {
	case Year:
		return d.Year
	case Day:
		return d.DayOfMonth
	case Hour:
		return d.Hours
	case Minute:
		return d.Minutes
	default:
		return d.Seconds
	}
}
