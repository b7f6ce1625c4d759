package engine

import (
	"strconv"
	"strings"
)

// numSpec is the format specifier attached to a value token, e.g. the "D2" in <H:D2>.
//
// Supported forms:
//
//	Dn    at least n digits, zero padded
//	Nn    thousands separators, n zero decimals
//	Xn/xn hexadecimal, at least n digits
//	0#,.  custom pattern: each 0 is a mandatory digit, a comma groups
//	      thousands, zeros after the dot are printed as decimals
type numSpec struct {
	kind     byte
	width    int
	decimals int
	group    bool
}

const (
	specPlain  byte = 0
	specDigits byte = 'D'
	specNumber byte = 'N'
	specHex    byte = 'x'
	specHexUp  byte = 'X'
)

// parseNumSpec parses a specifier. Unknown specifiers report false and the
// value is printed plainly.
func parseNumSpec(s string) (numSpec, bool) {
	if s == "" {
		return numSpec{}, true
	}

	switch s[0] {
	case 'D', 'd', 'N', 'n', 'X', 'x':
		n := 0
		if len(s) > 1 {
			v, err := strconv.Atoi(s[1:])
			if err != nil || v < 0 {
				return numSpec{}, false
			}
			n = v
		}
		switch s[0] {
		case 'D', 'd':
			return numSpec{kind: specDigits, width: n}, true
		case 'N', 'n':
			return numSpec{kind: specNumber, decimals: n, group: true}, true
		case 'X':
			return numSpec{kind: specHexUp, width: n}, true
		default:
			return numSpec{kind: specHex, width: n}, true
		}
	}

	return parseCustomSpec(s)
}

func parseCustomSpec(s string) (numSpec, bool) {
	intPart, fracPart, hasDot := strings.Cut(s, ".")
	spec := numSpec{kind: specDigits}
	for i := 0; i < len(intPart); i++ {
		switch intPart[i] {
		case '0':
			spec.width++
		case '#':
		case ',':
			spec.group = true
		default:
			return numSpec{}, false
		}
	}
	if hasDot {
		for i := 0; i < len(fracPart); i++ {
			switch fracPart[i] {
			case '0':
				spec.decimals++
			case '#':
			default:
				return numSpec{}, false
			}
		}
	}
	return spec, true
}

// append writes v formatted by the spec to dst.
func (s numSpec) append(dst []byte, v int) []byte {
	if s.kind == specPlain {
		return strconv.AppendInt(dst, int64(v), 10)
	}

	mag := uint64(v)
	if v < 0 {
		dst = append(dst, '-')
		mag = uint64(-int64(v))
	}

	var digits [24]byte
	var d []byte
	switch s.kind {
	case specHex, specHexUp:
		d = strconv.AppendUint(digits[:0], mag, 16)
		if s.kind == specHexUp {
			for i := range d {
				if d[i] >= 'a' {
					d[i] -= 'a' - 'A'
				}
			}
		}
	default:
		d = strconv.AppendUint(digits[:0], mag, 10)
	}

	for i := len(d); i < s.width; i++ {
		dst = append(dst, '0')
	}
	if s.group {
		dst = appendGrouped(dst, d)
	} else {
		dst = append(dst, d...)
	}

	if s.decimals > 0 {
		dst = append(dst, '.')
		for i := 0; i < s.decimals; i++ {
			dst = append(dst, '0')
		}
	}
	return dst
}

// appendGrouped writes decimal digits with a comma every three digits.
func appendGrouped(dst, digits []byte) []byte {
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, c)
	}
	return dst
}

// appendAligned writes v using spec, padded with spaces to |align| characters.
// A positive align right-aligns, a negative one left-aligns.
func appendAligned(dst []byte, v int, spec numSpec, align int) []byte {
	if align == 0 {
		return spec.append(dst, v)
	}

	var tmp [48]byte
	b := spec.append(tmp[:0], v)
	width := align
	if width < 0 {
		width = -width
	}
	pad := width - len(b)
	if align > 0 {
		for ; pad > 0; pad-- {
			dst = append(dst, ' ')
		}
	}
	dst = append(dst, b...)
	for ; pad > 0; pad-- {
		dst = append(dst, ' ')
	}
	return dst
}
