package engine

// GetOrdinal returns the English ordinal suffix for n: "st", "nd", "rd" or "th".
// Numbers ending in 11, 12 and 13 always take "th".
func GetOrdinal(n int) string {
	if n < 0 {
		n = -n
	}
	if tens := n % 100; tens >= 11 && tens <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
