package engine

// Month is one entry of the calendar. Days may be zero.
type Month struct {
	Name   string
	Symbol string
	Days   int
}

// Calendar is the ordered list of months plus the two reset cycles.
type Calendar struct {
	Months []Month
	// ResetMonths is the number of years after which month assignment restarts
	// from the first entry.
	ResetMonths int
	// ResetMonthNum is the number of months after which the displayed month
	// number wraps back to 1.
	ResetMonthNum int
}

// NewCalendar copies months and fills the cycle parameters: resetMonths below 1
// becomes 1, resetMonthNum below 1 becomes the calendar length (or 1 when empty).
func NewCalendar(months []Month, resetMonths, resetMonthNum int) Calendar {
	c := Calendar{
		Months:        append([]Month(nil), months...),
		ResetMonths:   resetMonths,
		ResetMonthNum: resetMonthNum,
	}
	if c.ResetMonths < 1 {
		c.ResetMonths = 1
	}
	if c.ResetMonthNum < 1 {
		c.ResetMonthNum = len(c.Months)
		if c.ResetMonthNum == 0 {
			c.ResetMonthNum = 1
		}
	}
	return c
}

// Empty reports whether no months are configured.
func (c Calendar) Empty() bool {
	return len(c.Months) == 0
}

// MonthNumber returns the displayed number of the month at position pos.
func (c Calendar) MonthNumber(pos int) int {
	n := c.ResetMonthNum
	if n < 1 {
		n = 1
	}
	return pos%n + 1
}

// resolve walks the months with a day count measured from the start of the
// current reset cycle. It returns the month position and the day of that month.
// The last month absorbs any remainder.
func (c Calendar) resolve(daysFromReset int) (int, int) {
	last := len(c.Months) - 1
	for i, m := range c.Months {
		if daysFromReset >= m.Days && i != last {
			daysFromReset -= m.Days
			continue
		}
		return i, daysFromReset
	}
	return -1, daysFromReset
}

// monthOffsets returns, for each month, the number of days between the start
// of the reset cycle and the first day of that month.
func (c Calendar) monthOffsets() []int {
	offsets := make([]int, len(c.Months))
	sum := 0
	for i, m := range c.Months {
		offsets[i] = sum
		sum += m.Days
	}
	return offsets
}
