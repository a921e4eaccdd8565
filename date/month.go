package date

import (
	"encoding/json"
	"fmt"
	"time"
)

const readMonthFormat = "2006-1" // permissive, accepts "2024-7"

// MonthFormat is the canonical "YYYY-MM" period identifier format.
const MonthFormat = "2006-01"

// Month identifies a calendar month, the period revenue is recognized in.
// It is comparable and usable as a map key.
type Month struct {
	y int
	m time.Month
}

// MonthOf returns the Month containing d.
func MonthOf(d Date) Month { return Month{y: d.y, m: d.m} }

// NewMonth returns a normalized Month for the given year and month.
func NewMonth(year int, month time.Month) Month { return MonthOf(New(year, month, 1)) }

// Next returns the following calendar month.
func (m Month) Next() Month { return MonthOf(New(m.y, m.m+1, 1)) }

// Year returns the month's year.
func (m Month) Year() int { return m.y }

// Month returns the month within the year.
func (m Month) Month() time.Month { return m.m }

// First returns the first day of the month.
func (m Month) First() Date { return New(m.y, m.m, 1) }

// Days returns the number of calendar days in the month.
func (m Month) Days() int { return m.First().DaysInMonth() }

// Before reports whether m is strictly before x.
func (m Month) Before(x Month) bool { return m.y < x.y || (m.y == x.y && m.m < x.m) }

// After reports whether m is strictly after x.
func (m Month) After(x Month) bool { return x.Before(m) }

// Compare returns -1, 0 or 1 depending on whether m is before, equal to, or after x.
func (m Month) Compare(x Month) int {
	switch {
	case m.Before(x):
		return -1
	case x.Before(m):
		return 1
	default:
		return 0
	}
}

// String formats the month as its "YYYY-MM" identifier.
func (m Month) String() string { return m.First().time().Format(MonthFormat) }

// ParseMonth parses a Month from its "YYYY-MM" identifier. Like Parse it is
// lenient about the leading zero.
func ParseMonth(str string) (Month, error) {
	on, err := time.Parse(readMonthFormat, str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, readMonthFormat, err)
	}
	return NewMonth(on.Year(), on.Month()), nil
}

func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseMonth(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Month) MarshalJSON() ([]byte, error) {
	str := m.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*Month)(nil)
var _ json.Unmarshaler = (*Month)(nil)
