package model

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date serialized as "YYYY-MM-DD". The zero value means
// the date is absent.
type Date struct {
	time.Time
	set bool
}

// NewDate returns the UTC midnight Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), set: true}
}

// ParseDate parses "YYYY-MM-DD" without going through time.Parse layout
// handling. It returns false on malformed input.
func ParseDate(s string) (Date, bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return Date{}, false
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return Date{}, false
		}
	}
	y := int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
	m := time.Month(int(s[5]-'0')*10 + int(s[6]-'0'))
	d := int(s[8]-'0')*10 + int(s[9]-'0')
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return Date{}, false
	}
	return NewDate(y, m, d), true
}

// Set reports whether d is present. A nil pointer or a zero Date is absent.
func (d *Date) Set() bool {
	return d != nil && d.set
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.set {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD", an empty string, or null. The last two
// leave the date absent.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a string, got %s", s)
	}
	parsed, ok := ParseDate(s[1 : len(s)-1])
	if !ok {
		return fmt.Errorf("invalid date %s, expected YYYY-MM-DD", s)
	}
	*d = parsed
	return nil
}
