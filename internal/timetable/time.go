package timetable

import (
	"errors"
	"fmt"
)

// ErrInvalidTime is returned for values that do not start with HH:MM.
var ErrInvalidTime = errors.New("invalid time of day")

// ParseMinutes converts "HH:MM[:SS]" into minutes since midnight.
// Only the first five characters are considered.
func ParseMinutes(value string) (int, error) {
	if len(value) < 5 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	s := value[:5]
	if !isDigit(s[0]) || !isDigit(s[1]) || s[2] != ':' || !isDigit(s[3]) || !isDigit(s[4]) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}

	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	minutes := int(s[3]-'0')*10 + int(s[4]-'0')

	return hours*60 + minutes, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
