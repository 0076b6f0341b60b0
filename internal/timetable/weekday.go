package timetable

import (
	"strconv"
	"strings"
)

// dayNames lists accepted spellings per ISO weekday, checked in order.
var dayNames = []struct {
	weekday int
	names   []string
}{
	{1, []string{"ponedeljak", "ponedjeljak"}},
	{2, []string{"utorak"}},
	{3, []string{"srijeda", "sreda"}},
	{4, []string{"cetvrtak", "četvrtak"}},
	{5, []string{"petak"}},
	{6, []string{"subota"}},
	{7, []string{"nedjelja", "nedelja"}},
}

// ParseWeekday maps a day label from academic_event.day to 1 (Monday) .. 7 (Sunday).
// Numeric labels pass through. ok is false when the label is unknown or out of range.
func ParseWeekday(label string) (weekday int, ok bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, false
	}

	if isNumeric(label) {
		n, err := strconv.Atoi(label)
		if err != nil || n < 1 || n > 7 {
			return 0, false
		}
		return n, true
	}

	lower := strings.ToLower(label)
	for _, d := range dayNames {
		for _, name := range d.names {
			if lower == name {
				return d.weekday, true
			}
		}
	}

	return 0, false
}

func isNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
