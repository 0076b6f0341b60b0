package timetable

// Slot is one interval of the daily occupancy grid.
type Slot struct {
	Start string
	End   string
}

// DailySlots is the fixed grid rooms are booked against.
var DailySlots = []Slot{
	{"08:15", "09:00"},
	{"09:15", "10:00"},
	{"10:15", "11:00"},
	{"11:15", "12:00"},
	{"12:15", "13:00"},
	{"13:15", "14:00"},
	{"14:15", "15:00"},
	{"15:15", "16:00"},
	{"16:15", "17:00"},
	{"17:15", "18:00"},
	{"18:15", "19:00"},
	{"19:15", "20:00"},
	{"20:15", "21:00"},
}

// StartMinutes returns the slot start in minutes since midnight.
func (s Slot) StartMinutes() int {
	m, _ := ParseMinutes(s.Start)
	return m
}

// EndMinutes returns the slot end in minutes since midnight.
func (s Slot) EndMinutes() int {
	m, _ := ParseMinutes(s.End)
	return m
}

// Overlaps reports whether [start, end) intersects the slot.
// Touching endpoints do not overlap.
func (s Slot) Overlaps(start, end int) bool {
	return s.StartMinutes() < end && s.EndMinutes() > start
}

func (s Slot) String() string {
	return s.Start + "-" + s.End
}

// OverlappingSlots returns the DailySlots touched by [start, end), in grid order.
func OverlappingSlots(start, end int) []Slot {
	var out []Slot
	for _, slot := range DailySlots {
		if slot.Overlaps(start, end) {
			out = append(out, slot)
		}
	}
	return out
}
