package model

type EventType string

const (
	EventTypeLecture  EventType = "LECTURE"
	EventTypeExercise EventType = "EXERCISE"
	EventTypeLab      EventType = "LAB"
	EventTypeExam     EventType = "EXAM"
	EventTypeOther    EventType = "OTHER"
)

// OccupyingEventTypes are the event types that claim a room in room_occupancy.
var OccupyingEventTypes = []EventType{EventTypeLecture, EventTypeExercise, EventTypeLab}

// AcademicEvent is one timetable entry. Day holds the raw label ("1", "Ponedjeljak", ...),
// StartsAt/EndsAt are rendered as HH:MM:SS.
type AcademicEvent struct {
	ID            int64     `json:"id"`
	CourseID      int64     `json:"course_id"`
	ScheduleID    int64     `json:"schedule_id"`
	RoomID        *int64    `json:"room_id"` // nil for events without a room
	Day           string    `json:"day"`
	StartsAt      string    `json:"starts_at"`
	EndsAt        string    `json:"ends_at"`
	Type          EventType `json:"type"`
	LockedByAdmin bool      `json:"locked_by_admin"`
}
