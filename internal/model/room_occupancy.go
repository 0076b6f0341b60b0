package model

type SourceType string

const (
	SourceTypeManual   SourceType = "MANUAL"
	SourceTypeSchedule SourceType = "SCHEDULE"
)

// FacultyFIT is the faculty code schedule-derived rows are written under.
const FacultyFIT = "FIT"

// RoomOccupancy is one faculty's claim on a room for a weekday slot.
// (room_id, weekday, start_time, end_time) is unique.
type RoomOccupancy struct {
	ID             int64      `json:"id"`
	RoomID         int64      `json:"room_id"`
	Weekday        int        `json:"weekday"` // 1 = Monday, 7 = Sunday
	StartTime      string     `json:"start_time"`
	EndTime        string     `json:"end_time"`
	FacultyCode    string     `json:"faculty_code"`
	SourceType     SourceType `json:"source_type"`
	AcademicYearID int64      `json:"academic_year_id"`
	IsActive       bool       `json:"is_active"`
}
