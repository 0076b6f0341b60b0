package service

// ActionToggleLock is the only action the lock endpoint accepts.
const ActionToggleLock = "toggle_lock"

type ToggleLockCommand struct {
	Action           string
	IsLocked         bool
	WinterScheduleID int64 `validate:"gt=0"`
	SummerScheduleID int64 `validate:"gt=0"`
}

// SameSchedule reports whether one schedule covers both terms.
func (c ToggleLockCommand) SameSchedule() bool {
	return c.WinterScheduleID == c.SummerScheduleID
}

// OccupancyDebug describes what the occupancy sync did. Observability only.
type OccupancyDebug struct {
	ActiveYearID *int64           `json:"active_year_id"`
	EventsFound  int              `json:"events_found"`
	RowsInserted int              `json:"rows_inserted"`
	ScheduleIDs  []int64          `json:"schedule_ids"`
	SemesterMap  map[string][]int `json:"semester_map"`
}

func newOccupancyDebug() OccupancyDebug {
	return OccupancyDebug{
		ScheduleIDs: []int64{},
		SemesterMap: map[string][]int{},
	}
}

type LockResult struct {
	Success            bool           `json:"success"`
	Message            string         `json:"message"`
	IsLocked           bool           `json:"is_locked"`
	WinterScheduleID   int64          `json:"winter_schedule_id"`
	SummerScheduleID   int64          `json:"summer_schedule_id"`
	WinterRowsAffected int64          `json:"winter_rows_affected"`
	SummerRowsAffected int64          `json:"summer_rows_affected"`
	TotalRowsAffected  int64          `json:"total_rows_affected"`
	OccupancyDebug     OccupancyDebug `json:"occupancy_debug"`
}

// LockStatus compares the cached config flag with the per-event flags.
// IsLocked follows the events; Consistent is false when the flag disagrees.
type LockStatus struct {
	IsLocked      bool   `json:"is_locked"`
	ConfigValue   string `json:"config_value"`
	Consistent    bool   `json:"consistent"`
	LockedEvents  int64  `json:"locked_events"`
	TotalEvents   int64  `json:"total_events"`
	ActiveYearID  *int64 `json:"active_year_id"`
	OccupancyRows int64  `json:"occupancy_rows"`
}
