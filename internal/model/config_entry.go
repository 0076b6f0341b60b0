package model

// ScheduleLockedKey mirrors the aggregate lock state for the frontend.
const ScheduleLockedKey = "schedule_locked"

type ConfigEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
