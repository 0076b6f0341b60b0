package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockMessage(t *testing.T) {
	tests := []struct {
		name   string
		cmd    ToggleLockCommand
		winter int64
		summer int64
		want   string
	}{
		{
			name:   "single schedule locked",
			cmd:    lockCmd(4, 4, true),
			winter: 12,
			want:   "Raspored ID 4 (12 termina) je zaključan.",
		},
		{
			name:   "single schedule unlocked",
			cmd:    lockCmd(4, 4, false),
			winter: 12,
			want:   "Raspored ID 4 (12 termina) je otključan.",
		},
		{
			name:   "two schedules locked",
			cmd:    lockCmd(4, 5, true),
			winter: 12,
			summer: 9,
			want:   "Zimski raspored ID 4 (12 termina) i Ljetnji raspored ID 5 (9 termina) su zaključani.",
		},
		{
			name: "two schedules unlocked",
			cmd:  lockCmd(4, 5, false),
			want: "Zimski raspored ID 4 (0 termina) i Ljetnji raspored ID 5 (0 termina) su otključani.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lockMessage(tt.cmd, tt.winter, tt.summer))
		})
	}
}

func TestSemesterPlan(t *testing.T) {
	assert.Equal(t, []scheduleSemesters{
		{ScheduleID: 3, Semesters: []int{1, 2, 3, 4, 5, 6}},
	}, semesterPlan(lockCmd(3, 3, true)))

	assert.Equal(t, []scheduleSemesters{
		{ScheduleID: 3, Semesters: []int{1, 3, 5}},
		{ScheduleID: 8, Semesters: []int{2, 4, 6}},
	}, semesterPlan(lockCmd(3, 8, true)))
}
