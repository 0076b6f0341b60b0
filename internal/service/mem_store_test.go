package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Freeeeeet/schedule_lock/internal/model"
)

type memEvent struct {
	model.AcademicEvent
	Semester int
}

type occupancyKey struct {
	RoomID     int64
	Weekday    int
	Start, End string
}

// memDB implements every repository interface plus Transactor.
// InTx snapshots state and restores it when fn fails.
type memDB struct {
	events    []*memEvent
	years     []*model.AcademicYear
	occupancy map[occupancyKey]*model.RoomOccupancy
	config    map[string]string

	sourceTypeCalls int
	writes          int

	setLockedErr error
	upsertErr    error
	configErr    error
	yearsErr     error
}

func newMemDB() *memDB {
	return &memDB{
		occupancy: map[occupancyKey]*model.RoomOccupancy{},
		config:    map[string]string{},
	}
}

func (m *memDB) repos() Repos {
	return Repos{Events: m, Years: m, Occupancy: m, Config: m}
}

func (m *memDB) addEvent(id, scheduleID int64, semester int, room *int64, day, start, end string, typ model.EventType) {
	m.events = append(m.events, &memEvent{
		AcademicEvent: model.AcademicEvent{
			ID:         id,
			CourseID:   id * 10,
			ScheduleID: scheduleID,
			RoomID:     room,
			Day:        day,
			StartsAt:   start,
			EndsAt:     end,
			Type:       typ,
		},
		Semester: semester,
	})
}

func (m *memDB) InTx(ctx context.Context, fn func(Repos) error) error {
	occupancy := make(map[occupancyKey]*model.RoomOccupancy, len(m.occupancy))
	for k, v := range m.occupancy {
		row := *v
		occupancy[k] = &row
	}
	locked := make([]bool, len(m.events))
	for i, e := range m.events {
		locked[i] = e.LockedByAdmin
	}

	if err := fn(m.repos()); err != nil {
		m.occupancy = occupancy
		for i, e := range m.events {
			e.LockedByAdmin = locked[i]
		}
		return err
	}
	return nil
}

func contains(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func (m *memDB) SetLocked(ctx context.Context, scheduleID int64, semesters []int, locked bool) (int64, error) {
	if m.setLockedErr != nil {
		return 0, m.setLockedErr
	}
	m.writes++
	var n int64
	for _, e := range m.events {
		if e.ScheduleID == scheduleID && contains(semesters, e.Semester) {
			e.LockedByAdmin = locked
			n++
		}
	}
	return n, nil
}

func (m *memDB) FindOccupying(ctx context.Context, scheduleID int64, semesters []int) ([]*model.AcademicEvent, error) {
	var out []*model.AcademicEvent
	for _, e := range m.events {
		if e.RoomID == nil || e.ScheduleID != scheduleID || !contains(semesters, e.Semester) {
			continue
		}
		switch e.Type {
		case model.EventTypeLecture, model.EventTypeExercise, model.EventTypeLab:
			ev := e.AcademicEvent
			out = append(out, &ev)
		}
	}
	return out, nil
}

func (m *memDB) CountLocked(ctx context.Context) (int64, int64, error) {
	var locked int64
	for _, e := range m.events {
		if e.LockedByAdmin {
			locked++
		}
	}
	return locked, int64(len(m.events)), nil
}

func (m *memDB) ResolveActive(ctx context.Context) (*model.AcademicYear, error) {
	if m.yearsErr != nil {
		return nil, m.yearsErr
	}
	for _, y := range m.years {
		if y.IsActive {
			return y, nil
		}
	}
	if len(m.years) == 0 {
		return nil, nil
	}
	latest := m.years[0]
	for _, y := range m.years[1:] {
		if y.CreatedAt.After(latest.CreatedAt) {
			latest = y
		}
	}
	return latest, nil
}

func (m *memDB) EnsureSourceTypes(ctx context.Context, required ...model.SourceType) error {
	m.sourceTypeCalls++
	return nil
}

func (m *memDB) DeleteDerived(ctx context.Context, yearID int64, faculty string, source model.SourceType) (int64, error) {
	m.writes++
	var n int64
	for k, row := range m.occupancy {
		if row.AcademicYearID == yearID && row.FacultyCode == faculty && row.SourceType == source {
			delete(m.occupancy, k)
			n++
		}
	}
	return n, nil
}

func (m *memDB) CountDerived(ctx context.Context, yearID int64, faculty string, source model.SourceType) (int64, error) {
	var n int64
	for _, row := range m.occupancy {
		if row.AcademicYearID == yearID && row.FacultyCode == faculty && row.SourceType == source {
			n++
		}
	}
	return n, nil
}

func (m *memDB) Upsert(ctx context.Context, occupancy *model.RoomOccupancy) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.writes++
	key := occupancyKey{occupancy.RoomID, occupancy.Weekday, occupancy.StartTime, occupancy.EndTime}
	if existing, ok := m.occupancy[key]; ok {
		existing.FacultyCode = occupancy.FacultyCode
		existing.SourceType = occupancy.SourceType
		existing.IsActive = true
		return nil
	}
	row := *occupancy
	row.ID = int64(len(m.occupancy) + 1)
	m.occupancy[key] = &row
	return nil
}

func (m *memDB) Set(ctx context.Context, key, value string) error {
	if m.configErr != nil {
		return m.configErr
	}
	m.writes++
	m.config[key] = value
	return nil
}

func (m *memDB) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.config[key]
	return v, ok, nil
}

// rows returns the stored occupancy sorted for stable comparison.
func (m *memDB) rows() []model.RoomOccupancy {
	out := make([]model.RoomOccupancy, 0, len(m.occupancy))
	for _, row := range m.occupancy {
		r := *row
		r.ID = 0
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.RoomID != b.RoomID {
			return a.RoomID < b.RoomID
		}
		if a.Weekday != b.Weekday {
			return a.Weekday < b.Weekday
		}
		return a.StartTime < b.StartTime
	})
	return out
}

type recordingNotifier struct {
	results   []*LockResult
	deadlines []time.Time
	err       error
}

func (n *recordingNotifier) NotifyLockChanged(ctx context.Context, result *LockResult) error {
	n.results = append(n.results, result)
	deadline, _ := ctx.Deadline()
	n.deadlines = append(n.deadlines, deadline)
	return n.err
}

var errDB = errors.New("connection reset")

func int64Ptr(v int64) *int64 { return &v }
