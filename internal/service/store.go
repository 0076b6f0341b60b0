package service

import (
	"context"

	"github.com/Freeeeeet/schedule_lock/internal/model"
)

type EventRepository interface {
	SetLocked(ctx context.Context, scheduleID int64, semesters []int, locked bool) (int64, error)
	FindOccupying(ctx context.Context, scheduleID int64, semesters []int) ([]*model.AcademicEvent, error)
	CountLocked(ctx context.Context) (locked, total int64, err error)
}

type AcademicYearRepository interface {
	// ResolveActive returns the active year, the latest one as fallback, or nil.
	ResolveActive(ctx context.Context) (*model.AcademicYear, error)
}

type OccupancyRepository interface {
	EnsureSourceTypes(ctx context.Context, required ...model.SourceType) error
	DeleteDerived(ctx context.Context, academicYearID int64, facultyCode string, source model.SourceType) (int64, error)
	CountDerived(ctx context.Context, academicYearID int64, facultyCode string, source model.SourceType) (int64, error)
	Upsert(ctx context.Context, occupancy *model.RoomOccupancy) error
}

type ConfigRepository interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (value string, found bool, err error)
}

// Repos groups the repositories bound to one connection or transaction.
type Repos struct {
	Events    EventRepository
	Years     AcademicYearRepository
	Occupancy OccupancyRepository
	Config    ConfigRepository
}

// Transactor runs fn against repositories bound to a single transaction.
// The transaction is committed when fn returns nil and rolled back otherwise.
type Transactor interface {
	InTx(ctx context.Context, fn func(Repos) error) error
}
