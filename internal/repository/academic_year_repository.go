package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/schedule_lock/internal/model"
	"github.com/Freeeeeet/schedule_lock/internal/repository/base"
)

type AcademicYearRepository struct {
	*base.Repository
}

func NewAcademicYearRepository(db base.DBTX) *AcademicYearRepository {
	return &AcademicYearRepository{Repository: base.NewRepository(db)}
}

// ResolveActive returns the year flagged active. Without one it falls back to the
// most recently created year, and returns nil if the table is empty.
func (r *AcademicYearRepository) ResolveActive(ctx context.Context) (*model.AcademicYear, error) {
	year, err := r.getOne(ctx, `
		SELECT id, name, is_active, created_at
		FROM academic_year
		WHERE is_active = TRUE
		ORDER BY id
		LIMIT 1
	`)
	if err != nil {
		return nil, fmt.Errorf("get active academic year: %w", err)
	}
	if year != nil {
		return year, nil
	}

	year, err = r.getOne(ctx, `
		SELECT id, name, is_active, created_at
		FROM academic_year
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`)
	if err != nil {
		return nil, fmt.Errorf("get latest academic year: %w", err)
	}

	return year, nil
}

func (r *AcademicYearRepository) getOne(ctx context.Context, query string) (*model.AcademicYear, error) {
	year := &model.AcademicYear{}
	err := r.QueryRow(ctx, query).Scan(
		&year.ID,
		&year.Name,
		&year.IsActive,
		&year.CreatedAt,
	)
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return year, nil
}
