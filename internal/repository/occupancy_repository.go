package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Freeeeeet/schedule_lock/internal/model"
	"github.com/Freeeeeet/schedule_lock/internal/repository/base"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const sourceTypeConstraint = "room_occupancy_source_type_check"

type OccupancyRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewOccupancyRepository(db base.DBTX, logger *zap.Logger) *OccupancyRepository {
	return &OccupancyRepository{
		Repository: base.NewRepository(db),
		logger:     logger,
	}
}

// EnsureSourceTypes rewrites the source_type CHECK constraint so that it accepts
// every value already stored plus the required ones. Safe to run repeatedly.
func (r *OccupancyRepository) EnsureSourceTypes(ctx context.Context, required ...model.SourceType) error {
	rows, err := r.Query(ctx, `SELECT DISTINCT source_type FROM room_occupancy WHERE source_type IS NOT NULL`)
	if err != nil {
		return fmt.Errorf("list source types: %w", err)
	}

	allowed := make(map[string]struct{})
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			rows.Close()
			return fmt.Errorf("scan source type: %w", err)
		}
		if value != "" {
			allowed[value] = struct{}{}
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate source types: %w", err)
	}

	for _, st := range required {
		allowed[string(st)] = struct{}{}
	}

	literals := make([]string, 0, len(allowed))
	for value := range allowed {
		literals = append(literals, pq.QuoteLiteral(value))
	}
	sort.Strings(literals)

	// DDL takes no bind parameters, hence the quoted literals.
	if _, err := r.ExecAffected(ctx, `ALTER TABLE room_occupancy DROP CONSTRAINT IF EXISTS `+sourceTypeConstraint); err != nil {
		return fmt.Errorf("drop source type constraint: %w", err)
	}

	addConstraint := fmt.Sprintf(
		`ALTER TABLE room_occupancy ADD CONSTRAINT %s CHECK (source_type IN (%s))`,
		sourceTypeConstraint,
		strings.Join(literals, ", "),
	)
	if _, err := r.ExecAffected(ctx, addConstraint); err != nil {
		return fmt.Errorf("add source type constraint: %w", err)
	}

	r.logger.Debug("Source type constraint refreshed",
		zap.Strings("allowed", literals),
	)

	return nil
}

// DeleteDerived removes every row a faculty contributed from the given source in a year.
func (r *OccupancyRepository) DeleteDerived(ctx context.Context, academicYearID int64, facultyCode string, source model.SourceType) (int64, error) {
	query := `
		DELETE FROM room_occupancy
		WHERE academic_year_id = $1
		  AND faculty_code = $2
		  AND source_type = $3
	`

	deleted, err := r.ExecAffected(ctx, query, academicYearID, facultyCode, string(source))
	if err != nil {
		return 0, fmt.Errorf("delete derived occupancy: %w", err)
	}

	return deleted, nil
}

func (r *OccupancyRepository) CountDerived(ctx context.Context, academicYearID int64, facultyCode string, source model.SourceType) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM room_occupancy
		WHERE academic_year_id = $1
		  AND faculty_code = $2
		  AND source_type = $3
	`

	var count int64
	if err := r.QueryRow(ctx, query, academicYearID, facultyCode, string(source)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count derived occupancy: %w", err)
	}

	return count, nil
}

// Upsert inserts the row or, when the room/weekday/slot is already claimed,
// takes it over with this row's faculty and source.
func (r *OccupancyRepository) Upsert(ctx context.Context, occupancy *model.RoomOccupancy) error {
	query := `
		INSERT INTO room_occupancy
			(room_id, weekday, start_time, end_time, faculty_code, source_type, academic_year_id, is_active)
		VALUES ($1, $2, $3::text::time, $4::text::time, $5, $6, $7, TRUE)
		ON CONFLICT ON CONSTRAINT uq_room_time_unique
		DO UPDATE SET
			faculty_code = EXCLUDED.faculty_code,
			source_type = EXCLUDED.source_type,
			is_active = TRUE
		RETURNING id
	`

	err := r.QueryRow(
		ctx, query,
		occupancy.RoomID,
		occupancy.Weekday,
		occupancy.StartTime,
		occupancy.EndTime,
		occupancy.FacultyCode,
		string(occupancy.SourceType),
		occupancy.AcademicYearID,
	).Scan(&occupancy.ID)
	if err != nil {
		return fmt.Errorf("upsert room occupancy: %w", err)
	}

	occupancy.IsActive = true

	return nil
}
