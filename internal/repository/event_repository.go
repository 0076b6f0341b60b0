package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/schedule_lock/internal/model"
	"github.com/Freeeeeet/schedule_lock/internal/repository/base"
)

type EventRepository struct {
	*base.Repository
}

func NewEventRepository(db base.DBTX) *EventRepository {
	return &EventRepository{Repository: base.NewRepository(db)}
}

// SetLocked sets locked_by_admin on every event of the schedule whose course
// semester is in semesters. Returns the number of updated events.
func (r *EventRepository) SetLocked(ctx context.Context, scheduleID int64, semesters []int, locked bool) (int64, error) {
	query := `
		UPDATE academic_event ae
		SET locked_by_admin = $1
		FROM course c
		WHERE ae.course_id = c.id
		  AND ae.schedule_id = $2
		  AND c.semester = ANY($3)
	`

	affected, err := r.ExecAffected(ctx, query, locked, scheduleID, semesters)
	if err != nil {
		return 0, fmt.Errorf("set events locked: %w", err)
	}

	return affected, nil
}

// FindOccupying returns the room-bound lectures, exercises and labs of a schedule
// for the given semesters. Times come back as HH:MM:SS text.
func (r *EventRepository) FindOccupying(ctx context.Context, scheduleID int64, semesters []int) ([]*model.AcademicEvent, error) {
	query := `
		SELECT
			ae.id,
			ae.course_id,
			ae.schedule_id,
			ae.room_id,
			COALESCE(ae.day::text, ''),
			COALESCE(to_char(CAST(ae.starts_at AS time), 'HH24:MI:SS'), ''),
			COALESCE(to_char(CAST(ae.ends_at AS time), 'HH24:MI:SS'), ''),
			ae.type_enum::text,
			ae.locked_by_admin
		FROM academic_event ae
		JOIN course c ON ae.course_id = c.id
		WHERE ae.room_id IS NOT NULL
		  AND ae.type_enum::text = ANY($2::text[])
		  AND ae.schedule_id = $1
		  AND c.semester = ANY($3)
		ORDER BY ae.id
	`

	types := make([]string, 0, len(model.OccupyingEventTypes))
	for _, t := range model.OccupyingEventTypes {
		types = append(types, string(t))
	}

	rows, err := r.Query(ctx, query, scheduleID, types, semesters)
	if err != nil {
		return nil, fmt.Errorf("find occupying events: %w", err)
	}
	defer rows.Close()

	var events []*model.AcademicEvent
	for rows.Next() {
		event := &model.AcademicEvent{}
		err := rows.Scan(
			&event.ID,
			&event.CourseID,
			&event.ScheduleID,
			&event.RoomID,
			&event.Day,
			&event.StartsAt,
			&event.EndsAt,
			&event.Type,
			&event.LockedByAdmin,
		)
		if err != nil {
			return nil, fmt.Errorf("scan academic event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate academic events: %w", err)
	}

	return events, nil
}

// CountLocked returns how many events are locked out of all events.
func (r *EventRepository) CountLocked(ctx context.Context) (locked, total int64, err error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE locked_by_admin),
			COUNT(*)
		FROM academic_event
	`

	err = r.QueryRow(ctx, query).Scan(&locked, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("count locked events: %w", err)
	}

	return locked, total, nil
}
