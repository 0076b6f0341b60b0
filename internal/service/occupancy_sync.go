package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/schedule_lock/internal/model"
	"github.com/Freeeeeet/schedule_lock/internal/timetable"
	"go.uber.org/zap"
)

// syncOccupancy rebuilds FIT's schedule-derived room occupancy for the active year.
// It never fails the request: problems come back as a note for the message.
func (s *LockService) syncOccupancy(ctx context.Context, cmd ToggleLockCommand) (OccupancyDebug, string) {
	debug := newOccupancyDebug()
	noYear := false

	err := s.tx.InTx(ctx, func(r Repos) error {
		year, err := r.Years.ResolveActive(ctx)
		if err != nil {
			return err
		}
		if year == nil {
			noYear = true
			return nil
		}
		debug.ActiveYearID = &year.ID

		if err := r.Occupancy.EnsureSourceTypes(ctx, model.SourceTypeManual, model.SourceTypeSchedule); err != nil {
			return err
		}

		deleted, err := r.Occupancy.DeleteDerived(ctx, year.ID, model.FacultyFIT, model.SourceTypeSchedule)
		if err != nil {
			return err
		}
		s.logger.Debug("Cleared derived occupancy",
			zap.Int64("academic_year_id", year.ID),
			zap.Int64("deleted", deleted))

		if !cmd.IsLocked {
			return nil
		}

		return s.deriveOccupancy(ctx, r, cmd, year.ID, &debug)
	})

	if err != nil {
		// The transaction was rolled back, nothing from this run is stored.
		// EventsFound, ScheduleIDs and SemesterMap still describe how far the run got.
		debug.RowsInserted = 0
		s.logger.Warn("Room occupancy sync failed", zap.Error(err))
		return debug, fmt.Sprintf(noteSyncFailed, err.Error())
	}
	if noYear {
		s.logger.Warn("No academic year found, occupancy sync skipped")
		return debug, noteNoAcademicYear
	}

	return debug, ""
}

func (s *LockService) deriveOccupancy(ctx context.Context, r Repos, cmd ToggleLockCommand, yearID int64, debug *OccupancyDebug) error {
	plan := semesterPlan(cmd)
	for _, p := range plan {
		debug.SemesterMap[strconv.FormatInt(p.ScheduleID, 10)] = p.Semesters
		debug.ScheduleIDs = append(debug.ScheduleIDs, p.ScheduleID)
	}

	for _, p := range plan {
		if p.ScheduleID <= 0 || len(p.Semesters) == 0 {
			continue
		}

		events, err := r.Events.FindOccupying(ctx, p.ScheduleID, p.Semesters)
		if err != nil {
			return err
		}
		debug.EventsFound += len(events)

		for _, event := range events {
			rows := occupancyForEvent(event, yearID)
			for _, occupancy := range rows {
				if err := r.Occupancy.Upsert(ctx, occupancy); err != nil {
					return err
				}
				debug.RowsInserted++
			}
		}
	}

	return nil
}

// occupancyForEvent returns one row per daily slot the event overlaps.
// Events without a room, with an unknown day label or malformed times yield nothing.
func occupancyForEvent(event *model.AcademicEvent, yearID int64) []*model.RoomOccupancy {
	if event.RoomID == nil {
		return nil
	}

	weekday, ok := timetable.ParseWeekday(event.Day)
	if !ok {
		return nil
	}

	start, err := timetable.ParseMinutes(event.StartsAt)
	if err != nil {
		return nil
	}
	end, err := timetable.ParseMinutes(event.EndsAt)
	if err != nil {
		return nil
	}

	var rows []*model.RoomOccupancy
	for _, slot := range timetable.OverlappingSlots(start, end) {
		rows = append(rows, &model.RoomOccupancy{
			RoomID:         *event.RoomID,
			Weekday:        weekday,
			StartTime:      slot.Start,
			EndTime:        slot.End,
			FacultyCode:    model.FacultyFIT,
			SourceType:     model.SourceTypeSchedule,
			AcademicYearID: yearID,
			IsActive:       true,
		})
	}

	return rows
}
