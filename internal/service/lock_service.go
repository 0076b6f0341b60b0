package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/schedule_lock/internal/model"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// notifyTimeout caps how long a toggle response waits on the notifier.
const notifyTimeout = 5 * time.Second

// Notifier is told about every successful toggle. Errors are logged only.
type Notifier interface {
	NotifyLockChanged(ctx context.Context, result *LockResult) error
}

type LockService struct {
	repos    Repos
	tx       Transactor
	notifier Notifier
	validate *validator.Validate
	logger   *zap.Logger
}

func NewLockService(repos Repos, tx Transactor, notifier Notifier, logger *zap.Logger) *LockService {
	return &LockService{
		repos:    repos,
		tx:       tx,
		notifier: notifier,
		validate: validator.New(),
		logger:   logger,
	}
}

// scheduleSemesters pairs a schedule with the course semesters it covers.
type scheduleSemesters struct {
	ScheduleID int64
	Semesters  []int
}

// semesterPlan splits the two terms. One shared schedule covers all six semesters.
func semesterPlan(cmd ToggleLockCommand) []scheduleSemesters {
	if cmd.SameSchedule() {
		return []scheduleSemesters{
			{ScheduleID: cmd.WinterScheduleID, Semesters: model.AllSemesters},
		}
	}
	return []scheduleSemesters{
		{ScheduleID: cmd.WinterScheduleID, Semesters: model.WinterSemesters},
		{ScheduleID: cmd.SummerScheduleID, Semesters: model.SummerSemesters},
	}
}

// ToggleLock locks or unlocks the winter and summer schedules.
// Only the event flag update can fail the call; the config flag and the
// occupancy sync are best-effort and reported through the result message.
func (s *LockService) ToggleLock(ctx context.Context, cmd ToggleLockCommand) (*LockResult, error) {
	if cmd.Action != ActionToggleLock {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, cmd.Action)
	}
	if err := s.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScheduleID, err)
	}

	winterRows, summerRows, err := s.setEventsLocked(ctx, cmd)
	if err != nil {
		s.logger.Error("Failed to toggle schedule lock",
			zap.Int64("winter_schedule_id", cmd.WinterScheduleID),
			zap.Int64("summer_schedule_id", cmd.SummerScheduleID),
			zap.Bool("is_locked", cmd.IsLocked),
			zap.Error(err))
		return nil, err
	}

	s.writeLockFlag(ctx, cmd.IsLocked)

	debug, note := s.syncOccupancy(ctx, cmd)

	result := buildResult(cmd, winterRows, summerRows, debug, note)

	s.logger.Info("Schedule lock toggled",
		zap.Int64("winter_schedule_id", cmd.WinterScheduleID),
		zap.Int64("summer_schedule_id", cmd.SummerScheduleID),
		zap.Bool("is_locked", cmd.IsLocked),
		zap.Int64("winter_rows", winterRows),
		zap.Int64("summer_rows", summerRows),
		zap.Int("occupancy_rows", debug.RowsInserted),
	)

	s.notify(ctx, result)

	return result, nil
}

func (s *LockService) notify(ctx context.Context, result *LockResult) {
	if s.notifier == nil {
		return
	}

	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyLockChanged(notifyCtx, result); err != nil {
		s.logger.Warn("Failed to send lock notification", zap.Error(err))
	}
}

// setEventsLocked updates both terms in one transaction. When the ids are equal
// the summer branch is skipped and reports 0.
func (s *LockService) setEventsLocked(ctx context.Context, cmd ToggleLockCommand) (winterRows, summerRows int64, err error) {
	plan := semesterPlan(cmd)

	err = s.tx.InTx(ctx, func(r Repos) error {
		rows, err := r.Events.SetLocked(ctx, plan[0].ScheduleID, plan[0].Semesters, cmd.IsLocked)
		if err != nil {
			return fmt.Errorf("update winter schedule: %w", err)
		}
		winterRows = rows

		if len(plan) > 1 {
			rows, err = r.Events.SetLocked(ctx, plan[1].ScheduleID, plan[1].Semesters, cmd.IsLocked)
			if err != nil {
				return fmt.Errorf("update summer schedule: %w", err)
			}
			summerRows = rows
		}

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return winterRows, summerRows, nil
}

// writeLockFlag mirrors the lock state into config for the frontend.
func (s *LockService) writeLockFlag(ctx context.Context, locked bool) {
	value := "0"
	if locked {
		value = "1"
	}

	if err := s.repos.Config.Set(ctx, model.ScheduleLockedKey, value); err != nil {
		s.logger.Warn("Failed to update config.schedule_locked",
			zap.String("value", value),
			zap.Error(err))
	}
}

// Status reports the lock state. The per-event flags are authoritative;
// the config flag is only a cache for fast reads.
func (s *LockService) Status(ctx context.Context) (*LockStatus, error) {
	locked, total, err := s.repos.Events.CountLocked(ctx)
	if err != nil {
		return nil, err
	}

	value, _, err := s.repos.Config.Get(ctx, model.ScheduleLockedKey)
	if err != nil {
		return nil, err
	}

	status := &LockStatus{
		IsLocked:     locked > 0,
		ConfigValue:  value,
		LockedEvents: locked,
		TotalEvents:  total,
	}
	status.Consistent = (value == "1") == status.IsLocked

	year, err := s.repos.Years.ResolveActive(ctx)
	if err != nil {
		return nil, err
	}
	if year != nil {
		status.ActiveYearID = &year.ID
		status.OccupancyRows, err = s.repos.Occupancy.CountDerived(ctx, year.ID, model.FacultyFIT, model.SourceTypeSchedule)
		if err != nil {
			return nil, err
		}
	}

	if !status.Consistent {
		s.logger.Warn("config.schedule_locked disagrees with event flags",
			zap.String("config_value", value),
			zap.Int64("locked_events", locked))
	}

	return status, nil
}
