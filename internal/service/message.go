package service

import "fmt"

const (
	noteNoAcademicYear = " (Napomena: nema aktivne akademske godine za zauzetost sala.)"
	noteSyncFailed     = " (Napomena: zauzetost sala nije ažurirana: %s)"
)

// lockMessage builds the user-facing summary of a toggle.
func lockMessage(cmd ToggleLockCommand, winterRows, summerRows int64) string {
	if cmd.SameSchedule() {
		verb := "otključan"
		if cmd.IsLocked {
			verb = "zaključan"
		}
		return fmt.Sprintf("Raspored ID %d (%d termina) je %s.", cmd.WinterScheduleID, winterRows, verb)
	}

	verb := "otključani"
	if cmd.IsLocked {
		verb = "zaključani"
	}
	return fmt.Sprintf(
		"Zimski raspored ID %d (%d termina) i Ljetnji raspored ID %d (%d termina) su %s.",
		cmd.WinterScheduleID, winterRows, cmd.SummerScheduleID, summerRows, verb,
	)
}

func buildResult(cmd ToggleLockCommand, winterRows, summerRows int64, debug OccupancyDebug, note string) *LockResult {
	return &LockResult{
		Success:            true,
		Message:            lockMessage(cmd, winterRows, summerRows) + note,
		IsLocked:           cmd.IsLocked,
		WinterScheduleID:   cmd.WinterScheduleID,
		SummerScheduleID:   cmd.SummerScheduleID,
		WinterRowsAffected: winterRows,
		SummerRowsAffected: summerRows,
		TotalRowsAffected:  winterRows + summerRows,
		OccupancyDebug:     debug,
	}
}
