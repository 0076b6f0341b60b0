package httpapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/schedule_lock/internal/service"
	"github.com/spf13/cast"
)

// parseToggleRequest decodes the loosely typed JSON body. action and is_locked
// must be present and non-null; schedule ids default to 0.
func parseToggleRequest(body []byte) (service.ToggleLockCommand, error) {
	var cmd service.ToggleLockCommand

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return cmd, fmt.Errorf("%w: %v", service.ErrMissingParams, err)
	}

	action, ok := raw["action"]
	if !ok || action == nil {
		return cmd, fmt.Errorf("%w: action", service.ErrMissingParams)
	}
	locked, ok := raw["is_locked"]
	if !ok || locked == nil {
		return cmd, fmt.Errorf("%w: is_locked", service.ErrMissingParams)
	}

	isLocked, err := cast.ToBoolE(locked)
	if err != nil {
		return cmd, fmt.Errorf("%w: is_locked: %v", service.ErrMissingParams, err)
	}

	cmd.Action = cast.ToString(action)
	cmd.IsLocked = isLocked
	cmd.WinterScheduleID = scheduleID(raw["winter_schedule_id"])
	cmd.SummerScheduleID = scheduleID(raw["summer_schedule_id"])

	return cmd, nil
}

// scheduleID coerces numbers and decimal strings; anything else is 0.
// Strings are always read in base 10, so "010" is 10 and "0x14" is rejected.
func scheduleID(v interface{}) int64 {
	if v == nil {
		return 0
	}
	if s, ok := v.(string); ok {
		id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0
		}
		return id
	}
	id, err := cast.ToInt64E(v)
	if err != nil {
		return 0
	}
	return id
}
