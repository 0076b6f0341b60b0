package service

import "errors"

var (
	ErrMissingParams     = errors.New("missing required parameters")
	ErrUnknownAction     = errors.New("unknown action")
	ErrInvalidScheduleID = errors.New("invalid winter or summer schedule id")
)

// IsValidation reports whether err is caused by bad input rather than storage.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingParams) ||
		errors.Is(err, ErrUnknownAction) ||
		errors.Is(err, ErrInvalidScheduleID)
}
