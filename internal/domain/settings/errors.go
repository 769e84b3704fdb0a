package settings

import "errors"

var (
	ErrSettingNotFound = errors.New("payroll setting not found")
	ErrUnknownKey      = errors.New("unknown payroll setting key")
	ErrReasonRequired  = errors.New("a change reason is required")
	ErrInvalidValue    = errors.New("setting value is invalid for this key")
)
