package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the setting path doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates the value type doesn't match the setting.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates a value outside the allowed range.
	ErrValidationFailed = errors.New("validation failed")
)
