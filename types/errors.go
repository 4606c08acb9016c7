package types

import "errors"

// ECSError is the error type returned by every package in this module.
// Code is a stable machine-readable tag; Message is human-readable.
type ECSError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e ECSError) Error() string {
	return e.Message
}

// Common error codes
const (
	ErrInvalidIdentifier    = "INVALID_IDENTIFIER"
	ErrInvalidCredentialKey = "INVALID_CREDENTIAL_KEY"
	ErrResolutionTimeout    = "RESOLUTION_TIMEOUT"
	ErrResolution           = "ENS_RESOLUTION_ERROR"
	ErrConfiguration        = "CONFIGURATION_ERROR"
)

// IsCode reports whether err is an ECSError carrying the given code.
func IsCode(err error, code string) bool {
	var ecsErr *ECSError
	if errors.As(err, &ecsErr) {
		return ecsErr.Code == code
	}
	return false
}
