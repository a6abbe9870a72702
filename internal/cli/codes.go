package cli

import (
	"errors"

	"github.com/roach88/sqlb/internal/script"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeConfig        = "E002" // Configuration could not be loaded
	ErrCodeParseFailed   = script.ErrCodeParseFailed
	ErrCodeNotFound      = script.ErrCodeNotFound
	ErrCodeSchema        = script.ErrCodeSchema
	ErrCodeUnknownFormat = script.ErrCodeUnknownFormat

	// Statement errors
	ErrCodeInvalidStatement = script.ErrCodeInvalidStatement
	ErrCodeRenderFailed     = "E202" // Statement failed to render SQL

	// Database errors
	ErrCodeConnectFailed = "E301" // Database could not be opened
	ErrCodeExecFailed    = "E302" // Database rejected a statement
)

// loadErrorCode returns the LoadError code carried by err, or ErrCodeGeneric.
func loadErrorCode(err error) string {
	var loadErr *script.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	return ErrCodeGeneric
}
