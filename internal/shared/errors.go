package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Operation errors
	ErrUnknownOperation   = fmt.Errorf("unknown operation")
	ErrDuplicateOperation = fmt.Errorf("operation already registered")
	ErrOperationFailed    = fmt.Errorf("operation failed")
	ErrCriticalFindings   = fmt.Errorf("critical adjustments needed")

	// Run history errors
	ErrRunNotFound    = fmt.Errorf("run not found")
	ErrStoreDisabled  = fmt.Errorf("run history is disabled")
	ErrInvalidRun     = fmt.Errorf("invalid run")
	ErrUnsupportedDoc = fmt.Errorf("unsupported document format")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
