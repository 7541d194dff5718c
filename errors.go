package raster

import "sync/atomic"

// ErrorCode identifies the outcome of the most recent engine operation.
// Every public operation records a code alongside its sentinel return
// value: callers check the sentinel first and may consult LastError for
// diagnostics.
type ErrorCode int32

const (
	// ErrOK indicates the last operation succeeded.
	ErrOK ErrorCode = iota
	// ErrOutOfMemory indicates a resource allocation failed.
	ErrOutOfMemory
	// ErrRefBitmap indicates a reference argument was not a live bitmap.
	ErrRefBitmap
	// ErrRefPalette indicates a reference argument was not a live palette.
	ErrRefPalette
	// ErrOutOfRange indicates a coordinate, index or dimension outside
	// the valid range.
	ErrOutOfRange
)

// String returns the error code name.
func (e ErrorCode) String() string {
	switch e {
	case ErrOK:
		return "OK"
	case ErrOutOfMemory:
		return "OutOfMemory"
	case ErrRefBitmap:
		return "WrongReferenceBitmap"
	case ErrRefPalette:
		return "WrongReferencePalette"
	case ErrOutOfRange:
		return "OutOfRange"
	default:
		return "Unknown"
	}
}

// lastError holds the process-wide diagnostic code. Stored atomically so
// that operations on independent resources may run from any goroutine.
var lastError atomic.Int32

func setLastError(code ErrorCode) {
	lastError.Store(int32(code))
}

// LastError returns the code recorded by the most recent engine
// operation in any goroutine.
func LastError() ErrorCode {
	return ErrorCode(lastError.Load())
}

// ClearLastError resets the diagnostic state to ErrOK.
func ClearLastError() {
	lastError.Store(int32(ErrOK))
}
