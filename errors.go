package zxinglight

import (
	"errors"

	zxinggo "github.com/ericlevine/zxinggo"

	"github.com/thotypous/zxinglight/binarizer"
	"github.com/thotypous/zxinglight/symbology"
)

var (
	// ErrCallerMisuse matches every error caused by invalid arguments. Only
	// these errors leave Decode; decode failures are logged and absorbed.
	ErrCallerMisuse = errors.New("caller misuse")

	// ErrInsufficientImage is returned for empty or inconsistent images.
	ErrInsufficientImage = binarizer.ErrInsufficientImage

	// ErrUnknownSymbology is returned for symbology ids without a decoder.
	ErrUnknownSymbology = symbology.ErrUnknownSymbology
)

// MisuseError reports invalid arguments. It matches both ErrCallerMisuse and
// the specific cause.
type MisuseError struct {
	Op  string
	Err error
}

func (e *MisuseError) Error() string {
	return "zxinglight: " + e.Op + ": " + e.Err.Error()
}

func (e *MisuseError) Unwrap() []error {
	return []error{ErrCallerMisuse, e.Err}
}

func misuse(op string, err error) error {
	return &MisuseError{Op: op, Err: err}
}

// Category classifies a contained decode failure.
type Category string

const (
	CategoryNotFound Category = "not_found"
	CategoryChecksum Category = "checksum"
	CategoryFormat   Category = "format"
	CategoryPanic    Category = "panic"
	CategoryInternal Category = "internal"
)

// Classify returns the category of a decode failure.
func Classify(err error) Category {
	var panicErr *symbology.PanicError
	switch {
	case errors.As(err, &panicErr):
		return CategoryPanic
	case errors.Is(err, symbology.ErrNotFound):
		return CategoryNotFound
	case errors.Is(err, zxinggo.ErrChecksum):
		return CategoryChecksum
	case errors.Is(err, zxinggo.ErrFormat):
		return CategoryFormat
	}
	return CategoryInternal
}
