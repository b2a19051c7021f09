package symbology

import (
	"errors"
	"fmt"

	zxinggo "github.com/ericlevine/zxinggo"
)

var (
	// ErrNotFound is returned when no enabled decoder recognises a symbol.
	// It is the decoder library's own sentinel so both layers agree on it.
	ErrNotFound = zxinggo.ErrNotFound

	// ErrUnknownSymbology is returned for ids outside the enumeration and for
	// ids no registered decoder supports.
	ErrUnknownSymbology = errors.New("unknown symbology")
)

// UnknownError describes a symbology filter that cannot be honoured.
type UnknownError struct {
	ID   ID
	Name string
}

func unknownError(id ID) *UnknownError {
	return &UnknownError{ID: id}
}

func (e *UnknownError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%v %q", ErrUnknownSymbology, e.Name)
	}
	if e.ID.Valid() {
		return fmt.Sprintf("%v: no decoder for %s", ErrUnknownSymbology, e.ID)
	}
	return fmt.Sprintf("%v: id %d", ErrUnknownSymbology, int(e.ID))
}

func (e *UnknownError) Unwrap() error { return ErrUnknownSymbology }

// PanicError carries a panic recovered from a decoder.
type PanicError struct {
	Decoder string
	Value   interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s decoder panic: %v", e.Decoder, e.Value)
}
