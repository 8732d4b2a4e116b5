package objmodel

import (
	"errors"
	"fmt"
)

// Load errors.
var (
	ErrOpen          = errors.New("cannot open model file")
	ErrEmptyFile     = fmt.Errorf("%w: file contains no data", ErrOpen)
	ErrFormat        = errors.New("malformed model data")
	ErrNoMeshes      = errors.New("model contains no meshes")
	ErrAlreadyLoaded = errors.New("model already loaded; call Unload first")
)

// FormatError reports a numeric parse failure or an out-of-range pool index
// at a specific line of an OBJ or MTL file.
type FormatError struct {
	File      string // File being parsed (OBJ or MTL)
	Line      int    // 1-based line number
	Directive string // Directive keyword of the offending line
	Err       error  // Underlying cause
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Line, e.Directive, e.Err)
}

// Unwrap exposes both ErrFormat and the underlying cause to errors.Is/As.
func (e *FormatError) Unwrap() []error {
	return []error{ErrFormat, e.Err}
}
