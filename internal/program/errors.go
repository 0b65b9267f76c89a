package program

import (
	"errors"
	"fmt"
)

// ErrUnknownProgram matches any *UnknownProgramError under errors.Is.
var ErrUnknownProgram = errors.New("unknown program")

// ErrNilHandler is returned when a registered factory produced no handler.
var ErrNilHandler = errors.New("program factory returned nil handler")

// UnknownProgramError reports an identifier with no registered factory.
type UnknownProgramError struct {
	Program ID
}

func (e *UnknownProgramError) Error() string {
	return fmt.Sprintf("unknown program: %q", string(e.Program))
}

// Is reports whether target is ErrUnknownProgram.
func (e *UnknownProgramError) Is(target error) bool {
	return target == ErrUnknownProgram
}
