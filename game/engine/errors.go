package engine

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a mission failure
type ErrorKind string

const (
	KindHitObstacle        ErrorKind = "hit_obstacle"
	KindInvalidCoordinates ErrorKind = "invalid_coordinates"
	KindInvalidDimensions  ErrorKind = "invalid_dimensions"
	KindInvalidDirection   ErrorKind = "invalid_direction"
	KindInvalidCommand     ErrorKind = "invalid_command"
	KindFileError          ErrorKind = "file_error"
)

// Sentinels for errors.Is matching against a *MissionError of the same kind.
var (
	ErrHitObstacle        = errors.New("rover hit an obstacle")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidDimensions  = errors.New("invalid planet dimensions")
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrInvalidCommand     = errors.New("invalid command")
	ErrFileError          = errors.New("file error")
)

var kindSentinels = map[ErrorKind]error{
	KindHitObstacle:        ErrHitObstacle,
	KindInvalidCoordinates: ErrInvalidCoordinates,
	KindInvalidDimensions:  ErrInvalidDimensions,
	KindInvalidDirection:   ErrInvalidDirection,
	KindInvalidCommand:     ErrInvalidCommand,
	KindFileError:          ErrFileError,
}

// MissionError is the structured failure of a mission.
// Input holds the offending raw text; Position holds the last safe
// position for KindHitObstacle.
type MissionError struct {
	Kind     ErrorKind
	Input    string
	Position Position
	Cause    error
}

func newMissionError(kind ErrorKind, input string, pos Position) *MissionError {
	return &MissionError{Kind: kind, Input: input, Position: pos}
}

// NewMissionError builds a MissionError for callers outside the core, such as parsers.
func NewMissionError(kind ErrorKind, input string) *MissionError {
	return &MissionError{Kind: kind, Input: input}
}

// NewFileError wraps an I/O failure on path
func NewFileError(path string, cause error) *MissionError {
	return &MissionError{Kind: KindFileError, Input: path, Cause: cause}
}

// HitObstacle builds the collision error carrying the last safe position
func HitObstacle(lastSafe Position) *MissionError {
	return newMissionError(KindHitObstacle, "", lastSafe)
}

func (e *MissionError) Error() string {
	switch e.Kind {
	case KindHitObstacle:
		return fmt.Sprintf("hit obstacle: rover stopped at %d %d", e.Position.X, e.Position.Y)
	case KindInvalidCoordinates:
		return fmt.Sprintf("invalid coordinates: %q", e.Input)
	case KindInvalidDimensions:
		return fmt.Sprintf("invalid planet dimensions: %q", e.Input)
	case KindInvalidDirection:
		return fmt.Sprintf("invalid direction: %q", e.Input)
	case KindInvalidCommand:
		return fmt.Sprintf("invalid command: %q", e.Input)
	case KindFileError:
		if e.Cause != nil {
			return fmt.Sprintf("file error: %s: %v", e.Input, e.Cause)
		}
		return fmt.Sprintf("file error: %s", e.Input)
	}
	return fmt.Sprintf("mission error (%s): %q", e.Kind, e.Input)
}

// Is reports whether target is the sentinel for this error's kind, or a
// *MissionError with the same kind.
func (e *MissionError) Is(target error) bool {
	if sentinel, ok := kindSentinels[e.Kind]; ok && target == sentinel {
		return true
	}
	var other *MissionError
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

func (e *MissionError) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of a mission error, or "" for any other error
func KindOf(err error) ErrorKind {
	var me *MissionError
	if errors.As(err, &me) {
		return me.Kind
	}
	return ""
}
