package engine

// Command is a single rover instruction
type Command int

const (
	MoveForward Command = iota
	MoveBackward
	TurnLeft
	TurnRight
)

// ParseCommand maps an input character to a command
func ParseCommand(c rune) (Command, bool) {
	switch c {
	case 'F':
		return MoveForward, true
	case 'B':
		return MoveBackward, true
	case 'L':
		return TurnLeft, true
	case 'R':
		return TurnRight, true
	}
	return 0, false
}

// ParseCommands validates the whole string before returning any command.
// A single invalid character fails the entire string.
func ParseCommands(s string) ([]Command, error) {
	cmds := make([]Command, 0, len(s))
	for _, c := range s {
		cmd, ok := ParseCommand(c)
		if !ok {
			return nil, newMissionError(KindInvalidCommand, s, Position{})
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// Letter returns the input character for the command
func (c Command) Letter() string {
	switch c {
	case MoveForward:
		return "F"
	case MoveBackward:
		return "B"
	case TurnLeft:
		return "L"
	case TurnRight:
		return "R"
	}
	return "?"
}

func (c Command) String() string {
	switch c {
	case MoveForward:
		return "MoveForward"
	case MoveBackward:
		return "MoveBackward"
	case TurnLeft:
		return "TurnLeft"
	case TurnRight:
		return "TurnRight"
	}
	return "Unknown"
}

// IsMove reports whether the command changes position
func (c Command) IsMove() bool {
	return c == MoveForward || c == MoveBackward
}
