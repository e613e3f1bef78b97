package engine

// ExecuteCommands validates the whole command string, then folds it left to
// right through Execute starting from rover. It stops at the first collision.
// An empty string returns rover unchanged.
func ExecuteCommands(commands string, planet *Planet, rover Rover) (Rover, error) {
	cmds, err := ParseCommands(commands)
	if err != nil {
		return rover, err
	}
	current := rover
	for _, cmd := range cmds {
		next, err := Execute(cmd, planet, current)
		if err != nil {
			return current, err
		}
		current = next
	}
	return current, nil
}

// Trace behaves like ExecuteCommands and also returns one Step per executed
// command. On a collision the returned rover is the last safe rover and the
// final step is marked Blocked. On an invalid command no steps are returned.
func Trace(commands string, planet *Planet, rover Rover) (Rover, []Step, error) {
	cmds, err := ParseCommands(commands)
	if err != nil {
		return rover, nil, err
	}
	steps := make([]Step, 0, len(cmds))
	current := rover
	for i, cmd := range cmds {
		next, err := Execute(cmd, planet, current)
		step := Step{
			Idx:     i + 1,
			Command: cmd.Letter(),
			From:    current.Position,
			To:      next.Position,
			Heading: next.Heading,
		}
		towards := current.Heading
		if cmd == MoveBackward {
			towards = towards.Opposite()
		}
		if err != nil {
			// report the cell the rover tried to enter
			step.To = planet.Next(current.Position, towards)
			step.Blocked = true
			steps = append(steps, step)
			return current, steps, err
		}
		if cmd.IsMove() {
			step.Wrapped = planet.wrapped(current.Position, next.Position, towards)
		}
		steps = append(steps, step)
		current = next
	}
	return current, steps, nil
}
