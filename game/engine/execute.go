package engine

// Execute applies one command to a rover on a planet and returns the new rover.
//
// Moves check the target cell BEFORE committing: when it is blocked the rover
// stays where it is and the error carries that last safe position.
func Execute(cmd Command, planet *Planet, rover Rover) (Rover, error) {
	switch cmd {
	case TurnLeft:
		return Rover{Position: rover.Position, Heading: rover.Heading.Left()}, nil
	case TurnRight:
		return Rover{Position: rover.Position, Heading: rover.Heading.Right()}, nil
	case MoveForward:
		return move(planet, rover, rover.Heading)
	case MoveBackward:
		return move(planet, rover, rover.Heading.Opposite())
	}
	return rover, newMissionError(KindInvalidCommand, cmd.Letter(), rover.Position)
}

// move steps the rover along towards, keeping its heading
func move(planet *Planet, rover Rover, towards Direction) (Rover, error) {
	target := planet.Next(rover.Position, towards)
	if planet.IsBlocked(target) {
		return rover, HitObstacle(rover.Position)
	}
	return Rover{Position: target, Heading: rover.Heading}, nil
}
