// Package drive turns operator stick positions into per-side wheel
// speeds.
package drive

import "dragon-ctrl-core/input"

// Command is one cycle's output: a speed per side, before the drivetrain
// clamps it.
type Command struct {
	Left  float64
	Right float64
}

// Stop is the zero command.
var Stop = Command{}

// Drivetrain is the part of the chassis a strategy needs.
type Drivetrain interface {
	SetSpeeds(left, right float64)
	SetCoastMode()
}

// Controls is the part of the input router a strategy needs.
type Controls interface {
	ReadAxis(fn input.FunctionID) float64
	ConfigureAxisScale(fn input.FunctionID, scale float64)
	ConfigureAxisProfile(fn input.FunctionID, p input.Profile)
}

// Strategy is a joystick drive mode. DriveCycle reads the controls once,
// commands the drivetrain, and returns what it commanded.
type Strategy interface {
	DriveCycle() Command
	Identifier() string
}

// Mode selects a Strategy.
type Mode int

const (
	ModeTank Mode = iota
	ModeArcade
)

func (m Mode) String() string {
	switch m {
	case ModeTank:
		return "Tank Drive"
	case ModeArcade:
		return "Arcade Drive"
	default:
		return "Unknown"
	}
}

// Next toggles between the two modes.
func (m Mode) Next() Mode {
	if m == ModeTank {
		return ModeArcade
	}
	return ModeTank
}
