package robot

import "strings"

// Mode is the field control mode the robot is running in.
type Mode int

const (
	Disabled Mode = iota
	Autonomous
	Teleop
)

func (m Mode) String() string {
	switch m {
	case Disabled:
		return "disabled"
	case Autonomous:
		return "autonomous"
	case Teleop:
		return "teleop"
	default:
		return "unknown"
	}
}

// Next cycles disabled, autonomous, teleop.
func (m Mode) Next() Mode {
	switch m {
	case Disabled:
		return Autonomous
	case Autonomous:
		return Teleop
	default:
		return Disabled
	}
}

func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disabled":
		return Disabled, true
	case "autonomous", "auto":
		return Autonomous, true
	case "teleop":
		return Teleop, true
	default:
		return Disabled, false
	}
}
