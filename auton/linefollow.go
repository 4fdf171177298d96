// Package auton holds the autonomous behaviors: following a taped line
// and driving up to a wall and backing off to a shooting position.
package auton

import "dragon-ctrl-core/chassis"

// Maneuver is one line-following response.
type Maneuver int

const (
	Stop Maneuver = iota
	Straight
	Reverse
	SlightLeft
	SharpLeft
	SlightRight
	SharpRight
)

func (m Maneuver) String() string {
	switch m {
	case Straight:
		return "straight"
	case Reverse:
		return "reverse"
	case SlightLeft:
		return "slight_left"
	case SharpLeft:
		return "sharp_left"
	case SlightRight:
		return "slight_right"
	case SharpRight:
		return "sharp_right"
	default:
		return "stop"
	}
}

// Follower speeds.
const (
	followSlow   = 0.10
	followCruise = 0.15
	followFast   = 0.20
)

// Speeds returns the (left, right) command of a maneuver.
func (m Maneuver) Speeds() (float64, float64) {
	switch m {
	case Straight:
		return followCruise, followCruise
	case Reverse:
		return -followCruise, -followCruise
	case SlightLeft:
		return followSlow, followFast
	case SharpLeft:
		return -followCruise, followCruise
	case SlightRight:
		return followFast, followSlow
	case SharpRight:
		return followCruise, -followCruise
	default:
		return 0, 0
	}
}

// ManeuverFor maps a line state to the maneuver that keeps the center
// tracker on the line. Anything not listed stops the robot.
func ManeuverFor(s chassis.LineState) Maneuver {
	switch s {
	case chassis.LineWWW, chassis.LineWBW:
		return Straight
	case chassis.LineBBB:
		return Reverse
	case chassis.LineWWB:
		return SlightLeft
	case chassis.LineWBB:
		return SharpLeft
	case chassis.LineBWW:
		return SlightRight
	case chassis.LineBBW:
		return SharpRight
	default:
		return Stop
	}
}

// LineFollower steers along a line using the drivetrain's trackers.
type LineFollower struct {
	dt       chassis.Drivetrain
	previous Maneuver
}

// NewLineFollower puts the drivetrain in brake mode so the robot does not
// roll past the line when it stops.
func NewLineFollower(dt chassis.Drivetrain) *LineFollower {
	dt.SetBrakeMode()
	return &LineFollower{dt: dt, previous: Stop}
}

// Drive runs one cycle and returns the maneuver it commanded.
func (f *LineFollower) Drive() Maneuver {
	f.dt.RefreshLineIndicators()
	m := ManeuverFor(f.dt.LineState())
	f.command(m)
	return m
}

func (f *LineFollower) Stop() { f.command(Stop) }

// PreviousManeuver is the last maneuver commanded.
func (f *LineFollower) PreviousManeuver() Maneuver { return f.previous }

func (f *LineFollower) command(m Maneuver) {
	f.dt.SetSpeeds(m.Speeds())
	f.previous = m
}
