package auton

import (
	"math"

	"dragon-ctrl-core/chassis"
)

type ApproachState int

const (
	Ready ApproachState = iota
	Approaching
	BackingUp
	Done
)

func (s ApproachState) String() string {
	switch s {
	case Ready:
		return "ready"
	case Approaching:
		return "approaching"
	case BackingUp:
		return "backing_up"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// ApproachConfig holds the fixed speeds and the backup distance in feet.
type ApproachConfig struct {
	ApproachSpeed  float64 `mapstructure:"approach_speed"`
	BackupSpeed    float64 `mapstructure:"backup_speed"`
	StopSpeed      float64 `mapstructure:"stop_speed"`
	TargetDistance float64 `mapstructure:"target_distance_ft"`
}

func DefaultApproachConfig() ApproachConfig {
	return ApproachConfig{
		ApproachSpeed:  0.5,
		BackupSpeed:    -0.5,
		StopSpeed:      0,
		TargetDistance: 2.0,
	}
}

// NextApproachState decides the state after one cycle. distance is the
// average of both sides since the last reset.
func NextApproachState(s ApproachState, contact bool, distance, target float64) ApproachState {
	switch s {
	case Ready:
		return Approaching
	case Approaching:
		if contact {
			return BackingUp
		}
	case BackingUp:
		// Magnitude, not the signed (L+R)/2 >= target: sim and CAN distances
		// count forward positive, so a signed check never ends a backup.
		if math.Abs(distance) >= target {
			return Done
		}
	case Done:
		return Ready
	}
	return s
}

// ApproachAndBack drives forward until the bumper touches the wall, then
// reverses a fixed distance.
type ApproachAndBack struct {
	dt    chassis.Drivetrain
	cfg   ApproachConfig
	state ApproachState
}

func NewApproachAndBack(dt chassis.Drivetrain, cfg ApproachConfig) *ApproachAndBack {
	a := &ApproachAndBack{dt: dt, cfg: cfg}
	dt.SetBrakeMode()
	a.enter(Ready)
	return a
}

func (a *ApproachAndBack) State() ApproachState { return a.state }

// Rearm returns to Ready and stops.
func (a *ApproachAndBack) Rearm() { a.enter(Ready) }

// DriveCycle advances the behavior and reports true on the single cycle
// that follows reaching the shooting position.
func (a *ApproachAndBack) DriveCycle() bool {
	distance := (a.dt.LeftDistance() + a.dt.RightDistance()) / 2
	next := NextApproachState(a.state, a.dt.IsContactTripped(), distance, a.cfg.TargetDistance)

	if a.state == Done {
		// rest at Ready; the stop was commanded on entering Done
		a.state = next
		return true
	}
	if next != a.state {
		a.enter(next)
	}
	return false
}

func (a *ApproachAndBack) enter(s ApproachState) {
	speed := a.cfg.StopSpeed
	switch s {
	case Approaching:
		speed = a.cfg.ApproachSpeed
	case BackingUp:
		speed = a.cfg.BackupSpeed
		a.dt.ResetDistance()
	}
	a.state = s
	a.dt.SetSpeeds(speed, speed)
}
