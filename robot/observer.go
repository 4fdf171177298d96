package robot

import (
	"dragon-ctrl-core/auton"
	"dragon-ctrl-core/chassis"
	"dragon-ctrl-core/drive"
	"dragon-ctrl-core/shooter"
)

// Snapshot is the state of one cycle after its decision was made.
type Snapshot struct {
	Cycle        uint64
	Mode         Mode
	DriveMode    drive.Mode
	AutonEnabled bool
	Command      drive.Command
	Shooter      shooter.Outputs
	Line         chassis.LineState
	Maneuver     auton.Maneuver
	Approach     auton.ApproachState
	AutoDone     bool
	Contact      bool
	LeftDist     float64
	RightDist    float64
}

// Observer receives a Snapshot at the end of every cycle. It must not
// block the control loop.
type Observer interface {
	Observe(s Snapshot)
}

type noopObserver struct{}

func (noopObserver) Observe(Snapshot) {}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) Observe(s Snapshot) { f(s) }
