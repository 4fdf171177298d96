// Package telemetry reports cycle snapshots to the log and to a remote
// dashboard.
package telemetry

import (
	"dragon-ctrl-core/robot"
	"dragon-ctrl-core/utils"
)

// LogObserver writes every Nth snapshot at INFO and every mode, drive mode
// or auton change as soon as it happens.
type LogObserver struct {
	log   *utils.Logger
	every uint64
	last  robot.Snapshot
	seen  bool
}

// NewLogObserver logs one line per every cycles; 0 logs only changes.
func NewLogObserver(log *utils.Logger, every int) *LogObserver {
	if every < 0 {
		every = 0
	}
	return &LogObserver{log: log, every: uint64(every)}
}

func (o *LogObserver) Observe(s robot.Snapshot) {
	if !o.seen || s.Mode != o.last.Mode {
		o.log.Info("mode %s", s.Mode)
	}
	if o.seen && s.DriveMode != o.last.DriveMode {
		o.log.Info("drive mode %s", s.DriveMode)
	}
	if o.seen && s.AutonEnabled != o.last.AutonEnabled {
		o.log.Info("line following %t", s.AutonEnabled)
	}
	if s.AutoDone && !o.last.AutoDone {
		o.log.Info("shooting position reached after %d cycles", s.Cycle)
	}
	o.last, o.seen = s, true

	if o.every > 0 && s.Cycle%o.every == 0 {
		o.log.Info("cycle=%d mode=%s cmd=(%.2f,%.2f) shooter=(%.2f,%.2f,%.2f) line=%s contact=%t dist=(%.2f,%.2f)",
			s.Cycle, s.Mode, s.Command.Left, s.Command.Right,
			s.Shooter.Wheel, s.Shooter.Loader, s.Shooter.Align,
			s.Line, s.Contact, s.LeftDist, s.RightDist)
	}
	o.log.Trace("cycle=%d cmd=(%.3f,%.3f) maneuver=%s approach=%s",
		s.Cycle, s.Command.Left, s.Command.Right, s.Maneuver, s.Approach)
}

// Fanout passes each snapshot to several observers in order.
type Fanout []robot.Observer

func (f Fanout) Observe(s robot.Snapshot) {
	for _, o := range f {
		o.Observe(s)
	}
}
