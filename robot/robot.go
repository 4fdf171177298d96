// Package robot dispatches each control cycle to the behavior of the
// current mode.
package robot

import (
	"dragon-ctrl-core/auton"
	"dragon-ctrl-core/chassis"
	"dragon-ctrl-core/drive"
	"dragon-ctrl-core/input"
	"dragon-ctrl-core/shooter"
)

// Controls is the operator input the robot reads. *input.Router
// implements it.
type Controls interface {
	drive.Controls
	shooter.ButtonReader
	ClassifyButton(fn input.FunctionID) input.ButtonState
}

// commandLog records the last speeds handed to the drivetrain so they can
// be reported without asking the hardware.
type commandLog struct {
	chassis.Drivetrain
	last drive.Command
}

func (c *commandLog) SetSpeeds(left, right float64) {
	c.last = drive.Command{Left: left, Right: right}
	c.Drivetrain.SetSpeeds(left, right)
}

type Option func(*Robot)

func WithObserver(o Observer) Option {
	return func(r *Robot) {
		if o != nil {
			r.observer = o
		}
	}
}

type Robot struct {
	controls Controls
	dt       *commandLog
	shooter  shooter.Shooter
	observer Observer

	strategies [2]drive.Strategy
	driveMode  drive.Mode
	loader     *shooter.Loader
	wheel      *shooter.WheelSpinner
	aligner    *shooter.Aligner
	follower   *auton.LineFollower
	approach   *auton.ApproachAndBack

	mode         Mode
	autonEnabled bool
	autoDone     bool
	cycle        uint64
}

// New builds every behavior against the given drivetrain and shooter and
// starts disabled. The follower is built last, so the drivetrain is left
// in brake mode.
func New(controls Controls, dt chassis.Drivetrain, sh shooter.Shooter, approach auton.ApproachConfig, opts ...Option) *Robot {
	log := &commandLog{Drivetrain: dt}
	r := &Robot{
		controls: controls,
		dt:       log,
		shooter:  sh,
		observer: noopObserver{},
	}
	r.strategies[drive.ModeTank] = drive.NewTankDrive(controls, log)
	r.strategies[drive.ModeArcade] = drive.NewArcadeDrive(controls, log)
	r.driveMode = drive.ModeTank
	r.loader = shooter.NewLoader(controls, sh)
	r.wheel = shooter.NewWheelSpinner(controls, sh)
	r.aligner = shooter.NewAligner(controls, sh)
	r.approach = auton.NewApproachAndBack(log, approach)
	r.follower = auton.NewLineFollower(log)

	for _, opt := range opts {
		opt(r)
	}
	r.SetMode(Disabled)
	return r
}

func (r *Robot) Mode() Mode { return r.mode }

func (r *Robot) DriveMode() drive.Mode { return r.driveMode }

func (r *Robot) AutonEnabled() bool { return r.autonEnabled }

// SetMode switches modes and runs the new mode's init.
func (r *Robot) SetMode(m Mode) {
	r.mode = m
	switch m {
	case Autonomous:
		r.AutonomousInit()
	case Teleop:
		r.TeleopInit()
	default:
		r.DisabledInit()
	}
}

// Periodic runs one cycle of the current mode and reports it.
func (r *Robot) Periodic() Snapshot {
	r.cycle++
	switch r.mode {
	case Autonomous:
		r.AutonomousPeriodic()
	case Teleop:
		r.TeleopPeriodic()
	default:
		r.DisabledPeriodic()
	}
	s := r.snapshot()
	r.observer.Observe(s)
	return s
}

func (r *Robot) DisabledInit() { r.stopAll() }

func (r *Robot) DisabledPeriodic() { r.stopAll() }

func (r *Robot) stopAll() {
	r.dt.SetSpeeds(0, 0)
	r.shooter.SetWheelSpeed(0)
	r.shooter.SetLoaderSpeed(0)
	r.shooter.Align(0)
}

func (r *Robot) AutonomousInit() {
	r.autoDone = false
	r.approach.Rearm()
}

// AutonomousPeriodic runs approach and back once, then holds still.
func (r *Robot) AutonomousPeriodic() {
	if r.autoDone {
		r.dt.SetSpeeds(0, 0)
		return
	}
	if r.approach.DriveCycle() {
		r.autoDone = true
		r.dt.SetSpeeds(0, 0)
	}
}

// TeleopInit starts in arcade drive under manual control.
func (r *Robot) TeleopInit() {
	r.driveMode = drive.ModeArcade
	r.autonEnabled = false
}

func (r *Robot) TeleopPeriodic() {
	r.dt.RefreshLineIndicators()

	if r.controls.ReadButton(input.StopAuton) {
		r.follower.Stop()
		r.autonEnabled = false
	} else if r.controls.ReadButton(input.StartAuton) {
		r.autonEnabled = true
	}

	if r.autonEnabled {
		r.follower.Drive()
		return
	}

	if r.controls.ClassifyButton(input.SwitchDriveMode) == input.Pressed {
		r.driveMode = r.driveMode.Next()
	}
	r.strategies[r.driveMode].DriveCycle()
	r.loader.Cycle()
	r.aligner.Adjust()
	r.wheel.Spin()
}

func (r *Robot) snapshot() Snapshot {
	return Snapshot{
		Cycle:        r.cycle,
		Mode:         r.mode,
		DriveMode:    r.driveMode,
		AutonEnabled: r.autonEnabled,
		Command:      r.dt.last,
		Shooter:      r.shooter.Outputs(),
		Line:         r.dt.LineState(),
		Maneuver:     r.follower.PreviousManeuver(),
		Approach:     r.approach.State(),
		AutoDone:     r.autoDone,
		Contact:      r.dt.IsContactTripped(),
		LeftDist:     r.dt.LeftDistance(),
		RightDist:    r.dt.RightDistance(),
	}
}
