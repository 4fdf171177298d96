package drive

import "dragon-ctrl-core/input"

// SteerScale halves turning authority in arcade mode.
const SteerScale = 0.5

// ArcadeDrive drives with one throttle axis and one steer axis.
type ArcadeDrive struct {
	controls Controls
	dt       Drivetrain
}

func NewArcadeDrive(controls Controls, dt Drivetrain) *ArcadeDrive {
	controls.ConfigureAxisProfile(input.ArcadeThrottle, input.Cubic)
	controls.ConfigureAxisProfile(input.ArcadeSteer, input.Cubic)
	controls.ConfigureAxisScale(input.ArcadeSteer, SteerScale)
	dt.SetCoastMode()
	return &ArcadeDrive{controls: controls, dt: dt}
}

// ArcadeMix mixes throttle and steer. Sums past [-1, 1] are left for the
// drivetrain to truncate, so the ratio between sides is not preserved on
// saturation.
func ArcadeMix(throttle, steer float64) Command {
	return Command{Left: throttle + steer, Right: throttle - steer}
}

func (a *ArcadeDrive) DriveCycle() Command {
	steer := a.controls.ReadAxis(input.ArcadeSteer)
	throttle := a.controls.ReadAxis(input.ArcadeThrottle)
	cmd := ArcadeMix(throttle, steer)
	a.dt.SetSpeeds(cmd.Left, cmd.Right)
	return cmd
}

func (a *ArcadeDrive) Identifier() string { return ModeArcade.String() }
