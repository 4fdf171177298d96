package drive

import "dragon-ctrl-core/input"

// TankDrive gives each stick its own side of the robot.
type TankDrive struct {
	controls Controls
	dt       Drivetrain
}

func NewTankDrive(controls Controls, dt Drivetrain) *TankDrive {
	controls.ConfigureAxisProfile(input.TankLeft, input.Cubic)
	controls.ConfigureAxisProfile(input.TankRight, input.Cubic)
	dt.SetCoastMode()
	return &TankDrive{controls: controls, dt: dt}
}

// TankMix passes both sides through unchanged.
func TankMix(left, right float64) Command {
	return Command{Left: left, Right: right}
}

func (t *TankDrive) DriveCycle() Command {
	cmd := TankMix(t.controls.ReadAxis(input.TankLeft), t.controls.ReadAxis(input.TankRight))
	t.dt.SetSpeeds(cmd.Left, cmd.Right)
	return cmd
}

func (t *TankDrive) Identifier() string { return ModeTank.String() }
