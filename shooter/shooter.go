// Package shooter runs the ball shooter: a spinning wheel, a loader arm
// that feeds balls into it and an alignment motor that turns it.
package shooter

import "dragon-ctrl-core/input"

// Shooter is the mechanism the operator behaviors drive. Speeds are
// clamped to [-1, 1].
type Shooter interface {
	SetWheelSpeed(speed float64)
	SetLoaderSpeed(speed float64)
	IsLoaderInPosition() bool
	Align(speed float64)
	AtLeftBound() bool
	AtRightBound() bool
	Outputs() Outputs
}

// Outputs are the latched motor commands.
type Outputs struct {
	Wheel  float64
	Loader float64
	Align  float64
}

// ButtonReader is the part of the input router the behaviors use.
type ButtonReader interface {
	ReadButton(fn input.FunctionID) bool
}

const (
	LoaderRunSpeed = 1.0
	WheelRunSpeed  = 0.75
	AlignSpeed     = 0.35
)

// Loader cycles the loader arm. It runs while LoadBall is held and keeps
// running after release until the arm is back in position.
type Loader struct {
	controls ButtonReader
	shooter  Shooter
}

func NewLoader(controls ButtonReader, s Shooter) *Loader {
	return &Loader{controls: controls, shooter: s}
}

func (l *Loader) Cycle() float64 {
	speed := 0.0
	if l.controls.ReadButton(input.LoadBall) || !l.shooter.IsLoaderInPosition() {
		speed = LoaderRunSpeed
	}
	l.shooter.SetLoaderSpeed(speed)
	return speed
}

// WheelSpinner keeps the wheel up to speed whenever a ball may be fed.
type WheelSpinner struct {
	controls ButtonReader
	shooter  Shooter
}

func NewWheelSpinner(controls ButtonReader, s Shooter) *WheelSpinner {
	return &WheelSpinner{controls: controls, shooter: s}
}

func (w *WheelSpinner) Spin() float64 {
	speed := 0.0
	switch {
	case w.controls.ReadButton(input.SpinShooterWheel), w.controls.ReadButton(input.LoadBall):
		speed = WheelRunSpeed
	case !w.shooter.IsLoaderInPosition():
		speed = WheelRunSpeed
	}
	w.shooter.SetWheelSpeed(speed)
	return speed
}

// Aligner turns the shooter while an align button is held, stopping at
// the travel limits. Right wins when both are held.
type Aligner struct {
	controls ButtonReader
	shooter  Shooter
}

func NewAligner(controls ButtonReader, s Shooter) *Aligner {
	return &Aligner{controls: controls, shooter: s}
}

func (a *Aligner) Adjust() float64 {
	speed := 0.0
	switch {
	case a.controls.ReadButton(input.AlignShooterRight):
		if !a.shooter.AtRightBound() {
			speed = AlignSpeed
		}
	case a.controls.ReadButton(input.AlignShooterLeft):
		if !a.shooter.AtLeftBound() {
			speed = -AlignSpeed
		}
	}
	a.shooter.Align(speed)
	return speed
}
