package shooter

import (
	"context"

	"github.com/pkg/errors"

	"dragon-ctrl-core/utils"
)

// Motor map frames of the shooter controllers.
const (
	FrameWheelCmd = "SHOOTER_WHEEL_CMD"
	FrameLoadCmd  = "SHOOTER_LOAD_CMD"
	FrameAlignCmd = "SHOOTER_ALIGN_CMD"
)

type Year1Config struct {
	WheelInverted  bool
	LoaderInverted bool
	AlignInverted  bool
	// LoaderHome reads true while the loader arm is in position. When
	// unset the arm is assumed home.
	LoaderHome utils.DigitalInput
	LeftBound  utils.DigitalInput
	RightBound utils.DigitalInput
}

// Year1Shooter drives three CAN controllers. The wheel coasts down; the
// loader and alignment motors brake.
type Year1Shooter struct {
	bus        *utils.Bus
	wheel      *utils.CANMotor
	loader     *utils.CANMotor
	align      *utils.CANMotor
	home       utils.DigitalInput
	leftBound  utils.DigitalInput
	rightBound utils.DigitalInput
}

func NewYear1Shooter(bus *utils.Bus, cfg Year1Config) (*Year1Shooter, error) {
	for _, n := range []string{FrameWheelCmd, FrameLoadCmd, FrameAlignCmd} {
		if !bus.Map().HasFrame(n) {
			return nil, errors.Errorf("motor map has no %s frame", n)
		}
	}
	s := &Year1Shooter{
		bus:        bus,
		wheel:      utils.NewCANMotor(FrameWheelCmd, cfg.WheelInverted),
		loader:     utils.NewCANMotor(FrameLoadCmd, cfg.LoaderInverted),
		align:      utils.NewCANMotor(FrameAlignCmd, cfg.AlignInverted),
		home:       orFixed(cfg.LoaderHome, true),
		leftBound:  orFixed(cfg.LeftBound, false),
		rightBound: orFixed(cfg.RightBound, false),
	}
	s.loader.SetNeutralBrake(true)
	s.align.SetNeutralBrake(true)
	return s, nil
}

func orFixed(in utils.DigitalInput, v bool) utils.DigitalInput {
	if in == nil {
		return utils.FixedInput(v)
	}
	return in
}

func (s *Year1Shooter) SetWheelSpeed(speed float64)  { s.wheel.Set(speed) }
func (s *Year1Shooter) SetLoaderSpeed(speed float64) { s.loader.Set(speed) }
func (s *Year1Shooter) Align(speed float64)          { s.align.Set(speed) }
func (s *Year1Shooter) IsLoaderInPosition() bool     { return s.home.Get() }
func (s *Year1Shooter) AtLeftBound() bool            { return s.leftBound.Get() }
func (s *Year1Shooter) AtRightBound() bool           { return s.rightBound.Get() }

func (s *Year1Shooter) Outputs() Outputs {
	return Outputs{Wheel: s.wheel.Speed(), Loader: s.loader.Speed(), Align: s.align.Speed()}
}

// Flush transmits all three commands, returning the first failure.
func (s *Year1Shooter) Flush(ctx context.Context) error {
	var first error
	for _, m := range []*utils.CANMotor{s.wheel, s.loader, s.align} {
		if err := m.Flush(ctx, s.bus); err != nil && first == nil {
			first = err
		}
	}
	return first
}
