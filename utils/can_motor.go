package utils

import "context"

// Signal names used by motor controller command frames.
const (
	SignalDuty  = "duty"
	SignalBrake = "brake"
)

// CANMotor latches the output of one CAN motor controller between flushes.
// Set and the neutral mode setters only record state; Flush puts it on the
// bus.
type CANMotor struct {
	frame    string
	inverted bool
	duty     float64
	brake    bool
}

func NewCANMotor(frame string, inverted bool) *CANMotor {
	return &CANMotor{frame: frame, inverted: inverted}
}

func (m *CANMotor) Frame() string { return m.frame }

// Set stores a duty cycle, clamped to [-1, 1].
func (m *CANMotor) Set(speed float64) { m.duty = ClampSpeed(speed) }

// Speed is the last commanded duty cycle before inversion.
func (m *CANMotor) Speed() float64 { return m.duty }

func (m *CANMotor) SetNeutralBrake(brake bool) { m.brake = brake }

func (m *CANMotor) NeutralBrake() bool { return m.brake }

func (m *CANMotor) Flush(ctx context.Context, bus *Bus) error {
	duty := m.duty
	if m.inverted {
		duty = -duty
	}
	brake := 0.0
	if m.brake {
		brake = 1
	}
	return bus.Send(ctx, m.frame, map[string]float64{
		SignalDuty:  duty,
		SignalBrake: brake,
	})
}
