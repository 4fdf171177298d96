// Package chassis holds the drivetrain capability and its hardware
// variants.
package chassis

import "context"

// Encoder conversions for the drive gearboxes.
const (
	// EncoderDistanceConversion converts encoder counts to feet.
	EncoderDistanceConversion = 0.0010908307638889
	// EncoderVelocityConversion converts counts per 100 ms to feet per second.
	EncoderVelocityConversion = 0.0109083076388889
)

// Drivetrain is what the drive strategies and autonomous behaviors drive.
// SetSpeeds clamps both sides to [-1, 1]. Distances are in feet since the
// last ResetDistance, velocities in feet per second.
type Drivetrain interface {
	SetSpeeds(left, right float64)
	SetBrakeMode()
	SetCoastMode()
	ResetDistance()
	LeftDistance() float64
	RightDistance() float64
	LeftVelocity() float64
	RightVelocity() float64
	IsContactTripped() bool
	LineState() LineState
	RefreshLineIndicators()
}

// Flusher pushes latched outputs to hardware once per cycle.
type Flusher interface {
	Flush(ctx context.Context) error
}
