package input

import (
	"math"

	"dragon-ctrl-core/utils"
)

// Deadband is the raw magnitude below which an axis reads as exactly zero.
const Deadband = 0.2

// Profile is the response curve applied to an axis before scaling.
type Profile int

const (
	Linear Profile = iota
	Cubic
)

func (p Profile) String() string {
	switch p {
	case Linear:
		return "Linear"
	case Cubic:
		return "Cubic"
	default:
		return "Unknown"
	}
}

// AxisChannel conditions one physical axis: deadband, response profile,
// then scale and inversion. Inversion is fixed at construction.
type AxisChannel struct {
	scale   float64
	invert  float64
	profile Profile
}

// NewAxisChannel returns a linear, full-scale channel.
func NewAxisChannel(inverted bool) *AxisChannel {
	invert := 1.0
	if inverted {
		invert = -1.0
	}
	return &AxisChannel{scale: 1.0, invert: invert, profile: Linear}
}

// SetScale stores s clamped to [0, 1].
func (a *AxisChannel) SetScale(s float64) { a.scale = utils.ClampUnit(s) }

func (a *AxisChannel) SetProfile(p Profile) { a.profile = p }

func (a *AxisChannel) Scale() float64 { return a.scale }

func (a *AxisChannel) Profile() Profile { return a.profile }

func (a *AxisChannel) Inverted() bool { return a.invert < 0 }

// Read conditions a raw reading. The deadband is tested on the unshaped
// value; NaN reads as zero.
func (a *AxisChannel) Read(raw float64) float64 {
	if math.IsNaN(raw) || math.Abs(raw) < Deadband {
		return 0.0
	}
	if a.profile == Cubic {
		raw = raw * raw * raw
	}
	return raw * a.invert * a.scale
}
