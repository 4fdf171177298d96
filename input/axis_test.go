package input

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxisDeadband(t *testing.T) {
	for _, p := range []Profile{Linear, Cubic} {
		a := NewAxisChannel(true)
		a.SetProfile(p)
		a.SetScale(0.7)
		for _, raw := range []float64{0, 0.1, -0.1, 0.199, -0.199} {
			assert.Equal(t, 0.0, a.Read(raw), "profile=%s raw=%v", p, raw)
		}
	}
}

func TestAxisRead(t *testing.T) {
	tests := []struct {
		name     string
		inverted bool
		profile  Profile
		scale    float64
		raw      float64
		expected float64
	}{
		{"LinearAtDeadband", false, Linear, 1, 0.2, 0.2},
		{"LinearScaled", false, Linear, 0.5, 0.8, 0.4},
		{"LinearInverted", true, Linear, 1, 0.6, -0.6},
		{"CubicFull", false, Cubic, 1, 1, 1},
		{"CubicNegativeFull", false, Cubic, 1, -1, -1},
		{"CubicHalf", false, Cubic, 1, 0.5, 0.125},
		{"CubicInvertedScaled", true, Cubic, 0.5, -0.5, 0.0625},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAxisChannel(tt.inverted)
			a.SetProfile(tt.profile)
			a.SetScale(tt.scale)
			assert.InDelta(t, tt.expected, a.Read(tt.raw), 1e-12)
		})
	}
}

func TestAxisScaleIsClamped(t *testing.T) {
	a := NewAxisChannel(false)

	a.SetScale(1.5)
	assert.Equal(t, 1.0, a.Scale())

	a.SetScale(-0.3)
	assert.Equal(t, 0.0, a.Scale())
	assert.Equal(t, 0.0, a.Read(0.9))

	a.SetScale(0.25)
	assert.Equal(t, 0.25, a.Scale())

	a.SetScale(math.NaN())
	assert.Equal(t, 0.0, a.Scale())
	assert.Equal(t, 0.0, a.Read(0.9))
}

func TestAxisReadNaN(t *testing.T) {
	a := NewAxisChannel(false)
	assert.Equal(t, 0.0, a.Read(math.NaN()))
}

func TestAxisReadIsPure(t *testing.T) {
	a := NewAxisChannel(true)
	a.SetProfile(Cubic)
	a.SetScale(0.8)

	first := a.Read(0.73)
	assert.Equal(t, first, a.Read(0.73))
	assert.True(t, a.Inverted())
	assert.Equal(t, Cubic, a.Profile())
}
