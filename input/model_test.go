package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHatAngle(t *testing.T) {
	assert.Equal(t, PadCentered, HatAngle(0, 0))
	assert.Equal(t, 0, HatAngle(0, -1))
	assert.Equal(t, 90, HatAngle(1, 0))
	assert.Equal(t, 225, HatAngle(-1, 1))
	assert.Equal(t, 315, HatAngle(-1, -1))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, -1.0, normalize(-32768, -32768, 32767, false))
	assert.Equal(t, 1.0, normalize(32767, -32768, 32767, false))
	assert.Equal(t, 0.0, normalize(0, 0, 255, true))
	assert.Equal(t, 1.0, normalize(255, 0, 255, true))
	assert.Equal(t, 1.0, normalize(400, 0, 255, true))
}

func TestModelByName(t *testing.T) {
	m, ok := ModelByName("8BitDo")
	assert.True(t, ok)
	assert.Equal(t, ButtonSelect, m.Buttons[310])

	m, ok = ModelByName("joystick")
	assert.False(t, ok)
	assert.Equal(t, "xbox", m.Name)
}
