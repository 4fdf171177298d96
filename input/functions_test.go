package input

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMapping(t *testing.T) {
	m := DefaultMapping()

	assert.Equal(t, "driver:Y_L", m[TankLeft].String())
	assert.Equal(t, "driver:Y_R", m[TankRight].String())
	assert.Equal(t, "driver:Y_L", m[ArcadeThrottle].String())
	assert.Equal(t, "driver:X_R", m[ArcadeSteer].String())
	assert.Equal(t, "driver:SELECT", m[SwitchDriveMode].String())
	assert.Equal(t, "driver:POV_270", m[AlignShooterLeft].String())
	assert.Equal(t, "driver:POV_90", m[AlignShooterRight].String())
	assert.Equal(t, "driver:LT_PRESSED", m[LoadBall].String())
	assert.Equal(t, "driver:RT_PRESSED", m[SpinShooterWheel].String())
	assert.Equal(t, "driver:X", m[StartAuton].String())
	assert.Equal(t, "driver:Y", m[StopAuton].String())
}

func TestParseBinding(t *testing.T) {
	tests := []struct {
		name     string
		fn       FunctionID
		in       string
		expected Binding
		wantErr  bool
	}{
		{"Axis", ArcadeSteer, "copilot:x_l", AxisBinding(Copilot, AxisLeftX), false},
		{"Button", LoadBall, "driver:RB", ButtonBinding(Driver, ButtonRightBumper), false},
		{"Unmapped", LoadBall, "unmapped", Unbound, false},
		{"Empty", TankLeft, "", Unbound, false},
		{"AxisNameForButton", LoadBall, "driver:Y_L", Unbound, true},
		{"UnknownDevice", TankLeft, "pilot:Y_L", Unbound, true},
		{"NoSeparator", TankLeft, "Y_L", Unbound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBinding(tt.fn, tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, b)
		})
	}
}

func TestMappingOverrides(t *testing.T) {
	m, err := DefaultMapping().WithOverrides(map[string]string{
		"arcade_steer": "driver:X_L",
		"load_ball":    "copilot:A",
	})
	require.NoError(t, err)
	assert.Equal(t, AxisBinding(Driver, AxisLeftX), m[ArcadeSteer])
	assert.Equal(t, ButtonBinding(Copilot, ButtonA), m[LoadBall])
	assert.Equal(t, AxisBinding(Driver, AxisLeftY), m[TankLeft])

	_, err = DefaultMapping().WithOverrides(map[string]string{"fly": "driver:A"})
	assert.Error(t, err)
}

func TestBindingErrorsCarryStack(t *testing.T) {
	_, err := ParseBinding(TankLeft, "pilot:Y_L")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown device "pilot"`)
	assert.Contains(t, fmt.Sprintf("%+v", err), "input.ParseBinding")

	_, err = DefaultMapping().WithOverrides(map[string]string{"fly": "driver:A"})
	require.Error(t, err)
	assert.Contains(t, fmt.Sprintf("%+v", err), "input.Mapping.WithOverrides")
}
