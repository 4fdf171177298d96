package shooter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.einride.tech/can"

	"dragon-ctrl-core/input"
	"dragon-ctrl-core/utils"
)

type fakeButtons map[input.FunctionID]bool

func (f fakeButtons) ReadButton(fn input.FunctionID) bool { return f[fn] }

func TestLoaderCycle(t *testing.T) {
	cases := []struct {
		name   string
		held   bool
		home   bool
		expect float64
	}{
		{"idle at home", false, true, 0},
		{"button held", true, true, LoaderRunSpeed},
		{"returning home", false, false, LoaderRunSpeed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sim := NewSimShooter()
			sim.LoaderHome = tc.home
			l := NewLoader(fakeButtons{input.LoadBall: tc.held}, sim)
			assert.Equal(t, tc.expect, l.Cycle())
			assert.Equal(t, tc.expect, sim.Outputs().Loader)
		})
	}
}

func TestWheelSpinner(t *testing.T) {
	sim := NewSimShooter()
	buttons := fakeButtons{}
	w := NewWheelSpinner(buttons, sim)

	assert.Zero(t, w.Spin())

	buttons[input.SpinShooterWheel] = true
	assert.Equal(t, WheelRunSpeed, w.Spin())

	buttons[input.SpinShooterWheel] = false
	buttons[input.LoadBall] = true
	assert.Equal(t, WheelRunSpeed, w.Spin())

	buttons[input.LoadBall] = false
	sim.LoaderHome = false
	assert.Equal(t, WheelRunSpeed, w.Spin())
	assert.Equal(t, WheelRunSpeed, sim.Outputs().Wheel)
}

func TestAligner(t *testing.T) {
	cases := []struct {
		name        string
		left, right bool
		atL, atR    bool
		expect      float64
	}{
		{"none", false, false, false, false, 0},
		{"right", false, true, false, false, AlignSpeed},
		{"left", true, false, false, false, -AlignSpeed},
		{"right wins", true, true, false, false, AlignSpeed},
		{"right at bound", false, true, false, true, 0},
		{"right at bound does not fall through to left", true, true, false, true, 0},
		{"left at bound", true, false, true, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sim := NewSimShooter()
			sim.LeftLimit, sim.RightLimit = tc.atL, tc.atR
			a := NewAligner(fakeButtons{
				input.AlignShooterLeft:  tc.left,
				input.AlignShooterRight: tc.right,
			}, sim)
			assert.Equal(t, tc.expect, a.Adjust())
			assert.Equal(t, tc.expect, sim.Outputs().Align)
		})
	}
}

type captureWriter struct{ frames []can.Frame }

func (w *captureWriter) WriteFrame(_ context.Context, f can.Frame) error {
	w.frames = append(w.frames, f)
	return nil
}

func (w *captureWriter) Close() error { return nil }

func TestYear1ShooterFlush(t *testing.T) {
	cmap, err := utils.LoadCANMap("../config/can/year1_map.csv")
	require.NoError(t, err)
	w := &captureWriter{}
	s, err := NewYear1Shooter(utils.NewBus(cmap, w, nil), Year1Config{AlignInverted: true})
	require.NoError(t, err)

	assert.True(t, s.IsLoaderInPosition())
	assert.False(t, s.AtLeftBound())
	assert.False(t, s.AtRightBound())

	s.SetWheelSpeed(2)
	s.SetLoaderSpeed(0.5)
	s.Align(0.35)
	assert.Equal(t, Outputs{Wheel: 1, Loader: 0.5, Align: 0.35}, s.Outputs())

	require.NoError(t, s.Flush(context.Background()))
	require.Len(t, w.frames, 3)

	got := map[string]map[string]float64{}
	for _, f := range w.frames {
		name, values, err := cmap.DecodeEinrideFrame(f)
		require.NoError(t, err)
		got[name] = values
	}
	assert.InDelta(t, 1.0, got[FrameWheelCmd][utils.SignalDuty], 1e-9)
	assert.Equal(t, 0.0, got[FrameWheelCmd][utils.SignalBrake])
	assert.Equal(t, 1.0, got[FrameLoadCmd][utils.SignalBrake])
	assert.InDelta(t, -0.35, got[FrameAlignCmd][utils.SignalDuty], 1e-9)
	assert.Equal(t, 1.0, got[FrameAlignCmd][utils.SignalBrake])
}

func TestYear1ShooterSensors(t *testing.T) {
	cmap, err := utils.LoadCANMap("../config/can/year1_map.csv")
	require.NoError(t, err)
	s, err := NewYear1Shooter(utils.NewBus(cmap, &captureWriter{}, nil), Year1Config{
		LoaderHome: utils.FixedInput(false),
		RightBound: utils.FixedInput(true),
	})
	require.NoError(t, err)
	assert.False(t, s.IsLoaderInPosition())
	assert.True(t, s.AtRightBound())
	assert.False(t, s.AtLeftBound())
}

func TestYear1ShooterNeedsFrames(t *testing.T) {
	cmap, err := utils.LoadCANMap("../config/can/softwaretest_map.csv")
	require.NoError(t, err)
	_, err = NewYear1Shooter(utils.NewBus(cmap, &captureWriter{}, nil), Year1Config{})
	assert.ErrorContains(t, err, FrameWheelCmd)
}
