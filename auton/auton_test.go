package auton

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragon-ctrl-core/chassis"
)

func TestManeuverTable(t *testing.T) {
	cases := []struct {
		state       chassis.LineState
		want        Maneuver
		left, right float64
	}{
		{chassis.LineWWW, Straight, 0.15, 0.15},
		{chassis.LineWBW, Straight, 0.15, 0.15},
		{chassis.LineBBB, Reverse, -0.15, -0.15},
		{chassis.LineWWB, SlightLeft, 0.10, 0.20},
		{chassis.LineWBB, SharpLeft, -0.15, 0.15},
		{chassis.LineBWW, SlightRight, 0.20, 0.10},
		{chassis.LineBBW, SharpRight, 0.15, -0.15},
		{chassis.LineBWB, Stop, 0, 0},
		{chassis.LineUnknown, Stop, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.state.String(), func(t *testing.T) {
			m := ManeuverFor(tc.state)
			assert.Equal(t, tc.want, m)
			l, r := m.Speeds()
			assert.Equal(t, tc.left, l)
			assert.Equal(t, tc.right, r)
		})
	}
}

func TestLineFollowerDrive(t *testing.T) {
	sim := chassis.NewSimChassis(chassis.SimConfig{})
	f := NewLineFollower(sim)
	assert.True(t, sim.BrakeMode())
	assert.Equal(t, Stop, f.PreviousManeuver())

	sim.SetLineState(chassis.LineWWB)
	assert.Equal(t, SlightLeft, f.Drive())
	l, r := sim.Speeds()
	assert.Equal(t, 0.10, l)
	assert.Equal(t, 0.20, r)
	assert.Equal(t, 1, sim.Refreshes())
	assert.Equal(t, SlightLeft, f.PreviousManeuver())

	f.Stop()
	l, r = sim.Speeds()
	assert.Zero(t, l)
	assert.Zero(t, r)
	assert.Equal(t, Stop, f.PreviousManeuver())
}

func TestNextApproachState(t *testing.T) {
	assert.Equal(t, Approaching, NextApproachState(Ready, true, 5, 2))
	assert.Equal(t, Approaching, NextApproachState(Approaching, false, 5, 2))
	assert.Equal(t, BackingUp, NextApproachState(Approaching, true, 0, 2))
	assert.Equal(t, BackingUp, NextApproachState(BackingUp, true, -1.9, 2))
	assert.Equal(t, Done, NextApproachState(BackingUp, false, -2.0, 2))
	assert.Equal(t, Done, NextApproachState(BackingUp, false, 2.4, 2))
	assert.Equal(t, Ready, NextApproachState(Done, false, 0, 2))
}

func TestApproachAndBackSequence(t *testing.T) {
	ctx := context.Background()
	sim := chassis.NewSimChassis(chassis.SimConfig{MaxSpeed: 10, Period: 100 * time.Millisecond})
	a := NewApproachAndBack(sim, DefaultApproachConfig())
	assert.True(t, sim.BrakeMode())
	assert.Equal(t, Ready, a.State())

	assert.False(t, a.DriveCycle())
	assert.Equal(t, Approaching, a.State())
	l, _ := sim.Speeds()
	assert.Equal(t, 0.5, l)

	require.NoError(t, sim.Flush(ctx))
	assert.False(t, a.DriveCycle())
	assert.Equal(t, Approaching, a.State())

	sim.SetContact(true)
	assert.False(t, a.DriveCycle())
	assert.Equal(t, BackingUp, a.State())
	assert.Zero(t, sim.LeftDistance())
	l, r := sim.Speeds()
	assert.Equal(t, -0.5, l)
	assert.Equal(t, -0.5, r)

	for i := 0; i < 3; i++ {
		require.NoError(t, sim.Flush(ctx))
		assert.False(t, a.DriveCycle())
		assert.Equal(t, BackingUp, a.State())
	}
	require.NoError(t, sim.Flush(ctx))
	assert.False(t, a.DriveCycle())
	assert.Equal(t, Done, a.State())
	l, _ = sim.Speeds()
	assert.Zero(t, l)

	assert.True(t, a.DriveCycle())
	assert.Equal(t, Ready, a.State())
	assert.False(t, a.DriveCycle())
	assert.Equal(t, Approaching, a.State())
}

func TestApproachRearm(t *testing.T) {
	sim := chassis.NewSimChassis(chassis.SimConfig{})
	a := NewApproachAndBack(sim, DefaultApproachConfig())
	a.DriveCycle()
	a.Rearm()
	assert.Equal(t, Ready, a.State())
	l, _ := sim.Speeds()
	assert.Zero(t, l)
}
