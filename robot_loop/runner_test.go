package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragon-ctrl-core/chassis"
	"dragon-ctrl-core/config"
	"dragon-ctrl-core/robot"
	"dragon-ctrl-core/utils"
)

func simConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	cfg.Loop.CycleMS = 5
	cfg.Loop.DurationS = 0.05
	cfg.Loop.Mode = "autonomous"
	return cfg
}

func TestRunnerCompletesDuration(t *testing.T) {
	var buf bytes.Buffer
	log := utils.NewWriterLogger(&buf, utils.INFO)

	r, err := NewRunner(context.Background(), simConfig(t), log)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Run(context.Background()))
	assert.NotZero(t, r.cycles)
	assert.Equal(t, robot.Disabled, r.robot.Mode())

	sim := r.platform.Drivetrain.(*chassis.SimChassis)
	l, rt := sim.Speeds()
	assert.Zero(t, l)
	assert.Zero(t, rt)
	assert.Greater(t, sim.LeftDistance(), 0.0, "approach drove forward")

	out := buf.String()
	assert.Contains(t, out, "Completed run")
	assert.Contains(t, out, "Loop stopped")
}

func TestRunnerStopsOnCancel(t *testing.T) {
	cfg := simConfig(t)
	cfg.Loop.DurationS = 0

	r, err := NewRunner(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
}

func TestFramesCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"frames", "--map", "../config/can/year1_map.csv"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "LEFT_DRIVE_CMD     0x205 tx dlc=3")
	assert.Contains(t, out.String(), "center_volts")
}
