package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"dragon-ctrl-core/config"
	"dragon-ctrl-core/hardware"
	"dragon-ctrl-core/input"
	"dragon-ctrl-core/robot"
	"dragon-ctrl-core/telemetry"
	"dragon-ctrl-core/utils"
)

// stopTimeout bounds the final stop flush after the loop exits.
const stopTimeout = 200 * time.Millisecond

type Runner struct {
	cfg       config.Config
	log       *utils.Logger
	platform  *hardware.Platform
	robot     *robot.Robot
	pads      []*input.EvdevController
	dashboard *telemetry.DashboardPublisher
	cycles    uint64
	overruns  uint64
}

func NewRunner(ctx context.Context, cfg config.Config, log *utils.Logger) (*Runner, error) {
	mapping, err := cfg.Mapping()
	if err != nil {
		return nil, err
	}
	model, _ := input.ModelByName(cfg.Input.Model)

	platform, err := hardware.New(ctx, cfg, log.Named("hw"))
	if err != nil {
		return nil, errors.Wrap(err, "hardware")
	}

	r := &Runner{cfg: cfg, log: log, platform: platform}
	driver, err := r.openPad(cfg.Input.DriverDevice, model)
	if err != nil {
		r.Close()
		return nil, err
	}
	copilot, err := r.openPad(cfg.Input.CopilotDevice, model)
	if err != nil {
		r.Close()
		return nil, err
	}

	r.robot = r.buildRobot(input.NewRouter(driver, copilot, mapping))
	return r, nil
}

// openPad opens an evdev controller, or returns nil for an empty path so
// the router treats the pad as unplugged.
func (r *Runner) openPad(path string, model input.Model) (input.RawController, error) {
	if path == "" {
		return nil, nil
	}
	pad, err := input.OpenEvdev(path, model, r.log.Named("input"))
	if err != nil {
		return nil, err
	}
	r.pads = append(r.pads, pad)
	return pad, nil
}

func (r *Runner) buildRobot(router *input.Router) *robot.Robot {
	observers := telemetry.Fanout{telemetry.NewLogObserver(r.log.Named("robot"), r.cfg.Telemetry.LogEvery)}
	if addr := r.cfg.Telemetry.DashboardAddr; addr != "" {
		r.dashboard = telemetry.NewDashboardPublisher(addr, r.cfg.Telemetry.LogEvery, r.log.Named("dashboard"))
		observers = append(observers, r.dashboard)
	}
	return robot.New(router, r.platform.Drivetrain, r.platform.Shooter, r.cfg.Approach,
		robot.WithObserver(observers))
}

func (r *Runner) Close() {
	for _, p := range r.pads {
		_ = p.Close()
	}
	if r.platform != nil {
		if err := r.platform.Close(); err != nil {
			r.log.Warn("hardware close: %v", err)
		}
	}
}

// Run ticks the robot at the configured period until ctx is done or the
// configured duration has elapsed. Flush failures are logged and the loop
// keeps going so the robot keeps receiving commands.
func (r *Runner) Run(ctx context.Context) error {
	mode, _ := robot.ParseMode(r.cfg.Loop.Mode)
	period := r.cfg.Loop.Period()
	endAfter := r.cfg.Loop.Duration()

	for _, p := range r.pads {
		go p.Run(ctx)
	}
	if r.dashboard != nil {
		go func() {
			if err := r.dashboard.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				r.log.Error("dashboard stopped: %v", err)
			}
		}()
	}

	r.log.Info("Starting loop: variant=%s mode=%s cycle=%s duration=%s",
		r.platform.Variant, mode, period, endAfter)
	r.robot.SetMode(mode)
	defer r.stop()

	start := time.Now()
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Warn("Context canceled; stopping loop")
			return ctx.Err()

		case now := <-ticker.C:
			if endAfter > 0 && now.Sub(start) > endAfter {
				r.log.Info("Completed run")
				return nil
			}
			r.step(ctx)
			if took := time.Since(now); took > period {
				r.overruns++
				r.log.Warn("cycle %d took %s, period is %s", r.cycles, took, period)
			}
		}
	}
}

func (r *Runner) step(ctx context.Context) {
	r.robot.Periodic()
	r.cycles++
	if err := r.platform.Flush(ctx); err != nil && ctx.Err() == nil {
		r.log.Error("flush cycle %d: %v", r.cycles, err)
	}
}

// stop disables the robot and sends one last stop on a fresh context,
// since the run context is usually already canceled.
func (r *Runner) stop() {
	r.robot.SetMode(robot.Disabled)
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := r.platform.Flush(ctx); err != nil {
		r.log.Error("final stop: %v", err)
	}
	sent, failed := uint64(0), uint64(0)
	if r.platform.Bus != nil {
		sent, failed = r.platform.Bus.Stats()
	}
	r.log.Info("Loop stopped. cycles=%d overruns=%d flush_failures=%d frames_sent=%d frames_failed=%d",
		r.cycles, r.overruns, r.platform.Failures(), sent, failed)
	if r.dashboard != nil {
		posted, dropped := r.dashboard.Stats()
		r.log.Info("dashboard posted=%d dropped=%d", posted, dropped)
	}
}
