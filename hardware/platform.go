// Package hardware builds the configured robot variant and owns its
// transports for the lifetime of a run.
package hardware

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"dragon-ctrl-core/chassis"
	"dragon-ctrl-core/config"
	"dragon-ctrl-core/shooter"
	"dragon-ctrl-core/utils"
)

// Platform is one robot's drivetrain and shooter. Behaviors latch outputs
// on them during a cycle and Flush sends the result.
type Platform struct {
	Variant    string
	Drivetrain chassis.Drivetrain
	Shooter    shooter.Shooter
	Bus        *utils.Bus

	log      *utils.Logger
	flushers []chassis.Flusher
	closers  []func() error
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	failures uint64
}

type closer interface{ Close() }

// New builds cfg.Hardware.Variant. Feedback listeners run until Close.
func New(ctx context.Context, cfg config.Config, log *utils.Logger) (*Platform, error) {
	ctx, cancel := context.WithCancel(ctx)
	p := &Platform{Variant: cfg.Hardware.Variant, log: log, cancel: cancel}

	var err error
	switch cfg.Hardware.Variant {
	case config.VariantYear1:
		err = p.buildYear1(ctx, cfg)
	case config.VariantSoftwareTest:
		err = p.buildSoftwareTest(ctx, cfg)
	case config.VariantSerialBase:
		err = p.buildSerialBase(ctx, cfg)
	case config.VariantSim:
		p.buildSim(cfg)
	default:
		err = errors.Errorf("unknown hardware variant %q", cfg.Hardware.Variant)
	}
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	log.Info("hardware %s ready", cfg.Hardware.Variant)
	return p, nil
}

func (p *Platform) addFlusher(f chassis.Flusher) { p.flushers = append(p.flushers, f) }

func (p *Platform) addCloser(fn func() error) { p.closers = append(p.closers, fn) }

func (p *Platform) addPin(c closer) {
	p.addCloser(func() error {
		c.Close()
		return nil
	})
}

// input opens an active-low switch, or returns nil for an unwired pin.
func (p *Platform) input(pin int) utils.DigitalInput {
	if pin < 0 {
		return nil
	}
	in := utils.NewGPIOInput(uint(pin), true, p.log.Named("gpio"))
	p.addPin(in)
	return in
}

func (p *Platform) lights(pins []int) [3]utils.DigitalOutput {
	var out [3]utils.DigitalOutput
	for i, pin := range pins {
		if i >= len(out) || pin < 0 {
			continue
		}
		o := utils.NewGPIOOutput(uint(pin), p.log.Named("gpio"))
		p.addPin(o)
		out[i] = o
	}
	return out
}

// openCAN loads the motor map and dials the interface for both directions.
func (p *Platform) openCAN(ctx context.Context, hw config.HardwareConfig) (*utils.CANMap, utils.CANReader, error) {
	cmap, err := utils.LoadCANMap(hw.CANMap)
	if err != nil {
		return nil, nil, err
	}
	writer, err := utils.NewSocketCANWriter(ctx, hw.CANInterface)
	if err != nil {
		return nil, nil, err
	}
	p.addCloser(writer.Close)
	reader, err := utils.NewSocketCANReader(ctx, hw.CANInterface)
	if err != nil {
		return nil, nil, err
	}
	p.addCloser(reader.Close)

	p.Bus = utils.NewBus(cmap, writer, p.log.Named("can"))
	p.log.Info("CAN %s: %d frames from %s", hw.CANInterface, len(cmap.ByName), hw.CANMap)
	return cmap, reader, nil
}

func (p *Platform) listenCAN(ctx context.Context, cmap *utils.CANMap, reader utils.CANReader, handle utils.FrameHandler) {
	p.spawn("CAN feedback", func() error {
		return utils.Listen(ctx, cmap, reader, p.log.Named("can"), handle)
	})
}

// spawn runs a feedback listener. Anything but cancellation is logged.
func (p *Platform) spawn(name string, fn func() error) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := fn(); err != nil && !errors.Is(err, context.Canceled) {
			p.log.Error("%s stopped: %v", name, err)
		}
	}()
}

func (p *Platform) buildYear1(ctx context.Context, cfg config.Config) error {
	hw := cfg.Hardware
	cmap, reader, err := p.openCAN(ctx, hw)
	if err != nil {
		return err
	}

	dt, err := chassis.NewYear1Chassis(p.Bus, chassis.Year1Config{
		LeftInverted:  hw.Invert.LeftDrive,
		RightInverted: hw.Invert.RightDrive,
		Tracker:       cfg.LineTracker,
		Bumper:        p.input(hw.Pins.Bumper),
		Lights:        p.lights(hw.Pins.Lights),
	}, p.log.Named("chassis"))
	if err != nil {
		return err
	}
	sh, err := shooter.NewYear1Shooter(p.Bus, shooter.Year1Config{
		WheelInverted:  hw.Invert.ShooterWheel,
		LoaderInverted: hw.Invert.ShooterLoader,
		AlignInverted:  hw.Invert.ShooterAlign,
		LoaderHome:     p.input(hw.Pins.LoaderHome),
		LeftBound:      p.input(hw.Pins.LeftBound),
		RightBound:     p.input(hw.Pins.RightBound),
	})
	if err != nil {
		return err
	}

	p.Drivetrain, p.Shooter = dt, sh
	p.addFlusher(dt)
	p.addFlusher(sh)
	p.listenCAN(ctx, cmap, reader, dt.HandleFrame)
	return nil
}

func (p *Platform) buildSoftwareTest(ctx context.Context, cfg config.Config) error {
	hw := cfg.Hardware
	cmap, reader, err := p.openCAN(ctx, hw)
	if err != nil {
		return err
	}
	dt, err := chassis.NewSoftwareTestChassis(p.Bus, hw.Invert.LeftDrive, hw.Invert.RightDrive, p.log.Named("chassis"))
	if err != nil {
		return err
	}

	sh := shooter.NewSimShooter()
	p.Drivetrain, p.Shooter = dt, sh
	p.addFlusher(dt)
	p.addFlusher(sh)
	p.listenCAN(ctx, cmap, reader, dt.HandleFrame)
	return nil
}

func (p *Platform) buildSerialBase(ctx context.Context, cfg config.Config) error {
	hw := cfg.Hardware
	port, err := serial.Open(hw.Serial.Port, &serial.Mode{BaudRate: hw.Serial.Baud})
	if err != nil {
		return errors.Wrapf(err, "open serial %s", hw.Serial.Port)
	}
	p.addCloser(port.Close)

	dt := chassis.NewSerialBaseChassis(port, p.input(hw.Pins.Bumper), p.log.Named("serial"))
	sh := shooter.NewSimShooter()
	p.Drivetrain, p.Shooter = dt, sh
	p.addFlusher(dt)
	p.addFlusher(sh)
	p.spawn("serial feedback", func() error { return dt.Listen(ctx) })
	p.log.Info("serial base on %s at %d baud", hw.Serial.Port, hw.Serial.Baud)
	return nil
}

func (p *Platform) buildSim(cfg config.Config) {
	dt := chassis.NewSimChassis(chassis.SimConfig{
		MaxSpeed:     cfg.Hardware.Sim.MaxSpeedFPS,
		Period:       cfg.Loop.Period(),
		WallDistance: cfg.Hardware.Sim.WallDistanceFt,
	})
	sh := shooter.NewSimShooter()
	p.Drivetrain, p.Shooter = dt, sh
	p.addFlusher(dt)
	p.addFlusher(sh)
}

// Flush sends every latched output. All flushers run even if one fails;
// the first error is returned.
func (p *Platform) Flush(ctx context.Context) error {
	var first error
	for _, f := range p.flushers {
		if err := f.Flush(ctx); err != nil {
			p.failures++
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// Failures counts failed flushes since start.
func (p *Platform) Failures() uint64 { return p.failures }

// Close stops the listeners and releases every port and pin, newest first.
func (p *Platform) Close() error {
	p.cancel()
	var first error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	p.closers = nil
	p.wg.Wait()
	return first
}
