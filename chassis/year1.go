package chassis

import (
	"dragon-ctrl-core/utils"
)

// Year1Config wires the first-year robot: two CAN drive controllers, a
// bumper switch, three analog line trackers reported over CAN and an
// indicator light per tracker.
type Year1Config struct {
	LeftInverted  bool
	RightInverted bool
	Tracker       LineTracker
	Bumper        utils.DigitalInput
	Lights        [3]utils.DigitalOutput
}

type Year1Chassis struct {
	canDrive
	tracker LineTracker
	bumper  utils.DigitalInput
	lights  [3]utils.DigitalOutput
}

func NewYear1Chassis(bus *utils.Bus, cfg Year1Config, log *utils.Logger) (*Year1Chassis, error) {
	err := requireFrames(bus.Map(),
		FrameLeftDriveCmd, FrameRightDriveCmd, FrameLeftDriveFB, FrameRightDriveFB, FrameLineTrackerFB)
	if err != nil {
		return nil, err
	}

	c := &Year1Chassis{
		canDrive: canDrive{
			bus:   bus,
			left:  []*utils.CANMotor{utils.NewCANMotor(FrameLeftDriveCmd, cfg.LeftInverted)},
			right: []*utils.CANMotor{utils.NewCANMotor(FrameRightDriveCmd, cfg.RightInverted)},
			log:   log,
		},
		tracker: cfg.Tracker,
		bumper:  cfg.Bumper,
		lights:  cfg.Lights,
	}
	if c.bumper == nil {
		c.bumper = utils.FixedInput(false)
	}
	for i := range c.lights {
		if c.lights[i] == nil {
			c.lights[i] = utils.NopOutput{}
		}
	}
	c.ResetDistance()
	return c, nil
}

// HandleFrame consumes feedback frames from the bus listener.
func (c *Year1Chassis) HandleFrame(frame string, values map[string]float64) {
	if c.handleEncoder(frame, values) {
		return
	}
	if frame == FrameLineTrackerFB {
		c.fb.setVolts(values[SignalLeftVolts], values[SignalCenterVolts], values[SignalRightVolts])
	}
}

func (c *Year1Chassis) IsContactTripped() bool { return c.bumper.Get() }

func (c *Year1Chassis) LineState() LineState {
	return c.tracker.State(c.fb.lineVolts())
}

// RefreshLineIndicators lights each tracker's lamp while it sees white.
func (c *Year1Chassis) RefreshLineIndicators() {
	l, m, r := c.fb.lineVolts()
	for i, v := range [3]float64{l, m, r} {
		c.lights[i].Set(c.tracker.Classify(v) == White)
	}
}
