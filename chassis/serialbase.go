package chassis

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/pkg/errors"

	"dragon-ctrl-core/utils"
)

const feetPerMeter = 3.280839895

// Message types of the serial base's JSON line protocol.
const (
	serialCmdSpeed    = 1
	serialCmdNeutral  = 2
	serialMsgFeedback = 1001
)

type serialSpeedCmd struct {
	T int     `json:"T"`
	L float64 `json:"L"`
	R float64 `json:"R"`
}

type serialNeutralCmd struct {
	T     int  `json:"T"`
	Brake bool `json:"brake"`
}

// serialFeedback carries odometry in meters and wheel speeds in m/s.
type serialFeedback struct {
	T   int     `json:"T"`
	ODL float64 `json:"odl"`
	ODR float64 `json:"odr"`
	VL  float64 `json:"vl"`
	VR  float64 `json:"vr"`
}

// SerialBaseChassis drives a differential base controller over a UART.
// Commands are JSON lines written once per Flush; feedback lines are read
// by Listen.
type SerialBaseChassis struct {
	port   io.ReadWriter
	bumper utils.DigitalInput
	log    *utils.Logger

	left, right float64
	brake       bool
	sentBrake   bool
	neutralSent bool

	mu    sync.Mutex
	fb    serialFeedback
	zeroL float64
	zeroR float64
}

func NewSerialBaseChassis(port io.ReadWriter, bumper utils.DigitalInput, log *utils.Logger) *SerialBaseChassis {
	if bumper == nil {
		bumper = utils.FixedInput(false)
	}
	return &SerialBaseChassis{port: port, bumper: bumper, log: log}
}

func (c *SerialBaseChassis) SetSpeeds(left, right float64) {
	c.left = utils.ClampSpeed(left)
	c.right = utils.ClampSpeed(right)
}

func (c *SerialBaseChassis) Speeds() (float64, float64) { return c.left, c.right }

func (c *SerialBaseChassis) SetBrakeMode() { c.brake = true }
func (c *SerialBaseChassis) SetCoastMode() { c.brake = false }

func (c *SerialBaseChassis) ResetDistance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zeroL = c.fb.ODL
	c.zeroR = c.fb.ODR
}

func (c *SerialBaseChassis) LeftDistance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return (c.fb.ODL - c.zeroL) * feetPerMeter
}

func (c *SerialBaseChassis) RightDistance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return (c.fb.ODR - c.zeroR) * feetPerMeter
}

func (c *SerialBaseChassis) LeftVelocity() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fb.VL * feetPerMeter
}

func (c *SerialBaseChassis) RightVelocity() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fb.VR * feetPerMeter
}

func (c *SerialBaseChassis) IsContactTripped() bool { return c.bumper.Get() }

// LineState is always all-white: the base has no line trackers.
func (c *SerialBaseChassis) LineState() LineState { return LineWWW }

func (c *SerialBaseChassis) RefreshLineIndicators() {}

func (c *SerialBaseChassis) writeLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = c.port.Write(b)
	return err
}

// Flush sends the neutral mode when it changed, then the speed command.
// The base stops on its own if speed commands stop arriving.
func (c *SerialBaseChassis) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.neutralSent || c.sentBrake != c.brake {
		if err := c.writeLine(serialNeutralCmd{T: serialCmdNeutral, Brake: c.brake}); err != nil {
			return errors.Wrap(err, "serial neutral mode")
		}
		c.sentBrake = c.brake
		c.neutralSent = true
	}
	if err := c.writeLine(serialSpeedCmd{T: serialCmdSpeed, L: c.left, R: c.right}); err != nil {
		return errors.Wrap(err, "serial speed")
	}
	return nil
}

// Listen parses feedback lines until the port is closed or ctx is done.
// Malformed lines are logged and skipped.
func (c *SerialBaseChassis) Listen(ctx context.Context) error {
	sc := bufio.NewScanner(c.port)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var msg serialFeedback
		if err := json.Unmarshal(sc.Bytes(), &msg); err != nil {
			c.log.Warn("serial base: bad line %q: %v", sc.Text(), err)
			continue
		}
		if msg.T != serialMsgFeedback {
			continue
		}
		c.mu.Lock()
		c.fb = msg
		c.mu.Unlock()
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "serial base read")
	}
	return nil
}
