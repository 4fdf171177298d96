//go:build linux

package input

import (
	"context"
	"sync"

	"github.com/kenshaw/evdev"
	"github.com/pkg/errors"

	"dragon-ctrl-core/utils"
)

// EvdevController is a RawController backed by a Linux input event
// device. Run keeps a snapshot current; the Raw* methods only read it.
type EvdevController struct {
	dev    *evdev.Evdev
	model  Model
	ranges map[evdev.AbsoluteType]evdev.Axis
	log    *utils.Logger

	mu      sync.RWMutex
	axes    [NumAxes]float64
	buttons [NumPhysicalButtons]bool
	hatX    int32
	hatY    int32
}

// OpenEvdev opens path (for example /dev/input/event3) and decodes it
// with model.
func OpenEvdev(path string, model Model, log *utils.Logger) (*EvdevController, error) {
	dev, err := evdev.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open gamepad %s", path)
	}
	c := &EvdevController{
		dev:    dev,
		model:  model,
		ranges: dev.AbsoluteTypes(),
		log:    log,
	}
	log.Info("gamepad %s opened as %q using %s mapping", path, dev.Name(), model.Name)
	return c, nil
}

// Run consumes events until ctx is done.
func (c *EvdevController) Run(ctx context.Context) {
	for ev := range c.dev.Poll(ctx) {
		if ev == nil {
			continue
		}
		switch ev.Event.Type {
		case evdev.EventAbsolute:
			c.absolute(evdev.AbsoluteType(ev.Event.Code), ev.Event.Value)
		case evdev.EventKey:
			c.key(evdev.KeyType(ev.Event.Code), ev.Event.Value)
		}
	}
}

func (c *EvdevController) absolute(code evdev.AbsoluteType, value int32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch uint16(code) {
	case c.model.HatX:
		c.hatX = value
		return
	case c.model.HatY:
		c.hatY = value
		return
	}

	id, ok := c.model.Axes[uint16(code)]
	if !ok {
		return
	}
	info, ok := c.ranges[code]
	if !ok || info.Max <= info.Min {
		return
	}
	c.axes[id] = normalize(value, info.Min, info.Max, id == AxisLeftTrigger || id == AxisRightTrigger)
}

func (c *EvdevController) key(code evdev.KeyType, value int32) {
	id, ok := c.model.Buttons[uint16(code)]
	if !ok || int(id) >= NumPhysicalButtons {
		return
	}
	c.mu.Lock()
	c.buttons[id] = value != 0
	c.mu.Unlock()
}

func (c *EvdevController) RawAxis(index int) float64 {
	if index < 0 || index >= int(NumAxes) {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.axes[index]
}

func (c *EvdevController) RawButton(index int) bool {
	if index < 0 || index >= NumPhysicalButtons {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buttons[index]
}

func (c *EvdevController) DirectionPad() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return HatAngle(int(c.hatX), int(c.hatY))
}

func (c *EvdevController) Close() error {
	return c.dev.Close()
}
