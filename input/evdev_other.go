//go:build !linux

package input

import (
	"context"

	"github.com/pkg/errors"

	"dragon-ctrl-core/utils"
)

// EvdevController is only available on Linux.
type EvdevController struct{}

func OpenEvdev(path string, model Model, log *utils.Logger) (*EvdevController, error) {
	return nil, errors.Errorf("gamepad %s: evdev input requires linux", path)
}

func (c *EvdevController) Run(ctx context.Context) {}
func (c *EvdevController) RawAxis(int) float64     { return 0 }
func (c *EvdevController) RawButton(int) bool      { return false }
func (c *EvdevController) DirectionPad() int       { return PadCentered }
func (c *EvdevController) Close() error            { return nil }
