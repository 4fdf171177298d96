package chassis

import (
	"context"

	"github.com/pkg/errors"

	"dragon-ctrl-core/utils"
)

// Motor map frame names used by the CAN drivetrains.
const (
	FrameLeftDriveCmd   = "LEFT_DRIVE_CMD"
	FrameLeftDrive2Cmd  = "LEFT_DRIVE2_CMD"
	FrameRightDriveCmd  = "RIGHT_DRIVE_CMD"
	FrameRightDrive2Cmd = "RIGHT_DRIVE2_CMD"
	FrameLeftDriveFB    = "LEFT_DRIVE_FB"
	FrameRightDriveFB   = "RIGHT_DRIVE_FB"
	FrameLineTrackerFB  = "LINE_TRACKER_FB"
)

// canDrive is the motor and encoder half shared by the CAN chassis
// variants. Each side may have several controllers driven together.
type canDrive struct {
	bus   *utils.Bus
	left  []*utils.CANMotor
	right []*utils.CANMotor
	fb    feedback
	log   *utils.Logger
}

func requireFrames(cmap *utils.CANMap, names ...string) error {
	for _, n := range names {
		if !cmap.HasFrame(n) {
			return errors.Errorf("motor map has no %s frame", n)
		}
	}
	return nil
}

func (d *canDrive) SetSpeeds(left, right float64) {
	left = utils.ClampSpeed(left)
	right = utils.ClampSpeed(right)
	for _, m := range d.left {
		m.Set(left)
	}
	for _, m := range d.right {
		m.Set(right)
	}
}

func (d *canDrive) setNeutral(brake bool) {
	for _, m := range d.left {
		m.SetNeutralBrake(brake)
	}
	for _, m := range d.right {
		m.SetNeutralBrake(brake)
	}
}

func (d *canDrive) SetBrakeMode() { d.setNeutral(true) }
func (d *canDrive) SetCoastMode() { d.setNeutral(false) }

func (d *canDrive) ResetDistance() { d.fb.reset() }

func (d *canDrive) LeftDistance() float64 {
	return d.fb.distance(true) * EncoderDistanceConversion
}

func (d *canDrive) RightDistance() float64 {
	return d.fb.distance(false) * EncoderDistanceConversion
}

func (d *canDrive) LeftVelocity() float64 {
	return d.fb.velocity(true) * EncoderVelocityConversion
}

func (d *canDrive) RightVelocity() float64 {
	return d.fb.velocity(false) * EncoderVelocityConversion
}

// Speeds returns the latched commands of the first controller per side.
func (d *canDrive) Speeds() (float64, float64) {
	return d.left[0].Speed(), d.right[0].Speed()
}

// Flush transmits every motor command. A failed write does not stop the
// others from being sent.
func (d *canDrive) Flush(ctx context.Context) error {
	var first error
	for _, group := range [][]*utils.CANMotor{d.left, d.right} {
		for _, m := range group {
			if err := m.Flush(ctx, d.bus); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// handleEncoder records drive feedback frames. It reports whether the
// frame was one of them.
func (d *canDrive) handleEncoder(frame string, values map[string]float64) bool {
	switch frame {
	case FrameLeftDriveFB:
		d.fb.setEncoder(true, values[SignalEncPosition], values[SignalEncVelocity])
	case FrameRightDriveFB:
		d.fb.setEncoder(false, values[SignalEncPosition], values[SignalEncVelocity])
	default:
		return false
	}
	return true
}
