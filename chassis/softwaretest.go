package chassis

import (
	"dragon-ctrl-core/utils"
)

// SoftwareTestChassis is the bench robot: four CAN drive controllers and
// no floor sensors. It always reports an all-white floor and never
// detects contact.
type SoftwareTestChassis struct {
	canDrive
}

func NewSoftwareTestChassis(bus *utils.Bus, leftInverted, rightInverted bool, log *utils.Logger) (*SoftwareTestChassis, error) {
	err := requireFrames(bus.Map(),
		FrameLeftDriveCmd, FrameLeftDrive2Cmd, FrameRightDriveCmd, FrameRightDrive2Cmd,
		FrameLeftDriveFB, FrameRightDriveFB)
	if err != nil {
		return nil, err
	}

	c := &SoftwareTestChassis{canDrive{
		bus: bus,
		left: []*utils.CANMotor{
			utils.NewCANMotor(FrameLeftDriveCmd, leftInverted),
			utils.NewCANMotor(FrameLeftDrive2Cmd, leftInverted),
		},
		right: []*utils.CANMotor{
			utils.NewCANMotor(FrameRightDriveCmd, rightInverted),
			utils.NewCANMotor(FrameRightDrive2Cmd, rightInverted),
		},
		log: log,
	}}
	c.ResetDistance()
	return c, nil
}

func (c *SoftwareTestChassis) HandleFrame(frame string, values map[string]float64) {
	c.handleEncoder(frame, values)
}

func (c *SoftwareTestChassis) IsContactTripped() bool { return false }

func (c *SoftwareTestChassis) LineState() LineState { return LineWWW }

func (c *SoftwareTestChassis) RefreshLineIndicators() {}
