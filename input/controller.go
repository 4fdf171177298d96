package input

import "strings"

// RawController is a physical gamepad as the operating system reports it:
// axes in [-1, 1], physical buttons, and a direction pad angle in degrees
// (-1 when centered).
type RawController interface {
	RawAxis(index int) float64
	RawButton(index int) bool
	DirectionPad() int
}

// PadCentered is the DirectionPad value when no direction is held.
const PadCentered = -1

// TriggerThreshold is how far a trigger must travel to count as a button
// press.
const TriggerThreshold = 0.4

type AxisID int

const (
	AxisLeftX AxisID = iota
	AxisLeftY
	AxisLeftTrigger
	AxisRightTrigger
	AxisRightX
	AxisRightY
	NumAxes
)

var axisNames = [NumAxes]string{"X_L", "Y_L", "LT", "RT", "X_R", "Y_R"}

func (a AxisID) String() string {
	if a < 0 || a >= NumAxes {
		return "UNMAPPED"
	}
	return axisNames[a]
}

func (a AxisID) Valid() bool { return a >= 0 && a < NumAxes }

// ButtonID indexes physical buttons first, then the synthetic trigger and
// direction pad buttons.
type ButtonID int

const (
	ButtonA ButtonID = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLeftBumper
	ButtonRightBumper
	ButtonSelect
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonLeftTrigger
	ButtonRightTrigger
	ButtonPOV0
	ButtonPOV45
	ButtonPOV90
	ButtonPOV135
	ButtonPOV180
	ButtonPOV225
	ButtonPOV270
	ButtonPOV315
	NumButtons
)

// NumPhysicalButtons is the count of buttons read directly from the
// controller.
const NumPhysicalButtons = int(ButtonLeftTrigger)

var buttonNames = [NumButtons]string{
	"A", "B", "X", "Y", "LB", "RB", "SELECT", "START", "LSTICK", "RSTICK",
	"LT_PRESSED", "RT_PRESSED",
	"POV_0", "POV_45", "POV_90", "POV_135", "POV_180", "POV_225", "POV_270", "POV_315",
}

func (b ButtonID) String() string {
	if b < 0 || b >= NumButtons {
		return "UNMAPPED"
	}
	return buttonNames[b]
}

func (b ButtonID) Valid() bool { return b >= 0 && b < NumButtons }

// povAngle returns the direction pad angle a synthetic POV button stands
// for.
func (b ButtonID) povAngle() (int, bool) {
	if b < ButtonPOV0 || b > ButtonPOV315 {
		return 0, false
	}
	return int(b-ButtonPOV0) * 45, true
}

// ParseAxis accepts the names printed by AxisID.String, case-insensitively.
func ParseAxis(s string) (AxisID, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range axisNames {
		if n == s {
			return AxisID(i), true
		}
	}
	return 0, false
}

// ParseButton accepts the names printed by ButtonID.String, case-insensitively.
func ParseButton(s string) (ButtonID, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range buttonNames {
		if n == s {
			return ButtonID(i), true
		}
	}
	return 0, false
}

// NeutralController is a controller with sticks at rest and nothing
// pressed. It stands in for an unplugged pad.
type NeutralController struct{}

func (NeutralController) RawAxis(int) float64 { return 0 }
func (NeutralController) RawButton(int) bool  { return false }
func (NeutralController) DirectionPad() int   { return PadCentered }
