package input

import (
	"math"
	"strings"
)

// Model translates a gamepad's Linux event codes into axis and button ids.
type Model struct {
	Name    string
	Axes    map[uint16]AxisID
	Buttons map[uint16]ButtonID
	HatX    uint16
	HatY    uint16
}

// XboxModel matches the xpad driver layout.
var XboxModel = Model{
	Name: "xbox",
	Axes: map[uint16]AxisID{
		0: AxisLeftX,
		1: AxisLeftY,
		2: AxisLeftTrigger,
		3: AxisRightX,
		4: AxisRightY,
		5: AxisRightTrigger,
	},
	Buttons: map[uint16]ButtonID{
		304: ButtonA,
		305: ButtonB,
		307: ButtonX,
		308: ButtonY,
		310: ButtonLeftBumper,
		311: ButtonRightBumper,
		314: ButtonSelect,
		315: ButtonStart,
		317: ButtonLeftStick,
		318: ButtonRightStick,
	},
	HatX: 16,
	HatY: 17,
}

// EightBitDoModel matches an 8BitDo Pro 2 in X-input mode.
var EightBitDoModel = Model{
	Name: "8bitdo",
	Axes: map[uint16]AxisID{
		0: AxisLeftX,
		1: AxisLeftY,
		2: AxisLeftTrigger,
		3: AxisRightX,
		4: AxisRightY,
		5: AxisRightTrigger,
	},
	Buttons: map[uint16]ButtonID{
		304: ButtonA,
		305: ButtonB,
		306: ButtonX,
		307: ButtonY,
		308: ButtonLeftBumper,
		309: ButtonRightBumper,
		310: ButtonSelect,
		311: ButtonStart,
		312: ButtonLeftStick,
		313: ButtonRightStick,
	},
	HatX: 6,
	HatY: 7,
}

// ModelByName returns a known model, falling back to XboxModel.
func ModelByName(name string) (Model, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "xbox":
		return XboxModel, true
	case "8bitdo":
		return EightBitDoModel, true
	default:
		return XboxModel, false
	}
}

// normalize maps an absolute axis value onto [-1, 1], or onto [0, 1] for
// triggers.
func normalize(value, lo, hi int32, trigger bool) float64 {
	span := float64(hi) - float64(lo)
	frac := (float64(value) - float64(lo)) / span
	frac = math.Max(0, math.Min(1, frac))
	if trigger {
		return frac
	}
	return frac*2 - 1
}

// HatAngle converts hat switch deflections (-1, 0, 1 on each axis, y
// positive down) to a compass angle, or PadCentered.
func HatAngle(x, y int) int {
	switch {
	case x == 0 && y < 0:
		return 0
	case x > 0 && y < 0:
		return 45
	case x > 0 && y == 0:
		return 90
	case x > 0 && y > 0:
		return 135
	case x == 0 && y > 0:
		return 180
	case x < 0 && y > 0:
		return 225
	case x < 0 && y == 0:
		return 270
	case x < 0 && y < 0:
		return 315
	default:
		return PadCentered
	}
}
