package input

import (
	"strings"

	"github.com/pkg/errors"
)

// FunctionID names what an operator control does, independent of which
// stick or button implements it.
type FunctionID int

const (
	TankLeft FunctionID = iota
	TankRight
	ArcadeThrottle
	ArcadeSteer
	SwitchDriveMode
	AlignShooterLeft
	AlignShooterRight
	LoadBall
	SpinShooterWheel
	StartAuton
	StopAuton
	NumFunctions
)

var functionNames = [NumFunctions]string{
	"tank_left", "tank_right", "arcade_throttle", "arcade_steer", "switch_drive_mode",
	"align_shooter_left", "align_shooter_right", "load_ball", "spin_shooter_wheel",
	"start_auton", "stop_auton",
}

func (f FunctionID) String() string {
	if f < 0 || f >= NumFunctions {
		return "unknown"
	}
	return functionNames[f]
}

// IsAxis reports whether the function is driven by an analog axis rather
// than a button.
func (f FunctionID) IsAxis() bool {
	switch f {
	case TankLeft, TankRight, ArcadeThrottle, ArcadeSteer:
		return true
	default:
		return false
	}
}

func ParseFunction(s string) (FunctionID, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range functionNames {
		if n == s {
			return FunctionID(i), true
		}
	}
	return 0, false
}

// DeviceID selects one of the two operator controllers.
type DeviceID int

const (
	Driver DeviceID = iota
	Copilot
	NumDevices
)

func (d DeviceID) String() string {
	switch d {
	case Driver:
		return "driver"
	case Copilot:
		return "copilot"
	default:
		return "unknown"
	}
}

// Unmapped marks a missing axis or button in a Binding.
const Unmapped = -1

// Binding places a function on a device channel. Exactly one of Axis or
// Button is meaningful, depending on the function.
type Binding struct {
	Device DeviceID
	Axis   AxisID
	Button ButtonID
}

// Unbound is the binding of a function with no control.
var Unbound = Binding{Device: Driver, Axis: Unmapped, Button: Unmapped}

func AxisBinding(d DeviceID, a AxisID) Binding {
	return Binding{Device: d, Axis: a, Button: Unmapped}
}

func ButtonBinding(d DeviceID, b ButtonID) Binding {
	return Binding{Device: d, Axis: Unmapped, Button: b}
}

func (b Binding) String() string {
	switch {
	case b.Axis.Valid():
		return b.Device.String() + ":" + b.Axis.String()
	case b.Button.Valid():
		return b.Device.String() + ":" + b.Button.String()
	default:
		return "unmapped"
	}
}

// ParseBinding reads "driver:Y_L" style strings for function fn. The
// channel name is resolved as an axis or a button according to fn.
// "unmapped" or an empty string unbinds the function.
func ParseBinding(fn FunctionID, s string) (Binding, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "unmapped") {
		return Unbound, nil
	}

	dev, ch, ok := strings.Cut(s, ":")
	if !ok {
		return Unbound, errors.Errorf("binding %q for %s: want device:channel", s, fn)
	}

	var d DeviceID
	switch strings.ToLower(strings.TrimSpace(dev)) {
	case "driver":
		d = Driver
	case "copilot":
		d = Copilot
	default:
		return Unbound, errors.Errorf("binding %q for %s: unknown device %q", s, fn, dev)
	}

	if fn.IsAxis() {
		a, ok := ParseAxis(ch)
		if !ok {
			return Unbound, errors.Errorf("binding %q for %s: unknown axis %q", s, fn, ch)
		}
		return AxisBinding(d, a), nil
	}
	b, ok := ParseButton(ch)
	if !ok {
		return Unbound, errors.Errorf("binding %q for %s: unknown button %q", s, fn, ch)
	}
	return ButtonBinding(d, b), nil
}

// Mapping is the function table. It is built once and not changed after
// the Router is constructed.
type Mapping [NumFunctions]Binding

// DefaultMapping puts every function on the driver's pad.
func DefaultMapping() Mapping {
	var m Mapping
	for i := range m {
		m[i] = Unbound
	}
	m[TankLeft] = AxisBinding(Driver, AxisLeftY)
	m[TankRight] = AxisBinding(Driver, AxisRightY)
	m[ArcadeThrottle] = AxisBinding(Driver, AxisLeftY)
	m[ArcadeSteer] = AxisBinding(Driver, AxisRightX)
	m[SwitchDriveMode] = ButtonBinding(Driver, ButtonSelect)
	m[AlignShooterLeft] = ButtonBinding(Driver, ButtonPOV270)
	m[AlignShooterRight] = ButtonBinding(Driver, ButtonPOV90)
	m[LoadBall] = ButtonBinding(Driver, ButtonLeftTrigger)
	m[SpinShooterWheel] = ButtonBinding(Driver, ButtonRightTrigger)
	m[StartAuton] = ButtonBinding(Driver, ButtonX)
	m[StopAuton] = ButtonBinding(Driver, ButtonY)
	return m
}

// WithOverrides returns a copy of m with bindings parsed from a
// function-name to binding-string table.
func (m Mapping) WithOverrides(overrides map[string]string) (Mapping, error) {
	out := m
	for name, text := range overrides {
		fn, ok := ParseFunction(name)
		if !ok {
			return m, errors.Errorf("unknown function %q", name)
		}
		b, err := ParseBinding(fn, text)
		if err != nil {
			return m, err
		}
		out[fn] = b
	}
	return out, nil
}
