package input

// Router resolves functions to device channels so drive code never needs
// to know how the controllers are wired. Unmapped functions read as
// neutral: 0 for axes, false and NotPressed for buttons.
type Router struct {
	devices [NumDevices]*Gamepad
	mapping Mapping
}

// NewRouter builds both gamepads. A nil controller is treated as
// unplugged.
func NewRouter(driver, copilot RawController, mapping Mapping) *Router {
	if driver == nil {
		driver = NeutralController{}
	}
	if copilot == nil {
		copilot = NeutralController{}
	}
	return &Router{
		devices: [NumDevices]*Gamepad{NewGamepad(driver), NewGamepad(copilot)},
		mapping: mapping,
	}
}

func (r *Router) Mapping() Mapping { return r.mapping }

// Device returns one gamepad, nil for an invalid id.
func (r *Router) Device(d DeviceID) *Gamepad {
	if d < 0 || d >= NumDevices {
		return nil
	}
	return r.devices[d]
}

func (r *Router) binding(fn FunctionID) (Binding, *Gamepad, bool) {
	if fn < 0 || fn >= NumFunctions {
		return Unbound, nil, false
	}
	b := r.mapping[fn]
	pad := r.Device(b.Device)
	if pad == nil {
		return Unbound, nil, false
	}
	return b, pad, true
}

func (r *Router) axis(fn FunctionID) (AxisID, *Gamepad, bool) {
	b, pad, ok := r.binding(fn)
	if !ok || !b.Axis.Valid() {
		return 0, nil, false
	}
	return b.Axis, pad, true
}

func (r *Router) button(fn FunctionID) (ButtonID, *Gamepad, bool) {
	b, pad, ok := r.binding(fn)
	if !ok || !b.Button.Valid() {
		return 0, nil, false
	}
	return b.Button, pad, true
}

func (r *Router) ReadAxis(fn FunctionID) float64 {
	a, pad, ok := r.axis(fn)
	if !ok {
		return 0.0
	}
	return pad.Axis(a)
}

func (r *Router) ReadButton(fn FunctionID) bool {
	b, pad, ok := r.button(fn)
	if !ok {
		return false
	}
	return pad.Button(b)
}

func (r *Router) ClassifyButton(fn FunctionID) ButtonState {
	b, pad, ok := r.button(fn)
	if !ok {
		return NotPressed
	}
	return pad.ClassifyButton(b)
}

// ConfigureAxisScale sets the scale of the axis behind fn. Functions
// sharing an axis share its configuration.
func (r *Router) ConfigureAxisScale(fn FunctionID, scale float64) {
	if a, pad, ok := r.axis(fn); ok {
		pad.SetAxisScale(a, scale)
	}
}

func (r *Router) ConfigureAxisProfile(fn FunctionID, p Profile) {
	if a, pad, ok := r.axis(fn); ok {
		pad.SetAxisProfile(a, p)
	}
}
