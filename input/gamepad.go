package input

// Gamepad owns the conditioning state for one controller: an AxisChannel
// per axis and an EdgeTracker per button, synthetic ones included.
type Gamepad struct {
	raw     RawController
	axes    [NumAxes]*AxisChannel
	buttons [NumButtons]EdgeTracker
}

// NewGamepad wraps raw. Both Y axes are inverted so pushing a stick
// forward reads positive.
func NewGamepad(raw RawController) *Gamepad {
	g := &Gamepad{raw: raw}
	for i := range g.axes {
		id := AxisID(i)
		g.axes[i] = NewAxisChannel(id == AxisLeftY || id == AxisRightY)
	}
	return g
}

// Axis returns the conditioned value of an axis, 0 for an invalid id.
func (g *Gamepad) Axis(id AxisID) float64 {
	if !id.Valid() {
		return 0
	}
	return g.axes[id].Read(g.raw.RawAxis(int(id)))
}

// Channel exposes the conditioning of one axis, nil for an invalid id.
func (g *Gamepad) Channel(id AxisID) *AxisChannel {
	if !id.Valid() {
		return nil
	}
	return g.axes[id]
}

func (g *Gamepad) SetAxisScale(id AxisID, scale float64) {
	if id.Valid() {
		g.axes[id].SetScale(scale)
	}
}

func (g *Gamepad) SetAxisProfile(id AxisID, p Profile) {
	if id.Valid() {
		g.axes[id].SetProfile(p)
	}
}

// Button reports whether a button is down right now. Triggers count as
// pressed past TriggerThreshold; POV buttons match one exact pad angle.
func (g *Gamepad) Button(id ButtonID) bool {
	switch {
	case !id.Valid():
		return false
	case int(id) < NumPhysicalButtons:
		return g.raw.RawButton(int(id))
	case id == ButtonLeftTrigger:
		return g.raw.RawAxis(int(AxisLeftTrigger)) > TriggerThreshold
	case id == ButtonRightTrigger:
		return g.raw.RawAxis(int(AxisRightTrigger)) > TriggerThreshold
	}

	pov := g.raw.DirectionPad()
	if pov == PadCentered {
		return false
	}
	angle, _ := id.povAngle()
	return pov == angle
}

// ClassifyButton samples a button and advances its edge tracker.
func (g *Gamepad) ClassifyButton(id ButtonID) ButtonState {
	if !id.Valid() {
		return NotPressed
	}
	return g.buttons[id].Classify(g.Button(id))
}
