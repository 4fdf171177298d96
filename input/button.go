package input

// ButtonState classifies a button relative to its previous sample.
type ButtonState int

const (
	NotPressed ButtonState = iota
	Pressed
	Held
	Released
)

func (s ButtonState) String() string {
	switch s {
	case NotPressed:
		return "NotPressed"
	case Pressed:
		return "Pressed"
	case Held:
		return "Held"
	case Released:
		return "Released"
	default:
		return "Unknown"
	}
}

// ClassifyTransition is the edge table: previous sample and current
// sample in, classification out.
func ClassifyTransition(previous, now bool) ButtonState {
	switch {
	case !previous && !now:
		return NotPressed
	case !previous && now:
		return Pressed
	case previous && now:
		return Held
	default:
		return Released
	}
}

// EdgeTracker remembers the last sample of one button. Classify must be
// called at most once per cycle per button, otherwise edges are lost.
type EdgeTracker struct {
	previous bool
}

func (e *EdgeTracker) Classify(raw bool) ButtonState {
	s := ClassifyTransition(e.previous, raw)
	e.previous = raw
	return s
}

func (e *EdgeTracker) Previous() bool { return e.previous }
