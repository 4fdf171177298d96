package chassis

// Reading is one line tracker's view of the floor.
type Reading int

const (
	Indeterminate Reading = iota
	Black
	White
)

func (r Reading) String() string {
	switch r {
	case Black:
		return "B"
	case White:
		return "W"
	default:
		return "?"
	}
}

// LineState is the combined left, center and right readings. Any
// combination with an indeterminate sensor is LineUnknown.
type LineState int

const (
	LineUnknown LineState = iota
	LineWWW
	LineWBW
	LineBBB
	LineWWB
	LineWBB
	LineBWW
	LineBBW
	LineBWB
)

func (s LineState) String() string {
	switch s {
	case LineWWW:
		return "WWW"
	case LineWBW:
		return "WBW"
	case LineBBB:
		return "BBB"
	case LineWWB:
		return "WWB"
	case LineWBB:
		return "WBB"
	case LineBWW:
		return "BWW"
	case LineBBW:
		return "BBW"
	case LineBWB:
		return "BWB"
	default:
		return "UNKNOWN"
	}
}

var lineStates = map[[3]Reading]LineState{
	{White, White, White}: LineWWW,
	{White, Black, White}: LineWBW,
	{Black, Black, Black}: LineBBB,
	{White, White, Black}: LineWWB,
	{White, Black, Black}: LineWBB,
	{Black, White, White}: LineBWW,
	{Black, Black, White}: LineBBW,
	{Black, White, Black}: LineBWB,
}

// ComposeLineState combines three readings, left to right.
func ComposeLineState(left, center, right Reading) LineState {
	if s, ok := lineStates[[3]Reading{left, center, right}]; ok {
		return s
	}
	return LineUnknown
}

// VoltageRange is a closed voltage interval.
type VoltageRange struct {
	Low  float64 `mapstructure:"low"`
	High float64 `mapstructure:"high"`
}

func (r VoltageRange) Contains(v float64) bool { return v >= r.Low && v <= r.High }

// Overlaps reports whether two ranges share any voltage.
func (r VoltageRange) Overlaps(o VoltageRange) bool {
	return r.Low <= o.High && o.Low <= r.High
}

// LineTracker classifies a photoreflector voltage. A dark floor reflects
// little and reads low.
type LineTracker struct {
	Black VoltageRange `mapstructure:"black"`
	White VoltageRange `mapstructure:"white"`
}

// DefaultLineTracker suits the robot's 5 V analog trackers.
func DefaultLineTracker() LineTracker {
	return LineTracker{
		Black: VoltageRange{Low: 0.0, High: 1.5},
		White: VoltageRange{Low: 2.5, High: 5.0},
	}
}

func (t LineTracker) Classify(volts float64) Reading {
	switch {
	case t.Black.Contains(volts):
		return Black
	case t.White.Contains(volts):
		return White
	default:
		return Indeterminate
	}
}

// State classifies three voltages, left to right.
func (t LineTracker) State(left, center, right float64) LineState {
	return ComposeLineState(t.Classify(left), t.Classify(center), t.Classify(right))
}
