package utils

import "sort"

// Frame directions as written in the motor map. TX frames are commands
// we send to motor controllers, RX frames are feedback we listen for.
const (
	DirectionTX = "tx"
	DirectionRX = "rx"
)

type SignalDef struct {
	Name      string
	StartBit  int
	BitLength int
	Signed    bool
	Factor    float64
	Offset    float64
	Min       float64
	Max       float64
	Default   float64
	Unit      string
	Comment   string
}

type FrameDef struct {
	ID        uint32
	Name      string
	DLC       int
	Direction string
	CycleMS   int
	Signals   []SignalDef
}

// Signal looks up a signal of the frame by name.
func (fd *FrameDef) Signal(name string) (SignalDef, bool) {
	for _, s := range fd.Signals {
		if s.Name == name {
			return s, true
		}
	}
	return SignalDef{}, false
}

// CANMap is the motor bus layout: every frame the robot sends or listens
// for, indexed both ways.
type CANMap struct {
	ByID   map[uint32]*FrameDef
	ByName map[string]*FrameDef
}

func newCANMap() *CANMap {
	return &CANMap{
		ByID:   map[uint32]*FrameDef{},
		ByName: map[string]*FrameDef{},
	}
}

func (m *CANMap) FrameNames() []string {
	out := make([]string, 0, len(m.ByName))
	for k := range m.ByName {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// HasFrame reports whether name is part of the map.
func (m *CANMap) HasFrame(name string) bool {
	_, ok := m.ByName[name]
	return ok
}
