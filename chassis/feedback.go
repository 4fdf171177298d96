package chassis

import "sync"

// Signal names of the drive feedback and line tracker frames.
const (
	SignalEncPosition = "enc_position"
	SignalEncVelocity = "enc_velocity"
	SignalLeftVolts   = "left_volts"
	SignalCenterVolts = "center_volts"
	SignalRightVolts  = "right_volts"
)

// encoderSide is the last reported state of one side's encoder. zero is
// the raw position at the last reset, so resets never touch the hardware.
type encoderSide struct {
	position float64
	velocity float64
	zero     float64
}

// feedback is written by receive goroutines and read by the control loop.
type feedback struct {
	mu    sync.Mutex
	left  encoderSide
	right encoderSide
	volts [3]float64
}

func (f *feedback) setEncoder(left bool, position, velocity float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	side := &f.right
	if left {
		side = &f.left
	}
	side.position = position
	side.velocity = velocity
}

func (f *feedback) setVolts(left, center, right float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volts = [3]float64{left, center, right}
}

func (f *feedback) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.left.zero = f.left.position
	f.right.zero = f.right.position
}

// distance returns position since reset in raw units.
func (f *feedback) distance(left bool) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if left {
		return f.left.position - f.left.zero
	}
	return f.right.position - f.right.zero
}

func (f *feedback) velocity(left bool) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if left {
		return f.left.velocity
	}
	return f.right.velocity
}

func (f *feedback) lineVolts() (float64, float64, float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volts[0], f.volts[1], f.volts[2]
}
