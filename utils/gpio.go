package utils

import (
	"sync"

	"github.com/brian-armstrong/gpio"
)

// DigitalInput is a single on/off sensor such as a limit switch.
type DigitalInput interface {
	Get() bool
}

// DigitalOutput drives a single on/off load such as an indicator light.
type DigitalOutput interface {
	Set(on bool)
}

// GPIOInput reads a sysfs GPIO pin. With activeLow set the pin reads true
// when pulled to ground, which is how the robot's switches are wired.
type GPIOInput struct {
	pin       gpio.Pin
	activeLow bool
	log       *Logger
}

func NewGPIOInput(pin uint, activeLow bool, log *Logger) *GPIOInput {
	return &GPIOInput{pin: gpio.NewInput(pin), activeLow: activeLow, log: log}
}

func (in *GPIOInput) Get() bool {
	v, err := in.pin.Read()
	if err != nil {
		in.log.Error("gpio read: %v", err)
		return false
	}
	high := v != 0
	return high != in.activeLow
}

func (in *GPIOInput) Close() {
	in.pin.Close()
}

// pinWriter is the part of gpio.Pin an output drives.
type pinWriter interface {
	High() error
	Low() error
	Close()
}

// GPIOOutput drives a sysfs GPIO pin and skips writes that would not change
// its level. A failed write is retried on the next Set.
type GPIOOutput struct {
	mu   sync.Mutex
	pin  pinWriter
	log  *Logger
	on   bool
	init bool
}

func NewGPIOOutput(pin uint, log *Logger) *GPIOOutput {
	return &GPIOOutput{pin: gpio.NewOutput(pin, false), log: log}
}

func (out *GPIOOutput) Set(on bool) {
	out.mu.Lock()
	defer out.mu.Unlock()
	if out.init && out.on == on {
		return
	}
	var err error
	if on {
		err = out.pin.High()
	} else {
		err = out.pin.Low()
	}
	if err != nil {
		out.log.Error("gpio write: %v", err)
		return
	}
	out.on = on
	out.init = true
}

func (out *GPIOOutput) Close() {
	out.pin.Close()
}

// FixedInput is a DigitalInput with a constant value, used where a
// chassis variant has no sensor wired.
type FixedInput bool

func (f FixedInput) Get() bool { return bool(f) }

// NopOutput discards writes.
type NopOutput struct{}

func (NopOutput) Set(bool) {}
