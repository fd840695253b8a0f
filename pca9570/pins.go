// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9570

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Pin extends gpio.PinIO with the cached access of the expander.
//
// gpio.PinIO methods act on the chip right away: Out flushes and Read reads
// the bus. The methods below work on the register cache of the Dev.
type Pin interface {
	gpio.PinIO
	// SetHigh sets the cached output high. It reaches the chip on the next
	// Flush.
	SetHigh() error
	// SetLow sets the cached output low. It reaches the chip on the next
	// Flush.
	SetLow() error
	// Toggle inverts the cached output.
	Toggle() error
	// IsHigh returns the output level according to the cache mode of the Dev.
	IsHigh() (bool, error)
	// IsLow is the negation of IsHigh.
	IsLow() (bool, error)
	// IsSetHigh returns the cached output level. It never touches the bus.
	IsSetHigh() bool
	// Flush writes the register of the Dev. It does not matter which pin is
	// used to flush, all pending changes are written.
	Flush() error
}

type expanderPin struct {
	dev    *Dev
	number int
	name   string
}

func (p *expanderPin) DefaultPull() gpio.Pull {
	return gpio.Float
}

func (p *expanderPin) Function() string {
	return string(p.Func())
}

func (p *expanderPin) Func() pin.Func {
	return gpio.OUT
}

func (p *expanderPin) SupportedFuncs() []pin.Func {
	if p.dev.quasi {
		return bidirectionalFuncs[:]
	}
	return outputFuncs[:]
}

func (p *expanderPin) SetFunc(f pin.Func) error {
	switch f {
	case gpio.OUT:
		return nil
	case gpio.IN:
		return p.In(gpio.Float, gpio.NoEdge)
	}
	return fmt.Errorf("%w: function %s", ErrNotImplemented, f)
}

func (p *expanderPin) Halt() error {
	return nil
}

func (p *expanderPin) In(pull gpio.Pull, edge gpio.Edge) error {
	if !p.dev.quasi {
		return fmt.Errorf("%w: %s is output only", ErrNotImplemented, p.dev.variant)
	}
	if pull != gpio.Float && pull != gpio.PullNoChange {
		return fmt.Errorf("%w: pull %s", ErrNotImplemented, pull)
	}
	if edge != gpio.NoEdge {
		return fmt.Errorf("%w: edge detection", ErrNotImplemented)
	}
	// There is no direction register. Writing a High releases the
	// quasi-bidirectional output so an external signal can drive the line.
	bit := p.bit()
	return p.dev.Out(bit, bit)
}

func (p *expanderPin) Name() string {
	return p.name
}

func (p *expanderPin) Number() int {
	return p.number
}

func (p *expanderPin) Out(l gpio.Level) error {
	bit := p.bit()
	value := gpio.GPIOValue(0)
	if l {
		value = bit
	}
	return p.dev.Out(value, bit)
}

func (p *expanderPin) Pull() gpio.Pull {
	return gpio.Float
}

// Read always reads the chip. On output only variants this is the output
// register. Errors are logged and read as Low.
func (p *expanderPin) Read() gpio.Level {
	v, err := p.dev.ReadAll()
	if err != nil {
		log.Println(err)
		return gpio.Low
	}
	return v&p.bit() != 0
}

func (p *expanderPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (p *expanderPin) String() string {
	return p.name
}

// The chips have no interrupt output.
func (p *expanderPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

func (p *expanderPin) SetHigh() error {
	return p.dev.SetPin(p.number, gpio.High)
}

func (p *expanderPin) SetLow() error {
	return p.dev.SetPin(p.number, gpio.Low)
}

func (p *expanderPin) Toggle() error {
	p.dev.guard.lock()
	defer p.dev.guard.unlock()
	bit := p.bit()
	p.dev.setLocked(bit, p.dev.value&bit == 0)
	return nil
}

func (p *expanderPin) IsHigh() (bool, error) {
	l, err := p.dev.GetPin(p.number)
	return bool(l), err
}

func (p *expanderPin) IsLow() (bool, error) {
	l, err := p.dev.GetPin(p.number)
	if err != nil {
		return false, err
	}
	return !bool(l), nil
}

func (p *expanderPin) IsSetHigh() bool {
	return p.dev.Value()&p.bit() != 0
}

func (p *expanderPin) Flush() error {
	return p.dev.Flush()
}

func (p *expanderPin) bit() gpio.GPIOValue {
	return gpio.GPIOValue(1) << p.number
}

var (
	bidirectionalFuncs = [...]pin.Func{gpio.IN, gpio.OUT}
	outputFuncs        = [...]pin.Func{gpio.OUT}
)

var _ Pin = &expanderPin{}
