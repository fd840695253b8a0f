// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9570

import (
	"fmt"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
)

// Group is a set of pins of one Dev that are written in one transaction.
type Group struct {
	dev  *Dev
	pins []*expanderPin
}

// Group returns a gpio.Group comprised of the specified pin numbers. Offset n
// of the group values maps to pinNumbers[n].
func (dev *Dev) Group(pinNumbers ...int) (gpio.Group, error) {
	gr := &Group{dev: dev, pins: make([]*expanderPin, len(pinNumbers))}
	for ix, number := range pinNumbers {
		if err := dev.checkIndex(number); err != nil {
			return nil, err
		}
		gr.pins[ix] = dev.Pins[number].(*expanderPin)
	}
	return gr, nil
}

// Pins returns the set of pins that make up this group.
func (gr *Group) Pins() []pin.Pin {
	pins := make([]pin.Pin, len(gr.pins))
	for ix, p := range gr.pins {
		pins[ix] = p
	}
	return pins
}

// ByOffset returns the pin at offset within the group.
func (gr *Group) ByOffset(offset int) pin.Pin {
	if offset < 0 || offset >= len(gr.pins) {
		return nil
	}
	return gr.pins[offset]
}

// ByName returns the pin with the given name, or nil.
func (gr *Group) ByName(name string) pin.Pin {
	for _, p := range gr.pins {
		if p.name == name {
			return p
		}
	}
	return nil
}

// ByNumber returns the pin with the given device pin number, or nil.
func (gr *Group) ByNumber(number int) pin.Pin {
	for _, p := range gr.pins {
		if p.number == number {
			return p
		}
	}
	return nil
}

// toDevMask converts a group relative value into a device register value.
func (gr *Group) toDevMask(v gpio.GPIOValue) gpio.GPIOValue {
	m := gpio.GPIOValue(0)
	for ix, p := range gr.pins {
		if v&(gpio.GPIOValue(1)<<ix) != 0 {
			m |= p.bit()
		}
	}
	return m
}

func (gr *Group) defaultMask() gpio.GPIOValue {
	return gpio.GPIOValue(1)<<len(gr.pins) - 1
}

// Out writes value to the pins of the group identified by mask and flushes.
// If mask is 0, every pin of the group is written.
func (gr *Group) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = gr.defaultMask()
	}
	devMask := gr.toDevMask(mask)
	if devMask == 0 {
		return nil
	}
	return gr.dev.Out(gr.toDevMask(value&mask), devMask)
}

// Read reads the chip and returns the levels of the group pins identified by
// mask. If mask is 0, every pin of the group is returned.
func (gr *Group) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	if mask == 0 {
		mask = gr.defaultMask()
	}
	v, err := gr.dev.ReadAll()
	if err != nil {
		return 0, err
	}
	result := gpio.GPIOValue(0)
	for ix, p := range gr.pins {
		bit := gpio.GPIOValue(1) << ix
		if mask&bit != 0 && v&p.bit() != 0 {
			result |= bit
		}
	}
	return result, nil
}

// WaitForEdge is not supported, the chips have no interrupt output.
func (gr *Group) WaitForEdge(timeout time.Duration) (number int, edge gpio.Edge, err error) {
	return 0, gpio.NoEdge, ErrNotImplemented
}

// Halt stops the pin group. It cannot be used after this call.
func (gr *Group) Halt() error {
	gr.pins = nil
	return nil
}

func (gr *Group) String() string {
	var sb strings.Builder
	sb.WriteString(gr.dev.String())
	sb.WriteString("[ ")
	for _, p := range gr.pins {
		fmt.Fprintf(&sb, "%d ", p.number)
	}
	sb.WriteString("]")
	return sb.String()
}

var _ gpio.Group = &Group{}
