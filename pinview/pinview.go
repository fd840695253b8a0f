// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pinview shows the levels of an expander register on the terminal
// (stdout) using ANSI color codes, one block per pin.
//
// Useful to watch what a driver writes without a logic analyzer at hand.
package pinview

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/gpio"
)

// Opts represents the options available for this view.
type Opts struct {
	// Width is the number of pins shown.
	Width int
	// High and Low are the colors of a pin at that level. Green and dark gray
	// are used for the zero value.
	High color.NRGBA
	Low  color.NRGBA
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// W defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

// Dev is a register view that outputs to the console.
type Dev struct {
	w     io.Writer
	width int
	high  string
	low   string

	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	high := opts.High
	if high == (color.NRGBA{}) {
		high = color.NRGBA{G: 255, A: 255}
	}
	low := opts.Low
	if low == (color.NRGBA{}) {
		low = color.NRGBA{R: 48, G: 48, B: 48, A: 255}
	}
	return &Dev{
		w:     w,
		width: opts.Width,
		high:  p.Block(high),
		low:   p.Block(low),
	}
}

func (d *Dev) String() string {
	return "PinView"
}

// Show redraws the line with the levels of v, pin 0 first.
func (d *Dev) Show(v gpio.GPIOValue) error {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for ix := range d.width {
		if v&(gpio.GPIOValue(1)<<ix) != 0 {
			_, _ = d.buf.WriteString(d.high)
		} else {
			_, _ = d.buf.WriteString(d.low)
		}
	}
	_, _ = fmt.Fprintf(&d.buf, "\033[0m 0x%0*x", (d.width+3)/4, uint64(v))
	_, err := d.buf.WriteTo(d.w)
	return err
}

// Halt resets the colors and ends the line.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

var _ fmt.Stringer = &Dev{}
