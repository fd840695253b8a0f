// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pca9570 provides a driver for the NXP PCA9570 family of command-less
// I²C output expanders. The PCA9570 provides 4 outputs, the PCA9571 and
// PCA9674 provide 8 and the PCA9675 provides 16.
//
// These chips don't implement an I²C register architecture. You write the whole
// output register (one byte, or two bytes LSB first for 16 pins) and every
// output changes at once. Reading returns the same number of bytes.
//
// # Datasheet
//
// https://www.nxp.com/docs/en/data-sheet/PCA9570.pdf
//
// https://www.nxp.com/docs/en/data-sheet/PCA9571.pdf
//
// # Caching
//
// The driver keeps the last known output register in memory. SetPin only
// changes that copy and marks it dirty; Flush writes the full register in a
// single transaction. Any number of SetPin calls between two flushes are thus
// coalesced into one write that carries their net effect. Pin.Out and
// Group.Out flush immediately.
//
// With CacheMode Optimistic, GetPin returns the cached bit. With Verified,
// every GetPin reads the chip. Input style reads (Pin.Read, ReadAll) always go
// to the bus since nothing the driver wrote can tell it what an external
// signal did.
//
// The PCA9674 and PCA9675 are quasi-bidirectional: writing a High releases
// the pin so it can be used as an input, and a read returns the level on the
// pins. Reads on these chips never feed the output cache. The PCA9570 and
// PCA9571 are output only and read back their output register.
//
// # Concurrency
//
// The register cache and the bus are guarded according to Opts.Concurrency.
// With NoLock the caller must guarantee that a Dev and its pins are only
// used from one goroutine; concurrent use is a data race. Spin and
// CriticalSection make all operations safe for concurrent use.
package pca9570

import (
	"errors"
	"fmt"
	"strings"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
)

// CacheMode selects how GetPin reads an output.
type CacheMode int

const (
	// Optimistic returns the cached bit without bus traffic.
	Optimistic CacheMode = iota
	// Verified reads the register from the chip on every GetPin.
	Verified
)

func (m CacheMode) String() string {
	switch m {
	case Optimistic:
		return "optimistic"
	case Verified:
		return "verified"
	default:
		return fmt.Sprintf("CacheMode(%d)", int(m))
	}
}

// ParseCacheMode returns the CacheMode named s.
func ParseCacheMode(s string) (CacheMode, error) {
	switch strings.ToLower(s) {
	case "optimistic":
		return Optimistic, nil
	case "verified":
		return Verified, nil
	}
	return 0, fmt.Errorf("pca9570: unknown cache mode %q", s)
}

// Concurrency selects the guard protecting a Dev.
type Concurrency int

const (
	// NoLock performs no synchronization. The caller guarantees exclusive
	// access.
	NoLock Concurrency = iota
	// Spin guards the Dev with a spin lock. Waiting goroutines busy-wait.
	// Ordering is not fair.
	Spin
	// CriticalSection runs every operation with interrupts masked on TinyGo
	// targets. On hosted Go it is a process wide lock.
	CriticalSection
)

func (c Concurrency) String() string {
	switch c {
	case NoLock:
		return "none"
	case Spin:
		return "spin"
	case CriticalSection:
		return "critical-section"
	default:
		return fmt.Sprintf("Concurrency(%d)", int(c))
	}
}

// ParseConcurrency returns the Concurrency named s.
func ParseConcurrency(s string) (Concurrency, error) {
	switch strings.ToLower(s) {
	case "none":
		return NoLock, nil
	case "spin":
		return Spin, nil
	case "critical-section", "cs":
		return CriticalSection, nil
	}
	return 0, fmt.Errorf("pca9570: unknown concurrency mode %q", s)
}

// Opts holds the configuration of a Dev.
type Opts struct {
	// Cache is the read policy of GetPin.
	Cache CacheMode
	// Concurrency is the guard used for the register cache and the bus.
	Concurrency Concurrency
	// Initial is the register value the chip holds when New is called. It is
	// trusted as is, no write is issued. Bits above the pin count are ignored.
	Initial gpio.GPIOValue
	// ReadInitial reads the register once from the chip instead of using
	// Initial.
	ReadInitial bool
	// Register adds the pins to gpioreg under their names.
	Register bool
}

// DefaultOpts is the recommended default options. Initial matches the
// power-on state of the family, all outputs high.
var DefaultOpts = Opts{
	Cache:       Optimistic,
	Concurrency: Spin,
	Initial:     0xffff,
}

var (
	// ErrBus wraps every failure reported by the I²C transport.
	ErrBus = errors.New("pca9570: bus error")
	// ErrInvalidPin is returned for a pin index outside of the register.
	ErrInvalidPin = errors.New("pca9570: invalid pin index")
	// ErrInvalidAddress is returned by New for an address the variant
	// doesn't respond to.
	ErrInvalidAddress = errors.New("pca9570: address not supported by variant")
	// ErrUnsupportedVariant is returned by New for an unknown variant.
	ErrUnsupportedVariant = errors.New("pca9570: unsupported variant")
	// ErrNotImplemented is returned for features the chips don't have.
	ErrNotImplemented = errors.New("pca9570: not implemented")
)

// Dev is a PCA957x output expander.
type Dev struct {
	// Pins are the outputs of the chip, indexed by pin number.
	Pins []Pin

	variant Variant
	width   int
	mask    gpio.GPIOValue
	cache   CacheMode
	reg     bool
	quasi   bool

	guard guard
	// Everything below is protected by guard.
	d       *i2c.Dev
	value   gpio.GPIOValue
	pending gpio.GPIOValue
	dirty   bool
}

// New returns a Dev communicating with a PCA957x chip at addr on bus. opts may
// be nil, DefaultOpts is used then.
func New(bus i2c.Bus, addr uint16, variant Variant, opts *Opts) (*Dev, error) {
	v, ok := variants[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVariant, string(variant))
	}
	if v.isAddrInvalid(addr) {
		return nil, fmt.Errorf("%w: 0x%x for %s", ErrInvalidAddress, addr, variant)
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	g, err := newGuard(opts.Concurrency)
	if err != nil {
		return nil, err
	}
	dev := &Dev{
		variant: variant,
		width:   v.pins,
		mask:    gpio.GPIOValue(1<<v.pins) - 1,
		cache:   opts.Cache,
		reg:     opts.Register,
		quasi:   v.quasi,
		guard:   g,
		d:       &i2c.Dev{Bus: bus, Addr: addr},
	}
	dev.value = opts.Initial & dev.mask
	if opts.ReadInitial {
		v, err := dev.readLocked()
		if err != nil {
			return nil, err
		}
		dev.value = v
	}
	name := dev.String()
	dev.Pins = make([]Pin, dev.width)
	for ix := range dev.width {
		dev.Pins[ix] = &expanderPin{dev: dev, number: ix, name: fmt.Sprintf("%s_GPIO%d", name, ix)}
		if dev.reg {
			// Ignore registration failure.
			_ = gpioreg.Register(dev.Pins[ix])
		}
	}
	return dev, nil
}

// Bidirectional reports whether the pins of the chip can be used as inputs.
// Only the quasi-bidirectional PCA9674 and PCA9675 can sense external
// signals; the PCA9570 and PCA9571 are output only.
func (dev *Dev) Bidirectional() bool {
	return dev.quasi
}

// Width returns the number of outputs of the chip.
func (dev *Dev) Width() int {
	return dev.width
}

// SetPin changes the cached level of pin index. No bus traffic is issued; the
// change reaches the chip on the next Flush.
func (dev *Dev) SetPin(index int, l gpio.Level) error {
	if err := dev.checkIndex(index); err != nil {
		return err
	}
	dev.guard.lock()
	defer dev.guard.unlock()
	dev.setLocked(gpio.GPIOValue(1)<<index, l)
	return nil
}

// GetPin returns the level of pin index according to the cache mode. In
// Verified mode the register is read from the chip and the hardware level is
// returned, even when a write to that pin is still pending.
func (dev *Dev) GetPin(index int) (gpio.Level, error) {
	if err := dev.checkIndex(index); err != nil {
		return gpio.Low, err
	}
	dev.guard.lock()
	defer dev.guard.unlock()
	bit := gpio.GPIOValue(1) << index
	if dev.cache == Optimistic {
		return dev.value&bit != 0, nil
	}
	v, err := dev.readLocked()
	if err != nil {
		return gpio.Low, err
	}
	return v&bit != 0, nil
}

// Flush writes the cached register to the chip if anything changed since the
// last successful flush. On failure the cache stays dirty and the next Flush
// writes the same value again.
func (dev *Dev) Flush() error {
	dev.guard.lock()
	defer dev.guard.unlock()
	return dev.flushLocked()
}

// ReadAll reads the register from the chip, regardless of the cache mode.
func (dev *Dev) ReadAll() (gpio.GPIOValue, error) {
	dev.guard.lock()
	defer dev.guard.unlock()
	return dev.readLocked()
}

// Out sets the pins identified by mask to value and flushes. A mask of 0
// selects every pin.
func (dev *Dev) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = dev.mask
	}
	if mask&^dev.mask != 0 {
		return fmt.Errorf("%w: mask 0x%x exceeds %d pins", ErrInvalidPin, mask, dev.width)
	}
	dev.guard.lock()
	defer dev.guard.unlock()
	dev.setLocked(mask&value, gpio.High)
	dev.setLocked(mask&^value, gpio.Low)
	return dev.flushLocked()
}

// SetAll drives every output to l and flushes.
func (dev *Dev) SetAll(l gpio.Level) error {
	value := gpio.GPIOValue(0)
	if l {
		value = dev.mask
	}
	return dev.Out(value, dev.mask)
}

// Value returns the cached output register, including changes that are not
// flushed yet.
func (dev *Dev) Value() gpio.GPIOValue {
	dev.guard.lock()
	defer dev.guard.unlock()
	return dev.value
}

// Dirty reports whether the cache holds changes that were not written yet.
func (dev *Dev) Dirty() bool {
	dev.guard.lock()
	defer dev.guard.unlock()
	return dev.dirty
}

// Halt writes pending changes and removes the pins from gpioreg.
func (dev *Dev) Halt() error {
	err := dev.Flush()
	if dev.reg {
		for _, p := range dev.Pins {
			_ = gpioreg.Unregister(p.Name())
		}
	}
	return err
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s_%x", dev.variant, dev.d.Addr)
}

func (dev *Dev) checkIndex(index int) error {
	if index < 0 || index >= dev.width {
		return fmt.Errorf("%w: %d, %s has %d pins", ErrInvalidPin, index, dev.variant, dev.width)
	}
	return nil
}

// setLocked sets or clears the bits in mask.
func (dev *Dev) setLocked(mask gpio.GPIOValue, l gpio.Level) {
	if mask == 0 {
		return
	}
	if l {
		dev.value |= mask
	} else {
		dev.value &^= mask
	}
	dev.pending |= mask
	dev.dirty = true
}

func (dev *Dev) flushLocked() error {
	if !dev.dirty {
		return nil
	}
	w := make([]byte, dev.byteCount())
	for ix := range w {
		w[ix] = byte(dev.value >> (ix * 8))
	}
	if err := dev.d.Tx(w, nil); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrBus, dev, err)
	}
	dev.pending = 0
	dev.dirty = false
	return nil
}

// readLocked reads the register. On push-pull chips the read back value is
// the output latch and refreshes the cached bits that have no pending write.
// On quasi-bidirectional chips it is the level on the pins and the cache is
// left alone, so an input pulled low is never written back as a driven Low.
func (dev *Dev) readLocked() (gpio.GPIOValue, error) {
	r := make([]byte, dev.byteCount())
	if err := dev.d.Tx(nil, r); err != nil {
		return 0, fmt.Errorf("%w: read %s: %w", ErrBus, dev, err)
	}
	v := gpio.GPIOValue(0)
	for ix, b := range r {
		v |= gpio.GPIOValue(b) << (ix * 8)
	}
	v &= dev.mask
	if !dev.quasi {
		dev.value = (v &^ dev.pending) | (dev.value & dev.pending)
	}
	return v, nil
}

func (dev *Dev) byteCount() int {
	if dev.width > 8 {
		return 2
	}
	return 1
}
