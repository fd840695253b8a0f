// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9570

// Variant represents the actual chip model.
type Variant string

const (
	PCA9570 Variant = "PCA9570" // PCA9570 4-bit output expander. Datasheet: https://www.nxp.com/docs/en/data-sheet/PCA9570.pdf
	PCA9571 Variant = "PCA9571" // PCA9571 8-bit output expander. Datasheet: https://www.nxp.com/docs/en/data-sheet/PCA9571.pdf
	PCA9674 Variant = "PCA9674" // PCA9674 8-bit quasi-bidirectional expander. Datasheet: https://www.nxp.com/docs/en/data-sheet/PCA9674_PCA9674A.pdf
	PCA9675 Variant = "PCA9675" // PCA9675 16-bit quasi-bidirectional expander. Datasheet: https://www.nxp.com/docs/en/data-sheet/PCA9675.pdf

	// DefaultAddress is the fixed address of the PCA9570.
	DefaultAddress uint16 = 0x24
)

type variant struct {
	addStart uint16
	addEnd   uint16
	pins     int
	// quasi is set for quasi-bidirectional chips. A read returns the level on
	// the pins, not the output latch.
	quasi bool
}

var variants = map[Variant]variant{
	PCA9570: {addStart: 0x24, addEnd: 0x24, pins: 4},
	PCA9571: {addStart: 0x25, addEnd: 0x25, pins: 8},
	PCA9674: {addStart: 0x20, addEnd: 0x27, pins: 8, quasi: true},
	PCA9675: {addStart: 0x20, addEnd: 0x27, pins: 16, quasi: true},
}

// isAddrInvalid checks to see if the address is used by the chip.
func (v variant) isAddrInvalid(addr uint16) bool {
	return addr < v.addStart || v.addEnd < addr
}
