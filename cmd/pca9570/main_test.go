// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
)

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		arg      string
		expected assignment
		err      bool
	}{
		{arg: "0=1", expected: assignment{pin: 0, level: gpio.High}},
		{arg: "3=high", expected: assignment{pin: 3, level: gpio.High}},
		{arg: "15=L", expected: assignment{pin: 15, level: gpio.Low}},
		{arg: "2", err: true},
		{arg: "x=1", err: true},
		{arg: "1=maybe", err: true},
	}
	for _, test := range tests {
		a, err := parseAssignment(test.arg)
		if test.err {
			if err == nil {
				t.Errorf("parseAssignment(%q) expected an error", test.arg)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAssignment(%q): %v", test.arg, err)
			continue
		}
		if a != test.expected {
			t.Errorf("parseAssignment(%q) = %+v, expected %+v", test.arg, a, test.expected)
		}
	}
}
