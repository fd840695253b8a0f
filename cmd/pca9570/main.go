// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// pca9570 sets outputs of a PCA957x expander and shows its register.
//
// Every PIN=LEVEL argument is applied to the cache and the result is written
// in a single transaction:
//
//	pca9570 -variant PCA9571 -a 0x25 0=1 3=1
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/GermanBionicSystems/expander/pca9570"
	"github.com/GermanBionicSystems/expander/pinview"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// assignment is one PIN=LEVEL argument.
type assignment struct {
	pin   int
	level gpio.Level
}

func parseAssignment(s string) (assignment, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return assignment{}, fmt.Errorf("expected PIN=LEVEL, got %q", s)
	}
	n, err := strconv.Atoi(name)
	if err != nil {
		return assignment{}, fmt.Errorf("invalid pin %q", name)
	}
	switch strings.ToLower(value) {
	case "1", "h", "high":
		return assignment{pin: n, level: gpio.High}, nil
	case "0", "l", "low":
		return assignment{pin: n, level: gpio.Low}, nil
	}
	return assignment{}, fmt.Errorf("invalid level %q", value)
}

func mainImpl() error {
	busName := flag.String("b", "", "I²C bus to use")
	addr := flag.Uint("a", uint(pca9570.DefaultAddress), "I²C address of the expander")
	variant := flag.String("variant", string(pca9570.PCA9570), "chip variant: PCA9570, PCA9571, PCA9674 or PCA9675")
	cache := flag.String("cache", pca9570.Optimistic.String(), "cache mode: optimistic or verified")
	concurrency := flag.String("concurrency", pca9570.Spin.String(), "concurrency mode: none, spin or critical-section")
	initial := flag.Bool("init", false, "read the register from the chip on start instead of assuming the power-on state")
	read := flag.Bool("read", false, "show the register read from the chip instead of the cache")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	var assignments []assignment
	for _, arg := range flag.Args() {
		a, err := parseAssignment(arg)
		if err != nil {
			return err
		}
		assignments = append(assignments, a)
	}
	opts := pca9570.DefaultOpts
	var err error
	if opts.Cache, err = pca9570.ParseCacheMode(*cache); err != nil {
		return err
	}
	if opts.Concurrency, err = pca9570.ParseConcurrency(*concurrency); err != nil {
		return err
	}
	opts.ReadInitial = *initial

	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		return err
	}
	defer bus.Close()

	dev, err := pca9570.New(bus, uint16(*addr), pca9570.Variant(strings.ToUpper(*variant)), &opts)
	if err != nil {
		return err
	}
	log.Printf("using %s on %s", dev, bus)
	for _, a := range assignments {
		if err := dev.SetPin(a.pin, a.level); err != nil {
			return err
		}
		log.Printf("pin %d -> %s", a.pin, a.level)
	}
	if err := dev.Flush(); err != nil {
		return err
	}

	v := dev.Value()
	if *read {
		if v, err = dev.ReadAll(); err != nil {
			return err
		}
	}
	view := pinview.New(&pinview.Opts{Width: dev.Width()})
	if err := view.Show(v); err != nil {
		return err
	}
	return errors.Join(view.Halt(), dev.Halt())
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "pca9570: %s.\n", err)
		os.Exit(1)
	}
}
