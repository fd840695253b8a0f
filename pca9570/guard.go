// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9570

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

// guard serializes access to the register cache and the bus of one Dev.
type guard interface {
	lock()
	unlock()
}

func newGuard(c Concurrency) (guard, error) {
	switch c {
	case NoLock:
		return noLock{}, nil
	case Spin:
		return &spinLock{}, nil
	case CriticalSection:
		return &criticalSection{}, nil
	}
	return nil, fmt.Errorf("pca9570: unknown concurrency mode %d", int(c))
}

type noLock struct{}

func (noLock) lock()   {}
func (noLock) unlock() {}

type spinLock struct {
	held atomic.Bool
}

func (s *spinLock) lock() {
	for !s.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (s *spinLock) unlock() {
	s.held.Store(false)
}

// criticalSection masks interrupts between lock and unlock. The state saved by
// lock is only touched while the section is held.
type criticalSection struct {
	state sectionState
}

func (c *criticalSection) lock() {
	c.state = enterSection()
}

func (c *criticalSection) unlock() {
	exitSection(c.state)
}
