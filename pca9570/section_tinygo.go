// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build tinygo

package pca9570

import "runtime/interrupt"

type sectionState = interrupt.State

func enterSection() sectionState {
	return interrupt.Disable()
}

func exitSection(s sectionState) {
	interrupt.Restore(s)
}
