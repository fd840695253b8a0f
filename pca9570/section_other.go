// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !tinygo

package pca9570

import "sync"

// Hosted Go has no interrupt handlers to mask. The section is global, like
// masking interrupts on a single core would be.
var sectionMu sync.Mutex

type sectionState struct{}

func enterSection() sectionState {
	sectionMu.Lock()
	return sectionState{}
}

func exitSection(sectionState) {
	sectionMu.Unlock()
}
