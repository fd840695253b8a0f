// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package expander is a container for the PCA957x I²C output expander driver
// and its tooling.
//
// See package pca9570 for the driver, pinview for a terminal view of a
// register and cmd/pca9570 for a command line tool.
package expander
