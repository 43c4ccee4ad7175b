// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

// Fuzz feeds arbitrary bytes through the full container loader: outer
// RIFX/XFIR framing, either pipeline, chunk decode, and cast model
// assembly must never panic on malformed input.
func Fuzz(data []byte) int {
	f, err := OpenBytes(data, nil)
	if err != nil {
		return 0
	}
	defer f.Close()
	return 1
}
