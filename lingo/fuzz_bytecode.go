// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

// Fuzz decodes arbitrary bytes as a handler's bytecode stream and, on
// a successful decode, runs it through a VM with every provider nil.
// DecodeInstructions must never panic on malformed input, and
// CallHandler must always terminate (the step limit bounds any
// accidental infinite loop a fuzzed jump could construct).
func Fuzz(data []byte) int {
	instrs, err := DecodeInstructions(data)
	if err != nil {
		return 0
	}
	script := &Script{Names: &NameTable{}}
	handler := &Handler{Instructions: instrs}
	vm := New(Providers{}, nil)
	vm.CallHandler(script, handler, Void(), nil)
	return 1
}
