// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

// Scope is one handler activation record.
type Scope struct {
	Script  *Script
	Handler *Handler

	Args   []Datum
	Locals []Datum
	Me     Datum // receiver; Void when the handler is not a method

	Stack []Datum

	BytecodeIndex int
	ReturnValue   Datum
	Returned      bool
	Error         bool

	// repeatExits is a small stack of loop-exit instruction indices for
	// compiled repeat loops, pushed on loop entry and popped on exit.
	repeatExits []int

}

func newScope(script *Script, handler *Handler, me Datum, args []Datum) *Scope {
	locals := make([]Datum, len(handler.LocalNameIDs))
	for i := range locals {
		locals[i] = Void()
	}
	return &Scope{
		Script:      script,
		Handler:     handler,
		Args:        args,
		Locals:      locals,
		Me:          me,
		ReturnValue: Void(),
	}
}

func (sc *Scope) push(d Datum) { sc.Stack = append(sc.Stack, d) }

func (sc *Scope) pop() Datum {
	if len(sc.Stack) == 0 {
		return Void()
	}
	d := sc.Stack[len(sc.Stack)-1]
	sc.Stack = sc.Stack[:len(sc.Stack)-1]
	return d
}

func (sc *Scope) peek(depth int) Datum {
	idx := len(sc.Stack) - 1 - depth
	if idx < 0 || idx >= len(sc.Stack) {
		return Void()
	}
	return sc.Stack[idx]
}

func (sc *Scope) popN(n int) []Datum {
	if n <= 0 {
		return nil
	}
	if n > len(sc.Stack) {
		n = len(sc.Stack)
	}
	items := append([]Datum{}, sc.Stack[len(sc.Stack)-n:]...)
	sc.Stack = sc.Stack[:len(sc.Stack)-n]
	return items
}

func (sc *Scope) pushExit(idx int) { sc.repeatExits = append(sc.repeatExits, idx) }

func (sc *Scope) popExit() (int, bool) {
	if len(sc.repeatExits) == 0 {
		return 0, false
	}
	idx := sc.repeatExits[len(sc.repeatExits)-1]
	sc.repeatExits = sc.repeatExits[:len(sc.repeatExits)-1]
	return idx, true
}

func (sc *Scope) currentInstruction() (Instruction, bool) {
	if sc.BytecodeIndex < 0 || sc.BytecodeIndex >= len(sc.Handler.Instructions) {
		return Instruction{}, false
	}
	return sc.Handler.Instructions[sc.BytecodeIndex], true
}

func (sc *Scope) finished() bool {
	return sc.Returned || sc.Error || sc.BytecodeIndex >= len(sc.Handler.Instructions)
}
