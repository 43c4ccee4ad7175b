// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

// opArith implements ADD/SUB/MUL/DIV/MOD. Division and modulo by zero
// fail with a diagnostic error rather than producing NaN.
func (vm *VM) opArith(scope *Scope, op Opcode) error {
	b := scope.pop()
	a := scope.pop()
	var r Datum
	var err error
	switch op {
	case OpAdd:
		r, err = Add(a, b)
	case OpSub:
		r, err = Sub(a, b)
	case OpMul:
		r, err = Mul(a, b)
	case OpDiv:
		r, err = Div(a, b)
	case OpMod:
		r, err = Mod(a, b)
	}
	if err != nil {
		return err
	}
	scope.push(r)
	return nil
}

// opCompare implements LT/LT_EQ/GT/GT_EQ/EQ/NT_EQ using the
// cross-type equality/ordering rules.
func (vm *VM) opCompare(scope *Scope, op Opcode) {
	b := scope.pop()
	a := scope.pop()
	var result bool
	switch op {
	case OpLt:
		result = Compare(a, b) < 0
	case OpLtEq:
		result = Compare(a, b) <= 0
	case OpGt:
		result = Compare(a, b) > 0
	case OpGtEq:
		result = Compare(a, b) >= 0
	case OpEq:
		result = Equal(a, b)
	case OpNtEq:
		result = !Equal(a, b)
	}
	if result {
		scope.push(Int(1))
	} else {
		scope.push(Int(0))
	}
}

// opLogical implements AND/OR/NOT on Lingo truthiness.
func (vm *VM) opLogical(scope *Scope, op Opcode) {
	if op == OpNot {
		a := scope.pop()
		scope.push(boolDatum(!a.ToBool()))
		return
	}
	b := scope.pop()
	a := scope.pop()
	switch op {
	case OpAnd:
		scope.push(boolDatum(a.ToBool() && b.ToBool()))
	case OpOr:
		scope.push(boolDatum(a.ToBool() || b.ToBool()))
	}
}

func boolDatum(b bool) Datum {
	if b {
		return Int(1)
	}
	return Int(0)
}
