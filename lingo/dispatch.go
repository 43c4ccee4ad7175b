// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import "fmt"

// dispatch executes a single instruction against scope. It returns
// advance=false when the handler already wrote BytecodeIndex (jump
// opcodes).
func (vm *VM) dispatch(scope *Scope, instr Instruction) (bool, error) {
	switch instr.Opcode {
	// Stack family.
	case OpPushZero:
		scope.push(Int(0))
	case OpPushInt8, OpPushInt16, OpPushInt32:
		scope.push(Int(instr.Arg))
	case OpPushFloat32:
		scope.push(Float(float64(instr.Arg)))
	case OpPushCons:
		return true, vm.opPushCons(scope, instr)
	case OpPushSymb:
		scope.push(Symbol(scope.Script.Names.Resolve(int(instr.Arg))))
	case OpPop:
		scope.popN(int(instr.Arg))
	case OpSwap:
		a := scope.pop()
		b := scope.pop()
		scope.push(a)
		scope.push(b)
	case OpPeek:
		scope.push(scope.peek(int(instr.Arg)))

	// Arithmetic family.
	case OpAdd, OpSub, OpMul, OpDiv, OpMod:
		return true, vm.opArith(scope, instr.Opcode)
	case OpInv:
		a := scope.pop()
		r, err := Mul(a, Int(-1))
		if err != nil {
			return true, err
		}
		scope.push(r)

	// Comparison family.
	case OpLt, OpLtEq, OpGt, OpGtEq, OpEq, OpNtEq:
		vm.opCompare(scope, instr.Opcode)

	// Logical family.
	case OpAnd, OpOr, OpNot:
		vm.opLogical(scope, instr.Opcode)

	// String family.
	case OpJoinStr:
		b, a := scope.pop(), scope.pop()
		scope.push(Str(a.ToStr() + b.ToStr()))
	case OpJoinPadStr:
		b, a := scope.pop(), scope.pop()
		scope.push(Str(a.ToStr() + " " + b.ToStr()))
	case OpContainsStr:
		return true, nil0(func() { vm.opContainsStr(scope, false) })
	case OpContains0Str:
		return true, nil0(func() { vm.opContainsStr(scope, true) })
	case OpGetChunk:
		vm.opGetChunk(scope)
	case OpPut:
		vm.opPut(scope)
	case OpPutChunk:
		vm.opPutChunk(scope)
	case OpDeleteChunk:
		vm.opDeleteChunk(scope)

	// Variable family.
	case OpGetLocal:
		scope.push(scope.Locals[clampIdx(dividedArg(instr), len(scope.Locals))])
	case OpSetLocal:
		idx := clampIdx(dividedArg(instr), len(scope.Locals))
		scope.Locals[idx] = scope.pop()
	case OpGetParam:
		idx := int(instr.Arg)
		if idx >= 0 && idx < len(scope.Args) {
			scope.push(scope.Args[idx])
		} else {
			scope.push(Void())
		}
	case OpSetParam:
		idx := int(instr.Arg)
		v := scope.pop()
		if idx >= 0 && idx < len(scope.Args) {
			scope.Args[idx] = v
		}
	case OpGetGlobal, OpGetGlobal2:
		name := scope.Script.Names.Resolve(int(instr.Arg))
		scope.push(vm.getGlobal(name))
	case OpSetGlobal, OpSetGlobal2:
		name := scope.Script.Names.Resolve(int(instr.Arg))
		vm.Globals[globalKey(name)] = scope.pop()

	// Control flow.
	case OpJmp:
		target := instr.ByteOffset + int(instr.Arg)
		idx, ok := scope.Handler.IndexForOffset(target)
		if !ok {
			return false, fmt.Errorf("lingo: JMP target offset %d unresolved", target)
		}
		scope.BytecodeIndex = idx
		return false, nil
	case OpJmpIfZ:
		cond := scope.pop()
		if !cond.ToBool() {
			target := instr.ByteOffset + int(instr.Arg)
			idx, ok := scope.Handler.IndexForOffset(target)
			if !ok {
				return false, fmt.Errorf("lingo: JMP_IF_Z target offset %d unresolved", target)
			}
			scope.BytecodeIndex = idx
			return false, nil
		}
	case OpEndRepeat:
		target := instr.ByteOffset + int(instr.Arg)
		idx, ok := scope.Handler.IndexForOffset(target)
		if !ok {
			return false, fmt.Errorf("lingo: END_REPEAT target offset %d unresolved", target)
		}
		scope.BytecodeIndex = idx
		return false, nil
	case OpRet:
		if len(scope.Stack) > 0 {
			scope.ReturnValue = scope.pop()
		}
		scope.Returned = true

	// Lists.
	case OpPushArgList:
		items := scope.popN(int(instr.Arg))
		scope.push(ArgList(items...))
	case OpPushArgListNoRet:
		items := scope.popN(int(instr.Arg))
		scope.push(ArgListNoRet(items...))
	case OpPushList:
		al := scope.pop()
		scope.push(List(al.Items()...))
	case OpPushPropList:
		al := scope.pop()
		pl := NewPropList()
		items := al.Items()
		for i := 0; i+1 < len(items); i += 2 {
			pl.PropAdd(items[i].ToStr(), items[i+1])
		}
		scope.push(pl)

	// Calls.
	case OpLocalCall:
		return true, vm.opLocalCall(scope, instr)
	case OpExtCall:
		return true, vm.opExtCall(scope, instr)
	case OpObjCall:
		return true, vm.opObjCall(scope, instr)

	// Properties.
	case OpGetProp:
		vm.opGetProp(scope)
	case OpSetProp:
		vm.opSetProp(scope)
	case OpGetMovieProp:
		vm.opGetMovieProp(scope)
	case OpSetMovieProp:
		vm.opSetMovieProp(scope)
	case OpGetObjProp:
		vm.opGetObjProp(scope)
	case OpSetObjProp:
		vm.opSetObjProp(scope)
	case OpTheBuiltin:
		vm.opTheBuiltin(scope, instr)
	case OpGet:
		vm.opGet(scope, instr)
	case OpSet:
		vm.opSet(scope, instr)
	case OpNewObj:
		vm.opNewObj(scope, instr)

	default:
		return true, fmt.Errorf("lingo: unimplemented opcode %v", instr.Opcode)
	}
	return true, nil
}

func nil0(f func()) error { f(); return nil }

func clampIdx(arg int32, n int) int {
	idx := int(arg)
	if idx < 0 {
		return 0
	}
	if n == 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

func globalKey(name string) string { return toLowerASCII(name) }

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func (vm *VM) getGlobal(name string) Datum {
	if v, ok := vm.Globals[globalKey(name)]; ok {
		return v
	}
	return Void()
}

func (vm *VM) opPushCons(scope *Scope, instr Instruction) error {
	idx := int(dividedArg(instr))
	if idx < 0 || idx >= len(scope.Script.Literals) {
		scope.push(Void())
		return nil
	}
	scope.push(scope.Script.Literals[idx])
	return nil
}

// dividedArg applies the arg-width-prefix variable multiplier to an
// instruction's argument: "PUSH_CONS indexes the
// literal table after dividing the argument by the variable
// multiplier." The same rule is applied to local-variable indices.
func dividedArg(instr Instruction) int32 {
	m := instr.Multiplier
	if m == 0 {
		m = 1
	}
	return instr.Arg / m
}
