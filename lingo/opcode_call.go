// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import "fmt"

// popArgListStrict pops the ArgList/ArgListNoRet marker the three call
// opcodes and NEW_OBJ require: exactly one marker sits on top of stack
// and this consumes it. Returns an error if the top of stack is not a marker, since that
// invariant is load-bearing for stack-depth correctness.
func popArgListStrict(scope *Scope) ([]Datum, bool, error) {
	top := scope.pop()
	switch top.Kind() {
	case KindArgList:
		return top.Items(), false, nil
	case KindArgListNoRet:
		return top.Items(), true, nil
	default:
		return nil, false, fmt.Errorf("lingo: expected ArgList marker, got %v", top.Kind())
	}
}

// opLocalCall calls a handler defined in the current script by vector
// position.
func (vm *VM) opLocalCall(scope *Scope, instr Instruction) error {
	items, noRet, err := popArgListStrict(scope)
	if err != nil {
		return err
	}
	idx := int(instr.Arg)
	if idx < 0 || idx >= len(scope.Script.Handlers) {
		if !noRet {
			scope.push(Void())
		}
		return nil
	}
	h := scope.Script.Handlers[idx]
	result := vm.CallHandler(scope.Script, h, scope.Me, items)
	if !noRet {
		scope.push(result)
	}
	return nil
}

// opExtCall calls a built-in function or a globally-discoverable
// handler. Unresolved names return Void silently.
func (vm *VM) opExtCall(scope *Scope, instr Instruction) error {
	items, noRet, err := popArgListStrict(scope)
	if err != nil {
		return err
	}
	name := scope.Script.Names.Resolve(int(instr.Arg))

	if fn, ok := lookupBuiltin(name); ok {
		result := fn(vm, scope, items)
		if !noRet {
			scope.push(result)
		}
		return nil
	}

	if vm.Providers.Cast != nil {
		if script, h, ok := vm.Providers.Cast.FindHandler(name); ok {
			result := vm.CallHandler(script, h, Void(), items)
			if !noRet {
				scope.push(result)
			}
			return nil
		}
	}

	vm.logger.Errorf("Unknown handler %s", name)
	if !noRet {
		scope.push(Void())
	}
	return nil
}

// opObjCall performs method dispatch on the first argument (the
// target)
func (vm *VM) opObjCall(scope *Scope, instr Instruction) error {
	items, noRet, err := popArgListStrict(scope)
	if err != nil {
		return err
	}
	name := scope.Script.Names.Resolve(int(instr.Arg))
	if len(items) == 0 {
		if !noRet {
			scope.push(Void())
		}
		return nil
	}
	target := items[0]
	rest := items[1:]
	result := vm.dispatchMethod(scope, target, name, rest, !noRet)
	if !noRet {
		scope.push(result)
	}
	return nil
}

// opNewObj builds a new ScriptInstance from an ArgList whose first
// element names a script
func (vm *VM) opNewObj(scope *Scope, instr Instruction) {
	items, noRet, err := popArgListStrict(scope)
	if err != nil {
		scope.push(Void())
		return
	}
	var result Datum
	if len(items) == 0 {
		result = Void()
	} else {
		first := items[0]
		rest := items[1:]
		switch first.Kind() {
		case KindScriptRef:
			result = vm.instantiateScriptRef(first, rest)
		case KindSymbol, KindStr:
			result = vm.instantiateByName(first.ToStr(), rest)
		default:
			result = Void()
		}
	}
	if !noRet {
		scope.push(result)
	}
}

// opTheBuiltin implements THE_BUILTIN(name_id): reads a movie
// property, special-casing the execution-context-dependent
// paramCount. An inline ArgList marker must be consumed even when the
// builtin yields no value, but legacy encodings that omit the marker
// entirely must also be tolerated: the VM only pops when the top of
// stack actually is a marker.
func (vm *VM) opTheBuiltin(scope *Scope, instr Instruction) {
	if top := scope.peek(0); top.Kind() == KindArgList || top.Kind() == KindArgListNoRet {
		scope.pop()
	}
	name := scope.Script.Names.Resolve(int(instr.Arg))
	if equalFold(name, "paramCount") {
		scope.push(Int(int32(len(scope.Args))))
		return
	}
	if vm.Providers.Movie != nil {
		if v, ok := vm.Providers.Movie.GetMovieProp(name); ok {
			scope.push(v)
			return
		}
	}
	scope.push(Void())
}
