// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

func registerTypeBuiltins(t map[string]builtinFunc) {
	t["ilk"] = func(vm *VM, scope *Scope, args []Datum) Datum { return Symbol(arg(args, 0).Ilk()) }
	t["voidp"] = kindPredicate(KindVoid)
	t["integerp"] = kindPredicate(KindInt)
	t["floatp"] = kindPredicate(KindFloat)
	t["stringp"] = kindPredicate(KindStr)
	t["symbolp"] = kindPredicate(KindSymbol)
	t["listp"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		k := arg(args, 0).Kind()
		return boolDatum(k == KindList || k == KindPropList)
	}
	t["objectp"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		switch arg(args, 0).Kind() {
		case KindScriptInstance, KindXtraInstance, KindScriptRef:
			return boolDatum(true)
		default:
			return boolDatum(false)
		}
	}
	t["symbol"] = func(vm *VM, scope *Scope, args []Datum) Datum { return Symbol(arg(args, 0).ToStr()) }
	t["value"] = func(vm *VM, scope *Scope, args []Datum) Datum { return parseValue(arg(args, 0).ToStr()) }
	t["script"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		a := arg(args, 0)
		if vm.ScriptResolver == nil {
			return Void()
		}
		if s, ok := vm.ScriptResolver.ResolveScriptByName(a.ToStr()); ok {
			return s.RefDatum()
		}
		return Void()
	}
	t["callancestor"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		if len(args) < 2 {
			return Void()
		}
		return vm.CallAncestor(args[0].ToStr(), args[1], args[2:])
	}
}

func kindPredicate(k Kind) builtinFunc {
	return func(vm *VM, scope *Scope, args []Datum) Datum {
		return boolDatum(arg(args, 0).Kind() == k)
	}
}
