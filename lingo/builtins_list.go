// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

// registerCollectionBuiltins exposes the List/PropList method table as
// global functions too: Lingo allows both `myList.count()` and
// `count(myList)` spellings for the same operation.
func registerCollectionBuiltins(t map[string]builtinFunc) {
	methodBuiltin := func(method string) builtinFunc {
		return func(vm *VM, scope *Scope, args []Datum) Datum {
			if len(args) == 0 {
				return Void()
			}
			target := args[0]
			rest := args[1:]
			if target.Kind() == KindPropList {
				return dispatchPropListMethod(&target, method, rest)
			}
			return dispatchListMethod(&target, method, rest)
		}
	}
	for _, name := range []string{
		"count", "getat", "setat", "addat", "append", "getone", "getlast",
		"deleteone", "deleteat", "sort", "findpos", "duplicate",
	} {
		t[name] = methodBuiltin(name)
	}
	t["getprop"] = methodBuiltin("getprop")
	t["setprop"] = methodBuiltin("setprop")
	t["addprop"] = methodBuiltin("addprop")
	t["deleteprop"] = methodBuiltin("deleteprop")
	t["getaprop"] = methodBuiltin("getaprop")
	t["setaprop"] = methodBuiltin("setaprop")
	t["getpropat"] = methodBuiltin("getpropat")

	t["list"] = func(vm *VM, scope *Scope, args []Datum) Datum { return List(args...) }
}
