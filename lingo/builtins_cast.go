// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

func registerCastBuiltins(t map[string]builtinFunc) {
	t["castlib"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		a := arg(args, 0)
		if a.Kind() == KindInt {
			return CastLibRef(a.Int32())
		}
		if vm.Providers.Cast == nil {
			return Void()
		}
		// Resolution of a castLib by name is host-specific; without a
		// numeric index there is nothing more the VM itself can do.
		return Void()
	}
	t["member"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		if vm.Providers.Cast == nil {
			return Void()
		}
		slotArg := arg(args, 0)
		castLib := arg(args, 1).ToInt().Int32()
		if castLib == 0 {
			castLib = 1
		}
		if slotArg.Kind() == KindStr || slotArg.Kind() == KindSymbol {
			if v, ok := vm.Providers.Cast.GetMemberByName(castLib, slotArg.ToStr()); ok {
				return v
			}
			return Void()
		}
		if v, ok := vm.Providers.Cast.GetMember(castLib, slotArg.ToInt().Int32()); ok {
			return v
		}
		return Void()
	}
	t["field"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		if vm.Providers.Cast == nil || len(args) == 0 {
			return Void()
		}
		member := t["member"](vm, scope, args)
		if s, ok := vm.Providers.Cast.GetFieldValue(member); ok {
			return Str(s)
		}
		return Void()
	}

	t["movetofront"] = func(vm *VM, scope *Scope, args []Datum) Datum { return Void() }
	t["movetoback"] = func(vm *VM, scope *Scope, args []Datum) Datum { return Void() }
	t["puppettempo"] = func(vm *VM, scope *Scope, args []Datum) Datum { return Void() }

	t["preloadnetthing"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		if vm.Providers.Network == nil {
			return Int(0)
		}
		return Int(int32(vm.Providers.Network.PreloadNetThing(arg(args, 0).ToStr())))
	}
	t["postnettext"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		if vm.Providers.Network == nil {
			return Int(0)
		}
		return Int(int32(vm.Providers.Network.PostNetText(arg(args, 0).ToStr(), arg(args, 1).ToStr())))
	}
	t["netdone"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		if vm.Providers.Network == nil {
			return boolDatum(true)
		}
		return boolDatum(vm.Providers.Network.NetDone(TaskID(arg(args, 0).ToInt().Int32())))
	}
	t["nettextresult"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		if vm.Providers.Network == nil {
			return Str("")
		}
		return Str(vm.Providers.Network.NetTextResult(TaskID(arg(args, 0).ToInt().Int32())))
	}
	t["neterror"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		if vm.Providers.Network == nil {
			return Str("")
		}
		return Str(vm.Providers.Network.NetError(TaskID(arg(args, 0).ToInt().Int32())))
	}

	t["getparamvalue"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		if vm.Providers.ExtParam == nil {
			return Void()
		}
		if v, ok := vm.Providers.ExtParam.GetParamValue(arg(args, 0).ToStr()); ok {
			return v
		}
		return Void()
	}
}
