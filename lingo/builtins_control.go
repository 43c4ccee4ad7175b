// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

func registerControlBuiltins(t map[string]builtinFunc) {
	t["point"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		return Point(arg(args, 0).ToInt().Int32(), arg(args, 1).ToInt().Int32())
	}
	t["rect"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		return Rect(
			arg(args, 0).ToInt().Int32(), arg(args, 1).ToInt().Int32(),
			arg(args, 2).ToInt().Int32(), arg(args, 3).ToInt().Int32(),
		)
	}
	t["color"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		return Color(arg(args, 0).ToInt().Int32(), arg(args, 1).ToInt().Int32(), arg(args, 2).ToInt().Int32())
	}
	t["image"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		w := int(arg(args, 0).ToInt().Int32())
		h := int(arg(args, 1).ToInt().Int32())
		depth := int(arg(args, 2).ToInt().Int32())
		if depth == 0 {
			depth = 32
		}
		buf := &ImageBuffer{Width: w, Height: h, Depth: depth, Pixels: make([]byte, w*h*(depth/8))}
		return ImageRef(buf)
	}
	t["new"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		if len(args) == 0 {
			return Void()
		}
		first := args[0]
		rest := args[1:]
		switch first.Kind() {
		case KindScriptRef:
			return vm.instantiateScriptRef(first, rest)
		case KindSymbol, KindStr:
			if vm.Providers.Xtra != nil {
				if inst, err := vm.Providers.Xtra.NewInstance(first.ToStr(), rest); err == nil {
					return inst
				}
			}
			return vm.instantiateByName(first.ToStr(), rest)
		default:
			return Void()
		}
	}

	t["return"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		scope.ReturnValue = arg(args, 0)
		scope.Returned = true
		return Void()
	}
	t["halt"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		scope.Returned = true
		vm.errorState = true
		return Void()
	}
	t["abort"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		scope.Returned = true
		return Void()
	}
	t["nothing"] = func(vm *VM, scope *Scope, args []Datum) Datum { return Void() }
	t["param"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		idx := int(arg(args, 0).ToInt().Int32()) - 1
		if idx < 0 || idx >= len(scope.Args) {
			return Void()
		}
		return scope.Args[idx]
	}
	t["go"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		if vm.Providers.Movie == nil || len(args) == 0 {
			return Void()
		}
		target := args[0]
		if target.Kind() == KindInt {
			vm.Providers.Movie.GoToFrame(target.Int32())
		} else {
			vm.Providers.Movie.GoToLabel(target.ToStr())
		}
		return Void()
	}
}
