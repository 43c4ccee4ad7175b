// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import (
	"math"
	"math/rand"
	"strings"
)

// builtinFunc is a registered EXT_CALL target that never needs
// per-call allocation beyond its args slice.
type builtinFunc func(vm *VM, scope *Scope, args []Datum) Datum

var builtinTable map[string]builtinFunc

func init() {
	builtinTable = make(map[string]builtinFunc)
	registerMathBuiltins(builtinTable)
	registerTypeBuiltins(builtinTable)
	registerCollectionBuiltins(builtinTable)
	registerStringBuiltins(builtinTable)
	registerControlBuiltins(builtinTable)
	registerCastBuiltins(builtinTable)
}

// lookupBuiltin resolves an EXT_CALL name against the registry,
// case-insensitively (Lingo identifiers are case-insensitive).
func lookupBuiltin(name string) (builtinFunc, bool) {
	fn, ok := builtinTable[strings.ToLower(name)]
	return fn, ok
}

func registerMathBuiltins(t map[string]builtinFunc) {
	unary := func(f func(float64) float64) builtinFunc {
		return func(vm *VM, scope *Scope, args []Datum) Datum {
			return Float(f(arg(args, 0).ToFloat().Float64()))
		}
	}
	t["abs"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		a := arg(args, 0)
		if a.Kind() == KindFloat {
			return Float(math.Abs(a.Float64()))
		}
		n := a.ToInt().Int32()
		if n < 0 {
			n = -n
		}
		return Int(n)
	}
	t["sqrt"] = unary(math.Sqrt)
	t["sin"] = unary(math.Sin)
	t["cos"] = unary(math.Cos)
	t["tan"] = unary(math.Tan)
	t["atan"] = unary(math.Atan)
	t["exp"] = unary(math.Exp)
	t["log"] = unary(math.Log)
	t["power"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		return Float(math.Pow(arg(args, 0).ToFloat().Float64(), arg(args, 1).ToFloat().Float64()))
	}
	t["pi"] = func(vm *VM, scope *Scope, args []Datum) Datum { return Float(math.Pi) }
	t["random"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		n := arg(args, 0).ToInt().Int32()
		if n <= 0 {
			return Int(0)
		}
		return Int(rand.Int31n(n) + 1)
	}
	t["integer"] = func(vm *VM, scope *Scope, args []Datum) Datum { return arg(args, 0).ToInt() }
	t["float"] = func(vm *VM, scope *Scope, args []Datum) Datum { return arg(args, 0).ToFloat() }
	t["min"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		return reduceArgs(args, func(best, cur Datum) Datum {
			if Compare(cur, best) < 0 {
				return cur
			}
			return best
		})
	}
	t["max"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		return reduceArgs(args, func(best, cur Datum) Datum {
			if Compare(cur, best) > 0 {
				return cur
			}
			return best
		})
	}
}

func reduceArgs(args []Datum, f func(best, cur Datum) Datum) Datum {
	if len(args) == 0 {
		return Void()
	}
	// A single list argument is treated like the varargs list it
	// collapsed from (min([1,2,3]) behaves like min(1,2,3)).
	items := args
	if len(args) == 1 && args[0].Kind() == KindList {
		items = args[0].Items()
	}
	if len(items) == 0 {
		return Void()
	}
	best := items[0]
	for _, cur := range items[1:] {
		best = f(best, cur)
	}
	return best
}
