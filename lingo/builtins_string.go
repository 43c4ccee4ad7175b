// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import "strings"

func registerStringBuiltins(t map[string]builtinFunc) {
	t["string"] = func(vm *VM, scope *Scope, args []Datum) Datum { return Str(arg(args, 0).ToStr()) }
	t["length"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		return Int(int32(len([]rune(arg(args, 0).ToStr()))))
	}
	t["chars"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		runes := []rune(arg(args, 0).ToStr())
		first := int(arg(args, 1).ToInt().Int32())
		last := int(arg(args, 2).ToInt().Int32())
		if first < 1 {
			first = 1
		}
		if last > len(runes) {
			last = len(runes)
		}
		if last < first {
			return Str("")
		}
		return Str(string(runes[first-1 : last]))
	}
	t["chartonum"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		s := arg(args, 0).ToStr()
		if s == "" {
			return Int(0)
		}
		return Int(int32([]rune(s)[0]))
	}
	t["numtochar"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		return Str(string(rune(arg(args, 0).ToInt().Int32())))
	}
	t["offset"] = func(vm *VM, scope *Scope, args []Datum) Datum {
		needle := strings.ToLower(arg(args, 0).ToStr())
		haystack := strings.ToLower(arg(args, 1).ToStr())
		idx := strings.Index(haystack, needle)
		if idx < 0 {
			return Int(0)
		}
		return Int(int32(len([]rune(haystack[:idx])) + 1))
	}
}
