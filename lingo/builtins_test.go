// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import (
	"math"
	"testing"
)

func callBuiltin(t *testing.T, name string, args ...Datum) Datum {
	t.Helper()
	fn, ok := lookupBuiltin(name)
	if !ok {
		t.Fatalf("builtin %q not registered", name)
	}
	vm := New(Providers{}, nil)
	return fn(vm, nil, args)
}

func TestMathBuiltins(t *testing.T) {
	if got := callBuiltin(t, "abs", Int(-5)); got.Int32() != 5 {
		t.Fatalf("abs(-5) = %v, want 5", got)
	}
	if got := callBuiltin(t, "ABS", Float(-2.5)); got.Float64() != 2.5 {
		t.Fatalf("ABS(-2.5) = %v, want 2.5 (lookup must be case-insensitive)", got)
	}
	if got := callBuiltin(t, "sqrt", Int(9)); got.Float64() != 3 {
		t.Fatalf("sqrt(9) = %v, want 3", got)
	}
	if got := callBuiltin(t, "power", Int(2), Int(10)); got.Float64() != 1024 {
		t.Fatalf("power(2,10) = %v, want 1024", got)
	}
	if got := callBuiltin(t, "pi"); math.Abs(got.Float64()-math.Pi) > 1e-9 {
		t.Fatalf("pi() = %v, want %v", got, math.Pi)
	}
	if got := callBuiltin(t, "min", Int(3), Int(1), Int(2)); got.Int32() != 1 {
		t.Fatalf("min(3,1,2) = %v, want 1", got)
	}
	if got := callBuiltin(t, "max", List(Int(3), Int(1), Int(9))); got.Int32() != 9 {
		t.Fatalf("max([3,1,9]) = %v, want 9 (single-list varargs collapse)", got)
	}
}

func TestStringBuiltins(t *testing.T) {
	if got := callBuiltin(t, "length", Str("hello")); got.Int32() != 5 {
		t.Fatalf("length(\"hello\") = %v, want 5", got)
	}
	if got := callBuiltin(t, "chars", Str("hello"), Int(2), Int(4)); got.ToStr() != "ell" {
		t.Fatalf("chars(\"hello\",2,4) = %v, want \"ell\"", got)
	}
	if got := callBuiltin(t, "chartonum", Str("A")); got.Int32() != 65 {
		t.Fatalf("chartoNum(\"A\") = %v, want 65", got)
	}
	if got := callBuiltin(t, "numtochar", Int(65)); got.ToStr() != "A" {
		t.Fatalf("numToChar(65) = %v, want \"A\"", got)
	}
	if got := callBuiltin(t, "offset", Str("lo"), Str("hello world")); got.Int32() != 4 {
		t.Fatalf("offset(\"lo\",\"hello world\") = %v, want 4", got)
	}
}

func TestTypeBuiltins(t *testing.T) {
	if got := callBuiltin(t, "integerp", Int(3)); got.Int32() != 1 {
		t.Fatalf("integerp(3) = %v, want true", got)
	}
	if got := callBuiltin(t, "integerp", Str("3")); got.Int32() != 0 {
		t.Fatalf("integerp(\"3\") = %v, want false", got)
	}
	if got := callBuiltin(t, "listp", List()); got.Int32() != 1 {
		t.Fatalf("listp([]) = %v, want true", got)
	}
	if got := callBuiltin(t, "listp", NewPropList()); got.Int32() != 1 {
		t.Fatalf("listp([:]) = %v, want true", got)
	}
	if got := callBuiltin(t, "ilk", Str("x")); got.ToStr() != "string" {
		t.Fatalf("ilk(\"x\") = %v, want #string", got)
	}
	if got := callBuiltin(t, "value", Str("42")); got.Kind() != KindInt || got.Int32() != 42 {
		t.Fatalf("value(\"42\") = %v, want integer 42", got)
	}
}

func TestCollectionBuiltinsMirrorMethodDispatch(t *testing.T) {
	l := List(Int(1), Int(2), Int(3))
	if got := callBuiltin(t, "count", l); got.Int32() != 3 {
		t.Fatalf("count(list) = %v, want 3", got)
	}
	if got := callBuiltin(t, "getat", l, Int(2)); got.Int32() != 2 {
		t.Fatalf("getAt(list,2) = %v, want 2", got)
	}
	constructed := callBuiltin(t, "list", Int(7), Int(8))
	if constructed.Kind() != KindList || len(constructed.Items()) != 2 {
		t.Fatalf("list(7,8) = %v, want a 2-element list", constructed)
	}
}

func TestControlBuiltinsReturnAndParam(t *testing.T) {
	fn, ok := lookupBuiltin("return")
	if !ok {
		t.Fatal("builtin \"return\" not registered")
	}
	vm := New(Providers{}, nil)
	scope := &Scope{}
	fn(vm, scope, []Datum{Int(99)})
	if !scope.Returned || scope.ReturnValue.Int32() != 99 {
		t.Fatalf("return(99) did not set ReturnValue/Returned: %+v", scope)
	}

	paramFn, ok := lookupBuiltin("param")
	if !ok {
		t.Fatal("builtin \"param\" not registered")
	}
	scope2 := &Scope{Args: []Datum{Str("a"), Str("b")}}
	if got := paramFn(vm, scope2, []Datum{Int(1)}); got.ToStr() != "a" {
		t.Fatalf("param(1) = %v, want \"a\"", got)
	}
}
