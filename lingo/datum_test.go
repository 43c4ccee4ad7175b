// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import "testing"

func TestToIntPreservesUnparseableString(t *testing.T) {
	tests := []struct {
		in   Datum
		want Datum
	}{
		{Str("42"), Int(42)},
		{Str("42abc"), Int(42)},
		{Str("foo"), Str("foo")},
		{Float(3.9), Int(3)},
		{Void(), Int(0)},
	}
	for _, tt := range tests {
		t.Run(tt.in.ToStr(), func(t *testing.T) {
			got := tt.in.ToInt()
			if got.Kind() != tt.want.Kind() {
				t.Fatalf("kind = %v, want %v", got.Kind(), tt.want.Kind())
			}
			if got.Kind() == KindInt && got.Int32() != tt.want.Int32() {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if got.Kind() == KindStr && got.ToStr() != tt.want.ToStr() {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToStrFormatsFloatsLikeLingo(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.0, "3.0"},
		{3.5, "3.5"},
		{-2.0, "-2.0"},
	}
	for _, tt := range tests {
		got := Float(tt.in).ToStr()
		if got != tt.want {
			t.Fatalf("ToStr(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEqualCrossTypeNumeric(t *testing.T) {
	if !Equal(Int(3), Float(3.0)) {
		t.Fatal("expected integer 3 to equal float 3.0")
	}
	if !Equal(Void(), Int(0)) {
		t.Fatal("expected void to equal 0")
	}
	if Equal(Int(1), Str("1")) {
		t.Fatal("expected integer 1 to not equal string \"1\"")
	}
}

func TestEqualStringCaseInsensitive(t *testing.T) {
	if !Equal(Str("Hello"), Str("hello")) {
		t.Fatal("expected case-insensitive string equality")
	}
	if !Equal(Symbol("foo"), Str("FOO")) {
		t.Fatal("expected symbol/string cross-kind equality")
	}
}

func TestCompareOrdersNumericAndString(t *testing.T) {
	if Compare(Int(1), Int(2)) >= 0 {
		t.Fatal("expected 1 < 2")
	}
	if Compare(Str("b"), Str("a")) <= 0 {
		t.Fatal("expected \"b\" > \"a\"")
	}
}

func TestAddOverloads(t *testing.T) {
	r, err := Add(Int(2), Int(3))
	if err != nil || r.Int32() != 5 {
		t.Fatalf("Add(2,3) = %v, %v", r, err)
	}
	r, err = Add(Str("foo"), Int(1))
	if err != nil || r.ToStr() != "foo1" {
		t.Fatalf("Add(\"foo\",1) = %v, %v", r, err)
	}
	r, err = Add(Point(1, 2), Point(3, 4))
	if err != nil {
		t.Fatalf("Add(point,point) error: %v", err)
	}
	x, y := r.PointXY()
	if x != 4 || y != 6 {
		t.Fatalf("Add(point,point) = (%d,%d), want (4,6)", x, y)
	}
}

func TestDivByZeroReturnsError(t *testing.T) {
	if _, err := Div(Int(1), Int(0)); err != ErrDivisionByZero {
		t.Fatalf("got err %v, want ErrDivisionByZero", err)
	}
	if _, err := Mod(Int(1), Int(0)); err != ErrModuloByZero {
		t.Fatalf("got err %v, want ErrModuloByZero", err)
	}
}

func TestPropListPreservesInsertionOrderAndLookup(t *testing.T) {
	pl := NewPropList()
	pl.PropAdd("b", Int(2))
	pl.PropAdd("a", Int(1))
	if v, ok := pl.PropGet("A"); !ok || v.Int32() != 1 {
		t.Fatalf("PropGet(\"A\") = %v, %v, want 1, true", v, ok)
	}
	entries := pl.PropEntries()
	if len(entries) != 2 || entries[0].Key != "b" || entries[1].Key != "a" {
		t.Fatalf("entries out of order: %+v", entries)
	}
	pl.PropSet("b", Int(20))
	if v, _ := pl.PropGet("b"); v.Int32() != 20 {
		t.Fatalf("PropSet did not overwrite: %v", v)
	}
}

func TestListAddAtAndDeleteAt(t *testing.T) {
	l := List(Int(1), Int(2), Int(3))
	l.ListAddAt(2, Int(99))
	items := l.Items()
	if len(items) != 4 || items[1].Int32() != 99 {
		t.Fatalf("got %v, want [1 99 2 3]", items)
	}
	l.ListDeleteAt(1)
	items = l.Items()
	if len(items) != 3 || items[0].Int32() != 99 {
		t.Fatalf("got %v, want [99 2 3]", items)
	}
}

func TestIlkNames(t *testing.T) {
	tests := []struct {
		d    Datum
		want string
	}{
		{Int(1), "integer"},
		{Float(1.0), "float"},
		{Str("x"), "string"},
		{Symbol("x"), "symbol"},
		{Void(), "void"},
		{List(), "linearList"},
		{NewPropList(), "propList"},
		{Point(0, 0), "point"},
	}
	for _, tt := range tests {
		if got := tt.d.Ilk(); got != tt.want {
			t.Fatalf("Ilk() = %q, want %q", got, tt.want)
		}
	}
}
