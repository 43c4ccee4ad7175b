// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import "testing"

func TestParseValueScalars(t *testing.T) {
	tests := []struct {
		in       string
		wantKind Kind
	}{
		{"3", KindInt},
		{"-12", KindInt},
		{"3.14", KindFloat},
		{"#foo", KindSymbol},
		{`"hello"`, KindStr},
		{"VOID", KindVoid},
		{"TRUE", KindInt},
		{"FALSE", KindInt},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseValue(tt.in)
			if got.Kind() != tt.wantKind {
				t.Fatalf("parseValue(%q).Kind() = %v, want %v", tt.in, got.Kind(), tt.wantKind)
			}
		})
	}
}

func TestParseValueTrailingGarbageReturnsLongestPrefix(t *testing.T) {
	got := parseValue("3 apples")
	if got.Kind() != KindInt || got.Int32() != 3 {
		t.Fatalf("got %v, want integer 3", got)
	}
}

func TestParseValueTrueFalseNumericValues(t *testing.T) {
	if v := parseValue("TRUE"); v.Int32() != 1 {
		t.Fatalf("TRUE = %v, want 1", v)
	}
	if v := parseValue("FALSE"); v.Int32() != 0 {
		t.Fatalf("FALSE = %v, want 0", v)
	}
}

func TestParseValueEmptyStringReturnsItself(t *testing.T) {
	got := parseValue("")
	if got.Kind() != KindStr || got.ToStr() != "" {
		t.Fatalf("parseValue(\"\") = %v, want empty string", got)
	}
}

func TestParseValueList(t *testing.T) {
	got := parseValue("[1,2,3]")
	if got.Kind() != KindList {
		t.Fatalf("got kind %v, want list", got.Kind())
	}
	items := got.Items()
	if len(items) != 3 || items[0].Int32() != 1 || items[2].Int32() != 3 {
		t.Fatalf("got %v, want [1 2 3]", items)
	}
}

func TestParseValueEmptyList(t *testing.T) {
	got := parseValue("[]")
	if got.Kind() != KindList || len(got.Items()) != 0 {
		t.Fatalf("got %v, want empty list", got)
	}
}

func TestParseValueEmptyPropList(t *testing.T) {
	got := parseValue("[:]")
	if got.Kind() != KindPropList || len(got.PropEntries()) != 0 {
		t.Fatalf("got %v, want empty proplist", got)
	}
}

func TestParseValuePropList(t *testing.T) {
	got := parseValue("[a: 1, b: 2]")
	if got.Kind() != KindPropList {
		t.Fatalf("got kind %v, want propList", got.Kind())
	}
	v, ok := got.PropGet("a")
	if !ok || v.Int32() != 1 {
		t.Fatalf("PropGet(a) = %v, %v, want 1, true", v, ok)
	}
	v, ok = got.PropGet("b")
	if !ok || v.Int32() != 2 {
		t.Fatalf("PropGet(b) = %v, %v, want 2, true", v, ok)
	}
}

func TestParseValueNestedList(t *testing.T) {
	got := parseValue("[1, [2, 3]]")
	items := got.Items()
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	inner := items[1]
	if inner.Kind() != KindList || len(inner.Items()) != 2 {
		t.Fatalf("inner = %v, want a 2-element list", inner)
	}
}

func TestParseValueBareIdentifierBecomesSymbol(t *testing.T) {
	got := parseValue("abc")
	if got.Kind() != KindSymbol || got.RawString() != "abc" {
		t.Fatalf("got %v, want symbol abc", got)
	}
}
