// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import "testing"

func TestDispatchListMethodCountAndGetAt(t *testing.T) {
	vm := New(Providers{}, nil)
	l := List(Int(10), Int(20), Int(30))
	if got := vm.dispatchMethod(nil, l, "count", nil, true); got.Int32() != 3 {
		t.Fatalf("count = %v, want 3", got)
	}
	if got := vm.dispatchMethod(nil, l, "getAt", []Datum{Int(2)}, true); got.Int32() != 20 {
		t.Fatalf("getAt(2) = %v, want 20", got)
	}
}

func TestDispatchPropListGetAndSetProp(t *testing.T) {
	vm := New(Providers{}, nil)
	pl := NewPropList()
	vm.dispatchMethod(nil, pl, "setProp", []Datum{Str("x"), Int(5)}, false)
	got := vm.dispatchMethod(nil, pl, "getProp", []Datum{Str("x")}, true)
	if got.Int32() != 5 {
		t.Fatalf("getProp(x) = %v, want 5", got)
	}
}

func TestDispatchMethodScriptInstanceMetaMethods(t *testing.T) {
	vm := New(Providers{}, nil)
	obj := vm.newInstanceObj()
	target := ScriptInstance(obj)

	vm.dispatchMethod(nil, target, "setProp", []Datum{Str("health"), Int(100)}, false)
	got := vm.dispatchMethod(nil, target, "getProp", []Datum{Str("health")}, true)
	if got.Int32() != 100 {
		t.Fatalf("getProp(health) = %v, want 100", got)
	}

	if got := vm.dispatchMethod(nil, target, "ilk", nil, true); got.ToStr() != "instance" {
		t.Fatalf("ilk() = %v, want instance", got)
	}
}

func TestBuildAncestorChainLinksInOrder(t *testing.T) {
	scriptA := &Script{CastLib: 1, Member: 1, Names: &NameTable{}}
	scriptB := &Script{CastLib: 1, Member: 2, Names: &NameTable{}}
	vm := New(Providers{}, nil)
	vm.ScriptResolver = fakeResolver{byName: map[string]*Script{
		"ClassA": scriptA,
		"ClassB": scriptB,
	}}

	obj := vm.newInstanceObj()
	vm.buildAncestorChain(obj, List(Symbol("ClassA"), Symbol("ClassB")))

	if obj.Ancestor.Kind() != KindScriptInstance {
		t.Fatalf("expected ancestor chain head to be a ScriptInstance")
	}
	head := obj.Ancestor.Instance()
	if head.ScriptRef.Kind() != KindScriptRef {
		t.Fatalf("expected head instance to carry a ScriptRef")
	}
	cl, mem := head.ScriptRef.ScriptRefParts()
	if cl != 1 || mem != 1 {
		t.Fatalf("head ScriptRef = (%d,%d), want (1,1)", cl, mem)
	}
	if head.Ancestor.Kind() != KindScriptInstance {
		t.Fatalf("expected second ancestor link")
	}
}

type fakeResolver struct {
	byName map[string]*Script
}

func (f fakeResolver) ResolveScript(castLib, member int32) (*Script, bool) {
	for _, s := range f.byName {
		if s.CastLib == castLib && s.Member == member {
			return s, true
		}
	}
	return nil, false
}

func (f fakeResolver) ResolveScriptByName(name string) (*Script, bool) {
	s, ok := f.byName[name]
	return s, ok
}
