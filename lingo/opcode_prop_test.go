// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import "testing"

type fakeMovieProvider struct {
	props map[string]Datum
	delim string
}

func newFakeMovieProvider() *fakeMovieProvider {
	return &fakeMovieProvider{props: make(map[string]Datum)}
}

func (f *fakeMovieProvider) GetMovieProp(name string) (Datum, bool) {
	v, ok := f.props[name]
	return v, ok
}
func (f *fakeMovieProvider) SetMovieProp(name string, value Datum) bool {
	f.props[name] = value
	return true
}
func (f *fakeMovieProvider) ItemDelimiter() string     { return f.delim }
func (f *fakeMovieProvider) SetItemDelimiter(d string) { f.delim = d }
func (f *fakeMovieProvider) GoToFrame(n int32)         {}
func (f *fakeMovieProvider) GoToLabel(s string)        {}

type fakeSpriteProvider struct {
	props map[int32]map[string]Datum
}

func (f *fakeSpriteProvider) GetSpriteProp(channel int32, name string) (Datum, bool) {
	m, ok := f.props[channel]
	if !ok {
		return Void(), false
	}
	v, ok := m[name]
	return v, ok
}
func (f *fakeSpriteProvider) SetSpriteProp(channel int32, name string, value Datum) bool {
	if f.props == nil {
		f.props = make(map[int32]map[string]Datum)
	}
	m, ok := f.props[channel]
	if !ok {
		m = make(map[string]Datum)
		f.props[channel] = m
	}
	m[name] = value
	return true
}

func TestOpGetSetPropOnReceiver(t *testing.T) {
	vm := New(Providers{}, nil)
	obj := vm.newInstanceObj()
	scope := &Scope{Me: ScriptInstance(obj)}

	scope.push(Int(7))
	scope.push(Str("score"))
	vm.opSetProp(scope)

	scope.push(Str("score"))
	vm.opGetProp(scope)
	if got := scope.pop(); got.Int32() != 7 {
		t.Fatalf("getProp(score) = %v, want 7", got)
	}
}

func TestOpGetSetMovieProp(t *testing.T) {
	movie := newFakeMovieProvider()
	vm := New(Providers{Movie: movie}, nil)
	scope := &Scope{}

	scope.push(Str("hello"))
	scope.push(Str("title"))
	vm.opSetMovieProp(scope)

	scope.push(Str("title"))
	vm.opGetMovieProp(scope)
	if got := scope.pop(); got.ToStr() != "hello" {
		t.Fatalf("getMovieProp(title) = %v, want \"hello\"", got)
	}
}

func TestOpGetSetProp_Sprite(t *testing.T) {
	sprite := &fakeSpriteProvider{}
	vm := New(Providers{Sprite: sprite}, nil)
	scope := &Scope{}

	// SET(sprite) pops propId, then channel, then value: push in the
	// reverse order (value, channel, propId).
	scope.push(Int(50)) // value
	scope.push(Int(3))  // channel
	scope.push(Int(0))  // propId locH
	vm.opSet(scope, Instruction{Arg: int32(PropTypeSprite)})

	scope.push(Int(3)) // channel
	scope.push(Int(0)) // propId locH
	vm.opGet(scope, Instruction{Arg: int32(PropTypeSprite)})
	if got := scope.pop(); got.Int32() != 50 {
		t.Fatalf("GET(sprite, locH) = %v, want 50", got)
	}
}

func TestOpGetChunkCount(t *testing.T) {
	vm := New(Providers{}, nil)
	scope := &Scope{}
	scope.push(Str("the quick brown fox"))
	scope.push(Int(ChunkCountWord))
	vm.opGet(scope, Instruction{Arg: int32(PropTypeChunkCount)})
	if got := scope.pop(); got.Int32() != 4 {
		t.Fatalf("GET(chunkCount, word) = %v, want 4", got)
	}
}

func TestOpGetMovieLastItemChunk(t *testing.T) {
	vm := New(Providers{}, nil)
	scope := &Scope{}
	scope.push(Str("a,b,c"))
	scope.push(Int(movieLastItemChunk))
	vm.opGet(scope, Instruction{Arg: int32(PropTypeMovie)})
	if got := scope.pop(); got.ToStr() != "c" {
		t.Fatalf("GET(movie, lastItemChunk) = %v, want \"c\"", got)
	}
}

func TestOpGetObjPropScriptInstanceAncestorFallback(t *testing.T) {
	vm := New(Providers{}, nil)
	parent := vm.newInstanceObj()
	parent.SetProperty("shared", Int(42))
	child := vm.newInstanceObj()
	child.Ancestor = ScriptInstance(parent)

	got := vm.getObjProperty(ScriptInstance(child), "shared")
	if got.Int32() != 42 {
		t.Fatalf("getObjProperty walked ancestor = %v, want 42", got)
	}
}
