// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import "strings"

// opGetProp reads a property off the currently executing handler's
// receiver (GET_PROP has no explicit target on the stack; the target
// is implicit in scope.Me).
func (vm *VM) opGetProp(scope *Scope) {
	name := scope.pop().ToStr()
	if scope.Me.Kind() != KindScriptInstance {
		scope.push(Void())
		return
	}
	scope.push(scope.Me.Instance().GetProperty(name))
}

// opSetProp writes a property on the receiver.
func (vm *VM) opSetProp(scope *Scope) {
	name := scope.pop().ToStr()
	v := scope.pop()
	if scope.Me.Kind() != KindScriptInstance {
		return
	}
	vm.setAncestorAwareProp(scope.Me.Instance(), name, v)
}

// opGetMovieProp reads a movie-wide property via the host provider.
func (vm *VM) opGetMovieProp(scope *Scope) {
	name := scope.pop().ToStr()
	if vm.Providers.Movie == nil {
		scope.push(Void())
		return
	}
	if v, ok := vm.Providers.Movie.GetMovieProp(name); ok {
		scope.push(v)
		return
	}
	scope.push(Void())
}

// opSetMovieProp writes a movie-wide property via the host provider.
func (vm *VM) opSetMovieProp(scope *Scope) {
	name := scope.pop().ToStr()
	v := scope.pop()
	if vm.Providers.Movie == nil {
		return
	}
	vm.Providers.Movie.SetMovieProp(name, v)
}

// opGetObjProp reads a property off an explicit target, dispatching on
// the target's kind: CastLibRef, CastMemberRef,
// ScriptInstance (with ancestor-chain fallback), XtraInstance,
// PropList, and ImageRef.
func (vm *VM) opGetObjProp(scope *Scope) {
	name := scope.pop().ToStr()
	target := scope.pop()
	scope.push(vm.getObjProperty(target, name))
}

// opSetObjProp writes a property on an explicit target.
func (vm *VM) opSetObjProp(scope *Scope) {
	name := scope.pop().ToStr()
	target := scope.pop()
	v := scope.pop()
	vm.setObjProperty(target, name, v)
}

func (vm *VM) getObjProperty(target Datum, name string) Datum {
	switch target.Kind() {
	case KindCastLibRef:
		if vm.Providers.Cast == nil {
			return Void()
		}
		if v, ok := vm.Providers.Cast.GetCastLibProp(target.CastLibNumber(), name); ok {
			return v
		}
		return Void()
	case KindCastMemberRef:
		if vm.Providers.Cast == nil {
			return Void()
		}
		if v, ok := vm.Providers.Cast.GetMemberProp(target, name); ok {
			return v
		}
		return Void()
	case KindScriptInstance:
		obj := target.Instance()
		cur := obj
		depth := 0
		for cur != nil && depth < vm.ancestorDepthLimit {
			if v, ok := cur.Properties[strings.ToLower(name)]; ok {
				return v
			}
			if cur.Ancestor.Kind() != KindScriptInstance {
				break
			}
			cur = cur.Ancestor.Instance()
			depth++
		}
		return Void()
	case KindXtraInstance:
		if vm.Providers.Xtra == nil {
			return Void()
		}
		v, err := vm.Providers.Xtra.GetProp(target, name)
		if err != nil {
			return Void()
		}
		return v
	case KindPropList:
		t := target
		v, _ := t.PropGet(name)
		return v
	case KindImageRef:
		return dispatchImageMethod(target, name, nil)
	default:
		return Void()
	}
}

func (vm *VM) setObjProperty(target Datum, name string, v Datum) {
	switch target.Kind() {
	case KindCastLibRef:
		if vm.Providers.Cast != nil {
			vm.Providers.Cast.SetCastLibProp(target.CastLibNumber(), name, v)
		}
	case KindCastMemberRef:
		if vm.Providers.Cast != nil {
			vm.Providers.Cast.SetMemberProp(target, name, v)
		}
	case KindScriptInstance:
		vm.setAncestorAwareProp(target.Instance(), name, v)
	case KindXtraInstance:
		if vm.Providers.Xtra != nil {
			vm.Providers.Xtra.SetProp(target, name, v)
		}
	case KindPropList:
		t := target
		t.PropSet(name, v)
	}
}

// opGet implements GET(prop_type): prop_type is the inline argument,
// the property id is popped off the stack. prop_type 0x00 resolves a
// movie property by name, special-casing ids 0x0c-0x0f as "last chunk
// of popped string" reads; 0x01 counts chunks of a popped string; 0x06
// reads a sprite property off a popped channel number; 0x07 reads a
// movie-wide animation property.
func (vm *VM) opGet(scope *Scope, instr Instruction) {
	switch PropType(instr.Arg) {
	case PropTypeMovie:
		propID := scope.pop().Int32()
		scope.push(vm.getMovieTableProp(propID, scope))
	case PropTypeChunkCount:
		propID := scope.pop().Int32()
		s := scope.pop().ToStr()
		parts := splitChunks(s, chunkKindFor(propID), vm.itemDelimiter())
		scope.push(Int(int32(len(parts))))
	case PropTypeSprite:
		propID := scope.pop().Int32()
		channel := scope.pop().Int32()
		name, ok := spriteProps[propID]
		if !ok || vm.Providers.Sprite == nil {
			scope.push(Void())
			return
		}
		if v, ok := vm.Providers.Sprite.GetSpriteProp(channel, name); ok {
			scope.push(v)
			return
		}
		scope.push(Void())
	case PropTypeAnimation:
		propID := scope.pop().Int32()
		name, ok := animationProps[propID]
		if !ok || vm.Providers.Movie == nil {
			scope.push(Void())
			return
		}
		if v, ok := vm.Providers.Movie.GetMovieProp(name); ok {
			scope.push(v)
			return
		}
		scope.push(Void())
	default:
		scope.pop()
		scope.push(Void())
	}
}

// opSet implements SET(prop_type), the write-side counterpart of GET.
func (vm *VM) opSet(scope *Scope, instr Instruction) {
	switch PropType(instr.Arg) {
	case PropTypeMovie:
		propID := scope.pop().Int32()
		v := scope.pop()
		vm.setMovieTableProp(propID, v)
	case PropTypeChunkCount:
		scope.pop()
		scope.pop()
	case PropTypeSprite:
		propID := scope.pop().Int32()
		channel := scope.pop().Int32()
		v := scope.pop()
		if name, ok := spriteProps[propID]; ok && vm.Providers.Sprite != nil {
			vm.Providers.Sprite.SetSpriteProp(channel, name, v)
		}
	case PropTypeAnimation:
		propID := scope.pop().Int32()
		v := scope.pop()
		if name, ok := animationProps[propID]; ok && vm.Providers.Movie != nil {
			vm.Providers.Movie.SetMovieProp(name, v)
		}
	default:
		scope.pop()
		scope.pop()
	}
}

func (vm *VM) getMovieTableProp(propID int32, scope *Scope) Datum {
	switch propID {
	case movieLastItemChunk, movieLastWordChunk, movieLastCharChunk, movieLastLineChunk:
		s := scope.pop().ToStr()
		kind := chunkKindForLast(propID)
		parts := splitChunks(s, kind, vm.itemDelimiter())
		if len(parts) == 0 {
			return Str("")
		}
		return Str(parts[len(parts)-1])
	}
	name, ok := movieProps[propID]
	if !ok || vm.Providers.Movie == nil {
		return Void()
	}
	if v, ok := vm.Providers.Movie.GetMovieProp(name); ok {
		return v
	}
	return Void()
}

func (vm *VM) setMovieTableProp(propID int32, v Datum) {
	name, ok := movieProps[propID]
	if !ok || vm.Providers.Movie == nil {
		return
	}
	vm.Providers.Movie.SetMovieProp(name, v)
}

func chunkKindFor(propID int32) chunkKind {
	switch propID {
	case ChunkCountWord:
		return chunkWord
	case ChunkCountChar:
		return chunkChar
	case ChunkCountLine:
		return chunkLine
	default:
		return chunkItem
	}
}

func chunkKindForLast(propID int32) chunkKind {
	switch propID {
	case movieLastWordChunk:
		return chunkWord
	case movieLastCharChunk:
		return chunkChar
	case movieLastLineChunk:
		return chunkLine
	default:
		return chunkItem
	}
}

