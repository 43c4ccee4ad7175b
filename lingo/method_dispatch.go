// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import "strings"

// dispatchMethod implements OBJ_CALL's target-variant resolution.
func (vm *VM) dispatchMethod(scope *Scope, target Datum, method string, args []Datum, wantResult bool) Datum {
	switch target.Kind() {
	case KindList, KindPropList, KindStr, KindPoint, KindRect, KindImageRef:
		return vm.dispatchBuiltinCollection(scope, target, method, args)
	case KindScriptRef:
		if strings.EqualFold(method, "new") {
			return vm.instantiateScriptRef(target, args)
		}
		return Void()
	case KindXtraInstance:
		if vm.Providers.Xtra == nil {
			return Void()
		}
		r, err := vm.Providers.Xtra.CallMethod(target, method, args)
		if err != nil {
			return Void()
		}
		return r
	case KindScriptInstance:
		return vm.dispatchScriptInstance(scope, target, method, args, wantResult)
	default:
		return Void()
	}
}

// dispatchScriptInstance implements the three-step resolution order
// for the central ScriptInstance case: built-in meta methods first,
// then the ancestor-chain handler walk (me preserved as the original
// receiver throughout), then ancestor property fallback.
func (vm *VM) dispatchScriptInstance(scope *Scope, target Datum, method string, args []Datum, wantResult bool) Datum {
	if r, handled := vm.instanceMetaMethod(target, method, args); handled {
		return r
	}

	obj := target.Instance()
	depth := 0
	cur := obj
	for cur != nil && depth < vm.ancestorDepthLimit {
		if script, handler, ok := vm.resolveInstanceScript(cur); ok {
			if h := script.FindHandler(method); h != nil {
				_ = handler
				return vm.CallHandler(script, h, target, args)
			}
		}
		if cur.Ancestor.Kind() != KindScriptInstance {
			break
		}
		cur = cur.Ancestor.Instance()
		depth++
	}
	if depth >= vm.ancestorDepthLimit {
		return Void()
	}

	// No handler found anywhere in the chain: fall back to the
	// property of that name.
	cur = obj
	depth = 0
	for cur != nil && depth < vm.ancestorDepthLimit {
		if v, ok := cur.Properties[strings.ToLower(method)]; ok {
			return v
		}
		if cur.Ancestor.Kind() != KindScriptInstance {
			break
		}
		cur = cur.Ancestor.Instance()
		depth++
	}
	return Void()
}

// resolveInstanceScript finds the compiled Script backing an instance,
// preferring the precise __scriptRef__ link and falling back to
// ScriptID lookup for legacy instances without one.
func (vm *VM) resolveInstanceScript(obj *ScriptInstanceObj) (*Script, *Handler, bool) {
	if obj.ScriptRef.Kind() == KindScriptRef {
		cl, mem := obj.ScriptRef.ScriptRefParts()
		if vm.ScriptResolver != nil {
			if s, ok := vm.ScriptResolver.ResolveScript(cl, mem); ok {
				return s, nil, true
			}
		}
	}
	if vm.Providers.Cast != nil {
		if s, h, ok := vm.Providers.Cast.FindHandlerInScript(0, int32(obj.ScriptID), ""); ok {
			return s, h, true
		}
	}
	return nil, nil, false
}

// instanceMetaMethod implements the built-in property/meta methods
// that must be matched before Lingo-defined handlers:
// setAt, setaProp, setProp, getAt, getaProp, getProp, addProp,
// deleteProp, count, ilk, addAt.
func (vm *VM) instanceMetaMethod(target Datum, method string, args []Datum) (Datum, bool) {
	obj := target.Instance()
	switch strings.ToLower(method) {
	case "setaprop":
		if len(args) >= 2 {
			vm.setAncestorAwareProp(obj, args[0].ToStr(), args[1])
			return Void(), true
		}
	case "setprop":
		switch len(args) {
		case 2:
			vm.setAncestorAwareProp(obj, args[0].ToStr(), args[1])
			return Void(), true
		case 3:
			// 3-arg form: the named property must itself be a
			// List/PropList; perform nested indexing into it.
			cur := obj.GetProperty(args[0].ToStr())
			switch cur.Kind() {
			case KindList:
				cur.ListSetAt(int(args[1].ToInt().Int32()), args[2])
			case KindPropList:
				cur.PropSet(args[1].ToStr(), args[2])
			}
			return Void(), true
		}
	case "setat":
		if len(args) >= 2 {
			vm.setAncestorAwareProp(obj, args[0].ToStr(), args[1])
			return Void(), true
		}
	case "getaprop", "getprop":
		if len(args) >= 1 {
			return obj.GetProperty(args[0].ToStr()), true
		}
	case "getat":
		if len(args) >= 1 {
			return obj.GetProperty(args[0].ToStr()), true
		}
	case "addprop":
		if len(args) >= 2 {
			obj.SetProperty(args[0].ToStr(), args[1])
			return Void(), true
		}
	case "deleteprop":
		if len(args) >= 1 {
			delete(obj.Properties, strings.ToLower(args[0].ToStr()))
			return Void(), true
		}
	case "count":
		return Int(int32(len(obj.Properties))), true
	case "ilk":
		return Symbol(target.Ilk()), true
	case "addat":
		// addAt(1, classList) is the reserved ancestor-construction
		// convention: build the ancestor chain by instantiating each
		// named class in order.
		if len(args) >= 2 {
			if pos := args[0].ToInt().Int32(); pos == 1 {
				vm.buildAncestorChain(obj, args[1])
				return Void(), true
			}
		}
	}
	return Void(), false
}

// setAncestorAwareProp routes a write to the reserved "ancestor" key
// (matched case-insensitively) into the instance's Ancestor link and
// stores every other key as an ordinary property.
func (vm *VM) setAncestorAwareProp(obj *ScriptInstanceObj, key string, v Datum) {
	if strings.EqualFold(key, "ancestor") {
		obj.Ancestor = v
		return
	}
	obj.SetProperty(key, v)
}

// buildAncestorChain evaluates each class name in order, instantiates
// it, and links it as the ancestor of the previous instance, storing
// the head of the chain.
func (vm *VM) buildAncestorChain(obj *ScriptInstanceObj, classList Datum) {
	names := classList.Items()
	if len(names) == 0 {
		return
	}
	var head, tail Datum
	for _, n := range names {
		inst := vm.instantiateByName(n.ToStr(), nil)
		if head.IsVoid() {
			head = inst
			tail = inst
			continue
		}
		tailObj := tail.Instance()
		if tailObj != nil {
			tailObj.Ancestor = inst
		}
		tail = inst
	}
	obj.Ancestor = head
}

// CallAncestor implements the `callAncestor(#handler, me, args...)`
// built-in: finds the current Scope's script within the me chain,
// then calls handler on the next ancestor, with me preserved. Nested
// calls advance one link at a time based on the currently-executing
// script, not the lexical identity of me.
func (vm *VM) CallAncestor(handlerName string, me Datum, args []Datum) Datum {
	if me.Kind() != KindScriptInstance {
		return Void()
	}
	curScope := vm.currentScope()
	var executingScript *Script
	if curScope != nil {
		executingScript = curScope.Script
	}

	obj := me.Instance()
	depth := 0
	for obj != nil && depth < vm.ancestorDepthLimit {
		script, _, ok := vm.resolveInstanceScript(obj)
		if ok && executingScript != nil && sameScript(script, executingScript) {
			if obj.Ancestor.Kind() != KindScriptInstance {
				return Void()
			}
			nextObj := obj.Ancestor.Instance()
			nextScript, _, ok2 := vm.resolveInstanceScript(nextObj)
			if !ok2 {
				return Void()
			}
			h := nextScript.FindHandler(handlerName)
			if h == nil {
				return Void()
			}
			return vm.CallHandler(nextScript, h, me, args)
		}
		if obj.Ancestor.Kind() != KindScriptInstance {
			break
		}
		obj = obj.Ancestor.Instance()
		depth++
	}
	return Void()
}

func sameScript(a, b *Script) bool {
	if a == nil || b == nil {
		return false
	}
	return a.CastLib == b.CastLib && a.Member == b.Member
}
