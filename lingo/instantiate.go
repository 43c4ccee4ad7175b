// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

// instantiateScriptRef builds a new ScriptInstance from a ScriptRef
// Datum, the shared contract between NEW_OBJ and `ScriptRef.new(...)`
// method dispatch.
func (vm *VM) instantiateScriptRef(ref Datum, args []Datum) Datum {
	cl, mem := ref.ScriptRefParts()
	if vm.ScriptResolver == nil {
		return Void()
	}
	script, ok := vm.ScriptResolver.ResolveScript(cl, mem)
	if !ok {
		return Void()
	}
	return vm.instantiate(script, args)
}

// instantiateByName resolves a script by cast-member name (the form
// used inside an ancestor class-list) and instantiates it.
func (vm *VM) instantiateByName(name string, args []Datum) Datum {
	if vm.ScriptResolver == nil {
		return Void()
	}
	script, ok := vm.ScriptResolver.ResolveScriptByName(name)
	if !ok {
		return Void()
	}
	return vm.instantiate(script, args)
}

// instantiate allocates a new ScriptInstance, pre-initialises declared
// properties to Void, always populates __scriptRef__ so ScriptID
// ambiguity never arises, and calls the script's `new` handler if
// present.
func (vm *VM) instantiate(script *Script, args []Datum) Datum {
	obj := vm.newInstanceObj()
	obj.ScriptRef = script.RefDatum()
	obj.ScriptID = obj.ID
	for _, nameID := range script.Props {
		name := script.Names.Resolve(nameID)
		if name != "" {
			obj.SetProperty(name, Void())
		}
	}
	instance := ScriptInstance(obj)
	if h := script.FindHandler("new"); h != nil {
		result := vm.CallHandler(script, h, instance, args)
		if result.Kind() == KindScriptInstance {
			return result
		}
	}
	return instance
}
