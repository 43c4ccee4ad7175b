// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import (
	"sort"
	"strings"
)

// dispatchBuiltinCollection implements the fixed per-type method table
// for List/PropList/Str/Point/Rect/ImageRef
func (vm *VM) dispatchBuiltinCollection(scope *Scope, target Datum, method string, args []Datum) Datum {
	switch target.Kind() {
	case KindList:
		return dispatchListMethod(&target, method, args)
	case KindPropList:
		return dispatchPropListMethod(&target, method, args)
	case KindStr:
		return dispatchStringMethod(target, method, args)
	case KindPoint, KindRect:
		return dispatchGeomMethod(target, method, args)
	case KindImageRef:
		return dispatchImageMethod(target, method, args)
	}
	return Void()
}

func arg(args []Datum, i int) Datum {
	if i < 0 || i >= len(args) {
		return Void()
	}
	return args[i]
}

func dispatchListMethod(target *Datum, method string, args []Datum) Datum {
	switch strings.ToLower(method) {
	case "count":
		return Int(int32(len(target.Items())))
	case "getat":
		pos := int(arg(args, 0).ToInt().Int32())
		items := target.Items()
		if pos < 1 || pos > len(items) {
			return Void()
		}
		return items[pos-1]
	case "setat":
		target.ListSetAt(int(arg(args, 0).ToInt().Int32()), arg(args, 1))
		return Void()
	case "addat":
		target.ListAddAt(int(arg(args, 0).ToInt().Int32()), arg(args, 1))
		return Void()
	case "append":
		target.ListAppend(arg(args, 0))
		return Void()
	case "deleteone":
		items := target.Items()
		for i, it := range items {
			if Equal(it, arg(args, 0)) {
				target.ListDeleteAt(i + 1)
				return boolDatum(true)
			}
		}
		return boolDatum(false)
	case "deleteat":
		target.ListDeleteAt(int(arg(args, 0).ToInt().Int32()))
		return Void()
	case "getone":
		items := target.Items()
		for i, it := range items {
			if Equal(it, arg(args, 0)) {
				return Int(int32(i + 1))
			}
		}
		return Int(0)
	case "getlast":
		items := target.Items()
		if len(items) == 0 {
			return Void()
		}
		return items[len(items)-1]
	case "findpos":
		items := target.Items()
		for i, it := range items {
			if Equal(it, arg(args, 0)) {
				return Int(int32(i + 1))
			}
		}
		return Int(0)
	case "sort":
		items := append([]Datum{}, target.Items()...)
		sort.SliceStable(items, func(i, j int) bool { return Compare(items[i], items[j]) < 0 })
		*target = List(items...)
		return Void()
	case "duplicate":
		return List(target.Items()...)
	}
	return Void()
}

func dispatchPropListMethod(target *Datum, method string, args []Datum) Datum {
	switch strings.ToLower(method) {
	case "count":
		return Int(int32(len(target.PropEntries())))
	case "getat":
		key := arg(args, 0)
		if key.Kind() == KindInt {
			entries := target.PropEntries()
			pos := int(key.Int32())
			if pos < 1 || pos > len(entries) {
				return Void()
			}
			return entries[pos-1].Value
		}
		v, _ := target.PropGet(key.ToStr())
		return v
	case "getprop", "getaprop":
		v, _ := target.PropGet(arg(args, 0).ToStr())
		return v
	case "setat", "setprop", "setaprop":
		target.PropSet(arg(args, 0).ToStr(), arg(args, 1))
		return Void()
	case "addprop":
		target.PropAdd(arg(args, 0).ToStr(), arg(args, 1))
		return Void()
	case "deleteprop", "deleteone":
		pos := target.PropFindPos(arg(args, 0).ToStr())
		target.PropDeleteAt(pos)
		return boolDatum(pos != 0)
	case "findpos":
		return Int(int32(target.PropFindPos(arg(args, 0).ToStr())))
	case "getpropat":
		pos := int(arg(args, 0).ToInt().Int32())
		entries := target.PropEntries()
		if pos < 1 || pos > len(entries) {
			return Void()
		}
		return Symbol(entries[pos-1].Key)
	case "sort":
		entries := append([]PropEntry{}, target.PropEntries()...)
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].Key) < strings.ToLower(entries[j].Key)
		})
		pl := NewPropList()
		for _, e := range entries {
			pl.PropAdd(e.Key, e.Value)
		}
		*target = pl
		return Void()
	case "duplicate":
		pl := NewPropList()
		for _, e := range target.PropEntries() {
			pl.PropAdd(e.Key, e.Value)
		}
		return pl
	}
	return Void()
}

func dispatchStringMethod(target Datum, method string, args []Datum) Datum {
	s := target.ToStr()
	switch strings.ToLower(method) {
	case "length":
		return Int(int32(len([]rune(s))))
	case "char":
		pos := int(arg(args, 0).ToInt().Int32())
		runes := []rune(s)
		if pos < 1 || pos > len(runes) {
			return Str("")
		}
		return Str(string(runes[pos-1]))
	case "count":
		return Int(int32(len([]rune(s))))
	case "duplicate":
		return Str(s)
	}
	return Void()
}

func dispatchGeomMethod(target Datum, method string, args []Datum) Datum {
	switch strings.ToLower(method) {
	case "duplicate":
		return target
	case "getat":
		idx := int(arg(args, 0).ToInt().Int32())
		if target.Kind() == KindPoint {
			x, y := target.PointXY()
			if idx == 1 {
				return Int(x)
			}
			return Int(y)
		}
		l, t, r, b := target.RectBounds()
		switch idx {
		case 1:
			return Int(l)
		case 2:
			return Int(t)
		case 3:
			return Int(r)
		default:
			return Int(b)
		}
	}
	return Void()
}

func dispatchImageMethod(target Datum, method string, args []Datum) Datum {
	img := target.Image()
	if img == nil {
		return Void()
	}
	switch strings.ToLower(method) {
	case "width":
		return Int(int32(img.Width))
	case "height":
		return Int(int32(img.Height))
	case "depth":
		return Int(int32(img.Depth))
	// draw/copyPixels/crop/fill mutate pixel data and blend per ink
	// mode, which is stage rasterisation's job, not the VM's; it only
	// acknowledges the call.
	case "draw", "copypixels", "crop", "fill":
		return Void()
	}
	return Void()
}
