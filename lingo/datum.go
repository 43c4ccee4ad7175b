// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package lingo implements the Lingo bytecode virtual machine: the
// tagged Datum value domain, the handler activation stack, the opcode
// dispatcher, method dispatch across script instances, and the
// built-in function registry.
package lingo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the tag of a Datum's active variant.
type Kind int

const (
	KindVoid Kind = iota
	KindInt
	KindFloat
	KindStr
	KindSymbol
	KindList
	KindPropList
	KindPoint
	KindRect
	KindColor
	KindCastLibRef
	KindCastMemberRef
	KindScriptRef
	KindScriptInstance
	KindXtraRef
	KindXtraInstance
	KindTimeoutRef
	KindImageRef
	KindArgList
	KindArgListNoRet
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindStr:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindList:
		return "list"
	case KindPropList:
		return "propList"
	case KindPoint:
		return "point"
	case KindRect:
		return "rect"
	case KindColor:
		return "color"
	case KindCastLibRef:
		return "castLib"
	case KindCastMemberRef:
		return "member"
	case KindScriptRef:
		return "script"
	case KindScriptInstance:
		return "instance"
	case KindXtraRef:
		return "xtraRef"
	case KindXtraInstance:
		return "xtraInstance"
	case KindTimeoutRef:
		return "timeoutRef"
	case KindImageRef:
		return "image"
	case KindArgList:
		return "arglist"
	case KindArgListNoRet:
		return "arglistnoret"
	default:
		return "unknown"
	}
}

// PropEntry is one key/value pair of a PropList, kept in insertion
// order the way Lingo property lists preserve authoring order.
type PropEntry struct {
	Key   string
	Value Datum
}

// ScriptInstanceObj is the heap-allocated object backing a
// KindScriptInstance Datum. The Datum holds a pointer to the object;
// the VM also appends every instance it creates to its own instance
// list, with ID being the creation order. Ancestor links are ordinary
// pointers held in Ancestor Datums, not indices, so nothing in this
// type prevents an ancestor cycle; ancestor walks are bounded by the
// VM's depth limit instead.
type ScriptInstanceObj struct {
	ID         int
	ScriptRef  Datum // KindScriptRef identifying the defining script, or Void for legacy instances
	ScriptID   int   // fallback identity when ScriptRef is absent
	Ancestor   Datum // KindScriptInstance or Void
	Properties map[string]Datum
	PropOrder  []string
}

// GetProperty reads a declared property, Void if undeclared.
func (s *ScriptInstanceObj) GetProperty(name string) Datum {
	if v, ok := s.Properties[strings.ToLower(name)]; ok {
		return v
	}
	return Void()
}

// SetProperty writes a declared property, tracking insertion order for
// reserved keys that are iterated (ancestor/__scriptRef__ are not
// iterated, but user properties are exposed to getPropAt-style calls).
func (s *ScriptInstanceObj) SetProperty(name string, v Datum) {
	key := strings.ToLower(name)
	if _, exists := s.Properties[key]; !exists {
		s.PropOrder = append(s.PropOrder, key)
	}
	s.Properties[key] = v
}

// Datum is the universal runtime value of the Lingo VM.
type Datum struct {
	kind Kind

	i   int32
	f   float64
	s   string // Str/Symbol/XtraRef/XtraInstance-name/TimeoutRef-name
	x2  int32  // second int component (Point.y, Rect fields, Color g, refs' second field, XtraInstance id)
	x3  int32  // Rect.x2 / Color.b
	x4  int32  // Rect.y2

	list  []Datum    // List / ArgList / ArgListNoRet
	props []PropEntry // PropList

	inst *ScriptInstanceObj // ScriptInstance
	img  *ImageBuffer       // ImageRef
}

// ImageBuffer is a mutable pixel buffer owned by the VM; the actual
// blit/draw/crop operations are implemented by the host's stage
// rasteriser, but the VM must be able to hold a reference to one and
// answer width/height/pixel-format queries.
type ImageBuffer struct {
	Width, Height, Depth int
	Pixels                []byte
}

// Constructors.

func Void() Datum               { return Datum{kind: KindVoid} }
func Int(v int32) Datum         { return Datum{kind: KindInt, i: v} }
func Float(v float64) Datum     { return Datum{kind: KindFloat, f: v} }
func Str(v string) Datum        { return Datum{kind: KindStr, s: v} }
func Symbol(v string) Datum     { return Datum{kind: KindSymbol, s: v} }
func List(items ...Datum) Datum { return Datum{kind: KindList, list: append([]Datum{}, items...)} }
func NewPropList() Datum        { return Datum{kind: KindPropList} }
func Point(x, y int32) Datum    { return Datum{kind: KindPoint, i: x, x2: y} }
func Rect(l, t, r, b int32) Datum {
	return Datum{kind: KindRect, i: l, x2: t, x3: r, x4: b}
}
func Color(r, g, b int32) Datum {
	return Datum{kind: KindColor, i: r, x2: g, x3: b}
}
func CastLibRef(number int32) Datum { return Datum{kind: KindCastLibRef, i: number} }
func CastMemberRef(castLib, member int32) Datum {
	return Datum{kind: KindCastMemberRef, i: castLib, x2: member}
}
func ScriptRef(castLib, member int32) Datum {
	return Datum{kind: KindScriptRef, i: castLib, x2: member}
}
func XtraRef(name string) Datum        { return Datum{kind: KindXtraRef, s: name} }
func XtraInstance(name string, id int32) Datum {
	return Datum{kind: KindXtraInstance, s: name, x2: id}
}
func TimeoutRef(name string) Datum { return Datum{kind: KindTimeoutRef, s: name} }
func ImageRef(buf *ImageBuffer) Datum { return Datum{kind: KindImageRef, img: buf} }
func ArgList(items ...Datum) Datum {
	return Datum{kind: KindArgList, list: append([]Datum{}, items...)}
}
func ArgListNoRet(items ...Datum) Datum {
	return Datum{kind: KindArgListNoRet, list: append([]Datum{}, items...)}
}
func ScriptInstance(obj *ScriptInstanceObj) Datum {
	return Datum{kind: KindScriptInstance, inst: obj}
}

// Accessors.

func (d Datum) Kind() Kind    { return d.kind }
func (d Datum) IsVoid() bool  { return d.kind == KindVoid }
func (d Datum) Int32() int32  { return d.i }
func (d Datum) Float64() float64 { return d.f }
func (d Datum) RawString() string { return d.s }
func (d Datum) Items() []Datum    { return d.list }
func (d Datum) PointXY() (int32, int32) { return d.i, d.x2 }
func (d Datum) RectBounds() (int32, int32, int32, int32) { return d.i, d.x2, d.x3, d.x4 }
func (d Datum) ColorRGB() (int32, int32, int32)          { return d.i, d.x2, d.x3 }
func (d Datum) CastLibNumber() int32                     { return d.i }
func (d Datum) MemberRef() (int32, int32)                { return d.i, d.x2 }
func (d Datum) ScriptRefParts() (int32, int32)           { return d.i, d.x2 }
func (d Datum) Instance() *ScriptInstanceObj             { return d.inst }
func (d Datum) Image() *ImageBuffer                      { return d.img }
func (d Datum) XtraName() string                         { return d.s }
func (d Datum) XtraInstanceID() int32                    { return d.x2 }

// PropList helpers. PropLists are reference types: mutating methods
// below mutate the backing slice in place and must be called through
// a pointer obtained from the VM's arena, exactly like List.

func (d *Datum) PropEntries() []PropEntry { return d.props }

func (d *Datum) PropGet(key string) (Datum, bool) {
	key = strings.ToLower(key)
	for _, e := range d.props {
		if strings.ToLower(e.Key) == key {
			return e.Value, true
		}
	}
	return Void(), false
}

func (d *Datum) PropSet(key string, v Datum) {
	lk := strings.ToLower(key)
	for i, e := range d.props {
		if strings.ToLower(e.Key) == lk {
			d.props[i].Value = v
			return
		}
	}
	d.props = append(d.props, PropEntry{Key: key, Value: v})
}

func (d *Datum) PropAdd(key string, v Datum) {
	d.props = append(d.props, PropEntry{Key: key, Value: v})
}

func (d *Datum) PropDeleteAt(pos int) {
	if pos < 1 || pos > len(d.props) {
		return
	}
	d.props = append(d.props[:pos-1], d.props[pos:]...)
}

func (d *Datum) PropFindPos(key string) int {
	key = strings.ToLower(key)
	for i, e := range d.props {
		if strings.ToLower(e.Key) == key {
			return i + 1
		}
	}
	return 0
}

// List mutation helpers (List is reference-typed; callers mutate
// through a pointer held in the arena or a variable slot).

func (d *Datum) ListAppend(v Datum) { d.list = append(d.list, v) }

func (d *Datum) ListSetAt(pos int, v Datum) {
	for pos > len(d.list) {
		d.list = append(d.list, Void())
	}
	if pos >= 1 {
		d.list[pos-1] = v
	}
}

func (d *Datum) ListAddAt(pos int, v Datum) {
	if pos < 1 {
		pos = 1
	}
	if pos > len(d.list)+1 {
		pos = len(d.list) + 1
	}
	d.list = append(d.list, Void())
	copy(d.list[pos:], d.list[pos-1:])
	d.list[pos-1] = v
}

func (d *Datum) ListDeleteAt(pos int) {
	if pos < 1 || pos > len(d.list) {
		return
	}
	d.list = append(d.list[:pos-1], d.list[pos:]...)
}

// Ilk returns the Lingo #symbol naming this Datum's type, as the
// ilk() built-in reports it.
func (d Datum) Ilk() string {
	switch d.kind {
	case KindPropList:
		return "propList"
	case KindList:
		return "linearList"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindStr:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindVoid:
		return "void"
	case KindPoint:
		return "point"
	case KindRect:
		return "rect"
	case KindColor:
		return "color"
	case KindScriptInstance:
		return "instance"
	case KindScriptRef:
		return "script"
	case KindCastMemberRef:
		return "member"
	case KindCastLibRef:
		return "castLib"
	case KindImageRef:
		return "image"
	default:
		return d.kind.String()
	}
}

// ToInt is a numeric conversion that returns the original string
// unchanged on parse failure. This is observable behaviour
// (`integer("foo") = "foo"`), not an error condition.
func (d Datum) ToInt() Datum {
	switch d.kind {
	case KindInt:
		return d
	case KindFloat:
		return Int(int32(d.f))
	case KindStr, KindSymbol:
		if n, ok := parseLeadingNumber(d.s); ok {
			return Int(int32(n))
		}
		return d
	case KindVoid:
		return Int(0)
	default:
		return Int(0)
	}
}

// ToFloat mirrors ToInt for float().
func (d Datum) ToFloat() Datum {
	switch d.kind {
	case KindFloat:
		return d
	case KindInt:
		return Float(float64(d.i))
	case KindStr, KindSymbol:
		if n, ok := parseLeadingNumber(d.s); ok {
			return Float(n)
		}
		return d
	case KindVoid:
		return Float(0)
	default:
		return Float(0)
	}
}

// parseLeadingNumber parses a leading decimal integer or float off s,
// truncating extra trailing garbage
func parseLeadingNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	i := 0
	n := len(s)
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	digitsBefore := i > start
	if i < n && s[i] == '.' {
		i++
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	if !digitsBefore && i == start {
		return 0, false
	}
	if i == start {
		return 0, false
	}
	prefix := s[:i]
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ToStr implements to_str, with Symbol's leading-# stripped.
func (d Datum) ToStr() string {
	switch d.kind {
	case KindStr:
		return d.s
	case KindSymbol:
		return d.s
	case KindInt:
		return strconv.FormatInt(int64(d.i), 10)
	case KindFloat:
		return formatLingoFloat(d.f)
	case KindVoid:
		return ""
	case KindPoint:
		return fmt.Sprintf("point(%d, %d)", d.i, d.x2)
	case KindRect:
		return fmt.Sprintf("rect(%d, %d, %d, %d)", d.i, d.x2, d.x3, d.x4)
	case KindColor:
		return fmt.Sprintf("color(%d, %d, %d)", d.i, d.x2, d.x3)
	default:
		return d.kind.String()
	}
}

func formatLingoFloat(f float64) string {
	if math.Trunc(f) == f && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ToBool implements Lingo truthiness: Void is false,
// numbers are nonzero, strings/symbols are never coerced.
func (d Datum) ToBool() bool {
	switch d.kind {
	case KindVoid:
		return false
	case KindInt:
		return d.i != 0
	case KindFloat:
		return d.f != 0
	default:
		return true
	}
}

func (d Datum) isNumeric() bool { return d.kind == KindInt || d.kind == KindFloat }

func (d Datum) asFloat() float64 {
	if d.kind == KindInt {
		return float64(d.i)
	}
	if d.kind == KindFloat {
		return d.f
	}
	if d.kind == KindVoid {
		return 0
	}
	return 0
}

// Equal implements cross-type equality: numeric cross-comparison by
// value, case-insensitive Str/Symbol comparison, Void == 0.
func Equal(a, b Datum) bool {
	if a.isNumeric() || a.kind == KindVoid {
		if b.isNumeric() || b.kind == KindVoid {
			return a.asFloat() == b.asFloat()
		}
		return false
	}
	if (a.kind == KindStr || a.kind == KindSymbol) && (b.kind == KindStr || b.kind == KindSymbol) {
		return strings.EqualFold(a.s, b.s)
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindPoint:
		return a.i == b.i && a.x2 == b.x2
	case KindRect:
		return a.i == b.i && a.x2 == b.x2 && a.x3 == b.x3 && a.x4 == b.x4
	case KindColor:
		return a.i == b.i && a.x2 == b.x2 && a.x3 == b.x3
	case KindCastLibRef:
		return a.i == b.i
	case KindCastMemberRef, KindScriptRef:
		return a.i == b.i && a.x2 == b.x2
	case KindScriptInstance:
		return a.inst == b.inst
	case KindImageRef:
		return a.img == b.img
	case KindXtraInstance:
		return a.s == b.s && a.x2 == b.x2
	default:
		return false
	}
}

// Compare returns -1/0/1 for ordered comparison opcodes; only
// meaningful for numeric and string operands, as in Lingo.
func Compare(a, b Datum) int {
	if a.isNumeric() || a.kind == KindVoid {
		if b.isNumeric() || b.kind == KindVoid {
			af, bf := a.asFloat(), b.asFloat()
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	as, bs := a.ToStr(), b.ToStr()
	return strings.Compare(strings.ToLower(as), strings.ToLower(bs))
}

// Add implements the ADD opcode's arithmetic, including Point/Rect
// component-wise overloads.
func Add(a, b Datum) (Datum, error) {
	if a.kind == KindPoint || a.kind == KindRect {
		return geomBinary(a, b, func(x, y int32) int32 { return x + y })
	}
	if a.kind == KindStr || b.kind == KindStr {
		return Str(a.ToStr() + b.ToStr()), nil
	}
	return numericBinary(a, b, func(x, y float64) float64 { return x + y })
}

func Sub(a, b Datum) (Datum, error) {
	if a.kind == KindPoint || a.kind == KindRect {
		return geomBinary(a, b, func(x, y int32) int32 { return x - y })
	}
	return numericBinary(a, b, func(x, y float64) float64 { return x - y })
}

func Mul(a, b Datum) (Datum, error) {
	return numericBinary(a, b, func(x, y float64) float64 { return x * y })
}

// ErrDivisionByZero is produced by DIV/MOD on a zero divisor; the VM
// never silently produces NaN.
var ErrDivisionByZero = fmt.Errorf("Division by zero")
var ErrModuloByZero = fmt.Errorf("Modulo by zero")

func Div(a, b Datum) (Datum, error) {
	if b.asFloat() == 0 {
		return Void(), ErrDivisionByZero
	}
	return numericBinary(a, b, func(x, y float64) float64 { return x / y })
}

func Mod(a, b Datum) (Datum, error) {
	bi := int32(b.asFloat())
	if bi == 0 {
		return Void(), ErrModuloByZero
	}
	ai := int32(a.asFloat())
	return Int(ai % bi), nil
}

func numericBinary(a, b Datum, f func(x, y float64) float64) (Datum, error) {
	r := f(a.asFloat(), b.asFloat())
	if a.kind == KindFloat || b.kind == KindFloat {
		return Float(r), nil
	}
	return Int(int32(r)), nil
}

func geomBinary(a, b Datum, f func(x, y int32) int32) (Datum, error) {
	var bx, by, brx, bry int32
	switch b.kind {
	case KindPoint:
		bx, by = b.i, b.x2
	case KindRect:
		bx, by, brx, bry = b.i, b.x2, b.x3, b.x4
	case KindList:
		items := b.list
		if len(items) >= 2 {
			bx = items[0].ToInt().i
			by = items[1].ToInt().i
		}
		if len(items) >= 4 {
			brx = items[2].ToInt().i
			bry = items[3].ToInt().i
		}
	default:
		n := int32(b.asFloat())
		bx, by, brx, bry = n, n, n, n
	}
	if a.kind == KindPoint {
		return Point(f(a.i, bx), f(a.x2, by)), nil
	}
	return Rect(f(a.i, bx), f(a.x2, by), f(a.x3, brx), f(a.x4, bry)), nil
}
