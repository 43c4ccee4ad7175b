// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import "strings"

// chunkKind identifies one of Lingo's four nested string-chunk levels.
type chunkKind int

const (
	chunkChar chunkKind = iota
	chunkWord
	chunkItem
	chunkLine
)

// DefaultItemDelimiter is the default "the itemDelimiter" value; a
// MovieProperty provider may override it per movie.
const DefaultItemDelimiter = ","

func splitChunks(s string, kind chunkKind, delim string) []string {
	switch kind {
	case chunkChar:
		runes := []rune(s)
		out := make([]string, len(runes))
		for i, r := range runes {
			out[i] = string(r)
		}
		return out
	case chunkWord:
		return strings.Fields(s)
	case chunkItem:
		if delim == "" {
			delim = DefaultItemDelimiter
		}
		return strings.Split(s, delim)
	case chunkLine:
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	}
	return nil
}

// selectChunkRange clamps first/last to [1, len(parts)] (bounds past
// the string length clamp to the length) and returns the joined
// selection, or the original string unchanged when first==last==0 (a
// no-op bound pair).
func selectChunkRange(s string, kind chunkKind, first, last int32, delim string) string {
	if first == 0 && last == 0 {
		return s
	}
	parts := splitChunks(s, kind, delim)
	n := int32(len(parts))
	if n == 0 {
		return ""
	}
	if first < 1 {
		first = 1
	}
	if last < first {
		last = first
	}
	if first > n {
		first = n
	}
	if last > n {
		last = n
	}
	sep := ""
	switch kind {
	case chunkWord:
		sep = " "
	case chunkItem:
		if delim == "" {
			delim = DefaultItemDelimiter
		}
		sep = delim
	case chunkLine:
		sep = "\n"
	}
	return strings.Join(parts[first-1:last], sep)
}

// chunkBoundsArgs is the set of eight bound values GET_CHUNK pops:
// char, word, item, line, each as (first, last).
type chunkBoundsArgs struct {
	charFirst, charLast int32
	wordFirst, wordLast int32
	itemFirst, itemLast int32
	lineFirst, lineLast int32
}

func (vm *VM) popChunkBounds(scope *Scope) chunkBoundsArgs {
	v := scope.popN(8)
	get := func(i int) int32 {
		if i < len(v) {
			return v[i].ToInt().Int32()
		}
		return 0
	}
	return chunkBoundsArgs{
		charFirst: get(0), charLast: get(1),
		wordFirst: get(2), wordLast: get(3),
		itemFirst: get(4), itemLast: get(5),
		lineFirst: get(6), lineLast: get(7),
	}
}

func (vm *VM) itemDelimiter() string {
	if vm.Providers.Movie != nil {
		if d := vm.Providers.Movie.ItemDelimiter(); d != "" {
			return d
		}
	}
	return DefaultItemDelimiter
}

// opGetChunk narrows line -> item -> word -> char, outer to inner,
// per the composition order real Lingo chunk expressions use
// ("char 3 of word 2 of item 1 of line 1").
func (vm *VM) opGetChunk(scope *Scope) {
	bounds := vm.popChunkBounds(scope)
	s := scope.pop().ToStr()
	delim := vm.itemDelimiter()

	s = selectChunkRange(s, chunkLine, bounds.lineFirst, bounds.lineLast, delim)
	s = selectChunkRange(s, chunkItem, bounds.itemFirst, bounds.itemLast, delim)
	s = selectChunkRange(s, chunkWord, bounds.wordFirst, bounds.wordLast, delim)
	s = selectChunkRange(s, chunkChar, bounds.charFirst, bounds.charLast, delim)

	scope.push(Str(s))
}

// opContainsStr implements CONTAINS_STR (case-insensitive substring)
// and CONTAINS_0_STR (case-insensitive prefix).
func (vm *VM) opContainsStr(scope *Scope, prefixOnly bool) {
	needle := scope.pop().ToStr()
	haystack := scope.pop().ToStr()
	var ok bool
	if prefixOnly {
		ok = strings.HasPrefix(strings.ToLower(haystack), strings.ToLower(needle))
	} else {
		ok = strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}
	scope.push(boolDatum(ok))
}

// opPut implements the bare `put expr` statement: echo to the
// diagnostic log (the Message window in the reference player), no
// stack/variable side effect beyond consuming its operand.
func (vm *VM) opPut(scope *Scope) {
	v := scope.pop()
	vm.logger.Infof("put: %s", v.ToStr())
}

// opPutChunk replaces a selected chunk range in a popped string with a
// new value and pushes the resulting string back, for the compiler's
// surrounding GET_LOCAL/SET_LOCAL (or SET_GLOBAL/SET_PROP) pair to
// store.
func (vm *VM) opPutChunk(scope *Scope) {
	newValue := scope.pop()
	bounds := vm.popChunkBounds(scope)
	target := scope.pop().ToStr()
	delim := vm.itemDelimiter()
	scope.push(Str(replaceChunkRange(target, bounds, newValue.ToStr(), delim)))
}

// opDeleteChunk removes a selected chunk range from a popped string
// and pushes the result.
func (vm *VM) opDeleteChunk(scope *Scope) {
	bounds := vm.popChunkBounds(scope)
	target := scope.pop().ToStr()
	delim := vm.itemDelimiter()
	scope.push(Str(replaceChunkRange(target, bounds, "", delim)))
}

// replaceChunkRange applies the innermost non-no-op bound pair (char
// takes priority, then word, item, line) and substitutes replacement
// for that range.
func replaceChunkRange(s string, b chunkBoundsArgs, replacement, delim string) string {
	kind, first, last, ok := innermostBound(b)
	if !ok {
		return replacement
	}
	parts := splitChunks(s, kind, delim)
	n := int32(len(parts))
	if n == 0 {
		return replacement
	}
	if first < 1 {
		first = 1
	}
	if last < first {
		last = first
	}
	if first > n {
		first = n
	}
	if last > n {
		last = n
	}
	sep := ""
	switch kind {
	case chunkWord:
		sep = " "
	case chunkItem:
		sep = delim
	case chunkLine:
		sep = "\n"
	}
	var out []string
	out = append(out, parts[:first-1]...)
	if replacement != "" {
		out = append(out, replacement)
	}
	out = append(out, parts[last:]...)
	return strings.Join(out, sep)
}

func innermostBound(b chunkBoundsArgs) (chunkKind, int32, int32, bool) {
	if b.charFirst != 0 || b.charLast != 0 {
		return chunkChar, b.charFirst, b.charLast, true
	}
	if b.wordFirst != 0 || b.wordLast != 0 {
		return chunkWord, b.wordFirst, b.wordLast, true
	}
	if b.itemFirst != 0 || b.itemLast != 0 {
		return chunkItem, b.itemFirst, b.itemLast, true
	}
	if b.lineFirst != 0 || b.lineLast != 0 {
		return chunkLine, b.lineFirst, b.lineLast, true
	}
	return 0, 0, 0, false
}
