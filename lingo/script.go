// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

// NameTable is the shared Lnam string table for every script in one
// script context. resolve_name(id) is the only operation callers need.
type NameTable struct {
	Names []string
}

// Resolve returns the string for a name id, or "" if out of range.
func (t *NameTable) Resolve(id int) string {
	if t == nil || id < 0 || id >= len(t.Names) {
		return ""
	}
	return t.Names[id]
}

// Instruction is one decoded bytecode step: an opcode plus its
// resolved inline argument and its byte offset in the handler's code
// stream. ByteOffset is required to resolve jump targets, since JMP
// opcodes carry a byte-offset delta, not an instruction-index delta.
type Instruction struct {
	Opcode     Opcode
	Arg        int32
	ByteOffset int
	// Multiplier is the arg-width-prefix-derived variable multiplier
	// (1, 2, or 4) in effect when this instruction was decoded. It is
	// applied to Arg when the argument encodes a local-variable or
	// literal index.
	Multiplier int32
}

// Handler is one named procedure in a Script: the unit of invocation.
type Handler struct {
	NameID          int
	ArgumentNameIDs []int
	LocalNameIDs    []int
	GlobalNameIDs   []int
	Bytecode        []byte

	Instructions []Instruction
	// offsetToIndex maps a byte offset to its instruction index, built
	// once from Instructions; required to resolve jump targets.
	offsetToIndex map[int]int
}

// Name resolves the handler's own name through the owning script's
// name table.
func (h *Handler) Name(names *NameTable) string {
	return names.Resolve(h.NameID)
}

// IndexForOffset resolves a jump target's instruction index.
func (h *Handler) IndexForOffset(offset int) (int, bool) {
	if h.offsetToIndex == nil {
		h.buildOffsetIndex()
	}
	idx, ok := h.offsetToIndex[offset]
	return idx, ok
}

func (h *Handler) buildOffsetIndex() {
	h.offsetToIndex = make(map[int]int, len(h.Instructions))
	for i, instr := range h.Instructions {
		h.offsetToIndex[instr.ByteOffset] = i
	}
}

// Script is a compiled Lingo script attached to a cast member.
type Script struct {
	CastLib  int32
	Member   int32
	Names    *NameTable
	Handlers []*Handler
	Literals []Datum
	Globals  []int // declared global name ids
	Props    []int // declared property name ids
	Ancestor []int // declared ancestor name ids (class list, evaluated at instantiation)
}

// FindHandler looks up a handler by name, case-insensitively, through
// the script's own name table.
func (s *Script) FindHandler(name string) *Handler {
	for _, h := range s.Handlers {
		if equalFold(h.Name(s.Names), name) {
			return h
		}
	}
	return nil
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// RefDatum returns the ScriptRef Datum identifying this script.
func (s *Script) RefDatum() Datum {
	return ScriptRef(s.CastLib, s.Member)
}
