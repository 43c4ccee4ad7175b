// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import "fmt"

// Opcode is the base (argument-masked) identifier of one bytecode
// instruction. Raw bytes on disk pack a 2-bit argument-width prefix
// into the top bits (opcodes with an ordinal below 0x40 carry no
// inline argument at all); DecodeInstructions strips that prefix down
// to the base Opcode below.
type Opcode byte

const (
	// Stack family (no inline argument).
	OpPushZero Opcode = 0x01
	OpSwap     Opcode = 0x02

	// Arithmetic family (no inline argument).
	OpAdd Opcode = 0x03
	OpSub Opcode = 0x04
	OpMul Opcode = 0x05
	OpDiv Opcode = 0x06
	OpMod Opcode = 0x07
	OpInv Opcode = 0x08

	// Comparison family (no inline argument).
	OpLt    Opcode = 0x09
	OpLtEq  Opcode = 0x0A
	OpGt    Opcode = 0x0B
	OpGtEq  Opcode = 0x0C
	OpEq    Opcode = 0x0D
	OpNtEq  Opcode = 0x0E

	// Logical family (no inline argument).
	OpAnd Opcode = 0x0F
	OpOr  Opcode = 0x10
	OpNot Opcode = 0x11

	// String family (no inline argument).
	OpJoinStr     Opcode = 0x12
	OpJoinPadStr  Opcode = 0x13
	OpContainsStr Opcode = 0x14
	OpContains0Str Opcode = 0x15
	OpGetChunk    Opcode = 0x16
	OpPut         Opcode = 0x17
	OpPutChunk    Opcode = 0x18
	OpDeleteChunk Opcode = 0x19

	// Control flow (no inline argument).
	OpRet Opcode = 0x1A

	// Lists (no inline argument).
	OpPushList     Opcode = 0x1B
	OpPushPropList Opcode = 0x1C

	// Properties (no inline argument).
	OpGetProp      Opcode = 0x1D
	OpSetProp      Opcode = 0x1E
	OpGetMovieProp Opcode = 0x1F
	OpSetMovieProp Opcode = 0x20
	OpGetObjProp   Opcode = 0x21
	OpSetObjProp   Opcode = 0x22

	// --- Opcodes carrying an inline argument (ordinal >= 0x40 on the
	// wire; base ids below are the masked, semantic identity). ---

	OpPushInt8    Opcode = 0x23
	OpPushInt16   Opcode = 0x24
	OpPushInt32   Opcode = 0x25
	OpPushFloat32 Opcode = 0x26
	OpPushCons    Opcode = 0x27
	OpPushSymb    Opcode = 0x28
	OpPop         Opcode = 0x29
	OpPeek        Opcode = 0x2A

	OpGetLocal  Opcode = 0x2B
	OpSetLocal  Opcode = 0x2C
	OpGetParam  Opcode = 0x2D
	OpSetParam  Opcode = 0x2E
	OpGetGlobal  Opcode = 0x2F
	OpSetGlobal  Opcode = 0x30
	OpGetGlobal2 Opcode = 0x31 // historical duplicate, identical semantics
	OpSetGlobal2 Opcode = 0x32

	OpJmp       Opcode = 0x33
	OpJmpIfZ    Opcode = 0x34
	OpEndRepeat Opcode = 0x35

	OpPushArgList      Opcode = 0x36
	OpPushArgListNoRet Opcode = 0x37

	OpLocalCall Opcode = 0x38
	OpExtCall   Opcode = 0x39
	OpObjCall   Opcode = 0x3A

	OpTheBuiltin Opcode = 0x3B
	OpGet        Opcode = 0x3C
	OpSet        Opcode = 0x3D
	OpNewObj     Opcode = 0x3E
)

// hasInlineArg reports whether this opcode's wire encoding carries an
// inline argument (ordinal >= 0x40).
func (op Opcode) hasInlineArg() bool { return op >= OpPushInt8 }

var opcodeNames = map[Opcode]string{
	OpPushZero: "PUSH_ZERO", OpSwap: "SWAP",
	OpAdd: "ADD", OpSub: "SUB", OpMul: "MUL", OpDiv: "DIV", OpMod: "MOD", OpInv: "INV",
	OpLt: "LT", OpLtEq: "LT_EQ", OpGt: "GT", OpGtEq: "GT_EQ", OpEq: "EQ", OpNtEq: "NT_EQ",
	OpAnd: "AND", OpOr: "OR", OpNot: "NOT",
	OpJoinStr: "JOIN_STR", OpJoinPadStr: "JOIN_PAD_STR",
	OpContainsStr: "CONTAINS_STR", OpContains0Str: "CONTAINS_0_STR",
	OpGetChunk: "GET_CHUNK", OpPut: "PUT", OpPutChunk: "PUT_CHUNK", OpDeleteChunk: "DELETE_CHUNK",
	OpRet: "RET", OpPushList: "PUSH_LIST", OpPushPropList: "PUSH_PROP_LIST",
	OpGetProp: "GET_PROP", OpSetProp: "SET_PROP",
	OpGetMovieProp: "GET_MOVIE_PROP", OpSetMovieProp: "SET_MOVIE_PROP",
	OpGetObjProp: "GET_OBJ_PROP", OpSetObjProp: "SET_OBJ_PROP",
	OpPushInt8: "PUSH_INT8", OpPushInt16: "PUSH_INT16", OpPushInt32: "PUSH_INT32",
	OpPushFloat32: "PUSH_FLOAT32", OpPushCons: "PUSH_CONS", OpPushSymb: "PUSH_SYMB",
	OpPop: "POP", OpPeek: "PEEK",
	OpGetLocal: "GET_LOCAL", OpSetLocal: "SET_LOCAL",
	OpGetParam: "GET_PARAM", OpSetParam: "SET_PARAM",
	OpGetGlobal: "GET_GLOBAL", OpSetGlobal: "SET_GLOBAL",
	OpGetGlobal2: "GET_GLOBAL_2", OpSetGlobal2: "SET_GLOBAL_2",
	OpJmp: "JMP", OpJmpIfZ: "JMP_IF_Z", OpEndRepeat: "END_REPEAT",
	OpPushArgList: "PUSH_ARG_LIST", OpPushArgListNoRet: "PUSH_ARG_LIST_NO_RET",
	OpLocalCall: "LOCAL_CALL", OpExtCall: "EXT_CALL", OpObjCall: "OBJ_CALL",
	OpTheBuiltin: "THE_BUILTIN", OpGet: "GET", OpSet: "SET", OpNewObj: "NEW_OBJ",
}

func (op Opcode) String() string {
	if n, ok := opcodeNames[op]; ok {
		return n
	}
	return fmt.Sprintf("OP(0x%02x)", byte(op))
}

// argWidth describes how many bytes the 2-bit wire prefix selects.
type argWidth int

const (
	width0 argWidth = 0
	width1 argWidth = 1
	width2 argWidth = 2
	width4 argWidth = 4
)

func widthForPrefix(prefix byte) argWidth {
	switch prefix {
	case 1:
		return width1
	case 2:
		return width2
	case 3:
		return width4
	default:
		return width0
	}
}

// multiplierForWidth returns the variable multiplier derived from the
// arg-width prefix: 1, 2, or 4.
func multiplierForWidth(w argWidth) int32 {
	switch w {
	case width2:
		return 2
	case width4:
		return 4
	default:
		return 1
	}
}

// DecodeInstructions decodes a handler's raw bytecode byte stream into
// an Instructions list. Each decoded Instruction records its byte
// offset so jump targets can be resolved; ByteOffset is always the
// offset of the opcode byte itself, matching JMP's "relative to the
// start of the current instruction" contract.
func DecodeInstructions(bytecode []byte) ([]Instruction, error) {
	var out []Instruction
	i := 0
	n := len(bytecode)
	for i < n {
		start := i
		raw := bytecode[i]
		i++
		prefix := raw >> 6
		base := Opcode(raw & 0x3F)
		width := widthForPrefix(prefix)
		if !base.hasInlineArg() {
			width = width0
		}
		var arg int32
		switch width {
		case width1:
			if i+1 > n {
				return nil, fmt.Errorf("lingo: truncated bytecode at offset %d", start)
			}
			arg = int32(int8(bytecode[i]))
			i++
		case width2:
			if i+2 > n {
				return nil, fmt.Errorf("lingo: truncated bytecode at offset %d", start)
			}
			arg = int32(int16(uint16(bytecode[i])<<8 | uint16(bytecode[i+1])))
			i += 2
		case width4:
			if i+4 > n {
				return nil, fmt.Errorf("lingo: truncated bytecode at offset %d", start)
			}
			arg = int32(uint32(bytecode[i])<<24 | uint32(bytecode[i+1])<<16 | uint32(bytecode[i+2])<<8 | uint32(bytecode[i+3]))
			i += 4
		}
		out = append(out, Instruction{Opcode: base, Arg: arg, ByteOffset: start, Multiplier: multiplierForWidth(width)})
	}
	return out, nil
}

// EncodeInstruction serialises one instruction back to wire bytes,
// used by tests to build literal bytecode fixtures such as
// "PUSH_INT8 3; PUSH_INT8 4; ADD; RET".
func EncodeInstruction(op Opcode, arg int32) []byte {
	if !op.hasInlineArg() {
		return []byte{byte(op)}
	}
	switch {
	case arg >= -128 && arg <= 127:
		return []byte{byte(op) | 0x40, byte(int8(arg))}
	case arg >= -32768 && arg <= 32767:
		v := uint16(int16(arg))
		return []byte{byte(op) | 0x80, byte(v >> 8), byte(v)}
	default:
		v := uint32(arg)
		return []byte{byte(op) | 0xC0, byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
	}
}
