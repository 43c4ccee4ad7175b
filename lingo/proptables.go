// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

// Property-id tables resolved by GET(prop_type, prop_id) / SET(...).
// prop_type is the opcode's inline argument; prop_id is popped off the
// stack by the opcode.

// PropType identifies which fixed table GET/SET consult.
type PropType int32

const (
	PropTypeMovie     PropType = 0x00
	PropTypeChunkCount PropType = 0x01
	PropTypeSprite    PropType = 0x06
	PropTypeAnimation PropType = 0x07
)

// Movie properties, prop_type 0x00. IDs 0x0c-0x0f are the chunk-style
// accessors (item/word/char/line "last") rather than named properties.
var movieProps = map[int32]string{
	0x00: "floatPrecision",
	0x01: "mouseDownScript",
	0x02: "mouseUpScript",
	0x03: "keyDownScript",
	0x04: "keyUpScript",
	0x05: "timeoutScript",
	0x06: "exitLock",
	0x07: "romanLingo",
	0x08: "itemDelimiter",
	0x09: "the3dRenderer",
	0x0a: "short date",
	0x0b: "long date",
}

const (
	movieLastItemChunk = 0x0c
	movieLastWordChunk = 0x0d
	movieLastCharChunk = 0x0e
	movieLastLineChunk = 0x0f
)

// Chunk-count prop ids, prop_type 0x01.
const (
	ChunkCountItem = 1
	ChunkCountWord = 2
	ChunkCountChar = 3
	ChunkCountLine = 4
)

// Sprite properties, prop_type 0x06.
var spriteProps = map[int32]string{
	0:  "locH",
	1:  "locV",
	2:  "rect",
	3:  "member",
	4:  "ink",
	5:  "foreColor",
	6:  "backColor",
	7:  "width",
	8:  "height",
	9:  "visible",
	10: "castNum",
	11: "castLibNum",
	12: "memberNum",
	13: "scriptInstanceList",
}

// Animation (movie-wide) properties, prop_type 0x07.
var animationProps = map[int32]string{
	0: "stageColor",
	1: "colorDepth",
	2: "timer",
	3: "key",
	4: "mouseH",
	5: "mouseV",
}
