// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import (
	"encoding/binary"
	"sort"
)

// ResourceEntry is one row of the resource map: where a chunk's bytes
// live and how they are framed. CompressionIndex is -1 for pipeline A
// (uncompressed) entries.
type ResourceEntry struct {
	ID               uint32
	Offset           uint32
	Size             uint32
	UncompressedSize uint32
	CompressionIndex int
	FourCC           FourCC
}

// Chunk is one decoded resource: a FourCC-tagged payload identified by
// its resource id. Payload holds the typed decode result (for example
// *CastMember or *KeyTable); RawBytes is always populated for
// UnknownChunk so a downstream consumer can still retrieve auxiliary
// data by id even when this decoder does not recognise the tag.
type Chunk struct {
	ResourceID uint32
	Tag        FourCC
	Payload    interface{}
	RawBytes   []byte
}

// UnknownChunk marks a Chunk whose FourCC this decoder does not
// recognise; its RawBytes are kept rather than discarded.
type UnknownChunk struct {
	FourCC FourCC
}

// ChunkTable indexes decoded chunks by resource id, with a secondary
// FourCC index, mirroring the teacher's array-of-structs-plus-lookup
// style used for resource/symbol directories.
type ChunkTable struct {
	byID     map[uint32]*Chunk
	byFourCC map[FourCC][]uint32
}

func newChunkTable() *ChunkTable {
	return &ChunkTable{
		byID:     make(map[uint32]*Chunk),
		byFourCC: make(map[FourCC][]uint32),
	}
}

func (t *ChunkTable) add(c *Chunk) {
	t.byID[c.ResourceID] = c
	t.byFourCC[c.Tag] = append(t.byFourCC[c.Tag], c.ResourceID)
}

// Get retrieves a chunk by resource id in O(1).
func (t *ChunkTable) Get(id uint32) (*Chunk, bool) {
	c, ok := t.byID[id]
	return c, ok
}

// IDsByFourCC returns every resource id carrying the given tag, in
// discovery order.
func (t *ChunkTable) IDsByFourCC(tag FourCC) []uint32 {
	return t.byFourCC[tag]
}

// Len reports how many live resource ids the table holds.
func (t *ChunkTable) Len() int { return len(t.byID) }

// IDs returns every resource id in the table, ascending.
func (t *ChunkTable) IDs() []uint32 {
	ids := make([]uint32, 0, len(t.byID))
	for id := range t.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// decodeChunkPayload dispatches a chunk's decompressed bytes to its
// typed decoder by FourCC, falling back to UnknownChunk for anything
// this package does not model.
func decodeChunkPayload(id uint32, tag FourCC, payload []byte, order binary.ByteOrder) (*Chunk, error) {
	c := &Chunk{ResourceID: id, Tag: tag, RawBytes: payload}

	switch tag {
	case fccKeyStar:
		kt, err := decodeKeyTable(payload)
		if err != nil {
			return nil, err
		}
		c.Payload = kt
	case fccCasStar:
		c.Payload = decodeCastArray(payload, order)
	case fccCASt:
		cm, err := decodeCastMember(id, payload, order)
		if err != nil {
			return nil, err
		}
		c.Payload = cm
	case fccMCsL:
		libs, err := decodeCastLibraryList(payload, order)
		if err != nil {
			return nil, err
		}
		c.Payload = libs
	case fccLctx:
		ctx, err := decodeLctx(payload, order)
		if err != nil {
			return nil, err
		}
		c.Payload = ctx
	case fccLnam:
		c.Payload = decodeLnam(payload, order)
	case fccLscr:
		script, err := decodeLscr(id, payload, order)
		if err != nil {
			return nil, err
		}
		c.Payload = script
	case fccBITD, fccCLUT:
		c.Payload = decodeBitmapInfo(payload, order)
	case fccSTXT:
		styled, err := decodeStyledText(payload, order)
		if err != nil {
			return nil, err
		}
		c.Payload = styled
	case fccSnd:
		c.Payload = decodeSoundInfo(payload, order)
	case fccFree, fccJunk:
		c.Payload = UnknownChunk{FourCC: tag}
	default:
		c.Payload = UnknownChunk{FourCC: tag}
	}
	return c, nil
}
