// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import (
	"bytes"
	"encoding/binary"
)

// leOrder is the fixed byte order of every Afterburner-internal
// stream (Fcdr's GUID table, ABMP's VLI resource map): little-endian,
// independent of the outer RIFX/XFIR framing's own byte order.
var leOrder = binary.LittleEndian

// compressionKind is how one Afterburner resource's bytes are packed
// inside the FGEI/ILS blob, keyed by the index an ABMP entry carries
// into the Fcdr-decoded compression table.
type compressionKind int

const (
	compressionNone compressionKind = iota
	compressionZlib
	compressionOpaque
)

// compressionGUIDZlib is the 16-byte compression-kind identifier this
// decoder recognises as "zlib deflate"; a zeroed GUID means "stored",
// and any other value is treated as an opaque, undecodable kind (kept
// as raw bytes rather than rejected, matching the loader's per-
// resource failure contract).
var compressionGUIDZlib = [16]byte{
	0x04, 0xc9, 0x4d, 0xa1, 0xd5, 0x3d, 0x76, 0x42,
	0xa4, 0x99, 0x44, 0x99, 0xb0, 0x4c, 0x1b, 0x58,
}

func isZeroGUID(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func classifyCompressionGUID(guid []byte) compressionKind {
	switch {
	case isZeroGUID(guid):
		return compressionNone
	case bytes.Equal(guid, compressionGUIDZlib[:]):
		return compressionZlib
	default:
		return compressionOpaque
	}
}

// compressionTable is the Fcdr chunk's decoded content: an ordered list
// of compression kinds, indexed by an ABMP entry's CompressionIndex.
type compressionTable struct {
	kinds []compressionKind
}

func (t *compressionTable) kindOf(index uint32) compressionKind {
	if int(index) >= len(t.kinds) {
		return compressionOpaque
	}
	return t.kinds[index]
}

// decodeFcdr inflates the Fcdr chunk and reads its GUID table: a VLI
// count followed by that many 16-byte compression-kind GUIDs.
func decodeFcdr(body []byte) (*compressionTable, error) {
	raw, err := Inflate(body)
	if err != nil {
		return nil, err
	}
	r := NewReader(raw, leOrder)
	count, err := r.ReadVLI()
	if err != nil {
		return nil, err
	}
	table := &compressionTable{kinds: make([]compressionKind, 0, count)}
	for i := uint32(0); i < count; i++ {
		guid, err := r.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		table.kinds = append(table.kinds, classifyCompressionGUID(guid))
	}
	return table, nil
}

// abmpEntry is one Afterburner resource map row: which FourCC-tagged
// resource lives at what span of the FGEI/ILS blob, compressed under
// which Fcdr compression index.
type abmpEntry struct {
	ResourceID       uint32
	CompressionIndex uint32
	UncompressedSize uint32
	CompressedSize   uint32
	Offset           uint32
	FourCC           FourCC
}

// decodeAbmp inflates the ABMP chunk and reads its VLI-encoded resource
// map: two header fields this decoder does not interpret (a resource-
// count hint and the free-list head, both redundant with the entry
// count that follows), the entry count, then that many entries.
func decodeAbmp(body []byte) ([]abmpEntry, error) {
	raw, err := Inflate(body)
	if err != nil {
		return nil, err
	}
	r := NewReader(raw, leOrder)
	if _, err := r.ReadVLI(); err != nil {
		return nil, err
	}
	if _, err := r.ReadVLI(); err != nil {
		return nil, err
	}
	count, err := r.ReadVLI()
	if err != nil {
		return nil, err
	}
	entries := make([]abmpEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		id, err := r.ReadVLI()
		if err != nil {
			return nil, err
		}
		compIdx, err := r.ReadVLI()
		if err != nil {
			return nil, err
		}
		size, err := r.ReadVLI()
		if err != nil {
			return nil, err
		}
		compSize, err := r.ReadVLI()
		if err != nil {
			return nil, err
		}
		offset, err := r.ReadVLI()
		if err != nil {
			return nil, err
		}
		fourcc, err := r.ReadFourCC()
		if err != nil {
			return nil, err
		}
		entries = append(entries, abmpEntry{
			ResourceID:       id,
			CompressionIndex: compIdx,
			UncompressedSize: size,
			CompressedSize:   compSize,
			Offset:           offset,
			FourCC:           fourcc,
		})
	}
	return entries, nil
}

// parseAfterburner decodes the FGDM/FGDC pipeline: Fver (skipped, this
// decoder has nothing version-gated left to branch on once the
// handler-record width is self-describing), Fcdr (compression kind
// table), ABMP (resource map), and FGEI (the "ILS" payload blob every
// resource's compressed bytes are sliced out of).
func (file *File) parseAfterburner() (*ChunkTable, error) {
	pos := 12
	var fcdrTable *compressionTable
	var abmpEntries []abmpEntry
	var ilsBody []byte

	for pos+8 <= len(file.data) {
		tag, body, err := readRIFFSubchunk(file.data, pos, file.Order)
		if err != nil {
			break
		}
		consumed := 8 + len(body)
		if consumed%2 != 0 {
			consumed++
		}
		switch tag {
		case fccFcdr:
			t, err := decodeFcdr(body)
			if err != nil {
				return nil, err
			}
			fcdrTable = t
		case fccABMP:
			entries, err := decodeAbmp(body)
			if err != nil {
				return nil, err
			}
			abmpEntries = entries
		case fccFGEI:
			ilsBody = body
		}
		pos += consumed
	}

	if fcdrTable == nil || abmpEntries == nil || ilsBody == nil {
		return nil, ErrMalformedAbmp
	}

	chunks := newChunkTable()
	for _, e := range abmpEntries {
		// Post-load fix-up: discard empty/free resource slots rather
		// than carrying them into the live chunk table.
		if e.FourCC == fccFree || e.FourCC == fccJunk || e.CompressedSize == 0 {
			continue
		}

		start := int(e.Offset)
		end := start + int(e.CompressedSize)
		if start < 0 || end > len(ilsBody) || start > end {
			return nil, &BadCompressionError{ResourceID: e.ResourceID}
		}
		raw := ilsBody[start:end]

		var payload []byte
		switch fcdrTable.kindOf(e.CompressionIndex) {
		case compressionZlib:
			out, err := Inflate(raw)
			if err != nil {
				return nil, &BadCompressionError{ResourceID: e.ResourceID}
			}
			payload = out
		default:
			payload = raw
		}

		chunk, err := decodeChunkPayload(e.ResourceID, e.FourCC, payload, file.Order)
		if err != nil {
			file.logger.Warnf("director: failed to decode afterburner resource %d (%s): %v", e.ResourceID, e.FourCC, err)
			continue
		}
		chunks.add(chunk)
	}

	return chunks, nil
}
