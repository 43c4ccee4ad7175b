// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import "encoding/binary"

// KeyTable is the `(owner_id, section_id, fourcc)` ownership relation
// decoded from a KEY* chunk: "chunk owner_id owns an auxiliary chunk
// of type fourcc stored at section_id." A cast member owns at most one
// chunk of each FourCC it references, so the relation is a plain
// owner -> fourcc -> section map.
type KeyTable struct {
	rel map[uint32]map[FourCC]uint32
}

func newKeyTable() *KeyTable {
	return &KeyTable{rel: make(map[uint32]map[FourCC]uint32)}
}

func (k *KeyTable) set(owner uint32, fourcc FourCC, section uint32) {
	m, ok := k.rel[owner]
	if !ok {
		m = make(map[FourCC]uint32)
		k.rel[owner] = m
	}
	m[fourcc] = section
}

// Lookup finds the section id of the auxiliary chunk of the given
// FourCC owned by owner, e.g. a cast member's Lscr or BITD.
func (k *KeyTable) Lookup(owner uint32, fourcc FourCC) (uint32, bool) {
	m, ok := k.rel[owner]
	if !ok {
		return 0, false
	}
	section, ok := m[fourcc]
	return section, ok
}

// keyTableHeaderSize is the fixed 12-byte KEY* header: entry size (2),
// entry size used (2), allocated entry count (4), used entry count (4).
const keyTableHeaderSize = 12

// keyTableEntrySize is the fixed 12-byte per-entry layout: section id
// (4), owner id (4), FourCC (4, always big-endian).
const keyTableEntrySize = 12

// decodeKeyTable parses a KEY* chunk body into the ownership relation.
func decodeKeyTable(payload []byte) (*KeyTable, error) {
	r := NewReader(payload, binary.BigEndian)
	if _, err := r.ReadUint16(); err != nil { // entrySize
		return nil, err
	}
	if _, err := r.ReadUint16(); err != nil { // entrySizeUsed
		return nil, err
	}
	allocated, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	used, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if used > allocated {
		return nil, ErrTruncatedInput
	}

	kt := newKeyTable()
	for i := uint32(0); i < used; i++ {
		section, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		owner, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		fourcc, err := r.ReadFourCC()
		if err != nil {
			return nil, err
		}
		kt.set(owner, fourcc, section)
	}
	return kt, nil
}

// encodeKeyTable is the inverse of decodeKeyTable, used by tests that
// synthesize KEY* fixtures.
func encodeKeyTable(entries []struct {
	Owner, Section uint32
	FourCC         FourCC
}) []byte {
	buf := make([]byte, keyTableHeaderSize)
	binary.BigEndian.PutUint16(buf[0:2], keyTableEntrySize)
	binary.BigEndian.PutUint16(buf[2:4], keyTableEntrySize)
	binary.BigEndian.PutUint32(buf[4:8], uint32(len(entries)))
	binary.BigEndian.PutUint32(buf[8:12], uint32(len(entries)))
	for _, e := range entries {
		var rec [12]byte
		binary.BigEndian.PutUint32(rec[0:4], e.Section)
		binary.BigEndian.PutUint32(rec[4:8], e.Owner)
		binary.BigEndian.PutUint32(rec[8:12], uint32(e.FourCC))
		buf = append(buf, rec[:]...)
	}
	return buf
}
