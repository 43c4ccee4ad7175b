// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import (
	"encoding/binary"
	"sort"
	"strings"

	"github.com/Quackster/LibreShockwave-sub002/lingo"
)

// PreloadMode selects when an external cast library's bytes are
// fetched relative to playback start.
type PreloadMode int

const (
	PreloadWhenNeeded PreloadMode = iota
	PreloadAfterFrameOne
	PreloadBeforeFrameOne
)

func (m PreloadMode) String() string {
	switch m {
	case PreloadAfterFrameOne:
		return "afterFrameOne"
	case PreloadBeforeFrameOne:
		return "beforeFrameOne"
	default:
		return "whenNeeded"
	}
}

// CastLibraryState is the external-cast lifecycle: NONE -> LOADING ->
// LOADED, terminal at LOADED.
type CastLibraryState int

const (
	CastStateNone CastLibraryState = iota
	CastStateLoading
	CastStateLoaded
)

func (s CastLibraryState) String() string {
	switch s {
	case CastStateLoading:
		return "LOADING"
	case CastStateLoaded:
		return "LOADED"
	default:
		return "NONE"
	}
}

// CastLibrary owns the member and script slots for one cast, internal
// or external. Internal libraries start LOADED; external libraries
// start NONE and transition under CastManager's orchestration.
type CastLibrary struct {
	Number      int32
	Name        string
	FileName    string
	PreloadMode PreloadMode
	State       CastLibraryState
	MinMember   int32
	MaxMember   int32

	members map[int32]*CastMember
	scripts map[int32]*lingo.Script
	keyID   uint32
}

// IsExternal reports whether this library's assets live in a separate
// file (non-empty FileName) rather than this container.
func (l *CastLibrary) IsExternal() bool { return l.FileName != "" }

// GetMember resolves a member by its 1-based slot within this library.
func (l *CastLibrary) GetMember(slot int32) (*CastMember, bool) {
	m, ok := l.members[slot]
	return m, ok
}

// GetMemberByName performs a case-insensitive linear scan, matching
// Lingo's member("name") contract.
func (l *CastLibrary) GetMemberByName(name string) (*CastMember, bool) {
	for _, m := range l.members {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return nil, false
}

// GetScript resolves a compiled script by its 1-based slot.
func (l *CastLibrary) GetScript(slot int32) (*lingo.Script, bool) {
	s, ok := l.scripts[slot]
	return s, ok
}

// MemberSlots returns every populated member slot, ascending.
func (l *CastLibrary) MemberSlots() []int32 {
	slots := make([]int32, 0, len(l.members))
	for slot := range l.members {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}

func (l *CastLibrary) putMember(slot int32, m *CastMember) {
	if l.members == nil {
		l.members = make(map[int32]*CastMember)
	}
	l.members[slot] = m
}

func (l *CastLibrary) putScript(slot int32, s *lingo.Script) {
	if l.scripts == nil {
		l.scripts = make(map[int32]*lingo.Script)
	}
	l.scripts[slot] = s
}

// ExternalCandidatePaths normalises a cast library's declared file
// path into the ordered list of extension candidates the host should
// try to resolve, per the external-cast path normalisation rule:
// strip colon-separated path components, rewrite .cst/.cxt -> base
// name, and try .cct, then .cst, then .cxt.
func (l *CastLibrary) ExternalCandidatePaths() []string {
	base := l.FileName
	if i := strings.LastIndexByte(base, ':'); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".cst")
	base = strings.TrimSuffix(base, ".cxt")
	base = strings.TrimSuffix(base, ".cct")
	return []string{base + ".cct", base + ".cst", base + ".cxt"}
}

// castLibraryEntry is the decoded MCsL row before CastManager turns it
// into a CastLibrary (which additionally needs the CAS* coverage to
// decide internal vs. external).
type castLibraryEntry struct {
	KeyID       uint32
	Name        string
	FileName    string
	MinMember   int32
	MaxMember   int32
	PreloadMode PreloadMode
}

func preloadModeFromCode(v uint16) PreloadMode {
	switch v {
	case 1:
		return PreloadAfterFrameOne
	case 2:
		return PreloadBeforeFrameOne
	default:
		return PreloadWhenNeeded
	}
}

// decodeCastLibraryList parses an MCsL chunk body: an entry count
// followed by one record per cast library (id, member-slot range,
// preload mode, name, file path).
func decodeCastLibraryList(payload []byte, order binary.ByteOrder) ([]castLibraryEntry, error) {
	r := NewReader(payload, order)
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	entries := make([]castLibraryEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		id, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		minMember, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		maxMember, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		preload, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		name, err := r.ReadPascalString()
		if err != nil {
			return nil, err
		}
		fileName, err := r.ReadPascalString()
		if err != nil {
			return nil, err
		}
		entries = append(entries, castLibraryEntry{
			KeyID:       id,
			Name:        name,
			FileName:    fileName,
			MinMember:   minMember,
			MaxMember:   maxMember,
			PreloadMode: preloadModeFromCode(preload),
		})
	}
	return entries, nil
}

// encodeCastLibraryList is the inverse of decodeCastLibraryList, used
// by test fixtures. It always writes in the order the caller's decoder
// will read with; tests pass the same order to both sides.
func encodeCastLibraryList(entries []castLibraryEntry, order binary.ByteOrder) []byte {
	buf := make([]byte, 4)
	order.PutUint32(buf, uint32(len(entries)))
	for _, e := range entries {
		var head [14]byte
		order.PutUint32(head[0:4], e.KeyID)
		order.PutUint32(head[4:8], uint32(e.MinMember))
		order.PutUint32(head[8:12], uint32(e.MaxMember))
		order.PutUint16(head[12:14], uint16(e.PreloadMode))
		buf = append(buf, head[:]...)
		buf = append(buf, byte(len(e.Name)))
		buf = append(buf, e.Name...)
		buf = append(buf, byte(len(e.FileName)))
		buf = append(buf, e.FileName...)
	}
	return buf
}
