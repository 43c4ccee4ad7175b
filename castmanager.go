// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import (
	"strings"

	"github.com/Quackster/LibreShockwave-sub002/lingo"
)

// CastManager owns every CastLibrary decoded from a container and
// implements lingo.ScriptResolver, the hook the VM uses to turn a
// ScriptRef or a bare handler name into compiled bytecode.
type CastManager struct {
	libraries []*CastLibrary
	byNumber  map[int32]*CastLibrary
}

func newCastManager() *CastManager {
	return &CastManager{byNumber: make(map[int32]*CastLibrary)}
}

// Libraries returns every cast library in declaration order.
func (cm *CastManager) Libraries() []*CastLibrary { return cm.libraries }

// Library resolves a cast library by its 1-based number.
func (cm *CastManager) Library(number int32) (*CastLibrary, bool) {
	l, ok := cm.byNumber[number]
	return l, ok
}

// ResolveScript implements lingo.ScriptResolver.
func (cm *CastManager) ResolveScript(castLib, member int32) (*lingo.Script, bool) {
	lib, ok := cm.byNumber[castLib]
	if !ok {
		return nil, false
	}
	return lib.GetScript(member)
}

// ResolveScriptByName implements lingo.ScriptResolver, scanning every
// loaded library for a script member with a matching name.
func (cm *CastManager) ResolveScriptByName(name string) (*lingo.Script, bool) {
	for _, lib := range cm.libraries {
		if slot, ok := lib.findScriptSlotByName(name); ok {
			if s, ok := lib.GetScript(slot); ok {
				return s, true
			}
		}
	}
	return nil, false
}

// PendingPreload returns every external library still in CastStateNone
// whose PreloadMode matches the given mode, in declaration order; the
// host driving playback calls this at the corresponding milestone
// (movie load, frame one) and feeds the result to its fetch pipeline.
func (cm *CastManager) PendingPreload(mode PreloadMode) []*CastLibrary {
	var out []*CastLibrary
	for _, lib := range cm.libraries {
		if lib.IsExternal() && lib.State == CastStateNone && lib.PreloadMode == mode {
			out = append(out, lib)
		}
	}
	return out
}

// EnsureLoaded lazily transitions a WHEN_NEEDED library from NONE
// toward LOADED once its bytes are available; attach is called with
// the library to splice in decoded members and scripts fetched from
// its external file. The caller is responsible for sourcing those
// bytes (network, filesystem); CastManager only tracks the lifecycle.
func (cm *CastManager) EnsureLoaded(lib *CastLibrary, attach func(*CastLibrary) error) error {
	if lib.State == CastStateLoaded {
		return nil
	}
	lib.State = CastStateLoading
	if err := attach(lib); err != nil {
		lib.State = CastStateNone
		return err
	}
	lib.State = CastStateLoaded
	return nil
}

// findScriptSlotByName resolves a script member's slot by name,
// case-insensitively, the counterpart to CastManager.ResolveScriptByName.
func (l *CastLibrary) findScriptSlotByName(name string) (int32, bool) {
	for slot, m := range l.members {
		if m.Type == MemberTypeScript && strings.EqualFold(m.Name, name) {
			return slot, true
		}
	}
	return 0, false
}

// buildCastManager assembles every cast library from a container's
// decoded chunk table: MCsL supplies the library roster (falling back
// to a single synthesized internal library when the container has
// none, the common case for a standalone movie with no external
// casts), KEY* correlates each library to its CAS* member array, and
// CAS* in turn maps member slots to CASt/Lscr resources.
func buildCastManager(chunks *ChunkTable, keys *KeyTable) (*CastManager, error) {
	cm := newCastManager()

	entries := []castLibraryEntry{{Name: "internal"}}
	if mcslIDs := chunks.IDsByFourCC(fccMCsL); len(mcslIDs) > 0 {
		if c, ok := chunks.Get(mcslIDs[0]); ok {
			if libs, ok := c.Payload.([]castLibraryEntry); ok && len(libs) > 0 {
				entries = libs
			}
		}
	}

	casArrayIDs := chunks.IDsByFourCC(fccCasStar)

	for i, e := range entries {
		lib := &CastLibrary{
			Number:      int32(i + 1),
			Name:        e.Name,
			FileName:    e.FileName,
			PreloadMode: e.PreloadMode,
			MinMember:   e.MinMember,
			MaxMember:   e.MaxMember,
			keyID:       e.KeyID,
		}

		arr := resolveCastArray(chunks, keys, lib.keyID, casArrayIDs, i)
		if arr != nil {
			populateCastLibrary(lib, arr, chunks, keys)
		}

		if lib.FileName != "" && arr == nil {
			lib.State = CastStateNone
		} else {
			lib.State = CastStateLoaded
		}

		cm.libraries = append(cm.libraries, lib)
		cm.byNumber[lib.Number] = lib
	}

	return cm, nil
}

// resolveCastArray finds the CAS* member array owned by a library: by
// KEY* correlation when available, falling back to positional pairing
// with the container's CAS* chunks (the common single-cast case, where
// no KEY* entry is needed because there is only one candidate).
func resolveCastArray(chunks *ChunkTable, keys *KeyTable, keyID uint32, casArrayIDs []uint32, index int) *CastArray {
	if keys != nil {
		if section, ok := keys.Lookup(keyID, fccCasStar); ok {
			if c, ok := chunks.Get(section); ok {
				if arr, ok := c.Payload.(*CastArray); ok {
					return arr
				}
			}
		}
	}
	if index < len(casArrayIDs) {
		if c, ok := chunks.Get(casArrayIDs[index]); ok {
			if arr, ok := c.Payload.(*CastArray); ok {
				return arr
			}
		}
	}
	return nil
}

// populateCastLibrary fills a library's member and script slots from
// its CAS* array, resolving each slot's resource id through the chunk
// table. Script members get their compiled lingo.Script attached; any
// member type gets its auxiliary media chunk (BITD, STXT, snd) spliced
// in through the member's own KEY* ownership entry.
func populateCastLibrary(lib *CastLibrary, arr *CastArray, chunks *ChunkTable, keys *KeyTable) {
	for i, memberID := range arr.MemberIDs {
		if memberID == 0 {
			continue
		}
		slot := int32(i + 1)
		c, ok := chunks.Get(memberID)
		if !ok {
			continue
		}
		member, ok := c.Payload.(*CastMember)
		if !ok {
			continue
		}
		lib.putMember(slot, member)
		attachMemberMedia(member, memberID, chunks, keys)

		if member.Type == MemberTypeScript && member.ScriptID >= 0 {
			sc, ok := chunks.Get(uint32(member.ScriptID))
			if !ok {
				continue
			}
			script, ok := sc.Payload.(*lingo.Script)
			if !ok {
				continue
			}
			script.CastLib = lib.Number
			script.Member = slot
			lib.putScript(slot, script)
		}
	}
}

// attachMemberMedia splices a cast member's auxiliary payload chunk
// (bitmap, styled text, sound) onto the CastMember, found via the
// member's own KEY* ownership entries rather than a fixed offset, since
// a member's media chunk can be any resource id in the container.
func attachMemberMedia(member *CastMember, memberID uint32, chunks *ChunkTable, keys *KeyTable) {
	if keys == nil {
		return
	}
	if section, ok := keys.Lookup(memberID, fccBITD); ok {
		if c, ok := chunks.Get(section); ok {
			if info, ok := c.Payload.(*CastMemberBitmapInfo); ok {
				member.Bitmap = info
			}
		}
	}
	if section, ok := keys.Lookup(memberID, fccSTXT); ok {
		if c, ok := chunks.Get(section); ok {
			if text, ok := c.Payload.(*StyledText); ok {
				member.Text = text
			}
		}
	}
	if section, ok := keys.Lookup(memberID, fccSnd); ok {
		if c, ok := chunks.Get(section); ok {
			if snd, ok := c.Payload.(*CastMemberSoundInfo); ok {
				member.Sound = snd
			}
		}
	}
}
