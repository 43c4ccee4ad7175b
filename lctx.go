// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import (
	"encoding/binary"

	"github.com/Quackster/LibreShockwave-sub002/lingo"
)

// ScriptContext is the decoded Lctx chunk: the Lnam resource this
// context's scripts resolve names against, plus the ordered list of
// Lscr resource ids belonging to it (a zero entry marks an unused
// script slot, matching the CAS* zero-entry convention).
type ScriptContext struct {
	LnamID    uint32
	ScriptIDs []uint32
}

func decodeLctx(payload []byte, order binary.ByteOrder) (*ScriptContext, error) {
	r := NewReader(payload, order)
	lnamID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	ids := make([]uint32, 0, count)
	for i := uint32(0); i < count; i++ {
		id, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return &ScriptContext{LnamID: lnamID, ScriptIDs: ids}, nil
}

// attachScriptNames is the post-load fix-up pass every loader runs
// once the full chunk table is available: each Lctx names the Lnam
// its Lscr children resolve identifiers through, but decodeLscr cannot
// see that association on its own since Lscr chunks are decoded
// independently and in arbitrary discovery order.
func attachScriptNames(chunks *ChunkTable) {
	for _, lctxID := range chunks.IDsByFourCC(fccLctx) {
		lc, ok := chunks.Get(lctxID)
		if !ok {
			continue
		}
		ctx, ok := lc.Payload.(*ScriptContext)
		if !ok {
			continue
		}
		nc, ok := chunks.Get(ctx.LnamID)
		if !ok {
			continue
		}
		names, ok := nc.Payload.(*lingo.NameTable)
		if !ok {
			continue
		}
		for _, scriptID := range ctx.ScriptIDs {
			if scriptID == 0 {
				continue
			}
			sc, ok := chunks.Get(scriptID)
			if !ok {
				continue
			}
			if script, ok := sc.Payload.(*lingo.Script); ok {
				script.Names = names
			}
		}
	}
}

// encodeLctx is the inverse of decodeLctx, used to build Lctx fixtures.
func encodeLctx(lnamID uint32, ids []uint32, order binary.ByteOrder) []byte {
	buf := make([]byte, 8)
	order.PutUint32(buf[0:4], lnamID)
	order.PutUint32(buf[4:8], uint32(len(ids)))
	for _, id := range ids {
		b := make([]byte, 4)
		order.PutUint32(b, id)
		buf = append(buf, b...)
	}
	return buf
}
