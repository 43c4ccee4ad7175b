// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import "encoding/binary"

// CastArray is the CAS* chunk payload: a dense array of member
// resource ids indexed by slot within one cast library. A zero entry
// means the slot is unoccupied.
type CastArray struct {
	MemberIDs []uint32
}

// SlotFor returns the 0-based slot index owning resourceID, or -1.
func (c *CastArray) SlotFor(resourceID uint32) int {
	for i, id := range c.MemberIDs {
		if id == resourceID {
			return i
		}
	}
	return -1
}

func decodeCastArray(payload []byte, order binary.ByteOrder) *CastArray {
	n := len(payload) / 4
	ids := make([]uint32, 0, n)
	r := NewReader(payload, order)
	for i := 0; i < n; i++ {
		v, err := r.ReadUint32()
		if err != nil {
			break
		}
		ids = append(ids, v)
	}
	return &CastArray{MemberIDs: ids}
}

func encodeCastArray(ids []uint32, order binary.ByteOrder) []byte {
	buf := make([]byte, len(ids)*4)
	for i, id := range ids {
		order.PutUint32(buf[i*4:], id)
	}
	return buf
}
