// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import (
	"encoding/binary"

	"github.com/Quackster/LibreShockwave-sub002/lingo"
)

// decodeLnam parses an Lnam chunk body into the shared name table every
// script in the owning context resolves its identifiers against: a
// count followed by that many Pascal strings.
func decodeLnam(payload []byte, order binary.ByteOrder) *lingo.NameTable {
	r := NewReader(payload, order)
	count, err := r.ReadUint16()
	if err != nil {
		return &lingo.NameTable{}
	}
	names := make([]string, 0, count)
	for i := uint16(0); i < count; i++ {
		s, err := r.ReadPascalString()
		if err != nil {
			break
		}
		names = append(names, s)
	}
	return &lingo.NameTable{Names: names}
}

// encodeLnam is the inverse of decodeLnam, used to build Lnam fixtures.
func encodeLnam(names []string, order binary.ByteOrder) []byte {
	buf := make([]byte, 2)
	order.PutUint16(buf, uint16(len(names)))
	for _, s := range names {
		buf = append(buf, byte(len(s)))
		buf = append(buf, s...)
	}
	return buf
}
