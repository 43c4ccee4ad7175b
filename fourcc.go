// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import "encoding/binary"

// FourCC is a four-byte ASCII tag, always stored big-endian on disk
// regardless of the container's own byte order.
type FourCC uint32

// MakeFourCC packs a 4-character ASCII tag into a FourCC.
func MakeFourCC(s string) FourCC {
	if len(s) != 4 {
		panic("director: FourCC tag must be exactly 4 bytes: " + s)
	}
	return FourCC(binary.BigEndian.Uint32([]byte(s)))
}

func (f FourCC) String() string {
	b := [4]byte{byte(f >> 24), byte(f >> 16), byte(f >> 8), byte(f)}
	return string(b[:])
}

// Known chunk tags this decoder recognises. Anything else falls back
// to UnknownChunk with its raw bytes kept for later lookup by id.
var (
	fccRIFX = MakeFourCC("RIFX")
	fccXFIR = MakeFourCC("XFIR")

	fccMV93 = MakeFourCC("MV93")
	fccFGDM = MakeFourCC("FGDM")
	fccFGDC = MakeFourCC("FGDC")

	fccImap = MakeFourCC("imap")
	fccMmap = MakeFourCC("mmap")

	fccKeyStar = MakeFourCC("KEY*")
	fccCasStar = MakeFourCC("CAS*")
	fccCASt    = MakeFourCC("CASt")
	fccMCsL    = MakeFourCC("MCsL")

	fccLctx = MakeFourCC("Lctx")
	fccLnam = MakeFourCC("Lnam")
	fccLscr = MakeFourCC("Lscr")

	fccVWSC = MakeFourCC("VWSC")
	fccVWLB = MakeFourCC("VWLB")

	fccBITD = MakeFourCC("BITD")
	fccCLUT = MakeFourCC("CLUT")
	fccSTXT = MakeFourCC("STXT")
	fccSnd  = MakeFourCC("snd ")

	fccFver = MakeFourCC("Fver")
	fccFcdr = MakeFourCC("Fcdr")
	fccABMP = MakeFourCC("ABMP")
	fccFGEI = MakeFourCC("FGEI")

	fccFree = MakeFourCC("free")
	fccJunk = MakeFourCC("junk")
)
