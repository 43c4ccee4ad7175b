// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/Quackster/LibreShockwave-sub002/lingo"
)

// CastMemberBitmapInfo is the header-only decode of a BITD/CLUT pair:
// pixel dimensions and bit depth are exposed, the pixel data itself
// stays opaque in the owning Chunk's RawBytes.
type CastMemberBitmapInfo struct {
	Width   int32
	Height  int32
	Depth   int32
	Palette lingo.Datum // always Void: the owning CLUT is not linked
}

// decodeBitmapInfo reads the fixed-size bitmap/palette header: width,
// height, bit depth. Pixel payload bytes are left in the Chunk's
// RawBytes for a renderer to consume separately.
func decodeBitmapInfo(payload []byte, order binary.ByteOrder) *CastMemberBitmapInfo {
	r := NewReader(payload, order)
	width, err := r.ReadInt32()
	if err != nil {
		return &CastMemberBitmapInfo{Palette: lingo.Void()}
	}
	height, err := r.ReadInt32()
	if err != nil {
		return &CastMemberBitmapInfo{Width: width, Palette: lingo.Void()}
	}
	depth, err := r.ReadInt16()
	if err != nil {
		depth = 8
	}
	return &CastMemberBitmapInfo{
		Width:   width,
		Height:  height,
		Depth:   int32(depth),
		Palette: lingo.Void(),
	}
}

// CastMemberSoundInfo is the header-only decode of an snd chunk: enough
// to answer duration/format property lookups without materialising the
// sample data.
type CastMemberSoundInfo struct {
	SampleRate    int32
	Channels      int32
	BitsPerSample int32
	SampleFrames  int32
}

func decodeSoundInfo(payload []byte, order binary.ByteOrder) *CastMemberSoundInfo {
	r := NewReader(payload, order)
	rate, _ := r.ReadInt32()
	channels, _ := r.ReadInt16()
	bits, _ := r.ReadInt16()
	frames, _ := r.ReadInt32()
	return &CastMemberSoundInfo{
		SampleRate:    rate,
		Channels:      int32(channels),
		BitsPerSample: int32(bits),
		SampleFrames:  frames,
	}
}

// StyledText is the fully decoded STXT payload: the plain text run,
// decoded out of its UTF-16 or Mac Roman encoding.
type StyledText struct {
	Text string
}

// decodeStyledText parses an STXT chunk: a text-length/style-length
// header followed by the text bytes and a style-run table this
// decoder does not interpret (formatting is opaque; the plain text
// content is what scripts read through field/text members).
func decodeStyledText(payload []byte, order binary.ByteOrder) (*StyledText, error) {
	r := NewReader(payload, order)
	textLen, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint32(); err != nil { // styleLen, unused
		return nil, err
	}
	textBytes, err := r.ReadBytes(int(textLen))
	if err != nil {
		return nil, err
	}
	text, err := decodeStxtText(textBytes)
	if err != nil {
		return nil, err
	}
	return &StyledText{Text: text}, nil
}

// decodeStxtText decodes STXT body bytes as UTF-16 when they contain
// a NUL byte (big-endian unless a BOM says otherwise), falling back to
// Mac Roman for classic single-byte Director movies. A BOM alone,
// without any NUL byte, does not select UTF-16.
func decodeStxtText(b []byte) (string, error) {
	if bytes.IndexByte(b, 0) >= 0 {
		decoder := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		s, err := decoder.Bytes(b)
		if err != nil {
			return "", err
		}
		return string(s), nil
	}
	s, err := charmap.Macintosh.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// encodeStyledText is the inverse of decodeStyledText, used by tests
// that synthesize STXT fixtures from plain ASCII (single-byte-safe
// under both Mac Roman and UTF-16 decode paths).
func encodeStyledText(text string, order binary.ByteOrder) []byte {
	buf := make([]byte, 8)
	order.PutUint32(buf[0:4], uint32(len(text)))
	order.PutUint32(buf[4:8], 0)
	return append(buf, text...)
}
