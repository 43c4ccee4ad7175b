// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"math"
)

// Reader decodes Director's on-disk primitives: endian-selectable
// integers, always-big-endian FourCC tags, IEEE-754 floats, and the
// Afterburner variable-length integer encoding. Every read is bounds
// checked against the backing slice, mirroring the teacher's
// structUnpack/ReadUintN boundary checks in helper.go.
type Reader struct {
	data  []byte
	pos   int
	order binary.ByteOrder
}

// NewReader wraps data for sequential decoding in the given byte
// order. The order can be changed mid-stream with SetOrder, since a
// single container may switch endianness between its outer RIFX/XFIR
// framing and an embedded, independently-tagged sub-stream.
func NewReader(data []byte, order binary.ByteOrder) *Reader {
	return &Reader{data: data, order: order}
}

func (r *Reader) Len() int                    { return len(r.data) }
func (r *Reader) Pos() int                    { return r.pos }
func (r *Reader) Remaining() int              { return len(r.data) - r.pos }
func (r *Reader) SetOrder(o binary.ByteOrder) { r.order = o }

// Seek repositions the cursor to an absolute offset.
func (r *Reader) Seek(pos int) { r.pos = pos }

func (r *Reader) need(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return ErrTruncatedInput
	}
	return nil
}

// ReadUint8 reads one unsigned byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

// ReadInt8 reads one signed byte.
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadUint16 reads a 16-bit unsigned integer in the reader's byte order.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := r.order.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadInt16 reads a 16-bit signed integer.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads a 32-bit unsigned integer in the reader's byte order.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := r.order.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadInt32 reads a 32-bit signed integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadFloat32 reads an IEEE-754 single-precision float.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads an IEEE-754 double-precision float.
func (r *Reader) ReadFloat64() (float64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := r.order.Uint64(r.data[r.pos:])
	r.pos += 8
	return math.Float64frombits(v), nil
}

// ReadFourCC always reads big-endian, independent of the reader's
// configured byte order, matching the always-big-endian FourCC rule.
func (r *Reader) ReadFourCC() (FourCC, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return FourCC(v), nil
}

// ReadBytes returns the next n bytes as a slice view (no copy).
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadPascalString reads a single-byte length prefix followed by that
// many bytes of text, the short-string framing used by Lnam name
// tables and MCsL cast-library entries.
func (r *Reader) ReadPascalString() (string, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadVLI decodes Director's variable-length integer encoding:
// little-endian groups of 7 payload bits, continuation bit 0x80,
// terminated at the first byte whose continuation bit is clear.
func (r *Reader) ReadVLI() (uint32, error) {
	var v uint32
	for shift := uint(0); ; shift += 7 {
		if shift > 28 {
			return 0, ErrMalformedAbmp
		}
		b, err := r.ReadUint8()
		if err != nil {
			return 0, err
		}
		v |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
	}
}

// Inflate decompresses a zlib-wrapped byte range. Zlib stream errors
// surface as ErrBadCompression; callers needing the resource id wrap
// it in a BadCompressionError.
func Inflate(b []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, ErrBadCompression
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, ErrBadCompression
	}
	return out, nil
}

// Deflate zlib-compresses a byte range, the encode-side mirror of
// Inflate. Nothing in this module calls it.
func Deflate(b []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, _ = w.Write(b)
	_ = w.Close()
	return buf.Bytes()
}

// AppendVLI appends v's VLI encoding to dst, the encode-side mirror of
// ReadVLI, used by the VLI round-trip test.
func AppendVLI(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			dst = append(dst, b|0x80)
		} else {
			dst = append(dst, b)
			return dst
		}
	}
}
