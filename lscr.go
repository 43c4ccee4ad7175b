// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import (
	"encoding/binary"
	"math"

	"github.com/Quackster/LibreShockwave-sub002/lingo"
)

// Handler records come in two widths across Director versions: a
// classic 42-byte layout and an extended 46-byte layout carrying four
// extra trailing reserved bytes this decoder does not interpret.
// Rather than guess from the container's declared product version,
// each Lscr chunk states its own record width in its header, so this
// decoder never needs a heuristic.
const (
	lscrHandlerRecordSizeClassic  = 42
	lscrHandlerRecordSizeExtended = 46
)

const lscrHeaderSize = 16

const (
	lscrLiteralInt = iota + 1
	lscrLiteralFloat
	lscrLiteralString
	lscrLiteralSymbol
)

// lscrHandlerRecord is the on-disk handler descriptor: the handler's
// own name id, its argument/local/global name-id sub-tables (each a
// run of uint16 ids at an absolute payload offset), and its bytecode
// span (also an absolute payload offset).
type lscrHandlerRecord struct {
	NameID         uint16
	ArgCount       uint16
	ArgOffset      uint32
	LocalCount     uint16
	LocalOffset    uint32
	GlobalCount    uint16
	GlobalOffset   uint32
	BytecodeLength uint32
	BytecodeOffset uint32
}

func readLscrHandlerRecord(r *Reader, recordSize uint32) (lscrHandlerRecord, error) {
	start := r.Pos()
	var rec lscrHandlerRecord
	var err error
	if rec.NameID, err = r.ReadUint16(); err != nil {
		return rec, err
	}
	if rec.ArgCount, err = r.ReadUint16(); err != nil {
		return rec, err
	}
	if rec.ArgOffset, err = r.ReadUint32(); err != nil {
		return rec, err
	}
	if rec.LocalCount, err = r.ReadUint16(); err != nil {
		return rec, err
	}
	if rec.LocalOffset, err = r.ReadUint32(); err != nil {
		return rec, err
	}
	if rec.GlobalCount, err = r.ReadUint16(); err != nil {
		return rec, err
	}
	if rec.GlobalOffset, err = r.ReadUint32(); err != nil {
		return rec, err
	}
	if rec.BytecodeLength, err = r.ReadUint32(); err != nil {
		return rec, err
	}
	if rec.BytecodeOffset, err = r.ReadUint32(); err != nil {
		return rec, err
	}
	r.Seek(start + int(recordSize))
	return rec, nil
}

func readIDTable(payload []byte, order binary.ByteOrder, offset uint32, count uint16) ([]int, error) {
	if count == 0 {
		return nil, nil
	}
	r := NewReader(payload, order)
	r.Seek(int(offset))
	ids := make([]int, count)
	for i := range ids {
		v, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		ids[i] = int(v)
	}
	return ids, nil
}

func decodeLscrLiterals(payload []byte, offset int, count uint32, order binary.ByteOrder) ([]lingo.Datum, error) {
	if count == 0 {
		return nil, nil
	}
	if offset < 0 || offset > len(payload) {
		return nil, ErrTruncatedInput
	}
	r := NewReader(payload, order)
	r.Seek(offset)
	out := make([]lingo.Datum, 0, count)
	for i := uint32(0); i < count; i++ {
		tag, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		switch tag {
		case lscrLiteralInt:
			v, err := r.ReadInt32()
			if err != nil {
				return nil, err
			}
			out = append(out, lingo.Int(v))
		case lscrLiteralFloat:
			v, err := r.ReadFloat64()
			if err != nil {
				return nil, err
			}
			out = append(out, lingo.Float(v))
		case lscrLiteralString:
			n, err := r.ReadUint32()
			if err != nil {
				return nil, err
			}
			b, err := r.ReadBytes(int(n))
			if err != nil {
				return nil, err
			}
			out = append(out, lingo.Str(string(b)))
		case lscrLiteralSymbol:
			n, err := r.ReadUint32()
			if err != nil {
				return nil, err
			}
			b, err := r.ReadBytes(int(n))
			if err != nil {
				return nil, err
			}
			out = append(out, lingo.Symbol(string(b)))
		default:
			return nil, ErrTruncatedInput
		}
	}
	return out, nil
}

// decodeLscr parses one script chunk: a header naming the literal pool
// and handler table, the handler table itself, and the bytecode each
// handler record points at. CastLib/Member are left zero here;
// CastManager stamps them in once it knows which cast slot owns this
// script, since the id alone does not say.
func decodeLscr(id uint32, payload []byte, order binary.ByteOrder) (*lingo.Script, error) {
	r := NewReader(payload, order)
	literalCount, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	literalsOffset, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	handlerCount, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	recordSize, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if recordSize != lscrHandlerRecordSizeClassic && recordSize != lscrHandlerRecordSizeExtended {
		recordSize = lscrHandlerRecordSizeClassic
	}

	records := make([]lscrHandlerRecord, 0, handlerCount)
	for i := uint32(0); i < handlerCount; i++ {
		rec, err := readLscrHandlerRecord(r, recordSize)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	handlers := make([]*lingo.Handler, 0, len(records))
	for _, rec := range records {
		argIDs, err := readIDTable(payload, order, rec.ArgOffset, rec.ArgCount)
		if err != nil {
			return nil, err
		}
		localIDs, err := readIDTable(payload, order, rec.LocalOffset, rec.LocalCount)
		if err != nil {
			return nil, err
		}
		globalIDs, err := readIDTable(payload, order, rec.GlobalOffset, rec.GlobalCount)
		if err != nil {
			return nil, err
		}

		bcStart := int(rec.BytecodeOffset)
		bcEnd := bcStart + int(rec.BytecodeLength)
		if bcStart < 0 || bcEnd > len(payload) || bcStart > bcEnd {
			return nil, ErrTruncatedInput
		}
		bytecode := payload[bcStart:bcEnd]
		instrs, err := lingo.DecodeInstructions(bytecode)
		if err != nil {
			return nil, err
		}

		handlers = append(handlers, &lingo.Handler{
			NameID:          int(rec.NameID),
			ArgumentNameIDs: argIDs,
			LocalNameIDs:    localIDs,
			GlobalNameIDs:   globalIDs,
			Bytecode:        bytecode,
			Instructions:    instrs,
		})
	}

	literals, err := decodeLscrLiterals(payload, int(literalsOffset), literalCount, order)
	if err != nil {
		return nil, err
	}

	return &lingo.Script{
		Handlers: handlers,
		Literals: literals,
	}, nil
}

// lscrHandlerFixture is the encode-side description of one handler,
// used to build Lscr test fixtures whose bytecode is assembled from
// lingo.EncodeInstruction so decodeLscr's output can be checked against
// lingo.DecodeInstructions directly.
type lscrHandlerFixture struct {
	NameID    uint16
	ArgIDs    []uint16
	LocalIDs  []uint16
	GlobalIDs []uint16
	Bytecode  []byte
}

func encodeLscrLiteral(d lingo.Datum, order binary.ByteOrder) []byte {
	switch d.Kind() {
	case lingo.KindInt:
		buf := make([]byte, 6)
		order.PutUint16(buf[0:2], lscrLiteralInt)
		order.PutUint32(buf[2:6], uint32(d.Int32()))
		return buf
	case lingo.KindFloat:
		buf := make([]byte, 10)
		order.PutUint16(buf[0:2], lscrLiteralFloat)
		order.PutUint64(buf[2:10], math.Float64bits(d.Float64()))
		return buf
	case lingo.KindSymbol:
		s := d.RawString()
		buf := make([]byte, 6+len(s))
		order.PutUint16(buf[0:2], lscrLiteralSymbol)
		order.PutUint32(buf[2:6], uint32(len(s)))
		copy(buf[6:], s)
		return buf
	default:
		s := d.RawString()
		buf := make([]byte, 6+len(s))
		order.PutUint16(buf[0:2], lscrLiteralString)
		order.PutUint32(buf[2:6], uint32(len(s)))
		copy(buf[6:], s)
		return buf
	}
}

func putUint16IDs(dst []byte, ids []uint16, order binary.ByteOrder) []byte {
	for _, id := range ids {
		var b [2]byte
		order.PutUint16(b[:], id)
		dst = append(dst, b[:]...)
	}
	return dst
}

// encodeLscr is the inverse of decodeLscr, used by container_test.go
// to synthesize Lscr fixtures end to end.
func encodeLscr(handlers []lscrHandlerFixture, literals []lingo.Datum, recordSize uint32, order binary.ByteOrder) []byte {
	var idBlob []byte
	argOffsets := make([]uint32, len(handlers))
	localOffsets := make([]uint32, len(handlers))
	globalOffsets := make([]uint32, len(handlers))
	for i, h := range handlers {
		argOffsets[i] = uint32(len(idBlob))
		idBlob = putUint16IDs(idBlob, h.ArgIDs, order)
		localOffsets[i] = uint32(len(idBlob))
		idBlob = putUint16IDs(idBlob, h.LocalIDs, order)
		globalOffsets[i] = uint32(len(idBlob))
		idBlob = putUint16IDs(idBlob, h.GlobalIDs, order)
	}

	var bcBlob []byte
	bcOffsets := make([]uint32, len(handlers))
	for i, h := range handlers {
		bcOffsets[i] = uint32(len(bcBlob))
		bcBlob = append(bcBlob, h.Bytecode...)
	}

	recordsSize := int(recordSize) * len(handlers)
	idBlobStart := uint32(lscrHeaderSize + recordsSize)
	bcBlobStart := idBlobStart + uint32(len(idBlob))
	literalsStart := bcBlobStart + uint32(len(bcBlob))

	buf := make([]byte, lscrHeaderSize)
	order.PutUint32(buf[0:4], uint32(len(literals)))
	order.PutUint32(buf[4:8], literalsStart)
	order.PutUint32(buf[8:12], uint32(len(handlers)))
	order.PutUint32(buf[12:16], recordSize)

	for i, h := range handlers {
		rec := make([]byte, recordSize)
		order.PutUint16(rec[0:2], h.NameID)
		order.PutUint16(rec[2:4], uint16(len(h.ArgIDs)))
		order.PutUint32(rec[4:8], idBlobStart+argOffsets[i])
		order.PutUint16(rec[8:10], uint16(len(h.LocalIDs)))
		order.PutUint32(rec[10:14], idBlobStart+localOffsets[i])
		order.PutUint16(rec[14:16], uint16(len(h.GlobalIDs)))
		order.PutUint32(rec[16:20], idBlobStart+globalOffsets[i])
		order.PutUint32(rec[20:24], uint32(len(h.Bytecode)))
		order.PutUint32(rec[24:28], bcBlobStart+bcOffsets[i])
		buf = append(buf, rec...)
	}

	buf = append(buf, idBlob...)
	buf = append(buf, bcBlob...)
	for _, lit := range literals {
		buf = append(buf, encodeLscrLiteral(lit, order)...)
	}
	return buf
}
