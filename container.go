// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import (
	"encoding/binary"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Quackster/LibreShockwave-sub002/lingo"
)

// Options configures a File load: logging, and the VM options applied
// to the File's own embedded VM.
type Options struct {
	// Logger receives loader diagnostics (unrecognised chunks, optional
	// sub-decode failures that do not abort the load). Defaults to a
	// stdout logger filtered to error level.
	Logger log.Logger

	// VM configures the File's embedded lingo.VM; nil selects VM
	// defaults.
	VM *lingo.Options
}

// File is an open Director/Shockwave container: the decoded resource
// table, cast model, and a lingo.VM wired to resolve scripts through
// it. Mirrors the teacher's File shape (header fields plus a raw
// mmap'd/byte-slice backing store plus a logger), generalised from a
// PE image to a RIFX container.
type File struct {
	Order  binary.ByteOrder
	Pipeline PipelineKind

	Chunks *ChunkTable
	Keys   *KeyTable
	Casts  *CastManager

	Providers lingo.Providers
	VM        *lingo.VM

	data   []byte
	mapped mmap.MMap
	f      *os.File
	opts   *Options
	logger *log.Helper
}

// PipelineKind distinguishes the two container bodies a RIFX/XFIR
// header can wrap.
type PipelineKind int

const (
	// PipelineUncompressed is the MV93 body: a flat resource map (imap
	// + mmap) addressing uncompressed, individually RIFF-framed chunks.
	PipelineUncompressed PipelineKind = iota
	// PipelineAfterburner is the FGDM/FGDC body: Fver/Fcdr/ABMP/FGEI-ILS
	// compressed resource stream (see afterburner.go).
	PipelineAfterburner
)

func newOptions(opts *Options) *Options {
	if opts == nil {
		opts = &Options{}
	}
	out := *opts
	if out.Logger == nil {
		out.Logger = log.NewStdLogger(os.Stdout)
	}
	return &out
}

// Open memory-maps path and parses it as a Director/Shockwave
// container.
func Open(path string, opts *Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	file, err := newFile(data, opts)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}
	file.mapped = data
	file.f = f
	return file, nil
}

// OpenBytes parses an in-memory container, for embedders that already
// have the bytes (decompressed archive members, test fixtures, network
// downloads).
func OpenBytes(data []byte, opts *Options) (*File, error) {
	return newFile(data, opts)
}

func newFile(data []byte, opts *Options) (*File, error) {
	o := newOptions(opts)
	file := &File{
		data:   data,
		opts:   o,
		logger: log.NewHelper(log.NewFilter(o.Logger, log.FilterLevel(log.LevelError))),
	}
	if err := file.parse(); err != nil {
		return nil, err
	}
	return file, nil
}

// Close releases the memory mapping (if Open was used) and the
// underlying file handle.
func (file *File) Close() error {
	if file.mapped != nil {
		_ = file.mapped.Unmap()
	}
	if file.f != nil {
		return file.f.Close()
	}
	return nil
}

// parse reads the outer RIFX/XFIR header, dispatches to the
// appropriate pipeline, builds the chunk table, cast model, and wires
// an embedded VM whose ScriptResolver is this file's CastManager.
func (file *File) parse() error {
	if len(file.data) < 12 {
		return ErrTruncatedInput
	}

	outer := binary.BigEndian.Uint32(file.data[0:4])
	switch FourCC(outer) {
	case fccRIFX:
		file.Order = binary.BigEndian
	case fccXFIR:
		file.Order = binary.LittleEndian
	default:
		return ErrUnsupportedContainer
	}

	subtype := FourCC(binary.BigEndian.Uint32(file.data[8:12]))
	var chunks *ChunkTable
	var err error
	switch subtype {
	case fccMV93:
		file.Pipeline = PipelineUncompressed
		chunks, err = file.parseUncompressed()
	case fccFGDM, fccFGDC:
		file.Pipeline = PipelineAfterburner
		chunks, err = file.parseAfterburner()
	default:
		return ErrUnsupportedContainer
	}
	if err != nil {
		return err
	}
	file.Chunks = chunks
	attachScriptNames(chunks)

	if keyIDs := chunks.IDsByFourCC(fccKeyStar); len(keyIDs) > 0 {
		if c, ok := chunks.Get(keyIDs[0]); ok {
			if kt, ok := c.Payload.(*KeyTable); ok {
				file.Keys = kt
			}
		}
	}
	if file.Keys == nil {
		file.Keys = newKeyTable()
	}

	casts, err := buildCastManager(chunks, file.Keys)
	if err != nil {
		return err
	}
	file.Casts = casts

	file.Providers = NewProviders(casts)
	file.VM = lingo.New(file.Providers, file.opts.VM)
	file.VM.ScriptResolver = casts

	return nil
}

// readRIFFSubchunk reads one RIFF-style subchunk (FourCC tag, always
// big-endian, followed by a size field in the container's own byte
// order, followed by that many payload bytes) at an absolute file
// offset.
func readRIFFSubchunk(data []byte, offset int, order binary.ByteOrder) (FourCC, []byte, error) {
	if offset < 0 || offset+8 > len(data) {
		return 0, nil, ErrTruncatedInput
	}
	tag := FourCC(binary.BigEndian.Uint32(data[offset : offset+4]))
	size := order.Uint32(data[offset+4 : offset+8])
	start := offset + 8
	end := start + int(size)
	if end > len(data) || end < start {
		return 0, nil, ErrTruncatedInput
	}
	return tag, data[start:end], nil
}

// imapEntrySize is the fixed imap chunk body: reserved count (4),
// absolute file offset of the mmap subchunk (4), two reserved words.
const imapEntrySize = 16

// mmapHeaderSize is the fixed mmap chunk header preceding its resource
// entries: header length (4), per-entry size (4), allocated count (4),
// used count (4).
const mmapHeaderSize = 16

// mmapResourceEntrySize is the fixed per-entry layout: FourCC (4,
// always big-endian), size (4), absolute file offset (4), flags (4).
const mmapResourceEntrySize = 16

// parseUncompressed decodes the MV93 pipeline: an imap subchunk
// points at the mmap subchunk, whose resource table in turn addresses
// every other RIFF-framed chunk in the file by absolute offset.
func (file *File) parseUncompressed() (*ChunkTable, error) {
	tag, imapBody, err := readRIFFSubchunk(file.data, 12, file.Order)
	if err != nil {
		return nil, err
	}
	if tag != fccImap || len(imapBody) < imapEntrySize {
		return nil, ErrMalformedAbmp
	}
	mmapOffset := file.Order.Uint32(imapBody[4:8])

	mtag, mmapBody, err := readRIFFSubchunk(file.data, int(mmapOffset), file.Order)
	if err != nil {
		return nil, err
	}
	if mtag != fccMmap || len(mmapBody) < mmapHeaderSize {
		return nil, ErrMalformedAbmp
	}

	r := NewReader(mmapBody, file.Order)
	if _, err := r.ReadUint32(); err != nil { // header length, unused
		return nil, err
	}
	entrySize, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint32(); err != nil { // allocated count, unused
		return nil, err
	}
	used, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	chunks := newChunkTable()
	for i := uint32(0); i < used; i++ {
		entryStart := r.Pos()
		fourcc, err := r.ReadFourCC()
		if err != nil {
			return nil, err
		}
		size, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		offset, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadUint32(); err != nil { // flags, unused
			return nil, err
		}
		r.Seek(entryStart + int(entrySize))

		if fourcc == fccFree || fourcc == fccJunk || size == 0 {
			continue
		}

		ctag, payload, err := readRIFFSubchunk(file.data, int(offset), file.Order)
		if err != nil {
			file.logger.Warnf("director: skipping unreadable resource %d (%s): %v", i, fourcc, err)
			continue
		}
		if ctag != fourcc {
			file.logger.Warnf("director: resource %d tag mismatch: mmap says %s, chunk says %s", i, fourcc, ctag)
		}

		chunk, err := decodeChunkPayload(i, fourcc, payload, file.Order)
		if err != nil {
			file.logger.Warnf("director: failed to decode resource %d (%s): %v", i, fourcc, err)
			continue
		}
		chunks.add(chunk)
	}
	return chunks, nil
}
