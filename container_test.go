// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import (
	"encoding/binary"
	"testing"

	"github.com/Quackster/LibreShockwave-sub002/lingo"
)

func TestVLIRoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 127, 128, 300, 16384, 1 << 28, 0xFFFFFFF}
	for _, v := range cases {
		buf := AppendVLI(nil, v)
		r := NewReader(buf, binary.BigEndian)
		got, err := r.ReadVLI()
		if err != nil {
			t.Fatalf("ReadVLI(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("VLI round trip: want %d, got %d", v, got)
		}
	}
}

func TestKeyTableRoundTrip(t *testing.T) {
	entries := []struct {
		Owner, Section uint32
		FourCC         FourCC
	}{
		{Owner: 3, Section: 5, FourCC: fccLscr},
		{Owner: 4, Section: 6, FourCC: fccSTXT},
	}
	buf := encodeKeyTable(entries)
	kt, err := decodeKeyTable(buf)
	if err != nil {
		t.Fatalf("decodeKeyTable: %v", err)
	}
	if section, ok := kt.Lookup(3, fccLscr); !ok || section != 5 {
		t.Errorf("Lookup(3, Lscr) = %d, %v; want 5, true", section, ok)
	}
	if section, ok := kt.Lookup(4, fccSTXT); !ok || section != 6 {
		t.Errorf("Lookup(4, STXT) = %d, %v; want 6, true", section, ok)
	}
	if _, ok := kt.Lookup(99, fccLscr); ok {
		t.Errorf("Lookup(99, Lscr) found an entry that should not exist")
	}
}

func TestCastArrayRoundTrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		ids := []uint32{0, 3, 4, 0, 7}
		buf := encodeCastArray(ids, order)
		arr := decodeCastArray(buf, order)
		if len(arr.MemberIDs) != len(ids) {
			t.Fatalf("decodeCastArray: got %d ids, want %d", len(arr.MemberIDs), len(ids))
		}
		if slot := arr.SlotFor(4); slot != 2 {
			t.Errorf("SlotFor(4) = %d, want 2", slot)
		}
		if slot := arr.SlotFor(99); slot != -1 {
			t.Errorf("SlotFor(99) = %d, want -1", slot)
		}
	}
}

func TestCastMemberRoundTrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		specific := []byte{0, 0, 0, 42}
		order.PutUint32(specific, 42)
		buf := encodeCastMember(uint16(MemberTypeScript), "MyScript", specific, order)
		cm, err := decodeCastMember(3, buf, order)
		if err != nil {
			t.Fatalf("decodeCastMember: %v", err)
		}
		if cm.Name != "MyScript" {
			t.Errorf("Name = %q, want MyScript", cm.Name)
		}
		if cm.Type != MemberTypeScript {
			t.Errorf("Type = %v, want script", cm.Type)
		}
		if cm.ScriptID != 42 {
			t.Errorf("ScriptID = %d, want 42", cm.ScriptID)
		}
	}
}

func TestLscrRoundTrip(t *testing.T) {
	order := binary.BigEndian
	var bytecode []byte
	bytecode = append(bytecode, lingo.EncodeInstruction(lingo.OpPushInt8, 3)...)
	bytecode = append(bytecode, lingo.EncodeInstruction(lingo.OpPushInt8, 4)...)
	bytecode = append(bytecode, lingo.EncodeInstruction(lingo.OpAdd, 0)...)
	bytecode = append(bytecode, lingo.EncodeInstruction(lingo.OpRet, 0)...)

	handlers := []lscrHandlerFixture{
		{NameID: 0, Bytecode: bytecode},
	}
	buf := encodeLscr(handlers, nil, lscrHandlerRecordSizeClassic, order)

	script, err := decodeLscr(5, buf, order)
	if err != nil {
		t.Fatalf("decodeLscr: %v", err)
	}
	if len(script.Handlers) != 1 {
		t.Fatalf("got %d handlers, want 1", len(script.Handlers))
	}
	h := script.Handlers[0]
	if len(h.Instructions) != 4 {
		t.Fatalf("got %d instructions, want 4", len(h.Instructions))
	}
	if h.Instructions[2].Opcode != lingo.OpAdd {
		t.Errorf("instruction 2 = %v, want ADD", h.Instructions[2].Opcode)
	}

	vm := lingo.New(lingo.Providers{}, nil)
	result := vm.CallHandler(script, h, lingo.Void(), nil)
	if result.Int32() != 7 {
		t.Errorf("CallHandler result = %d, want 7", result.Int32())
	}
}

func TestStyledTextRoundTrip(t *testing.T) {
	order := binary.BigEndian
	buf := encodeStyledText("hello world", order)
	st, err := decodeStyledText(buf, order)
	if err != nil {
		t.Fatalf("decodeStyledText: %v", err)
	}
	if st.Text != "hello world" {
		t.Errorf("Text = %q, want %q", st.Text, "hello world")
	}
}

// rawResource is one resource the fixture builder below lays out as
// its own RIFF subchunk; its container resource id is its index in
// the resources slice, matching parseUncompressed's id assignment.
type rawResource struct {
	fourcc  FourCC
	payload []byte
}

func appendRIFFSubchunk(dst []byte, tag FourCC, payload []byte, order binary.ByteOrder) []byte {
	var head [8]byte
	binary.BigEndian.PutUint32(head[0:4], uint32(tag))
	order.PutUint32(head[4:8], uint32(len(payload)))
	dst = append(dst, head[:]...)
	dst = append(dst, payload...)
	return dst
}

// buildRIFXContainer assembles a minimal pipeline-A (MV93) container:
// outer header, imap pointing at mmap, mmap's resource table, and each
// resource laid out as its own RIFF subchunk at the offset mmap
// records for it.
func buildRIFXContainer(order binary.ByteOrder, resources []rawResource) []byte {
	outerTag := fccRIFX
	if order == binary.LittleEndian {
		outerTag = fccXFIR
	}

	const headerLen = 12
	imapTotal := 8 + imapEntrySize
	mmapTotal := 8 + mmapHeaderSize + len(resources)*mmapResourceEntrySize
	resourcesStart := headerLen + imapTotal + mmapTotal

	type laidOut struct {
		fourcc FourCC
		offset int
		size   int
	}
	laid := make([]laidOut, len(resources))
	var resourceBytes []byte
	cursor := resourcesStart
	for i, r := range resources {
		sub := appendRIFFSubchunk(nil, r.fourcc, r.payload, order)
		laid[i] = laidOut{fourcc: r.fourcc, offset: cursor, size: len(sub)}
		resourceBytes = append(resourceBytes, sub...)
		cursor += len(sub)
	}

	imapBody := make([]byte, imapEntrySize)
	order.PutUint32(imapBody[0:4], 1)
	order.PutUint32(imapBody[4:8], uint32(headerLen+imapTotal))
	var body []byte
	body = appendRIFFSubchunk(body, fccImap, imapBody, order)

	mmapBody := make([]byte, mmapHeaderSize)
	order.PutUint32(mmapBody[0:4], uint32(mmapHeaderSize))
	order.PutUint32(mmapBody[4:8], uint32(mmapResourceEntrySize))
	order.PutUint32(mmapBody[8:12], uint32(len(resources)))
	order.PutUint32(mmapBody[12:16], uint32(len(resources)))
	for _, r := range laid {
		entry := make([]byte, mmapResourceEntrySize)
		binary.BigEndian.PutUint32(entry[0:4], uint32(r.fourcc))
		order.PutUint32(entry[4:8], uint32(r.size-8))
		order.PutUint32(entry[8:12], uint32(r.offset))
		mmapBody = append(mmapBody, entry...)
	}
	body = appendRIFFSubchunk(body, fccMmap, mmapBody, order)
	body = append(body, resourceBytes...)

	buf := make([]byte, headerLen)
	binary.BigEndian.PutUint32(buf[0:4], uint32(outerTag))
	order.PutUint32(buf[4:8], uint32(len(body)+4))
	binary.BigEndian.PutUint32(buf[8:12], uint32(fccMV93))
	return append(buf, body...)
}

func TestOpenBytesUncompressedPipeline(t *testing.T) {
	for _, tc := range []struct {
		name  string
		order binary.ByteOrder
	}{
		{"RIFX-big-endian", binary.BigEndian},
		{"XFIR-little-endian", binary.LittleEndian},
	} {
		t.Run(tc.name, func(t *testing.T) {
			order := tc.order

			var bytecode []byte
			bytecode = append(bytecode, lingo.EncodeInstruction(lingo.OpPushInt8, 3)...)
			bytecode = append(bytecode, lingo.EncodeInstruction(lingo.OpPushInt8, 4)...)
			bytecode = append(bytecode, lingo.EncodeInstruction(lingo.OpAdd, 0)...)
			bytecode = append(bytecode, lingo.EncodeInstruction(lingo.OpRet, 0)...)
			lscrPayload := encodeLscr([]lscrHandlerFixture{{NameID: 0, Bytecode: bytecode}}, nil, lscrHandlerRecordSizeClassic, order)

			scriptSpecific := make([]byte, 4)
			order.PutUint32(scriptSpecific, 5) // resource id of the Lscr below

			resources := []rawResource{
				// 0: MCsL
				{fccMCsL, encodeCastLibraryList([]castLibraryEntry{{KeyID: 100, Name: "Internal"}}, order)},
				// 1: KEY* (filled in below once every owned id is known)
				{fccKeyStar, nil},
				// 2: CAS*
				{fccCasStar, encodeCastArray([]uint32{3, 4}, order)},
				// 3: CASt script member
				{fccCASt, encodeCastMember(uint16(MemberTypeScript), "MyScript", scriptSpecific, order)},
				// 4: CASt text member
				{fccCASt, encodeCastMember(uint16(MemberTypeText), "MyText", nil, order)},
				// 5: Lscr
				{fccLscr, lscrPayload},
				// 6: STXT
				{fccSTXT, encodeStyledText("hello world", order)},
				// 7: Lnam
				{fccLnam, encodeLnam([]string{"go"}, order)},
				// 8: Lctx
				{fccLctx, encodeLctx(7, []uint32{5}, order)},
			}
			resources[1].payload = encodeKeyTable([]struct {
				Owner, Section uint32
				FourCC         FourCC
			}{
				{Owner: 100, Section: 2, FourCC: fccCasStar},
				{Owner: 3, Section: 5, FourCC: fccLscr},
				{Owner: 4, Section: 6, FourCC: fccSTXT},
			})

			data := buildRIFXContainer(order, resources)

			f, err := OpenBytes(data, nil)
			if err != nil {
				t.Fatalf("OpenBytes: %v", err)
			}
			defer f.Close()

			if f.Order != order {
				t.Errorf("Order mismatch")
			}
			if f.Chunks.Len() != len(resources) {
				t.Errorf("Chunks.Len() = %d, want %d", f.Chunks.Len(), len(resources))
			}

			lib, ok := f.Casts.Library(1)
			if !ok {
				t.Fatal("library 1 not found")
			}
			if lib.Name != "Internal" {
				t.Errorf("library name = %q, want Internal", lib.Name)
			}

			scriptMember, ok := lib.GetMember(1)
			if !ok || scriptMember.Name != "MyScript" {
				t.Fatalf("GetMember(1) = %+v, %v", scriptMember, ok)
			}
			textMember, ok := lib.GetMember(2)
			if !ok || textMember.Name != "MyText" {
				t.Fatalf("GetMember(2) = %+v, %v", textMember, ok)
			}
			if textMember.Text == nil || textMember.Text.Text != "hello world" {
				t.Errorf("text member Text = %+v, want \"hello world\"", textMember.Text)
			}

			script, ok := lib.GetScript(1)
			if !ok {
				t.Fatal("GetScript(1) not found")
			}
			if script.Names == nil || script.Names.Resolve(0) != "go" {
				t.Fatalf("script.Names not attached by Lctx fix-up")
			}
			h := script.FindHandler("go")
			if h == nil {
				t.Fatal("FindHandler(go) not found")
			}

			resolved, ok := f.VM.ScriptResolver.ResolveScriptByName("MyScript")
			if !ok || resolved != script {
				t.Fatalf("ResolveScriptByName(MyScript) = %v, %v", resolved, ok)
			}

			result := f.VM.CallHandler(script, h, lingo.Void(), nil)
			if result.Int32() != 7 {
				t.Errorf("CallHandler(go) = %d, want 7", result.Int32())
			}
		})
	}
}

func TestOpenBytesRejectsUnknownMagic(t *testing.T) {
	_, err := OpenBytes([]byte("nope not a container at all"), nil)
	if err != ErrUnsupportedContainer {
		t.Fatalf("err = %v, want ErrUnsupportedContainer", err)
	}
}

func TestOpenBytesRejectsTruncated(t *testing.T) {
	_, err := OpenBytes([]byte{0, 1, 2}, nil)
	if err != ErrTruncatedInput {
		t.Fatalf("err = %v, want ErrTruncatedInput", err)
	}
}
