// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package director

import "encoding/binary"

// CastMemberType is the member's payload kind, per the CASt type code.
type CastMemberType int

const (
	MemberTypeUnknown CastMemberType = iota
	MemberTypeBitmap
	MemberTypeFilmLoop
	MemberTypeText
	MemberTypePalette
	MemberTypeShape
	MemberTypeSound
	MemberTypeButton
	MemberTypeDigitalVideo
	MemberTypeScript
	MemberTypeField
	MemberTypeXtra
)

var castMemberTypeNames = map[CastMemberType]string{
	MemberTypeUnknown:      "unknown",
	MemberTypeBitmap:       "bitmap",
	MemberTypeFilmLoop:     "filmLoop",
	MemberTypeText:         "text",
	MemberTypePalette:      "palette",
	MemberTypeShape:        "shape",
	MemberTypeSound:        "sound",
	MemberTypeButton:       "button",
	MemberTypeDigitalVideo: "digitalVideo",
	MemberTypeScript:       "script",
	MemberTypeField:        "field",
	MemberTypeXtra:         "xtra",
}

func (t CastMemberType) String() string {
	if n, ok := castMemberTypeNames[t]; ok {
		return n
	}
	return "unknown"
}

// castMemberTypeFromCode maps the on-disk CASt type code to our
// CastMemberType enum.
func castMemberTypeFromCode(code uint16) CastMemberType {
	if int(code) < len(castMemberTypeNames) {
		return CastMemberType(code)
	}
	return MemberTypeUnknown
}

// CastMember is one typed asset in a cast library: bitmap, field,
// text, script, sound, shape, palette, film loop, digital video, xtra.
// Mutable only through the setter methods below; everything else is
// fixed at load time.
type CastMember struct {
	ID       uint32
	Name     string
	Type     CastMemberType
	ScriptID int32 // resource id of this member's Lscr, -1 if none

	Bitmap *CastMemberBitmapInfo
	Sound  *CastMemberSoundInfo
	Text   *StyledText

	props map[string]string
}

// SetProp sets a free-form string property on the member (the
// provider-facing get_member_prop/set_member_prop hook operates at
// this granularity; richer typed props are exposed by the Type-
// specific structs above).
func (m *CastMember) SetProp(name, value string) {
	if m.props == nil {
		m.props = make(map[string]string)
	}
	m.props[name] = value
}

// Prop reads a free-form string property, or "" if unset.
func (m *CastMember) Prop(name string) (string, bool) {
	v, ok := m.props[name]
	return v, ok
}

// castInfoNameSlot is the index of the member name within the CASt
// info-list's offset table; Director always puts it first.
const castInfoNameSlot = 0

// decodeCastMember parses a CASt chunk body: type code (reader's
// native order), then a nested info-list and specific-data block,
// both length-prefixed with big-endian fields regardless of the outer
// container's endian.
func decodeCastMember(id uint32, payload []byte, order binary.ByteOrder) (*CastMember, error) {
	r := NewReader(payload, order)
	typeCode, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	be := NewReader(payload[r.Pos():], binary.BigEndian)
	infoLen, err := be.ReadUint32()
	if err != nil {
		return nil, err
	}
	infoBytes, err := be.ReadBytes(int(infoLen))
	if err != nil {
		return nil, err
	}
	specificLen, err := be.ReadUint32()
	if err != nil {
		return nil, err
	}
	specificBytes, err := be.ReadBytes(int(specificLen))
	if err != nil {
		return nil, err
	}

	name, err := decodeCastInfoName(infoBytes)
	if err != nil {
		return nil, err
	}

	cm := &CastMember{
		ID:       id,
		Name:     name,
		Type:     castMemberTypeFromCode(typeCode),
		ScriptID: -1,
	}
	if cm.Type == MemberTypeScript && len(specificBytes) >= 4 {
		sr := NewReader(specificBytes, order)
		sid, err := sr.ReadUint32()
		if err == nil {
			cm.ScriptID = int32(sid)
		}
	}
	return cm, nil
}

// decodeCastInfoName extracts the member name, the first string in the
// info-list's offset-delimited blob: a uint16 item count, (count+1)
// uint32 offsets, then the concatenated string data they index into.
func decodeCastInfoName(info []byte) (string, error) {
	if len(info) == 0 {
		return "", nil
	}
	r := NewReader(info, binary.BigEndian)
	count, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "", nil
	}
	offsets := make([]uint32, count+1)
	for i := range offsets {
		v, err := r.ReadUint32()
		if err != nil {
			return "", err
		}
		offsets[i] = v
	}
	blobStart := r.Pos()
	start := blobStart + int(offsets[castInfoNameSlot])
	end := blobStart + int(offsets[castInfoNameSlot+1])
	if start < 0 || end > len(info) || start > end {
		return "", ErrTruncatedInput
	}
	return string(info[start:end]), nil
}

// encodeCastInfoList builds the offset-delimited info-list blob used by
// the member name (and, in principle, further info strings); used by
// test fixtures and mirrored by decodeCastInfoName.
func encodeCastInfoList(strs ...string) []byte {
	offsets := make([]uint32, len(strs)+1)
	var blob []byte
	for i, s := range strs {
		offsets[i] = uint32(len(blob))
		blob = append(blob, s...)
	}
	offsets[len(strs)] = uint32(len(blob))

	buf := make([]byte, 2+4*len(offsets))
	binary.BigEndian.PutUint16(buf[0:2], uint16(len(strs)))
	for i, off := range offsets {
		binary.BigEndian.PutUint32(buf[2+4*i:], off)
	}
	return append(buf, blob...)
}

// encodeCastMember is the encode-side mirror of decodeCastMember used
// by container_test.go to synthesize CASt fixtures.
func encodeCastMember(typeCode uint16, name string, specific []byte, order binary.ByteOrder) []byte {
	info := encodeCastInfoList(name)

	var buf []byte
	typeBuf := make([]byte, 2)
	order.PutUint16(typeBuf, typeCode)
	buf = append(buf, typeBuf...)

	infoLen := make([]byte, 4)
	binary.BigEndian.PutUint32(infoLen, uint32(len(info)))
	buf = append(buf, infoLen...)
	buf = append(buf, info...)

	specLen := make([]byte, 4)
	binary.BigEndian.PutUint32(specLen, uint32(len(specific)))
	buf = append(buf, specLen...)
	buf = append(buf, specific...)
	return buf
}
