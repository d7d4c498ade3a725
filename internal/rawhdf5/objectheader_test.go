package rawhdf5

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func testSuperblockInfo() SuperblockInfo {
	return SuperblockInfo{OffsetSize: 8, LengthSize: 8, Endianness: binary.LittleEndian}
}

// encodeV1Message appends one v1-framed message (type, size, flags,
// 3 reserved bytes, then size bytes of data already padded to a
// multiple of 8) to buf.
func encodeV1Message(buf *bytes.Buffer, mtype uint16, data []byte) {
	if len(data)%8 != 0 {
		pad := 8 - len(data)%8
		data = append(data, make([]byte, pad)...)
	}
	var head [8]byte
	binary.LittleEndian.PutUint16(head[0:2], mtype)
	binary.LittleEndian.PutUint16(head[2:4], uint16(len(data)))
	buf.Write(head[:])
	buf.Write(data)
}

// buildV1ObjectHeader assembles a full v1 object header (16-byte
// prefix plus framed messages) at offset 0 of the returned buffer.
func buildV1ObjectHeader(messages [][]byte) []byte {
	var body bytes.Buffer
	for i := 0; i+1 < len(messages); i += 2 {
		mtype := binary.LittleEndian.Uint16(messages[i])
		encodeV1Message(&body, mtype, messages[i+1])
	}

	var out bytes.Buffer
	out.WriteByte(1) // version
	out.WriteByte(0) // reserved
	var msgCount [2]byte
	binary.LittleEndian.PutUint16(msgCount[:], uint16(len(messages)/2))
	out.Write(msgCount[:])
	out.Write(make([]byte, 4)) // reference count
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(body.Len()))
	out.Write(size[:])
	out.Write(make([]byte, 4)) // padding
	out.Write(body.Bytes())
	return out.Bytes()
}

func typeTag(t uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, t)
	return b
}

func TestReadMessagesV1DataspaceAndDatatype(t *testing.T) {
	dataspace := make([]byte, 16)
	dataspace[0] = 1 // version
	dataspace[1] = 1 // rank
	binary.LittleEndian.PutUint64(dataspace[8:16], 5)

	datatype := make([]byte, 8)
	datatype[0] = 0x11 // class=1 (float), version nibble=1
	binary.LittleEndian.PutUint32(datatype[4:8], 8)

	raw := buildV1ObjectHeader([][]byte{
		typeTag(msgDataspace), dataspace,
		typeTag(msgDatatype), datatype,
	})

	r := bytes.NewReader(raw)
	msgs, err := readMessages(r, 0, testSuperblockInfo())
	if err != nil {
		t.Fatalf("readMessages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}

	dims, err := parseDataspace(msgs[0].Data, testSuperblockInfo())
	if err != nil {
		t.Fatalf("parseDataspace: %v", err)
	}
	if len(dims) != 1 || dims[0] != 5 {
		t.Fatalf("dims = %v, want [5]", dims)
	}

	dt, err := parseDatatype(msgs[1].Data)
	if err != nil {
		t.Fatalf("parseDatatype: %v", err)
	}
	if dt.Class != 1 || dt.Size != 8 {
		t.Fatalf("datatype = %+v, want class=1 size=8", dt)
	}
}

func TestReadMessagesV1Continuation(t *testing.T) {
	// The header's own message block holds only a continuation message;
	// the real dataspace message lives in a second block reached via
	// that continuation's (offset, length) pair.
	dataspace := make([]byte, 16)
	dataspace[0] = 1
	dataspace[1] = 1
	binary.LittleEndian.PutUint64(dataspace[8:16], 42)

	var contBlock bytes.Buffer
	encodeV1Message(&contBlock, msgDataspace, dataspace)

	var headerMsg bytes.Buffer
	encodeV1Message(&headerMsg, msgContinuation, make([]byte, 16)) // placeholder, patched below

	const prefixSize = 16
	contBlockOffset := uint64(prefixSize + headerMsg.Len())

	contMsgData := make([]byte, 16)
	binary.LittleEndian.PutUint64(contMsgData[0:8], contBlockOffset)
	binary.LittleEndian.PutUint64(contMsgData[8:16], uint64(contBlock.Len()))
	headerMsg.Reset()
	encodeV1Message(&headerMsg, msgContinuation, contMsgData)

	var out bytes.Buffer
	out.WriteByte(1)
	out.WriteByte(0)
	var msgCount [2]byte
	binary.LittleEndian.PutUint16(msgCount[:], 1)
	out.Write(msgCount[:])
	out.Write(make([]byte, 4))
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(headerMsg.Len()))
	out.Write(size[:])
	out.Write(make([]byte, 4))
	out.Write(headerMsg.Bytes())
	out.Write(contBlock.Bytes())

	raw := out.Bytes()
	r := bytes.NewReader(raw)
	msgs, err := readMessages(r, 0, testSuperblockInfo())
	if err != nil {
		t.Fatalf("readMessages: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1 (from continuation block)", len(msgs))
	}
	dims, err := parseDataspace(msgs[0].Data, testSuperblockInfo())
	if err != nil {
		t.Fatalf("parseDataspace: %v", err)
	}
	if len(dims) != 1 || dims[0] != 42 {
		t.Fatalf("dims = %v, want [42]", dims)
	}
}
