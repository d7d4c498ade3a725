package rawhdf5

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildV1Attribute(name string, value []byte, dtClass byte, dtSize uint32) []byte {
	pad8 := func(b []byte) []byte {
		if rem := len(b) % 8; rem != 0 {
			b = append(b, make([]byte, 8-rem)...)
		}
		return b
	}

	nameBytes := pad8(append([]byte(name), 0))
	datatype := make([]byte, 8)
	datatype[0] = dtClass & 0x0F
	binary.LittleEndian.PutUint32(datatype[4:8], dtSize)
	datatype = pad8(datatype)

	dataspace := make([]byte, 16)
	dataspace[0] = 1
	dataspace[1] = 1
	binary.LittleEndian.PutUint64(dataspace[8:16], uint64(len(value))/uint64(dtSize))
	dataspace = pad8(dataspace)

	var out bytes.Buffer
	out.WriteByte(1) // version
	out.WriteByte(0) // reserved
	var nameSize, dtSizeField, dsSizeField [2]byte
	binary.LittleEndian.PutUint16(nameSize[:], uint16(len(nameBytes)))
	binary.LittleEndian.PutUint16(dtSizeField[:], uint16(len(datatype)))
	binary.LittleEndian.PutUint16(dsSizeField[:], uint16(len(dataspace)))
	out.Write(nameSize[:])
	out.Write(dtSizeField[:])
	out.Write(dsSizeField[:])
	out.Write(nameBytes)
	out.Write(datatype)
	out.Write(dataspace)
	out.Write(pad8(append([]byte{}, value...)))
	return out.Bytes()
}

func TestParseAttributeString(t *testing.T) {
	value := append([]byte("double"), 0, 0)
	msg := buildV1Attribute("MATLAB_class", value, 3, 1)
	attr, err := parseAttribute(msg, testSuperblockInfo())
	if err != nil {
		t.Fatalf("parseAttribute: %v", err)
	}
	if attr.Name != "MATLAB_class" {
		t.Fatalf("Name = %q", attr.Name)
	}
	if got := attr.AsString(); got != "double" {
		t.Fatalf("AsString() = %q, want double", got)
	}
}

func TestParseAttributeUint(t *testing.T) {
	value := make([]byte, 4)
	binary.LittleEndian.PutUint32(value, 1)
	msg := buildV1Attribute("MATLAB_empty", value, 0, 4)
	attr, err := parseAttribute(msg, testSuperblockInfo())
	if err != nil {
		t.Fatalf("parseAttribute: %v", err)
	}
	if attr.AsUint() != 1 {
		t.Fatalf("AsUint() = %d, want 1", attr.AsUint())
	}
}
