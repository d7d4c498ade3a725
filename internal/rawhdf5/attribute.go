package rawhdf5

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// attributeInfo is a decoded Attribute message: its name, element
// datatype, dataspace dimensions, and raw value bytes.
type attributeInfo struct {
	Name     string
	Datatype datatypeInfo
	Dims     []uint64
	Value    []byte
}

// parseAttribute decodes one Attribute message. Versions 1 (8-byte
// padded fields), 2, and 3 (unpadded, with a name character-encoding
// byte) are all produced by libraries in common use and are handled
// here.
func parseAttribute(data []byte, sbi SuperblockInfo) (attributeInfo, error) {
	if len(data) < 8 {
		return attributeInfo{}, fmt.Errorf("rawhdf5: attribute message too short (%d bytes)", len(data))
	}
	version := data[0]
	nameSize := int(binary.LittleEndian.Uint16(data[2:4]))
	dtSize := int(binary.LittleEndian.Uint16(data[4:6]))
	dsSize := int(binary.LittleEndian.Uint16(data[6:8]))

	pos := 8
	if version == 3 {
		pos = 9 // skip name-encoding byte
	}

	padTo8 := version == 1

	readField := func(size int) ([]byte, error) {
		if pos+size > len(data) {
			return nil, fmt.Errorf("rawhdf5: attribute message field truncated")
		}
		field := data[pos : pos+size]
		pos += size
		if padTo8 {
			if rem := size % 8; rem != 0 {
				pad := 8 - rem
				if pos+pad > len(data) {
					return nil, fmt.Errorf("rawhdf5: attribute message padding truncated")
				}
				pos += pad
			}
		}
		return field, nil
	}

	nameBytes, err := readField(nameSize)
	if err != nil {
		return attributeInfo{}, err
	}
	name := string(bytes.TrimRight(nameBytes, "\x00"))

	dtBytes, err := readField(dtSize)
	if err != nil {
		return attributeInfo{}, err
	}
	dt, err := parseDatatype(dtBytes)
	if err != nil {
		return attributeInfo{}, err
	}

	dsBytes, err := readField(dsSize)
	if err != nil {
		return attributeInfo{}, err
	}
	dims, err := parseDataspace(dsBytes, sbi)
	if err != nil {
		return attributeInfo{}, err
	}

	value := data[pos:]
	return attributeInfo{Name: name, Datatype: dt, Dims: dims, Value: value}, nil
}

// AsString interprets the attribute's value as a fixed-length ASCII
// string, the encoding MATLAB uses for MATLAB_class and similar
// string-valued attributes.
func (a attributeInfo) AsString() string {
	return string(bytes.TrimRight(a.Value, "\x00"))
}

// AsUint interprets the attribute's value as a single little-endian
// unsigned integer of its declared size, the encoding MATLAB uses for
// MATLAB_empty and MATLAB_int_decode.
func (a attributeInfo) AsUint() uint64 {
	size := int(a.Datatype.Size)
	if size == 0 || size > 8 || size > len(a.Value) {
		size = min(len(a.Value), 8)
	}
	return readSized(a.Value, uint8(size), binary.LittleEndian)
}
