// Package rawhdf5 supplements github.com/scigolib/hdf5's public API with
// the pieces MCOS reconstruction needs that the public API does not
// expose: arbitrary-element-kind raw dataset reads, object reference
// resolution, and attribute lookup on datasets that are never linked
// into the named tree (so github.com/scigolib/hdf5's own File.Walk
// never visits them).
//
// It does not reimplement a general HDF5 reader. It reads exactly the
// message types MCOS reconstruction touches: Dataspace, Datatype, Data
// Layout, and Attribute, against object headers in both the v1 and v2
// formats, including continuation blocks.
package rawhdf5

import (
	"encoding/binary"
	"fmt"
	"reflect"
)

// SuperblockInfo carries the superblock fields this package needs to
// decode addresses and lengths. It is built by ExtractSuperblock from
// whatever github.com/scigolib/hdf5's File.Superblock() returns; that
// return type lives in an internal package this module cannot import,
// so the fields are copied out by name via reflection instead.
type SuperblockInfo struct {
	OffsetSize  uint8
	LengthSize  uint8
	BaseAddress uint64
	Endianness  binary.ByteOrder
}

// ExtractSuperblock copies the fields this package needs out of sb,
// which must be a pointer to a struct exposing exported Version-less
// OffsetSize, LengthSize, BaseAddress, and Endianness fields — the
// shape github.com/scigolib/hdf5's File.Superblock() returns. Using
// reflection here is not a style choice: the concrete type is declared
// in an internal package this module is not permitted to import, and
// duck-typing its exported fields is the only way to reach them.
func ExtractSuperblock(sb any) (SuperblockInfo, error) {
	v := reflect.ValueOf(sb)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return SuperblockInfo{}, fmt.Errorf("rawhdf5: superblock value is not a struct (%T)", sb)
	}

	offsetSize := v.FieldByName("OffsetSize")
	lengthSize := v.FieldByName("LengthSize")
	baseAddr := v.FieldByName("BaseAddress")
	endian := v.FieldByName("Endianness")
	if !offsetSize.IsValid() || !lengthSize.IsValid() || !endian.IsValid() {
		return SuperblockInfo{}, fmt.Errorf("rawhdf5: superblock value %T missing expected fields", sb)
	}

	info := SuperblockInfo{
		OffsetSize: uint8(offsetSize.Uint()),
		LengthSize: uint8(lengthSize.Uint()),
	}
	if baseAddr.IsValid() {
		info.BaseAddress = baseAddr.Uint()
	}
	if bo, ok := endian.Interface().(binary.ByteOrder); ok && bo != nil {
		info.Endianness = bo
	} else {
		info.Endianness = binary.LittleEndian
	}
	return info, nil
}

// undefinedAddress is the HDF5 sentinel meaning "no address" — all bits
// of the address field set.
func undefinedAddress(size uint8) uint64 {
	switch size {
	case 4:
		return uint64(^uint32(0))
	default:
		return ^uint64(0)
	}
}

func (s SuperblockInfo) isUndefined(addr uint64) bool {
	return addr == undefinedAddress(s.OffsetSize)
}

func (s SuperblockInfo) readOffset(buf []byte) uint64 {
	return readSized(buf, s.OffsetSize, s.Endianness)
}

func (s SuperblockInfo) readLength(buf []byte) uint64 {
	return readSized(buf, s.LengthSize, s.Endianness)
}

func readSized(buf []byte, size uint8, order binary.ByteOrder) uint64 {
	switch size {
	case 2:
		return uint64(order.Uint16(buf))
	case 4:
		return uint64(order.Uint32(buf))
	case 8:
		return order.Uint64(buf)
	default:
		var v uint64
		for i := 0; i < int(size); i++ {
			v |= uint64(buf[i]) << (8 * i)
		}
		return v
	}
}
