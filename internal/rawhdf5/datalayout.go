package rawhdf5

import (
	"encoding/binary"
	"fmt"
)

// Data Layout classes.
const (
	layoutCompact    = 0
	layoutContiguous = 1
	layoutChunked    = 2
)

// layoutInfo is the subset of a Data Layout message this package acts
// on. Chunked layouts are recognized but not traversed: MATLAB rarely
// chunks the small reference and metadata arrays MCOS reconstruction
// reads, and Dataset.ReadRaw returns an error for a chunked layout
// rather than walk its b-tree.
type layoutInfo struct {
	Class       uint8
	Address     uint64
	Size        uint64
	CompactData []byte
}

// parseDataLayout decodes a version-3 Data Layout message. Earlier
// message versions are not produced by the HDF5 1.8+ library MATLAB
// uses to write v7.3 files and are not handled here.
func parseDataLayout(data []byte, sbi SuperblockInfo) (layoutInfo, error) {
	if len(data) < 2 {
		return layoutInfo{}, fmt.Errorf("rawhdf5: data layout message too short (%d bytes)", len(data))
	}
	version := data[0]
	if version != 3 {
		return layoutInfo{}, fmt.Errorf("rawhdf5: unsupported data layout message version %d", version)
	}
	class := data[1]
	pos := 2

	switch class {
	case layoutCompact:
		if pos+2 > len(data) {
			return layoutInfo{}, fmt.Errorf("rawhdf5: compact layout truncated")
		}
		size := binary.LittleEndian.Uint16(data[pos : pos+2])
		pos += 2
		if pos+int(size) > len(data) {
			return layoutInfo{}, fmt.Errorf("rawhdf5: compact layout data truncated")
		}
		return layoutInfo{Class: layoutCompact, Size: uint64(size), CompactData: data[pos : pos+int(size)]}, nil

	case layoutContiguous:
		need := int(sbi.OffsetSize) + int(sbi.LengthSize)
		if pos+need > len(data) {
			return layoutInfo{}, fmt.Errorf("rawhdf5: contiguous layout truncated")
		}
		addr := sbi.readOffset(data[pos : pos+int(sbi.OffsetSize)])
		pos += int(sbi.OffsetSize)
		size := sbi.readLength(data[pos : pos+int(sbi.LengthSize)])
		return layoutInfo{Class: layoutContiguous, Address: addr, Size: size}, nil

	case layoutChunked:
		if pos+1 > len(data) {
			return layoutInfo{}, fmt.Errorf("rawhdf5: chunked layout truncated")
		}
		dimensionality := int(data[pos])
		pos++
		need := int(sbi.OffsetSize) + dimensionality*4
		if pos+need > len(data) {
			return layoutInfo{}, fmt.Errorf("rawhdf5: chunked layout truncated")
		}
		addr := sbi.readOffset(data[pos : pos+int(sbi.OffsetSize)])
		return layoutInfo{Class: layoutChunked, Address: addr}, nil

	default:
		return layoutInfo{}, fmt.Errorf("rawhdf5: unsupported data layout class %d", class)
	}
}
