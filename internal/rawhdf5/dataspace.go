package rawhdf5

import "fmt"

// dataspaceKind mirrors the HDF5 dataspace "type" byte on v2 messages;
// v1 messages leave it implicit (rank 0 means scalar).
const (
	dataspaceScalar = 0
	dataspaceSimple = 1
	dataspaceNull   = 2
)

// parseDataspace decodes a Dataspace message into its dimension sizes,
// in HDF5 (row-major, fastest-varying-last) order. A scalar or null
// dataspace yields a nil slice.
func parseDataspace(data []byte, sbi SuperblockInfo) ([]uint64, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("rawhdf5: dataspace message too short (%d bytes)", len(data))
	}
	version := data[0]
	rank := int(data[1])
	flags := data[2]

	var kind byte = dataspaceSimple
	var dimsOffset int
	switch version {
	case 1:
		dimsOffset = 8
		if rank == 0 {
			kind = dataspaceScalar
		}
	case 2:
		kind = data[3]
		dimsOffset = 4
	default:
		return nil, fmt.Errorf("rawhdf5: unsupported dataspace version %d", version)
	}

	if kind != dataspaceSimple || rank == 0 {
		return nil, nil
	}

	need := dimsOffset + rank*int(sbi.OffsetSize)
	if len(data) < need {
		return nil, fmt.Errorf("rawhdf5: dataspace message truncated: need %d have %d", need, len(data))
	}

	dims := make([]uint64, rank)
	pos := dimsOffset
	for i := 0; i < rank; i++ {
		dims[i] = sbi.readOffset(data[pos : pos+int(sbi.OffsetSize)])
		pos += int(sbi.OffsetSize)
	}
	_ = flags
	return dims, nil
}
