package decode

import (
	"fmt"
	"math"

	"github.com/scigolib/mat73/internal/rawhdf5"
	"github.com/scigolib/mat73/types"
)

// decodeElements interprets raw dataset bytes as a flat slice of the
// given element kind, in HDF5 storage order (the caller reorients
// axes separately). The concrete Go slice type matches kind: Float64
// decodes to []float64, Int16 to []int16, and so on.
func decodeElements(body []byte, kind types.ElementKind, sbi rawhdf5.SuperblockInfo) (any, error) {
	width := kind.ByteSize()
	if width == 0 {
		return nil, fmt.Errorf("decode: unsupported element kind %s", kind)
	}
	if len(body)%width != 0 {
		return nil, fmt.Errorf("decode: element buffer length %d not a multiple of width %d", len(body), width)
	}
	n := len(body) / width
	order := sbi.Endianness

	switch kind {
	case types.Bool:
		out := make([]bool, n)
		for i := 0; i < n; i++ {
			out[i] = body[i] != 0
		}
		return out, nil
	case types.Int8:
		out := make([]int8, n)
		for i := 0; i < n; i++ {
			out[i] = int8(body[i])
		}
		return out, nil
	case types.Uint8:
		out := make([]uint8, n)
		copy(out, body)
		return out, nil
	case types.Int16:
		out := make([]int16, n)
		for i := 0; i < n; i++ {
			out[i] = int16(order.Uint16(body[i*2:]))
		}
		return out, nil
	case types.Uint16:
		out := make([]uint16, n)
		for i := 0; i < n; i++ {
			out[i] = order.Uint16(body[i*2:])
		}
		return out, nil
	case types.Int32:
		out := make([]int32, n)
		for i := 0; i < n; i++ {
			out[i] = int32(order.Uint32(body[i*4:]))
		}
		return out, nil
	case types.Uint32:
		out := make([]uint32, n)
		for i := 0; i < n; i++ {
			out[i] = order.Uint32(body[i*4:])
		}
		return out, nil
	case types.Int64:
		out := make([]int64, n)
		for i := 0; i < n; i++ {
			out[i] = int64(order.Uint64(body[i*8:]))
		}
		return out, nil
	case types.Uint64:
		out := make([]uint64, n)
		for i := 0; i < n; i++ {
			out[i] = order.Uint64(body[i*8:])
		}
		return out, nil
	case types.Float32:
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			out[i] = math.Float32frombits(order.Uint32(body[i*4:]))
		}
		return out, nil
	case types.Float64:
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			out[i] = math.Float64frombits(order.Uint64(body[i*8:]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("decode: unsupported element kind %s", kind)
	}
}
