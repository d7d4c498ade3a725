package mcos

import (
	"fmt"
	"math"

	"github.com/scigolib/mat73/internal/rawhdf5"
)

// floatsFromBytes decodes an 8-byte-per-element float64 buffer, the
// only element width Stage 4's payload criteria admit.
func floatsFromBytes(body []byte, sbi rawhdf5.SuperblockInfo) ([]float64, error) {
	if len(body)%8 != 0 {
		return nil, fmt.Errorf("mcos: payload buffer length %d not a multiple of 8", len(body))
	}
	n := len(body) / 8
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float64frombits(sbi.Endianness.Uint64(body[i*8:]))
	}
	return out, nil
}

// squeezeDims reorients HDF5 dimensions into MATLAB axis order and
// applies the same squeeze rule as the decode package: if ndim-1 or
// more axes are singleton, the shape collapses to 1-D.
func squeezeDims(hdims []uint64) []int {
	dims := make([]int, len(hdims))
	for i, d := range hdims {
		dims[len(hdims)-1-i] = int(d)
	}
	if len(dims) <= 1 {
		return dims
	}
	singletons := 0
	nonSingleton := -1
	for _, d := range dims {
		if d == 1 {
			singletons++
		} else {
			nonSingleton = d
		}
	}
	if singletons < len(dims)-1 {
		return dims
	}
	if nonSingleton == -1 {
		return []int{1}
	}
	return []int{nonSingleton}
}
