package mcos

import (
	"encoding/binary"
	"math"
	"reflect"
	"testing"

	"github.com/scigolib/mat73/internal/rawhdf5"
)

func testSBI() rawhdf5.SuperblockInfo {
	return rawhdf5.SuperblockInfo{OffsetSize: 8, LengthSize: 8, Endianness: binary.LittleEndian}
}

func TestFloatsFromBytes(t *testing.T) {
	vals := []float64{1, 2.5, -3}
	body := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(body[i*8:], math.Float64bits(v))
	}
	got, err := floatsFromBytes(body, testSBI())
	if err != nil {
		t.Fatalf("floatsFromBytes: %v", err)
	}
	if !reflect.DeepEqual(got, vals) {
		t.Fatalf("got %v, want %v", got, vals)
	}
}

func TestFloatsFromBytesRejectsMisalignedBuffer(t *testing.T) {
	if _, err := floatsFromBytes([]byte{1, 2, 3}, testSBI()); err == nil {
		t.Fatalf("expected an error for a buffer not a multiple of 8")
	}
}

func TestSqueezeDims(t *testing.T) {
	got := squeezeDims([]uint64{1, 100})
	want := []int{100}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("squeezeDims = %v, want %v", got, want)
	}
}

func TestSqueezeDimsGenuine2D(t *testing.T) {
	got := squeezeDims([]uint64{3, 5})
	want := []int{5, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("squeezeDims = %v, want %v", got, want)
	}
}

func TestProbeMetadataFindsHints(t *testing.T) {
	probe := probeMetadata([]byte("garbage\x00Time_\x00Data_\x00more garbage"))
	if !probe.HasTime {
		t.Fatalf("probe should find the Time_ property")
	}
	if !probe.HasData {
		t.Fatalf("probe should find the Data_ property")
	}
	if probe.ColumnsPerTS != 2 {
		t.Fatalf("ColumnsPerTS = %d, want 2", probe.ColumnsPerTS)
	}
}

func TestProbeMetadataMissingTime(t *testing.T) {
	probe := probeMetadata([]byte("nothing\x00relevant\x00here"))
	if probe.HasTime {
		t.Fatalf("probe should not find a Time_ property in unrelated bytes")
	}
}

func TestProbeMetadataEmptyBlobAssumesDefaults(t *testing.T) {
	probe := probeMetadata(nil)
	if !probe.HasTime || !probe.HasData || probe.ColumnsPerTS != 2 {
		t.Fatalf("probe of an empty blob should assume {true,true,2}, got %+v", probe)
	}
}
