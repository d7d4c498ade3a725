package types

import (
	"reflect"
	"testing"
)

func TestNumericArrayDimsSizeAndType(t *testing.T) {
	a := NumericArray{
		Data:       []float64{1, 2, 3, 4, 5, 6},
		Dimensions: []int{2, 3},
		Type:       Float64,
	}
	if !reflect.DeepEqual(a.Dims(), []int{2, 3}) {
		t.Errorf("Dims() = %v", a.Dims())
	}
	if a.Size() != 6 {
		t.Errorf("Size() = %d, want 6", a.Size())
	}
	if a.ElementType() != Float64 {
		t.Errorf("ElementType() = %v, want Float64", a.ElementType())
	}
}

func TestNumericArraySizeEmptyDims(t *testing.T) {
	a := NumericArray{Dimensions: nil}
	if a.Size() != 0 {
		t.Errorf("Size() of a nil-dimensioned array = %d, want 0", a.Size())
	}
}

func TestNumericArrayImplementsArray(t *testing.T) {
	var _ Array = NumericArray{}
}
