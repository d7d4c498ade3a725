package types

import "testing"

func TestEmptyValue(t *testing.T) {
	v := Empty()
	if v.Kind != KindEmpty {
		t.Errorf("Kind = %v, want KindEmpty", v.Kind)
	}
	if v.String() != "Empty" {
		t.Errorf("String() = %q, want Empty", v.String())
	}
}

func TestNewScalar(t *testing.T) {
	v := NewScalar(3.5, Float64)
	if v.Kind != KindScalar || v.Scalar != 3.5 || v.ScalarKind != Float64 {
		t.Fatalf("NewScalar produced %+v", v)
	}
}

func TestStructFieldLookup(t *testing.T) {
	v := NewStruct([]StructField{
		{Name: "a", Value: NewScalar(1, Float64)},
		{Name: "b", Value: NewString("hi")},
	})
	got, ok := v.Field("b")
	if !ok || got.Text != "hi" {
		t.Fatalf("Field(b) = %+v, %v", got, ok)
	}
	if _, ok := v.Field("missing"); ok {
		t.Fatalf("Field(missing) should not be found")
	}
}

func TestFieldOnNonStructReturnsFalse(t *testing.T) {
	v := NewScalar(1, Float64)
	if _, ok := v.Field("anything"); ok {
		t.Fatalf("Field on a Scalar Value should return ok=false")
	}
}

func TestValueStringVariants(t *testing.T) {
	cases := []Value{
		NewRawBytes("mxobject", []byte{1, 2, 3}),
		NewCells([]Value{Empty(), Empty()}),
		NewTimeseries(&Timeseries{Time: []float64{0, 1, 2}, Data: &NumericArray{Dimensions: []int{3, 1}, Type: Float64}}),
	}
	for _, v := range cases {
		if v.String() == "" {
			t.Errorf("String() returned empty for %v", v.Kind)
		}
	}
}
