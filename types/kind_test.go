package types

import "testing"

func TestKindForMatlabClass(t *testing.T) {
	cases := []struct {
		class string
		want  ElementKind
		ok    bool
	}{
		{"double", Float64, true},
		{"single", Float32, true},
		{"int8", Int8, true},
		{"uint8", Uint8, true},
		{"int16", Int16, true},
		{"uint16", Uint16, true},
		{"int32", Int32, true},
		{"uint32", Uint32, true},
		{"int64", Int64, true},
		{"uint64", Uint64, true},
		{"logical", Bool, true},
		{"char", 0, false},
		{"cell", 0, false},
		{"struct", 0, false},
		{"timeseries", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		t.Run(c.class, func(t *testing.T) {
			got, ok := KindForMatlabClass(c.class)
			if ok != c.ok {
				t.Fatalf("ok = %v, want %v", ok, c.ok)
			}
			if ok && got != c.want {
				t.Fatalf("kind = %v, want %v", got, c.want)
			}
		})
	}
}

func TestElementKindByteSize(t *testing.T) {
	cases := []struct {
		kind ElementKind
		size int
	}{
		{Bool, 1}, {Int8, 1}, {Uint8, 1},
		{Int16, 2}, {Uint16, 2},
		{Int32, 4}, {Uint32, 4}, {Float32, 4},
		{Int64, 8}, {Uint64, 8}, {Float64, 8},
	}
	for _, c := range cases {
		if got := c.kind.ByteSize(); got != c.size {
			t.Errorf("%s.ByteSize() = %d, want %d", c.kind, got, c.size)
		}
	}
}

func TestElementKindString(t *testing.T) {
	if Float64.String() != "float64" {
		t.Errorf("Float64.String() = %q, want float64", Float64.String())
	}
	if ElementKind(999).String() != "unknown" {
		t.Errorf("unknown kind should stringify as 'unknown'")
	}
}
