package types

import "fmt"

// Kind discriminates the variants of Value.
type Kind int

// Value variants.
const (
	KindEmpty Kind = iota
	KindScalar
	KindNumericArray
	KindString
	KindCellArray
	KindStruct
	KindTimeseries
	KindRawBytes
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindScalar:
		return "Scalar"
	case KindNumericArray:
		return "NumericArray"
	case KindString:
		return "String"
	case KindCellArray:
		return "CellArray"
	case KindStruct:
		return "Struct"
	case KindTimeseries:
		return "Timeseries"
	case KindRawBytes:
		return "RawBytes"
	default:
		return "Unknown"
	}
}

// Value is the decoder's universal return type: a sum over Empty,
// Scalar, NumericArray, String, CellArray, Struct, Timeseries, and
// RawBytes. Exactly one of the typed fields is meaningful for a given
// Kind; callers should switch on Kind before reading a field.
//
// It lives in this package rather than the root one so that the
// internal decode and mcos packages, which construct Values, do not
// import the root package and create a cycle; the root package
// re-exports it as mat73.Value.
type Value struct {
	Kind Kind

	// KindScalar
	Scalar     float64
	ScalarKind ElementKind

	// KindNumericArray
	Array *NumericArray

	// KindString
	Text string

	// KindCellArray
	Cells []Value

	// KindStruct
	Fields []StructField

	// KindTimeseries
	Timeseries *Timeseries

	// KindRawBytes
	Raw      []byte
	RawClass string // MATLAB_class that produced the fallback, if known.
}

// StructField is one named field of a Struct value. Fields preserves
// the order fields were encountered in the file.
type StructField struct {
	Name  string
	Value Value
}

// Timeseries is the reconstructed {Time, Data} pair for a MATLAB
// timeseries object. Time is always 1-D; Data keeps whatever shape
// remains after squeezing singleton axes.
type Timeseries struct {
	Time []float64
	Data *NumericArray
}

// Empty returns the Empty Value.
func Empty() Value { return Value{Kind: KindEmpty} }

// NewScalar returns a Scalar Value.
func NewScalar(v float64, kind ElementKind) Value {
	return Value{Kind: KindScalar, Scalar: v, ScalarKind: kind}
}

// NewString returns a String Value.
func NewString(s string) Value { return Value{Kind: KindString, Text: s} }

// NewRawBytes returns a RawBytes Value, the escape hatch for classes
// the decoder does not otherwise recognize or cannot reconstruct.
func NewRawBytes(class string, data []byte) Value {
	return Value{Kind: KindRawBytes, RawClass: class, Raw: data}
}

// NewArray returns a NumericArray Value.
func NewArray(a *NumericArray) Value {
	return Value{Kind: KindNumericArray, Array: a}
}

// NewCells returns a CellArray Value.
func NewCells(cells []Value) Value {
	return Value{Kind: KindCellArray, Cells: cells}
}

// NewStruct returns a Struct Value.
func NewStruct(fields []StructField) Value {
	return Value{Kind: KindStruct, Fields: fields}
}

// NewTimeseries returns a Timeseries Value.
func NewTimeseries(ts *Timeseries) Value {
	return Value{Kind: KindTimeseries, Timeseries: ts}
}

// Field looks up a struct field by name. ok is false if v is not a
// Struct or has no field with that name.
func (v Value) Field(name string) (Value, bool) {
	if v.Kind != KindStruct {
		return Value{}, false
	}
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

func (v Value) String() string {
	switch v.Kind {
	case KindEmpty:
		return "Empty"
	case KindScalar:
		return fmt.Sprintf("Scalar(%v %s)", v.Scalar, v.ScalarKind)
	case KindNumericArray:
		return fmt.Sprintf("NumericArray%v %s", v.Array.Dims(), v.Array.ElementType())
	case KindString:
		return fmt.Sprintf("String(%q)", v.Text)
	case KindCellArray:
		return fmt.Sprintf("CellArray[%d]", len(v.Cells))
	case KindStruct:
		return fmt.Sprintf("Struct{%d fields}", len(v.Fields))
	case KindTimeseries:
		return fmt.Sprintf("Timeseries{Time=%d}", len(v.Timeseries.Time))
	case KindRawBytes:
		return fmt.Sprintf("RawBytes(%s, %d bytes)", v.RawClass, len(v.Raw))
	default:
		return "Value(?)"
	}
}
