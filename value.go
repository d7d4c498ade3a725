package mat73

import "github.com/scigolib/mat73/types"

// Kind discriminates the variants of Value. It and Value are defined
// in the types package so the internal decode and mcos packages can
// construct them without importing this package; this file re-exports
// them as the module's public surface.
type Kind = types.Kind

const (
	KindEmpty        = types.KindEmpty
	KindScalar       = types.KindScalar
	KindNumericArray = types.KindNumericArray
	KindString       = types.KindString
	KindCellArray    = types.KindCellArray
	KindStruct       = types.KindStruct
	KindTimeseries   = types.KindTimeseries
	KindRawBytes     = types.KindRawBytes
)

// Value is the decoder's universal return type: a sum over Empty,
// Scalar, NumericArray, String, CellArray, Struct, Timeseries, and
// RawBytes. Exactly one of the typed fields is meaningful for a given
// Kind; callers should switch on Kind before reading a field.
type Value = types.Value

// StructField is one named field of a Struct value. Fields preserves
// the order fields were encountered in the file.
type StructField = types.StructField

// Timeseries is the reconstructed {Time, Data} pair for a MATLAB
// timeseries object. Time is always 1-D; Data keeps whatever shape
// remains after squeezing singleton axes.
type Timeseries = types.Timeseries

// Empty returns the Empty Value.
func Empty() Value { return types.Empty() }

// NewScalar returns a Scalar Value.
func NewScalar(v float64, kind types.ElementKind) Value { return types.NewScalar(v, kind) }

// NewString returns a String Value.
func NewString(s string) Value { return types.NewString(s) }

// NewRawBytes returns a RawBytes Value, the escape hatch for classes
// the decoder does not otherwise recognize or cannot reconstruct.
func NewRawBytes(class string, data []byte) Value { return types.NewRawBytes(class, data) }
