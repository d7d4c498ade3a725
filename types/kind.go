// Package types provides the common data structures shared by the
// decoder, the timeseries reconstructor, and their callers.
package types

// ElementKind identifies the primitive element type of a NumericArray
// or Scalar. Classification is purely syntactic on the MATLAB_class
// attribute string; it never depends on the underlying HDF5 datatype.
type ElementKind int

// Element kind constants, one per MATLAB numeric/logical class.
const (
	Bool ElementKind = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
)

// ByteSize returns the on-disk width, in bytes, of one element.
func (k ElementKind) ByteSize() int {
	switch k {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

func (k ElementKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// KindForMatlabClass maps a MATLAB_class attribute value to the
// element kind used for numeric arrays and scalars. ok is false for
// classes that are not numeric element kinds (struct, cell, char,
// timeseries, or anything unrecognized).
func KindForMatlabClass(class string) (kind ElementKind, ok bool) {
	switch class {
	case "double":
		return Float64, true
	case "single":
		return Float32, true
	case "int8":
		return Int8, true
	case "uint8":
		return Uint8, true
	case "int16":
		return Int16, true
	case "uint16":
		return Uint16, true
	case "int32":
		return Int32, true
	case "uint32":
		return Uint32, true
	case "int64":
		return Int64, true
	case "uint64":
		return Uint64, true
	case "logical":
		return Bool, true
	default:
		return 0, false
	}
}
