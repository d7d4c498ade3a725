package mat73

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors. Use errors.Is against these; the concrete error
// values below carry structured detail and also satisfy errors.Is via
// Unwrap.
var (
	// ErrFileNotFound indicates the path does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrNotHDF5 indicates the file opens but lacks the HDF5 signature
	// (e.g. a pre-v7.3 MAT-file, which this module does not read).
	ErrNotHDF5 = errors.New("not an HDF5 file")

	// ErrIO indicates a low-level failure opening or reading the file
	// that is neither a missing path nor a missing HDF5 signature.
	ErrIO = errors.New("I/O error")

	// ErrVariableNotFound indicates the requested top-level name does
	// not exist in the file.
	ErrVariableNotFound = errors.New("variable not found")

	// ErrReconstructionFailed indicates the timeseries reconstructor
	// could not allocate or pair payload slots for a timeseries. This
	// is a recoverable outcome: the caller falls back to RawBytes.
	ErrReconstructionFailed = errors.New("timeseries reconstruction failed")
)

// FileNotFoundError is returned when path does not exist. Path is
// always the absolute path, even when the caller passed a relative
// one, so the message is unambiguous about which file was missing.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("mat73: file not found: %s", e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return ErrFileNotFound }

// FileError is returned when the file exists but cannot be opened: it
// lacks the HDF5 signature (wraps ErrNotHDF5) or some other I/O
// failure occurred (wraps ErrIO).
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("mat73: %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// VariableNotFoundError is returned when a requested top-level
// variable does not exist; Available lists every top-level
// non-internal name, alphabetically sorted, to aid the caller.
type VariableNotFoundError struct {
	Name      string
	Available []string
}

func (e *VariableNotFoundError) Error() string {
	names := make([]string, len(e.Available))
	copy(names, e.Available)
	sort.Strings(names)
	return fmt.Sprintf("mat73: variable %q not found; available: [%s]", e.Name, strings.Join(names, ", "))
}

func (e *VariableNotFoundError) Unwrap() error { return ErrVariableNotFound }

// ReconstructionError describes which stage of timeseries
// reconstruction failed and why. ReadVariable does not return it: a
// reconstruction failure is recoverable and downgrades to a RawBytes
// Value. The internal mcos package reports such failures with its own
// unexported error of the same shape, whose text reaches the Logger;
// no code in this module constructs a ReconstructionError.
type ReconstructionError struct {
	Stage  string
	Detail string
}

func (e *ReconstructionError) Error() string {
	return fmt.Sprintf("mat73: timeseries reconstruction failed at %s: %s", e.Stage, e.Detail)
}

func (e *ReconstructionError) Unwrap() error { return ErrReconstructionFailed }
