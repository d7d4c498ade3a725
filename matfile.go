// Package mat73 reads MATLAB v7.3 .mat files: HDF5 containers with
// MATLAB-specific conventions layered on top (MATLAB_class attributes,
// column-major axis order, and an MCOS subsystem carrying the payload
// of classdef objects such as timeseries).
package mat73

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scigolib/hdf5"
	"github.com/scigolib/mat73/internal/decode"
	"github.com/scigolib/mat73/internal/mcos"
	"github.com/scigolib/mat73/types"
)

// File is an open MATLAB v7.3 file. Unlike a v5 MAT-file, a v7.3 file
// is read lazily: Open only reads the HDF5 superblock and root group;
// ReadVariable decodes on demand.
type File struct {
	hf      *hdf5.File
	decoder *decode.Decoder
	cfg     *config
}

// Open opens path as a MATLAB v7.3 file. It returns a
// *FileNotFoundError if path does not exist, or a *FileError wrapping
// ErrNotHDF5 if path exists but does not carry the HDF5 signature (or
// ErrIO for any other I/O failure opening it).
func Open(path string, opts ...Option) (*File, error) {
	cfg := defaultConfig()
	applyOptions(cfg, opts)

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileNotFoundError{Path: abs}
		}
		return nil, &FileError{Path: abs, Err: fmt.Errorf("%w: %v", ErrIO, err)}
	}

	hf, err := hdf5.Open(path)
	if err != nil {
		if strings.Contains(err.Error(), "not an HDF5 file") {
			return nil, &FileError{Path: abs, Err: fmt.Errorf("%w: %v", ErrNotHDF5, err)}
		}
		return nil, &FileError{Path: abs, Err: fmt.Errorf("%w: %v", ErrIO, err)}
	}

	dec, err := decode.New(hf, decode.Options{
		Logger:          loggerAdapter{cfg.logger},
		StrideThreshold: cfg.strideThreshold,
		PairingWindow:   cfg.pairingWindow,
	})
	if err != nil {
		_ = hf.Close()
		return nil, &FileError{Path: abs, Err: fmt.Errorf("%w: %v", ErrIO, err)}
	}

	recon := mcos.New(dec, cfg.strideThreshold, cfg.pairingWindow)
	dec.SetReconstructor(recon)

	return &File{hf: hf, decoder: dec, cfg: cfg}, nil
}

// Close releases the underlying file handle.
func (f *File) Close() error {
	return f.hf.Close()
}

// ListVariables returns every top-level variable's name, MATLAB class,
// and shape without decoding any of them.
func (f *File) ListVariables() ([]types.Listing, error) {
	root := f.hf.Root()
	var out []types.Listing
	for _, child := range root.Children() {
		name := child.Name()
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		listing, err := f.describe(child)
		if err != nil {
			f.cfg.logger.Printf("mat73: list %s: %v", name, err)
			continue
		}
		out = append(out, listing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ReadVariable decodes the top-level variable named name.
func (f *File) ReadVariable(name string) (Value, error) {
	root := f.hf.Root()
	for _, child := range root.Children() {
		if child.Name() != name {
			continue
		}
		return f.decoder.DecodeNamed(child, name)
	}
	return Value{}, &VariableNotFoundError{Name: name, Available: f.topLevelNames()}
}

func (f *File) topLevelNames() []string {
	root := f.hf.Root()
	var names []string
	for _, child := range root.Children() {
		n := child.Name()
		if n == "" || strings.HasPrefix(n, "#") {
			continue
		}
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// describe builds a Listing for a top-level object without decoding
// its contents.
func (f *File) describe(obj hdf5.Object) (types.Listing, error) {
	name := obj.Name()
	switch o := obj.(type) {
	case *hdf5.Dataset:
		class, _ := attrString(o, "MATLAB_class")
		if class == "" {
			class = "double"
		}
		dims, err := f.decoder.Shape(o)
		if err != nil {
			return types.Listing{}, err
		}
		return types.Listing{Name: name, Class: class, Shape: dims}, nil
	case *hdf5.Group:
		class, _ := attrString(o, "MATLAB_class")
		if class == "" {
			class = "struct"
		}
		return types.Listing{Name: name, Class: class}, nil
	default:
		return types.Listing{}, errors.New("mat73: unrecognized top-level object type")
	}
}

// loggerAdapter adapts the root package's Logger to decode.Logger
// (identical method sets, kept as separate interfaces to avoid an
// import cycle between the root package and internal/decode).
type loggerAdapter struct{ l Logger }

func (a loggerAdapter) Printf(format string, args ...any) { a.l.Printf(format, args...) }

// ListVariables opens path, lists its top-level variables, and closes
// it. Prefer Open when reading more than one variable from the same
// file.
func ListVariables(path string, opts ...Option) ([]types.Listing, error) {
	f, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ListVariables()
}

// ReadVariable opens path, decodes the named variable, and closes it.
// Prefer Open when reading more than one variable from the same file.
func ReadVariable(path, name string, opts ...Option) (Value, error) {
	f, err := Open(path, opts...)
	if err != nil {
		return Value{}, err
	}
	defer f.Close()
	return f.ReadVariable(name)
}
