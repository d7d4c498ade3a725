// Package decode implements the generic value decoder: it turns HDF5
// groups and datasets reached via github.com/scigolib/hdf5's named
// tree into mat73 Values, dispatching on the MATLAB_class attribute
// MATLAB's v7.3 writer attaches to every variable.
//
// Two kinds of object feed the same dispatch core. Named objects
// (struct fields, top-level variables) are reached through
// github.com/scigolib/hdf5's Group/Dataset API. Reference targets
// (cell array elements, MCOS property values) are never linked into
// the named tree and are reached purely by object-header address
// through the rawhdf5 package; DecodeByAddress handles those.
package decode

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf16"

	"github.com/scigolib/hdf5"
	"github.com/scigolib/mat73/internal/rawhdf5"
	"github.com/scigolib/mat73/types"
)

// Logger mirrors the root package's Logger interface without importing
// it, avoiding an import cycle back into the root package.
type Logger interface {
	Printf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// Options configures a Decoder. It mirrors the root package's config
// struct for the same reason Logger is redeclared here.
type Options struct {
	Logger          Logger
	StrideThreshold float64
	PairingWindow   int
}

// TimeseriesReconstructor reconstructs a MATLAB timeseries object from
// its MCOS-backed group. It is implemented by the mcos package; decode
// depends on it only through this interface to avoid an import cycle
// (mcos depends on decode for the Decoder's open file, reader and
// superblock info).
type TimeseriesReconstructor interface {
	Reconstruct(group *hdf5.Group, path string) (types.Value, error)
}

// Decoder decodes HDF5 objects from a single open MAT-file into
// mat73 Values.
type Decoder struct {
	file  *hdf5.File
	r     rawReaderAt
	sbi   rawhdf5.SuperblockInfo
	opts  Options
	recon TimeseriesReconstructor
}

// SetReconstructor wires in the timeseries reconstructor. Callers
// build a Decoder first, then an mcos.Reconstructor over it, then
// call this to complete the wiring; a Decoder with no reconstructor
// set downgrades every timeseries-classed group to RawBytes.
func (d *Decoder) SetReconstructor(r TimeseriesReconstructor) { d.recon = r }

type rawReaderAt interface {
	ReadAt(p []byte, off int64) (int, error)
}

// New builds a Decoder over an already-open HDF5 file.
func New(file *hdf5.File, opts Options) (*Decoder, error) {
	sbi, err := rawhdf5.ExtractSuperblock(file.Superblock())
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}
	return &Decoder{file: file, r: file.Reader(), sbi: sbi, opts: opts}, nil
}

// SuperblockInfo exposes the file's superblock info to the mcos
// package, which also needs raw reference resolution.
func (d *Decoder) SuperblockInfo() rawhdf5.SuperblockInfo { return d.sbi }

// Reader exposes the file's random-access reader to the mcos package.
func (d *Decoder) Reader() rawReaderAt { return d.r }

// File exposes the underlying open file to the mcos package, which
// needs to walk the named tree down to /#subsystem#/MCOS itself.
func (d *Decoder) File() *hdf5.File { return d.file }

// Shape returns a named dataset's dimensions in MATLAB axis order,
// without decoding its elements. It is used by ListVariables.
func (d *Decoder) Shape(ds *hdf5.Dataset) ([]int, error) {
	raw, err := rawhdf5.OpenDataset(d.r, d.sbi, ds.Address())
	if err != nil {
		return nil, err
	}
	dims := make([]int, len(raw.Dims))
	for i, v := range raw.Dims {
		dims[i] = int(v)
	}
	return reorient(dims), nil
}

// DecodeNamed decodes a named object (a top-level variable or a
// struct field) reached through github.com/scigolib/hdf5's tree.
func (d *Decoder) DecodeNamed(obj hdf5.Object, path string) (types.Value, error) {
	switch o := obj.(type) {
	case *hdf5.Group:
		return d.decodeGroup(o, path)
	case *hdf5.Dataset:
		return d.decodeNamedDataset(o, path)
	default:
		return types.Empty(), fmt.Errorf("decode: unrecognized object type %T at %s", obj, path)
	}
}

// DecodeByAddress decodes an object reached only by object-header
// address: a cell-array element or an MCOS property value.
func (d *Decoder) DecodeByAddress(addr uint64, path string) (types.Value, error) {
	isGroup, err := rawhdf5.IsGroup(d.r, d.sbi, addr)
	if err != nil {
		return types.Empty(), err
	}
	if isGroup {
		// A reference target that is itself a group (rather than a
		// dataset) arises only for struct-by-reference values; this
		// module does not walk its fields (see the struct-by-reference
		// decision in DESIGN.md) and reports it as Empty.
		return types.Empty(), nil
	}

	ds, err := rawhdf5.OpenDataset(d.r, d.sbi, addr)
	if err != nil {
		return types.Empty(), err
	}
	class := ""
	if attr, ok := ds.Attribute("MATLAB_class"); ok {
		class = attr.AsString()
	}
	return d.decodeDatasetByClass(ds, class, path)
}

// ---- group (struct) decode ----

func (d *Decoder) decodeGroup(g *hdf5.Group, path string) (types.Value, error) {
	class, _ := reflectAttrString(g, "MATLAB_class")

	if class == "timeseries" {
		if d.recon != nil {
			v, err := d.recon.Reconstruct(g, path)
			if err == nil {
				return v, nil
			}
			d.opts.Logger.Printf("decode: timeseries reconstruction failed for %s: %v", path, err)
		}
		return types.NewRawBytes(class, nil), nil
	}

	children := g.Children()
	fields := make([]types.StructField, 0, len(children))
	for _, child := range children {
		name := child.Name()
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		v, err := d.DecodeNamed(child, path+"/"+name)
		if err != nil {
			d.opts.Logger.Printf("decode: field %s.%s: %v", path, name, err)
			v = types.NewRawBytes(class, nil)
		}
		fields = append(fields, types.StructField{Name: name, Value: v})
	}
	return types.NewStruct(fields), nil
}

// ---- named dataset decode ----

func (d *Decoder) decodeNamedDataset(ds *hdf5.Dataset, path string) (types.Value, error) {
	class, _ := reflectAttrString(ds, "MATLAB_class")

	raw, err := rawhdf5.OpenDataset(d.r, d.sbi, ds.Address())
	if err != nil {
		return types.Empty(), err
	}
	return d.decodeDatasetByClass(raw, class, path)
}

// ---- shared class dispatch ----

func (d *Decoder) decodeDatasetByClass(raw *rawhdf5.Dataset, class string, path string) (types.Value, error) {
	if isEmptyDataset(raw) {
		return types.Empty(), nil
	}

	switch class {
	case "", "canonical empty":
		return types.Empty(), nil
	case "char", "string":
		return d.decodeText(raw)
	case "cell":
		return d.decodeCell(raw, path)
	default:
		if kind, ok := types.KindForMatlabClass(class); ok {
			return d.decodeNumeric(raw, kind)
		}
		body, err := raw.ReadRaw(d.r)
		if err != nil {
			return types.NewRawBytes(class, nil), nil
		}
		return types.NewRawBytes(class, body), nil
	}
}

func isEmptyDataset(raw *rawhdf5.Dataset) bool {
	if _, ok := raw.Attribute("MATLAB_empty"); ok {
		return true
	}
	for _, dim := range raw.Dims {
		if dim == 0 {
			return true
		}
	}
	return false
}

// ---- char/string decode ----

// decodeText decodes MATLAB's char/string storage: UTF-16LE code
// units, one HDF5 row per string for a char matrix, a single row for
// a scalar string.
func (d *Decoder) decodeText(raw *rawhdf5.Dataset) (types.Value, error) {
	body, err := raw.ReadRaw(d.r)
	if err != nil {
		return types.Empty(), err
	}
	units := make([]uint16, len(body)/2)
	for i := range units {
		units[i] = d.sbi.Endianness.Uint16(body[i*2 : i*2+2])
	}
	return types.NewString(string(utf16.Decode(units))), nil
}

// ---- cell decode ----

// decodeCell dereferences each element of a cell array's reference
// dataset, recursively decoding each target and preserving file
// order.
func (d *Decoder) decodeCell(raw *rawhdf5.Dataset, path string) (types.Value, error) {
	body, err := raw.ReadRaw(d.r)
	if err != nil {
		return types.Empty(), err
	}
	refs, err := rawhdf5.ReadReferences(body, d.sbi)
	if err != nil {
		return types.Empty(), err
	}
	cells := make([]types.Value, len(refs))
	for i, addr := range refs {
		if addr == 0 {
			cells[i] = types.Empty()
			continue
		}
		v, err := d.DecodeByAddress(addr, fmt.Sprintf("%s{%d}", path, i+1))
		if err != nil {
			d.opts.Logger.Printf("decode: cell element %s{%d}: %v", path, i+1, err)
			v = types.Empty()
		}
		cells[i] = v
	}
	return types.NewCells(cells), nil
}

// ---- numeric/logical decode ----

// decodeNumeric reads a dataset's raw bytes and produces a Scalar or
// NumericArray in MATLAB's axis order and element order.
//
// The raw buffer is laid out row-major over HDF5's dims; reversing the
// dims gives MATLAB's axis order, but — since reversing axis order and
// switching between row-major and column-major traversal are the same
// permutation — the buffer itself is then exactly MATLAB's own
// column-major element order over the reversed dims. A 1x1 array
// collapses to Scalar; any shape with ndim-1 or more singleton axes
// squeezes to a 1-D vector (column-major and row-major coincide for a
// vector, so no element reordering is needed there); anything else is
// a genuine >=2-D array and its elements are transposed from
// column-major into row-major order to match.
func (d *Decoder) decodeNumeric(raw *rawhdf5.Dataset, kind types.ElementKind) (types.Value, error) {
	body, err := raw.ReadRaw(d.r)
	if err != nil {
		return types.Empty(), err
	}

	hdims := raw.Dims
	dims := make([]int, len(hdims))
	for i, v := range hdims {
		dims[i] = int(v)
	}
	reoriented := reorient(dims)

	data, err := decodeElements(body, kind, d.sbi)
	if err != nil {
		return types.Empty(), err
	}

	if scalarCount(reoriented) {
		return types.NewScalar(firstFloat(data), kind), nil
	}

	squeezed := squeeze(reoriented)
	if len(squeezed) > 1 {
		data = transpose(data, reoriented)
	}

	arr := &types.NumericArray{Data: data, Dimensions: squeezed, Type: kind}
	return types.NewArray(arr), nil
}

// transpose reorders data — a flat slice in column-major order over
// dims — into row-major order over the same dims, via the standard
// strided-index permutation. Works uniformly across element types
// through reflection rather than a per-kind switch.
func transpose(data any, dims []int) any {
	v := reflect.ValueOf(data)
	n := v.Len()
	out := reflect.MakeSlice(v.Type(), n, n)

	k := len(dims)
	rowMajorStride := make([]int, k)
	if k > 0 {
		rowMajorStride[k-1] = 1
		for i := k - 2; i >= 0; i-- {
			rowMajorStride[i] = rowMajorStride[i+1] * dims[i+1]
		}
	}
	colMajorStride := make([]int, k)
	if k > 0 {
		colMajorStride[0] = 1
		for i := 1; i < k; i++ {
			colMajorStride[i] = colMajorStride[i-1] * dims[i-1]
		}
	}

	idx := make([]int, k)
	for outPos := 0; outPos < n; outPos++ {
		rem := outPos
		for i := 0; i < k; i++ {
			idx[i] = rem / rowMajorStride[i]
			rem %= rowMajorStride[i]
		}
		inPos := 0
		for i := 0; i < k; i++ {
			inPos += idx[i] * colMajorStride[i]
		}
		out.Index(outPos).Set(v.Index(inPos))
	}
	return out.Interface()
}

// reorient reverses HDF5's row-major dimension order into MATLAB's
// column-major order. For a 2-D array this transposes [rows, cols]
// into [cols, rows] name-wise: MATLAB's own documented row/column
// convention for v7.3 files.
func reorient(dims []int) []int {
	out := make([]int, len(dims))
	for i, d := range dims {
		out[len(dims)-1-i] = d
	}
	return out
}

// squeeze implements the numeric-array path's squeeze rule: if ndim-1
// or more axes are singleton, the array is really a vector and
// squeezes down to 1-D; otherwise dims is returned unchanged. A 1-D
// input is already as squeezed as it can get.
func squeeze(dims []int) []int {
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

func scalarCount(dims []int) bool {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n == 1
}

func firstFloat(data any) float64 {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice || v.Len() == 0 {
		return 0
	}
	elem := v.Index(0)
	switch elem.Kind() {
	case reflect.Float64, reflect.Float32:
		return elem.Float()
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(elem.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(elem.Uint())
	case reflect.Bool:
		if elem.Bool() {
			return 1
		}
		return 0
	default:
		return 0
	}
}
