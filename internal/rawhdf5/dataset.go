package rawhdf5

import "fmt"

// Dataset is an HDF5 object read directly from its object header,
// independent of whether github.com/scigolib/hdf5 ever linked it into
// the named tree. MCOS payload arrays and the /#subsystem#/MCOS slot
// vector are reached this way: they are addressed only by object
// reference, never by name.
type Dataset struct {
	Dims       []uint64
	Datatype   datatypeInfo
	Attributes []attributeInfo
	layout     layoutInfo
}

// IsReference reports whether the dataset's element datatype is an
// HDF5 object reference.
func (d *Dataset) IsReference() bool {
	return d.Datatype.Class == typeClassReference
}

// ElementSize returns the per-element byte size the Datatype message
// declared.
func (d *Dataset) ElementSize() uint32 {
	return d.Datatype.Size
}

// Attribute looks up a dataset attribute by name.
func (d *Dataset) Attribute(name string) (attributeInfo, bool) {
	for _, a := range d.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return attributeInfo{}, false
}

// OpenDataset reads the object header at addr and decodes it as a
// dataset: its Dataspace, Datatype, Data Layout, and Attribute
// messages.
func OpenDataset(r readAt, sbi SuperblockInfo, addr uint64) (*Dataset, error) {
	msgs, err := readMessages(r, addr, sbi)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	var haveLayout bool
	for _, m := range msgs {
		switch m.Type {
		case msgDataspace:
			dims, err := parseDataspace(m.Data, sbi)
			if err != nil {
				return nil, err
			}
			ds.Dims = dims
		case msgDatatype:
			dt, err := parseDatatype(m.Data)
			if err != nil {
				return nil, err
			}
			ds.Datatype = dt
		case msgDataLayout:
			layout, err := parseDataLayout(m.Data, sbi)
			if err != nil {
				return nil, err
			}
			ds.layout = layout
			haveLayout = true
		case msgAttribute:
			attr, err := parseAttribute(m.Data, sbi)
			if err != nil {
				return nil, err
			}
			ds.Attributes = append(ds.Attributes, attr)
		}
	}
	if !haveLayout {
		return nil, fmt.Errorf("rawhdf5: object at %#x has no data layout message (not a dataset)", addr)
	}
	return ds, nil
}

// ReadRaw returns the dataset's element bytes in file storage order.
// Chunked layouts are not traversed; for them ReadRaw returns an
// error.
func (d *Dataset) ReadRaw(r readAt) ([]byte, error) {
	switch d.layout.Class {
	case layoutCompact:
		return d.layout.CompactData, nil
	case layoutContiguous:
		if d.layout.Size == 0 {
			return nil, nil
		}
		buf := make([]byte, d.layout.Size)
		if _, err := r.ReadAt(buf, int64(d.layout.Address)); err != nil {
			return nil, fmt.Errorf("rawhdf5: read contiguous data at %#x: %w", d.layout.Address, err)
		}
		return buf, nil
	case layoutChunked:
		return nil, fmt.Errorf("rawhdf5: chunked data layout unsupported")
	default:
		return nil, fmt.Errorf("rawhdf5: unknown data layout class %d", d.layout.Class)
	}
}

// IsGroup reports whether the object header at addr describes a group
// (it carries a Link or Symbol Table message and no Datatype message)
// rather than a dataset.
func IsGroup(r readAt, sbi SuperblockInfo, addr uint64) (bool, error) {
	msgs, err := readMessages(r, addr, sbi)
	if err != nil {
		return false, err
	}
	hasDatatype := false
	hasGroupSignal := false
	for _, m := range msgs {
		switch m.Type {
		case msgDatatype:
			hasDatatype = true
		case msgLinkInfo, msgLink, msgSymbolTable, msgGroupInfo:
			hasGroupSignal = true
		}
	}
	return hasGroupSignal && !hasDatatype, nil
}

// ReadReferences decodes raw as a sequence of object references, one
// per SuperblockInfo.OffsetSize bytes, and returns each reference's
// target object header address.
func ReadReferences(raw []byte, sbi SuperblockInfo) ([]uint64, error) {
	stride := int(sbi.OffsetSize)
	if stride == 0 || len(raw)%stride != 0 {
		return nil, fmt.Errorf("rawhdf5: reference buffer length %d not a multiple of offset size %d", len(raw), stride)
	}
	n := len(raw) / stride
	refs := make([]uint64, n)
	for i := 0; i < n; i++ {
		refs[i] = sbi.readOffset(raw[i*stride : (i+1)*stride])
	}
	return refs, nil
}
