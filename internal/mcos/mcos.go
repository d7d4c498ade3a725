// Package mcos reconstructs MATLAB timeseries objects out of the
// MATLAB Class Object System (MCOS) subsystem that MATLAB's v7.3
// writer hides at /#subsystem#/MCOS. A timeseries variable does not
// carry its Time and Data vectors directly: the named group MATLAB
// writes for it holds only a small object-id array pointing into this
// shared subsystem, where every MCOS object in the file has its
// properties packed together by class.
//
// MATLAB does not publish this layout, and every open reader that
// supports it (this package's approach follows the shape documented by
// prior reverse-engineering efforts such as hdf5storage's MCOS
// support) recovers it heuristically: scan the subsystem for
// plausible Time/Data property slots, then pair each timeseries
// object to the nearest slots that fit its shape. Stage names below
// match that heuristic pipeline.
package mcos

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scigolib/hdf5"
	"github.com/scigolib/mat73/internal/decode"
	"github.com/scigolib/mat73/internal/rawhdf5"
	"github.com/scigolib/mat73/types"
)

const subsystemPath = "/#subsystem#/MCOS"

// Reconstructor reconstructs timeseries Values from a single open
// MAT-file's MCOS subsystem. It satisfies decode.TimeseriesReconstructor.
type Reconstructor struct {
	file    *hdf5.File
	decoder *decode.Decoder
	r       interface {
		ReadAt(p []byte, off int64) (int, error)
	}
	sbi rawhdf5.SuperblockInfo

	strideThreshold float64
	pairingWindow   int

	built bool
	plans map[string]plan
}

type plan struct {
	value types.Value
	err   error
}

// New builds a Reconstructor over decoder's already-open file.
func New(decoder *decode.Decoder, strideThreshold float64, pairingWindow int) *Reconstructor {
	return &Reconstructor{
		file:            decoder.File(),
		decoder:         decoder,
		r:               decoder.Reader(),
		sbi:             decoder.SuperblockInfo(),
		strideThreshold: strideThreshold,
		pairingWindow:   pairingWindow,
		plans:           make(map[string]plan),
	}
}

// Reconstruct returns the Timeseries Value for the timeseries-classed
// group at path (a slash-separated composite path, with or without a
// leading slash), building the whole file's reconstruction plan on
// first use.
func (rc *Reconstructor) Reconstruct(group *hdf5.Group, path string) (types.Value, error) {
	if !rc.built {
		rc.build()
		rc.built = true
	}
	p, ok := rc.plans["/"+strings.TrimPrefix(path, "/")]
	if !ok {
		return types.Empty(), &reconstructionError{stage: "enumeration", detail: fmt.Sprintf("no plan computed for %s", path)}
	}
	return p.value, p.err
}

// occurrence is one timeseries variable found in the named tree,
// Stage 2's enumeration record.
type occurrence struct {
	path    string
	ordinal int
	objID   uint32
}

// build runs the full Stage 1-7 pipeline once per file.
func (rc *Reconstructor) build() {
	subsystemAddr, ok := rc.findSubsystem()
	if !ok {
		return // no MCOS subsystem: every timeseries downgrades to RawBytes.
	}

	slotAddrs, err := rc.readSlotVector(subsystemAddr)
	if err != nil || len(slotAddrs) == 0 {
		return
	}

	// Stage 1: metadata probe. Slot 0 is conventionally a binary blob
	// describing the file's classes and properties. If it names no
	// Time_ property at all, this subsystem cannot be reconstructed as
	// a timeseries and the whole pipeline fails up front.
	probe := probeMetadata(rc.readRawBestEffort(slotAddrs[0]))

	// Stage 2: enumerate timeseries occurrences in file-declared
	// (depth-first) order.
	occs := rc.enumerate()
	if len(occs) == 0 {
		return
	}

	if !probe.HasTime {
		rc.failAll(occs, &reconstructionError{stage: "metadata-probe", detail: "subsystem metadata names no Time_ property"})
		return
	}

	// Stage 3: ordinal sort by MCOS object id. The sort is stable, so
	// occurrences with equal ids keep their depth-first walk order.
	sort.SliceStable(occs, func(i, j int) bool { return occs[i].objID < occs[j].objID })

	// Stage 4: Time-slot identification. Candidates are datasets shaped
	// like a canonical MATLAB 1-by-N Time vector: float64, exactly 2-D,
	// first axis size 1 and second axis size >= 2, and not flagged
	// MATLAB_empty.
	timeCandidates := rc.identifyTimeCandidates(slotAddrs)
	if len(timeCandidates) == 0 {
		rc.failAll(occs, &reconstructionError{stage: "payload-identification", detail: "no candidate Time slots found in MCOS subsystem"})
		return
	}

	// Stage 5: stride selection. If columns_per_ts calls for at least
	// two properties per object and there are comfortably more
	// candidate slots than timeseries (at least strideThreshold times
	// as many), assume Time and Data alternate one after another per
	// object; otherwise assume every candidate slot is a Time slot and
	// leave Data to the Stage 7 scan.
	alternating := probe.ColumnsPerTS >= 2 &&
		float64(len(timeCandidates)) >= rc.strideThreshold*float64(len(occs))

	selected := timeCandidates
	if alternating {
		selected = make([]timeCandidate, 0, (len(timeCandidates)+1)/2)
		for i := 0; i < len(timeCandidates); i += 2 {
			selected = append(selected, timeCandidates[i])
		}
	}

	// Stage 6: allocation. Assign each occurrence, in ordinal order, a
	// Time slot by position in the selected list.
	for i, o := range occs {
		if i >= len(selected) {
			rc.plans[o.path] = plan{err: &reconstructionError{stage: "allocation", detail: fmt.Sprintf("ordinal %d exceeds %d selected Time slots", i, len(selected))}}
			continue
		}
		ts, err := rc.pair(slotAddrs, selected[i])
		if err != nil {
			rc.plans[o.path] = plan{err: err}
			continue
		}
		rc.plans[o.path] = plan{value: types.NewTimeseries(ts)}
	}
}

func (rc *Reconstructor) failAll(occs []occurrence, err error) {
	for _, o := range occs {
		rc.plans[o.path] = plan{err: err}
	}
}

// pair implements Stage 7: scan the true MCOS slot indices
// immediately following the Time slot (s_T+1 .. s_T+pairingWindow),
// skip null references, and accept the first candidate whose shape
// contains N (the Time vector's length) as a dimension.
func (rc *Reconstructor) pair(slotAddrs []uint64, t timeCandidate) (*types.Timeseries, error) {
	timeBody, err := t.ds.ReadRaw(rc.r)
	if err != nil {
		return nil, &reconstructionError{stage: "pairing", detail: err.Error()}
	}
	timeVals, err := floatsFromBytes(timeBody, rc.sbi)
	if err != nil {
		return nil, &reconstructionError{stage: "pairing", detail: err.Error()}
	}
	n := uint64(len(timeVals))

	window := rc.pairingWindow
	for j := t.slotIndex + 1; j <= t.slotIndex+window && j < len(slotAddrs); j++ {
		if slotAddrs[j] == 0 {
			continue
		}
		ds, err := rawhdf5.OpenDataset(rc.r, rc.sbi, slotAddrs[j])
		if err != nil {
			continue
		}
		if !isDataShaped(ds, n) {
			continue
		}
		dataBody, err := ds.ReadRaw(rc.r)
		if err != nil {
			continue
		}
		dataVals, err := floatsFromBytes(dataBody, rc.sbi)
		if err != nil {
			continue
		}
		dims := squeezeDims(ds.Dims)
		arr := &types.NumericArray{Data: dataVals, Dimensions: dims, Type: types.Float64}
		return &types.Timeseries{Time: timeVals, Data: arr}, nil
	}
	return nil, &reconstructionError{stage: "pairing", detail: "no Data slot found within pairing window"}
}

// timeCandidate is a Stage 4 match: a real MCOS slot index (into
// slotAddrs, not the filtered candidate list) paired with its decoded
// dataset, so Stage 7 can scan the slots that actually follow it.
type timeCandidate struct {
	slotIndex int
	ds        *rawhdf5.Dataset
}

// identifyTimeCandidates applies Stage 4's shape/type criteria to
// every slot in the subsystem's reference vector, skipping slot 0 (the
// metadata blob Stage 1 already consumed).
func (rc *Reconstructor) identifyTimeCandidates(addrs []uint64) []timeCandidate {
	var out []timeCandidate
	for i := 1; i < len(addrs); i++ {
		if addrs[i] == 0 {
			continue
		}
		ds, err := rawhdf5.OpenDataset(rc.r, rc.sbi, addrs[i])
		if err != nil {
			continue
		}
		if isTimeShaped(ds) {
			out = append(out, timeCandidate{slotIndex: i, ds: ds})
		}
	}
	return out
}

// isTimeShaped reports whether ds matches Stage 4's strict criteria
// for a Time payload slot: float64, not MATLAB_empty, and shaped
// exactly 1-by-N (HDF5 dims [N,1], which is MATLAB's row-vector shape
// reversed) with N >= 2.
func isTimeShaped(ds *rawhdf5.Dataset) bool {
	if ds.Datatype.Class != 1 || ds.Datatype.Size != 8 { // HDF5 floating-point class, 8 bytes
		return false
	}
	if attr, ok := ds.Attribute("MATLAB_empty"); ok && attr.AsUint() != 0 {
		return false
	}
	if len(ds.Dims) != 2 {
		return false
	}
	return ds.Dims[1] == 1 && ds.Dims[0] >= 2
}

// isDataShaped reports whether ds matches Stage 7's criteria for a
// Data payload paired to a Time vector of length n: float64, and a
// shape that contains n as one of its dimensions.
func isDataShaped(ds *rawhdf5.Dataset, n uint64) bool {
	if ds.Datatype.Class != 1 || ds.Datatype.Size != 8 {
		return false
	}
	for _, d := range ds.Dims {
		if d == n {
			return true
		}
	}
	return false
}

// enumerate walks the whole file for groups with MATLAB_class ==
// "timeseries", in depth-first (file-declared) order, and reads each
// one's own small object-id array to recover its MCOS object id. The
// convention (undocumented by MATLAB) is a short uint32 array whose
// fifth element (index 4) is the object id; shorter arrays are
// treated as not MCOS-backed.
func (rc *Reconstructor) enumerate() []occurrence {
	var occs []occurrence
	ordinal := 0
	rc.file.Walk(func(path string, obj hdf5.Object) {
		g, ok := obj.(*hdf5.Group)
		if !ok {
			return
		}
		if strings.HasPrefix(path, "/#subsystem#") {
			return
		}
		class, ok := groupAttrString(g, "MATLAB_class")
		if !ok || class != "timeseries" {
			return
		}
		objID, ok := rc.objectID(g)
		if !ok {
			return
		}
		occs = append(occs, occurrence{path: strings.TrimSuffix(path, "/"), ordinal: ordinal, objID: objID})
		ordinal++
	})
	return occs
}

// objectID reads a timeseries group's own object-id array and returns
// its index-4 element.
func (rc *Reconstructor) objectID(g *hdf5.Group) (uint32, bool) {
	for _, child := range g.Children() {
		ds, ok := child.(*hdf5.Dataset)
		if !ok {
			continue
		}
		raw, err := rawhdf5.OpenDataset(rc.r, rc.sbi, ds.Address())
		if err != nil || raw.Datatype.Class != 0 { // fixed-point (integer)
			continue
		}
		body, err := raw.ReadRaw(rc.r)
		if err != nil || len(body) < 5*4 {
			continue
		}
		return rc.sbi.Endianness.Uint32(body[4*4:]), true
	}
	return 0, false
}

// findSubsystem locates /#subsystem#/MCOS and returns its object
// header address, if present.
func (rc *Reconstructor) findSubsystem() (uint64, bool) {
	var addr uint64
	var found bool
	rc.file.Walk(func(path string, obj hdf5.Object) {
		if found {
			return
		}
		if strings.TrimSuffix(path, "/") != subsystemPath {
			return
		}
		if ds, ok := obj.(*hdf5.Dataset); ok {
			addr = ds.Address()
			found = true
		}
	})
	return addr, found
}

// readSlotVector reads the subsystem dataset as an array of object
// references and resolves each to its target object header address.
func (rc *Reconstructor) readSlotVector(addr uint64) ([]uint64, error) {
	ds, err := rawhdf5.OpenDataset(rc.r, rc.sbi, addr)
	if err != nil {
		return nil, err
	}
	body, err := ds.ReadRaw(rc.r)
	if err != nil {
		return nil, err
	}
	return rawhdf5.ReadReferences(body, rc.sbi)
}

func (rc *Reconstructor) readRawBestEffort(addr uint64) []byte {
	ds, err := rawhdf5.OpenDataset(rc.r, rc.sbi, addr)
	if err != nil {
		return nil
	}
	body, err := ds.ReadRaw(rc.r)
	if err != nil {
		return nil
	}
	return body
}

// groupAttrString reads a named attribute off an *hdf5.Group via
// reflection, mirroring decode.reflectAttrString; it is duplicated
// rather than imported because the decode package does not export it.
func groupAttrString(g *hdf5.Group, name string) (string, bool) {
	attrs, err := g.Attributes()
	if err != nil {
		return "", false
	}
	for _, a := range attrs {
		n, data, ok := reflectNameData(a)
		if ok && n == name {
			return strings.TrimRight(string(data), "\x00"), true
		}
	}
	return "", false
}
