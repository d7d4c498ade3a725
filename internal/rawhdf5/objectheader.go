package rawhdf5

import (
	"encoding/binary"
	"fmt"
)

// Header message types, per the HDF5 object header message layout.
const (
	msgNil           = 0x0000
	msgDataspace     = 0x0001
	msgLinkInfo      = 0x0002
	msgDatatype      = 0x0003
	msgFillValueOld  = 0x0004
	msgFillValue     = 0x0005
	msgLink          = 0x0006
	msgDataLayout    = 0x0008
	msgGroupInfo     = 0x000A
	msgFilterPipe    = 0x000B
	msgAttribute     = 0x000C
	msgContinuation  = 0x0010
	msgSymbolTable   = 0x0011
	msgAttributeInfo = 0x0015
)

const ohdrV2Signature = "OHDR"
const ochkV2Signature = "OCHK"

// message is one raw header message: its type and undecoded payload.
type message struct {
	Type uint16
	Data []byte
}

// readAt is the minimal dependency this package needs from an open
// HDF5 file: random access to its bytes.
type readAt interface {
	ReadAt(p []byte, off int64) (int, error)
}

// readMessages walks the object header at addr, following continuation
// blocks, and returns every message it contains in file order.
func readMessages(r readAt, addr uint64, sbi SuperblockInfo) ([]message, error) {
	sig := make([]byte, 4)
	if _, err := r.ReadAt(sig, int64(addr)); err != nil {
		return nil, fmt.Errorf("rawhdf5: read object header signature at %#x: %w", addr, err)
	}
	if string(sig) == ohdrV2Signature {
		return readMessagesV2(r, addr, sbi)
	}
	return readMessagesV1(r, addr, sbi)
}

// readMessagesV1 parses a version-1 object header: a 16-byte prefix
// (version, reserved, message count, reference count, header size,
// padding) followed by messages padded to 8-byte multiples, optionally
// continued via msgContinuation into further same-format blocks.
func readMessagesV1(r readAt, addr uint64, sbi SuperblockInfo) ([]message, error) {
	prefix := make([]byte, 16)
	if _, err := r.ReadAt(prefix, int64(addr)); err != nil {
		return nil, fmt.Errorf("rawhdf5: read v1 header prefix at %#x: %w", addr, err)
	}
	if prefix[0] != 1 {
		return nil, fmt.Errorf("rawhdf5: unsupported object header version %d at %#x", prefix[0], addr)
	}
	headerSize := binary.LittleEndian.Uint32(prefix[8:12])

	var out []message
	type region struct {
		off uint64
		len uint32
	}
	queue := []region{{off: addr + 16, len: headerSize}}

	for len(queue) > 0 {
		reg := queue[0]
		queue = queue[1:]

		buf := make([]byte, reg.len)
		if _, err := r.ReadAt(buf, int64(reg.off)); err != nil {
			return nil, fmt.Errorf("rawhdf5: read v1 message block at %#x: %w", reg.off, err)
		}

		pos := 0
		for pos+8 <= len(buf) {
			mtype := binary.LittleEndian.Uint16(buf[pos : pos+2])
			msize := binary.LittleEndian.Uint16(buf[pos+2 : pos+4])
			dataStart := pos + 8
			dataEnd := dataStart + int(msize)
			if dataEnd > len(buf) {
				break
			}
			data := buf[dataStart:dataEnd]

			if mtype == msgContinuation {
				if len(data) < int(sbi.OffsetSize)+int(sbi.LengthSize) {
					pos = dataEnd
					continue
				}
				off := sbi.readOffset(data[0:sbi.OffsetSize])
				length := sbi.readLength(data[sbi.OffsetSize : sbi.OffsetSize+sbi.LengthSize])
				queue = append(queue, region{off: off, len: uint32(length)})
			} else if mtype != msgNil {
				out = append(out, message{Type: mtype, Data: data})
			}
			pos = dataEnd
		}
	}
	return out, nil
}

// readMessagesV2 parses a version-2 ("OHDR"-signed) object header.
// Message framing differs from v1: a 1-byte type, 2-byte size, 1-byte
// flags (plus an optional 2-byte creation order), with no 8-byte
// alignment requirement. Continuation blocks are signed "OCHK".
func readMessagesV2(r readAt, addr uint64, sbi SuperblockInfo) ([]message, error) {
	head := make([]byte, 6)
	if _, err := r.ReadAt(head, int64(addr)); err != nil {
		return nil, fmt.Errorf("rawhdf5: read v2 header at %#x: %w", addr, err)
	}
	flags := head[5]
	pos := int64(addr) + 6

	if flags&0x20 != 0 { // times present
		pos += 16
	}
	if flags&0x10 != 0 { // phase change values present
		pos += 4
	}

	chunk0SizeLen := 1 << (flags & 0x03)
	szBuf := make([]byte, chunk0SizeLen)
	if _, err := r.ReadAt(szBuf, pos); err != nil {
		return nil, fmt.Errorf("rawhdf5: read v2 chunk0 size at %#x: %w", pos, err)
	}
	chunk0Size := readSized(szBuf, uint8(chunk0SizeLen), binary.LittleEndian)
	pos += int64(chunk0SizeLen)

	trackCreationOrder := flags&0x04 != 0

	var out []message
	type region struct {
		off int64
		len int64
	}
	queue := []region{{off: pos, len: int64(chunk0Size)}}
	first := true

	for len(queue) > 0 {
		reg := queue[0]
		queue = queue[1:]

		start := reg.off
		end := reg.off + reg.len
		if !first {
			// Continuation blocks carry an "OCHK" signature and end with
			// a 4-byte checksum already excluded from reg.len by the
			// continuation message's declared length.
			sig := make([]byte, 4)
			if _, err := r.ReadAt(sig, start); err == nil && string(sig) == ochkV2Signature {
				start += 4
			}
		}
		first = false

		cur := start
		for cur+4 <= end {
			mh := make([]byte, 4)
			if _, err := r.ReadAt(mh, cur); err != nil {
				break
			}
			mtype := uint16(mh[0])
			msize := binary.LittleEndian.Uint16(mh[1:3])
			mflags := mh[3]
			cur += 4
			if trackCreationOrder {
				cur += 2
			}
			data := make([]byte, msize)
			if msize > 0 {
				if _, err := r.ReadAt(data, cur); err != nil {
					break
				}
			}
			cur += int64(msize)
			_ = mflags

			if mtype == msgContinuation {
				if len(data) >= int(sbi.OffsetSize)+int(sbi.LengthSize) {
					off := sbi.readOffset(data[0:sbi.OffsetSize])
					length := sbi.readLength(data[sbi.OffsetSize : sbi.OffsetSize+sbi.LengthSize])
					queue = append(queue, region{off: int64(off), len: int64(length)})
				}
			} else if mtype != msgNil {
				out = append(out, message{Type: mtype, Data: data})
			}
		}
	}
	return out, nil
}
