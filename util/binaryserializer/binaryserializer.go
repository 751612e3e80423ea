package binaryserializer

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// maxItems is the number of buffers kept in the free list.
const maxItems = 1024

// binaryFreeList is a concurrent safe free list of 8-byte buffers used to
// read and write fixed size little endian integers without allocating.
var binaryFreeList = make(chan []byte, maxItems)

// Borrow returns a byte slice from the free list with a length of 8. A new
// buffer is allocated if there are not any available on the free list.
func Borrow() []byte {
	var buf []byte
	select {
	case buf = <-binaryFreeList:
	default:
		buf = make([]byte, 8)
	}
	return buf[:8]
}

// Return puts the provided byte slice back on the free list. The buffer MUST
// have been obtained via the Borrow function and therefore have a cap of 8.
func Return(buf []byte) {
	select {
	case binaryFreeList <- buf:
	default:
		// Let it go to the garbage collector.
	}
}

// readFixed reads exactly size bytes into a borrowed buffer. The caller must
// Return the buffer.
func readFixed(r io.Reader, size int) ([]byte, error) {
	buf := Borrow()[:size]
	if _, err := io.ReadFull(r, buf); err != nil {
		Return(buf)
		return nil, errors.WithStack(err)
	}
	return buf, nil
}

func writeFixed(w io.Writer, buf []byte) error {
	_, err := w.Write(buf)
	Return(buf)
	return errors.WithStack(err)
}

// Uint8 reads a single byte from r.
func Uint8(r io.Reader) (uint8, error) {
	buf, err := readFixed(r, 1)
	if err != nil {
		return 0, err
	}
	rv := buf[0]
	Return(buf)
	return rv, nil
}

// Uint16 reads a little endian uint16 from r.
func Uint16(r io.Reader) (uint16, error) {
	buf, err := readFixed(r, 2)
	if err != nil {
		return 0, err
	}
	rv := binary.LittleEndian.Uint16(buf)
	Return(buf)
	return rv, nil
}

// Uint32 reads a little endian uint32 from r.
func Uint32(r io.Reader) (uint32, error) {
	buf, err := readFixed(r, 4)
	if err != nil {
		return 0, err
	}
	rv := binary.LittleEndian.Uint32(buf)
	Return(buf)
	return rv, nil
}

// Uint64 reads a little endian uint64 from r.
func Uint64(r io.Reader) (uint64, error) {
	buf, err := readFixed(r, 8)
	if err != nil {
		return 0, err
	}
	rv := binary.LittleEndian.Uint64(buf)
	Return(buf)
	return rv, nil
}

// Int64 reads a little endian two's complement int64 from r.
func Int64(r io.Reader) (int64, error) {
	rv, err := Uint64(r)
	return int64(rv), err
}

// PutUint8 writes val to w.
func PutUint8(w io.Writer, val uint8) error {
	buf := Borrow()[:1]
	buf[0] = val
	return writeFixed(w, buf)
}

// PutUint16 writes val to w in little endian.
func PutUint16(w io.Writer, val uint16) error {
	buf := Borrow()[:2]
	binary.LittleEndian.PutUint16(buf, val)
	return writeFixed(w, buf)
}

// PutUint32 writes val to w in little endian.
func PutUint32(w io.Writer, val uint32) error {
	buf := Borrow()[:4]
	binary.LittleEndian.PutUint32(buf, val)
	return writeFixed(w, buf)
}

// PutUint64 writes val to w in little endian.
func PutUint64(w io.Writer, val uint64) error {
	buf := Borrow()
	binary.LittleEndian.PutUint64(buf, val)
	return writeFixed(w, buf)
}

// PutInt64 writes val to w as a little endian two's complement integer.
func PutInt64(w io.Writer, val int64) error {
	return PutUint64(w, uint64(val))
}
