// Package units holds the 16-bit code-unit buffers shared by the format,
// encoder and disassembler packages.
package units

import (
	"encoding/binary"
	"errors"
)

// ErrOddLength is returned when a byte stream does not split into code units.
var ErrOddLength = errors.New("units: odd byte length")

// Writer accumulates code units in program order.
type Writer struct {
	buf []uint16
}

// NewWriter creates a new Writer with room for n units.
func NewWriter(n int) *Writer {
	return &Writer{buf: make([]uint16, 0, n)}
}

// Unit appends a single code unit.
func (w *Writer) Unit(u uint16) {
	w.buf = append(w.buf, u)
}

// Units32 appends v as two code units, low half first.
func (w *Writer) Units32(v uint32) {
	w.buf = append(w.buf, uint16(v), uint16(v>>16))
}

// Units64 appends v as four code units, low half first.
func (w *Writer) Units64(v uint64) {
	w.Units32(uint32(v))
	w.Units32(uint32(v >> 32))
}

// WriteUnits appends a run of code units.
func (w *Writer) WriteUnits(us []uint16) {
	w.buf = append(w.buf, us...)
}

// Units returns the written code units. The slice aliases the buffer.
func (w *Writer) Units() []uint16 {
	return w.buf
}

// Len returns the number of code units written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reset empties the buffer, keeping its storage.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// Bytes serializes the code units in the given byte order.
func (w *Writer) Bytes(order binary.ByteOrder) []byte {
	return ToBytes(w.buf, order)
}

// ToBytes serializes code units in the given byte order.
func ToBytes(us []uint16, order binary.ByteOrder) []byte {
	out := make([]byte, 2*len(us))
	for i, u := range us {
		order.PutUint16(out[2*i:], u)
	}
	return out
}

// FromBytes splits a byte stream into code units.
func FromBytes(data []byte, order binary.ByteOrder) ([]uint16, error) {
	if len(data)%2 != 0 {
		return nil, ErrOddLength
	}
	us := make([]uint16, len(data)/2)
	for i := range us {
		us[i] = order.Uint16(data[2*i:])
	}
	return us, nil
}
