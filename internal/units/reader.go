package units

import "io"

// Reader walks a code-unit stream with position tracking.
type Reader struct {
	units []uint16
	pos   int
}

// NewReader creates a new Reader over us.
func NewReader(us []uint16) *Reader {
	return &Reader{units: us}
}

// Position returns the current unit offset.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread units.
func (r *Reader) Remaining() int {
	return len(r.units) - r.pos
}

// Peek returns the next unit without consuming it.
func (r *Reader) Peek() (uint16, error) {
	if r.pos >= len(r.units) {
		return 0, io.EOF
	}
	return r.units[r.pos], nil
}

// Next consumes n units and returns them. The slice aliases the stream.
func (r *Reader) Next(n int) ([]uint16, error) {
	if n > r.Remaining() {
		return nil, io.ErrUnexpectedEOF
	}
	us := r.units[r.pos : r.pos+n]
	r.pos += n
	return us, nil
}

// Window returns up to n unread units without consuming them.
func (r *Reader) Window(n int) []uint16 {
	return r.units[r.pos : r.pos+min(n, r.Remaining())]
}
