package msg

import (
	"errors"
	"io"
)

var (
	_ io.ReadWriteSeeker = (*Stream)(nil)
	_ io.Closer          = (*Stream)(nil)

	ErrClosed = errors.New("stream closed")
)

// A Stream is an in-memory byte stream.
//
// Writes always append; reads advance an offset that Seek and Rewind reposition.
// A Stream is not safe for concurrent use.
type Stream struct {
	buf    []byte
	off    int
	closed bool
}

// NewStream constructs a Stream holding b.
func NewStream(b []byte) *Stream {
	return &Stream{buf: append([]byte(nil), b...)}
}

// Bytes returns the contents of the Stream regardless of the read offset.
func (s *Stream) Bytes() []byte { return s.buf }

// Close releases the contents of the Stream.
// Subsequent reads and writes return ErrClosed.
func (s *Stream) Close() error {
	s.buf = nil
	s.off = 0
	s.closed = true
	return nil
}

// EOF reports whether reading has reached the end of the Stream.
func (s *Stream) EOF() bool { return s.off >= len(s.buf) }

// Len returns the size of the Stream in bytes.
func (s *Stream) Len() int { return len(s.buf) }

func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	if s.off >= len(s.buf) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}

	n := copy(p, s.buf[s.off:])
	s.off += n
	return n, nil
}

// Rewind returns the read offset to the start of the Stream.
func (s *Stream) Rewind() { s.off = 0 }

func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(s.off) + offset
	case io.SeekEnd:
		abs = int64(len(s.buf)) + offset
	default:
		return 0, errors.New("msg: invalid whence")
	}

	if abs < 0 {
		return 0, errors.New("msg: negative position")
	}

	s.off = int(abs)
	return abs, nil
}

// String returns the full contents of the Stream regardless of the read offset.
func (s *Stream) String() string { return string(s.buf) }

func (s *Stream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	s.buf = append(s.buf, p...)
	return len(p), nil
}

func (s *Stream) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}
