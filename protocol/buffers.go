package protocol

// InputBuffer is a window onto received bytes that the transport consumes
type InputBuffer interface {
	Data() []byte
	Available() int
	Pop(n int)
}

// OutputBuffer collects outgoing frame bytes
type OutputBuffer interface {
	Output(data []byte)
	CurPosition() int
	Update(pos int, val byte)
	DataSince(pos int) []byte
}

// ScratchOutput implements OutputBuffer on a fixed array.
// Output beyond MessageMax is dropped.
type ScratchOutput struct {
	buf [MessageMax]byte
	pos int
}

// NewScratchOutput creates a new ScratchOutput
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

func (s *ScratchOutput) Output(data []byte) {
	n := copy(s.buf[s.pos:], data)
	s.pos += n
}

func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

func (s *ScratchOutput) Update(pos int, val byte) {
	if pos < len(s.buf) {
		s.buf[pos] = val
	}
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos > s.pos {
		return nil
	}
	return s.buf[pos:s.pos]
}

// Result returns the accumulated output data
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Reset clears the buffer
func (s *ScratchOutput) Reset() {
	s.pos = 0
}

// FifoBuffer is a fixed-size ring of received serial bytes.
// Writes past capacity are refused rather than overwriting unread data.
type FifoBuffer struct {
	buf  []byte
	head int
	n    int
}

// NewFifoBuffer creates a FifoBuffer holding up to capacity bytes
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{buf: make([]byte, capacity)}
}

// Write appends as much of data as fits and returns the count written
func (f *FifoBuffer) Write(data []byte) int {
	room := len(f.buf) - f.n
	if len(data) > room {
		data = data[:room]
	}
	tail := (f.head + f.n) % len(f.buf)
	k := copy(f.buf[tail:], data)
	copy(f.buf, data[k:])
	f.n += len(data)
	return len(data)
}

// Available returns the number of unread bytes
func (f *FifoBuffer) Available() int {
	return f.n
}

// Data returns the unread bytes as one slice.
// When the ring has wrapped the bytes are copied out so frames parse contiguously.
func (f *FifoBuffer) Data() []byte {
	if f.head+f.n <= len(f.buf) {
		return f.buf[f.head : f.head+f.n]
	}
	out := make([]byte, f.n)
	k := copy(out, f.buf[f.head:])
	copy(out[k:], f.buf)
	return out
}

// Pop discards n bytes from the front
func (f *FifoBuffer) Pop(n int) {
	if n > f.n {
		n = f.n
	}
	f.n -= n
	if f.n == 0 {
		f.head = 0
		return
	}
	f.head = (f.head + n) % len(f.buf)
}

// Reset drops all unread bytes
func (f *FifoBuffer) Reset() {
	f.head, f.n = 0, 0
}
