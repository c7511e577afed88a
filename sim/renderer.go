package sim

import (
	"errors"
	"io"
	"math"
	"sync"
)

// Renderer audio defaults
const (
	DefaultSampleRate = 44100
	DefaultVolume     = 0.3
	DefaultTailMS     = 100
)

var ErrSampleRate = errors.New("sample rate must be positive")

// Renderer samples a machine's buzzer pin as signed 16-bit little endian
// mono PCM. It reads io.EOF once the machine is done and the tail of silence
// after it has been produced, or once Close has been called.
// Read and Close may be called from different goroutines.
type Renderer struct {
	mu     sync.Mutex
	closed bool

	machine    *Machine
	sampleRate uint32
	amplitude  int16

	acc         uint64 // CPU tick remainder carried between samples
	tailSamples uint32
}

// NewRenderer creates a renderer. volume is clamped to 0..1.
func NewRenderer(m *Machine, sampleRate int, volume float64) (*Renderer, error) {
	if sampleRate <= 0 {
		return nil, ErrSampleRate
	}
	volume = math.Max(0, math.Min(1, volume))
	return &Renderer{
		machine:     m,
		sampleRate:  uint32(sampleRate),
		amplitude:   int16(volume * math.MaxInt16),
		tailSamples: uint32(sampleRate) * DefaultTailMS / 1000,
	}, nil
}

// SampleRate returns the output sample rate
func (r *Renderer) SampleRate() int {
	return int(r.sampleRate)
}

// Read fills p with whole samples
func (r *Renderer) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, io.EOF
	}

	n := 0
	for n+2 <= len(p) {
		if r.machine.Done() {
			if r.tailSamples == 0 {
				break
			}
			r.tailSamples--
		}

		sample := r.next()
		p[n] = byte(sample)
		p[n+1] = byte(uint16(sample) >> 8)
		n += 2
	}

	if n == 0 && len(p) >= 2 {
		return 0, io.EOF
	}
	return n, nil
}

// Close ends the stream. It waits for a Read in progress, after which
// the machine is no longer touched and Read returns io.EOF.
func (r *Renderer) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

// next advances the machine by one sample period and returns the pin level
func (r *Renderer) next() int16 {
	r.acc += uint64(r.machine.Timer.ClockHz())
	ticks := r.acc / uint64(r.sampleRate)
	r.acc %= uint64(r.sampleRate)
	r.machine.Advance(uint32(ticks))

	switch {
	case !r.machine.Timer.Running():
		return 0
	case r.machine.Timer.Pin():
		return r.amplitude
	default:
		return -r.amplitude
	}
}
