package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// headroom is the fraction of int16 full scale used by the loudest sample.
	headroom = 0.9
)

// Tone is a constant-pitch sine of the given amplitude, sampled over the
// closed interval [0, seconds].
func Tone(freq, seconds, amp float64, rate int) []float64 {
	return VarNote(constant(freq), constant(amp), seconds, rate)
}

// VarNote samples amp(t)·sin(2π·freq(t)·t) over the closed interval
// [0, seconds]. The frequency multiplies t directly rather than being
// integrated, so a rising freq(t) sweeps faster than freq alone suggests.
func VarNote(freq, amp func(t float64) float64, seconds float64, rate int) []float64 {
	out, step := grid(seconds, rate)
	for i := range out {
		t := float64(i) * step
		out[i] = amp(t) * math.Sin(2*math.Pi*freq(t)*t)
	}
	return out
}

// PhasedTone is Tone shifted by phase radians: amp·sin(2π·freq·t + phase).
func PhasedTone(freq, phase, seconds, amp float64, rate int) []float64 {
	out, step := grid(seconds, rate)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)*step+phase)
	}
	return out
}

// grid allocates int(seconds·rate) samples spread evenly over [0, seconds]
// and returns them with the spacing between samples.
func grid(seconds float64, rate int) ([]float64, float64) {
	n := max(int(seconds*float64(rate)), 0)
	if n < 2 {
		return make([]float64, n), 0
	}
	return make([]float64, n), seconds / float64(n-1)
}

// Superpose adds equally long waves sample by sample.
func Superpose(waves ...[]float64) ([]float64, error) {
	if len(waves) == 0 {
		return nil, fmt.Errorf("audio: nothing to superpose")
	}
	out := make([]float64, len(waves[0]))
	for i, w := range waves {
		if len(w) != len(out) {
			return nil, fmt.Errorf("audio: wave %d has %d samples, want %d", i, len(w), len(out))
		}
		for j, v := range w {
			out[j] += v
		}
	}
	return out, nil
}

func constant(v float64) func(float64) float64 {
	return func(float64) float64 { return v }
}

// WriteWAV writes 16-bit PCM with one channel per argument. The channels
// are scaled together so that the loudest sample sits at 90% of full scale;
// an all-zero input stays silent. NaN or infinite samples are rejected.
func WriteWAV(w io.Writer, rate int, channels ...[]float64) error {
	if len(channels) == 0 {
		return fmt.Errorf("audio: no channels")
	}
	if rate <= 0 {
		return fmt.Errorf("audio: sample rate %d must be > 0", rate)
	}
	n := len(channels[0])
	for i, ch := range channels[1:] {
		if len(ch) != n {
			return fmt.Errorf("audio: channel %d has %d samples, want %d", i+1, len(ch), n)
		}
	}

	peak := 0.0
	for c, ch := range channels {
		for i, v := range ch {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("audio: channel %d sample %d is %g", c, i, v)
			}
			peak = math.Max(peak, math.Abs(v))
		}
	}
	gain := 0.0
	if peak > 0 {
		gain = headroom * math.MaxInt16 / peak
	}

	nc := len(channels)
	dataSize := n * nc * 2
	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	hdr := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(36 + dataSize),
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		uint16(1), // PCM
		uint16(nc),
		uint32(rate),
		uint32(rate * nc * 2),
		uint16(nc * 2),
		uint16(16),
		[4]byte{'d', 'a', 't', 'a'},
		uint32(dataSize),
	}
	for _, v := range hdr {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	frame := make([]int16, nc)
	for i := 0; i < n; i++ {
		for c, ch := range channels {
			frame[c] = int16(ch[i] * gain)
		}
		if err := binary.Write(&buf, binary.LittleEndian, frame); err != nil {
			return err
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("audio: write wav: %w", err)
	}
	return nil
}
