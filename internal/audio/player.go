package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Player streams a fixed buffer of samples to the default output device.
type Player struct {
	Stream *portaudio.Stream

	mu      sync.Mutex
	samples []float32
	pos     int
	done    chan struct{}
	once    sync.Once
}

// NewPlayer scales samples into [-0.9, 0.9] for playback.
func NewPlayer(samples []float64) *Player {
	peak := 0.0
	for _, v := range samples {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	gain := 0.0
	if peak > 0 {
		gain = headroom / peak
	}
	buf := make([]float32, len(samples))
	for i, v := range samples {
		buf[i] = float32(v * gain)
	}
	return &Player{samples: buf, done: make(chan struct{})}
}

// Process is the stream callback. It fills out with the next samples and
// pads with silence once the buffer is exhausted.
func (p *Player) Process(out []float32) {
	p.mu.Lock()
	n := copy(out, p.samples[p.pos:])
	p.pos += n
	finished := p.pos >= len(p.samples)
	p.mu.Unlock()

	for i := n; i < len(out); i++ {
		out[i] = 0
	}
	if finished {
		p.once.Do(func() { close(p.done) })
	}
}

// Done is closed after the last sample has been handed to the device.
func (p *Player) Done() <-chan struct{} { return p.done }

// Play blocks until playback finishes or ctx is cancelled.
func (p *Player) Play(ctx context.Context, rate int) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initialize: %w", err)
	}
	defer portaudio.Terminate()

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(rate), BufferSize, p.Process)
	if err != nil {
		return fmt.Errorf("audio: open stream: %w", err)
	}
	defer stream.Close()
	p.Stream = stream

	if err := stream.Start(); err != nil {
		return fmt.Errorf("audio: start stream: %w", err)
	}

	select {
	case <-p.done:
	case <-ctx.Done():
	}
	if err := stream.Stop(); err != nil {
		return fmt.Errorf("audio: stop stream: %w", err)
	}
	return ctx.Err()
}

// Play is a convenience wrapper around [NewPlayer] and [Player.Play].
func Play(ctx context.Context, samples []float64, rate int) error {
	return NewPlayer(samples).Play(ctx, rate)
}
