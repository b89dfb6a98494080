// Package scene turns a configuration into recorded kinematics and the
// render frames drawn from them.
package scene

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/san-kum/chirpsim/internal/config"
	"github.com/san-kum/chirpsim/internal/dynamo"
	"github.com/san-kum/chirpsim/internal/physics"
	"github.com/san-kum/chirpsim/internal/storage"
	"github.com/san-kum/chirpsim/internal/viz"
)

// chunk is how many frames are evolved between cancellation checks.
const chunk = 1024

// OrbitScale is the disk radius per solar mass on the unit orbit.
const OrbitScale = 0.01

type Scene struct {
	cfg *config.Config
	kin dynamo.Kinematics
	log zerolog.Logger
}

// Result is a finished scene. Frames may be a decimated subset of the
// recorded kinematics; Ringdown is empty unless the binary merged.
type Result struct {
	Kinematics  dynamo.Kinematics
	Artist      *viz.BinaryArtist
	Frames      []viz.RenderFrame
	Ringdown    []viz.RenderFrame
	Termination dynamo.Termination
}

// New validates cfg and builds the scene's stepper from reg.
func New(cfg *config.Config, reg *Registry, log zerolog.Logger) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kin, err := reg.Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", cfg.Scene, err)
	}
	return &Scene{
		cfg: cfg,
		kin: kin,
		log: log.With().Str("scene", cfg.Scene).Logger(),
	}, nil
}

func (s *Scene) Kinematics() dynamo.Kinematics { return s.kin }

// VisualScale resolves the configured disk scale for this scene.
func (s *Scene) VisualScale() float64 {
	if s.cfg.Render.VisualScale > 0 {
		return s.cfg.Render.VisualScale
	}
	if ib, ok := s.kin.(*physics.InspiralingBinary); ok {
		return ib.MergerSeparation() / (s.cfg.Binary.M1 + s.cfg.Binary.M2)
	}
	return OrbitScale
}

// Artist returns a renderer for the scene's kinematics.
func (s *Scene) Artist() (*viz.BinaryArtist, error) {
	return viz.NewBinaryArtist(s.kin, s.VisualScale())
}

// Remnant returns the ringdown for the merged mass, sized with the scene's
// visual scale.
func (s *Scene) Remnant() (*viz.Ringdown, error) {
	return viz.NewRingdown(s.cfg.Binary.M1+s.cfg.Binary.M2, s.cfg.Inspiral.RingdownA0, s.cfg.Inspiral.RingdownTau, s.VisualScale())
}

// Run evolves the scene to completion. Orbit scenes record
// duration·frame_rate frames; inspiral scenes run until they terminate.
func (s *Scene) Run(ctx context.Context) (*Result, error) {
	artist, err := s.Artist()
	if err != nil {
		return nil, err
	}

	res := &Result{Kinematics: s.kin, Artist: artist, Termination: dynamo.Running}
	switch k := s.kin.(type) {
	case *physics.InspiralingBinary:
		if err := s.runInspiral(ctx, k); err != nil {
			return nil, err
		}
		res.Termination = k.Termination()
	default:
		if err := s.runFixed(ctx, s.cfg.OrbitFrames()); err != nil {
			return nil, err
		}
	}

	n := s.kin.Frames()
	stride := Stride(n, s.cfg.Inspiral.MaxFrames)
	if s.cfg.Scene == "orbit" {
		stride = 1
	}
	for _, i := range Indices(n, stride) {
		res.Frames = append(res.Frames, artist.Frame(i))
	}

	if res.Termination == dynamo.Merged && s.cfg.Inspiral.RingdownFrames > 0 {
		rd, err := s.Remnant()
		if err != nil {
			return nil, err
		}
		res.Ringdown = make([]viz.RenderFrame, s.cfg.Inspiral.RingdownFrames)
		for i := range res.Ringdown {
			res.Ringdown[i] = rd.Frame(i)
		}
	}

	s.log.Info().
		Int("frames", n).
		Int("rendered", len(res.Frames)).
		Int("ringdown", len(res.Ringdown)).
		Stringer("termination", res.Termination).
		Msg("scene finished")
	return res, nil
}

func (s *Scene) runFixed(ctx context.Context, frames int) error {
	for s.kin.Frames() < frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := min(chunk, frames-s.kin.Frames())
		if err := s.kin.Evolve(n); err != nil {
			return err
		}
		s.log.Debug().Int("frames", s.kin.Frames()).Msg("evolved")
	}
	return nil
}

func (s *Scene) runInspiral(ctx context.Context, ib *physics.InspiralingBinary) error {
	s.log.Debug().
		Float64("chirp_mass", ib.ChirpMass()).
		Float64("tc", ib.CoalescenceTime()).
		Float64("time_step", ib.TimeStep()).
		Msg("inspiral started")

	for ib.Termination() == dynamo.Running {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := ib.Evolve(chunk)
		if err != nil && !errors.Is(err, dynamo.ErrMerged) {
			return err
		}
		s.log.Debug().Int("frames", ib.Frames()).Float64("radius", ib.Radius()).Msg("evolved")
	}

	if ib.Termination() == dynamo.Breakdown {
		s.log.Warn().Err(ib.Err()).Int("frames", ib.Frames()).Msg("inspiral left the chirp law's domain before merger")
	}
	return nil
}

// Stride is the smallest step that keeps at most limit frames out of n
// (plus the final frame). A non-positive limit keeps every frame.
func Stride(n, limit int) int {
	if limit <= 0 || n <= limit {
		return 1
	}
	return int(math.Ceil(float64(n) / float64(limit)))
}

// Indices lists every stride-th frame index below n, always ending at n-1.
func Indices(n, stride int) []int {
	if n <= 0 {
		return nil
	}
	if stride < 1 {
		stride = 1
	}
	out := make([]int, 0, n/stride+2)
	for i := 0; i < n; i += stride {
		out = append(out, i)
	}
	if out[len(out)-1] != n-1 {
		out = append(out, n-1)
	}
	return out
}

// All returns the orbit frames followed by the ringdown.
func (r *Result) All() []viz.RenderFrame {
	out := make([]viz.RenderFrame, 0, len(r.Frames)+len(r.Ringdown))
	out = append(out, r.Frames...)
	return append(out, r.Ringdown...)
}

// Rows returns every recorded kinematics frame for storage.
func (r *Result) Rows() []storage.FrameRow {
	n := r.Kinematics.Frames()
	rows := make([]storage.FrameRow, n)

	switch k := r.Kinematics.(type) {
	case *physics.InspiralingBinary:
		times, radii, omegas := k.Times(), k.Radii(), k.Omegas()
		for i := range rows {
			p := k.Frame(i)
			rows[i] = storage.FrameRow{Frame: i, Time: times[i], Radius: radii[i], Omega: omegas[i], Primary: p.Primary, Secondary: p.Secondary}
		}
	case *physics.Binary:
		prm := k.Params()
		for i := range rows {
			p := k.Frame(i)
			// Frame i is recorded after step i+1.
			t := float64(i+1) / prm.FrameRate
			rows[i] = storage.FrameRow{Frame: i, Time: t, Radius: k.Radius(), Omega: prm.Omega, Primary: p.Primary, Secondary: p.Secondary}
		}
	default:
		for i := range rows {
			p := r.Kinematics.Frame(i)
			rows[i] = storage.FrameRow{Frame: i, Primary: p.Primary, Secondary: p.Secondary}
		}
	}
	return rows
}

// Metadata describes the run for storage. Metrics carry the derived
// quantities a reader would otherwise have to recompute.
func (r *Result) Metadata(cfg *config.Config, preset string) storage.RunMetadata {
	meta := storage.RunMetadata{
		Scene:  cfg.Scene,
		Preset: preset,
		M1:     cfg.Binary.M1,
		M2:     cfg.Binary.M2,
		Alpha:  cfg.Binary.Alpha,
		Beta:   cfg.Binary.Beta,
		Gamma:  cfg.Binary.Gamma,
		Metrics: map[string]float64{
			"rendered_frames": float64(len(r.Frames)),
			"ringdown_frames": float64(len(r.Ringdown)),
		},
	}

	switch k := r.Kinematics.(type) {
	case *physics.InspiralingBinary:
		meta.Omega0 = k.Params().Omega0
		meta.TimeStep = k.TimeStep()
		meta.Termination = r.Termination.String()
		meta.Metrics["chirp_mass"] = k.ChirpMass()
		meta.Metrics["coalescence_time"] = k.CoalescenceTime()
		meta.Metrics["merger_separation"] = k.MergerSeparation()
		meta.Metrics["merger_omega"] = k.MergerOmega()
		meta.Metrics["final_radius"] = k.Radius()
		meta.Metrics["final_time"] = k.CurrentState().Time
	case *physics.Binary:
		meta.FrameRate = k.Params().FrameRate
		meta.Omega = k.Params().Omega
	}
	return meta
}
