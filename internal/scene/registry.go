package scene

import (
	"fmt"
	"sort"

	"github.com/san-kum/chirpsim/internal/config"
	"github.com/san-kum/chirpsim/internal/dynamo"
	"github.com/san-kum/chirpsim/internal/physics"
)

// Factory builds a fresh stepper for cfg.
type Factory func(cfg *config.Config) (dynamo.Kinematics, error)

type Registry struct {
	scenes map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{scenes: make(map[string]Factory)}

	r.scenes["orbit"] = func(cfg *config.Config) (dynamo.Kinematics, error) {
		return physics.NewBinary(physics.Params{
			M1:        cfg.Binary.M1,
			M2:        cfg.Binary.M2,
			Alpha:     cfg.Binary.Alpha,
			Beta:      cfg.Binary.Beta,
			Gamma:     cfg.Binary.Gamma,
			FrameRate: cfg.Orbit.FrameRate,
			Omega:     cfg.OrbitOmega(),
		})
	}
	r.scenes["inspiral"] = func(cfg *config.Config) (dynamo.Kinematics, error) {
		var opts []physics.Option
		if cfg.Inspiral.TimeStep != 0 {
			opts = append(opts, physics.WithTimeStep(cfg.Inspiral.TimeStep))
		}
		return physics.NewInspiralingBinary(physics.InspiralParams{
			M1:     cfg.Binary.M1,
			M2:     cfg.Binary.M2,
			Alpha:  cfg.Binary.Alpha,
			Beta:   cfg.Binary.Beta,
			Gamma:  cfg.Binary.Gamma,
			Omega0: cfg.Inspiral.Omega0,
		}, opts...)
	}

	return r
}

// Register adds or replaces a scene kind.
func (r *Registry) Register(name string, f Factory) {
	r.scenes[name] = f
}

func (r *Registry) Build(cfg *config.Config) (dynamo.Kinematics, error) {
	fn, ok := r.scenes[cfg.Scene]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", cfg.Scene)
	}
	return fn(cfg)
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
