// Package automation runs scripted sequences of scenes.
package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/san-kum/chirpsim/internal/config"
	"github.com/san-kum/chirpsim/internal/scene"
	"gopkg.in/yaml.v3"
)

// Scenario is a list of scenes run one after another.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one scene. Zero fields keep the value from the preset or the
// base configuration.
type Step struct {
	Preset   string  `yaml:"preset"`
	Scene    string  `yaml:"scene"`
	M1       float64 `yaml:"m1"`
	M2       float64 `yaml:"m2"`
	Omega    float64 `yaml:"omega"`
	Omega0   float64 `yaml:"omega0"`
	Duration float64 `yaml:"duration"`
	SaveAs   string  `yaml:"save_as"`
}

// StepResult pairs a finished scene with the configuration it ran with.
type StepResult struct {
	Step   Step
	Config *config.Config
	Result *scene.Result
}

// Label names the step in logs and saved runs.
func (s Step) Label() string {
	switch {
	case s.SaveAs != "":
		return s.SaveAs
	case s.Preset != "":
		return s.Preset
	default:
		return s.Scene
	}
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// Config applies the step to a copy of base.
func (s Step) Config(base *config.Config) (*config.Config, error) {
	cfg := *base
	if s.Preset != "" {
		p, ok := config.Presets[s.Preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
		p.Apply(&cfg)
	}
	if s.Scene != "" {
		cfg.Scene = s.Scene
	}
	if s.M1 > 0 {
		cfg.Binary.M1 = s.M1
	}
	if s.M2 > 0 {
		cfg.Binary.M2 = s.M2
	}
	if s.Omega > 0 {
		cfg.Orbit.Omega = s.Omega
	}
	if s.Omega0 > 0 {
		cfg.Inspiral.Omega0 = s.Omega0
	}
	if s.Duration > 0 {
		cfg.Orbit.Duration = s.Duration
	}
	return &cfg, nil
}

// RunScenario executes all steps in order and stops at the first failure,
// returning the steps completed so far.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, registry *scene.Registry, log zerolog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Info().Int("step", i+1).Int("of", len(scenario.Steps)).Str("label", step.Label()).Msg("running step")

		cfg, err := step.Config(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		sc, err := scene.New(cfg, registry, log)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res, err := sc.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Config: cfg, Result: res})
	}

	return results, nil
}
