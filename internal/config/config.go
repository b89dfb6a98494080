package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrameRate = 30.0
	DefaultDuration  = 8.0
	DefaultAlpha     = 50.0
	DefaultBeta      = 20.0
	DefaultGamma     = 95.0
	DefaultOmega0    = 10.0
	DefaultMaxFrames = 300
	DefaultRingdown  = 60
)

// Config describes one scene plus how it is rendered and exported.
type Config struct {
	Scene    string         `yaml:"scene" mapstructure:"scene"`
	Binary   BinaryConfig   `yaml:"binary" mapstructure:"binary"`
	Orbit    OrbitConfig    `yaml:"orbit" mapstructure:"orbit"`
	Inspiral InspiralConfig `yaml:"inspiral" mapstructure:"inspiral"`
	Render   RenderConfig   `yaml:"render" mapstructure:"render"`
	Audio    AudioConfig    `yaml:"audio" mapstructure:"audio"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

type BinaryConfig struct {
	M1    float64 `yaml:"m1" mapstructure:"m1"`
	M2    float64 `yaml:"m2" mapstructure:"m2"`
	Alpha float64 `yaml:"alpha" mapstructure:"alpha"`
	Beta  float64 `yaml:"beta" mapstructure:"beta"`
	Gamma float64 `yaml:"gamma" mapstructure:"gamma"`
}

// OrbitConfig drives the constant-rate scene. A zero Omega means
// 40/(m1+m2) rotations per second, so heavier binaries turn slower.
type OrbitConfig struct {
	FrameRate float64 `yaml:"frame_rate" mapstructure:"frame_rate"`
	Omega     float64 `yaml:"omega" mapstructure:"omega"`
	Duration  float64 `yaml:"duration" mapstructure:"duration"`
}

// InspiralConfig drives the chirping scene. A zero TimeStep keeps the
// default of 1/ωmax.
type InspiralConfig struct {
	Omega0         float64 `yaml:"omega0" mapstructure:"omega0"`
	TimeStep       float64 `yaml:"time_step" mapstructure:"time_step"`
	MaxFrames      int     `yaml:"max_frames" mapstructure:"max_frames"`
	RingdownFrames int     `yaml:"ringdown_frames" mapstructure:"ringdown_frames"`
	RingdownA0     float64 `yaml:"ringdown_a0" mapstructure:"ringdown_a0"`
	RingdownTau    float64 `yaml:"ringdown_tau" mapstructure:"ringdown_tau"`
}

// RenderConfig controls the disks and exported pictures. A zero
// VisualScale picks one per scene: 1/100 per solar mass on the unit
// orbit, and disks that just touch at merger on an inspiral.
type RenderConfig struct {
	VisualScale float64 `yaml:"visual_scale" mapstructure:"visual_scale"`
	Width       int     `yaml:"width" mapstructure:"width"`
	Height      int     `yaml:"height" mapstructure:"height"`
	Theme       string  `yaml:"theme" mapstructure:"theme"`
	FitEach     bool    `yaml:"fit_each" mapstructure:"fit_each"`
}

type AudioConfig struct {
	SampleRate int     `yaml:"sample_rate" mapstructure:"sample_rate"`
	FLower     float64 `yaml:"f_lower" mapstructure:"f_lower"`
	PitchScale float64 `yaml:"pitch_scale" mapstructure:"pitch_scale"`
}

type OutputConfig struct {
	Dir  string `yaml:"dir" mapstructure:"dir"`
	Runs string `yaml:"runs" mapstructure:"runs"`
	GIF  bool   `yaml:"gif" mapstructure:"gif"`
	SVG  bool   `yaml:"svg" mapstructure:"svg"`
	WAV  bool   `yaml:"wav" mapstructure:"wav"`
	Save bool   `yaml:"save" mapstructure:"save"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene: "orbit",
		Binary: BinaryConfig{
			M1:    36,
			M2:    29,
			Alpha: DefaultAlpha,
			Beta:  DefaultBeta,
			Gamma: DefaultGamma,
		},
		Orbit: OrbitConfig{
			FrameRate: DefaultFrameRate,
			Duration:  DefaultDuration,
		},
		Inspiral: InspiralConfig{
			Omega0:         DefaultOmega0,
			MaxFrames:      DefaultMaxFrames,
			RingdownFrames: DefaultRingdown,
			RingdownA0:     0.3,
			RingdownTau:    20,
		},
		Render: RenderConfig{
			Width:       480,
			Height:      480,
			Theme:       "night",
		},
		Audio: AudioConfig{
			SampleRate: 2048,
			FLower:     20,
			PitchScale: 1,
		},
		Output: OutputConfig{
			Dir:  ".",
			Runs: "runs",
			GIF:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// OrbitOmega resolves the constant-rate angular speed.
func (c *Config) OrbitOmega() float64 {
	if c.Orbit.Omega > 0 {
		return c.Orbit.Omega
	}
	if m := c.Binary.M1 + c.Binary.M2; m > 0 {
		return 40 / m
	}
	return 0
}

// OrbitFrames is the number of frames a constant-rate scene records.
func (c *Config) OrbitFrames() int {
	return int(c.Orbit.Duration*c.Orbit.FrameRate + 0.5)
}

// Validate checks the fields every scene depends on. Physical parameters
// are validated again by the kinematics constructors.
func (c *Config) Validate() error {
	var errs []error
	switch c.Scene {
	case "orbit", "inspiral":
	default:
		errs = append(errs, fmt.Errorf("scene %q is not one of orbit, inspiral", c.Scene))
	}
	if c.Binary.M1 <= 0 || c.Binary.M2 <= 0 {
		errs = append(errs, fmt.Errorf("masses must be > 0, got %g and %g", c.Binary.M1, c.Binary.M2))
	}
	if c.Scene == "orbit" && c.OrbitFrames() <= 0 {
		errs = append(errs, fmt.Errorf("orbit needs duration and frame_rate > 0"))
	}
	if c.Render.VisualScale < 0 {
		errs = append(errs, fmt.Errorf("visual_scale must be >= 0"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load layers defaults, the YAML file at path (optional when empty) and
// CHIRPSIM_* environment variables, in that order of precedence.
// Nested keys use underscores in the environment: CHIRPSIM_BINARY_M1.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix("chirpsim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("scene", d.Scene)

	v.SetDefault("binary.m1", d.Binary.M1)
	v.SetDefault("binary.m2", d.Binary.M2)
	v.SetDefault("binary.alpha", d.Binary.Alpha)
	v.SetDefault("binary.beta", d.Binary.Beta)
	v.SetDefault("binary.gamma", d.Binary.Gamma)

	v.SetDefault("orbit.frame_rate", d.Orbit.FrameRate)
	v.SetDefault("orbit.omega", d.Orbit.Omega)
	v.SetDefault("orbit.duration", d.Orbit.Duration)

	v.SetDefault("inspiral.omega0", d.Inspiral.Omega0)
	v.SetDefault("inspiral.time_step", d.Inspiral.TimeStep)
	v.SetDefault("inspiral.max_frames", d.Inspiral.MaxFrames)
	v.SetDefault("inspiral.ringdown_frames", d.Inspiral.RingdownFrames)
	v.SetDefault("inspiral.ringdown_a0", d.Inspiral.RingdownA0)
	v.SetDefault("inspiral.ringdown_tau", d.Inspiral.RingdownTau)

	v.SetDefault("render.visual_scale", d.Render.VisualScale)
	v.SetDefault("render.width", d.Render.Width)
	v.SetDefault("render.height", d.Render.Height)
	v.SetDefault("render.theme", d.Render.Theme)
	v.SetDefault("render.fit_each", d.Render.FitEach)

	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.f_lower", d.Audio.FLower)
	v.SetDefault("audio.pitch_scale", d.Audio.PitchScale)

	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.runs", d.Output.Runs)
	v.SetDefault("output.gif", d.Output.GIF)
	v.SetDefault("output.svg", d.Output.SVG)
	v.SetDefault("output.wav", d.Output.WAV)
	v.SetDefault("output.save", d.Output.Save)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
