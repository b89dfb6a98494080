package config

import "sort"

// Preset overrides part of the default configuration.
type Preset struct {
	Description string
	Scene       string
	M1, M2      float64
	Omega0      float64
}

var Presets = map[string]Preset{
	"gw150914": {Description: "first detection, two ~30 Msun black holes", Scene: "inspiral", M1: 35.6, M2: 30.6},
	"gw151226": {Description: "lighter pair, long chirp", Scene: "inspiral", M1: 13.7, M2: 7.7, Omega0: 20},
	"gw170814": {Description: "first three-detector observation", Scene: "inspiral", M1: 30.6, M2: 25.2},
	"gw190521": {Description: "heaviest pair, short chirp", Scene: "inspiral", M1: 95.3, M2: 69.0, Omega0: 5},
	"gw190814": {Description: "extreme mass ratio", Scene: "inspiral", M1: 23.2, M2: 2.59, Omega0: 20},
	"equal":    {Description: "equal masses on the unit orbit", Scene: "orbit", M1: 30, M2: 30},
	"lopsided": {Description: "5:1 mass ratio on the unit orbit", Scene: "orbit", M1: 50, M2: 10},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	return cfg
}

// Apply writes the preset's fields over cfg. Zero fields are left alone.
func (p Preset) Apply(cfg *Config) {
	if p.Scene != "" {
		cfg.Scene = p.Scene
	}
	if p.M1 > 0 {
		cfg.Binary.M1 = p.M1
	}
	if p.M2 > 0 {
		cfg.Binary.M2 = p.M2
	}
	if p.Omega0 > 0 {
		cfg.Inspiral.Omega0 = p.Omega0
	}
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
