package config

import "sort"

// Presets override the particle field on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"dense": func(c *Config) {
		c.Layout.RingCount = 60
		c.Layout.DotRadius = 6
		c.Layout.RingGap = 1
		c.Layout.DotGap = 1
	},
	"sparse": func(c *Config) {
		c.Layout.RingCount = 15
		c.Layout.DotRadius = 20
		c.Layout.RingGap = 8
		c.Layout.DotGap = 8
	},
	"decay": func(c *Config) {
		c.Layout.DecaySpacing = true
		c.Layout.RingCount = 45
	},
	"calm": func(c *Config) {
		c.Physics.Push = Range{0.004, 0.008}
		c.Physics.Damping = Range{0.80, 0.85}
	},
	"jittery": func(c *Config) {
		c.Physics.Push = Range{0.03, 0.05}
		c.Physics.Pull = Range{0.01, 0.02}
		c.Physics.Damping = Range{0.95, 0.98}
		c.Physics.ForceMode = ForceSum
	},
	"single": func(c *Config) {
		c.Layout.RingCount = 1
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// Apply layers the named preset onto cfg. Unknown names report false.
func Apply(cfg *Config, name string) bool {
	apply, ok := Presets[name]
	if !ok {
		return false
	}
	apply(cfg)
	return true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
