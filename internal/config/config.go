// Package config loads the server configuration from YAML with a fixed
// search order and applies defaults to whatever is missing.
package config

// Config captures the tunables of a world server process.
type Config struct {
	// Seed selects the world; a save file keyed by this seed is restored when
	// present.
	Seed int64 `yaml:"seed" json:"seed"`
	// Radius is the feature generation radius; clusters scan at twice this.
	Radius int `yaml:"radius" json:"radius"`
	// EmptyWeight is the fixed empty band appended to the feature spawn table.
	EmptyWeight int `yaml:"emptyWeight" json:"emptyWeight"`
	// SaveDir is the directory save files are written to.
	SaveDir string `yaml:"saveDir" json:"saveDir"`
	// DebugChecks makes window invariant violations fatal.
	DebugChecks bool `yaml:"debugChecks" json:"debugChecks"`
	// Listen is the HTTP listen address of the observer endpoint.
	Listen string `yaml:"listen" json:"listen"`
	// TickRate is the simulation frequency in ticks per second.
	TickRate int `yaml:"tickRate" json:"tickRate"`
	// SessionDB is the SQLite file session history is recorded in; empty
	// disables recording.
	SessionDB string `yaml:"sessionDb" json:"sessionDb"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Seed:        1,
		Radius:      15,
		EmptyWeight: 2000,
		SaveDir:     "saves",
		Listen:      ":8080",
		TickRate:    20,
		SessionDB:   "",
	}
}

// Normalized returns a config with defaults applied and invalid values
// clamped.
func (c Config) Normalized() Config {
	normalized := c
	def := Default()
	if normalized.Radius <= 0 {
		normalized.Radius = def.Radius
	}
	if normalized.EmptyWeight <= 0 {
		normalized.EmptyWeight = def.EmptyWeight
	}
	if normalized.SaveDir == "" {
		normalized.SaveDir = def.SaveDir
	}
	if normalized.Listen == "" {
		normalized.Listen = def.Listen
	}
	if normalized.TickRate <= 0 {
		normalized.TickRate = def.TickRate
	}
	return normalized
}
