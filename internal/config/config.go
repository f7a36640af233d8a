// Package config provides YAML-based game tuning with an embedded
// default, a user override, and an explicit-path override.
package config

// Config holds the tunable game parameters.
type Config struct {
	// TickRate is the heartbeat frequency in ticks per second.
	TickRate int `yaml:"tick_rate"`

	// FlashMs is how long a wall-hit highlight stays up, in
	// milliseconds.
	FlashMs int `yaml:"flash_ms"`

	// DetectionRadius is the spy catch distance in cells (Chebyshev).
	DetectionRadius int `yaml:"detection_radius"`
}

// FlashTicks converts the flash duration into scheduler ticks, rounding
// up so short flashes still render at least one tick.
func (c Config) FlashTicks() uint64 {
	ticks := (c.FlashMs*c.TickRate + 999) / 1000
	if ticks < 1 {
		ticks = 1
	}
	return uint64(ticks)
}

// normalize backfills missing or nonsense values from the defaults.
func (c Config) normalize() Config {
	def := Default()
	if c.TickRate <= 0 {
		c.TickRate = def.TickRate
	}
	if c.FlashMs <= 0 {
		c.FlashMs = def.FlashMs
	}
	if c.DetectionRadius < 0 {
		c.DetectionRadius = def.DetectionRadius
	}
	return c
}
