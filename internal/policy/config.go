package policy

import "time"

type Config struct {
	MinDuration time.Duration `yaml:"minDuration"`
	MaxDuration time.Duration `yaml:"maxDuration"`

	// DayLimit caps the span from the first start to the last end of a day.
	DayLimit time.Duration `yaml:"dayLimit"`

	// WeekLimit caps the sum of day spans from Monday to Saturday.
	WeekLimit time.Duration `yaml:"weekLimit"`

	ClosedOn []time.Weekday `yaml:"closedOn"`
}

func DefaultConfig() Config {
	return Config{
		MinDuration: 15 * time.Minute,
		MaxDuration: 2 * time.Hour,
		DayLimit:    10 * time.Hour,
		WeekLimit:   40 * time.Hour,
		ClosedOn:    []time.Weekday{time.Saturday},
	}
}

// withDefaults fills every unset field from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()

	if c.MinDuration <= 0 {
		c.MinDuration = def.MinDuration
	}
	if c.MaxDuration <= 0 {
		c.MaxDuration = def.MaxDuration
	}
	if c.DayLimit <= 0 {
		c.DayLimit = def.DayLimit
	}
	if c.WeekLimit <= 0 {
		c.WeekLimit = def.WeekLimit
	}
	if c.ClosedOn == nil {
		c.ClosedOn = def.ClosedOn
	}

	return c
}
