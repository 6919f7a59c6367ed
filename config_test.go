package life

import (
	"errors"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -4 }},
		{"zero disco speed", func(c *Config) { c.DiscoSpeed = 0 }},
		{"negative disco speed", func(c *Config) { c.DiscoSpeed = -1 }},
		{"zero sim speed", func(c *Config) { c.SimSpeed = 0 }},
		{"probability above 1", func(c *Config) { c.AliveProbability = 1.01 }},
		{"negative probability", func(c *Config) { c.AliveProbability = -0.5 }},
		{"zero cell pixels", func(c *Config) { c.CellPixels = 0 }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("got %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigNonMultipleOfEightDims(t *testing.T) {
	// Grid sides need not align to the compute workgroup size.
	cfg := DefaultConfig()
	cfg.Width = 37
	cfg.Height = 13
	if err := cfg.Validate(); err != nil {
		t.Errorf("37x13 rejected: %v", err)
	}
}
