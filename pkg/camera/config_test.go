package camera

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Config)
		violations int
	}{
		{name: "default is valid", mutate: func(c *Config) {}, violations: 0},
		{name: "low latency is valid", mutate: func(c *Config) { *c = LowLatencyConfig() }, violations: 0},
		{name: "negative device", mutate: func(c *Config) { c.Device = -1 }, violations: 1},
		{name: "tiny frame", mutate: func(c *Config) { c.Width = 10; c.Height = 10 }, violations: 2},
		{name: "zero fps", mutate: func(c *Config) { c.FPS = 0 }, violations: 1},
		{name: "fps above cap", mutate: func(c *Config) { c.FPS = 240 }, violations: 1},
		{name: "everything wrong", mutate: func(c *Config) { *c = Config{Device: -1} }, violations: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if got := cfg.Validate(); len(got) != tt.violations {
				t.Errorf("violations = %v, want %d", got, tt.violations)
			}
		})
	}
}
