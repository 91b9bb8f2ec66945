// Package camera captures webcam frames and feeds them to the detector at
// a fixed cadence, below the renderer's refresh rate.
package camera

// Config holds the capture parameters.
type Config struct {
	Device int `json:"device"` // capture device index
	Width  int `json:"width"`  // frame width in pixels
	Height int `json:"height"` // frame height in pixels
	FPS    int `json:"fps"`    // detection cadence, not display rate
}

// DefaultConfig returns the recommended webcam configuration. 720p keeps
// the mesh network accurate without saturating the detection budget.
func DefaultConfig() Config {
	return Config{
		Device: 0,
		Width:  1280,
		Height: 720,
		FPS:    30,
	}
}

// LowLatencyConfig trades landmark accuracy for cheaper frames.
func LowLatencyConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 640
	cfg.Height = 480
	return cfg
}

// Validate checks the config values. Returns a list of violations, or nil
// if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Device < 0 {
		errors = append(errors, "device must be >= 0")
	}
	if c.Width < 160 || c.Width > 3840 {
		errors = append(errors, "width must be between 160 and 3840")
	}
	if c.Height < 120 || c.Height > 2160 {
		errors = append(errors, "height must be between 120 and 2160")
	}
	if c.FPS < 1 || c.FPS > 60 {
		errors = append(errors, "fps must be between 1 and 60")
	}

	return errors
}
