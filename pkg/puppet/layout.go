package puppet

import "time"

// Size is a stage or canvas dimension in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// StageReporter reports the renderer's on-screen stage size once the
// renderer has measured itself. ok is false until then.
type StageReporter interface {
	StageSize() (size Size, ok bool)
}

// DefaultStageSize is substituted when the renderer never reports.
var DefaultStageSize = Size{Width: 1280, Height: 720}

// Stage polling bounds: one poll per render tick, give up after a few
// seconds.
const (
	StagePollInterval = 16 * time.Millisecond
	StagePollAttempts = 300
)

// AwaitStageSize polls the reporter once per tick up to maxAttempts, then
// falls back to DefaultStageSize. Bounded retry, never a blocking wait.
func AwaitStageSize(r StageReporter, tick time.Duration, maxAttempts int) Size {
	for i := 0; i < maxAttempts; i++ {
		if size, ok := r.StageSize(); ok {
			return size
		}
		time.Sleep(tick)
	}
	return DefaultStageSize
}

// FitScale returns the uniform scale that fits the model canvas inside the
// stage.
func FitScale(canvas Canvas, stage Size) float64 {
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return 1
	}
	sx := float64(stage.Width) / float64(canvas.Width)
	sy := float64(stage.Height) / float64(canvas.Height)
	if sx < sy {
		return sx
	}
	return sy
}
