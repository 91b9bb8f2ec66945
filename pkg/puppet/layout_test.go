package puppet

import (
	"testing"
	"time"
)

type stageStub struct {
	size  Size
	ok    bool
	after int // report ok only from the nth poll on
	polls int
}

func (s *stageStub) StageSize() (Size, bool) {
	s.polls++
	if s.polls < s.after {
		return Size{}, false
	}
	return s.size, s.ok
}

func TestAwaitStageSize_ReportedSizeWins(t *testing.T) {
	stub := &stageStub{size: Size{Width: 800, Height: 600}, ok: true, after: 3}

	got := AwaitStageSize(stub, time.Millisecond, 10)
	if got != (Size{Width: 800, Height: 600}) {
		t.Errorf("size = %+v", got)
	}
	if stub.polls != 3 {
		t.Errorf("polls = %d, want 3", stub.polls)
	}
}

func TestAwaitStageSize_FallsBackAfterBudget(t *testing.T) {
	stub := &stageStub{}

	got := AwaitStageSize(stub, time.Microsecond, 5)
	if got != DefaultStageSize {
		t.Errorf("size = %+v, want default", got)
	}
	if stub.polls != 5 {
		t.Errorf("polls = %d, want 5", stub.polls)
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		name   string
		canvas Canvas
		stage  Size
		want   float64
	}{
		{name: "wide stage limits by height", canvas: Canvas{Width: 1000, Height: 1000}, stage: Size{Width: 1280, Height: 720}, want: 0.72},
		{name: "tall canvas limits by height", canvas: Canvas{Width: 1024, Height: 2048}, stage: Size{Width: 1280, Height: 720}, want: 720.0 / 2048.0},
		{name: "exact fit", canvas: Canvas{Width: 1280, Height: 720}, stage: Size{Width: 1280, Height: 720}, want: 1},
		{name: "degenerate canvas", canvas: Canvas{}, stage: Size{Width: 1280, Height: 720}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitScale(tt.canvas, tt.stage); got != tt.want {
				t.Errorf("FitScale = %v, want %v", got, tt.want)
			}
		})
	}
}
