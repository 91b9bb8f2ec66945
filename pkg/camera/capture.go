package camera

import (
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayase-labs/go-puppet/internal/log"
)

// FrameSink consumes captured frames. The detector implements it.
type FrameSink interface {
	Submit(frame gocv.Mat) error
}

// Capture owns the webcam device and the frame submission loop.
//
// Teardown contract: Stop blocks until the loop has exited, so once Stop
// returns no further frame reaches the sink and the detector may be closed
// without a callback firing afterwards.
type Capture struct {
	cfg  Config
	cam  *gocv.VideoCapture
	sink FrameSink

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// Open opens the capture device and applies the configuration. A camera
// that cannot be opened is fatal to the session; there is no retry.
func Open(cfg Config, sink FrameSink) (*Capture, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("camera config: %v", errs)
	}

	cam, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", cfg.Device, err)
	}

	cam.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	cam.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	cam.Set(gocv.VideoCaptureFPS, float64(cfg.FPS))

	return &Capture{
		cfg:  cfg,
		cam:  cam,
		sink: sink,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}, nil
}

// Run submits frames to the sink at the configured cadence. Blocks until
// Stop is called. Frame reads and sink errors are logged and skipped; only
// setup-time failures halt the session.
func (c *Capture) Run() {
	c.mu.Lock()
	c.running = true
	c.mu.Unlock()

	interval := time.Second / time.Duration(c.cfg.FPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(c.done)

	img := gocv.NewMat()
	defer img.Close()

	log.Info("camera started", "device", c.cfg.Device,
		"size", fmt.Sprintf("%dx%d", c.cfg.Width, c.cfg.Height), "fps", c.cfg.FPS)

	for {
		select {
		case <-c.stop:
			log.Info("camera stopped")
			return
		case <-ticker.C:
			if ok := c.cam.Read(&img); !ok || img.Empty() {
				log.Debug("camera read miss")
				continue
			}
			if err := c.sink.Submit(img); err != nil {
				log.Warn("frame submit failed", "err", err)
			}
		}
	}
}

// Stop halts frame submission and waits for the loop to exit.
func (c *Capture) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.mu.Unlock()

	close(c.stop)
	<-c.done
}

// Close stops the loop if needed and releases the camera device.
func (c *Capture) Close() error {
	c.Stop()
	return c.cam.Close()
}
