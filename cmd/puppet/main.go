// Puppet - webcam-driven 2D avatar service
//
// Captures webcam frames, maps the detected face onto the avatar's named
// parameters, and streams them to the browser renderer.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ayase-labs/go-puppet/internal/config"
	"github.com/ayase-labs/go-puppet/internal/log"
	"github.com/ayase-labs/go-puppet/pkg/camera"
	"github.com/ayase-labs/go-puppet/pkg/detector"
	"github.com/ayase-labs/go-puppet/pkg/driver"
	"github.com/ayase-labs/go-puppet/pkg/puppet"
	"github.com/ayase-labs/go-puppet/pkg/rig"
	"github.com/ayase-labs/go-puppet/pkg/web"
)

func main() {
	forceFallback := flag.Bool("fallback-rig", false, "Skip the solver and use the landmark-delta rig")
	alpha := flag.Float64("alpha", rig.DefaultAlpha, "Smoothing factor (0-1, lower = smoother)")
	lowLatency := flag.Bool("low-latency", false, "Capture at 640x480 instead of 720p")
	flag.Parse()

	config.LoadDotenv()
	log.Init(config.LogLevel())

	// Model catalog: a read-only scan of the puppet asset directory.
	catalog, err := puppet.ScanCatalog(config.ModelDir())
	if err != nil {
		fatal("model catalog", err)
	}
	log.Info("model catalog loaded", "dir", config.ModelDir(), "models", len(catalog.Entries()))

	// Landmark detector. Unavailable models are fatal; there is no retry.
	detCfg := detector.DefaultConfig()
	detCfg.FaceModelPath = config.FaceModel()
	detCfg.MeshModelPath = config.MeshModel()
	det, err := detector.NewFaceMesh(detCfg)
	if err != nil {
		fatal("detector", err)
	}
	defer det.Close()

	// Rig strategy: probed once at startup against the detector's mesh,
	// never re-checked mid-session.
	var extractor rig.Extractor
	if solver, ok := rig.ProbeSolver(det.MeshSize()); ok && !*forceFallback {
		extractor = rig.NewSolverRig(solver)
	} else {
		extractor = rig.NewFallbackRig(rig.DefaultFallbackConfig())
	}
	log.Info("rig selected", "strategy", extractor.Name())

	// Load the default puppet and wire the pipeline.
	model := catalog.First()
	applier := puppet.NewApplier(puppet.Load(model))
	smoother := rig.NewSmoother(*alpha)
	drv := driver.New(extractor, smoother, applier)
	det.OnResult(drv.HandleResult)

	// Camera. Permission or device failures are fatal to the session.
	camCfg := camera.DefaultConfig()
	camCfg.Device = config.CameraDevice()
	if *lowLatency {
		camCfg = camera.LowLatencyConfig()
		camCfg.Device = config.CameraDevice()
	}
	capture, err := camera.Open(camCfg, det)
	if err != nil {
		fatal("camera", err)
	}

	// Web surface: renderer page, model switcher, parameter stream.
	server := web.NewServer(config.Port(), catalog, camCfg)
	server.OnSelectModel = func(id string) error {
		m, ok := catalog.Get(id)
		if !ok {
			return fmt.Errorf("unknown model %s", id)
		}
		// Smoothing state survives the switch; only the table changes.
		applier.Retarget(puppet.Load(m))
		server.UpdateState(func(s *web.PuppetState) { s.ActiveModel = id })
		log.Info("model switched", "name", m.Name)
		return nil
	}
	drv.OnFrame = func(pose map[string]float64) {
		server.BroadcastParams(pose)
		server.UpdateState(func(s *web.PuppetState) {
			s.Tracking = drv.State() == driver.Tracking
			s.Frames = drv.Frames()
			s.Errors = drv.Errors()
		})
	}
	server.UpdateState(func(s *web.PuppetState) {
		s.Rig = extractor.Name()
		if entries := catalog.Entries(); len(entries) > 0 {
			s.ActiveModel = entries[0].ID
		}
	})
	server.StartAsync()

	// Fit the puppet once the renderer reports its stage.
	go func() {
		stage := puppet.AwaitStageSize(server, puppet.StagePollInterval, puppet.StagePollAttempts)
		scale := puppet.FitScale(model.Canvas, stage)
		log.Info("stage fitted", "stage", stage, "scale", scale)
	}()

	// Graceful shutdown: stop frame submission before closing the
	// detector so no callback fires into a torn-down pipeline.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		capture.Stop()
		server.Shutdown()
		capture.Close()
	}()

	capture.Run()
}

// fatal reports an initialization failure and exits. Setup-time failures
// halt the session; nothing in the hot path ever does.
func fatal(what string, err error) {
	log.Error("initialization failed", "component", what, "err", err)
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", what, err)
	os.Exit(1)
}
