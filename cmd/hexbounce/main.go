package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/hexbounce/hexbounce/audio"
	"github.com/hexbounce/hexbounce/engine"
	"github.com/hexbounce/hexbounce/input"
	"github.com/hexbounce/hexbounce/parameter"
	"github.com/hexbounce/hexbounce/render"
	"github.com/hexbounce/hexbounce/server"
	"github.com/hexbounce/hexbounce/vmath"
)

var (
	configFlag   = flag.String("config", "", "Path to a yaml parameter file")
	fpsFlag      = flag.Int("fps", 60, "Simulation and render rate")
	listenFlag   = flag.String("listen", "", "Address for the websocket state stream, e.g. :8090")
	headlessFlag = flag.Bool("headless", false, "Run without a terminal UI")
	noSoundFlag  = flag.Bool("no-sound", false, "Disable bounce sounds")
	logFlag      = flag.String("log", "", "Path to a log file (TUI mode logs nowhere by default)")
)

const (
	restitutionStep  = 0.05
	angularSpeedStep = 0.2
	timeScaleStep    = 0.1
)

func main() {
	flag.Parse()

	if *fpsFlag < 1 || *fpsFlag > 240 {
		fmt.Fprintf(os.Stderr, "fps must be in [1, 240], got %d\n", *fpsFlag)
		os.Exit(1)
	}

	params := parameter.Default()
	if *configFlag != "" {
		var err error
		if params, err = parameter.Load(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	}

	log, err := buildLogger(*headlessFlag, *logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := engine.NewRunner(params, nil, log)

	var hub *server.Hub
	if *listenFlag != "" {
		hub = server.NewHub(log)
		runner.Subscribe(func(snap engine.Snapshot) {
			hub.Broadcast(server.FrameMessage{Type: server.TypeFrame, Snapshot: snap})
		})
		go func() {
			if err := hub.ListenAndServe(ctx, *listenFlag); err != nil {
				log.Error("state stream failed", zap.Error(err))
			}
		}()
	}

	interval := time.Second / time.Duration(*fpsFlag)

	if *headlessFlag {
		log.Info("running headless", zap.Int("fps", *fpsFlag))
		if err := runner.Run(ctx, interval); err != nil && err != context.Canceled {
			fmt.Fprintf(os.Stderr, "simulation: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runTUI(runner, log, interval, !*noSoundFlag); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// buildLogger routes logs away from the terminal the TUI owns: a file when
// given, nowhere otherwise. Headless mode logs to stderr.
func buildLogger(headless bool, path string) (*zap.Logger, error) {
	if path != "" {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
		return cfg.Build()
	}
	if headless {
		return zap.NewProduction()
	}
	return zap.NewNop(), nil
}

func runTUI(runner *engine.Runner, log *zap.Logger, interval time.Duration, sound bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	// Restore the terminal before the panic reaches the user
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	var sounds *audio.Engine
	if sound {
		if sounds, err = audio.NewEngine(); err != nil {
			log.Warn("audio unavailable", zap.Error(err))
		}
		defer sounds.Close()
	}

	renderer := render.NewRenderer(screen)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dt := interval.Seconds()
	var lastHits uint64
	var savedGravity float64

	for {
		select {
		case <-ticker.C:
			if err := runner.Step(dt); err != nil {
				return fmt.Errorf("step: %w", err)
			}
			snap := runner.Snapshot()

			if sounds != nil && snap.Stats.Collisions > lastHits {
				sounds.PlayBounce(snap.Ball.Speed, snap.Params.MaxVelocity)
			}
			lastHits = snap.Stats.Collisions

			renderer.Frame(snap)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				renderer.Resize()
				screen.Sync()
				continue
			}
			if quit := handleIntent(input.Decode(ev), runner, renderer, sounds, &savedGravity); quit {
				return nil
			}
		}
	}
}

// handleIntent applies one decoded key to the simulation. Parameter tweaks go
// through SetParams so invalid combinations are rejected, not applied.
func handleIntent(in input.Intent, runner *engine.Runner, renderer *render.Renderer, sounds *audio.Engine, savedGravity *float64) (quit bool) {
	adjust := func(fn func(*parameter.Params)) {
		p := runner.Params()
		fn(&p)
		_ = runner.SetParams(p)
	}

	switch in.Type {
	case input.IntentQuit:
		return true
	case input.IntentTogglePause:
		runner.TogglePause()
	case input.IntentReset:
		runner.Reset()
		renderer.ResetTrail()
	case input.IntentToggleSound:
		if sounds != nil {
			sounds.ToggleMute()
		}
	case input.IntentNudge:
		runner.NudgeBall(vmath.Vec2{X: in.Dx, Y: in.Dy})
	case input.IntentRestitutionUp:
		adjust(func(p *parameter.Params) { p.Restitution += restitutionStep })
	case input.IntentRestitutionDown:
		adjust(func(p *parameter.Params) { p.Restitution -= restitutionStep })
	case input.IntentAngularSpeedUp:
		adjust(func(p *parameter.Params) { p.HexagonAngularSpeed += angularSpeedStep })
	case input.IntentAngularSpeedDown:
		adjust(func(p *parameter.Params) { p.HexagonAngularSpeed -= angularSpeedStep })
	case input.IntentTimeScaleUp:
		adjust(func(p *parameter.Params) { p.TimeScale += timeScaleStep })
	case input.IntentTimeScaleDown:
		adjust(func(p *parameter.Params) { p.TimeScale -= timeScaleStep })
	case input.IntentGravityToggle:
		adjust(func(p *parameter.Params) {
			if p.Gravity != 0 {
				*savedGravity = p.Gravity
				p.Gravity = 0
			} else {
				p.Gravity = *savedGravity
				if p.Gravity == 0 {
					p.Gravity = parameter.Default().Gravity
				}
			}
		})
	}
	return false
}
