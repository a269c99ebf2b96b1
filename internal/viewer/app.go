// Package viewer wires the window, renderer, frame loop and input into the
// scene viewer application.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/frame"
	"github.com/Faultbox/sceneview/internal/engine/input"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/renderer"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/internal/engine/window"
)

// defaultSamples is the multisample count requested from the window.
const defaultSamples = 8

// App is the viewer instance. New and Run must be called from the main
// goroutine, which owns the GL context.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	assets   *assets.Manager

	cam    *camera.Camera
	aim    *camera.Camera
	lights *lighting.Registry
	queue  *scene.Queue

	orch    *frame.Orchestrator
	binding *input.Binding
	limiter *fpsLimiter
}

// New creates the window and GL state and prepares an empty scene.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	caps, err := frame.ParseCapabilities(cfg.Render.Capabilities)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	keys, err := input.ParseKeyMap(cfg.Input.Keys)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}

	a := &App{
		cfg:     cfg,
		log:     log,
		assets:  assets.NewManager(),
		lights:  lighting.NewRegistry(),
		queue:   scene.NewQueue(),
		limiter: newFPSLimiter(cfg.Window.FPSLimit),
	}
	for _, root := range cfg.Scene.AssetRoots {
		if err := a.assets.AddRoot(root); err != nil {
			log.Warn("skipping asset root", zap.String("root", root), zap.Error(err))
		}
	}

	a.cam = newCamera(cfg.Camera)
	a.aim = newAimCamera(cfg.Scene.DirectionalLights)

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    defaultSamples,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	a.renderer, err = renderer.New(a.window, renderer.Config{
		ClearColor: color(cfg.Render.ClearColor, lighting.RGBA8(100, 149, 237, 255)),
	}, log.Named("renderer"))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.orch, err = frame.New(a.renderer, a.cam, a.lights, a.queue, frame.Options{
		Capabilities: caps,
		Assets:       a.assets,
	}, log.Named("frame"))
	if err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to bind scene program: %w", err)
	}

	a.binding = input.NewBinding(a.cam, a.aim, a.window, input.Options{
		BaselineFPS: cfg.Input.BaselineFPS,
		Keys:        keys,
	})
	a.orch.OnUpdate(a.binding.Tick)

	log.Info("viewer initialized successfully")
	return a, nil
}

func newCamera(c config.CameraConfig) *camera.Camera {
	cam := camera.NewAt(vec3(c.Position, mgl32.Vec3{}), mgl32.DegToRad(c.Yaw), mgl32.DegToRad(c.Pitch))
	cam.Apply(camera.Settings{
		FieldOfView:     c.FieldOfView,
		Near:            c.Near,
		Far:             c.Far,
		MoveSensitivity: c.MoveSensitivity,
		LookSensitivity: c.LookSensitivity,
	})
	return cam
}

// newAimCamera returns the navigator steered by left-drag, oriented like the
// first light that follows it.
func newAimCamera(lights []config.DirectionalLightConfig) *camera.Camera {
	aim := camera.New()
	for _, l := range lights {
		if l.FollowAim {
			aim.SetOrientation(mgl32.DegToRad(l.Yaw), mgl32.DegToRad(l.Pitch))
			break
		}
	}
	return aim
}

// Run drives the frame loop on the calling goroutine while a control
// goroutine scripts the scene. It returns when the window is closed, ctx
// ends, or scripting fails.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-a.orch.Ready():
		case <-gctx.Done():
			return nil
		}
		s := &script{
			cfg:      a.cfg.Scene,
			baseline: a.cfg.Input.BaselineFPS,
			lights:   a.lights,
			aim:      a.aim,
			log:      a.log.Named("script"),
		}
		return s.run(gctx, a.orch)
	})

	a.log.Info("starting frame loop")
	a.loop(gctx)

	// fails any request still waiting on the loop
	a.orch.Close()
	cancel()

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, frame.ErrClosed) {
		return err
	}
	return nil
}

func (a *App) loop(ctx context.Context) {
	events := make([]input.Event, 0, 16)
	lastTime := time.Now()
	titleTimer := lastTime

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		// 1. Process input
		events = a.window.PollEvents(events[:0])
		for _, e := range events {
			a.binding.Handle(e)
		}
		if a.binding.QuitRequested() {
			a.log.Info("quit requested")
			return
		}

		// 2. Frame
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now
		a.orch.Frame(dt)

		// 3. Pace
		a.limiter.Wait()

		if time.Since(titleTimer) >= time.Second {
			titleTimer = time.Now()
			a.window.SetTitle(fmt.Sprintf("%s (%.0f fps)", a.cfg.Window.Title, a.orch.Stats().FPS))
		}
	}
}

// Close cleans up viewer resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.orch != nil {
		a.orch.Close()
	}
	if a.assets != nil {
		hits, misses := a.assets.CacheStats()
		a.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
		a.assets.Purge()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
