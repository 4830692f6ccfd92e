package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"vcrfx/internal/logger"
	"vcrfx/pkg/api"
	"vcrfx/pkg/config"
	"vcrfx/pkg/gfx/glcanvas"
	"vcrfx/pkg/metrics"
	"vcrfx/pkg/vcr"
)

const batteryStep = 0.05

// Engine hosts the overlay: window, stand-in scene, input, hiss and console
type Engine struct {
	window      *glfw.Window
	config      *config.Config
	configPath  string
	logger      *logger.Logger
	canvas      *glcanvas.GLCanvas
	vars        *config.Registry
	effect      *vcr.Effect
	scene       *Scene
	input       *InputHandler
	audioEngine *AudioEngine
	console     *api.Console
	isRunning   bool
	frameRate   int
}

// NewEngine creates the window and every subsystem. Audio and the console
// are optional and only logged when they fail.
func NewEngine(cfg *config.Config, configPath string, log *logger.Logger) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// Set window hints
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Graphics.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	// Create window
	window, err := glfw.CreateWindow(
		cfg.Graphics.Width,
		cfg.Graphics.Height,
		cfg.Graphics.Title,
		monitor,
		nil,
	)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %v", err)
	}

	window.MakeContextCurrent()
	if cfg.Graphics.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %v", err)
	}
	log.Infof("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	canvas, err := glcanvas.NewGLCanvas()
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize canvas: %v", err)
	}

	vars := config.NewRegistry(cfg.Vars)
	effect := vcr.New(canvas, vars, log)
	effect.Init()

	engine := &Engine{
		window:     window,
		config:     cfg,
		configPath: configPath,
		logger:     log,
		canvas:     canvas,
		vars:       vars,
		effect:     effect,
		scene:      NewScene(),
		input:      NewInputHandler(window),
		frameRate:  cfg.Graphics.FrameRate,
	}
	engine.bindKeys()

	if cfg.Audio.Enabled {
		engine.audioEngine, err = NewAudioEngine(cfg.Audio)
		if err != nil {
			log.Warnf("Audio disabled: %v", err)
		}
	}

	if cfg.Console.Enabled {
		console := api.New(cfg.Console, vars, log)
		if err := console.ServeInBackground(); err != nil {
			log.Warnf("Debug console disabled: %v", err)
		} else {
			engine.console = console
		}
	}

	return engine, nil
}

func (e *Engine) bindKeys() {
	e.input.Bind(glfw.KeyEscape, "quit", func() { e.isRunning = false })
	e.input.Bind(glfw.KeyF1, "toggle", e.effect.Toggle)
	e.input.Bind(glfw.KeyF2, "quality", func() {
		e.effect.SetQuality((e.effect.Quality() + 1) % (vcr.QualityHigh + 1))
	})
	e.input.Bind(glfw.KeyF3, "mode", func() {
		e.effect.SetMode((e.effect.Mode() + 1) % (vcr.ModeCCTV + 1))
	})
	e.input.Bind(glfw.KeyF5, "distortion", e.effect.ForceDistortion)
	e.input.Bind(glfw.KeyF6, "cctv", e.effect.ForceCCTV)
	e.input.Bind(glfw.KeyF7, "static", e.effect.ForceStatic)
	e.input.Bind(glfw.KeyF8, "tape_damage", e.effect.ForceTapeDamage)
	e.input.Bind(glfw.KeyF9, "reset", e.effect.Reset)
	e.input.Bind(glfw.KeyLeftBracket, "battery-", func() {
		e.effect.SetBattery(e.effect.Battery() - batteryStep)
	})
	e.input.Bind(glfw.KeyRightBracket, "battery+", func() {
		e.effect.SetBattery(e.effect.Battery() + batteryStep)
	})
}

// Run starts the main loop
func (e *Engine) Run() {
	e.isRunning = true

	for e.isRunning && !e.window.ShouldClose() {
		frameStart := time.Now()
		t := glfw.GetTime()

		e.processInput()
		e.render(t)
		e.update()

		e.window.SwapBuffers()
		glfw.PollEvents()

		// Cap the frame rate
		if e.frameRate > 0 {
			frameTime := time.Since(frameStart)
			targetFrameTime := time.Second / time.Duration(e.frameRate)
			if frameTime < targetFrameTime {
				time.Sleep(targetFrameTime - frameTime)
			}
		}
	}

	e.cleanup()
}

// processInput applies key bindings and queued console commands
func (e *Engine) processInput() {
	e.input.Update()
	for _, name := range e.input.Dispatch() {
		e.logger.Debugf("key binding %s", name)
	}

	if e.console != nil {
		e.console.Drain(e.effect)
	}
}

// render draws the scene and the overlay on top of it
func (e *Engine) render(t float64) {
	width, height := e.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	e.scene.Draw(e.canvas, width, height, t)
	e.effect.DrawEffect(width, height, t)

	metrics.CanvasBatches.Set(float64(e.canvas.Batches()))
}

// update hands the frame's snapshot to the other threads
func (e *Engine) update() {
	snapshot := e.effect.Snapshot()
	if e.audioEngine != nil {
		e.audioEngine.Update(snapshot)
	}
	if e.console != nil {
		e.console.Publish(snapshot)
	}
}

// cleanup performs necessary cleanup before exiting
func (e *Engine) cleanup() {
	e.logger.Info("Shutting down engine...")

	if e.console != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := e.console.Shutdown(ctx); err != nil {
			e.logger.Warnf("%v", err)
		}
		cancel()
	}
	if e.audioEngine != nil {
		e.audioEngine.Shutdown()
	}

	e.effect.Shutdown()
	e.canvas.Close()

	e.config.Vars = e.vars.Archived()
	if err := config.SaveConfig(e.config, e.configPath); err != nil {
		e.logger.Errorf("Failed to save variables: %v", err)
	}

	glfw.Terminate()
}
