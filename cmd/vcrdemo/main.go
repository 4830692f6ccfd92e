package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"vcrfx/internal/logger"
	"vcrfx/pkg/audio"
	"vcrfx/pkg/config"
	"vcrfx/pkg/engine"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	logLevel := flag.String("log-level", "", "Override the configured log level")
	hissOut := flag.String("record-hiss", "", "Render five seconds of static hiss to a WAV file and exit")
	flag.Parse()

	cfg, cfgErr := config.LoadConfig(*configPath)
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log := logger.NewLogger(cfg.Log.Level)
	if cfg.Log.File != "" {
		multi, err := logger.NewMultiLogger(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			log.Warnf("Logging to stdout only: %v", err)
		} else {
			log = multi
		}
	}
	defer log.Close()

	if cfgErr != nil {
		log.Warnf("%v", cfgErr)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if *hissOut != "" {
		if err := recordHiss(*hissOut, cfg.Audio); err != nil {
			log.Fatalf("Failed to record hiss: %v", err)
		}
		log.Infof("Hiss written to %s", *hissOut)
		return
	}

	log.Info("Starting VCR overlay demo...")
	demo, err := engine.NewEngine(cfg, *configPath, log)
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}

	log.Info("Engine initialized, F1-F9 drive the overlay, Esc quits")
	demo.Run()
}

func recordHiss(path string, cfg config.AudioConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	hiss := audio.NewHiss(float32(cfg.Volume), uint32(time.Now().UnixNano()))
	levels := audio.Levels{Enabled: true, Static: true, Tracking: true}
	return audio.RecordWAV(f, hiss, levels, 44100, 2, 5)
}
