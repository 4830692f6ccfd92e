package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"vcrfx/pkg/audio"
	"vcrfx/pkg/config"
	"vcrfx/pkg/vcr"
)

const (
	sampleRate      = 44100
	framesPerBuffer = 1024
	numChannels     = 2
)

// AudioEngine plays the tape hiss through the default output device
type AudioEngine struct {
	config      config.AudioConfig
	hiss        *audio.Hiss
	stream      *portaudio.Stream
	masterMutex sync.Mutex
	isRunning   bool
}

// NewAudioEngine initializes PortAudio and starts the output stream
func NewAudioEngine(config config.AudioConfig) (*AudioEngine, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %v", err)
	}

	engine := &AudioEngine{
		config: config,
		hiss:   audio.NewHiss(float32(config.Volume), uint32(time.Now().UnixNano())),
	}

	if err := engine.initAudio(); err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to initialize audio: %v", err)
	}

	return engine, nil
}

// initAudio opens and starts the output stream
func (ae *AudioEngine) initAudio() error {
	var err error

	ae.stream, err = portaudio.OpenDefaultStream(0, numChannels, sampleRate, framesPerBuffer, ae.audioCallback)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %v", err)
	}

	if err := ae.stream.Start(); err != nil {
		ae.stream.Close()
		return fmt.Errorf("failed to start audio stream: %v", err)
	}

	ae.isRunning = true
	return nil
}

// audioCallback is called by PortAudio to fill the output buffer
func (ae *AudioEngine) audioCallback(out []float32) {
	ae.hiss.Fill(out, numChannels)
}

// Update follows the effect state
func (ae *AudioEngine) Update(s vcr.Snapshot) {
	ae.hiss.SetLevels(audio.LevelsFrom(s))
}

// Shutdown stops the stream and releases PortAudio
func (ae *AudioEngine) Shutdown() {
	ae.masterMutex.Lock()
	defer ae.masterMutex.Unlock()

	if !ae.isRunning {
		return
	}
	ae.isRunning = false

	if ae.stream != nil {
		ae.stream.Stop()
		ae.stream.Close()
	}
	portaudio.Terminate()
}
