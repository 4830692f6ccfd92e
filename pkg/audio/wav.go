package audio

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth = 16
	wavPCM      = 1
	wavChunk    = 4096
)

// RecordWAV renders the generator into a 16-bit PCM file. The levels are
// applied once and the level smoothing runs as it would live.
func RecordWAV(w io.WriteSeeker, h *Hiss, l Levels, sampleRate, channels int, seconds float64) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid format: %d Hz, %d channels", sampleRate, channels)
	}
	h.SetLevels(l)

	enc := wav.NewEncoder(w, sampleRate, wavBitDepth, channels, wavPCM)
	format := &goaudio.Format{NumChannels: channels, SampleRate: sampleRate}

	frames := int(seconds * float64(sampleRate))
	samples := make([]float32, wavChunk*channels)
	buf := &goaudio.IntBuffer{Format: format, SourceBitDepth: wavBitDepth}

	for frames > 0 {
		n := min(frames, wavChunk)
		chunk := samples[:n*channels]
		h.Fill(chunk, channels)

		buf.Data = buf.Data[:0]
		for _, s := range chunk {
			buf.Data = append(buf.Data, int(math.Round(float64(s)*math.MaxInt16)))
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("failed to write samples: %v", err)
		}
		frames -= n
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize wav: %v", err)
	}
	return nil
}
