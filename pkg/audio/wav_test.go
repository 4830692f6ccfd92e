package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hiss.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	h := NewHiss(1, 99)
	require.NoError(t, RecordWAV(f, h, Levels{Enabled: true, Static: true}, 8000, 2, 1.5))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, uint32(8000), dec.SampleRate)
	assert.Equal(t, uint16(2), dec.NumChans)
	assert.Equal(t, uint16(16), dec.BitDepth)
	assert.Len(t, buf.Data, 12000*2)

	loud := 0
	for _, s := range buf.Data {
		if s != 0 {
			loud++
		}
	}
	assert.Greater(t, loud, len(buf.Data)/2)
}

func TestRecordWAVRejectsBadFormat(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	require.NoError(t, err)
	defer f.Close()

	assert.Error(t, RecordWAV(f, NewHiss(1, 1), Levels{}, 0, 2, 1))
}
