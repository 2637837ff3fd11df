package audio

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gopxl/beep"
)

const wavBitDepth = 16

// WriteWAV encodes stereo frames as a 16-bit PCM WAV stream.
func WriteWAV(w io.WriteSeeker, sr beep.SampleRate, frames [][2]float64) error {
	enc := wav.NewEncoder(w, int(sr), wavBitDepth, 2, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: int(sr)},
		Data:           make([]int, len(frames)*2),
		SourceBitDepth: wavBitDepth,
	}
	for i, f := range frames {
		buf.Data[2*i] = int(toInt16(f[0]))
		buf.Data[2*i+1] = int(toInt16(f[1]))
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish wav: %w", err)
	}
	return nil
}

// WriteWAVFile writes frames to path, replacing any existing file.
func WriteWAVFile(path string, sr beep.SampleRate, frames [][2]float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteWAV(f, sr, frames)
}
