package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// deviceBuffer is the player's buffer length. Short enough that a spawn is
// heard in the same frame or the next.
const deviceBuffer = 20 * time.Millisecond

// oto allows a single context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoRate int
	otoErr  error
)

type device struct {
	player *oto.Player
}

func otoContext(sr int) (*oto.Context, error) {
	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sr,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   deviceBuffer,
		})
		if otoErr != nil {
			return
		}
		otoRate = sr
		<-ready
	})
	return otoCtx, otoErr
}

// Open starts pulling the graph into the system audio device. Calling Open
// on an engine that is already open is a no-op.
func (e *Engine) Open() error {
	e.mu.Lock()
	open := e.dev != nil
	e.mu.Unlock()
	if open {
		return nil
	}

	ctx, err := otoContext(int(e.sr))
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	if otoRate != int(e.sr) {
		return fmt.Errorf("audio device already running at %dHz, engine wants %dHz", otoRate, e.sr)
	}
	if err := ctx.Resume(); err != nil {
		return fmt.Errorf("resume audio device: %w", err)
	}

	p := ctx.NewPlayer(e)
	p.SetBufferSize(e.sr.N(deviceBuffer) * bytesPerFrame)
	p.Play()

	e.mu.Lock()
	e.dev = &device{player: p}
	e.mu.Unlock()
	e.logger.Infof("device open at %dHz", e.sr)
	return nil
}

// Close stops device output. Voices stay in the graph and resume on the next
// Open.
func (e *Engine) Close() error {
	e.mu.Lock()
	dev := e.dev
	e.dev = nil
	e.mu.Unlock()
	if dev == nil {
		return nil
	}
	if err := dev.player.Close(); err != nil {
		return fmt.Errorf("close audio player: %w", err)
	}
	e.logger.Infof("device closed")
	return nil
}
