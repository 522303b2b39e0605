package audio

import (
	"time"

	"github.com/gopxl/beep"
)

const (
	bumpDuration = 90 * time.Millisecond
	bumpAttack   = 4 * time.Millisecond
	bumpRelease  = 60 * time.Millisecond
	bumpFreq     = 82.41 // E2
)

// NewBump builds the wall-collision thud: a low sine body under a short noise click
func NewBump(rate beep.SampleRate, volume float64) beep.Streamer {
	body := NewEnvelope(NewOscillator(bumpFreq, bumpDuration, WaveSine, rate), bumpDuration, bumpAttack, bumpRelease, rate)

	clickLen := bumpDuration / 6
	click := NewEnvelope(NewOscillator(0, clickLen, WaveNoise, rate), clickLen, 0, clickLen, rate)

	mixed := beep.Mix(
		newVolume(body, 0.8),
		newVolume(click, 0.2),
	)
	return newVolume(beep.Take(rate.N(bumpDuration), mixed), volume)
}
