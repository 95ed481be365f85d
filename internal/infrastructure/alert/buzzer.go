// Package alert plays a short tone when playback completes.
package alert

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Buzzer plays a sine tone through the default audio device
type Buzzer struct {
	freq     float64
	duration time.Duration

	mu          sync.Mutex
	initialized bool
	signals     int
}

// NewBuzzer creates a buzzer playing freq Hz for duration
func NewBuzzer(freq float64, duration time.Duration) *Buzzer {
	return &Buzzer{
		freq:     freq,
		duration: duration,
	}
}

// Initialize sets up the audio system. It must be called before Signal
// produces any sound.
func (b *Buzzer) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	b.initialized = true
	return nil
}

// Tone builds the streamer Signal plays
func (b *Buzzer) Tone() (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, b.freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sampleRate.N(b.duration), sine), nil
}

// Signal plays the tone without blocking. Without an initialized audio
// device it only counts the signal.
func (b *Buzzer) Signal() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.signals++
	if !b.initialized {
		return
	}

	tone, err := b.Tone()
	if err != nil {
		log.Printf("Alert tone failed: %v", err)
		return
	}
	speaker.Play(tone)
}

// Signals returns how many times Signal has been called
func (b *Buzzer) Signals() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.signals
}
