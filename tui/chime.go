package tui

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	noteLength = 120 * time.Millisecond
)

// chimeNotes is a rising major third.
var chimeNotes = []float64{880, 1108.73}

// Chime plays the short goal sound. A Chime whose audio device failed to
// open stays silent.
type Chime struct {
	mu    sync.Mutex
	ready bool
}

// NewChime opens the speaker. On error the returned Chime is still usable and
// silent.
func NewChime() (*Chime, error) {
	c := &Chime{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return c, err
	}
	c.ready = true
	return c, nil
}

// Play starts the chime without blocking.
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready {
		return
	}
	s, err := tone(sampleRate)
	if err != nil {
		return
	}
	speaker.Play(s)
}

// Close releases the audio device.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready {
		speaker.Close()
		c.ready = false
	}
}

// tone builds the chime as a sequence of sine notes.
func tone(sr beep.SampleRate) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(chimeNotes))
	for _, freq := range chimeNotes {
		sine, err := generators.SineTone(sr, freq)
		if err != nil {
			return nil, err
		}
		notes = append(notes, beep.Take(sr.N(noteLength), sine))
	}
	return beep.Seq(notes...), nil
}
