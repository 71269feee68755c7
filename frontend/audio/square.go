// Package audio generates the tone for hosts that play or record it.
package audio

import (
	"encoding/binary"
	"math"
)

const (
	SAMPLE_RATE = 44100 // Samples per second.
	FREQUENCY   = 440   // Square wave frequency, in Hz.
	AMPLITUDE   = 0.2   // Peak sample value.
)

// Square is a mono float32 square wave source, silent while Active reports
// false.
type Square struct {
	Active     func() bool
	Frequency  float64
	SampleRate int

	phase float64
}

// NewSquare returns the standard tone, gated by active.
func NewSquare(active func() bool) *Square {
	return &Square{
		Active:     active,
		Frequency:  FREQUENCY,
		SampleRate: SAMPLE_RATE,
	}
}

// Sample returns the next sample.
func (sq *Square) Sample(active bool) (sample float32) {
	if active {
		if sq.phase < 0.5 {
			sample = AMPLITUDE
		} else {
			sample = -AMPLITUDE
		}
	}

	sq.phase += sq.Frequency / float64(sq.SampleRate)
	if sq.phase >= 1.0 {
		sq.phase -= 1.0
	}

	return
}

// Read fills p with little-endian float32 samples.
func (sq *Square) Read(p []byte) (n int, err error) {
	active := sq.Active != nil && sq.Active()
	for n = 0; n+4 <= len(p); n += 4 {
		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(sq.Sample(active)))
	}

	return
}
