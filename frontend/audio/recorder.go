package audio

import (
	"io"
	"log"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ezrec/chip8/emulator"
)

const (
	WAV_BIT_DEPTH = 16
	WAV_PCM       = 1 // WAVE_FORMAT_PCM
)

// Recorder captures the tone, one frame of samples per Refresh, for saving
// as a WAV file. It is an emulator.Frontend, and passes each refresh on to
// Frontend if set.
type Recorder struct {
	Verbose  bool
	Frontend emulator.Frontend

	square *Square
	data   []int
}

// NewRecorder creates a recorder at SAMPLE_RATE.
func NewRecorder() (rec *Recorder) {
	rec = &Recorder{
		square: NewSquare(nil),
	}

	return
}

// Refresh records one frame of the emulator's tone.
func (rec *Recorder) Refresh(emu *emulator.Emulator) (ok bool) {
	active := emu.Devices.Buzzer.Active()

	peak := float64(int(1)<<(WAV_BIT_DEPTH-1) - 1)
	for range rec.square.SampleRate / emulator.TICK_RATE {
		sample := rec.square.Sample(active)
		rec.data = append(rec.data, int(math.Round(float64(sample)*peak)))
	}

	ok = true
	if rec.Frontend != nil {
		ok = rec.Frontend.Refresh(emu)
	}

	return
}

// Samples returns the number of recorded samples.
func (rec *Recorder) Samples() int {
	return len(rec.data)
}

// Save writes the recording as a mono 16-bit PCM WAV file.
func (rec *Recorder) Save(w io.WriteSeeker) (err error) {
	if rec.Verbose {
		log.Printf("audio: saving %d samples", len(rec.data))
	}

	enc := wav.NewEncoder(w, rec.square.SampleRate, WAV_BIT_DEPTH, 1, WAV_PCM)

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  rec.square.SampleRate,
		},
		Data:           rec.data,
		SourceBitDepth: WAV_BIT_DEPTH,
	}

	err = enc.Write(buf)
	if err != nil {
		return
	}

	err = enc.Close()
	return
}
