package window

import (
	"github.com/ebitengine/oto/v3"

	"github.com/ezrec/chip8/frontend/audio"
)

// Tone plays the square wave through the audio device.
type Tone struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewTone opens the audio device and starts playing a square wave that
// sounds while active reports true.
func NewTone(active func() bool) (tone *Tone, err error) {
	op := &oto.NewContextOptions{
		SampleRate:   audio.SAMPLE_RATE,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return
	}
	<-ready

	tone = &Tone{ctx: ctx}
	tone.player = ctx.NewPlayer(audio.NewSquare(active))
	tone.player.Play()

	return
}

// Close stops the tone.
func (tone *Tone) Close() (err error) {
	if tone.player != nil {
		err = tone.player.Close()
		tone.player = nil
	}

	return
}
