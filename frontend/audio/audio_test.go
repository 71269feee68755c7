package audio

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/emulator"
	chipio "github.com/ezrec/chip8/io"
)

func samples(p []byte) (out []float32) {
	for n := 0; n+4 <= len(p); n += 4 {
		out = append(out, math.Float32frombits(binary.LittleEndian.Uint32(p[n:])))
	}
	return
}

func TestSquare(t *testing.T) {
	assert := assert.New(t)

	var bz chipio.Buzzer
	sq := &Square{
		Active:     bz.Active,
		Frequency:  1,
		SampleRate: 4,
	}

	buf := make([]byte, 8*4+3)
	n, err := sq.Read(buf)
	assert.NoError(err)
	assert.Equal(8*4, n)
	assert.Equal(make([]float32, 8), samples(buf[:n]))

	bz.SetToneActive(true)
	n, err = sq.Read(buf)
	assert.NoError(err)
	assert.Equal(8*4, n)
	hi, lo := float32(AMPLITUDE), float32(-AMPLITUDE)
	assert.Equal([]float32{hi, hi, lo, lo, hi, hi, lo, lo}, samples(buf[:n]))
}

func TestSquareNoSource(t *testing.T) {
	assert := assert.New(t)

	sq := NewSquare(nil)
	buf := make([]byte, 16)
	n, err := sq.Read(buf)
	assert.NoError(err)
	assert.Equal(16, n)
	assert.Equal(make([]float32, 4), samples(buf))
}

type testFrontend struct {
	refreshes int
}

func (tf *testFrontend) Refresh(emu *emulator.Emulator) bool {
	tf.refreshes++
	return tf.refreshes < 2
}

func TestRecorder(t *testing.T) {
	assert := assert.New(t)

	emu := emulator.NewEmulator(1)
	fe := &testFrontend{}
	rec := NewRecorder()
	rec.Frontend = fe

	frame := SAMPLE_RATE / emulator.TICK_RATE

	assert.True(rec.Refresh(emu))
	assert.Equal(frame, rec.Samples())
	for _, sample := range rec.data {
		assert.Equal(0, sample)
	}

	emu.Devices.Buzzer.SetToneActive(true)
	assert.False(rec.Refresh(emu))
	assert.Equal(2*frame, rec.Samples())
	assert.Equal(6553, rec.data[frame])
	assert.Equal(2, fe.refreshes)

	path := filepath.Join(t.TempDir(), "tone.wav")
	ouf, err := os.Create(path)
	if !assert.NoError(err) {
		return
	}
	assert.NoError(rec.Save(ouf))
	assert.NoError(ouf.Close())

	inf, err := os.Open(path)
	if !assert.NoError(err) {
		return
	}
	defer inf.Close()

	dec := wav.NewDecoder(inf)
	assert.True(dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	assert.NoError(err)
	assert.Equal(uint16(1), dec.NumChans)
	assert.Equal(uint32(SAMPLE_RATE), dec.SampleRate)
	assert.Equal(rec.data, buf.Data)
}
