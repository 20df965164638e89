package main

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 44100

type cue int

const (
	cueHit cue = iota
	cueDeath
	cueAbility
	cueCount
)

// toneAudio plays short synthesized blips for kernel audio cues. A cue that
// is still sounding is not restarted.
type toneAudio struct {
	players [cueCount]*audio.Player
	volume  [cueCount]float64
	width   float64
}

func newToneAudio(worldWidth float64) *toneAudio {
	ctx := audio.NewContext(sampleRate)
	a := &toneAudio{width: worldWidth}
	a.players[cueHit] = ctx.NewPlayerFromBytes(tone(880, 40, 0.25))
	a.players[cueDeath] = ctx.NewPlayerFromBytes(sweep(220, 60, 220, 0.4))
	a.players[cueAbility] = ctx.NewPlayerFromBytes(sweep(330, 990, 180, 0.3))
	a.volume = [cueCount]float64{0.3, 0.5, 0.4}
	return a
}

func (a *toneAudio) OnHit(x, _, _ float64) { a.play(cueHit, x) }

func (a *toneAudio) OnDeath(x, _ float64, _ string) { a.play(cueDeath, x) }

func (a *toneAudio) OnAbilityUsed(x, _ float64, _ string) { a.play(cueAbility, x) }

func (a *toneAudio) play(c cue, x float64) {
	p := a.players[c]
	if p == nil || p.IsPlaying() {
		return
	}
	// Cues at the screen edges play quieter than centered ones.
	falloff := 1.0
	if a.width > 0 {
		falloff = 1 - 0.5*math.Abs(x/a.width-0.5)*2
	}
	p.SetVolume(a.volume[c] * falloff)
	_ = p.Rewind()
	p.Play()
}

func tone(freq, ms, gain float64) []byte {
	return sweep(freq, freq, ms, gain)
}

// sweep renders a linear frequency sweep as 16-bit little-endian stereo PCM
// with a linear fade out.
func sweep(from, to, ms, gain float64) []byte {
	n := int(sampleRate * ms / 1000)
	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := from + (to-from)*t
		phase += 2 * math.Pi * freq / sampleRate
		v := int16(math.Sin(phase) * gain * (1 - t) * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
