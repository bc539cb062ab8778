package synth

import "math"

// Oscillator is a single sine voice. Phase is measured in cycles,
// advanced by frequency/sampleRate per sample and wrapped to [0,1)
// with exact modular arithmetic. It is never reset after
// construction: the waveform position at a tone onset depends on
// everything rendered before it, which keeps Stop→Play transitions
// free of phase-discontinuity clicks.
type Oscillator struct {
	phase     float64
	frequency float64
	volume    float32
}

// accumulate adds this voice to every channel of each frame of out.
// out is interleaved. The phase advances for every frame regardless
// of volume, so a silenced voice keeps its place in the waveform.
func (o *Oscillator) accumulate(out []float32, channels int, sampleRate float64) {
	step := o.frequency / sampleRate
	for f := 0; f+channels <= len(out); f += channels {
		sample := float32(math.Sin(o.phase*2*math.Pi)) * o.volume
		for c := 0; c < channels; c++ {
			out[f+c] += sample
		}
		_, o.phase = math.Modf(o.phase + step)
	}
}
