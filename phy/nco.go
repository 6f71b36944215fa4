package phy

/*------------------------------------------------------------------
 *
 * Purpose:	Numerically-controlled oscillator for carrier frequency
 *		offset correction.
 *
 * Description:	Same role as the teacher's PLL/DCD phase accumulator
 *		(pll_dcd.go) but rotating a complex phasor instead of
 *		tracking a binary symbol clock: a running phase
 *		accumulator advanced by a fixed per-sample frequency,
 *		consumed by multiplying (or conjugate-multiplying) each
 *		incoming sample.
 *
 *------------------------------------------------------------------*/

import "math"

// NCO is a free-running complex oscillator: phase advances by Freq
// radians/sample on every Step call.
type NCO struct {
	Freq  float64 // radians/sample
	phase float64
}

// SetFrequency reprograms the oscillator's per-sample phase increment.
func (n *NCO) SetFrequency(freq float64) {
	n.Freq = freq
}

// Step advances the internal phase by one sample and returns the
// current complex phasor exp(j*phase) before advancing.
func (n *NCO) Step() complex128 {
	c := complex(math.Cos(n.phase), math.Sin(n.phase))
	n.phase += n.Freq
	n.phase = wrapPhase(n.phase)
	return c
}

// MixDown multiplies x by the oscillator's conjugate phasor (correcting
// a positive CFO) and advances the phase by one sample.
func (n *NCO) MixDown(x complex128) complex128 {
	c := n.Step()
	return x * complex(real(c), -imag(c))
}

// Reset zeroes the phase accumulator without touching Freq.
func (n *NCO) Reset() {
	n.phase = 0
}

func wrapPhase(p float64) float64 {
	for p > math.Pi {
		p -= 2 * math.Pi
	}
	for p < -math.Pi {
		p += 2 * math.Pi
	}
	return p
}
