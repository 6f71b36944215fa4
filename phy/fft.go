package phy

/*------------------------------------------------------------------
 *
 * Purpose:	64-point complex FFT/IFFT, the one numerical transform
 *		the OFDM modulator and synchronizer both depend on.
 *
 * Description:	The scope boundary calls out the FFT as "a well-
 *		specified numerical utility with a stated contract" and
 *		an external collaborator the core merely consumes, not
 *		owns - so rather than hand-roll it, this wraps the other
 *		example repos' own choice of transform library
 *		(gonum.org/v1/gonum/dsp/fourier, directly imported by
 *		ausocean-av's go.mod for exactly this purpose) behind the
 *		plan-once/execute-in-place FFTPlan shape the design notes
 *		call for.
 *
 *------------------------------------------------------------------*/

import "gonum.org/v1/gonum/dsp/fourier"

// FFTSize is the OFDM subcarrier count (and transform length) fixed by
// the standard for 20 MHz channels.
const FFTSize = 64

// FFTPlan is a reusable, stateless FFT/IFFT executor for a fixed size N
// (a power of two), wrapping a gonum CmplxFFT plan.
type FFTPlan struct {
	n   int
	fft *fourier.CmplxFFT
}

// NewFFTPlan builds a plan for transforms of length n, which must be a
// power of two.
func NewFFTPlan(n int) *FFTPlan {
	return &FFTPlan{n: n, fft: fourier.NewCmplxFFT(n)}
}

var plan64 = NewFFTPlan(FFTSize)

// FFT64 performs a forward (analysis) 64-point FFT in place on buf,
// which must have length 64.
func FFT64(buf []complex128) {
	plan64.execute(buf, false)
}

// IFFT64 performs an inverse (synthesis) 64-point FFT in place on buf,
// including the 1/N scaling, which must have length 64.
func IFFT64(buf []complex128) {
	plan64.execute(buf, true)
}

// execute runs buf through the plan's forward or inverse transform.
// gonum's Coefficients/Sequence both take separate dst/src slices, so a
// scratch copy of the input stands in for "in place" at the call site.
// gonum's Sequence is unnormalized, so the inverse is scaled by 1/N here.
func (p *FFTPlan) execute(buf []complex128, inverse bool) {
	scratch := make([]complex128, len(buf))
	copy(scratch, buf)
	if inverse {
		p.fft.Sequence(buf, scratch)
		scale := complex(1/float64(p.n), 0)
		for i := range buf {
			buf[i] *= scale
		}
	} else {
		p.fft.Coefficients(buf, scratch)
	}
}
