package phy

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFFT64_InverseRecoversOriginal(t *testing.T) {
	buf := make([]complex128, FFTSize)
	for i := range buf {
		buf[i] = complex(float64(i%7)-3, float64(i%5)-2)
	}
	orig := make([]complex128, FFTSize)
	copy(orig, buf)

	FFT64(buf)
	IFFT64(buf)

	for i := range buf {
		assert.InDelta(t, real(orig[i]), real(buf[i]), 1e-9, "bin %d real", i)
		assert.InDelta(t, imag(orig[i]), imag(buf[i]), 1e-9, "bin %d imag", i)
	}
}

func TestFFT64_DCBinIsSum(t *testing.T) {
	buf := make([]complex128, FFTSize)
	for i := range buf {
		buf[i] = complex(1, 0)
	}
	FFT64(buf)
	assert.InDelta(t, float64(FFTSize), real(buf[0]), 1e-9)
	assert.InDelta(t, 0, cmplx.Abs(buf[1]), 1e-9)
}
