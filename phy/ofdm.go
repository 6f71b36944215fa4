package phy

/*------------------------------------------------------------------
 *
 * Purpose:	OFDM modulator (subcarrier mapping + IFFT + cyclic prefix
 *		+ window) and the matching demodulator/equalizer helpers.
 *
 * Description:	The transmit half plays the role the teacher's
 *		gen_tone.go plays for AFSK: turn symbol-rate data into a
 *		sample-rate waveform. The receive half (Equalize,
 *		TrackPilotPhase) is the inverse, consumed by the frame
 *		synchronizer rather than called directly by a test.
 *
 *------------------------------------------------------------------*/

import "math"

// CyclicPrefixLen is the 16-sample guard interval prepended to every
// 64-sample OFDM symbol.
const CyclicPrefixLen = 16

// SymbolLen is one full OFDM symbol including its cyclic prefix.
const SymbolLen = CyclicPrefixLen + FFTSize

// ModulateSymbol builds one 80-sample time-domain OFDM symbol from one
// symbol's nbpsc*48 interleaved coded bits (48 data subcarriers), the
// given pilot polarity, and modulation order.
func ModulateSymbol(mod Modulation, bits []byte, polarity float64) []complex128 {
	points := ModulateBits(mod, bits)
	grid := MapSymbol(points, polarity)
	IFFT64(grid)
	return withCyclicPrefix(grid)
}

// withCyclicPrefix prepends the last CyclicPrefixLen samples of a
// 64-sample time-domain symbol to itself, producing an 80-sample buffer.
func withCyclicPrefix(symbol []complex128) []complex128 {
	out := make([]complex128, 0, SymbolLen)
	out = append(out, symbol[FFTSize-CyclicPrefixLen:]...)
	out = append(out, symbol...)
	return out
}

// StripCyclicPrefix returns the 64-sample FFT-ready body of an
// 80-sample received OFDM symbol buffer, discarding the prefix.
func StripCyclicPrefix(buf []complex128) []complex128 {
	body := make([]complex128, FFTSize)
	copy(body, buf[CyclicPrefixLen:])
	return body
}

// Equalize divides each bin of a received frequency-domain symbol by
// the corresponding channel gain estimate, in place.
func Equalize(grid []complex128, gain []complex128) {
	for i := range grid {
		if gain[i] == 0 {
			continue
		}
		grid[i] /= gain[i]
	}
}

// TrackPilotPhase estimates the common-phase-error of a received,
// equalized symbol from its four pilot bins (802.11-2007 17.3.5.9 /
// 4.10 CPE tracking): the phase of the sum of each pilot divided by its
// expected (polarity-scaled) reference value.
func TrackPilotPhase(grid []complex128, polarity float64) float64 {
	var sum complex128
	for i, bin := range PilotBins {
		expect := pilotValue[i] * complex(polarity, 0)
		sum += grid[bin] * complex(real(expect), -imag(expect))
	}
	return math.Atan2(imag(sum), real(sum))
}

// DerotatePilotPhase rotates every data bin of grid by -phase, correcting
// the common phase error TrackPilotPhase estimated.
func DerotatePilotPhase(grid []complex128, phase float64) {
	rot := complex(math.Cos(phase), -math.Sin(phase))
	for _, bin := range dataBins {
		grid[bin] *= rot
	}
}
