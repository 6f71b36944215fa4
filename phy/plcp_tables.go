package phy

/*------------------------------------------------------------------
 *
 * Purpose:	Fixed PLCP reference sequences: the short (S0) and long
 *		(S1) training frequency-domain definitions (802.11-2007
 *		17.3.3), time-domain derived once via the package FFT
 *		plan, matched against Annex G.3/G.4.
 *
 * Description:	File-scoped fixed tables, same role as the teacher's
 *		reverse-byte and CRC lookup tables (il2p_crc.go) built
 *		once at init rather than recomputed per call.
 *
 *------------------------------------------------------------------*/

// shortFreq is S(-26..26), the short training sequence's frequency-
// domain definition, scaled by sqrt(13/6) so that only every 4th
// subcarrier (12 of them) is populated.
var shortFreq = buildShortFreq()

func buildShortFreq() [53]complex128 {
	const scale = 1.4719601443879744 // sqrt(13/6)
	nonzero := map[int]complex128{
		-24: complex(1, 1),
		-20: complex(-1, -1),
		-16: complex(1, 1),
		-12: complex(-1, -1),
		-8:  complex(-1, -1),
		-4:  complex(1, 1),
		4:   complex(-1, -1),
		8:   complex(-1, -1),
		12:  complex(1, 1),
		16:  complex(1, 1),
		20:  complex(1, 1),
		24:  complex(1, 1),
	}
	var f [53]complex128
	for k := -26; k <= 26; k++ {
		if v, ok := nonzero[k]; ok {
			f[k+26] = v * complex(scale, 0)
		}
	}
	return f
}

// longFreq is L(-26..26), the long training sequence's frequency-domain
// definition: +1/-1 on every occupied subcarrier, zero at DC.
var longFreq = buildLongFreq()

func buildLongFreq() [53]complex128 {
	vals := [53]float64{
		1, 1, -1, -1, 1, 1, -1, 1, -1, 1, 1, 1, 1,
		1, 1, -1, -1, 1, 1, -1, 1, -1, 1, 1, 1, 1,
		0,
		1, -1, -1, 1, 1, -1, 1, -1, 1, -1, -1, -1, -1,
		-1, 1, 1, -1, -1, 1, -1, 1, -1, 1, 1, 1, 1,
	}
	var f [53]complex128
	for i, v := range vals {
		f[i] = complex(v, 0)
	}
	return f
}

// freqToGrid scatters a k=-26..26 frequency-domain definition onto a
// 64-bin FFT grid.
func freqToGrid(freq [53]complex128) []complex128 {
	grid := make([]complex128, FFTSize)
	for k := -26; k <= 26; k++ {
		if k == 0 {
			continue
		}
		bin := ((k % FFTSize) + FFTSize) % FFTSize
		grid[bin] = freq[k+26]
	}
	return grid
}

// ShortTrainingTime returns the 16-sample time-domain short training
// period (one repetition of S0), derived once via the package IFFT: the
// full 64-point inverse transform of shortFreq repeats with period 16,
// so only the first quarter is kept.
var ShortTrainingTime = buildShortTrainingTime()

func buildShortTrainingTime() [16]complex128 {
	grid := freqToGrid(shortFreq)
	IFFT64(grid)
	var out [16]complex128
	copy(out[:], grid[:16])
	return out
}

// LongTrainingTime returns the 64-sample time-domain long training
// symbol, derived once via the package IFFT.
var LongTrainingTime = buildLongTrainingTime()

func buildLongTrainingTime() [64]complex128 {
	grid := freqToGrid(longFreq)
	IFFT64(grid)
	var out [64]complex128
	copy(out[:], grid)
	return out
}

// ShortTrainingSequence returns the full 160-sample S0 (10 repetitions
// of the 16-sample period).
func ShortTrainingSequence() []complex128 {
	out := make([]complex128, 0, 160)
	for i := 0; i < 10; i++ {
		out = append(out, ShortTrainingTime[:]...)
	}
	return out
}

// LongTrainingSequence returns the full 160-sample S1 (32-sample double
// guard interval, the last 32 samples of the long symbol, followed by
// two 64-sample copies of the long symbol).
func LongTrainingSequence() []complex128 {
	out := make([]complex128, 0, 160)
	out = append(out, LongTrainingTime[32:]...)
	out = append(out, LongTrainingTime[:]...)
	out = append(out, LongTrainingTime[:]...)
	return out
}
