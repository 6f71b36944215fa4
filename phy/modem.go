package phy

/*------------------------------------------------------------------
 *
 * Purpose:	BPSK/QPSK/16-QAM/64-QAM hard and soft constellation
 *		mapping, Gray-coded per 802.11-2007 Table 81/Table 82.
 *
 * Description:	Treated by this implementation's own scope boundary as
 *		a well-specified numerical leaf, the same way the teacher
 *		treats its tone generator (gen_tone.go) as a small closed
 *		unit: fixed formulas, no state, no external dependency.
 *		KMOD values are the standard's per-order normalization
 *		constants so the average constellation energy is unity.
 *
 *------------------------------------------------------------------*/

import "math"

// kmod returns the per-symbol normalization factor for a modulation
// order (802.11-2007 17.3.5.8, Table 81).
func kmod(mod Modulation) float64 {
	switch mod {
	case ModBPSK:
		return 1.0
	case ModQPSK:
		return 1.0 / sqrt2
	case Mod16QAM:
		return 1.0 / sqrt10
	case Mod64QAM:
		return 1.0 / sqrt42
	default:
		return 1.0
	}
}

const (
	sqrt2  = 1.4142135623730951
	sqrt10 = 3.1622776601683795
	sqrt42 = 6.48074069840786
)

// ModulateBits maps nbpsc-bit groups (one bit per byte, 0 or 1) of an
// interleaved block to complex constellation points, Gray-coded
// per subcarrier, normalized by KMOD. bits must be a multiple of nbpsc
// long; returns len(bits)/nbpsc points.
func ModulateBits(mod Modulation, bits []byte) []complex128 {
	nbpsc := modNBPSC(mod)
	n := len(bits) / nbpsc
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		out[i] = modulateSymbol(mod, bits[i*nbpsc:(i+1)*nbpsc])
	}
	return out
}

func modNBPSC(mod Modulation) int {
	switch mod {
	case ModBPSK:
		return 1
	case ModQPSK:
		return 2
	case Mod16QAM:
		return 4
	case Mod64QAM:
		return 6
	default:
		return 1
	}
}

// grayLevel maps a 1, 2, or 3-bit Gray-coded group to a signed odd PAM
// level, per the standard's "b(k-1)...b0" Gray mapping tables.
func grayLevel(bits []byte) float64 {
	switch len(bits) {
	case 1:
		if bits[0] == 0 {
			return -1
		}
		return 1
	case 2:
		// 00 -> -3, 01 -> -1, 11 -> 1, 10 -> 3
		switch {
		case bits[0] == 0 && bits[1] == 0:
			return -3
		case bits[0] == 0 && bits[1] == 1:
			return -1
		case bits[0] == 1 && bits[1] == 1:
			return 1
		default:
			return 3
		}
	case 3:
		// 000 -> -7, 001 -> -5, 011 -> -3, 010 -> -1,
		// 110 -> 1, 111 -> 3, 101 -> 5, 100 -> 7
		idx := int(bits[0])<<2 | int(bits[1])<<1 | int(bits[2])
		levels := [8]float64{-7, -5, -1, -3, 7, 5, 1, 3}
		return levels[idx]
	default:
		return 0
	}
}

func modulateSymbol(mod Modulation, bits []byte) complex128 {
	k := kmod(mod)
	switch mod {
	case ModBPSK:
		return complex(grayLevel(bits[0:1])*k, 0)
	case ModQPSK:
		i := grayLevel(bits[0:1])
		q := grayLevel(bits[1:2])
		return complex(i*k, q*k)
	case Mod16QAM:
		i := grayLevel(bits[0:2])
		q := grayLevel(bits[2:4])
		return complex(i*k, q*k)
	case Mod64QAM:
		i := grayLevel(bits[0:3])
		q := grayLevel(bits[3:6])
		return complex(i*k, q*k)
	default:
		return 0
	}
}

// DemodulateSoft converts received (equalized) constellation points back
// to soft-decision bits (0..255) by nearest-level decision per PAM axis:
// each axis value is matched against the Gray-coded level it is closest
// to, and the corresponding bits are reported at full confidence offset
// by how far the runner-up level was. One point yields nbpsc soft bits.
func DemodulateSoft(mod Modulation, points []complex128) []byte {
	nbpsc := modNBPSC(mod)
	axisBits := nbpsc / axisCount(mod)
	out := make([]byte, 0, len(points)*nbpsc)
	k := kmod(mod)
	for _, p := range points {
		re := real(p) / k
		out = append(out, decodeAxis(axisBits, re)...)
		if axisCount(mod) == 2 {
			im := imag(p) / k
			out = append(out, decodeAxis(axisBits, im)...)
		}
	}
	return out
}

// axisCount is 1 for BPSK (I only) and 2 for every other order (I and Q).
func axisCount(mod Modulation) int {
	if mod == ModBPSK {
		return 1
	}
	return 2
}

// decodeAxis finds, among the 2^axisBits Gray-coded PAM levels, the one
// nearest v, and returns its bits as soft bytes: the decided bit at full
// confidence (0 or 255), scaled toward the midpoint (127) by how close
// the runner-up level was, so unambiguous decisions stay confident and
// borderline ones approach an erasure.
func decodeAxis(axisBits int, v float64) []byte {
	bestDist, runnerUp := math.Inf(1), math.Inf(1)
	var bestBits []byte
	for pattern := 0; pattern < 1<<axisBits; pattern++ {
		bits := patternBits(pattern, axisBits)
		level := grayLevel(bits)
		d := math.Abs(v - level)
		if d < bestDist {
			bestDist, runnerUp = d, bestDist
			bestBits = bits
		} else if d < runnerUp {
			runnerUp = d
		}
	}

	margin := runnerUp - bestDist
	confidence := 127.0
	if margin > 0 {
		confidence = 127 * (1 - 1/(1+margin))
	}

	out := make([]byte, axisBits)
	for i, b := range bestBits {
		if b == 0 {
			out[i] = byte(127 - confidence)
		} else {
			out[i] = byte(127 + confidence)
		}
	}
	return out
}

// patternBits expands an integer in [0, 2^n) to its n-bit representation
// (one bit per byte, MSB first), matching grayLevel's bit ordering.
func patternBits(pattern, n int) []byte {
	bits := make([]byte, n)
	for i := 0; i < n; i++ {
		bits[i] = byte((pattern >> uint(n-1-i)) & 1)
	}
	return bits
}

// DemodulateHard is a convenience wrapper returning hard 0/1 bits rather
// than soft confidence bytes, used by tests and by callers that only
// need bit-exact round trips with no noise.
func DemodulateHard(mod Modulation, points []complex128) []byte {
	soft := DemodulateSoft(mod, points)
	out := make([]byte, len(soft))
	for i, s := range soft {
		if s >= 128 {
			out[i] = 1
		}
	}
	return out
}

// pilotValue is the BPSK value (before polarity) carried by each pilot
// tone, per 802.11-2007 17.3.5.9: (+1, +1, +1, -1) at bins 7, 21, 43, 57.
var pilotValue = [4]complex128{1, 1, 1, -1}
