package phy

/*------------------------------------------------------------------
 *
 * Purpose:	K=7 rate-1/2 convolutional encoder (generators 0x6D,
 *		0x4F) with puncturing to rate 2/3 or 3/4.
 *
 * Description:	Bit-oriented FEC the way the teacher's FX.25 layer
 *		(fx25_init.go) wraps Phil Karn's Reed-Solomon codec:
 *		small fixed tables describing the code, a stateless
 *		encode pass, and a decode pass that undoes it. The
 *		convolutional code here is the NASA standard K=7 code,
 *		not Reed-Solomon, so the tables are generator
 *		polynomials and puncturing masks rather than RS roots.
 *
 *------------------------------------------------------------------*/

const (
	convK         = 7          // constraint length
	convNumStates = 1 << (convK - 1)
	convGenA      = 0x6D // generator polynomial A (octal 155)
	convGenB      = 0x4F // generator polynomial B (octal 117)
)

// puncturePattern describes a cyclic puncturing mask over P input-bit
// pairs (A-bit, B-bit). kept[i] is true if the i-th bit of the raw
// rate-1/2 stream (A0,B0,A1,B1,...,A(P-1),B(P-1)) is transmitted.
type puncturePattern struct {
	period int // P, in input-bit pairs
	kept   []bool
}

// punctureTables gives the standard 802.11a/g puncturing matrices
// (802.11-2007 Table 79): rate 2/3 keeps 3 of every 4 raw bits (P=2
// input bits), rate 3/4 keeps 4 of every 6 raw bits (P=3 input bits).
var punctureTables = map[CodeRate]puncturePattern{
	CodeRate1_2: {period: 1, kept: []bool{true, true}},
	CodeRate2_3: {period: 2, kept: []bool{true, true, true, false}},
	CodeRate3_4: {period: 3, kept: []bool{true, true, true, false, false, true}},
}

// parity returns the even/odd parity of the low convK bits of v.
func parity(v uint) byte {
	v &= (1 << convK) - 1
	var p uint
	for v != 0 {
		p ^= v & 1
		v >>= 1
	}
	return byte(p)
}

// convOutput returns the (A,B) output bits for encoder state+input bit,
// where state holds the previous (convK-1) input bits, LSB-most-recent.
func convOutput(state uint, inBit byte) (a, b byte) {
	reg := (state << 1) | uint(inBit)
	a = parity(reg & convGenA)
	b = parity(reg & convGenB)
	return a, b
}

// ConvEncode runs the decoded bits (MSB-first within each byte, as
// produced by the packet codec after scrambling) through the K=7 rate-
// 1/2 encoder and punctures the result to the requested code rate.
// decBits must already include the convK-1=6 tail-flushing zero bits.
func ConvEncode(decBits []byte, rate CodeRate) []byte {
	raw := make([]byte, 0, len(decBits)*2)
	var state uint
	for _, in := range decBits {
		a, b := convOutput(state, in)
		raw = append(raw, a, b)
		state = ((state << 1) | uint(in)) & ((1 << (convK - 1)) - 1)
	}
	return puncture(raw, rate)
}

// puncture deletes bits from raw (a flat A0,B0,A1,B1,... stream) per the
// cyclic mask for rate.
func puncture(raw []byte, rate CodeRate) []byte {
	pat := punctureTables[rate]
	if pat.period == 1 {
		return raw
	}
	out := make([]byte, 0, len(raw))
	for i, b := range raw {
		if pat.kept[i%len(pat.kept)] {
			out = append(out, b)
		}
	}
	return out
}

// depuncture reinserts erasures (127) at the punctured positions of a
// soft-decision stream, reconstructing the full rate-1/2 (2:1) stream
// the Viterbi decoder expects. n is the number of raw (unpunctured)
// soft bits to produce.
func depuncture(soft []byte, rate CodeRate, n int) []byte {
	pat := punctureTables[rate]
	out := make([]byte, n)
	si := 0
	for i := range out {
		if pat.kept[i%len(pat.kept)] {
			out[i] = soft[si]
			si++
		} else {
			out[i] = softErasure
		}
	}
	return out
}
