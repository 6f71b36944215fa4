package phy

/*------------------------------------------------------------------
 *
 * Purpose:	Maximum-likelihood Viterbi decoder for the K=7 rate-1/2
 *		convolutional code, operating on soft-decision bytes.
 *
 * Description:	Soft-bit convention (shared with the puncturing/
 *		depuncturing boundary): 0 = confident 0, 255 = confident
 *		1, 127 = erasure. This mirrors the way the teacher's
 *		HDLC slicer (rrbb.go) keeps a byte-per-bit confidence
 *		buffer rather than packed bits, trading memory for a
 *		simple, branch-free metric.
 *
 *------------------------------------------------------------------*/

const softErasure = 127

// softDistance is the branch metric between a received soft bit and an
// expected hard bit: 0 means perfect agreement, 255 means confident
// disagreement, 127 (an erasure) contributes a near-equal penalty
// either way (127 against 0, 128 against 1).
func softDistance(soft byte, expect byte) int {
	expected := 0
	if expect != 0 {
		expected = 255
	}
	d := int(soft) - expected
	if d < 0 {
		d = -d
	}
	return d
}

// vstate is the Viterbi trellis path state.
type vstate struct {
	metric int
	prev   uint
	inBit  byte
}

// ViterbiDecode performs maximum-likelihood decoding of a full-rate
// (depunctured) soft-decision stream produced by the K=7 rate-1/2
// encoder, returning nBits hard-decided message bits.
func ViterbiDecode(soft []byte, nBits int) []byte {
	const nStates = convNumStates
	const stateMask = nStates - 1

	trellis := make([][nStates]vstate, nBits+1)
	for s := range trellis[0] {
		trellis[0][s].metric = 1 << 30
	}
	trellis[0][0].metric = 0

	for t := 0; t < nBits; t++ {
		a := soft[2*t]
		b := soft[2*t+1]

		next := &trellis[t+1]
		for s := range next {
			next[s].metric = 1 << 30
		}

		for s := 0; s < nStates; s++ {
			cur := trellis[t][s]
			if cur.metric >= 1<<30 {
				continue
			}
			for _, in := range [2]byte{0, 1} {
				expA, expB := convOutput(uint(s), in)
				branch := softDistance(a, expA) + softDistance(b, expB)
				ns := ((s << 1) | int(in)) & stateMask
				m := cur.metric + branch
				if m < next[ns].metric {
					next[ns] = vstate{metric: m, prev: uint(s), inBit: in}
				}
			}
		}
	}

	// Find best final state (K=7 tail-biting isn't used; the encoder
	// is explicitly flushed with convK-1 zero tail bits, so state 0
	// is the only valid terminus). State 0 is chosen whenever it is
	// reachable; the best-metric state is used only when it is not
	// (fewer than convK-1 decoded bits).
	best := 0
	for s := 1; s < nStates; s++ {
		if trellis[nBits][s].metric < trellis[nBits][best].metric {
			best = s
		}
	}
	if trellis[nBits][0].metric < 1<<30 {
		best = 0
	}

	out := make([]byte, nBits)
	s := best
	for t := nBits; t > 0; t-- {
		st := trellis[t][s]
		out[t-1] = st.inBit
		s = int(st.prev)
	}
	return out
}
