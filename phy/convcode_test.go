package phy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvEncode_RateHalfDoublesLength(t *testing.T) {
	bits := make([]byte, 20)
	for i := range bits {
		bits[i] = byte(i % 2)
	}
	enc := ConvEncode(bits, CodeRate1_2)
	assert.Len(t, enc, 40)
}

func TestPuncture_KeepsExpectedFraction(t *testing.T) {
	raw := make([]byte, 12)
	for i := range raw {
		raw[i] = byte(i)
	}

	p23 := puncture(raw, CodeRate2_3) // 3 kept of every 4 -> 12*3/4=9
	assert.Len(t, p23, 9)

	p34 := puncture(raw, CodeRate3_4) // 4 kept of every 6 -> 12*4/6=8
	assert.Len(t, p34, 8)
}

func TestDepuncture_InsertsErasuresAtPuncturedPositions(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	kept := puncture(raw, CodeRate2_3) // mask [T,T,T,F] -> keeps 1,2,3
	full := depuncture(kept, CodeRate2_3, len(raw))
	assert.Equal(t, byte(1), full[0])
	assert.Equal(t, byte(2), full[1])
	assert.Equal(t, byte(3), full[2])
	assert.Equal(t, byte(softErasure), full[3])
}

func TestViterbiDecode_RecoversZeroFlushedMessage(t *testing.T) {
	msg := []byte{1, 0, 1, 1, 0, 0, 1, 0, 0, 0, 0, 0} // includes 6 tail zero bits
	raw := ConvEncode(msg, CodeRate1_2)

	soft := make([]byte, len(raw))
	for i, b := range raw {
		if b != 0 {
			soft[i] = 255
		}
	}

	decoded := ViterbiDecode(soft, len(msg))
	assert.Equal(t, msg, decoded)
}
