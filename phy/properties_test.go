package phy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// TestProperty_EncodeDecodeRoundTrip exercises invariant 1: for any
// rate, nonzero seed, and payload, decode(encode(x)) == x with no
// channel impairment.
func TestProperty_EncodeDecodeRoundTrip(t *testing.T) {
	rates := []Rate{Rate6, Rate9, Rate12, Rate18, Rate24, Rate36, Rate48, Rate54}

	rapid.Check(t, func(t *rapid.T) {
		rate := rapid.SampledFrom(rates).Draw(t, "rate")
		seed := byte(rapid.IntRange(1, 0x7f).Draw(t, "seed"))
		length := rapid.IntRange(1, 256).Draw(t, "length")
		payload := make([]byte, length)
		for i := range payload {
			payload[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
		}

		encoded, err := Encode(rate, seed, length, payload)
		assert.NoError(t, err)

		decoded, err := Decode(rate, seed, length, encoded)
		assert.NoError(t, err)
		assert.Equal(t, payload, decoded)
	})
}

// TestProperty_ScrambleIsInvolutive exercises invariant 4.
func TestProperty_ScrambleIsInvolutive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := byte(rapid.IntRange(1, 0x7f).Draw(t, "seed"))
		n := rapid.IntRange(0, 64).Draw(t, "length")
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
		}

		scrambled, err := Scramble(data, seed)
		assert.NoError(t, err)
		back, err := Scramble(scrambled, seed)
		assert.NoError(t, err)
		assert.Equal(t, data, back)
	})
}

// TestProperty_ComputeEncMsgLenIsNcbpsAligned exercises invariant 3.
func TestProperty_ComputeEncMsgLenIsNcbpsAligned(t *testing.T) {
	rates := []Rate{Rate6, Rate9, Rate12, Rate18, Rate24, Rate36, Rate48, Rate54}

	rapid.Check(t, func(t *rapid.T) {
		rate := rapid.SampledFrom(rates).Draw(t, "rate")
		length := rapid.IntRange(1, 4095).Draw(t, "length")

		n, err := ComputeEncMsgLen(rate, length)
		assert.NoError(t, err)

		params, _ := lookupRate(rate)
		assert.Equal(t, 0, (n*8)%params.ncbps)
	})
}
