package phy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScramble_Involutive(t *testing.T) {
	data := []byte("All human beings are born free and equal")
	for seed := byte(1); seed < 0x80; seed++ {
		scrambled, err := Scramble(data, seed)
		require.NoError(t, err)
		unscrambled, err := Scramble(scrambled, seed)
		require.NoError(t, err)
		assert.Equal(t, data, unscrambled, "seed %#x", seed)
	}
}

func TestScramble_RejectsBadSeed(t *testing.T) {
	_, err := Scramble([]byte{1, 2, 3}, 0)
	assert.ErrorIs(t, err, ErrBadSeed)

	_, err = Scramble([]byte{1, 2, 3}, 0x80)
	assert.ErrorIs(t, err, ErrBadSeed)
}

func TestScramble_KeystreamIndependentOfData(t *testing.T) {
	zeros := make([]byte, 32)
	ones := make([]byte, 32)
	for i := range ones {
		ones[i] = 0xff
	}

	keyFromZeros, err := Scramble(zeros, 0x5D)
	require.NoError(t, err)
	keyFromOnes, err := Scramble(ones, 0x5D)
	require.NoError(t, err)

	for i := range keyFromZeros {
		assert.Equal(t, ^keyFromZeros[i], keyFromOnes[i], "byte %d", i)
	}
}
