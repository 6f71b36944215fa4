package phy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal_RoundTrip(t *testing.T) {
	for rate := range rateTable {
		for _, length := range []int{1, 100, 4095} {
			bits, err := PackSignal(rate, length)
			require.NoError(t, err)
			require.Len(t, bits, SignalBits)

			decoded, err := UnpackSignal(bits)
			require.NoError(t, err)
			assert.Equal(t, rate, decoded.Rate)
			assert.Equal(t, length, decoded.Length)
		}
	}
}

func TestSignal_CorruptedParityDetected(t *testing.T) {
	bits, err := PackSignal(Rate6, 100)
	require.NoError(t, err)
	bits[17] ^= 1 // flip the parity bit

	_, err = UnpackSignal(bits)
	assert.ErrorIs(t, err, ErrSignalParity)
}

func TestSignal_OutOfRangeRateIsDistinctFromParityFailure(t *testing.T) {
	bits, err := PackSignal(Rate6, 100)
	require.NoError(t, err)
	bits[0], bits[1], bits[2], bits[3] = 0, 0, 0, 0 // unassigned RATE code
	// Recompute even parity so only the RATE range check can fail.
	var p byte
	for _, bit := range bits[:17] {
		p ^= bit
	}
	bits[17] = p

	_, err = UnpackSignal(bits)
	assert.ErrorIs(t, err, ErrSignalRange)
}
