package phy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSynchronizer_StartsInSeekPLCP(t *testing.T) {
	s := NewSynchronizer(nil)
	assert.Equal(t, stateSeekPLCP, s.state)
}

func TestSynchronizer_Reset_ReturnsToSeekPLCP(t *testing.T) {
	s := NewSynchronizer(nil)
	s.state = stateRxData
	s.symIdx = 3
	s.Reset()

	assert.Equal(t, stateSeekPLCP, s.state)
	assert.Equal(t, 0, s.symIdx)
}

// TestSynchronizer_DetectsIdealShortPreamble exercises SEEK_PLCP against
// an ideal (unity channel, zero CFO, noiseless) short training sequence:
// the detection statistic should clear the calibrated default threshold
// and advance the state machine off SEEK_PLCP.
func TestSynchronizer_DetectsIdealShortPreamble(t *testing.T) {
	s := NewSynchronizer(nil)

	short := ShortTrainingSequence()
	s.Process(short)

	assert.NotEqual(t, stateSeekPLCP, s.state)
}

func TestSynchronizer_IgnoresSilence(t *testing.T) {
	s := NewSynchronizer(nil)

	silence := make([]complex128, 256)
	s.Process(silence)

	assert.Equal(t, stateSeekPLCP, s.state)
}

// TestRecoverSeedAndDecode_FindsTrueSeed exercises the SERVICE-field
// check that lets recoverSeedAndDecode pick the true scrambler seed out
// of the 127 candidates rather than always accepting the first one.
func TestRecoverSeedAndDecode_FindsTrueSeed(t *testing.T) {
	payload := []byte("the quick brown fox")
	const trueSeed = 0x5D

	encoded, err := Encode(Rate24, trueSeed, len(payload), payload)
	assert.NoError(t, err)

	soft := bytesToSoftBits(encoded)
	seed, decoded, ok := recoverSeedAndDecode(Rate24, len(payload), soft)

	assert.True(t, ok)
	assert.Equal(t, byte(trueSeed), seed)
	assert.Equal(t, payload, decoded)
}

// TestFrameGenerator_Synchronizer_RoundTrip drives one complete
// generated frame's samples through the synchronizer end to end: PLCP
// detection, short/long training estimation, SIGNAL decode, and DATA
// decode, with no injected noise or channel impairment.
func TestFrameGenerator_Synchronizer_RoundTrip(t *testing.T) {
	cfg := Config{Rate: Rate24, Seed: 0x5D, Length: 20}
	payload := make([]byte, cfg.Length)
	for i := range payload {
		payload[i] = byte(i*7 + 3)
	}

	samples, err := GenerateFrame(cfg, payload)
	assert.NoError(t, err)

	var results []Result
	s := NewSynchronizer(func(r Result) {
		results = append(results, r)
	})
	s.Process(samples)

	if assert.Len(t, results, 1) {
		r := results[0]
		assert.True(t, r.Valid)
		assert.Equal(t, cfg.Rate, r.Rate)
		assert.Equal(t, cfg.Length, r.Length)
		assert.Equal(t, cfg.Seed, r.Seed)
		assert.Equal(t, payload, r.Payload)
	}
}

// TestFrameGenerator_Synchronizer_RoundTrip_AllRates repeats the
// round trip across every defined rate, since nbpsc/ncbps/ndbps and the
// puncturing pattern all vary by rate.
func TestFrameGenerator_Synchronizer_RoundTrip_AllRates(t *testing.T) {
	for rate := range rateTable {
		cfg := Config{Rate: rate, Seed: 0x2A, Length: 37}
		payload := make([]byte, cfg.Length)
		for i := range payload {
			payload[i] = byte(i*11 + 5)
		}

		samples, err := GenerateFrame(cfg, payload)
		assert.NoError(t, err)

		var results []Result
		s := NewSynchronizer(func(r Result) {
			results = append(results, r)
		})
		s.Process(samples)

		if assert.Len(t, results, 1, "rate %v", rate) {
			r := results[0]
			assert.True(t, r.Valid, "rate %v", rate)
			assert.Equal(t, payload, r.Payload, "rate %v", rate)
		}
	}
}
