package phy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModulateDemodulateHard_RoundTrip(t *testing.T) {
	mods := []Modulation{ModBPSK, ModQPSK, Mod16QAM, Mod64QAM}
	for _, mod := range mods {
		nbpsc := modNBPSC(mod)
		bits := make([]byte, nbpsc*48)
		for i := range bits {
			bits[i] = byte((i * 3) % 2)
		}

		points := ModulateBits(mod, bits)
		assert.Len(t, points, 48)

		back := DemodulateHard(mod, points)
		assert.Equal(t, bits, back, "modulation %v", mod)
	}
}

func TestKmod_NormalizesAverageEnergy(t *testing.T) {
	// BPSK has unity KMOD; higher orders scale down as constellation
	// size grows, per 802.11-2007 Table 81.
	assert.Equal(t, 1.0, kmod(ModBPSK))
	assert.Less(t, kmod(ModQPSK), kmod(ModBPSK))
	assert.Less(t, kmod(Mod16QAM), kmod(ModQPSK))
	assert.Less(t, kmod(Mod64QAM), kmod(Mod16QAM))
}
