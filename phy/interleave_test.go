package phy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterleave_IsBijective(t *testing.T) {
	for rate, params := range rateTable {
		table := interleaverTables[rate]
		seen := make([]bool, params.ncbps)
		for _, j := range table {
			assert.False(t, seen[j], "rate %v: position %d mapped twice", rate, j)
			seen[j] = true
		}
		for i, s := range seen {
			assert.True(t, s, "rate %v: position %d never targeted", rate, i)
		}
	}
}

func TestDeinterleave_IsInverseOfInterleave(t *testing.T) {
	for rate, params := range rateTable {
		block := make([]byte, params.ncbps)
		for i := range block {
			block[i] = byte(i % 2)
		}
		interleaved := Interleave(rate, block)
		back := Deinterleave(rate, interleaved)
		assert.Equal(t, block, back, "rate %v", rate)
	}
}
