package phy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateTable_MatchesTable78(t *testing.T) {
	cases := []struct {
		rate  Rate
		mod   Modulation
		code  CodeRate
		nbpsc int
		ncbps int
		ndbps int
	}{
		{Rate6, ModBPSK, CodeRate1_2, 1, 48, 24},
		{Rate9, ModBPSK, CodeRate3_4, 1, 48, 36},
		{Rate12, ModQPSK, CodeRate1_2, 2, 96, 48},
		{Rate18, ModQPSK, CodeRate3_4, 2, 96, 72},
		{Rate24, Mod16QAM, CodeRate1_2, 4, 192, 96},
		{Rate36, Mod16QAM, CodeRate3_4, 4, 192, 144},
		{Rate48, Mod64QAM, CodeRate2_3, 6, 288, 192},
		{Rate54, Mod64QAM, CodeRate3_4, 6, 288, 216},
	}

	for _, c := range cases {
		p, err := lookupRate(c.rate)
		assert.NoError(t, err)
		assert.Equal(t, c.mod, p.mod, "rate %v modulation", c.rate)
		assert.Equal(t, c.code, p.code, "rate %v code rate", c.rate)
		assert.Equal(t, c.nbpsc, p.nbpsc, "rate %v nbpsc", c.rate)
		assert.Equal(t, c.ncbps, p.ncbps, "rate %v ncbps", c.rate)
		assert.Equal(t, c.ndbps, p.ndbps, "rate %v ndbps", c.rate)
		assert.Equal(t, 48*p.nbpsc, p.ncbps, "ncbps = 48*nbpsc invariant")
	}
}

func TestLookupRate_UnknownIsFatal(t *testing.T) {
	_, err := lookupRate(Rate(7))
	assert.ErrorIs(t, err, ErrBadRate)
}

func TestSignalRateRoundTrip(t *testing.T) {
	for rate, params := range rateTable {
		got, ok := signalRateOf[params.signalR1]
		assert.True(t, ok)
		assert.Equal(t, rate, got)
	}
}

func TestRateValid(t *testing.T) {
	assert.True(t, Rate6.Valid())
	assert.False(t, Rate(100).Valid())
}
