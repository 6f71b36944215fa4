package phy

/*------------------------------------------------------------------
 *
 * Purpose:	Rate-dependent PHY parameters (802.11-2007 Table 78) and
 *		the SIGNAL field RATE encoding (Table 80).
 *
 *------------------------------------------------------------------*/

import "strconv"

// Rate is one of the eight 802.11a/g data rates, in Mbit/s.
type Rate uint

const (
	Rate6  Rate = 6
	Rate9  Rate = 9
	Rate12 Rate = 12
	Rate18 Rate = 18
	Rate24 Rate = 24
	Rate36 Rate = 36
	Rate48 Rate = 48
	Rate54 Rate = 54
)

// Modulation identifies the subcarrier constellation.
type Modulation int

const (
	ModBPSK Modulation = iota
	ModQPSK
	Mod16QAM
	Mod64QAM
)

// CodeRate is a convolutional-code puncturing target: k/n.
type CodeRate int

const (
	CodeRate1_2 CodeRate = iota
	CodeRate2_3
	CodeRate3_4
)

// rateParams holds the derived invariants of a rate code (Table 78).
type rateParams struct {
	mod      Modulation
	code     CodeRate
	nbpsc    int // coded bits per subcarrier
	ncbps    int // coded bits per OFDM symbol = 48 * nbpsc
	ndbps    int // data bits per OFDM symbol = ncbps * code rate
	signalR1 uint8 // 4-bit RATE field, transmission order R1..R4 (Table 80)
}

var rateTable = map[Rate]rateParams{
	Rate6:  {ModBPSK, CodeRate1_2, 1, 48, 24, 0b1101},
	Rate9:  {ModBPSK, CodeRate3_4, 1, 48, 36, 0b1111},
	Rate12: {ModQPSK, CodeRate1_2, 2, 96, 48, 0b0101},
	Rate18: {ModQPSK, CodeRate3_4, 2, 96, 72, 0b0111},
	Rate24: {Mod16QAM, CodeRate1_2, 4, 192, 96, 0b1001},
	Rate36: {Mod16QAM, CodeRate3_4, 4, 192, 144, 0b1011},
	Rate48: {Mod64QAM, CodeRate2_3, 6, 288, 192, 0b0001},
	Rate54: {Mod64QAM, CodeRate3_4, 6, 288, 216, 0b0011},
}

// signalRateOf maps the 4-bit Table 80 RATE field (R1 transmitted first,
// i.e. R1 is the MSB of this value) back to a Rate.
var signalRateOf = map[uint8]Rate{
	0b1101: Rate6,
	0b1111: Rate9,
	0b0101: Rate12,
	0b0111: Rate18,
	0b1001: Rate24,
	0b1011: Rate36,
	0b0001: Rate48,
	0b0011: Rate54,
}

// lookupRate returns the Table 78 parameters for r, or ErrBadRate.
func lookupRate(r Rate) (rateParams, error) {
	p, ok := rateTable[r]
	if !ok {
		return rateParams{}, ErrBadRate
	}
	return p, nil
}

// NBPSC returns the coded bits per subcarrier for r.
func (r Rate) NBPSC() int { p, _ := lookupRate(r); return p.nbpsc }

// NCBPS returns the coded bits per OFDM symbol for r.
func (r Rate) NCBPS() int { p, _ := lookupRate(r); return p.ncbps }

// NDBPS returns the data bits per OFDM symbol for r.
func (r Rate) NDBPS() int { p, _ := lookupRate(r); return p.ndbps }

// Modulation returns the subcarrier constellation for r.
func (r Rate) Modulation() Modulation { p, _ := lookupRate(r); return p.mod }

// Valid reports whether r is one of the eight defined rates.
func (r Rate) Valid() bool {
	_, ok := rateTable[r]
	return ok
}

func (r Rate) String() string {
	if !r.Valid() {
		return "invalid-rate"
	}
	return strconv.FormatUint(uint64(r), 10)
}
