package phy

/*------------------------------------------------------------------
 *
 * Purpose:	Data/pilot/null subcarrier placement on the 64-bin OFDM
 *		grid (802.11-2007 17.3.5.9, 17.3.5.10).
 *
 * Description:	A fixed lookup, built once at package init the way the
 *		interleaver tables are (interleave.go), mapping the 48
 *		data symbol positions and 4 pilot positions to FFT bins.
 *		Subcarrier index k in [-26,26] maps to FFT bin k mod 64.
 *
 *------------------------------------------------------------------*/

// NullBins are the FFT bin indices carrying neither data nor pilots: DC
// (bin 0) and the unused edge subcarriers k in [-32,-27] and [27,31],
// which fall at bins 32..37 and 27..31 respectively (negative k wraps
// mod 64). The occupied subcarrier range is k in [-26,26]\{0}, which
// maps to exactly bins 1..26 and 38..63 - those are entirely data and
// pilot bins, not guard band.
var NullBins = [...]int{0, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37}

// PilotBins are the four FFT bin indices carrying pilot tones, in the
// fixed order the standard lists them and pilotValue pairs with them.
var PilotBins = [4]int{7, 21, 43, 57}

// dataBins is the 48 FFT bin indices carrying coded data, in ascending
// subcarrier-index order, built once at init from the bins that are
// neither null nor pilot.
var dataBins = buildDataBins()

func buildDataBins() [48]int {
	isReserved := make(map[int]bool, len(NullBins)+len(PilotBins))
	for _, b := range NullBins {
		isReserved[b] = true
	}
	for _, b := range PilotBins {
		isReserved[b] = true
	}

	var bins [48]int
	i := 0
	// Ascending subcarrier index order: -26..-1, 1..26, mapped k mod 64.
	for k := -26; k <= 26; k++ {
		if k == 0 {
			continue
		}
		bin := ((k % FFTSize) + FFTSize) % FFTSize
		if isReserved[bin] {
			continue
		}
		bins[i] = bin
		i++
	}
	return bins
}

// MapSymbol places 48 data constellation points and the 4 pilot tones
// (scaled by polarity) onto a 64-bin frequency-domain buffer, nulling
// every other bin. len(data) must be 48.
func MapSymbol(data []complex128, polarity float64) []complex128 {
	grid := make([]complex128, FFTSize)
	for i, bin := range dataBins {
		grid[bin] = data[i]
	}
	for i, bin := range PilotBins {
		grid[bin] = pilotValue[i] * complex(polarity, 0)
	}
	return grid
}

// ExtractDataBins reads the 48 data-carrying bins back out of a
// frequency-domain buffer, in the same ascending order MapSymbol used.
func ExtractDataBins(grid []complex128) []complex128 {
	out := make([]complex128, 48)
	for i, bin := range dataBins {
		out[i] = grid[bin]
	}
	return out
}

// ExtractPilotBins reads the 4 pilot-carrying bins back out of a
// frequency-domain buffer, in transmission order.
func ExtractPilotBins(grid []complex128) []complex128 {
	out := make([]complex128, 4)
	for i, bin := range PilotBins {
		out[i] = grid[bin]
	}
	return out
}
