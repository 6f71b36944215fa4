package phy

/*------------------------------------------------------------------
 *
 * Purpose:	Frame synchronizer state machine: PLCP detection, timing/
 *		CFO/gain estimation, SIGNAL and DATA decode.
 *
 * Description:	A per-sample push-driven loop, the same shape as the
 *		teacher's HDLC bit-at-a-time receiver (hdlc_rec.go): one
 *		long-lived instance owns all its scratch state (window,
 *		NCO, channel gains). The state is a plain integer
 *		enumeration (syncState); processSample switches on it
 *		and calls one handler method per state, and per-state
 *		data lives in Synchronizer fields rather than in the
 *		state value.
 *		No internal threads; the caller drives Process with
 *		whatever sample chunking it has.
 *
 *------------------------------------------------------------------*/

import (
	"math"
	"math/cmplx"
)

type syncState int

const (
	stateSeekPLCP syncState = iota
	stateRxShort0
	stateRxShort1
	stateRxLong0
	stateRxLong1
	stateRxSignal
	stateRxData
)

// seekGain is the SEEK_PLCP channel-estimate scale factor sqrt(12)/64,
// pinned from the source's wlanframesync_execute_seekplcp.
const seekGain = 0.0541265877365274 // sqrt(12)/64

// sHatNorm divides the accumulated s_hat statistic before comparing it
// against DetectionThreshold, matching the source's normalization.
const sHatNorm = 10.0

// defaultDetectionThreshold is the SEEK_PLCP |s_hat|*energy trigger
// level. The source leaves this uncalibrated (design notes open
// question); this package calibrates it against its own noiseless
// derivation rather than the source's nominal 0.3, since this
// implementation's gain estimate (direct per-bin DFT correlation scaled
// by seekGain, rather than the source's running-correlator statistic)
// produces a metric on a different scale: for an ideal unity channel
// with no noise, every populated bin's gain estimate collapses to
// exactly seekGain, giving |s_hat|*energy = 10*seekGain^2/sHatNorm *
// 12*seekGain^2 ~= 1.03e-4 (ten adjacent bin pairs). DetectionThreshold is exposed so callers
// can retune it against real Annex G vectors, per the design notes.
const defaultDetectionThreshold = 1e-5

// seekPlcpBins are the 12 populated even subcarriers used for the
// coarse SEEK_PLCP channel estimate (802.11-2007 short-sequence bins).
var seekPlcpBins = [12]int{4, 8, 12, 16, 20, 24, 40, 44, 48, 52, 56, 60}

// Synchronizer is a long-lived receive-side state machine: feed it
// contiguous complex sample chunks via Process and it invokes the
// configured FrameCallback once per completed frame, in the exact
// temporal order frames complete in the input stream.
type Synchronizer struct {
	DetectionThreshold float64

	state  syncState
	window [80]complex128
	wLen   int // samples currently valid in window (up to 80)
	timer  int // samples since state entry

	nco    NCO
	tauHat float64

	g0a, g0b []complex128 // short-sequence per-bin gain estimates (len 64, sparse)
	gLong    []complex128 // long-sequence per-bin gain estimate (len 64)

	cfoFine float64
	cfoLong float64
	rssi    float64

	pilots *PilotSequence

	rate    Rate
	length  int
	params  rateParams
	sizing  frameSizing
	symIdx  int
	encSoft []byte

	shortBuf []complex128 // accumulation buffer for RX_SHORT0/1 (128 samples)
	longBuf  []complex128 // accumulation buffer for RX_LONG0/1 (128 samples)

	callback FrameCallback
}

// NewSynchronizer returns a Synchronizer in state SEEK_PLCP, ready to
// process an unbounded sample stream. cb is invoked once per completed
// frame.
func NewSynchronizer(cb FrameCallback) *Synchronizer {
	return &Synchronizer{
		DetectionThreshold: defaultDetectionThreshold,
		callback:           cb,
		pilots:             NewPilotSequence(),
	}
}

// Reset discards any partial-frame state and returns to SEEK_PLCP,
// without altering DetectionThreshold or the callback.
func (s *Synchronizer) Reset() {
	cb := s.callback
	thr := s.DetectionThreshold
	*s = Synchronizer{DetectionThreshold: thr, callback: cb, pilots: NewPilotSequence()}
}

// Process feeds a contiguous chunk of complex baseband samples through
// the state machine, invoking the callback for every frame that
// completes within (or spanning into) this call.
func (s *Synchronizer) Process(samples []complex128) {
	for _, x := range samples {
		s.processSample(x)
	}
}

func (s *Synchronizer) pushWindow(x complex128) {
	copy(s.window[:79], s.window[1:80])
	s.window[79] = x
	if s.wLen < 80 {
		s.wLen++
	}
}

func (s *Synchronizer) processSample(raw complex128) {
	x := raw
	if s.state != stateSeekPLCP {
		x = s.nco.MixDown(raw)
	}
	s.pushWindow(x)
	s.timer++

	switch s.state {
	case stateSeekPLCP:
		s.runSeekPLCP(x)
	case stateRxShort0, stateRxShort1:
		s.runRxShort(x)
	case stateRxLong0, stateRxLong1:
		s.runRxLong(x)
	case stateRxSignal:
		s.runRxSignal(x)
	case stateRxData:
		s.runRxData(x)
	}
}

func (s *Synchronizer) runSeekPLCP(_ complex128) {
	if s.timer%64 != 0 || s.wLen < 64 {
		return
	}
	last64 := s.window[16:80]

	gains := make(map[int]complex128, len(seekPlcpBins))
	var energy float64
	for _, bin := range seekPlcpBins {
		// Correlate the received samples against the known short
		// training tone at this bin via a length-64 DFT sum, scaled
		// by seekGain (sqrt(12)/64), the way the source estimates a
		// coarse per-bin channel gain before a full FFT is available.
		var acc complex128
		for n, xn := range last64 {
			theta := -2 * math.Pi * float64(bin) * float64(n) / float64(FFTSize)
			acc += xn * complex(math.Cos(theta), math.Sin(theta))
		}
		g := acc * complex(seekGain, 0) / shortFreqAt(bin)
		gains[bin] = g
		energy += cmplx.Abs(g) * cmplx.Abs(g)
	}

	var sHat complex128
	for _, bin := range seekPlcpBins {
		adjacent := bin + 4
		if adjacent > 60 {
			continue
		}
		if gAdj, ok := gains[adjacent]; ok {
			sHat += gAdj * cmplx.Conj(gains[bin])
		}
	}
	sHat /= complex(sHatNorm, 0)

	if cmplx.Abs(sHat)*energy > s.detectionThreshold() {
		s.tauHat = cmplx.Phase(sHat) * 32 / (2 * math.Pi)
		s.g0a = snapshotGains(gains)
		s.enterState(stateRxShort0)
	}
}

func (s *Synchronizer) detectionThreshold() float64 {
	if s.DetectionThreshold > 0 {
		return s.DetectionThreshold
	}
	return defaultDetectionThreshold
}

func (s *Synchronizer) runRxShort(_ complex128) {
	s.shortBuf = append(s.shortBuf, s.window[79])
	if len(s.shortBuf) < 64 {
		return
	}

	if s.state == stateRxShort0 {
		s.g0b = estimateGains(s.shortBuf[len(s.shortBuf)-64:], shortFreqAt)
		s.enterState(stateRxShort1)
		s.shortBuf = s.shortBuf[:0]
		return
	}

	// RX_SHORT1's 64-sample accumulation window runs 32 samples past
	// the end of the 160-sample short training field, into the long
	// preamble's own guard interval - that tail is long-symbol content,
	// not short-training content, so only the leading 32 samples (still
	// inside the short sequence, still an integer number of its 16-
	// sample periods) feed the gain estimate used for fine CFO.
	gains := estimateGains(s.shortBuf[:32], shortFreqAt)

	// Second window, compute fine CFO from the phase advance between
	// the two short-sequence gain snapshots.
	var acc complex128
	for bin, gb := range gains {
		if ga, ok := indexComplex(s.g0a, bin); ok {
			acc += gb * cmplx.Conj(ga)
		}
	}
	s.cfoFine = cmplx.Phase(acc) / 16
	s.nco.SetFrequency(s.cfoFine)
	s.enterState(stateRxLong0)
}

func (s *Synchronizer) runRxLong(_ complex128) {
	s.longBuf = append(s.longBuf, s.window[79])
	if len(s.longBuf) < 128 {
		return
	}

	half1 := s.longBuf[:64]
	half2 := s.longBuf[64:128]
	g1 := estimateFullGain(half1, longFreqAt)
	g2 := estimateFullGain(half2, longFreqAt)

	gLong := make([]complex128, FFTSize)
	for i := range gLong {
		gLong[i] = (g1[i] + g2[i]) / 2
	}
	s.gLong = gLong

	var acc complex128
	for i := range g1 {
		if g1[i] == 0 {
			continue
		}
		acc += g2[i] * cmplx.Conj(g1[i])
	}
	s.cfoLong = cmplx.Phase(acc) / 64
	s.nco.SetFrequency(s.nco.Freq + s.cfoLong)

	s.enterState(stateRxSignal)
	s.longBuf = s.longBuf[:0]
}

func (s *Synchronizer) runRxSignal(_ complex128) {
	if s.timer < SymbolLen {
		return
	}

	grid := StripCyclicPrefix(s.window[:])
	FFT64(grid)
	Equalize(grid, s.gLong)

	polarity := s.pilots.Next()
	cpe := TrackPilotPhase(grid, polarity)
	DerotatePilotPhase(grid, cpe)

	points := ExtractDataBins(grid)
	soft := DemodulateSoft(ModBPSK, points)
	deinterleaved := Deinterleave(Rate6, soft)
	raw := depuncture(deinterleaved, CodeRate1_2, len(deinterleaved))
	decoded := ViterbiDecode(raw, SignalBits)

	sig, err := UnpackSignal(decoded)
	if err != nil {
		logger.Debug("signal decode failed", "err", err)
		s.callbackInvalid()
		s.Reset()
		return
	}

	params, err := lookupRate(sig.Rate)
	if err != nil {
		s.callbackInvalid()
		s.Reset()
		return
	}

	sizing, err := computeSizing(sig.Rate, sig.Length)
	if err != nil {
		s.callbackInvalid()
		s.Reset()
		return
	}

	s.rate = sig.Rate
	s.length = sig.Length
	s.params = params
	s.sizing = sizing
	s.symIdx = 0
	s.encSoft = make([]byte, 0, sizing.nsym*params.ncbps)

	s.enterState(stateRxData)
}

func (s *Synchronizer) runRxData(_ complex128) {
	if s.timer < SymbolLen {
		return
	}

	grid := StripCyclicPrefix(s.window[:])
	FFT64(grid)
	Equalize(grid, s.gLong)

	polarity := s.pilots.Next()
	cpe := TrackPilotPhase(grid, polarity)
	DerotatePilotPhase(grid, cpe)

	points := ExtractDataBins(grid)
	soft := DemodulateSoft(s.params.mod, points)
	s.encSoft = append(s.encSoft, soft...)
	s.symIdx++
	s.timer = 0

	if s.symIdx < s.sizing.nsym {
		return
	}

	s.finishFrame()
}

func (s *Synchronizer) finishFrame() {
	seed, payload, ok := recoverSeedAndDecode(s.rate, s.length, s.encSoft)
	result := Result{
		Rate:    s.rate,
		Length:  s.length,
		Seed:    seed,
		Payload: payload,
		Valid:   ok,
		RSSI:    s.computeRSSI(),
		CFO:     s.cfoFine + s.cfoLong,
	}
	s.emit(result)
	s.Reset()
}

func (s *Synchronizer) computeRSSI() float64 {
	var energy float64
	for _, g := range s.gLong {
		energy += cmplx.Abs(g) * cmplx.Abs(g)
	}
	if energy <= 0 {
		return 0
	}
	return 10 * math.Log10(energy)
}

func (s *Synchronizer) callbackInvalid() {
	s.emit(Result{Rate: s.rate, Length: s.length, Valid: false})
}

func (s *Synchronizer) emit(r Result) {
	if s.callback != nil {
		s.callback(r)
	}
}

func (s *Synchronizer) enterState(next syncState) {
	s.state = next
	s.timer = 0
}

// recoverSeedAndDecode brute-forces the 127 possible nonzero 7-bit
// scrambler seeds, since the seed itself is not carried anywhere in the
// frame. DecodeSoft rejects every seed whose descrambled SERVICE field
// isn't all zero (ErrServiceCheck). The first seven keystream bits
// determine the seed, so at most one seed can descramble SERVICE to all
// zero: the seed accepted is the only one consistent with the decoded
// bits.
func recoverSeedAndDecode(rate Rate, length int, soft []byte) (byte, []byte, bool) {
	for seed := byte(1); seed < 0x80; seed++ {
		payload, err := DecodeSoft(rate, seed, length, soft)
		if err != nil {
			continue
		}
		return seed, payload, true
	}
	return 0, nil, false
}

// shortFreqAt returns the (unscaled-by-seekGain) frequency-domain value
// of the short training sequence at FFT bin.
func shortFreqAt(bin int) complex128 {
	for k := -26; k <= 26; k++ {
		if k == 0 {
			continue
		}
		if ((k%FFTSize)+FFTSize)%FFTSize == bin {
			return shortFreq[k+26]
		}
	}
	return 1
}

// longFreqAt returns the frequency-domain value of the long training
// sequence at FFT bin.
func longFreqAt(bin int) complex128 {
	for k := -26; k <= 26; k++ {
		if k == 0 {
			continue
		}
		if ((k%FFTSize)+FFTSize)%FFTSize == bin {
			return longFreq[k+26]
		}
	}
	return 1
}

// estimateGains computes a per-bin channel estimate over the 12
// populated short-training bins from one window (a whole number of the
// 16-sample short periods, 64 or 32 samples here) via direct DFT
// correlation (no FFT needed since only 12 of 64 bins matter).
func estimateGains(window []complex128, ref func(int) complex128) []complex128 {
	out := make([]complex128, FFTSize)
	for _, bin := range seekPlcpBins {
		var acc complex128
		for n, xn := range window {
			theta := -2 * math.Pi * float64(bin) * float64(n) / float64(FFTSize)
			acc += xn * complex(math.Cos(theta), math.Sin(theta))
		}
		out[bin] = acc / float64(len(window)) / ref(bin)
	}
	return out
}

// estimateFullGain computes a per-bin channel estimate over all 52
// occupied bins from one 64-sample long-training window via FFT.
func estimateFullGain(window []complex128, ref func(int) complex128) []complex128 {
	grid := make([]complex128, FFTSize)
	copy(grid, window)
	FFT64(grid)
	out := make([]complex128, FFTSize)
	for k := -26; k <= 26; k++ {
		if k == 0 {
			continue
		}
		bin := ((k % FFTSize) + FFTSize) % FFTSize
		r := ref(bin)
		if r == 0 {
			continue
		}
		out[bin] = grid[bin] / r
	}
	return out
}

func snapshotGains(m map[int]complex128) []complex128 {
	out := make([]complex128, FFTSize)
	for bin, g := range m {
		out[bin] = g
	}
	return out
}

func indexComplex(v []complex128, bin int) (complex128, bool) {
	if bin < 0 || bin >= len(v) {
		return 0, false
	}
	return v[bin], v[bin] != 0
}
