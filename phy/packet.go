package phy

/*------------------------------------------------------------------
 *
 * Purpose:	High-level packet codec: SERVICE prefix, tail/pad,
 *		orchestration of scrambler + convolutional codec +
 *		interleaver.
 *
 * Description:	Plays the role the teacher's ax25_pad.go plays for
 *		AX.25 frames: one place that knows the full buffer
 *		layout (here SERVICE/DATA/tail/pad rather than AX.25's
 *		address/control/info/FCS) and drives the lower-level
 *		codecs in the right order.
 *
 *------------------------------------------------------------------*/

// ServiceBits is the width of the all-zero SERVICE prefix (802.11-2007
// 18.3.5.2). DecodeSoft checks that it descrambles to all zero bits,
// which is how the frame synchronizer recovers the seed: it is not
// carried anywhere else in the frame.
const ServiceBits = 16

// tailBits is the convolutional encoder's K-1 zero flush bits.
const tailBits = convK - 1

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// ComputeEncMsgLen returns the size, in bytes, of the encoded message
// produced by Encode for the given rate and payload length: nsym*ncbps/8.
func ComputeEncMsgLen(rate Rate, length int) (int, error) {
	params, err := lookupRate(rate)
	if err != nil {
		return 0, err
	}
	if length < 1 || length > 4095 {
		return 0, ErrBadLength
	}
	numerator := ServiceBits + 8*length + tailBits
	nsym := ceilDiv(numerator, params.ndbps)
	return nsym * params.ncbps / 8, nil
}

// frameSizing holds the derived per-frame sizes used by both Encode and
// Decode (and reused by the frame generator/synchronizer).
type frameSizing struct {
	params rateParams
	nsym   int
	ndata  int
	npad   int
}

func computeSizing(rate Rate, length int) (frameSizing, error) {
	params, err := lookupRate(rate)
	if err != nil {
		return frameSizing{}, err
	}
	if length < 1 || length > 4095 {
		return frameSizing{}, ErrBadLength
	}
	numerator := ServiceBits + 8*length + tailBits
	nsym := ceilDiv(numerator, params.ndbps)
	ndata := nsym * params.ndbps
	return frameSizing{params: params, nsym: nsym, ndata: ndata, npad: ndata - numerator}, nil
}

// Encode runs a payload through the full bit-level transmit pipeline:
// SERVICE+tail+pad framing, scrambling, K=7 convolutional encoding with
// puncturing, and per-symbol interleaving. Returns nsym*ncbps/8 bytes.
func Encode(rate Rate, seed byte, length int, payload []byte) ([]byte, error) {
	if seed == 0 || seed&^0x7f != 0 {
		return nil, ErrBadSeed
	}
	sizing, err := computeSizing(rate, length)
	if err != nil {
		return nil, err
	}
	if len(payload) != length {
		return nil, ErrBadPayload
	}

	decBits := make([]byte, 0, sizing.ndata)
	decBits = append(decBits, make([]byte, ServiceBits)...)
	decBits = append(decBits, bytesToBits(payload)...)
	decBits = append(decBits, make([]byte, tailBits)...)
	decBits = append(decBits, make([]byte, sizing.npad)...)

	scrambled := scrambleBitsSeeded(decBits, seed)

	// The tail bits must be zero going into the encoder so it flushes
	// to the all-zeros state; scrambling them (as part of the whole
	// buffer, per the standard) makes them nonzero, so clear them
	// again here.
	tailStart := ServiceBits + 8*length
	for i := 0; i < tailBits; i++ {
		scrambled[tailStart+i] = 0
	}

	encBits := ConvEncode(scrambled, sizing.params.code)

	out := make([]byte, 0, len(encBits))
	for s := 0; s < sizing.nsym; s++ {
		sym := encBits[s*sizing.params.ncbps : (s+1)*sizing.params.ncbps]
		out = append(out, Interleave(rate, sym)...)
	}

	return bitsToBytes(out), nil
}

// Decode is the exact inverse of Encode for a hard (already bit-sliced)
// encoded message of the same packing Encode returns. It is a thin
// wrapper over DecodeSoft for callers that have no soft-decision
// information, such as round-trip tests.
func Decode(rate Rate, seed byte, length int, encMsg []byte) ([]byte, error) {
	expectedLen, err := ComputeEncMsgLen(rate, length)
	if err != nil {
		return nil, err
	}
	if len(encMsg) != expectedLen {
		return nil, ErrBadPayload
	}
	return DecodeSoft(rate, seed, length, bytesToSoftBits(encMsg))
}

// DecodeSoft is the receive-side inverse of Encode, operating on
// soft-decision bits (one byte per coded bit, 0 confident-0, 255
// confident-1, 127 erasure) as recovered by the demodulator for one
// DATA field. This is what the frame synchronizer calls; Decode exists
// for callers that only have hard bits.
func DecodeSoft(rate Rate, seed byte, length int, soft []byte) ([]byte, error) {
	if seed == 0 || seed&^0x7f != 0 {
		return nil, ErrBadSeed
	}
	sizing, err := computeSizing(rate, length)
	if err != nil {
		return nil, err
	}
	if len(soft) != sizing.nsym*sizing.params.ncbps {
		return nil, ErrBadPayload
	}

	deinterleaved := make([]byte, 0, sizing.nsym*sizing.params.ncbps)
	for s := 0; s < sizing.nsym; s++ {
		symStart := s * sizing.params.ncbps
		sym := soft[symStart : symStart+sizing.params.ncbps]
		deinterleaved = append(deinterleaved, Deinterleave(rate, sym)...)
	}

	rawPerSym := rawBitsPerSym(sizing.params.ncbps, sizing.params.code)
	full := depuncture(deinterleaved, sizing.params.code, sizing.nsym*rawPerSym)
	scrambled := ViterbiDecode(full, sizing.ndata)

	decBits := scrambleBitsSeeded(scrambled, seed) // scrambler is self-inverse

	for _, b := range decBits[:ServiceBits] {
		if b != 0 {
			return nil, ErrServiceCheck
		}
	}

	payloadBits := decBits[ServiceBits : ServiceBits+8*length]
	return bitsToBytes(payloadBits), nil
}

// rawBitsPerSym returns the number of rate-1/2 (unpunctured) coded bits
// that one ncbps-bit punctured symbol was derived from.
func rawBitsPerSym(ncbps int, rate CodeRate) int {
	pat := punctureTables[rate]
	kept := 0
	for _, k := range pat.kept {
		if k {
			kept++
		}
	}
	return ncbps * len(pat.kept) / kept
}

// bytesToSoftBits unpacks hard bytes into soft-decision bits (0 or 255
// per bit, MSB-first), for callers decoding already hard-demodulated
// bits rather than true soft symbols from the synchronizer.
func bytesToSoftBits(data []byte) []byte {
	hard := bytesToBits(data)
	soft := make([]byte, len(hard))
	for i, b := range hard {
		if b != 0 {
			soft[i] = 255
		}
	}
	return soft
}
