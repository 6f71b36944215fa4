package phy

/*------------------------------------------------------------------
 *
 * Purpose:	Data whitening scrambler, polynomial x^7 + x^4 + 1.
 *
 * Description:	Same shape as the teacher's 9600-baud G3RUH descrambler
 *		(gen_tone.go / hdlc_rec.go's descramble()) and the IL2P
 *		scrambler (il2p_scramble.go): a shift register, one bit
 *		in, one bit out, XORed with two tapped stages. Unlike
 *		those two, this one is a free-running (additive)
 *		scrambler seeded once per frame rather than per-bit
 *		state threaded through a receiver - scramble and
 *		unscramble are the same operation.
 *
 *------------------------------------------------------------------*/

// Scramble XORs data with a length-127 keystream generated by a 7-bit
// LFSR (x^7 + x^4 + 1) initialized to seed, MSB-first per byte. seed must
// be nonzero and fit in 7 bits. Unscramble is the same call.
func Scramble(data []byte, seed byte) ([]byte, error) {
	if seed == 0 || seed&^0x7f != 0 {
		return nil, ErrBadSeed
	}
	return bitsToBytes(scrambleBitsSeeded(bytesToBits(data), seed)), nil
}

// scrambleBitsSeeded runs the keystream over an arbitrary-length bit
// array (one bit per byte, 0 or 1). Used internally by the packet codec,
// whose DATA field bit count is not always a multiple of 8.
func scrambleBitsSeeded(bits []byte, seed byte) []byte {
	out := make([]byte, len(bits))
	state := seed
	for i, bit := range bits {
		out[i] = scrambleBit(bit, &state)
	}
	return out
}

// scrambleBit advances the 7-bit LFSR by one step, independent of in, and
// returns in XORed with the keystream bit. The register evolution never
// depends on the data being scrambled, which is what makes Scramble its
// own inverse.
func scrambleBit(in byte, state *byte) byte {
	// Feedback taps at bit positions 3 and 6 (x^7 + x^4 + 1, 0-indexed).
	fb := ((*state >> 6) ^ (*state >> 3)) & 1
	*state = ((*state << 1) | fb) & 0x7f
	return in ^ fb
}
