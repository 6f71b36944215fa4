package phy

/*------------------------------------------------------------------
 *
 * Purpose:	Transmit-side configuration: the only parameters a
 *		caller supplies per frame.
 *
 * Description:	Small validated struct, same shape as the teacher's
 *		config.go structs (e.g. struct audio_s): plain data with
 *		a Validate method rather than a constructor that can
 *		silently clamp bad input.
 *
 *------------------------------------------------------------------*/

// Config is the transmit-side per-frame configuration: rate, scrambler
// seed, and length are supplied by the caller; the receiver instead
// reads rate and length from the SIGNAL field and recovers the seed from
// the all-zero SERVICE field.
type Config struct {
	Rate   Rate
	Seed   byte
	Length int
}

// Validate checks that c's fields are within range, returning the same
// sentinel errors Encode itself would return.
func (c Config) Validate() error {
	if !c.Rate.Valid() {
		return ErrBadRate
	}
	if c.Seed == 0 || c.Seed&^0x7f != 0 {
		return ErrBadSeed
	}
	if c.Length < 1 || c.Length > 4095 {
		return ErrBadLength
	}
	return nil
}
