package phy

/*------------------------------------------------------------------
 *
 * Purpose:	Frame generator: emits the deterministic sequence of
 *		80-sample buffers (S0a, S0b, S1a, S1b, SIGNAL, DATA x nsym)
 *		that make up one complete transmitted frame.
 *
 * Description:	Stateful, one instance per transmission configuration,
 *		the same lifecycle the teacher gives its AFSK frame
 *		generator (gen_tone.go's tone-then-flag-then-data framing):
 *		construct once from a Config, then drain it symbol by
 *		symbol until idle. Adjacent symbol buffers are smoothed
 *		at their shared boundary with the raised-cosine overlap
 *		window (window.go) before being handed to the caller.
 *
 *------------------------------------------------------------------*/

// FrameGenerator emits one complete 802.11a/g frame as a sequence of
// 80-sample complex buffers, windowed at each symbol boundary.
type FrameGenerator struct {
	symbols [][]complex128
	pos     int
}

// NewFrameGenerator builds a generator for one (rate, seed, length,
// payload) frame, pre-computing every symbol. The preamble (S0+S1, 320
// samples split into four 80-sample quarters), one SIGNAL symbol, and
// nsym DATA symbols are produced up front so Next has no allocation.
func NewFrameGenerator(cfg Config, payload []byte) (*FrameGenerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(payload) != cfg.Length {
		return nil, ErrBadPayload
	}

	params, err := lookupRate(cfg.Rate)
	if err != nil {
		return nil, err
	}

	symbols := make([][]complex128, 0, 4+1+64)

	short := ShortTrainingSequence() // 160 samples, no cyclic prefix needed
	long := LongTrainingSequence()   // 160 samples, includes its own guard
	symbols = append(symbols,
		short[0:80], short[80:160],
		long[0:80], long[80:160],
	)

	sigDecBits, err := PackSignal(cfg.Rate, cfg.Length)
	if err != nil {
		return nil, err
	}
	sigEncBits := ConvEncode(sigDecBits, CodeRate1_2)
	sigIntBits := Interleave(Rate6, sigEncBits)
	pilots := NewPilotSequence()
	symbols = append(symbols, ModulateSymbol(ModBPSK, sigIntBits, pilots.Next()))

	encoded, err := Encode(cfg.Rate, cfg.Seed, cfg.Length, payload)
	if err != nil {
		return nil, err
	}
	sizing, _ := computeSizing(cfg.Rate, cfg.Length)
	encBits := bytesToBits(encoded)
	for s := 0; s < sizing.nsym; s++ {
		sym := encBits[s*params.ncbps : (s+1)*params.ncbps]
		symbols = append(symbols, ModulateSymbol(params.mod, sym, pilots.Next()))
	}

	for i := 1; i < len(symbols); i++ {
		ApplyOverlap(symbols[i-1], symbols[i], DefaultWindowLength)
	}

	return &FrameGenerator{symbols: symbols}, nil
}

// Next returns the next 80-sample symbol buffer, or nil, false once the
// generator is idle (all symbols emitted).
func (g *FrameGenerator) Next() ([]complex128, bool) {
	if g.pos >= len(g.symbols) {
		return nil, false
	}
	sym := g.symbols[g.pos]
	g.pos++
	return sym, true
}

// Remaining reports how many symbol buffers are left to emit.
func (g *FrameGenerator) Remaining() int {
	return len(g.symbols) - g.pos
}

// GenerateFrame drains a FrameGenerator into one flat sample buffer,
// for callers that want the whole frame at once rather than symbol by
// symbol. Sample count equals 320 + 80 + 80*nsym (invariant 7).
func GenerateFrame(cfg Config, payload []byte) ([]complex128, error) {
	gen, err := NewFrameGenerator(cfg, payload)
	if err != nil {
		return nil, err
	}
	out := make([]complex128, 0, len(gen.symbols)*SymbolLen)
	for {
		sym, ok := gen.Next()
		if !ok {
			break
		}
		out = append(out, sym...)
	}
	return out, nil
}
