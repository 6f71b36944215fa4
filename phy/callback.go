package phy

/*------------------------------------------------------------------
 *
 * Purpose:	Frame-complete callback type and result payload.
 *
 * Description:	The synchronizer's only output channel: it is a pure
 *		push-driven function (see Synchronizer.Process) that
 *		invokes a caller-supplied callback once per completed
 *		frame, in temporal order, from its own call stack. No
 *		queue, no goroutine - the same synchronous callback shape
 *		the teacher's audio stream handlers use for decoded
 *		frames.
 *
 *------------------------------------------------------------------*/

// Result is delivered to a FrameCallback once a frame's DATA field has
// been fully received (or has failed past SIGNAL).
type Result struct {
	Rate    Rate
	Length  int
	Seed    byte
	Payload []byte
	Valid   bool
	RSSI    float64 // dB
	CFO     float64 // radians/sample
}

// FrameCallback receives one Result per completed frame, called
// synchronously from within Synchronizer.Process.
type FrameCallback func(Result)
