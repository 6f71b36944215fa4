package phy

/*------------------------------------------------------------------
 *
 * Purpose:	Package-level logger for state transitions and decode
 *		failures in the frame synchronizer.
 *
 * Description:	Silent by default (discards everything), the way a
 *		library should be: a host application opts in with
 *		SetLogger if it wants to see SIGNAL decode failures go
 *		by, which are logged at debug level. Nothing else is
 *		logged.
 *
 *------------------------------------------------------------------*/

import (
	"io"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(io.Discard, log.Options{Prefix: "phy"})

// SetLogger redirects the package's diagnostic logging to w. Pass nil to
// silence it again.
func SetLogger(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	logger = log.NewWithOptions(w, log.Options{Prefix: "phy", Level: log.DebugLevel})
}
