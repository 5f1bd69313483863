package lantern

import (
	"fmt"
	"os"
)

// globalDebug gates stderr diagnostics: dropped protocol lines, events
// referencing unknown drawables, rejected resizes. Off by default so a
// malformed producer cannot flood a release session's stderr.
var globalDebug bool

// SetDebugMode enables or disables debug diagnostics.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugf prints a diagnostic line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[lantern] "+format+"\n", args...)
}
