// +build windows

package cmdutil

import (
	"os"

	"golang.org/x/sys/windows"
)

// Windows delivers only os.Interrupt to Go programs; the rest are listed for parity.
var shutdownSignals = []os.Signal{windows.SIGINT, windows.SIGTERM, windows.SIGQUIT}
