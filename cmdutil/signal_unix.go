// +build !windows

package cmdutil

import (
	"os"

	"golang.org/x/sys/unix"
)

var shutdownSignals = []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGQUIT}
