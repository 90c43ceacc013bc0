//go:build windows

package main

import "os"

// shutdownSignals stop a conversion batch or drain the server.
// syscall.SIGTERM is not delivered on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
