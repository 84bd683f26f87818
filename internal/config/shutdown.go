package config

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

var isShuttingDown atomic.Bool

// StartListeningForShutdownSignal flips the shutdown flag on SIGINT/SIGTERM
// so that long-running workers can stop between iterations.
func StartListeningForShutdownSignal() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signals
		isShuttingDown.Store(true)
	}()
}

func IsShouldShutdown() bool {
	return isShuttingDown.Load()
}
