package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpillora/overseer"

	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
)

// RestartSignal is what overseer sends the old process when a new binary takes over.
const RestartSignal = syscall.SIGUSR2

// Signals start a drain.
var Signals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
	syscall.SIGHUP,
	RestartSignal,
	overseer.SIGUSR1,
}

// SetupGracefulShutdown cancels the program context on the first signal. A
// second signal, or a drain that outlives grace, exits the process with
// status 1.
func SetupGracefulShutdown(cancel context.CancelFunc, grace time.Duration) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, Signals...)
	go watch(sigCh, cancel, grace, os.Exit)
}

func watch(sigCh <-chan os.Signal, cancel context.CancelFunc, grace time.Duration, exit func(int)) {
	sig := <-sigCh
	logger.Warnf("🔴 Received signal %v. Draining in-flight settlements...", sig)
	cancel()

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case sig = <-sigCh:
		logger.Errorf("❌ Received %v while draining, exiting now", sig)
	case <-timer.C:
		logger.Errorf("❌ Drain still running after %s, exiting now", grace)
	}
	exit(1)
}
