package graceful

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCancelsOnFirstSignal(t *testing.T) {
	sigCh := make(chan os.Signal, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	exited := make(chan int, 1)

	go watch(sigCh, cancel, time.Hour, func(code int) { exited <- code })
	sigCh <- syscall.SIGTERM

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled")
	}
	assert.Empty(t, exited, "one signal only drains")

	sigCh <- os.Interrupt
	select {
	case code := <-exited:
		assert.Equal(t, 1, code)
	case <-time.After(time.Second):
		t.Fatal("second signal did not force exit")
	}
}

func TestWatchExitsWhenDrainOverruns(t *testing.T) {
	sigCh := make(chan os.Signal, 1)
	_, cancel := context.WithCancel(context.Background())
	defer cancel()
	exited := make(chan int, 1)

	go watch(sigCh, cancel, 20*time.Millisecond, func(code int) { exited <- code })
	sigCh <- RestartSignal

	require.Eventually(t, func() bool { return len(exited) == 1 }, time.Second, 5*time.Millisecond)
}
