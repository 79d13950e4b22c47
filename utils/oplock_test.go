package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpLockTimeoutReportsContention(t *testing.T) {
	release := OpLockedWait("op:contended")
	_, ok := OpLockTimeout("op:contended", 50*time.Millisecond)
	assert.False(t, ok)

	release()
	done, ok := OpLockTimeout("op:contended", 50*time.Millisecond)
	require.True(t, ok)
	done()
}

func TestOpLockedWaitBlocksUntilRelease(t *testing.T) {
	release := OpLockedWait("op:wait")
	acquired := make(chan func(), 1)
	go func() { acquired <- OpLockedWait("op:wait") }()

	select {
	case <-acquired:
		t.Fatal("second acquire succeeded while the lock was held")
	case <-time.After(100 * time.Millisecond):
	}

	release()
	select {
	case done := <-acquired:
		done()
	case <-time.After(time.Second):
		t.Fatal("lock never handed over after release")
	}
}
