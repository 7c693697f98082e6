package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestKeyedLockerExcludesSameKey(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewKeyedLocker()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		holders int
		peak    int
	)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "campaign:1")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			holders++
			peak = max(peak, holders)
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			holders--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, peak)
	assert.Zero(t, l.Len())
}

func TestKeyedLockerIndependentKeys(t *testing.T) {
	l := NewKeyedLocker()
	unlockA, err := l.Lock(context.Background(), "campaign:1:A")
	require.NoError(t, err)
	unlockB, err := l.Lock(context.Background(), "campaign:1:B")
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())

	unlockA()
	unlockA()
	unlockB()
	assert.Zero(t, l.Len())
}

func TestKeyedLockerHonoursContext(t *testing.T) {
	l := NewKeyedLocker()
	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, l.Len())
}
