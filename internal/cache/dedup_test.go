package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_ConcurrentCallsShareOneFetch(t *testing.T) {
	d := NewDeduplicator()

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	fetch := func(ctx context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return "config", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 2)
	errs := make([]error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _, errs[0] = Do(context.Background(), d, "shop:s1", fetch)
	}()

	<-started

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _, errs[1] = Do(context.Background(), d, "shop:s1", fetch)
	}()

	// второй вызов должен успеть присоединиться к первому
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, "config", results[0])
	assert.Equal(t, "config", results[1])
}

func TestDo_ErrorPropagatesToAllWaiters(t *testing.T) {
	d := NewDeduplicator()
	fetchErr := errors.New("upstream down")

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	fetch := func(ctx context.Context) (int, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return 0, fetchErr
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, errs[0] = Do(context.Background(), d, "k", fetch)
	}()
	<-started
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, errs[1] = Do(context.Background(), d, "k", fetch)
	}()

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.ErrorIs(t, errs[0], fetchErr)
	assert.ErrorIs(t, errs[1], fetchErr)
}

func TestDo_KeyReleasedAfterSettlement(t *testing.T) {
	d := NewDeduplicator()
	var calls int32

	fetch := func(ctx context.Context) (int32, error) {
		return atomic.AddInt32(&calls, 1), nil
	}

	first, _, err := Do(context.Background(), d, "k", fetch)
	require.NoError(t, err)
	second, _, err := Do(context.Background(), d, "k", fetch)
	require.NoError(t, err)

	assert.Equal(t, int32(1), first)
	assert.Equal(t, int32(2), second)
}

func TestDo_KeyReleasedAfterFailure(t *testing.T) {
	d := NewDeduplicator()
	var calls int32

	_, _, err := Do(context.Background(), d, "k", func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", errors.New("boom")
	})
	require.Error(t, err)

	v, _, err := Do(context.Background(), d, "k", func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(2), calls)
}

func TestDo_CallerCancelDoesNotStopSharedFetch(t *testing.T) {
	d := NewDeduplicator()
	release := make(chan struct{})
	done := make(chan error, 1)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		_, _, err := Do(ctx, d, "k", func(fetchCtx context.Context) (string, error) {
			<-release
			done <- fetchCtx.Err()
			return "late", nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	close(release)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("shared fetch did not complete")
	}
}

func TestDo_DifferentKeysDoNotShare(t *testing.T) {
	d := NewDeduplicator()
	var calls int32

	fetch := func(ctx context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 1, nil
	}

	_, _, err := Do(context.Background(), d, "a", fetch)
	require.NoError(t, err)
	_, _, err = Do(context.Background(), d, "b", fetch)
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls)
}
