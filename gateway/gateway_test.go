//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package gateway

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aynumosir/ainu-mcp-go/cache/inmemory"
	"github.com/aynumosir/ainu-mcp-go/protocol"
)

func fixed(text string) Func {
	return func(context.Context, string, Options) ([]Generation, error) {
		return []Generation{{GeneratedText: text}}, nil
	}
}

type probeGateway struct {
	Func
	probed int
	closed int
	err    error
}

func (p *probeGateway) Probe(context.Context) error {
	p.probed++
	return p.err
}

func (p *probeGateway) Close() error {
	p.closed++
	return nil
}

func TestFirst(t *testing.T) {
	ctx := context.Background()

	text, err := First(ctx, fixed("iyairaikere"), "p", DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, "iyairaikere", text)

	empty := Func(func(context.Context, string, Options) ([]Generation, error) { return nil, nil })
	_, err = First(ctx, empty, "p", DefaultOptions)
	var tf *TranslationFailedError
	require.True(t, errors.As(err, &tf))
	assert.ErrorIs(t, err, ErrNoGeneration)
	assert.Equal(t, protocol.KindTranslationFailed, protocol.KindOf(err))

	boom := errors.New("boom")
	failing := Func(func(context.Context, string, Options) ([]Generation, error) { return nil, boom })
	_, err = First(ctx, failing, "p", DefaultOptions)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, protocol.KindTranslationFailed, protocol.KindOf(err))
}

func TestDefaultOptions(t *testing.T) {
	assert.Equal(t, 512, DefaultOptions.MaxLength)
	assert.False(t, DefaultOptions.DoSample)
}

func TestDecoratorsForwardProbeAndClose(t *testing.T) {
	inner := &probeGateway{Func: fixed("x")}
	g := WithTimeout(WithRetry(inner, RetryConfig{MaxRetries: 1}), time.Second)
	g = WithCache(g, inmemory.New(), "test")
	g, err := WithLimit(g, 2)
	require.NoError(t, err)

	require.NoError(t, Probe(context.Background(), g))
	require.NoError(t, Close(g))
	assert.Equal(t, 1, inner.probed)
	assert.Equal(t, 1, inner.closed)

	assert.NoError(t, Probe(context.Background(), fixed("x")))
	assert.NoError(t, Close(fixed("x")))
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"eof", errors.New("EOF"), true},
		{"eof in chain", errors.New("read body: EOF"), true},
		{"status 503 text", errors.New("status 503 service unavailable"), true},
		{"typed 429", &StatusError{StatusCode: 429}, true},
		{"typed 400", &StatusError{StatusCode: 400, Message: "bad input"}, false},
		{"port number", errors.New("listen on port 5001 failed"), false},
		{"canceled", context.Canceled, false},
		{"other", errors.New("model not found"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isRetryableError(tt.err))
		})
	}
}

func TestWithRetry(t *testing.T) {
	t.Run("disabled returns same gateway", func(t *testing.T) {
		g := fixed("x")
		_, ok := WithRetry(g, DefaultRetryConfig).(Func)
		assert.True(t, ok)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		var calls int32
		g := WithRetry(Func(func(context.Context, string, Options) ([]Generation, error) {
			if atomic.AddInt32(&calls, 1) < 3 {
				return nil, &StatusError{StatusCode: 503}
			}
			return []Generation{{GeneratedText: "ok"}}, nil
		}), RetryConfig{MaxRetries: 3, InitialBackoff: time.Millisecond, BackoffFactor: 2, MaxBackoff: 5 * time.Millisecond})

		gens, err := g.Translate(context.Background(), "p", DefaultOptions)
		require.NoError(t, err)
		assert.Equal(t, "ok", gens[0].GeneratedText)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("stops on permanent failure", func(t *testing.T) {
		var calls int32
		g := WithRetry(Func(func(context.Context, string, Options) ([]Generation, error) {
			atomic.AddInt32(&calls, 1)
			return nil, &StatusError{StatusCode: 401}
		}), RetryConfig{MaxRetries: 3, InitialBackoff: time.Millisecond})

		_, err := g.Translate(context.Background(), "p", DefaultOptions)
		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		g := WithRetry(Func(func(context.Context, string, Options) ([]Generation, error) {
			return nil, errors.New("connection reset by peer")
		}), RetryConfig{MaxRetries: 2, InitialBackoff: time.Millisecond})

		_, err := g.Translate(context.Background(), "p", DefaultOptions)
		assert.EqualError(t, err, "connection reset by peer")
	})

	t.Run("honors cancellation during backoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		g := WithRetry(Func(func(context.Context, string, Options) ([]Generation, error) {
			cancel()
			return nil, errors.New("i/o timeout")
		}), RetryConfig{MaxRetries: 2, InitialBackoff: time.Hour})

		_, err := g.Translate(ctx, "p", DefaultOptions)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWithLimit(t *testing.T) {
	t.Run("zero is unbounded", func(t *testing.T) {
		g, err := WithLimit(fixed("x"), 0)
		require.NoError(t, err)
		_, ok := g.(Func)
		assert.True(t, ok)
	})

	t.Run("bounds in-flight calls", func(t *testing.T) {
		var inFlight, peak int32
		release := make(chan struct{})
		inner := Func(func(context.Context, string, Options) ([]Generation, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			<-release
			atomic.AddInt32(&inFlight, -1)
			return []Generation{{GeneratedText: "ok"}}, nil
		})
		g, err := WithLimit(inner, 2)
		require.NoError(t, err)
		defer Close(g)

		var wg sync.WaitGroup
		for i := 0; i < 6; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				gens, err := g.Translate(context.Background(), "p", DefaultOptions)
				assert.NoError(t, err)
				assert.Equal(t, "ok", gens[0].GeneratedText)
			}()
		}
		require.Eventually(t, func() bool { return atomic.LoadInt32(&inFlight) == 2 },
			time.Second, time.Millisecond)
		close(release)
		wg.Wait()
		assert.Equal(t, int32(2), atomic.LoadInt32(&peak))
	})

	t.Run("waiting caller gives up on cancel", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		g, err := WithLimit(Func(func(context.Context, string, Options) ([]Generation, error) {
			<-release
			return nil, nil
		}), 1)
		require.NoError(t, err)

		go func() { _, _ = g.Translate(context.Background(), "busy", DefaultOptions) }()
		time.Sleep(10 * time.Millisecond)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = g.Translate(ctx, "p", DefaultOptions)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestWithLimitPanic(t *testing.T) {
	var calls int32
	g, err := WithLimit(Func(func(context.Context, string, Options) ([]Generation, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			panic("backend boom")
		}
		return []Generation{{GeneratedText: "ok"}}, nil
	}), 1)
	require.NoError(t, err)
	defer Close(g)

	returned := make(chan any, 1)
	go func() {
		defer func() { returned <- recover() }()
		_, _ = g.Translate(context.Background(), "p", DefaultOptions)
	}()
	select {
	case p := <-returned:
		assert.Equal(t, "backend boom", p)
	case <-time.After(2 * time.Second):
		t.Fatal("caller still blocked after backend panic")
	}

	// The slot is released for the next caller.
	gens, err := g.Translate(context.Background(), "p", DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, "ok", gens[0].GeneratedText)
}

func TestWithTimeout(t *testing.T) {
	slow := Func(func(ctx context.Context, _ string, _ Options) ([]Generation, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	_, err := WithTimeout(slow, 10*time.Millisecond).Translate(context.Background(), "p", DefaultOptions)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, ok := WithTimeout(slow, 0).(Func)
	assert.True(t, ok)
}

func TestWithCache(t *testing.T) {
	var calls int32
	inner := Func(func(_ context.Context, prompt string, _ Options) ([]Generation, error) {
		atomic.AddInt32(&calls, 1)
		return []Generation{{GeneratedText: "out:" + prompt}}, nil
	})
	g := WithCache(inner, inmemory.New(), "hf/model")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		gens, err := g.Translate(ctx, "a", DefaultOptions)
		require.NoError(t, err)
		assert.Equal(t, "out:a", gens[0].GeneratedText)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, err := g.Translate(ctx, "a", Options{MaxLength: 512, DoSample: true})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	_, err = g.Translate(ctx, "b", DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestWithCacheBypassesFailingCache(t *testing.T) {
	g := WithCache(fixed("x"), brokenCache{}, "s")
	gens, err := g.Translate(context.Background(), "p", DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, "x", gens[0].GeneratedText)
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("s", "p", DefaultOptions)
	assert.Equal(t, a, CacheKey("s", "p", DefaultOptions))
	assert.NotEqual(t, a, CacheKey("other", "p", DefaultOptions))
	assert.NotEqual(t, a, CacheKey("s", "p", Options{MaxLength: 64}))
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("down")
}
func (brokenCache) Set(context.Context, string, string) error { return errors.New("down") }
func (brokenCache) Close() error                              { return nil }
