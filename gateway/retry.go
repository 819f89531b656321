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
	"fmt"
	"strings"
	"time"

	"github.com/aynumosir/ainu-mcp-go/log"
)

// RetryConfig controls retries of transient backend failures.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt. Zero
	// disables retrying.
	MaxRetries int `yaml:"max_retries" json:"max_retries"`
	// InitialBackoff is the wait before the first retry.
	InitialBackoff time.Duration `yaml:"initial_backoff" json:"initial_backoff"`
	// BackoffFactor multiplies the wait after each retry.
	BackoffFactor float64 `yaml:"backoff_factor" json:"backoff_factor"`
	// MaxBackoff caps the wait.
	MaxBackoff time.Duration `yaml:"max_backoff" json:"max_backoff"`
}

// DefaultRetryConfig does not retry; callers opt in by raising MaxRetries.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:     0,
	InitialBackoff: 500 * time.Millisecond,
	BackoffFactor:  2.0,
	MaxBackoff:     8 * time.Second,
}

type retryGateway struct {
	Gateway
	cfg RetryConfig
}

// WithRetry retries g on transient transport failures.
func WithRetry(g Gateway, cfg RetryConfig) Gateway {
	if cfg.MaxRetries <= 0 {
		return g
	}
	if cfg.BackoffFactor < 1 {
		cfg.BackoffFactor = 1
	}
	return &retryGateway{Gateway: g, cfg: cfg}
}

func (r *retryGateway) Translate(ctx context.Context, prompt string, opts Options) ([]Generation, error) {
	var lastErr error
	backoff := r.cfg.InitialBackoff
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		gens, err := r.Gateway.Translate(ctx, prompt, opts)
		if err == nil {
			if attempt > 0 {
				log.Debugf("gateway call succeeded after %d attempts", attempt+1)
			}
			return gens, nil
		}
		if !isRetryableError(err) {
			return nil, err
		}
		lastErr = err
		if attempt >= r.cfg.MaxRetries {
			break
		}
		log.Debugf("gateway attempt %d/%d failed, retrying in %s: %v",
			attempt+1, r.cfg.MaxRetries+1, backoff, err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("cancelled during retry backoff: %w", ctx.Err())
		case <-timer.C:
		}
		backoff = time.Duration(float64(backoff) * r.cfg.BackoffFactor)
		if r.cfg.MaxBackoff > 0 && backoff > r.cfg.MaxBackoff {
			backoff = r.cfg.MaxBackoff
		}
	}
	log.Warnf("gateway retries exhausted after %d attempts: %v", r.cfg.MaxRetries+1, lastErr)
	return nil, lastErr
}

func (r *retryGateway) Probe(ctx context.Context) error { return Probe(ctx, r.Gateway) }

func (r *retryGateway) Close() error { return Close(r.Gateway) }

// isRetryableError reports whether err looks like a transient network or
// server side failure.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var st *StatusError
	if errors.As(err, &st) {
		return isRetryableStatus(st.StatusCode)
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "connection timeout") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "dial timeout") ||
		errStr == "eof" ||
		strings.HasSuffix(errStr, ": eof") {
		return true
	}
	return isHTTPStatusRetryable(errStr)
}

// isHTTPStatusRetryable matches status codes embedded in error text, for
// backends whose clients do not expose a typed status.
func isHTTPStatusRetryable(errStr string) bool {
	for _, code := range []string{"408", "429", "500", "502", "503", "504"} {
		if strings.Contains(errStr, "http "+code) ||
			strings.Contains(errStr, "status "+code) ||
			strings.Contains(errStr, "status: "+code) ||
			strings.Contains(errStr, "code: "+code) {
			return true
		}
	}
	return false
}

func isRetryableStatus(code int) bool {
	switch code {
	case 408, 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// StatusError is returned by HTTP backends for non-2xx answers.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}
