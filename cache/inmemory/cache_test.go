//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	c := New()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "iyairaikere"))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "iyairaikere", v)

	require.NoError(t, c.Set(ctx, "k", "updated"))
	v, _, _ = c.Get(ctx, "k")
	assert.Equal(t, "updated", v)
	assert.Equal(t, 1, c.Len())
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := New(WithSize(2))

	require.NoError(t, c.Set(ctx, "a", "1"))
	require.NoError(t, c.Set(ctx, "b", "2"))
	_, _, _ = c.Get(ctx, "a")
	require.NoError(t, c.Set(ctx, "c", "3"))

	_, ok, _ := c.Get(ctx, "b")
	assert.False(t, ok, "b should be evicted")
	_, ok, _ = c.Get(ctx, "a")
	assert.True(t, ok)
	_, ok, _ = c.Get(ctx, "c")
	assert.True(t, ok)
}

func TestTTL(t *testing.T) {
	ctx := context.Background()
	c := New(WithTTL(50 * time.Millisecond))

	require.NoError(t, c.Set(ctx, "k", "v"))
	_, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)

	require.Eventually(t, func() bool {
		_, ok, _ := c.Get(ctx, "k")
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return c.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestZeroTTLKeepsEntries(t *testing.T) {
	ctx := context.Background()
	c := New(WithTTL(0), WithSize(-1))
	require.NoError(t, c.Set(ctx, "k", "v"))
	time.Sleep(20 * time.Millisecond)
	v, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, DefaultSize, c.size)
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	c := New()
	require.NoError(t, c.Set(ctx, "k", "v"))
	require.NoError(t, c.Close())
	assert.Equal(t, 0, c.Len())
}
