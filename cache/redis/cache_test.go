//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr
}

func TestCacheGetSet(t *testing.T) {
	mr := setupTestRedis(t)
	c, err := New(WithURL("redis://" + mr.Addr()))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "iyairaikere"))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "iyairaikere", v)

	stored, err := mr.Get(DefaultPrefix + "k")
	require.NoError(t, err)
	assert.Equal(t, "iyairaikere", stored)
}

func TestCacheTTLAndPrefix(t *testing.T) {
	mr := setupTestRedis(t)
	c, err := New(WithURL("redis://"+mr.Addr()), WithPrefix("p:"), WithTTL(time.Minute))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", "v"))
	assert.Equal(t, time.Minute, mr.TTL("p:k"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheWithClientIsNotClosed(t *testing.T) {
	mr := setupTestRedis(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c, err := New(WithClient(client))
	require.NoError(t, err)
	require.NoError(t, c.Close())
	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewErrors(t *testing.T) {
	_, err := New()
	assert.Error(t, err)

	_, err = New(WithURL("://bad"))
	assert.Error(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()
	_, err = New(WithURL("redis://" + addr))
	assert.Error(t, err)
}
