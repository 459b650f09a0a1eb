// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache provides the Valkey (Redis-compatible) client and the
// shared counters built on it. Counters live in Valkey so that every
// server instance sees the same totals.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	addr := net.JoinHostPort(host, port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}

// incrWindow increments a counter and starts its expiry on the first hit,
// atomically, so a counter can never be left without a TTL.
var incrWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// WindowCounter counts events per key in fixed time windows.
type WindowCounter struct {
	client *redis.Client
	prefix string
}

// NewWindowCounter returns a counter whose keys are namespaced by prefix.
func NewWindowCounter(client *redis.Client, prefix string) *WindowCounter {
	return &WindowCounter{client: client, prefix: prefix}
}

// Incr records one event for key and returns the number of events in the
// current window. The window starts with the first event and expires
// after window has elapsed.
func (c *WindowCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := c.prefix + key
	n, err := incrWindow.Run(ctx, c.client, []string{k}, window.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("valkey incr %s: %w", k, err)
	}
	return n, nil
}
