// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logger

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/NVIDIA/stackcheck/pkg/defaults"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

const (
	defaultRedisAddr = "localhost:6379"
	defaultRedisKey  = "stackcheck"

	// RedisModeList appends messages to a list with RPUSH.
	RedisModeList = "list"
	// RedisModePublish publishes messages on a channel.
	RedisModePublish = "publish"
)

// RedisClients shares one client per address and database across every
// redis logger of a run.
type RedisClients struct {
	mu      sync.Mutex
	clients map[string]*redis.Client
}

// NewRedisClients creates an empty client pool.
func NewRedisClients() *RedisClients {
	return &RedisClients{clients: make(map[string]*redis.Client)}
}

// Factory creates redis loggers from the addr, password, db, key and mode
// settings.
func (rc *RedisClients) Factory(s plugin.Settings) (plugin.Logger, error) {
	db, err := strconv.Atoi(s.String("db", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid redis db: %w", err)
	}
	mode := s.String("mode", RedisModeList)
	if mode != RedisModeList && mode != RedisModePublish {
		return nil, fmt.Errorf("unknown redis mode %q", mode)
	}
	return &Redis{
		pool:     rc,
		addr:     s.String("addr", defaultRedisAddr),
		password: s.String("password", ""),
		db:       db,
		key:      s.String("key", defaultRedisKey),
		mode:     mode,
	}, nil
}

func (rc *RedisClients) get(addr, password string, db int) *redis.Client {
	id := addr + "/" + strconv.Itoa(db)

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if c, ok := rc.clients[id]; ok {
		return c
	}
	c := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  defaults.RedisDialTimeout,
		WriteTimeout: defaults.RedisWriteTimeout,
	})
	rc.clients[id] = c
	return c
}

// Close closes every pooled client.
func (rc *RedisClients) Close() error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	ids := make([]string, 0, len(rc.clients))
	for id := range rc.clients {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var first error
	for _, id := range ids {
		if err := rc.clients[id].Close(); err != nil && first == nil {
			first = err
		}
		delete(rc.clients, id)
	}
	return first
}

// Redis pushes each text onto a list or publishes it on a channel.
type Redis struct {
	pool     *RedisClients
	addr     string
	password string
	db       int
	key      string
	mode     string
}

// Describe implements plugin.Logger.
func (*Redis) Describe() plugin.Description {
	return plugin.Description{
		Type:     "redis",
		Summary:  "push to a Redis list or publish on a channel",
		Optional: []string{"addr", "password", "db", "key", "mode"},
	}
}

// Emit implements plugin.Logger.
func (r *Redis) Emit(ctx context.Context, text string) error {
	c := r.pool.get(r.addr, r.password, r.db)
	var err error
	if r.mode == RedisModePublish {
		err = c.Publish(ctx, r.key, text).Err()
	} else {
		err = c.RPush(ctx, r.key, text).Err()
	}
	if err != nil {
		return fmt.Errorf("redis %s to %s failed: %w", r.mode, r.key, err)
	}
	return nil
}
