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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/stackcheck/pkg/httpclient"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

func TestConsole_Emit(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	require.NoError(t, c.Emit(context.Background(), "header"))
	require.NoError(t, c.Emit(context.Background(), "line one\nline two"))
	assert.Equal(t, "header\nline one\nline two\n", buf.String())
	assert.Equal(t, "console", c.Describe().Type)
}

func TestConsole_ConcurrentLinesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Emit(context.Background(), strings.Repeat("x", 100))
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 20)
	for _, l := range lines {
		assert.Len(t, l, 100)
	}
}

func TestFile_Emit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checks.log")
	files := NewFiles()

	a, err := files.Factory(plugin.Settings{"path": path})
	require.NoError(t, err)
	b, err := files.Factory(plugin.Settings{"path": path})
	require.NoError(t, err)

	require.NoError(t, a.Emit(context.Background(), "first"))
	require.NoError(t, b.Emit(context.Background(), "second"))
	assert.Len(t, files.open, 1, "both loggers share one handle")
	require.NoError(t, files.Close())
	assert.Empty(t, files.open)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(content))

	// reopening appends
	require.NoError(t, a.Emit(context.Background(), "third"))
	require.NoError(t, files.Close())
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\nthird\n", string(content))
}

func TestFile_EmitErrors(t *testing.T) {
	files := NewFiles()
	defer files.Close()

	l, err := files.Factory(nil)
	require.NoError(t, err, "factory must accept nil settings")
	assert.Error(t, l.Emit(context.Background(), "x"))

	l, err = files.Factory(plugin.Settings{"path": filepath.Join(t.TempDir(), "missing", "x.log")})
	require.NoError(t, err)
	assert.Error(t, l.Emit(context.Background(), "x"))
}

func TestWebhook_Emit(t *testing.T) {
	var (
		mu       sync.Mutex
		received []map[string]string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		_ = json.Unmarshal(body, &payload)
		mu.Lock()
		received = append(received, payload)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	factory := WebhookFactory(httpclient.New())

	l, err := factory(plugin.Settings{"url": server.URL})
	require.NoError(t, err)
	require.NoError(t, l.Emit(context.Background(), "hello"))

	l, err = factory(plugin.Settings{"url": server.URL, "field": "content"})
	require.NoError(t, err)
	require.NoError(t, l.Emit(context.Background(), "world"))

	mu.Lock()
	assert.Equal(t, []map[string]string{{"text": "hello"}, {"content": "world"}}, received)
	mu.Unlock()

	l, err = factory(plugin.Settings{"url": server.URL + "/fail"})
	require.NoError(t, err)
	assert.ErrorContains(t, l.Emit(context.Background(), "x"), "502")

	l, err = WebhookFactory(nil)(nil)
	require.NoError(t, err)
	assert.Error(t, l.Emit(context.Background(), "x"))
}

func TestRedis_EmitList(t *testing.T) {
	mr := miniredis.RunT(t)
	pool := NewRedisClients()
	defer pool.Close()

	l, err := pool.Factory(plugin.Settings{"addr": mr.Addr(), "key": "checks"})
	require.NoError(t, err)
	require.NoError(t, l.Emit(context.Background(), "one"))
	require.NoError(t, l.Emit(context.Background(), "two"))

	items, err := mr.List("checks")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, items)
}

func TestRedis_EmitPublish(t *testing.T) {
	mr := miniredis.RunT(t)
	pool := NewRedisClients()
	defer pool.Close()

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	sub := client.Subscribe(ctx, "events")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	l, err := pool.Factory(plugin.Settings{"addr": mr.Addr(), "key": "events", "mode": RedisModePublish})
	require.NoError(t, err)
	require.NoError(t, l.Emit(ctx, "published"))

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, "published", msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published message")
	}
}

func TestRedis_FactoryErrors(t *testing.T) {
	pool := NewRedisClients()
	_, err := pool.Factory(plugin.Settings{"db": "x"})
	assert.Error(t, err)
	_, err = pool.Factory(plugin.Settings{"mode": "stream"})
	assert.Error(t, err)

	l, err := pool.Factory(nil)
	require.NoError(t, err)
	assert.Equal(t, "redis", l.Describe().Type)
}

func TestRedis_EmitUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	pool := NewRedisClients()
	defer pool.Close()
	l, err := pool.Factory(plugin.Settings{"addr": addr})
	require.NoError(t, err)
	assert.Error(t, l.Emit(context.Background(), "x"))
}
