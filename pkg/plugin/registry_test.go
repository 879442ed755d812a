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

package plugin

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/stackcheck/pkg/errors"
)

type stubGatherer struct{ name string }

func (g *stubGatherer) Describe() Description {
	return Description{Type: g.name, Summary: "stub", Inputs: []string{"url"}, Outputs: []string{"status", ErrorField}}
}

func (g *stubGatherer) Gather(context.Context, *GatherRequest) (Fields, error) {
	return Fields{"status": 200}, nil
}

type stubLogger struct{}

func (stubLogger) Describe() Description              { return Description{Summary: "stub logger"} }
func (stubLogger) Emit(context.Context, string) error { return nil }

func TestRegistry_RegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.IsEmpty())

	require.NoError(t, r.RegisterGatherer("http", Singleton[Gatherer](&stubGatherer{name: "http"})))
	g, err := r.Gatherer("http", nil)
	require.NoError(t, err)
	assert.Equal(t, "http", g.Describe().Type)

	// last write wins
	require.NoError(t, r.RegisterGatherer("http", Singleton[Gatherer](&stubGatherer{name: "override"})))
	g, err = r.Gatherer("http", nil)
	require.NoError(t, err)
	assert.Equal(t, "override", g.Describe().Type)
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_UnknownPlugin(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		category Category
		resolve  func() error
	}{
		{CategoryGatherer, func() error { _, err := r.Gatherer("nonexistent", nil); return err }},
		{CategoryInspector, func() error { _, err := r.Inspector("nonexistent", nil); return err }},
		{CategoryFormatter, func() error { _, err := r.Formatter("nonexistent", nil); return err }},
		{CategoryLogger, func() error { _, err := r.Logger("nonexistent", nil); return err }},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			err := tt.resolve()
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeUnknownPlugin, errors.CodeOf(err))

			var se *errors.StructuredError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, string(tt.category), se.Context["category"])
			assert.Equal(t, "nonexistent", se.Context["type"])
		})
	}
}

func TestRegistry_FactoryError(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterLogger("broken", func(Settings) (Logger, error) {
		return nil, fmt.Errorf("missing address")
	}))

	_, err := r.Logger("broken", nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "missing address")

	descs := r.Describe(CategoryLogger)
	require.Len(t, descs, 1)
	assert.Equal(t, "broken", descs[0].Type)
	assert.Contains(t, descs[0].Summary, "unavailable")
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.RegisterGatherer("", Singleton[Gatherer](&stubGatherer{})))
	assert.Error(t, r.RegisterGatherer("x", nil))
}

func TestRegistry_Freeze(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterLogger("console", Singleton[Logger](stubLogger{})))
	r.Freeze()
	assert.True(t, r.Frozen())

	err := r.RegisterLogger("other", Singleton[Logger](stubLogger{}))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRegistryFrozen))

	// resolution keeps working
	_, err = r.Logger("console", nil)
	assert.NoError(t, err)
}

func TestRegistry_TypesAndDescribe(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterGatherer("grep", Singleton[Gatherer](&stubGatherer{name: "grep"})))
	require.NoError(t, r.RegisterGatherer("command", Singleton[Gatherer](&stubGatherer{name: "command"})))
	require.NoError(t, r.RegisterGatherer("alias", Singleton[Gatherer](&stubGatherer{name: "command"})))

	assert.Equal(t, []string{"alias", "command", "grep"}, r.Types(CategoryGatherer))
	assert.Empty(t, r.Types(CategoryInspector))
	assert.Nil(t, r.Types(Category("bogus")))

	descs := r.Describe(CategoryGatherer)
	require.Len(t, descs, 3)
	assert.Equal(t, "alias", descs[0].Type, "registered key wins over declared type")
	assert.Equal(t, []string{"url"}, descs[0].Inputs)
}

func TestRegistry_ConcurrentResolve(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterGatherer("http", Singleton[Gatherer](&stubGatherer{name: "http"})))
	r.Freeze()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Gatherer("http", nil); err != nil {
				t.Errorf("resolve failed: %v", err)
			}
		}()
	}
	wg.Wait()
}
