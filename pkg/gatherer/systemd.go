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

package gatherer

import (
	"context"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/NVIDIA/stackcheck/pkg/errors"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// UnitConn is the part of a systemd D-Bus connection the gatherer uses.
type UnitConn interface {
	GetUnitPropertiesContext(ctx context.Context, unit string) (map[string]any, error)
	Close()
}

// Dialer opens a connection to systemd.
type Dialer func(ctx context.Context) (UnitConn, error)

// DialSystemd connects to the system bus.
func DialSystemd(ctx context.Context) (UnitConn, error) {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

var unitProperties = map[string]string{
	"ActiveState":   "active_state",
	"SubState":      "sub_state",
	"LoadState":     "load_state",
	"UnitFileState": "unit_file_state",
	"Description":   "description",
}

// Systemd reports the state of a systemd unit.
type Systemd struct {
	dial Dialer
}

// NewSystemd creates a systemd gatherer. A nil dial uses DialSystemd.
func NewSystemd(dial Dialer) *Systemd {
	if dial == nil {
		dial = DialSystemd
	}
	return &Systemd{dial: dial}
}

// Describe implements plugin.Gatherer.
func (*Systemd) Describe() plugin.Description {
	return plugin.Description{
		Type:    "systemd",
		Summary: "read the state of a systemd unit over D-Bus",
		Inputs:  []string{"unit"},
		Outputs: []string{"active_state", "sub_state", "load_state", "unit_file_state", "description", plugin.ErrorField},
	}
}

// Gather implements plugin.Gatherer.
func (g *Systemd) Gather(ctx context.Context, req *plugin.GatherRequest) (plugin.Fields, error) {
	unit := req.Expanded("unit")
	if !strings.Contains(unit, ".") {
		unit += ".service"
	}

	conn, err := g.dial(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGatherFailed, "failed to connect to systemd", err)
	}
	defer conn.Close()

	props, err := conn.GetUnitPropertiesContext(ctx, unit)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeGatherFailed,
			"failed to get unit properties", err, map[string]any{"unit": unit})
	}

	fields := plugin.Fields{}
	for prop, key := range unitProperties {
		if v, ok := props[prop]; ok {
			fields[key] = plugin.Stringify(v)
		}
	}
	return fields, nil
}
