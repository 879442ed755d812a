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

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/stackcheck/pkg/builtin"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
	"github.com/NVIDIA/stackcheck/pkg/serializer"
)

const infoAll = "all"

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:                  "info",
		EnableShellCompletion: true,
		Usage:                 "Describe the available plugins",
		ArgsUsage:             "[gatherers|inspectors|formatters|loggers|all]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   "Output format (json, yaml, table)",
				Value:   string(serializer.FormatTable),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			categories, err := parseCategories(cmd.Args().First())
			if err != nil {
				return err
			}

			reg, err := builtin.NewRegistry()
			if err != nil {
				return fmt.Errorf("failed to register plugins: %w", err)
			}

			return serializer.NewWriter(outFormat, cmd.Root().Writer).
				Serialize(ctx, buildCatalog(reg, categories))
		},
	}
}

// parseOutputFormat reads the format flag and accepts only the output
// formats.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() || f == serializer.FormatTOML {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

// parseCategories maps the info argument to plugin categories. The plural
// and singular forms are both accepted.
func parseCategories(arg string) ([]plugin.Category, error) {
	arg = strings.ToLower(strings.TrimSpace(arg))
	if arg == "" || arg == infoAll {
		return plugin.Categories(), nil
	}
	for _, c := range plugin.Categories() {
		if arg == string(c) || arg == string(c)+"s" {
			return []plugin.Category{c}, nil
		}
	}
	return nil, fmt.Errorf("unknown plugin category %q (supported values: gatherers, inspectors, formatters, loggers, all)", arg)
}

type catalogEntry struct {
	Category           plugin.Category `json:"category" yaml:"category"`
	plugin.Description `yaml:",inline"`
}

// catalog lists plugin descriptions and renders as a table.
type catalog []catalogEntry

func buildCatalog(reg *plugin.Registry, categories []plugin.Category) catalog {
	var out catalog
	for _, c := range categories {
		for _, d := range reg.Describe(c) {
			out = append(out, catalogEntry{Category: c, Description: d})
		}
	}
	return out
}

func (catalog) TableHeader() []string {
	return []string{"CATEGORY", "TYPE", "INPUTS", "OPTIONAL", "OUTPUTS", "SUMMARY"}
}

func (c catalog) TableRows() [][]string {
	rows := make([][]string, 0, len(c))
	for _, e := range c {
		rows = append(rows, []string{
			string(e.Category),
			e.Type,
			strings.Join(e.Inputs, ","),
			strings.Join(e.Optional, ","),
			strings.Join(e.Outputs, ","),
			e.Summary,
		})
	}
	return rows
}
