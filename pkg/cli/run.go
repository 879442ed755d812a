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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/stackcheck/pkg/builtin"
	"github.com/NVIDIA/stackcheck/pkg/config"
	"github.com/NVIDIA/stackcheck/pkg/defaults"
	"github.com/NVIDIA/stackcheck/pkg/engine"
	"github.com/NVIDIA/stackcheck/pkg/httpclient"
	"github.com/NVIDIA/stackcheck/pkg/serializer"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:                  "run",
		EnableShellCompletion: true,
		Usage:                 "Run the status checks defined in a configuration document",
		ArgsUsage:             "<config>",
		Description: `Load the configuration (YAML, JSON or TOML, local path or http(s) URL)
and run every item through gather, inspect, format and log.

Examples:
  stackcheck run checks.yaml
  stackcheck run --env prod.env --formatter friendly checks.yaml
  stackcheck run --logger file --report report.json --report-format json checks.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Path to a KEY=VALUE file exposed to gatherers",
				Sources: cli.EnvVars("STACKCHECK_ENV_FILE"),
			},
			&cli.StringFlag{
				Name:    "formatter",
				Usage:   "Default formatter for items that name none",
				Value:   defaults.FormatterType,
				Sources: cli.EnvVars("STACKCHECK_FORMATTER"),
			},
			&cli.StringFlag{
				Name:    "logger",
				Usage:   "Default logger for items that name none",
				Value:   defaults.LoggerType,
				Sources: cli.EnvVars("STACKCHECK_LOGGER"),
			},
			&cli.IntFlag{
				Name:    "parallelism",
				Usage:   "Maximum number of items checked at once (0 for no limit)",
				Sources: cli.EnvVars("STACKCHECK_PARALLELISM"),
			},
			&cli.FloatFlag{
				Name:    "http-rate",
				Usage:   "Maximum outgoing HTTP requests per second (0 for no limit)",
				Sources: cli.EnvVars("STACKCHECK_HTTP_RATE"),
			},
			&cli.StringFlag{
				Name:    "metrics-file",
				Usage:   "Write run metrics in Prometheus text format to this path",
				Sources: cli.EnvVars("STACKCHECK_METRICS_FILE"),
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write the run report to this path (- for stdout)",
			},
			&cli.StringFlag{
				Name:  "report-format",
				Usage: fmt.Sprintf("Report format (supported values: %s)", serializer.SupportedFormats()),
				Value: string(serializer.FormatYAML),
			},
			&cli.BoolFlag{
				Name:  "fail-on-mismatch",
				Usage: "Exit non-zero when any item fails or does not match",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseRunCmdOptions(cmd)
			if err != nil {
				return err
			}
			return runChecks(ctx, cmd, opts)
		},
	}
}

type runCmdOptions struct {
	configPath   string
	envPath      string
	formatter    string
	logger       string
	parallelism  int
	httpRate     float64
	metricsFile  string
	reportPath   string
	reportFormat serializer.Format
	failOnMiss   bool
}

func parseRunCmdOptions(cmd *cli.Command) (*runCmdOptions, error) {
	if cmd.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one configuration path, got %d arguments", cmd.NArg())
	}

	opts := &runCmdOptions{
		configPath:   cmd.Args().First(),
		envPath:      cmd.String("env"),
		formatter:    cmd.String("formatter"),
		logger:       cmd.String("logger"),
		parallelism:  cmd.Int("parallelism"),
		httpRate:     cmd.Float("http-rate"),
		metricsFile:  cmd.String("metrics-file"),
		reportPath:   cmd.String("report"),
		reportFormat: serializer.Format(cmd.String("report-format")),
		failOnMiss:   cmd.Bool("fail-on-mismatch"),
	}

	if opts.parallelism < 0 {
		return nil, fmt.Errorf("invalid parallelism %d: must be >= 0", opts.parallelism)
	}
	if opts.httpRate < 0 {
		return nil, fmt.Errorf("invalid http-rate %v: must be >= 0", opts.httpRate)
	}
	if opts.reportFormat.IsUnknown() || opts.reportFormat == serializer.FormatTOML {
		return nil, fmt.Errorf("unknown report format: %q", opts.reportFormat)
	}
	return opts, nil
}

func runChecks(ctx context.Context, cmd *cli.Command, opts *runCmdOptions) error {
	var env map[string]string
	if opts.envPath != "" {
		var err error
		env, err = config.LoadEnv(opts.envPath)
		if err != nil {
			return fmt.Errorf("failed to load environment from %q: %w", opts.envPath, err)
		}
	}

	clientOpts := []httpclient.Option{}
	if opts.httpRate > 0 {
		clientOpts = append(clientOpts, httpclient.WithRateLimit(opts.httpRate, 1))
	}
	client := httpclient.New(clientOpts...)

	cfg, err := config.Load(ctx, opts.configPath, config.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("failed to load configuration from %q: %w", opts.configPath, err)
	}

	plugins := builtin.New(
		builtin.WithHTTPClient(client),
		builtin.WithStdout(cmd.Root().Writer),
	)
	defer func() {
		if cerr := plugins.Close(); cerr != nil {
			slog.Warn("failed to release plugin resources", "error", cerr)
		}
	}()

	reg, err := plugins.Registry()
	if err != nil {
		return fmt.Errorf("failed to register plugins: %w", err)
	}

	report, err := engine.New(cfg,
		engine.WithRegistry(reg),
		engine.WithEnv(env),
		engine.WithParallelism(opts.parallelism),
		engine.WithDefaultFormatter(config.PluginSpec{Type: opts.formatter}),
		engine.WithDefaultLogger(config.PluginSpec{Type: opts.logger}),
	).Start(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if opts.metricsFile != "" {
		if err := engine.WriteMetrics(opts.metricsFile); err != nil {
			slog.Warn("failed to write metrics", "path", opts.metricsFile, "error", err)
		}
	}

	if opts.reportPath != "" {
		if err := writeReport(ctx, cmd, opts, report); err != nil {
			return err
		}
	}

	if opts.failOnMiss && !report.Passed() {
		return fmt.Errorf("%d of %d items failed or did not match",
			report.Summary.Failed+report.Summary.Mismatched, report.Summary.Total)
	}
	return nil
}

func writeReport(ctx context.Context, cmd *cli.Command, opts *runCmdOptions, report *engine.Report) error {
	var w *serializer.Writer
	if opts.reportPath == "-" {
		w = serializer.NewWriter(opts.reportFormat, cmd.Root().Writer)
	} else {
		w = serializer.NewFileWriterOrStdout(opts.reportFormat, opts.reportPath)
	}
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to close report writer", "error", err)
		}
	}()

	if err := w.Serialize(ctx, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
