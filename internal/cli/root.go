// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the richtext command.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"zombiezen.com/go/richtext"
	"zombiezen.com/go/richtext/internal/config"
)

// options holds the flags shared by every subcommand.
type options struct {
	configPath string
	outputPath string
	verbose    bool

	logger *slog.Logger
}

// NewRootCmd returns the richtext command with its subcommands.
func NewRootCmd() *cobra.Command {
	opts := new(options)
	root := &cobra.Command{
		Use:           "richtext",
		Short:         "Convert rich text JSON documents to HTML or Markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration `file`")
	root.PersistentFlags().StringVarP(&opts.outputPath, "output", "o", "", "write output to `file` instead of stdout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debugging information")

	root.AddCommand(newRenderCmd(opts), newFormatCmd(opts))
	return root
}

// Execute runs the richtext command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

func (opts *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.configPath != "" {
		opts.logger.Debug("loaded config", "path", opts.configPath, "components", len(cfg.Components))
	}
	return cfg, nil
}

// readDocument parses the document named by args, or standard input if args is empty.
func (opts *options) readDocument(cmd *cobra.Command, args []string) (richtext.Document, error) {
	name := "stdin"
	var r io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		name = args[0]
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	doc, err := richtext.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	opts.logger.Debug("read document", "source", name, "nodes", len(doc), "depth", doc.Depth())
	return doc, nil
}

// writeOutput calls write with the output file or standard output.
func (opts *options) writeOutput(cmd *cobra.Command, write func(w io.Writer) error) (err error) {
	if opts.outputPath == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(opts.outputPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("%s: %w", opts.outputPath, err)
	}
	opts.logger.Debug("wrote output", "path", opts.outputPath)
	return nil
}
