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

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"zombiezen.com/go/richtext"
	"zombiezen.com/go/richtext/format"
)

func newFormatCmd(opts *options) *cobra.Command {
	var maxDepth int
	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Convert a document to CommonMark",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-depth") {
				cfg.MaxDepth = maxDepth
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			doc, err := opts.readDocument(cmd, args)
			if err != nil {
				return err
			}
			if cfg.MaxDepth > 0 {
				if depth := doc.Depth(); depth > cfg.MaxDepth {
					return fmt.Errorf("format rich text: %w (depth %d exceeds %d)", richtext.ErrTooDeep, depth, cfg.MaxDepth)
				}
			}
			return opts.writeOutput(cmd, func(w io.Writer) error {
				return format.Format(w, doc)
			})
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum document nesting (0 for no limit; overrides config)")
	return cmd
}
