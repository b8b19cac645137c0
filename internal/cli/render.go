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
	"io"

	"github.com/spf13/cobra"
	"zombiezen.com/go/richtext"
)

func newRenderCmd(opts *options) *cobra.Command {
	var maxDepth int
	var headingIDs bool
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document as HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-depth") {
				cfg.MaxDepth = maxDepth
			}
			if cmd.Flags().Changed("heading-ids") {
				cfg.HeadingIDs = headingIDs
			}
			r, err := cfg.Renderer()
			if err != nil {
				return err
			}
			doc, err := opts.readDocument(cmd, args)
			if err != nil {
				return err
			}
			nodes, err := r.Render(doc)
			if err != nil {
				return err
			}
			return opts.writeOutput(cmd, func(w io.Writer) error {
				if err := richtext.RenderHTML(w, nodes); err != nil {
					return err
				}
				_, err := io.WriteString(w, "\n")
				return err
			})
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum document nesting (0 for no limit; overrides config)")
	cmd.Flags().BoolVar(&headingIDs, "heading-ids", false, "add id attributes to headings (overrides config)")
	return cmd
}
