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

// Package richtext renders rich text editor documents.
//
// A rich text document is a JSON tree of typed nodes
// (paragraphs, headings, lists, code blocks, and so on)
// whose leaves are text nodes annotated with marks like bold or link.
// [Parse] decodes such a tree into a [Document],
// [Render] converts it into a tree of [RenderedNode] elements,
// and [RenderHTML] serializes the elements as HTML.
//
// Every element the renderer produces can be replaced
// by supplying a [Component] for its tag in [Components].
package richtext
