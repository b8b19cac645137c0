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

package richtext

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrTooDeep is returned by [Renderer.Render]
// when a document is nested deeper than [Renderer.MaxDepth].
var ErrTooDeep = errors.New("document nested too deeply")

// fragmentKeyPrefix is the key prefix of nodes rendered without an element.
const fragmentKeyPrefix = "rich-text-"

// A Renderer converts rich text documents into trees of [RenderedNode].
// A Renderer does not retain any state between calls to Render,
// so it is safe to call Render concurrently
// as long as the Renderer's fields are not modified.
//
// # Security considerations
//
// Link hrefs are passed through as-is.
// If documents come from untrusted sources,
// either set MaxDepth or bound the input size,
// and sanitize link destinations before rendering.
type Renderer struct {
	// Components replaces the default element for a tag.
	// See [IsSubstitutableTag] for the set of tags that are consulted.
	Components Components
	// MaxDepth is the maximum nesting depth of a document.
	// Top-level nodes are at depth 1.
	// If MaxDepth is zero or negative, no limit is enforced.
	MaxDepth int
	// If HeadingIDs is true, headings receive an id attribute
	// derived from their text with [Slug].
	// IDs are made unique within a single call to Render.
	HeadingIDs bool
}

// Render renders a document with the default options for [Renderer]
// and the given component substitutions, which may be nil.
func Render(doc Document, components Components) ([]*RenderedNode, error) {
	return (&Renderer{Components: components}).Render(doc)
}

// Render converts each node in the document to a [RenderedNode].
// The result has exactly one entry per top-level node, in document order.
// The only error Render returns wraps [ErrTooDeep].
func (r *Renderer) Render(doc Document) ([]*RenderedNode, error) {
	if r.MaxDepth > 0 {
		if depth := doc.Depth(); depth > r.MaxDepth {
			return nil, fmt.Errorf("render rich text: %w (depth %d exceeds %d)", ErrTooDeep, depth, r.MaxDepth)
		}
	}
	state := &renderState{Renderer: r}
	return state.nodes(doc), nil
}

type renderState struct {
	*Renderer
	ids map[string]bool
}

func (r *renderState) nodes(nodes []*Node) []*RenderedNode {
	out := make([]*RenderedNode, 0, len(nodes))
	for pos, n := range nodes {
		if n.Kind() == TextKind {
			out = append(out, r.text(n, pos))
		} else {
			out = append(out, r.block(n, pos))
		}
	}
	return out
}

// text renders a text node by wrapping its raw text in one element per mark.
// The first mark is the outermost element.
func (r *renderState) text(n *Node, pos int) *RenderedNode {
	result := &RenderedNode{
		Kind: TextNode,
		Key:  "text" + strconv.Itoa(pos),
		Text: n.Text(),
	}
	marks := n.Marks()
	for i := len(marks) - 1; i >= 0; i-- {
		mark := marks[i]
		tag := markTag(mark.Kind)
		if tag == 0 {
			continue
		}
		props := Props{
			Key:      tag.String() + strconv.Itoa(pos),
			Tag:      tag,
			Children: []*RenderedNode{result},
		}
		if mark.Kind == LinkMark && mark.Link != nil {
			props.Attrs = linkAttributes(mark.Link)
		}
		if wrapped := r.Components.lookup(tag).RenderComponent(props); wrapped != nil {
			result = wrapped
		}
	}
	return result
}

func (r *renderState) block(n *Node, pos int) *RenderedNode {
	var children []*RenderedNode
	props := Props{}
	switch {
	case n.Kind() == CodeBlockKind:
		props.Language = n.Language()
		if text, ok := n.CodeText(); ok {
			children = []*RenderedNode{{Kind: TextNode, Text: text}}
		}
	case n.HasContent():
		children = r.nodes(n.Content())
	}

	fragment := &RenderedNode{
		Kind:     FragmentNode,
		Key:      fragmentKeyPrefix + strconv.Itoa(pos),
		Children: children,
	}
	tag := blockTag(n)
	if tag == 0 {
		return fragment
	}
	props.Key = tag.String() + strconv.Itoa(pos)
	props.Tag = tag
	props.Children = children
	if r.HeadingIDs && n.Kind() == HeadingKind {
		props.Attrs = []html.Attribute{{Key: "id", Val: r.headingID(n)}}
	}
	rendered := r.Components.lookup(tag).RenderComponent(props)
	if rendered == nil {
		return fragment
	}
	return rendered
}

func (r *renderState) headingID(n *Node) string {
	base := Slug(n.PlainText())
	if base == "" {
		base = "heading"
	}
	if r.ids == nil {
		r.ids = make(map[string]bool)
	}
	id := base
	for i := 1; r.ids[id]; i++ {
		id = base + "-" + strconv.Itoa(i)
	}
	r.ids[id] = true
	return id
}

// blockTag returns the default element for a non-text node
// or 0 if the node is not rendered with an element.
func blockTag(n *Node) atom.Atom {
	switch n.Kind() {
	case DocKind:
		return atom.Div
	case ParagraphKind:
		return atom.P
	case BlockquoteKind:
		return atom.Blockquote
	case HeadingKind:
		switch n.Level() {
		case 1:
			return atom.H1
		case 2:
			return atom.H2
		case 3:
			return atom.H3
		case 4:
			return atom.H4
		default:
			return 0
		}
	case CodeBlockKind:
		return atom.Pre
	case BulletListKind:
		return atom.Ul
	case ListItemKind:
		return atom.Li
	case OrderedListKind:
		return atom.Ol
	default:
		return 0
	}
}

func markTag(kind MarkKind) atom.Atom {
	switch kind {
	case BoldMark:
		return atom.B
	case ItalicMark:
		return atom.I
	case CodeMark:
		return atom.Code
	case LinkMark:
		return atom.A
	default:
		return 0
	}
}

func linkAttributes(link *LinkAttrs) []html.Attribute {
	attrs := make([]html.Attribute, 0, 4)
	for _, attr := range [...]html.Attribute{
		{Key: "href", Val: link.Href},
		{Key: "rel", Val: link.Rel},
		{Key: "target", Val: link.Target},
		{Key: "class", Val: link.Class},
	} {
		if attr.Val != "" {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}
