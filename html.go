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
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderedKind is an enumeration of [RenderedNode] types.
type RenderedKind uint8

const (
	// ElementNode is an element with a tag, attributes, and children.
	ElementNode RenderedKind = 1 + iota
	// TextNode is a run of raw, unescaped text.
	TextNode
	// FragmentNode is a sequence of children without a wrapping element.
	// The renderer produces fragments for nodes whose type has no element.
	FragmentNode
)

// A RenderedNode is an element of the renderer's output tree.
type RenderedNode struct {
	Kind RenderedKind
	// Key is a position-based identifier
	// that is unique among the node's siblings.
	// It is intended to help consumers reconcile re-renders
	// and has no meaning in the document.
	Key string
	// Tag is the element's tag name.
	Tag   string
	Attrs []html.Attribute
	// Text is the content of a text node.
	Text     string
	Children []*RenderedNode
}

// Attr returns the value of the attribute with the given key.
func (n *RenderedNode) Attr(key string) (val string, ok bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attrs {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// PlainText returns the concatenated text of the node's descendants.
func (n *RenderedNode) PlainText() string {
	sb := new(strings.Builder)
	n.appendText(sb)
	return sb.String()
}

func (n *RenderedNode) appendText(sb *strings.Builder) {
	if n == nil {
		return
	}
	if n.Kind == TextNode {
		sb.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.appendText(sb)
	}
}

// HTMLNodes converts rendered nodes to HTML nodes.
// Fragments are replaced by their children.
func HTMLNodes(nodes []*RenderedNode) []*html.Node {
	var dst []*html.Node
	for _, n := range nodes {
		dst = n.appendHTML(dst)
	}
	return dst
}

func (n *RenderedNode) appendHTML(dst []*html.Node) []*html.Node {
	if n == nil {
		return dst
	}
	switch n.Kind {
	case TextNode:
		return append(dst, &html.Node{
			Type: html.TextNode,
			Data: n.Text,
		})
	case ElementNode:
		elem := &html.Node{
			Type:     html.ElementNode,
			Data:     n.Tag,
			DataAtom: atom.Lookup([]byte(n.Tag)),
			Attr:     n.Attrs,
		}
		for _, c := range HTMLNodes(n.Children) {
			elem.AppendChild(c)
		}
		return append(dst, elem)
	default:
		for _, c := range n.Children {
			dst = c.appendHTML(dst)
		}
		return dst
	}
}

// RenderHTML writes the given rendered nodes to w as HTML.
// It will return the first error encountered, if any.
func RenderHTML(w io.Writer, nodes []*RenderedNode) error {
	for _, n := range HTMLNodes(nodes) {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("render rich text to html: %w", err)
		}
	}
	return nil
}
