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
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// A Component renders a single element in place of a default tag.
//
// RenderComponent may return nil to omit the wrapping element,
// in which case the renderer uses the props' children directly.
type Component interface {
	RenderComponent(props Props) *RenderedNode
}

// ComponentFunc is a function that implements [Component].
type ComponentFunc func(props Props) *RenderedNode

// RenderComponent calls f(props).
func (f ComponentFunc) RenderComponent(props Props) *RenderedNode {
	return f(props)
}

// Props is the input to a [Component].
type Props struct {
	// Key is the position-based key for the element, like "p0".
	// It is derived from the default tag;
	// a component that renders a different tag may rekey the element
	// with the same position, as [Element] does.
	Key string
	// Tag is the default tag being rendered.
	Tag atom.Atom
	// Attrs holds the element's attributes.
	// Only link marks carry attributes by default.
	Attrs []html.Attribute
	// Language is the normalized language of a code block.
	// It is empty for any other tag.
	Language string
	// Children is the rendered content of the element.
	Children []*RenderedNode
}

// Components maps default tags to the components that replace them.
// Tags that are absent from the map or mapped to nil
// are rendered with [DefaultComponent].
type Components map[atom.Atom]Component

func (c Components) lookup(tag atom.Atom) Component {
	if comp := c[tag]; comp != nil {
		return comp
	}
	return DefaultComponent
}

// DefaultComponent renders props as an element with the props' tag.
// A code block's language is rendered as a "language" attribute.
var DefaultComponent Component = ComponentFunc(defaultElement)

func defaultElement(props Props) *RenderedNode {
	attrs := props.Attrs
	if props.Language != "" {
		attrs = append(attrs[:len(attrs):len(attrs)], html.Attribute{Key: "language", Val: props.Language})
	}
	return &RenderedNode{
		Kind:     ElementNode,
		Key:      props.Key,
		Tag:      props.Tag.String(),
		Attrs:    attrs,
		Children: props.Children,
	}
}

// Element is a [Component] that renders as an element with a different tag
// or with additional attributes.
type Element struct {
	// Tag is the tag name to render.
	// If empty, the default tag is used.
	Tag string
	// Attrs are added to the element's attributes.
	// A class attribute is appended to any existing class;
	// other attributes replace existing attributes with the same key.
	Attrs []html.Attribute
}

// RenderComponent renders the element.
// If the element has its own tag, the key uses that tag.
func (e *Element) RenderComponent(props Props) *RenderedNode {
	n := defaultElement(props)
	if e.Tag != "" {
		n.Tag = e.Tag
		if pos, ok := strings.CutPrefix(props.Key, props.Tag.String()); ok {
			n.Key = e.Tag + pos
		}
	}
	if len(e.Attrs) > 0 {
		n.Attrs = mergeAttrs(n.Attrs, e.Attrs)
	}
	return n
}

func mergeAttrs(base, extra []html.Attribute) []html.Attribute {
	merged := make([]html.Attribute, 0, len(base)+len(extra))
	merged = append(merged, base...)
extraLoop:
	for _, attr := range extra {
		for i := range merged {
			if merged[i].Namespace != attr.Namespace || !strings.EqualFold(merged[i].Key, attr.Key) {
				continue
			}
			if strings.EqualFold(attr.Key, "class") && merged[i].Val != "" {
				merged[i].Val += " " + attr.Val
			} else {
				merged[i].Val = attr.Val
			}
			continue extraLoop
		}
		merged = append(merged, attr)
	}
	return merged
}

// IsSubstitutableTag reports whether the renderer can substitute
// a [Component] for the given tag.
func IsSubstitutableTag(tag atom.Atom) bool {
	switch tag {
	case atom.Div, atom.P, atom.Blockquote,
		atom.H1, atom.H2, atom.H3, atom.H4,
		atom.Pre, atom.Ul, atom.Li, atom.Ol,
		atom.B, atom.I, atom.Code, atom.A:
		return true
	default:
		return false
	}
}
