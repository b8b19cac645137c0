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

// Package normhtml provides a function for normalizing HTML
// so that rendered rich text can be compared in tests
// without regard to attribute order, entity spelling,
// or whitespace between block elements.
package normhtml

import (
	"bytes"
	"regexp"
	"sort"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var textEscaper = bytereplacer.New(
	"&", "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&apos;",
)

// NormalizeHTML strips insignificant output differences from HTML.
// Attributes are sorted by key, entities are decoded and re-escaped uniformly,
// and whitespace adjacent to block-level tags is removed
// except inside pre elements.
func NormalizeHTML(b []byte) []byte {
	n := &normalizer{tok: html.NewTokenizerFragment(bytes.NewReader(b), "div")}
	for n.next() {
	}
	return n.out
}

type normalizer struct {
	tok      *html.Tokenizer
	out      []byte
	preDepth int

	// lastBlock is true if the previous token was a block-level tag.
	lastBlock bool
}

func (n *normalizer) next() bool {
	switch n.tok.Next() {
	case html.ErrorToken:
		return false
	case html.TextToken:
		n.text(n.tok.Text())
	case html.StartTagToken, html.SelfClosingTagToken:
		name, hasAttr := n.tok.TagName()
		a := atom.Lookup(name)
		if isBlockTag(a) {
			n.out = bytes.TrimRightFunc(n.out, unicode.IsSpace)
		}
		if a == atom.Pre {
			n.preDepth++
		}
		n.out = append(n.out, '<')
		n.out = append(n.out, name...)
		if hasAttr {
			n.attributes()
		}
		n.out = append(n.out, '>')
		n.lastBlock = isBlockTag(a)
	case html.EndTagToken:
		name, _ := n.tok.TagName()
		a := atom.Lookup(name)
		if a == atom.Pre && n.preDepth > 0 {
			n.preDepth--
		} else if isBlockTag(a) {
			n.out = bytes.TrimRightFunc(n.out, unicode.IsSpace)
		}
		n.out = append(n.out, "</"...)
		n.out = append(n.out, name...)
		n.out = append(n.out, '>')
		n.lastBlock = isBlockTag(a)
	}
	return true
}

func (n *normalizer) text(data []byte) {
	if n.preDepth == 0 {
		data = whitespaceRE.ReplaceAll(data, []byte(" "))
		if n.lastBlock {
			data = bytes.TrimLeftFunc(data, unicode.IsSpace)
		}
	}
	n.lastBlock = false
	// Text is unescaped by the tokenizer, so escape it consistently.
	n.out = append(n.out, textEscaper.Replace(bytes.Clone(data))...)
}

func (n *normalizer) attributes() {
	type attribute struct {
		key   string
		value string
	}
	var attrs []attribute
	for more := true; more; {
		var k, v []byte
		k, v, more = n.tok.TagAttr()
		attrs = append(attrs, attribute{string(k), string(v)})
	}
	sort.SliceStable(attrs, func(i, j int) bool {
		return attrs[i].key < attrs[j].key
	})
	for _, attr := range attrs {
		n.out = append(n.out, ' ')
		n.out = append(n.out, attr.key...)
		if attr.value != "" {
			n.out = append(n.out, `="`...)
			n.out = append(n.out, html.EscapeString(attr.value)...)
			n.out = append(n.out, '"')
		}
	}
}

func isBlockTag(a atom.Atom) bool {
	switch a {
	case atom.Div, atom.P, atom.Blockquote, atom.Pre,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ul, atom.Ol, atom.Li, atom.Section, atom.Article,
		atom.Hr:
		return true
	default:
		return false
	}
}
