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
	"strconv"
	"strings"
)

// A Document is an ordered sequence of top-level nodes.
// A single node is equivalent to a one-element Document.
type Document []*Node

// PlaintextLanguage is the language reported for code blocks
// that do not declare one.
const PlaintextLanguage = "plaintext"

// A Node is an element of a rich text document.
// The zero value and nil are nodes of an unknown kind with no content.
type Node struct {
	kind       NodeKind
	typeName   string
	content    []*Node
	hasContent bool

	// Heading attributes.
	level int

	// Code block attributes. A nil language means the attribute was absent or null.
	language *string

	// Text attributes.
	text  string
	marks []Mark
}

// Kind returns the node's type.
// Nodes with a type tag outside the known set return 0.
func (n *Node) Kind() NodeKind {
	if n == nil {
		return 0
	}
	return n.kind
}

// TypeName returns the node's type tag as it appears in the document schema.
// For nodes of an unknown kind, this is the tag from the source document.
func (n *Node) TypeName() string {
	if n == nil {
		return ""
	}
	if n.kind != 0 {
		return n.kind.String()
	}
	return n.typeName
}

// Content returns the node's children.
func (n *Node) Content() []*Node {
	if n == nil {
		return nil
	}
	return n.content
}

// HasContent reports whether the node declared a content sequence,
// even an empty one.
// Rendering treats a node without content the same as a node with empty content.
func (n *Node) HasContent() bool {
	return n != nil && n.hasContent
}

// ChildCount returns the number of children the node has.
func (n *Node) ChildCount() int {
	return len(n.Content())
}

// Child returns the i'th child of the node.
func (n *Node) Child(i int) *Node {
	return n.Content()[i]
}

// Level returns the level of a heading
// or 0 if the node is not a heading or the level was not an integer.
func (n *Node) Level() int {
	if n.Kind() != HeadingKind {
		return 0
	}
	return n.level
}

// Language returns the language of a code block.
// An absent or null language attribute and the literal string "null"
// are all reported as [PlaintextLanguage].
// Language returns the empty string for other kinds of nodes.
func (n *Node) Language() string {
	if n.Kind() != CodeBlockKind {
		return ""
	}
	if n.language == nil || *n.language == "null" {
		return PlaintextLanguage
	}
	return *n.language
}

// CodeText returns the raw text of a code block.
// Code blocks hold at most one text child and marks within it are ignored.
// ok is false if the node is not a code block or its first child is not text.
func (n *Node) CodeText() (text string, ok bool) {
	if n.Kind() != CodeBlockKind || len(n.content) == 0 {
		return "", false
	}
	first := n.content[0]
	if first.Kind() != TextKind {
		return "", false
	}
	return first.text, true
}

// Text returns the text of a text node
// or the empty string for any other kind of node.
func (n *Node) Text() string {
	if n.Kind() != TextKind {
		return ""
	}
	return n.text
}

// Marks returns the marks applied to a text node in document order.
func (n *Node) Marks() []Mark {
	if n.Kind() != TextKind {
		return nil
	}
	return n.marks
}

// PlainText returns the concatenated text of all text nodes in n,
// in document order.
func (n *Node) PlainText() string {
	sb := new(strings.Builder)
	Walk(n, &WalkOptions{
		Pre: func(c *Cursor) bool {
			sb.WriteString(c.Node().Text())
			return true
		},
	})
	return sb.String()
}

// NodeKind is an enumeration of rich text node types.
type NodeKind uint16

const (
	DocKind NodeKind = 1 + iota
	ParagraphKind
	BlockquoteKind
	HeadingKind
	CodeBlockKind
	BulletListKind
	OrderedListKind
	ListItemKind
	TextKind
)

var nodeKindNames = [...]string{
	DocKind:         "doc",
	ParagraphKind:   "paragraph",
	BlockquoteKind:  "blockquote",
	HeadingKind:     "heading",
	CodeBlockKind:   "codeBlock",
	BulletListKind:  "bulletList",
	OrderedListKind: "orderedList",
	ListItemKind:    "listItem",
	TextKind:        "text",
}

// String returns the kind's type tag in the document schema.
func (kind NodeKind) String() string {
	if kind == 0 || int(kind) >= len(nodeKindNames) {
		return "NodeKind(" + strconv.Itoa(int(kind)) + ")"
	}
	return nodeKindNames[kind]
}

func parseNodeKind(typeName string) NodeKind {
	for kind, name := range nodeKindNames {
		if kind != 0 && name == typeName {
			return NodeKind(kind)
		}
	}
	return 0
}

// A Mark is a formatting annotation on a text node.
type Mark struct {
	Kind MarkKind
	// Name is the mark's type tag in the source document.
	// It is only consulted when Kind is zero.
	Name string
	// Link holds the attributes of a link mark.
	// It may be nil even for link marks.
	Link *LinkAttrs
}

// TypeName returns the mark's type tag as it appears in the document schema.
func (m Mark) TypeName() string {
	if m.Kind != 0 {
		return m.Kind.String()
	}
	return m.Name
}

// LinkAttrs is the set of attributes carried by a link mark.
type LinkAttrs struct {
	Href   string
	Target string
	Rel    string
	// Class is stored as "class" in the document schema
	// and rendered as the element's class attribute.
	Class string
}

// MarkKind is an enumeration of text mark types.
type MarkKind uint8

const (
	BoldMark MarkKind = 1 + iota
	ItalicMark
	CodeMark
	LinkMark
)

var markKindNames = [...]string{
	BoldMark:   "bold",
	ItalicMark: "italic",
	CodeMark:   "code",
	LinkMark:   "link",
}

// String returns the kind's type tag in the document schema.
func (kind MarkKind) String() string {
	if kind == 0 || int(kind) >= len(markKindNames) {
		return "MarkKind(" + strconv.Itoa(int(kind)) + ")"
	}
	return markKindNames[kind]
}

func parseMarkKind(typeName string) MarkKind {
	for kind, name := range markKindNames {
		if kind != 0 && name == typeName {
			return MarkKind(kind)
		}
	}
	return 0
}

// NewDoc returns a new document root node.
// Passing no children produces a node without content.
func NewDoc(children ...*Node) *Node {
	return newContainer(DocKind, children)
}

// NewParagraph returns a new paragraph node.
func NewParagraph(children ...*Node) *Node {
	return newContainer(ParagraphKind, children)
}

// NewBlockquote returns a new block quote node.
func NewBlockquote(children ...*Node) *Node {
	return newContainer(BlockquoteKind, children)
}

// NewHeading returns a new heading node with the given level.
func NewHeading(level int, children ...*Node) *Node {
	n := newContainer(HeadingKind, children)
	n.level = level
	return n
}

// NewCodeBlock returns a new code block node.
// An empty language omits the language attribute
// and empty code omits the content.
func NewCodeBlock(language string, code string) *Node {
	n := &Node{kind: CodeBlockKind}
	if language != "" {
		n.language = &language
	}
	if code != "" {
		n.content = []*Node{NewText(code)}
		n.hasContent = true
	}
	return n
}

// NewBulletList returns a new unordered list node.
func NewBulletList(items ...*Node) *Node {
	return newContainer(BulletListKind, items)
}

// NewOrderedList returns a new ordered list node.
func NewOrderedList(items ...*Node) *Node {
	return newContainer(OrderedListKind, items)
}

// NewListItem returns a new list item node.
func NewListItem(children ...*Node) *Node {
	return newContainer(ListItemKind, children)
}

// NewText returns a new text node with the given marks.
// The first mark is the outermost when rendered.
func NewText(text string, marks ...Mark) *Node {
	return &Node{
		kind:  TextKind,
		text:  text,
		marks: marks,
	}
}

func newContainer(kind NodeKind, children []*Node) *Node {
	return &Node{
		kind:       kind,
		content:    children,
		hasContent: children != nil,
	}
}

// Bold returns a bold mark.
func Bold() Mark { return Mark{Kind: BoldMark} }

// Italic returns an italic mark.
func Italic() Mark { return Mark{Kind: ItalicMark} }

// Code returns an inline code mark.
func Code() Mark { return Mark{Kind: CodeMark} }

// Link returns a link mark with the given attributes.
func Link(attrs LinkAttrs) Mark {
	return Mark{Kind: LinkMark, Link: &attrs}
}
