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

// Package format provides a function to write a rich text document as CommonMark.
package format

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"go4.org/bytereplacer"
	"zombiezen.com/go/richtext"
)

// Format writes the given document as CommonMark to the given writer.
// Nodes whose type has no Markdown equivalent are replaced by their content,
// the same way the HTML renderer unwraps them.
// Empty paragraphs have no CommonMark representation and are omitted.
func Format(w io.Writer, doc richtext.Document) error {
	ww := &errWriter{w: w}
	for i, block := range formatBlocks(doc) {
		if i > 0 {
			ww.WriteString("\n\n")
		}
		ww.WriteString(block)
	}
	if ww.hasWritten {
		ww.WriteString("\n")
	}
	return ww.err
}

// formatBlocks returns the CommonMark source of each block in nodes,
// without trailing newlines.
// Consecutive text nodes are grouped into a single paragraph.
func formatBlocks(nodes []*richtext.Node) []string {
	var out []string
	var pending []*richtext.Node
	flush := func() {
		if len(pending) == 0 {
			return
		}
		if s := escapeLines(formatInlines(pending)); s != "" {
			out = append(out, s)
		}
		pending = pending[:0]
	}
	for _, n := range nodes {
		if n.Kind() == richtext.TextKind {
			pending = append(pending, n)
			continue
		}
		flush()
		out = append(out, formatBlock(n)...)
	}
	flush()
	return out
}

func formatBlock(n *richtext.Node) []string {
	switch n.Kind() {
	case richtext.ParagraphKind:
		s := escapeLines(formatInlines(n.Content()))
		if s == "" {
			return nil
		}
		return []string{s}
	case richtext.HeadingKind:
		level := n.Level()
		if level < 1 {
			level = 1
		} else if level > 6 {
			level = 6
		}
		text := strings.ReplaceAll(formatInlines(n.Content()), "\n", " ")
		return []string{strings.TrimRight(strings.Repeat("#", level)+" "+text, " ")}
	case richtext.CodeBlockKind:
		code, _ := n.CodeText()
		code = strings.TrimSuffix(code, "\n")
		fence := strings.Repeat("`", max(3, longestRun(code, '`')+1))
		info := n.Language()
		if info == richtext.PlaintextLanguage {
			info = ""
		}
		sb := new(strings.Builder)
		sb.WriteString(fence)
		sb.WriteString(info)
		sb.WriteString("\n")
		if code != "" {
			sb.WriteString(code)
			sb.WriteString("\n")
		}
		sb.WriteString(fence)
		return []string{sb.String()}
	case richtext.BlockquoteKind:
		inner := strings.Join(formatBlocks(n.Content()), "\n\n")
		return []string{prefixLines(inner, "> ", "> ")}
	case richtext.BulletListKind, richtext.OrderedListKind:
		items := make([]string, 0, n.ChildCount())
		for i, item := range n.Content() {
			marker := "-"
			if n.Kind() == richtext.OrderedListKind {
				marker = strconv.Itoa(i+1) + "."
			}
			var content string
			if item.Kind() == richtext.ListItemKind {
				content = strings.Join(formatBlocks(item.Content()), "\n\n")
			} else {
				content = strings.Join(formatBlocks([]*richtext.Node{item}), "\n\n")
			}
			items = append(items, prefixLines(content, marker+" ", strings.Repeat(" ", len(marker)+1)))
		}
		return []string{strings.Join(items, "\n")}
	default:
		return formatBlocks(n.Content())
	}
}

// formatInlines returns the CommonMark source of the text nodes in nodes.
func formatInlines(nodes []*richtext.Node) string {
	sb := new(strings.Builder)
	for _, n := range nodes {
		richtext.Walk(n, &richtext.WalkOptions{
			Pre: func(c *richtext.Cursor) bool {
				if c.Node().Kind() == richtext.TextKind {
					sb.WriteString(formatText(c.Node()))
				}
				return true
			},
		})
	}
	return sb.String()
}

// formatText returns the CommonMark source of a text node.
// As in the HTML renderer, the first mark is the outermost.
func formatText(n *richtext.Node) string {
	text := n.Text()
	if text == "" {
		return ""
	}
	marks := n.Marks()
	isCode := false
	for _, m := range marks {
		if m.Kind == richtext.CodeMark {
			isCode = true
			break
		}
	}
	var s string
	if isCode {
		s = codeSpan(text)
	} else {
		s = string(markdownEscaper.Replace([]byte(text)))
	}
	for i := len(marks) - 1; i >= 0; i-- {
		switch m := marks[i]; m.Kind {
		case richtext.BoldMark:
			s = emphasize(s, "**")
		case richtext.ItalicMark:
			s = emphasize(s, "*")
		case richtext.LinkMark:
			if m.Link != nil {
				s = "[" + s + "](" + linkDestination(m.Link.Href) + ")"
			}
		}
	}
	return s
}

var markdownEscaper = bytereplacer.New(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"&", `\&`,
	"#", `\#`,
	">", `\>`,
)

// emphasize wraps s in delim.
// Delimiters next to whitespace neither open nor close emphasis,
// so whitespace at the edges of s is moved outside of them.
func emphasize(s, delim string) string {
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	lead := s[:len(s)-len(rest)]
	core := strings.TrimRightFunc(rest, unicode.IsSpace)
	if core == "" {
		return s
	}
	return lead + delim + core + delim + rest[len(core):]
}

// escapeLines prepares inline source for use as the lines of a paragraph.
// Leading and trailing spaces and blank lines are removed,
// since they would form code blocks, hard line breaks, or paragraph breaks.
// Every remaining line has its block start escaped.
func escapeLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.Trim(line, " \t")
		if line == "" {
			continue
		}
		kept = append(kept, escapeBlockStart(line))
	}
	return strings.Join(kept, "\n")
}

// escapeBlockStart escapes a leading character sequence
// that would otherwise start a list item, a thematic break,
// a setext heading underline, or a code fence.
// Other block starters are escaped as inline punctuation.
func escapeBlockStart(s string) string {
	if s != "" && strings.IndexByte("-+=~", s[0]) >= 0 {
		return `\` + s
	}
	digits := 0
	for digits < len(s) && digits < 10 && '0' <= s[digits] && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') {
		return s[:digits] + `\` + s[digits:]
	}
	return s
}

func codeSpan(text string) string {
	// Line endings render as spaces inside code spans.
	text = strings.ReplaceAll(text, "\n", " ")
	fence := strings.Repeat("`", longestRun(text, '`')+1)
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		text = " " + text + " "
	}
	return fence + text + fence
}

func linkDestination(href string) string {
	if !strings.ContainsAny(href, " ()<>") {
		return href
	}
	return "<" + strings.NewReplacer("<", `\<`, ">", `\>`).Replace(href) + ">"
}

// prefixLines prefixes the first line of s with first
// and subsequent lines with rest.
// Prefixes of empty lines have their trailing spaces removed.
func prefixLines(s string, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		if line == "" {
			prefix = strings.TrimRight(prefix, " ")
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func longestRun(s string, c byte) int {
	longest, curr := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			curr = 0
			continue
		}
		curr++
		if curr > longest {
			longest = curr
		}
	}
	return longest
}

type errWriter struct {
	w          io.Writer
	hasWritten bool
	err        error
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}
