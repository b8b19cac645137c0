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
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(`{
		"type": "doc",
		"content": [
			{"type": "heading", "attrs": {"level": 2}, "content": [{"type": "text", "text": "Title"}]},
			{"type": "paragraph"},
			{"type": "codeBlock", "attrs": {"language": "go"}, "content": [{"type": "text", "text": "x := 1"}]},
			{"type": "paragraph", "content": [
				{"type": "text", "text": "see ", "marks": [{"type": "bold"}, {"type": "italic"}]},
				{"type": "text", "text": "docs", "marks": [
					{"type": "link", "attrs": {"href": "https://x", "target": "_blank", "rel": "noopener", "class": "foo"}}
				]}
			]},
			{"type": "callout", "content": []}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc) != 1 {
		t.Fatalf("len(doc) = %d; want 1", len(doc))
	}
	root := doc[0]
	if got, want := root.Kind(), DocKind; got != want {
		t.Errorf("root.Kind() = %v; want %v", got, want)
	}
	if got, want := root.ChildCount(), 5; got != want {
		t.Fatalf("root.ChildCount() = %d; want %d", got, want)
	}

	heading := root.Child(0)
	if heading.Kind() != HeadingKind || heading.Level() != 2 || heading.PlainText() != "Title" {
		t.Errorf("heading = {%v, level %d, %q}; want {heading, level 2, \"Title\"}",
			heading.Kind(), heading.Level(), heading.PlainText())
	}

	empty := root.Child(1)
	if empty.HasContent() {
		t.Error("paragraph without content reports HasContent() = true")
	}

	code := root.Child(2)
	if got := code.Language(); got != "go" {
		t.Errorf("code.Language() = %q; want %q", got, "go")
	}
	if text, ok := code.CodeText(); !ok || text != "x := 1" {
		t.Errorf("code.CodeText() = %q, %t; want %q, true", text, ok, "x := 1")
	}

	para := root.Child(3)
	wantMarks := []Mark{{Kind: BoldMark, Name: "bold"}, {Kind: ItalicMark, Name: "italic"}}
	if diff := cmp.Diff(wantMarks, para.Child(0).Marks()); diff != "" {
		t.Errorf("first text marks (-want +got):\n%s", diff)
	}
	wantLink := []Mark{{
		Kind: LinkMark,
		Name: "link",
		Link: &LinkAttrs{Href: "https://x", Target: "_blank", Rel: "noopener", Class: "foo"},
	}}
	if diff := cmp.Diff(wantLink, para.Child(1).Marks()); diff != "" {
		t.Errorf("link text marks (-want +got):\n%s", diff)
	}

	callout := root.Child(4)
	if callout.Kind() != 0 || callout.TypeName() != "callout" {
		t.Errorf("callout = {%v, %q}; want {0, \"callout\"}", callout.Kind(), callout.TypeName())
	}
	if !callout.HasContent() || callout.ChildCount() != 0 {
		t.Errorf("callout HasContent() = %t, ChildCount() = %d; want true, 0",
			callout.HasContent(), callout.ChildCount())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"Empty", "  "},
		{"Null", "null"},
		{"NullNode", `[{"type": "paragraph"}, null]`},
		{"NullChild", `{"type": "doc", "content": [null]}`},
		{"Syntax", `{"type": "doc"`},
		{"ContentNotArray", `{"type": "doc", "content": {"type": "text"}}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc, err := Parse([]byte(test.json))
			if err == nil {
				t.Fatalf("Parse(%q) = %v, <nil>; want error", test.json, doc)
			}
			if !strings.HasPrefix(err.Error(), "parse rich text: ") {
				t.Errorf("Parse(%q) error = %q; want prefix %q", test.json, err, "parse rich text: ")
			}
		})
	}
}

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(`[{"type": "text", "text": "a"}, {"type": "text", "text": "b"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc) != 2 || doc[0].Text() != "a" || doc[1].Text() != "b" {
		t.Errorf("Decode(...) = %v; want texts [a b]", doc)
	}
}

func TestNodeJSONRoundTrip(t *testing.T) {
	doc := Document{
		NewDoc(
			NewHeading(1, NewText("Title")),
			NewParagraph(),
			NewParagraph(
				NewText("plain "),
				NewText("link", Bold(), Link(LinkAttrs{Href: "/a", Class: "c"})),
			),
			NewCodeBlock("", "raw"),
			NewBlockquote(NewBulletList(NewListItem(NewParagraph(NewText("item"))))),
		),
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(%s): %v", data, err)
	}
	again, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(again) {
		t.Errorf("round trip changed JSON:\nfirst:  %s\nsecond: %s", data, again)
	}

	gotHTML, err := Render(got, nil)
	if err != nil {
		t.Fatal(err)
	}
	wantHTML, err := Render(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(wantHTML, gotHTML); diff != "" {
		t.Errorf("rendered output changed after round trip (-want +got):\n%s", diff)
	}
}

func TestMarshalNodeSchema(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "Text",
			node: NewText("x", Italic()),
			want: `{"type":"text","text":"x","marks":[{"type":"italic"}]}`,
		},
		{
			name: "Heading",
			node: NewHeading(3),
			want: `{"type":"heading","attrs":{"level":3}}`,
		},
		{
			name: "CodeBlockNoLanguage",
			node: NewCodeBlock("", ""),
			want: `{"type":"codeBlock","attrs":{"language":null}}`,
		},
		{
			name: "EmptyContent",
			node: NewParagraph([]*Node{}...),
			want: `{"type":"paragraph","content":[]}`,
		},
		{
			name: "Link",
			node: NewText("x", Link(LinkAttrs{Href: "/"})),
			want: `{"type":"text","text":"x","marks":[{"type":"link","attrs":{"href":"/","target":"","rel":"","class":""}}]}`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := json.Marshal(test.node)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != test.want {
				t.Errorf("json.Marshal(...) = %s; want %s", got, test.want)
			}
		})
	}
}
