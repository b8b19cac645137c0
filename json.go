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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// Parse decodes a rich text document from its JSON representation.
// The input may be either a single node object or an array of nodes.
// Node and mark types outside the known set are retained
// with a zero kind rather than rejected.
func Parse(data []byte) (Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("parse rich text: empty input")
	}
	if bytes.Equal(data, []byte("null")) {
		return nil, errors.New("parse rich text: document is null")
	}
	var doc Document
	if data[0] == '[' {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse rich text: %w", err)
		}
	} else {
		n := new(Node)
		if err := json.Unmarshal(data, n); err != nil {
			return nil, fmt.Errorf("parse rich text: %w", err)
		}
		doc = Document{n}
	}
	if err := checkNullNodes(doc); err != nil {
		return nil, fmt.Errorf("parse rich text: %w", err)
	}
	return doc, nil
}

// Decode reads all of r and parses it as a rich text document.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse rich text: %w", err)
	}
	return Parse(data)
}

func checkNullNodes(nodes []*Node) error {
	for i, n := range nodes {
		if n == nil {
			return fmt.Errorf("node %d is null", i)
		}
	}
	return nil
}

type nodeJSON struct {
	Type    string          `json:"type"`
	Attrs   *nodeAttrsJSON  `json:"attrs,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
	Text    *string         `json:"text,omitempty"`
	Marks   []Mark          `json:"marks,omitempty"`
}

type nodeAttrsJSON struct {
	Level    json.RawMessage `json:"level,omitempty"`
	Language json.RawMessage `json:"language,omitempty"`
}

// UnmarshalJSON decodes a node and its descendants.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Node{
		kind:     parseNodeKind(raw.Type),
		typeName: raw.Type,
		marks:    raw.Marks,
	}
	if raw.Text != nil {
		n.text = *raw.Text
	}
	if len(raw.Content) > 0 && !bytes.Equal(raw.Content, []byte("null")) {
		if err := json.Unmarshal(raw.Content, &n.content); err != nil {
			return fmt.Errorf("%s content: %w", raw.Type, err)
		}
		if err := checkNullNodes(n.content); err != nil {
			return fmt.Errorf("%s content: %w", raw.Type, err)
		}
		if n.content == nil {
			n.content = []*Node{}
		}
		n.hasContent = true
	}
	if raw.Attrs != nil {
		// Attribute values that have the wrong JSON type are treated as absent.
		var level float64
		if json.Unmarshal(raw.Attrs.Level, &level) == nil && level == math.Trunc(level) && math.Abs(level) < math.MaxInt32 {
			n.level = int(level)
		}
		var language *string
		if json.Unmarshal(raw.Attrs.Language, &language) == nil {
			n.language = language
		}
	}
	return nil
}

// MarshalJSON encodes the node in the document schema.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	raw := nodeJSON{Type: n.TypeName()}
	switch n.kind {
	case TextKind:
		raw.Text = &n.text
		raw.Marks = n.marks
	case HeadingKind:
		level, err := json.Marshal(n.level)
		if err != nil {
			return nil, err
		}
		raw.Attrs = &nodeAttrsJSON{Level: level}
	case CodeBlockKind:
		language, err := json.Marshal(n.language)
		if err != nil {
			return nil, err
		}
		raw.Attrs = &nodeAttrsJSON{Language: language}
	}
	if n.hasContent {
		content := n.content
		if content == nil {
			content = []*Node{}
		}
		var err error
		raw.Content, err = json.Marshal(content)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(raw)
}

type markJSON struct {
	Type  string         `json:"type"`
	Attrs *linkAttrsJSON `json:"attrs,omitempty"`
}

type linkAttrsJSON struct {
	Href   string `json:"href"`
	Target string `json:"target"`
	Rel    string `json:"rel"`
	Class  string `json:"class"`
}

// UnmarshalJSON decodes a mark.
// Attributes are only retained for link marks.
func (m *Mark) UnmarshalJSON(data []byte) error {
	var raw markJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Mark{
		Kind: parseMarkKind(raw.Type),
		Name: raw.Type,
	}
	if m.Kind == LinkMark && raw.Attrs != nil {
		m.Link = &LinkAttrs{
			Href:   raw.Attrs.Href,
			Target: raw.Attrs.Target,
			Rel:    raw.Attrs.Rel,
			Class:  raw.Attrs.Class,
		}
	}
	return nil
}

// MarshalJSON encodes the mark in the document schema.
func (m Mark) MarshalJSON() ([]byte, error) {
	raw := markJSON{Type: m.TypeName()}
	if m.Link != nil {
		raw.Attrs = &linkAttrsJSON{
			Href:   m.Link.Href,
			Target: m.Link.Target,
			Rel:    m.Link.Rel,
			Class:  m.Link.Class,
		}
	}
	return json.Marshal(raw)
}
