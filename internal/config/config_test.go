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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"zombiezen.com/go/richtext"
)

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(\"\") (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("RICHTEXT_TEST_CLASS", "prose")
	path := filepath.Join(t.TempDir(), "config.yaml")
	const data = "heading_ids: true\n" +
		"components:\n" +
		"  p:\n" +
		"    tag: div\n" +
		"    attrs:\n" +
		"      class: ${RICHTEXT_TEST_CLASS}\n" +
		"  a:\n" +
		"    attrs:\n" +
		"      rel: nofollow\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		MaxDepth:   DefaultMaxDepth,
		HeadingIDs: true,
		Components: map[string]Component{
			"p": {Tag: "div", Attrs: map[string]string{"class": "prose"}},
			"a": {Attrs: map[string]string{"rel": "nofollow"}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load(...) (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load of missing file did not return an error")
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("max_depth: [1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Errorf("Load(bad) = _, %v; want parse error", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		MaxDepth: -1,
		Components: map[string]Component{
			"table": {},
			"p":     {Tag: "not a tag"},
			"a":     {Attrs: map[string]string{"on click": "x"}},
			"li":    {Tag: "x-item", Attrs: map[string]string{"data-x": "1"}},
		},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = <nil>; want error")
	}
	msg := err.Error()
	for _, want := range []string{
		"max_depth must not be negative",
		`"table" is not a substitutable tag`,
		`components.p: invalid tag "not a tag"`,
		`components.a: invalid attribute name "on click"`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Validate() error %q does not contain %q", msg, want)
		}
	}
	if strings.Contains(msg, "components.li") {
		t.Errorf("Validate() error %q mentions valid component li", msg)
	}
}

func TestRenderer(t *testing.T) {
	cfg := &Config{
		MaxDepth: 8,
		Components: map[string]Component{
			"p": {Tag: "div", Attrs: map[string]string{"role": "paragraph", "class": "prose"}},
		},
	}
	r, err := cfg.Renderer()
	if err != nil {
		t.Fatal(err)
	}
	if r.MaxDepth != 8 || r.HeadingIDs {
		t.Errorf("Renderer() = {MaxDepth: %d, HeadingIDs: %t}; want {8, false}", r.MaxDepth, r.HeadingIDs)
	}
	nodes, err := r.Render(richtext.Document{richtext.NewParagraph()})
	if err != nil {
		t.Fatal(err)
	}
	want := []*richtext.RenderedNode{{
		Kind: richtext.ElementNode,
		Key:  "div0",
		Tag:  "div",
		Attrs: []html.Attribute{
			{Key: "class", Val: "prose"},
			{Key: "role", Val: "paragraph"},
		},
	}}
	if diff := cmp.Diff(want, nodes); diff != "" {
		t.Errorf("Render(...) (-want +got):\n%s", diff)
	}
	if _, ok := r.Components[atom.P]; !ok {
		t.Error("Renderer().Components has no entry for <p>")
	}
}
