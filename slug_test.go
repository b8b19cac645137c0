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

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"", ""},
		{"Hello World", "hello-world"},
		{"  Hello,   World!  ", "hello-world"},
		{"Héllo, Wörld", "hello-world"},
		{"Version 2.0", "version-2-0"},
		{"---", ""},
		{"日本語", "日本語"},
	}
	for _, test := range tests {
		if got := Slug(test.text); got != test.want {
			t.Errorf("Slug(%q) = %q; want %q", test.text, got, test.want)
		}
	}
}
