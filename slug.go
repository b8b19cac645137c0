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
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug converts text into an identifier suitable for an HTML id attribute.
// Letters are case-folded and stripped of diacritics,
// and every run of characters other than letters and digits
// becomes a single hyphen.
// Leading and trailing hyphens are removed.
func Slug(text string) string {
	// Transformers carry state, so they cannot be shared between goroutines.
	stripMarks := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, text)
	if err != nil {
		stripped = text
	}
	folded := cases.Fold().String(stripped)

	sb := new(strings.Builder)
	sb.Grow(len(folded))
	pendingHyphen := false
	for _, c := range folded {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			pendingHyphen = sb.Len() > 0
			continue
		}
		if pendingHyphen {
			sb.WriteByte('-')
			pendingHyphen = false
		}
		sb.WriteRune(c)
	}
	return sb.String()
}
