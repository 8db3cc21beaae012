// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"strings"
	"unicode"
)

// normalizeToken lowercases a raw metadata value and strips all whitespace,
// so multi-word values collapse into a single token ("Science Fiction"
// becomes "sciencefiction") and the same concept always yields the same
// token regardless of source casing.
func normalizeToken(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// composeDocument builds the feature document for one movie: normalized
// genres, keywords, top-billed cast (up to castLimit) and director, in that
// order, with first-occurrence dedup. Empty values contribute nothing, so a
// movie with no usable metadata yields an empty document.
func composeDocument(m Movie, castLimit int) FeatureDocument {
	cast := m.Cast
	if len(cast) > castLimit {
		cast = cast[:castLimit]
	}

	tokens := make([]string, 0, len(m.Genres)+len(m.Keywords)+len(cast)+1)
	seen := make(map[string]struct{}, cap(tokens))

	appendNormalized := func(values []string) {
		for _, v := range values {
			tok := normalizeToken(v)
			if tok == "" {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			tokens = append(tokens, tok)
		}
	}

	appendNormalized(m.Genres)
	appendNormalized(m.Keywords)
	appendNormalized(cast)
	if m.Director != "" {
		appendNormalized([]string{m.Director})
	}

	return FeatureDocument{Tokens: tokens}
}
