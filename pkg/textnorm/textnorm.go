// Copyright (c) 2026 Kuramono. All rights reserved.

/*
Package textnorm provides text folding for user-facing search.

Archive titles and tags mix Japanese full-width and half-width characters
freely ("ｱｸｽﾀ" vs "アクスタ", "ＡＢ" vs "AB"), so naive substring matching
misses obvious hits. Fold collapses width variants and letter case into a
single canonical form before comparison.
*/
package textnorm

import (
	"strings"

	"golang.org/x/text/width"
)

// Fold returns the canonical search form of s: width-folded (half-width kana
// to full-width, full-width latin to ASCII) and lower-cased.
func Fold(s string) string {
	return strings.ToLower(width.Fold.String(s))
}

// Contains reports whether the folded form of s contains the folded form of
// substr. An empty substr always matches.
func Contains(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(Fold(s), Fold(substr))
}
