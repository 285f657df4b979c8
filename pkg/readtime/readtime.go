// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: davi.tran.dev@gmail.com

// Package readtime estimates how long a piece of editorial content takes to read.
//
// # Usage
//
// The estimate is attached to articles as a derived field and recomputed
// whenever the body content changes. It is based on a standard reading
// speed of 200 words per minute, measured on the plain text that remains
// after markup tags are stripped.
package readtime

import (
	"regexp"
	"strings"
)

// WordsPerMinute is the assumed average reading speed.
const WordsPerMinute = 200

// markupTag matches HTML/markup tags so they are excluded from the word count.
var markupTag = regexp.MustCompile(`<[^>]*>`)

// Minutes returns the estimated reading time in whole minutes.
//
// # Rules
//
//   - Markup tags are stripped before counting words.
//   - The word count is divided by [WordsPerMinute] and rounded up.
//   - Any non-empty content reads in at least 1 minute, even when only
//     markup or whitespace remains after stripping.
//   - The empty string returns 0; callers skip the derived field
//     entirely in that case.
func Minutes(content string) int {
	if content == "" {
		return 0
	}

	words := WordCount(content)
	if words == 0 {
		return 1
	}

	return (words + WordsPerMinute - 1) / WordsPerMinute
}

// WordCount returns the number of whitespace-separated tokens in the
// content once markup tags are removed.
func WordCount(content string) int {
	plain := markupTag.ReplaceAllString(content, " ")
	return len(strings.Fields(plain))
}
