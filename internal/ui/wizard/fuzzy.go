// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package wizard

import (
	"sort"
	"strings"
	"unicode"
)

// =============================================================================
// FUZZY MATCHING
// =============================================================================

// fuzzyMatch scores query against target. Every query rune must appear in
// order in target, ignoring case. Consecutive runs, word starts and the start
// of the string score higher; longer targets score slightly lower.
//
// "sas" matches "SAS Hall" well and "Student Affairs Services" less well.
func fuzzyMatch(query, target string) (score int, matched bool) {
	if query == "" {
		return 0, true
	}

	queryRunes := []rune(strings.ToLower(query))
	targetRunes := []rune(strings.ToLower(target))
	if len(queryRunes) > len(targetRunes) {
		return 0, false
	}

	queryPos := 0
	lastMatchPos := -1
	for targetPos := 0; targetPos < len(targetRunes) && queryPos < len(queryRunes); targetPos++ {
		if targetRunes[targetPos] != queryRunes[queryPos] {
			continue
		}
		matchScore := 1
		if lastMatchPos == targetPos-1 {
			matchScore += 5
		}
		if targetPos == 0 {
			matchScore += 10
		}
		if isWordBoundary(targetRunes, targetPos) {
			matchScore += 7
		}
		score += matchScore
		lastMatchPos = targetPos
		queryPos++
	}

	matched = queryPos == len(queryRunes)
	if matched {
		score -= len(targetRunes) / 4
	}
	return score, matched
}

// isWordBoundary reports whether pos starts a word: the first rune, a rune
// after a space, slash, dash, apostrophe or ampersand, or an upper-case rune
// after a lower-case one.
func isWordBoundary(runes []rune, pos int) bool {
	if pos == 0 {
		return true
	}
	if pos >= len(runes) {
		return false
	}
	switch runes[pos-1] {
	case ' ', '/', '-', '\'', '&':
		return true
	}
	return unicode.IsLower(runes[pos-1]) && unicode.IsUpper(runes[pos])
}

// fuzzyFilter returns the options matching query, best score first. Ties keep
// their original order so an empty query returns options unchanged.
func fuzzyFilter(query string, options []string) []string {
	type scored struct {
		option string
		score  int
	}
	var matches []scored
	for _, opt := range options {
		if score, ok := fuzzyMatch(query, opt); ok {
			matches = append(matches, scored{opt, score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.option
	}
	return out
}

// matchPositions returns the rune indexes of target that fuzzyMatch consumed.
func matchPositions(query, target string) []int {
	if query == "" {
		return nil
	}
	queryRunes := []rune(strings.ToLower(query))
	targetRunes := []rune(strings.ToLower(target))

	var positions []int
	queryPos := 0
	for targetPos := 0; targetPos < len(targetRunes) && queryPos < len(queryRunes); targetPos++ {
		if targetRunes[targetPos] == queryRunes[queryPos] {
			positions = append(positions, targetPos)
			queryPos++
		}
	}
	if queryPos < len(queryRunes) {
		return nil
	}
	return positions
}
