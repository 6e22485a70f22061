// Package testutil provides shared testing utilities used across the project.
package testutil

import (
	"html"
	"regexp"
	"strings"
)

// ansiRegex matches ANSI escape codes for stripping from output.
// This pattern matches the Control Sequence Introducer (CSI) sequences which generally start with ESC [
// and end with a letter, possibly with intermediate characters.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// blockRegex matches script and style elements with their bodies, tagRegex
// any other tag.
var (
	blockRegex = regexp.MustCompile(`(?is)<(script|style)\b.*?</(script|style)>`)
	tagRegex   = regexp.MustCompile(`<[^>]*>`)
)

// StripAnsiCodes removes ANSI escape codes from a string.
// This is useful for testing CLI output without color codes interfering
// with assertions.
//
// Parameters:
//   - s: The string potentially containing ANSI escape codes.
//
// Returns:
//   - string: The input string with all ANSI escape codes removed.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// StripTags returns the visible text of an HTML document: script and style
// blocks and tags are removed, entities are unescaped and each run of white
// space collapses to one space.
func StripTags(s string) string {
	s = blockRegex.ReplaceAllString(s, " ")
	s = tagRegex.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
