// Package sanitize cleans untrusted reply content before it is rendered or
// spoken.
package sanitize

import (
	"regexp"
	"strings"
)

// Blocked replaces any URI whose scheme is not allowed
const Blocked = "#blocked"

var allowedScheme = regexp.MustCompile(`(?i)^(?:https?|mailto):`)

// URI returns raw (trimmed) when it uses the http, https or mailto scheme and
// Blocked otherwise.
func URI(raw string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = Blocked
		}
	}()

	s := strings.TrimSpace(raw)
	if allowedScheme.MatchString(s) {
		return s
	}
	return Blocked
}

var (
	imagePattern      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkPattern       = regexp.MustCompile(`\[([^\]]*)\]\(\s*([^)\s]*)(?:\s+"[^"]*")?\s*\)`)
	headingPattern    = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]*`)
	quotePattern      = regexp.MustCompile(`(?m)^[ \t]*(?:>[ \t]?)+`)
	punctuation       = regexp.MustCompile("[*_~`#>]")
	rulePattern       = regexp.MustCompile(`(?m)^[ \t]*(?:-[ \t]*){3,}$`)
	blankLinesPattern = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)
)

// StripFormatting turns Markdown into plain text for speech synthesis.
// Images are dropped, links become "label (target)" and the remaining
// emphasis, heading, quote and rule marks are removed. The result is a
// fixed point: stripping it again changes nothing.
func StripFormatting(markup string) string {
	s := markup
	// every pass only ever shortens s, so this terminates
	for {
		next := stripPass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripPass(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = imagePattern.ReplaceAllString(s, "")
	s = linkPattern.ReplaceAllString(s, "$1 ($2)")
	s = headingPattern.ReplaceAllString(s, "")
	s = quotePattern.ReplaceAllString(s, "")
	s = punctuation.ReplaceAllString(s, "")
	s = rulePattern.ReplaceAllString(s, "")
	s = blankLinesPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
