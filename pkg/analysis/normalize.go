package analysis

import (
	"regexp"
	"strings"
)

var (
	// [$-_] is a range, U+0024 through U+005F.
	urlPattern    = regexp.MustCompile(`https?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\(\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)
	nonHanPattern = regexp.MustCompile(`[^\x{4e00}-\x{9fff}]+`)
)

// Normalize strips URLs and every character outside the CJK Unified
// Ideographs block, leaving runs of ideographs separated by single spaces.
// URLs are removed outright, so text on either side may join.
func Normalize(raw string) string {
	s := urlPattern.ReplaceAllString(raw, "")
	s = nonHanPattern.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
