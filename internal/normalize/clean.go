package normalize

import (
	"regexp"
	"strings"
)

type rewriteRule struct {
	re   *regexp.Regexp
	repl string
}

// displayTextRules run in order. Block tags become newlines, list items
// become bullets, inline emphasis is dropped, then any remaining tag and
// emoji are stripped before blank lines are collapsed.
var displayTextRules = []rewriteRule{
	{regexp.MustCompile(`(?i)</?h3>`), "\n"},
	{regexp.MustCompile(`(?i)</?ul>`), "\n"},
	{regexp.MustCompile(`(?i)<li>`), "• "},
	{regexp.MustCompile(`(?i)</li>`), "\n"},
	{regexp.MustCompile(`(?i)</?p>`), "\n"},
	{regexp.MustCompile(`(?i)<br\s*/?>`), "\n"},
	{regexp.MustCompile(`(?i)</?(?:strong|em)>`), ""},
	{regexp.MustCompile(`<[^>]*>`), ""},
	{regexp.MustCompile(`[\x{1F300}-\x{1F9FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}]`), ""},
	{regexp.MustCompile(`\n\n+`), "\n\n"},
}

// CleanDisplayText converts a description, requirement or benefit string
// from the feed's light HTML into plain display text.
func CleanDisplayText(s string) string {
	if s == "" {
		return ""
	}
	for _, rule := range displayTextRules {
		s = rule.re.ReplaceAllString(s, rule.repl)
	}
	return strings.TrimSpace(s)
}
