package resolver

import "strings"

// categoryRules is the full keyword-to-category policy, checked in order with
// plain substring semantics. That keeps behavior predictable at the cost of
// known false positives (a venue named "Music Hall" matches "music"); the
// tradeoff is covered by tests rather than scattered conditionals.
var categoryRules = []struct {
	keyword  string
	category string
}{
	{"karaoke", "Karaoke & Open Mic"},
	{"music", "Music"},
	{"concert", "Music"},
	{"comedy", "Comedy"},
}

func matchCategory(lowered string) string {
	for _, rule := range categoryRules {
		if strings.Contains(lowered, rule.keyword) {
			return rule.category
		}
	}

	return ""
}
