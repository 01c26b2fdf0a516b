// Package memory extracts durable facts from user messages and layers the
// merge/display policy over the fact store.
package memory

import (
	"regexp"
	"strings"
)

// Candidate is one extracted fact with its write policy. Replace means the
// key is a singleton and prior values are superseded.
type Candidate struct {
	Key     string
	Value   string
	Replace bool
}

const maxValueLen = 200

// rule is one trigger pattern mapped to a fact key. group selects the
// capture holding the value (0 = whole match).
type rule struct {
	re      *regexp.Regexp
	key     string
	group   int
	replace bool
}

// rules are evaluated in order on every input. All matches are kept; once
// applied in order, the last rule for a singleton key wins. Matches may
// overlap between keys, which is accepted heuristic behavior.
var rules = []rule{
	{regexp.MustCompile(`(?i)\bmy name is\s+([^\n.,!?]+)`), "name", 1, true},
	{regexp.MustCompile(`(?i)\bcall me\s+([^\n.,!?]+)`), "name", 1, true},
	{regexp.MustCompile(`(?i)\b(i live in|i am in|i'm in|i am from|i'm from)\s+([^\n.,!?]+)`), "location", 2, true},
	{regexp.MustCompile(`(?i)\b(i work at|i work for|i work with|my job is)\s+([^\n.,!?]+)`), "job", 2, true},
	{regexp.MustCompile(`(?i)\b(my time zone is|my timezone is)\s+([^\n.,!?]+)`), "timezone", 2, true},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "email", 0, true},
	{regexp.MustCompile(`\b\+?\d[\d\-\s()]{7,}\d\b`), "phone", 0, true},
	{regexp.MustCompile(`(?i)\b(i like|i love|my favorite)\s+([^\n.,!?]+)`), "likes", 2, false},
	{regexp.MustCompile(`(?i)\b(i dislike|i hate)\s+([^\n.,!?]+)`), "dislikes", 2, false},
	{regexp.MustCompile(`(?i)\bremember(?: that|:)\s+([^\n.,!?]+)`), "note", 1, false},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// cleanValue normalizes a captured value: trim, strip surrounding quotes,
// collapse whitespace runs, cap at maxValueLen.
func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, `"`)
	v = strings.Trim(v, `'`)
	v = whitespaceRun.ReplaceAllString(v, " ")
	if r := []rune(v); len(r) > maxValueLen {
		v = string(r[:maxValueLen])
	}
	return v
}

// Extract runs every rule against text and returns all matches in rule
// order. Text with no recognizable pattern yields an empty result; Extract
// never fails.
func Extract(text string) []Candidate {
	var out []Candidate
	for _, r := range rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		out = append(out, Candidate{Key: r.key, Value: cleanValue(m[r.group]), Replace: r.replace})
	}
	return out
}
