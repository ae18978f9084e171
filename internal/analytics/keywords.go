package analytics

import "strings"

// KeywordMatcher classifies symptom tags against a keyword vocabulary.
type KeywordMatcher struct {
	keywords []string
}

// NewKeywordMatcher builds a matcher over lowercase keywords.
func NewKeywordMatcher(keywords []string) KeywordMatcher {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}
	return KeywordMatcher{keywords: normalized}
}

// Matches reports whether the symptom contains any keyword.
func (m KeywordMatcher) Matches(symptom string) bool {
	s := strings.ToLower(symptom)
	for _, kw := range m.keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// Count returns how many symptoms match.
func (m KeywordMatcher) Count(symptoms []string) int {
	n := 0
	for _, symptom := range symptoms {
		if m.Matches(symptom) {
			n++
		}
	}
	return n
}

// Any reports whether at least one symptom matches.
func (m KeywordMatcher) Any(symptoms []string) bool {
	for _, symptom := range symptoms {
		if m.Matches(symptom) {
			return true
		}
	}
	return false
}
