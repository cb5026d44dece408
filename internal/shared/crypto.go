package shared

import "crypto/subtle"

// PassPhraseMatches compares a request body with the admin pass phrase in
// constant time. An empty configured phrase never matches.
func PassPhraseMatches(configured string, body []byte) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), body) == 1
}
