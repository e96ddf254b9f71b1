package usecase

import "strings"

// referencePrefixes are the human-facing order-number prefixes accepted in
// tracking links.
var referencePrefixes = []string{"SPEETI-", "SPT-"}

// NormalizeReference prepares a client-supplied order reference for lookup.
// It returns the trimmed raw reference, matched verbatim against stored order
// numbers, and an id candidate with any known prefix and leading zeros
// removed ("SPEETI-00042" -> "42"). The id candidate is empty when the
// reference cannot name a numeric id.
func NormalizeReference(reference string) (raw, idCandidate string) {
	raw = strings.TrimSpace(reference)

	candidate := raw
	upper := strings.ToUpper(candidate)
	for _, prefix := range referencePrefixes {
		if strings.HasPrefix(upper, prefix) {
			candidate = candidate[len(prefix):]
			break
		}
	}

	candidate = strings.TrimLeft(candidate, "0")
	if candidate == "" || !isDigits(candidate) {
		return raw, ""
	}
	return raw, candidate
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
