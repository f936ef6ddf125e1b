// Package phi sanitizes log payloads that may contain protected health
// information. Log lines carry counts and masked identifiers, never raw
// conditions, medications, notes, or contact details.
package phi

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// listFields are redacted down to element counts.
var listFields = map[string]struct{}{
	"health_conditions": {},
	"medications":       {},
	"conditions":        {},
}

// piiFields are masked: first two characters plus a short content hash, so
// repeated log lines about the same client remain correlatable.
var piiFields = map[string]struct{}{
	"name":       {},
	"first_name": {},
	"last_name":  {},
	"email":      {},
	"phone":      {},
}

// Redact returns a copy of fields that is safe to log. Unknown keys pass
// through untouched; callers are responsible for only including keys they
// understand.
func Redact(fields map[string]any) map[string]any {
	safe := make(map[string]any, len(fields))
	for k, v := range fields {
		switch {
		case isListField(k):
			safe[k] = fmt.Sprintf("<%d items>", countOf(v))
		case k == "notes":
			s, _ := v.(string)
			if s == "" {
				safe[k] = ""
			} else {
				safe[k] = fmt.Sprintf("<%d chars>", len(s))
			}
		case isPIIField(k):
			s := fmt.Sprintf("%v", v)
			safe[k] = Mask(s)
		default:
			safe[k] = v
		}
	}
	return safe
}

// Mask shortens a PII value to a two-character prefix and an 8-hex-digit
// content hash.
func Mask(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(value))
	prefix := value
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return prefix + "..." + hex.EncodeToString(sum[:])[:8]
}

func isListField(k string) bool {
	_, ok := listFields[k]
	return ok
}

func isPIIField(k string) bool {
	_, ok := piiFields[k]
	return ok
}

func countOf(v any) int {
	switch t := v.(type) {
	case []string:
		return len(t)
	case []any:
		return len(t)
	case map[string]any:
		return len(t)
	case int:
		return t
	default:
		return 0
	}
}
