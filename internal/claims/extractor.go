package claims

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Voice runtimes sometimes put a full bearer token into the user_id field
// instead of a plain user id. The extractor sniffs for that case and recovers
// the real subject and tenant from the token payload.
//
// This is a best-effort enrichment, NOT an authentication boundary: the token
// signature is never verified here. Verified auth for the dashboard API lives
// in internal/auth.

const (
	tokenSeparator = "."
	// Plain user ids are short; anything under this length is taken at face value.
	minTokenLength = 50
)

// ClaimSet holds the fields recovered from an embedded token payload.
type ClaimSet struct {
	Subject  string `json:"sub"`
	TenantID string `json:"tenant_id"`
}

// LooksLikeToken reports whether a user_id field plausibly carries an
// embedded token rather than a plain id.
func LooksLikeToken(s string) bool {
	return strings.Contains(s, tokenSeparator) && len(s) > minTokenLength
}

// Extract decodes the claim payload embedded in s.
// Returns (ClaimSet, true) on success. Any failure (wrong shape, malformed
// base64, non-JSON payload) returns ok=false; callers fall back to the raw
// string.
func Extract(s string) (ClaimSet, bool) {
	if !LooksLikeToken(s) {
		return ClaimSet{}, false
	}

	parts := strings.Split(s, tokenSeparator)
	if len(parts) < 2 {
		return ClaimSet{}, false
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return ClaimSet{}, false
	}

	var cs ClaimSet
	if err := json.Unmarshal(payload, &cs); err != nil {
		return ClaimSet{}, false
	}
	return cs, true
}

// decodeSegment handles both URL-safe and standard base64, with or without
// padding, since runtimes are not consistent about which they emit.
func decodeSegment(seg string) ([]byte, error) {
	seg = strings.TrimRight(seg, "=")
	if b, err := base64.RawURLEncoding.DecodeString(seg); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(seg)
}
