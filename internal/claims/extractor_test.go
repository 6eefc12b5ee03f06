package claims

import (
	"encoding/base64"
	"strings"
	"testing"
)

func encodePayload(json string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(json))
}

func fakeToken(payloadJSON string) string {
	header := encodePayload(`{"alg":"HS256","typ":"JWT"}`)
	sig := strings.Repeat("x", 20)
	return header + "." + encodePayload(payloadJSON) + "." + sig
}

func TestExtractRecoversSubAndTenant(t *testing.T) {
	tok := fakeToken(`{"sub":"user-42","tenant_id":"tenant-7"}`)
	cs, ok := Extract(tok)
	if !ok {
		t.Fatalf("expected ok")
	}
	if cs.Subject != "user-42" || cs.TenantID != "tenant-7" {
		t.Fatalf("unexpected claims: %+v", cs)
	}
}

func TestExtractIgnoresPlainUserIDs(t *testing.T) {
	for _, s := range []string{"", "anonymous", "user-42", "a.b"} {
		if _, ok := Extract(s); ok {
			t.Fatalf("expected no claims for %q", s)
		}
	}
}

func TestExtractFailsSilentlyOnGarbage(t *testing.T) {
	// Long enough and dotted, but the payload segment is not base64 JSON.
	tok := strings.Repeat("a", 30) + "." + strings.Repeat("!", 30)
	if _, ok := Extract(tok); ok {
		t.Fatalf("expected decode failure")
	}

	// Valid base64 but not JSON.
	tok = strings.Repeat("a", 30) + "." + encodePayload("not json at all here")
	if _, ok := Extract(tok); ok {
		t.Fatalf("expected json failure")
	}
}

func TestExtractHandlesPaddedSegments(t *testing.T) {
	payload := base64.URLEncoding.EncodeToString([]byte(`{"sub":"u1","tenant_id":"t1"}`))
	tok := strings.Repeat("h", 25) + "." + payload + "." + strings.Repeat("s", 25)
	cs, ok := Extract(tok)
	if !ok || cs.Subject != "u1" {
		t.Fatalf("expected padded segment to decode, got ok=%v cs=%+v", ok, cs)
	}
}
