package audit

import (
	"context"
	"strings"
	"testing"
)

func TestAppendFillsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.Append(context.Background(), Event{Type: EventTypeIngestFailed, SessionID: "s1"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	events := repo.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID == "" || events[0].CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at to be filled: %+v", events[0])
	}
}

func TestAppendRejectsMissingType(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if err := svc.Append(context.Background(), Event{SessionID: "s1"}); err != ErrInvalidEvent {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestLogIngestRejectedKeepsIdentifyingFields(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.LogIngestRejected(context.Background(), "s1", "a1", "support", "t1"); err != nil {
		t.Fatalf("log: %v", err)
	}
	e := repo.Events()[0]
	if e.Type != EventTypeIngestRejected || e.SessionID != "s1" {
		t.Fatalf("unexpected event: %+v", e)
	}
	for _, want := range []string{"a1", "support", "t1"} {
		if !strings.Contains(e.Metadata, want) {
			t.Fatalf("metadata missing %q: %s", want, e.Metadata)
		}
	}
}
