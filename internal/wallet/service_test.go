package wallet

import "testing"

func TestDebitDescription(t *testing.T) {
	if got := debitDescription("abc", 42); got != "Call abc (42s)" {
		t.Fatalf("short id: got %q", got)
	}
	got := debitDescription("0123456789abcdef", 125)
	if got != "Call 0123456789ab... (125s)" {
		t.Fatalf("long id: got %q", got)
	}
}

func TestDebitForCallValidatesInput(t *testing.T) {
	if _, _, err := DebitForCall(nil, nil, DebitRequest{}); err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, _, err := DebitForCall(nil, nil, DebitRequest{WalletID: "w", SessionID: "s", AmountMinor: -1}); err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument for negative amount, got %v", err)
	}
}
