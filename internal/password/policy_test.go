package password

import "testing"

func TestEvaluateAllRequirementsMet(t *testing.T) {
	res := Evaluate("Aa1!aaaa")
	if !res.Valid {
		t.Fatalf("expected valid, got %+v", res)
	}
	if res.Score != 100 {
		t.Fatalf("expected score 100, got %d", res.Score)
	}
	if res.Message != "" {
		t.Fatalf("expected no message, got %q", res.Message)
	}
}

func TestEvaluateMissingOneRequirement(t *testing.T) {
	cases := []struct {
		name     string
		password string
		message  string
	}{
		{"too short", "Aa1!aaa", "Password must be at least 8 characters long"},
		{"no uppercase", "aa1!aaaa", "Password must contain at least one uppercase letter"},
		{"no lowercase", "AA1!AAAA", "Password must contain at least one lowercase letter"},
		{"no digit", "Aa!aaaaa", "Password must contain at least one number"},
		{"no special", "Aa1aaaaa", `Password must contain at least one special character (!@#$%^&*(),.?":{}|<>)`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Evaluate(tc.password)
			if res.Valid {
				t.Fatalf("expected invalid, got %+v", res)
			}
			if res.Score != 80 {
				t.Fatalf("expected score 80, got %d", res.Score)
			}
			if res.Message != tc.message {
				t.Fatalf("message: got %q, want %q", res.Message, tc.message)
			}
		})
	}
}

func TestEvaluateReportsFirstUnmetRequirement(t *testing.T) {
	// Missing uppercase, digit and special; the uppercase message wins
	// because it comes first in evaluation order.
	res := Evaluate("aaaaaaaa")
	if res.Valid {
		t.Fatalf("expected invalid, got %+v", res)
	}
	if res.Score != 40 {
		t.Fatalf("expected score 40, got %d", res.Score)
	}
	if res.Message != "Password must contain at least one uppercase letter" {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestEvaluateEmptyPassword(t *testing.T) {
	res := Evaluate("")
	if res.Valid || res.Score != 0 {
		t.Fatalf("expected invalid score 0, got %+v", res)
	}
	if res.Message != "Password must be at least 8 characters long" {
		t.Fatalf("unexpected message %q", res.Message)
	}
}
