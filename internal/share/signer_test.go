package share

import (
	"testing"
	"time"
)

func TestIssueAndValidate(t *testing.T) {
	signer := NewSigner([]byte("secret"))

	token, err := signer.Issue("record-123", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	recordID, err := signer.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if recordID != "record-123" {
		t.Errorf("record id = %q", recordID)
	}
}

func TestValidate_WrongKey(t *testing.T) {
	token, err := NewSigner([]byte("key-a")).Issue("record-123", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewSigner([]byte("key-b")).Validate(token); err == nil {
		t.Fatal("token signed with another key should not validate")
	}
}

func TestValidate_Expired(t *testing.T) {
	signer := NewSigner([]byte("secret"))

	token, err := signer.Issue("record-123", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := signer.Validate(token); err == nil {
		t.Fatal("expired token should not validate")
	}
}

func TestValidate_Garbage(t *testing.T) {
	signer := NewSigner([]byte("secret"))
	if _, err := signer.Validate("not.a.token"); err == nil {
		t.Fatal("garbage token should not validate")
	}
}

func TestIssue_UniqueTokens(t *testing.T) {
	signer := NewSigner([]byte("secret"))

	a, _ := signer.Issue("record-123", time.Minute)
	b, _ := signer.Issue("record-123", time.Minute)
	if a == b {
		t.Error("tokens for the same record should carry distinct ids")
	}
}
