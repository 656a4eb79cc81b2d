package credentials

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	if _, err := New("", "secret"); err == nil {
		t.Error("expected error for empty key")
	}
	if _, err := New("key", ""); err == nil {
		t.Error("expected error for empty secret")
	}
	c, err := New("foo1", "foo2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.KeyID != "foo1" {
		t.Errorf("KeyID = %q", c.KeyID)
	}
	if c.Secret.Expose() != "foo2" {
		t.Errorf("Secret.Expose() = %q", c.Secret.Expose())
	}
}

func TestKeySecretNeverLeaks(t *testing.T) {
	c, err := New("foo1", "supersecretvalue")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(c.String(), "supersecretvalue") {
		t.Error("Credentials.String() leaked the secret")
	}
	if strings.Contains(c.Secret.String(), "supersecretvalue") {
		t.Error("KeySecret.String() leaked the secret")
	}
}

func TestNewWithSTS(t *testing.T) {
	c, err := NewWithSTS("foo", "bar", "token123")
	if err != nil {
		t.Fatal(err)
	}
	if !c.HasSTS() {
		t.Error("expected HasSTS() true")
	}
	if c.SecurityToken != "token123" {
		t.Errorf("SecurityToken = %q", c.SecurityToken)
	}
}
