package genclient

import "testing"

func TestCredentialRing_RoundRobin(t *testing.T) {
	ring := NewCredentialRing([]Credential{{Key: "a"}, {Key: "b"}, {Key: "c"}})

	var got []string
	for i := 0; i < 7; i++ {
		got = append(got, ring.Take().Key)
	}

	want := []string{"a", "b", "c", "a", "b", "c", "a"}
	for i, k := range want {
		if got[i] != k {
			t.Fatalf("Take() sequence = %v, want %v", got, want)
		}
	}
}

func TestNewCredentialRing_PanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for empty credential list")
		}
	}()
	NewCredentialRing(nil)
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv("ELYX_TEST_KEYS", " key1 ,key2,, key3")

	creds, err := CredentialsFromEnv("ELYX_TEST_KEYS")
	if err != nil {
		t.Fatalf("CredentialsFromEnv() error = %v", err)
	}
	want := []string{"key1", "key2", "key3"}
	if len(creds) != len(want) {
		t.Fatalf("got %d credentials, want %d", len(creds), len(want))
	}
	for i, w := range want {
		if creds[i].Key != w {
			t.Errorf("creds[%d] = %q, want %q", i, creds[i].Key, w)
		}
	}
}

func TestCredentialsFromEnv_Unset(t *testing.T) {
	t.Setenv("ELYX_TEST_KEYS_UNSET", "")
	if _, err := CredentialsFromEnv("ELYX_TEST_KEYS_UNSET"); err == nil {
		t.Fatal("expected error for unset env var")
	}
}
