package genclient

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
)

// Credential is one API key eligible for round-robin rotation.
type Credential struct {
	Key string
}

// CredentialRing rotates through an immutable slice of credentials using an
// atomic counter, so concurrent callers never contend on a mutex for the
// common case of picking "the next" credential.
type CredentialRing struct {
	creds []Credential
	next  atomic.Uint64
}

// NewCredentialRing builds a ring over creds. Panics if creds is empty since
// a ring with nothing to rotate over indicates a configuration error the
// caller must fix before serving traffic.
func NewCredentialRing(creds []Credential) *CredentialRing {
	if len(creds) == 0 {
		panic("genclient: credential ring requires at least one credential")
	}
	cp := make([]Credential, len(creds))
	copy(cp, creds)
	return &CredentialRing{creds: cp}
}

// Len reports how many credentials are in rotation.
func (r *CredentialRing) Len() int { return len(r.creds) }

// Take returns the next credential in round-robin order.
func (r *CredentialRing) Take() Credential {
	i := r.next.Add(1) - 1
	return r.creds[i%uint64(len(r.creds))]
}

// CredentialsFromEnv parses a comma-separated key list from the named
// environment variable, e.g. ELYX_GENERATOR_KEYS=key1,key2,key3.
func CredentialsFromEnv(envVar string) ([]Credential, error) {
	raw := os.Getenv(envVar)
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%s is not set or empty", envVar)
	}
	parts := strings.Split(raw, ",")
	creds := make([]Credential, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		creds = append(creds, Credential{Key: p})
	}
	if len(creds) == 0 {
		return nil, fmt.Errorf("%s contained no usable credentials", envVar)
	}
	return creds, nil
}
