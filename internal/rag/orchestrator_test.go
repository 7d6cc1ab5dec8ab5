package rag

import "testing"

func TestEnforceCitations_KeepsKnownCitation(t *testing.T) {
	docs := []RetrievedDoc{{ID: "daily:2025-03-01", Text: "steps 8000"}}
	text, sources := enforceCitations("Your steps were high [daily:2025-03-01].", docs)

	if text != "Your steps were high [daily:2025-03-01]." {
		t.Fatalf("unexpected text: %q", text)
	}
	if len(sources) != 1 || sources[0] != "daily:2025-03-01" {
		t.Fatalf("unexpected sources: %v", sources)
	}
}

func TestEnforceCitations_AppendsSentinelWhenUncited(t *testing.T) {
	docs := []RetrievedDoc{{ID: "daily:2025-03-01", Text: "steps 8000"}}
	text, sources := enforceCitations("Your steps were high.", docs)

	if text != "Your steps were high. "+generalContextSentinel {
		t.Fatalf("unexpected text: %q", text)
	}
	if len(sources) != 1 || sources[0] != generalContextSentinel {
		t.Fatalf("unexpected sources: %v", sources)
	}
}

func TestEnforceCitations_IgnoresUnknownBracketedTokens(t *testing.T) {
	docs := []RetrievedDoc{{ID: "daily:2025-03-01", Text: "steps 8000"}}
	text, sources := enforceCitations("See [some-other-id] for details.", docs)

	if text != "See [some-other-id] for details. "+generalContextSentinel {
		t.Fatalf("unexpected text: %q", text)
	}
	if len(sources) != 1 || sources[0] != generalContextSentinel {
		t.Fatalf("unexpected sources: %v", sources)
	}
}
