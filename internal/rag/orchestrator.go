package rag

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/elyx-health/conductor/internal/genclient"
)

// generalContextSentinel is appended to an answer that cites nothing, so
// every answer carries at least one bracketed citation token.
const generalContextSentinel = "[General Context]"

var citationPattern = regexp.MustCompile(`\[[^\[\]]+\]`)

// rolePersonas ground each role's voice in its table ownership. The router
// does not read them; it scores questions against its own keyword lists.
var rolePersonas = map[Role]string{
	RoleRuby:     "Ruby, the concierge coordinating scheduling, logistics, and day-to-day admin.",
	RoleDrWarren: "Dr. Warren, the physician responsible for lab results and medical history.",
	RoleAdvik:    "Advik, the performance analyst tracking sleep, recovery, and wearable data.",
	RoleCarla:    "Carla, the nutritionist responsible for diet, meal plans, and body composition.",
	RoleRachel:   "Rachel, the trainer responsible for workouts, strength, and mobility.",
	RoleNeel:     "Neel, the relationship manager summarizing overall progress and trends.",
}

const rulesBlock = `Answer only from the facts and sources provided below. Cite every
factual claim with the bracketed source id it came from, e.g. [daily:2025-03-01].
If no source supports a claim, do not make it.`

// Answer is the orchestrated, citation-enforced response to a question.
type Answer struct {
	Role    Role
	Text    string
	Sources []string
}

// Orchestrator assembles a prompt from facts and retrieved documents, then
// delegates generation to a genclient.Driver and enforces the citation
// post-condition on the result (C13).
type Orchestrator struct {
	facts     *FactsAssembler
	retriever *Retriever
	driver    genclient.Driver
	topK      int
}

// NewOrchestrator wires the facts assembler, retriever, and generator
// driver together. topK bounds how many retrieved documents are folded into
// the prompt.
func NewOrchestrator(facts *FactsAssembler, retriever *Retriever, driver genclient.Driver, topK int) *Orchestrator {
	if topK <= 0 || topK > 3 {
		topK = 3
	}
	return &Orchestrator{facts: facts, retriever: retriever, driver: driver, topK: topK}
}

// Ask performs route → retrieve → assemble → generate → enforce, in that
// fixed order: later steps read the earlier steps' outputs, so no
// reordering or parallelization across steps is permitted.
func (o *Orchestrator) Ask(ctx context.Context, question, explicitRole string, since *time.Time) (*Answer, error) {
	role := Route(question, explicitRole)

	docs, err := o.retriever.Query(ctx, role, question, o.topK, since)
	if err != nil {
		return nil, fmt.Errorf("retrieve documents: %w", err)
	}

	factsText, err := o.facts.Assemble(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("assemble facts: %w", err)
	}

	prompt := buildPrompt(role, question, factsText, docs)

	generated, err := o.driver.Generate(ctx, genclient.Prompt{Text: prompt, ModelSize: "large"})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	text, sources := enforceCitations(generated, docs)
	return &Answer{Role: role, Text: text, Sources: sources}, nil
}

func buildPrompt(role Role, question, factsText string, docs []RetrievedDoc) string {
	var b strings.Builder
	b.WriteString(rolePersonas[role])
	b.WriteString("\n\n")
	b.WriteString(rulesBlock)
	b.WriteString("\n\nFACTS:\n")
	b.WriteString(factsText)
	b.WriteString("\n\nSOURCES:\n")
	for _, d := range docs {
		fmt.Fprintf(&b, "[%s] %s\n", d.ID, d.Text)
	}
	b.WriteString("\nQUESTION:\n")
	b.WriteString(question)
	return b.String()
}

// enforceCitations scans the generated text for bracketed citation tokens
// that match a retrieved document id. If none are found, it appends the
// general-context sentinel so every answer carries at least one citation.
func enforceCitations(generated string, docs []RetrievedDoc) (string, []string) {
	known := make(map[string]bool, len(docs))
	for _, d := range docs {
		known[d.ID] = true
	}

	var cited []string
	for _, match := range citationPattern.FindAllString(generated, -1) {
		id := strings.Trim(match, "[]")
		if known[id] {
			cited = append(cited, id)
		}
	}

	if len(cited) == 0 {
		return strings.TrimRight(generated, " \n") + " " + generalContextSentinel, []string{generalContextSentinel}
	}
	return generated, cited
}
