// Package chatsim drives a running RAG API with a simulated conversational
// trace (C15): an offline batch that interleaves scheduled-event
// notifications with member-initiated questions and records every
// request/response pair with its timestamp.
package chatsim

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"
)

const (
	businessHourStart = 8
	businessHourEnd   = 19
)

// ScheduledEvent is a travel or illness event that the simulator delivers
// as a team-initiated message on its date.
type ScheduledEvent struct {
	Date time.Time
	Type string
	Note string
}

// TraceMessage is one recorded exchange in the simulated conversation.
type TraceMessage struct {
	Timestamp time.Time
	Initiator string // "member" | "team"
	Question  string
	Role      string
	Answer    string
	Sources   []string
}

// memberQuestions are templated questions a simulated member might ask,
// varied enough to exercise every role's routing keywords.
var memberQuestions = []string{
	"What's my latest LDL?",
	"How has my sleep been this week?",
	"Can we reschedule my appointment?",
	"What should my next meal plan look like?",
	"How is my VO2 max trending?",
	"Can I get a summary of my progress this month?",
	"Why did I get flagged for a follow-up?",
	"What's my resting heart rate been doing lately?",
}

// Simulator advances a wall-clock cursor across [start, end], issuing /ask
// calls against a running API and recording the resulting trace.
type Simulator struct {
	apiBase string
	client  *http.Client
	start   time.Time
	end     time.Time
	events  []ScheduledEvent
}

// NewSimulator builds a Simulator that will call apiBase's /ask endpoint.
func NewSimulator(apiBase string, start, end time.Time, events []ScheduledEvent) *Simulator {
	return &Simulator{
		apiBase: apiBase,
		client:  &http.Client{Timeout: 30 * time.Second},
		start:   start,
		end:     end,
		events:  events,
	}
}

// Run advances the timeline day by day from start to end, delivering
// scheduled events and 1-3 alternating member/team conversations per day,
// issuing live /ask calls for each.
func (s *Simulator) Run(ctx context.Context) ([]TraceMessage, error) {
	eventsByDay := make(map[string][]ScheduledEvent, len(s.events))
	for _, e := range s.events {
		key := e.Date.Format("2006-01-02")
		eventsByDay[key] = append(eventsByDay[key], e)
	}

	var trace []TraceMessage
	cursor := firstBusinessMoment(s.start)

	for day := s.start; !day.After(s.end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")

		for _, e := range eventsByDay[key] {
			question := fmt.Sprintf("The member has a scheduled %s event: %s. Any adjustments needed?", e.Type, e.Note)
			msg, err := s.ask(ctx, cursor, "team", question, "")
			if err != nil {
				return trace, err
			}
			trace = append(trace, *msg)
			cursor = advanceCursor(cursor)
		}

		conversations := 1 + randIntN(3)
		for i := 0; i < conversations; i++ {
			initiator := "member"
			if i%2 == 1 {
				initiator = "team"
			}
			question := memberQuestions[randIntN(len(memberQuestions))]
			msg, err := s.ask(ctx, cursor, initiator, question, "")
			if err != nil {
				return trace, err
			}
			trace = append(trace, *msg)
			cursor = advanceCursor(cursor)
		}
	}

	return trace, nil
}

func (s *Simulator) ask(ctx context.Context, at time.Time, initiator, question, explicitRole string) (*TraceMessage, error) {
	body, err := json.Marshal(map[string]string{"question": question, "role": explicitRole})
	if err != nil {
		return nil, fmt.Errorf("marshal ask request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiBase+"/ask", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build ask request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ask request failed: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Role    string   `json:"role"`
		Answer  string   `json:"answer"`
		Sources []string `json:"sources"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode ask response: %w", err)
	}

	return &TraceMessage{
		Timestamp: at,
		Initiator: initiator,
		Question:  question,
		Role:      out.Role,
		Answer:    out.Answer,
		Sources:   out.Sources,
	}, nil
}

// firstBusinessMoment returns the first business-hours moment on or after day.
func firstBusinessMoment(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), businessHourStart, 0, 0, 0, day.Location())
}

// advanceCursor moves the cursor forward 15-120 minutes, wrapping into the
// next morning's business-hours window if it would otherwise fall outside
// [businessHourStart, businessHourEnd).
func advanceCursor(cursor time.Time) time.Time {
	minutes := 15 + randIntN(106)
	next := cursor.Add(time.Duration(minutes) * time.Minute)
	if next.Hour() >= businessHourEnd {
		next = firstBusinessMoment(next.AddDate(0, 0, 1))
	}
	return next
}

func randIntN(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.IntN(n)
}

// LoadScheduledEvents reads the events table for memberID, for delivery as
// team-initiated notifications during the simulated timeline.
func LoadScheduledEvents(ctx context.Context, db *sql.DB, memberID string) ([]ScheduledEvent, error) {
	rows, err := db.QueryContext(ctx, `SELECT date, type, note FROM events WHERE member_id = $1 ORDER BY date`, memberID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []ScheduledEvent
	for rows.Next() {
		var e ScheduledEvent
		if err := rows.Scan(&e.Date, &e.Type, &e.Note); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
