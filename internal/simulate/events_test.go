package simulate

import (
	"testing"
	"time"

	"github.com/elyx-health/conductor/internal/model"
	"github.com/elyx-health/conductor/internal/rng"
)

func TestGenerateEvents_TravelCadenceBoundary(t *testing.T) {
	profile := &model.Profile{
		Seed:      7,
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 32*7-1),
		Cadence: model.Cadence{
			TravelEveryNWeeks: 4,
			IllnessProbWeekly: 0, // isolate the travel cadence from illness noise
		},
	}
	r := rng.New(profile.Seed)

	events := GenerateEvents(profile, r)

	travelDays := 0
	for _, e := range events {
		if e.Type == "travel" {
			travelDays++
		}
	}

	// 32 weeks / 4-week cadence, excluding week 0, gives 7 trips of 7 days.
	want := 7 * travelBlockDays
	if travelDays != want {
		t.Fatalf("travel days = %d, want %d", travelDays, want)
	}
}

func TestGenerateEvents_NoIllnessWhenProbabilityZero(t *testing.T) {
	profile := &model.Profile{
		Seed:      1,
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 2, 6, 0, 0, 0, 0, time.UTC),
		Cadence: model.Cadence{
			TravelEveryNWeeks: 0,
			IllnessProbWeekly: 0,
		},
	}
	r := rng.New(profile.Seed)

	events := GenerateEvents(profile, r)
	if len(events) != 0 {
		t.Fatalf("got %d events with travel and illness disabled, want 0", len(events))
	}
}
