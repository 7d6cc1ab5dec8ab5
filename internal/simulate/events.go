package simulate

import (
	"sort"
	"time"

	"github.com/elyx-health/conductor/internal/model"
	"github.com/elyx-health/conductor/internal/rng"
)

const (
	travelBlockDays = 7
)

// GenerateEvents produces the travel/illness event stream (C2).
//
// For each week index w in [0, weeks): if w>0 and w mod travel_every_n_weeks
// == 0, a fixed 7-day travel block starts at the week boundary with a
// uniform 1..3 intensity. Independently, with probability
// illness_probability_weekly, an illness block of length 3..5 starts on a
// random day of that week with uniform 1..2 intensity. Blocks may overlap;
// output is sorted by date.
func GenerateEvents(profile *model.Profile, r *rng.Source) []model.EventRow {
	var events []model.EventRow

	weeks := int(profile.EndDate.Sub(profile.StartDate).Hours()/24/7) + 1
	cadence := profile.Cadence

	for w := 0; w < weeks; w++ {
		weekStart := profile.StartDate.AddDate(0, 0, w*7)

		if w > 0 && cadence.TravelEveryNWeeks > 0 && w%cadence.TravelEveryNWeeks == 0 {
			intensity := r.IntRange(1, 3)
			events = append(events, model.EventRow{
				Date:      weekStart,
				Type:      "travel",
				Intensity: intensity,
				Note:      "travel block",
			})
			for d := 1; d < travelBlockDays; d++ {
				day := weekStart.AddDate(0, 0, d)
				if day.After(profile.EndDate) {
					break
				}
				events = append(events, model.EventRow{
					Date:      day,
					Type:      "travel",
					Intensity: intensity,
					Note:      "travel block",
				})
			}
		}

		if r.Bool(cadence.IllnessProbWeekly) {
			startOffset := r.IntRange(0, 6)
			length := r.IntRange(3, 5)
			intensity := r.IntRange(1, 2)
			illnessStart := weekStart.AddDate(0, 0, startOffset)
			for d := 0; d < length; d++ {
				day := illnessStart.AddDate(0, 0, d)
				if day.After(profile.EndDate) {
					break
				}
				events = append(events, model.EventRow{
					Date:      day,
					Type:      "illness",
					Intensity: intensity,
					Note:      "illness block",
				})
			}
		}
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].Date.Equal(events[j].Date) {
			return events[i].Type < events[j].Type
		}
		return events[i].Date.Before(events[j].Date)
	})

	return events
}

// eventsByDay indexes events by calendar day for O(1) lookup during the
// daily simulation pass.
func eventsByDay(events []model.EventRow) map[string][]model.EventRow {
	idx := make(map[string][]model.EventRow)
	for _, e := range events {
		key := e.Date.Format("2006-01-02")
		idx[key] = append(idx[key], e)
	}
	return idx
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
