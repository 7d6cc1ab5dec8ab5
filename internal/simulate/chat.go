package simulate

import (
	"fmt"
	"sort"
	"time"

	"github.com/elyx-health/conductor/internal/config"
	"github.com/elyx-health/conductor/internal/model"
	"github.com/elyx-health/conductor/internal/rng"
)

var ambientMemberMessages = []string{
	"Feeling good about my adherence this week.",
	"Slept rough again, not sure why.",
	"Energy has been up and down.",
	"Did an extra session today, felt strong.",
	"Weight's been stubborn the last few days.",
	"Question about the evening routine.",
	"Recovering from a long day, going to rest.",
	"Noticed my stress is higher than usual.",
}

var teamReplyMessages = map[string]string{
	"coach":        "Logged, let's keep an eye on it this week.",
	"nutritionist": "Noted — let's revisit the plan at the next check-in.",
	"concierge":    "Got it, I'll flag this for the team.",
}

// SimulateChats produces the timestamped message stream (C7): ambient
// weekly traffic plus one message per intervention, sorted by timestamp.
func SimulateChats(cfg *config.Config, interventions []model.InterventionRow, r *rng.Source) []model.ChatRow {
	p := cfg.Profile
	rules := cfg.Rules.Chat

	var rows []model.ChatRow

	for _, iv := range interventions {
		rows = append(rows, model.ChatRow{
			Timestamp:            time.Date(iv.Date.Year(), iv.Date.Month(), iv.Date.Day(), 10, 0, 0, 0, iv.Date.Location()),
			Sender:               iv.Owner,
			Role:                 iv.Owner,
			Text:                 fmt.Sprintf("Following up: %s (%s = %.2f).", iv.Action, iv.TriggerMetric, iv.TriggerValue),
			Tags:                 []string{"intervention", iv.RuleID},
			LinkedInterventionID: iv.ID,
		})
	}

	weeks := int(p.EndDate.Sub(p.StartDate).Hours()/24/7) + 1
	for w := 0; w < weeks; w++ {
		weekStart := p.StartDate.AddDate(0, 0, w*7)
		k := r.Poisson(rules.AmbientWeeklyLambda)
		for i := 0; i < k; i++ {
			dayOffset := r.IntRange(0, 6)
			day := weekStart.AddDate(0, 0, dayOffset)
			if day.After(p.EndDate) {
				continue
			}
			hour := r.IntRange(rules.BusinessHourStart, rules.BusinessHourEnd-1)
			minute := r.IntRange(0, 59)
			ts := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())

			text := ambientMemberMessages[r.IntRange(0, len(ambientMemberMessages)-1)]
			linked := linkedInterventionWithin(interventions, day, rules.LinkWindowDays)

			rows = append(rows, model.ChatRow{
				Timestamp:            ts,
				Sender:               "member",
				Role:                 "member",
				Text:                 text,
				Tags:                 []string{"ambient"},
				LinkedInterventionID: linked,
			})

			if r.Bool(rules.TeamReplyProbability) {
				role := weightedRole(r, rules.TeamReplyWeights)
				reply := teamReplyMessages[role]
				replyTs := ts.Add(time.Duration(r.IntRange(5, 90)) * time.Minute)
				rows = append(rows, model.ChatRow{
					Timestamp:            replyTs,
					Sender:               role,
					Role:                 role,
					Text:                 reply,
					Tags:                 []string{"ambient", "reply"},
					LinkedInterventionID: linked,
				})
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Timestamp.Before(rows[j].Timestamp) })
	return rows
}

func linkedInterventionWithin(interventions []model.InterventionRow, day time.Time, windowDays int) string {
	for _, iv := range interventions {
		diff := iv.Date.Sub(day).Hours() / 24
		if diff < 0 {
			diff = -diff
		}
		if diff <= float64(windowDays) {
			return iv.ID
		}
	}
	return ""
}

func weightedRole(r *rng.Source, weights map[string]float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	pick := r.Range(0, total)
	cum := 0.0
	// Deterministic traversal order is required for reproducibility; a
	// fixed key order is used rather than ranging a map directly.
	for _, role := range []string{"coach", "nutritionist", "concierge"} {
		cum += weights[role]
		if pick <= cum {
			return role
		}
	}
	return "coach"
}
