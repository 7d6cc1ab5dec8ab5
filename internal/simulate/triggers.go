package simulate

import (
	"fmt"

	"github.com/elyx-health/conductor/internal/config"
	"github.com/elyx-health/conductor/internal/model"
)

// SimulateTriggers scans daily and labs tables and emits InterventionRows
// (C6). Runs after daily and labs are both finalized.
//
// CV-01 fires per-day (not latched to the start of a contiguous
// violation): every index i>=6 whose 7-day trailing RHR mean or
// day-over-day HRV drop crosses threshold emits its own row, so a
// multi-day violation produces one InterventionRow per day.
func SimulateTriggers(cfg *config.Config, daily []model.DailyRow, labs []model.LabsRow) []model.InterventionRow {
	p := cfg.Profile
	rules := cfg.Rules.Triggers

	var out []model.InterventionRow
	seq := 0
	nextID := func(ruleID string) string {
		seq++
		return fmt.Sprintf("%s-%04d", ruleID, seq)
	}

	for i := 6; i < len(daily); i++ {
		var rhrSum float64
		for j := i - 6; j <= i; j++ {
			rhrSum += daily[j].RHRBpm
		}
		rhrMean := rhrSum / 7

		var hrvDropFrac float64
		if daily[i-1].HRVMs != 0 {
			hrvDropFrac = (daily[i-1].HRVMs - daily[i].HRVMs) / daily[i-1].HRVMs
		}

		fires := rhrMean > p.Baselines.RHRBpm+rules.CV01RHRDeltaThreshold ||
			hrvDropFrac > rules.CV01HRVDropFrac

		if fires {
			var metric string
			var value float64
			if rhrMean > p.Baselines.RHRBpm+rules.CV01RHRDeltaThreshold {
				metric, value = "rhr_7d_mean", rhrMean
			} else {
				metric, value = "hrv_drop_frac", hrvDropFrac
			}
			out = append(out, model.InterventionRow{
				ID:            nextID("CV-01"),
				Date:          daily[i].Date,
				RuleID:        "CV-01",
				TriggerMetric: metric,
				TriggerValue:  round(value, 2),
				Action:        "Cardiovascular drift review",
				Owner:         "coach",
				FollowUpDate:  daily[i].Date.AddDate(0, 0, rules.CV01FollowUpDays),
				Note:          "7-day RHR/HRV drift threshold exceeded",
			})
		}
	}

	for _, lab := range labs {
		if lab.LDLmgdl > rules.LIP02LDLThreshold {
			out = append(out, model.InterventionRow{
				ID:            nextID("LIP-02"),
				Date:          lab.Date,
				RuleID:        "LIP-02",
				TriggerMetric: "ldl_mgdl",
				TriggerValue:  round(lab.LDLmgdl, 1),
				Action:        "Lipid panel follow-up",
				Owner:         "nutritionist",
				FollowUpDate:  lab.Date.AddDate(0, 0, rules.LIP02FollowUpDays),
				Note:          "LDL above threshold",
			})
		}
	}

	return out
}
