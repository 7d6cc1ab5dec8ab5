package simulate

import (
	"github.com/elyx-health/conductor/internal/config"
	"github.com/elyx-health/conductor/internal/model"
	"github.com/elyx-health/conductor/internal/rng"
)

// stressBaseline is the center of the 1..5 stress scale the daily
// simulator reverts toward each day before event and noise terms are
// applied. Not a profile-level knob: every member's stress scale has the
// same center by construction.
const stressBaseline = 3.0

type dailyState struct {
	weight           float64
	rhr              float64
	hrv              float64
	sleepHours       float64
	sleepQuality     int
	stress           int
	noWeightLossDays int
}

// SimulateDaily produces one DailyRow per calendar day in [start,end] (C3).
//
// State update order is part of the contract: the weight update for day d
// reads the adherence value freshly computed for day d, not the prior
// day's.
func SimulateDaily(cfg *config.Config, events []model.EventRow, r *rng.Source) []model.DailyRow {
	p := cfg.Profile
	rules := cfg.Rules.Daily
	byDay := eventsByDay(events)

	st := dailyState{
		weight:       p.Baselines.WeightKg,
		rhr:          p.Baselines.RHRBpm,
		hrv:          p.Baselines.HRVMs,
		sleepHours:   p.Baselines.SleepHours,
		sleepQuality: 3,
		stress:       int(stressBaseline),
	}

	var rows []model.DailyRow
	for d := p.StartDate; !d.After(p.EndDate); d = d.AddDate(0, 0, 1) {
		dayEvents := byDay[dayKey(d)]
		hasTravel, hasIllness := false, false
		var travelIntensitySum, illnessIntensitySum float64
		for _, e := range dayEvents {
			switch e.Type {
			case "travel":
				hasTravel = true
				travelIntensitySum += float64(e.Intensity)
			case "illness":
				hasIllness = true
				illnessIntensitySum += float64(e.Intensity)
			}
		}

		// 2. Adherence — illness and travel penalties both apply whenever
		// their respective events are active the same day (per-event, not
		// mutually exclusive).
		adh := p.AdherenceBase
		adh -= rules.TravelAdherencePenalty * travelIntensitySum
		adh -= rules.IllnessAdherencePenalty * illnessIntensitySum
		adh += r.Gauss(0, rules.AdherenceNoiseStd)
		adh = clamp(adh, 0, 1)

		// 3. Steps / active minutes.
		steps := int(4000 + 6000*adh + r.Gauss(0, rules.StepsNoiseStd))
		activeMinutes := 60*adh + r.Gauss(0, rules.ActiveMinutesNoiseStd)
		if activeMinutes < 0 {
			activeMinutes = 0
		}

		// 4. Sleep.
		sleepHours := p.Baselines.SleepHours
		if hasTravel {
			sleepHours -= r.Range(rules.TravelSleepPenaltyRange[0], rules.TravelSleepPenaltyRange[1])
		}
		sleepHours += r.Gauss(0, rules.SleepNoiseStd)
		sleepHours = clamp(sleepHours, p.Bounds.SleepHours[0], p.Bounds.SleepHours[1])
		st.sleepHours = sleepHours
		sleepQuality := clampInt(int(5-(p.Baselines.SleepHours-sleepHours)), 1, 5)
		st.sleepQuality = sleepQuality

		// 5. Stress.
		stress := stressBaseline
		if hasTravel {
			stress += 1
		}
		if hasIllness {
			stress += 1
		}
		stress += r.Gauss(0, rules.StressNoiseStd)
		stressInt := clampInt(int(stress+0.5), int(p.Bounds.Stress[0]), int(p.Bounds.Stress[1]))
		st.stress = stressInt

		// 6. Caloric balance.
		caloricBalance := -300*adh + r.Gauss(0, rules.CaloricNoiseStd)

		// 7. Weight — plateau promotion: after plateau_after_days of no
		// loss, force a plateau-breaking loss and reset the counter
		// regardless of the day's caloric balance.
		weeklyLoss := 0.0
		if caloricBalance < 0 {
			weeklyLoss = rules.WeeklyLossIfHighAdherenceKg * adh
			st.noWeightLossDays = 0
		} else {
			st.noWeightLossDays++
		}
		if rules.PlateauAfterDays > 0 && st.noWeightLossDays >= rules.PlateauAfterDays {
			weeklyLoss = rules.WeeklyLossIfHighAdherenceKg
			st.noWeightLossDays = 0
		}
		delta := -weeklyLoss/7 + r.Gauss(0, rules.WeightNoiseStd)/7
		if hasTravel {
			delta += rules.TravelWaterGainKg
		}
		st.weight = clamp(st.weight+delta, p.Bounds.WeightKg[0], p.Bounds.WeightKg[1])

		// 8. RHR / HRV.
		rhr := st.rhr + r.Gauss(0, rules.RHRNoiseStd)
		hrv := st.hrv + r.Gauss(0, rules.HRVNoiseStd)
		if hasTravel {
			rhr += r.Range(rules.TravelRHRBumpRange[0], rules.TravelRHRBumpRange[1])
			hrv += r.Range(rules.TravelHRVBumpRange[0], rules.TravelHRVBumpRange[1])
		}
		if hasIllness {
			rhr += r.Range(rules.IllnessRHRBumpRange[0], rules.IllnessRHRBumpRange[1])
			hrv += r.Range(rules.IllnessHRVBumpRange[0], rules.IllnessHRVBumpRange[1])
		}
		if adh > 0.75 && sleepHours > 6.8 {
			rhr -= rules.RecoveryImprovementFrac * rhr
			hrv += rules.RecoveryImprovementFrac * hrv
		}
		st.rhr = clamp(rhr, p.Bounds.RHRBpm[0], p.Bounds.RHRBpm[1])
		st.hrv = clamp(hrv, p.Bounds.HRVMs[0], p.Bounds.HRVMs[1])

		rows = append(rows, model.DailyRow{
			Date:               d,
			Adherence:          round(adh, 3),
			Steps:              steps,
			ActiveMinutes:      round(activeMinutes, 1),
			WeightKg:           round(st.weight, 2),
			RHRBpm:             round(st.rhr, 0),
			HRVMs:              round(st.hrv, 1),
			SleepHours:         round(st.sleepHours, 1),
			SleepQuality:       st.sleepQuality,
			StressScore:        st.stress,
			Soreness:           clampInt(r.IntRange(0, 10), int(p.Bounds.Soreness[0]), int(p.Bounds.Soreness[1])),
			CaloricBalanceKcal: round(caloricBalance, 1),
		})
	}

	return rows
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
