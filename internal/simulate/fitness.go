package simulate

import (
	"github.com/elyx-health/conductor/internal/config"
	"github.com/elyx-health/conductor/internal/model"
	"github.com/elyx-health/conductor/internal/rng"
)

// SimulateFitness produces one FitnessRow and one BodyCompRow per calendar
// week (C5).
func SimulateFitness(cfg *config.Config, daily []model.DailyRow, r *rng.Source) ([]model.FitnessRow, []model.BodyCompRow) {
	p := cfg.Profile
	rules := cfg.Rules.Fitness
	b := p.Baselines

	weeks := int(p.EndDate.Sub(p.StartDate).Hours()/24/7) + 1

	dailyByDate := make(map[string]model.DailyRow, len(daily))
	for _, row := range daily {
		dailyByDate[dayKey(row.Date)] = row
	}

	vo2 := b.VO2Max
	grip := b.GripKg
	fms := b.FMS
	fev1 := b.FEV1
	bodyFat := b.BodyFatPct
	leanMass := b.LeanMassKg
	boneDensity := b.BoneDensity

	var fitnessRows []model.FitnessRow
	var bodyCompRows []model.BodyCompRow

	for w := 0; w < weeks; w++ {
		weekStart := p.StartDate.AddDate(0, 0, w*7)
		weekEnd := weekStart.AddDate(0, 0, 6)
		if weekEnd.After(p.EndDate) {
			weekEnd = p.EndDate
		}

		var adhSum float64
		var n, cardioSessions, strengthSessions int
		for d := weekStart; !d.After(weekEnd); d = d.AddDate(0, 0, 1) {
			row, ok := dailyByDate[dayKey(d)]
			if !ok {
				continue
			}
			adhSum += row.Adherence
			n++
			if row.ActiveMinutes > 35 {
				cardioSessions++
			}
			if row.Soreness > 3 {
				strengthSessions++
			}
		}
		if n == 0 {
			continue
		}
		adh := adhSum / float64(n)

		if cardioSessions >= rules.CardioSessionThreshold && adh > 0.7 {
			vo2 += r.Range(rules.VO2GainRange[0], rules.VO2GainRange[1])
		} else {
			vo2 -= rules.VO2WeeklyLossIfLow
		}
		vo2 = clamp(vo2, 20, 80)

		if strengthSessions >= rules.StrengthSessionThreshold && adh > 0.7 {
			grip += r.Range(rules.GripGainRange[0], rules.GripGainRange[1])
		}
		grip = clamp(grip, 10, 100)

		if w > 0 && w%4 == 0 && adh > 0.7 {
			fms += rules.FMSGainPer4wIfMobility2
		}
		fms = clamp(fms, 0, 21)

		if w > 0 && w%4 == 0 {
			bodyFat -= r.Range(rules.BodyFatDropRange[0], rules.BodyFatDropRange[1]) * adh
			leanMass += rules.LeanMassGainKg * adh
			fev1 += r.Range(rules.SpirometryMonthlyGainRange[0], rules.SpirometryMonthlyGainRange[1])
		}
		bodyFat = clamp(bodyFat, 3, 50)
		fev1 = clamp(fev1, 1, 7)

		fiveKTime := 30 + max0(55-vo2)*0.5
		squat := grip * 3.0
		deadlift := grip * 3.5

		fitnessRows = append(fitnessRows, model.FitnessRow{
			WeekEnd:         weekEnd,
			VO2Max:          round(vo2, 1),
			FiveKTimeMin:    round(fiveKTime, 2),
			OneRMSquatKg:    round(squat, 1),
			OneRMDeadliftKg: round(deadlift, 1),
			GripKg:          round(grip, 1),
			FMS:             round(fms, 0),
			FEV1:            round(fev1, 2),
		})
		bodyCompRows = append(bodyCompRows, model.BodyCompRow{
			WeekEnd:     weekEnd,
			BodyFatPct:  round(bodyFat, 2),
			LeanMassKg:  round(leanMass, 2),
			BoneDensity: round(boneDensity, 3),
		})
	}

	return fitnessRows, bodyCompRows
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

