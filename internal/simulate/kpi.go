package simulate

import (
	"sort"

	"github.com/elyx-health/conductor/internal/model"
)

const rationaleCoverage = 90

// SimulateKPIs folds daily, labs, fitness, and chats into one KPIMonthRow
// per calendar month (C8). Interventions are not an input.
func SimulateKPIs(daily []model.DailyRow, labs []model.LabsRow, fitness []model.FitnessRow, chats []model.ChatRow) []model.KPIMonthRow {
	type monthAgg struct {
		adhSum, sleepSum float64
		stressSum        float64
		sessionCount     int
		n                int
		weightFirst, weightLast float64
		haveWeight bool
	}

	months := make(map[string]*monthAgg)
	var order []string
	for _, d := range daily {
		key := d.Date.Format("2006-01")
		agg, ok := months[key]
		if !ok {
			agg = &monthAgg{}
			months[key] = agg
			order = append(order, key)
		}
		agg.adhSum += d.Adherence
		agg.sleepSum += d.SleepHours
		agg.stressSum += float64(d.StressScore)
		agg.n++
		if d.ActiveMinutes > 35 {
			agg.sessionCount++
		}
		if !agg.haveWeight {
			agg.weightFirst = d.WeightKg
			agg.haveWeight = true
		}
		agg.weightLast = d.WeightKg
	}
	sort.Strings(order)

	consultByMonth := make(map[string]int)
	for _, c := range chats {
		if c.Sender == "member" {
			continue
		}
		consultByMonth[c.Timestamp.Format("2006-01")]++
	}

	// Forward-filled LDL per month from quarterly labs.
	ldlByMonth := make(map[string]float64)
	lastLDL := 0.0
	labIdx := 0
	for _, key := range order {
		for labIdx < len(labs) && labs[labIdx].Date.Format("2006-01") <= key {
			lastLDL = labs[labIdx].LDLmgdl
			labIdx++
		}
		ldlByMonth[key] = lastLDL
	}

	vo2ByMonth := make(map[string]float64)
	for _, f := range fitness {
		key := f.WeekEnd.Format("2006-01")
		vo2ByMonth[key] = f.VO2Max // last week-end in the month wins
	}

	var rows []model.KPIMonthRow
	var prevWeight, prevLDL, prevVO2 float64
	havePrev := false
	for _, key := range order {
		agg := months[key]
		meanAdh := agg.adhSum / float64(agg.n)
		meanSleep := agg.sleepSum / float64(agg.n)
		meanStress := agg.stressSum / float64(agg.n)

		weightChange := 0.0
		if havePrev {
			weightChange = agg.weightLast - prevWeight
		}

		ldl := ldlByMonth[key]
		ldlChange := 0.0
		if havePrev {
			ldlChange = ldl - prevLDL
		}

		vo2 := vo2ByMonth[key]
		vo2Change := 0.0
		if havePrev {
			vo2Change = vo2 - prevVO2
		}

		rows = append(rows, model.KPIMonthRow{
			Month:             key,
			MeanAdherence:     round(meanAdh, 3),
			WeightChangeKg:    round(weightChange, 2),
			MeanSleepHours:    round(meanSleep, 1),
			MeanStress:        round(meanStress, 1),
			SessionCount:      agg.sessionCount,
			ConsultCount:      consultByMonth[key],
			LDLChangeMgdl:     round(ldlChange, 1),
			VO2Change:         round(vo2Change, 1),
			RationaleCoverage: rationaleCoverage,
		})

		prevWeight = agg.weightLast
		prevLDL = ldl
		prevVO2 = vo2
		havePrev = true
	}

	return rows
}
