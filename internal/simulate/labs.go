package simulate

import (
	"sort"
	"time"

	"github.com/elyx-health/conductor/internal/config"
	"github.com/elyx-health/conductor/internal/model"
	"github.com/elyx-health/conductor/internal/rng"
)

// otherLabFields rounds the ~25-field lab panel out with values that are
// held near baseline with mild noise, per §4.4's "remaining labs" clause.
var otherLabFields = map[string]float64{
	"alt_u_l":        22,
	"ast_u_l":        20,
	"ggt_u_l":        25,
	"creatinine_mgdl": 0.9,
	"egfr":           95,
	"tsh_miu_l":      1.8,
	"free_t4_ngdl":   1.2,
	"vitamin_d_ngml": 38,
	"vitamin_b12_pgml": 450,
	"ferritin_ngml":  90,
	"iron_ugdl":      85,
	"a1c_pct":        5.3,
	"uric_acid_mgdl": 5.0,
	"sodium_mmoll":   140,
	"potassium_mmoll": 4.2,
	"calcium_mgdl":   9.5,
	"albumin_gdl":    4.4,
}

// SimulateLabs produces one LabsRow per scheduled quarterly date (C4).
func SimulateLabs(cfg *config.Config, daily []model.DailyRow, r *rng.Source) []model.LabsRow {
	p := cfg.Profile
	rules := cfg.Rules.Labs
	b := p.Baselines

	dailyByDate := make(map[string]model.DailyRow, len(daily))
	for _, d := range daily {
		dailyByDate[dayKey(d.Date)] = d
	}

	// Sorted so the per-field noise draws follow a fixed order across runs.
	otherKeys := make([]string, 0, len(otherLabFields))
	for k := range otherLabFields {
		otherKeys = append(otherKeys, k)
	}
	sort.Strings(otherKeys)

	var rows []model.LabsRow
	for _, weekOffset := range p.Cadence.QuarterlyLabsWeeks {
		q := p.StartDate.AddDate(0, 0, weekOffset*7)
		if q.After(p.EndDate) {
			continue
		}

		adh := meanAdherenceWindow(dailyByDate, q, 84, p.AdherenceBase)
		monthsSince := int(q.Sub(p.StartDate).Hours() / 24 / 30)
		quartersPassed := monthsSince / 3
		if quartersPassed < 1 {
			quartersPassed = 1
		}

		fpg := b.FPGmgdl - r.Range(rules.GlycemicRange[0], rules.GlycemicRange[1])*adh*float64(quartersPassed) + r.Gauss(0, rules.GlycemicNoiseStd)
		ogtt := b.OGTT2hmgdl - r.Range(rules.GlycemicRange[0], rules.GlycemicRange[1])*adh*float64(quartersPassed)*1.5 + r.Gauss(0, rules.GlycemicNoiseStd)

		deltaLDL := -float64(monthsSince) * r.Range(rules.LDLRange[0], rules.LDLRange[1]) * (adh * 0.33)
		deltaHDL := float64(monthsSince) * r.Range(rules.HDLRange[0], rules.HDLRange[1]) * (adh * 0.33)
		deltaTG := -float64(monthsSince) * r.Range(rules.TGRange[0], rules.TGRange[1]) * (adh * 0.33)

		ldl := b.LDLmgdl + deltaLDL
		hdl := b.HDLmgdl + deltaHDL
		tg := b.TGmgdl + deltaTG
		totalChol := ldl + hdl + tg/5

		apob := b.ApoBmgdl + deltaLDL*rules.ApoBCoef
		apoa1 := b.ApoA1mgdl + deltaHDL*rules.ApoA1Coef

		crp := b.CRPmgl + r.Gauss(0, rules.CRPNoiseStd)
		crp = crp - rules.CRPRevertRate*(crp-b.CRPmgl)

		other := make(map[string]float64, len(otherLabFields))
		for _, k := range otherKeys {
			base := otherLabFields[k]
			other[k] = round(base+r.Gauss(0, base*rules.OtherNoiseStd), 2)
		}

		rows = append(rows, model.LabsRow{
			Date:          q,
			FPGmgdl:       round(clamp(fpg, 40, 300), 1),
			OGTT2hmgdl:    round(clamp(ogtt, 60, 400), 1),
			LDLmgdl:       round(clamp(ldl, 20, 300), 1),
			HDLmgdl:       round(clamp(hdl, 15, 120), 1),
			TGmgdl:        round(clamp(tg, 20, 600), 1),
			TotalCholmgdl: round(clamp(totalChol, 50, 400), 1),
			ApoBmgdl:      round(clamp(apob, 20, 250), 1),
			ApoA1mgdl:     round(clamp(apoa1, 50, 250), 1),
			CRPmgl:        round(clamp(crp, 0, 30), 2),
			Other:         other,
		})
	}

	return rows
}

// meanAdherenceWindow computes the mean adherence over the windowDays
// preceding (and including) date, falling back to fallback when no daily
// rows fall in that window.
func meanAdherenceWindow(byDate map[string]model.DailyRow, date time.Time, windowDays int, fallback float64) float64 {
	sum, n := 0.0, 0
	for i := 0; i < windowDays; i++ {
		d := date.AddDate(0, 0, -i)
		if row, ok := byDate[dayKey(d)]; ok {
			sum += row.Adherence
			n++
		}
	}
	if n == 0 {
		return fallback
	}
	return sum / float64(n)
}
