package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/elyx-health/conductor/internal/model"
)

// SaveOutput persists every canonical table for one pipeline run. Each
// table is written exactly once per run, matching the tabular lifecycle
// contract; a re-run truncates and rewrites all tables for memberID.
func SaveOutput(ctx context.Context, db *sql.DB, memberID string, events []model.EventRow, daily []model.DailyRow, labs []model.LabsRow, fitness []model.FitnessRow, bodyComp []model.BodyCompRow, interventions []model.InterventionRow, chats []model.ChatRow, kpis []model.KPIMonthRow) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"events", "daily", "labs", "fitness", "body_comp", "interventions", "chats", "kpi_months"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE member_id = $1", table), memberID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, e := range events {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO events (member_id, date, type, intensity, note) VALUES ($1,$2,$3,$4,$5)
			 ON CONFLICT (member_id, date, type) DO NOTHING`,
			memberID, e.Date, e.Type, e.Intensity, e.Note); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	for _, d := range daily {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO daily (member_id, date, adherence, steps, active_minutes, weight_kg, rhr_bpm, hrv_ms,
			    sleep_hours, sleep_quality, stress_score, soreness, caloric_balance_kcal)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
			memberID, d.Date, d.Adherence, d.Steps, d.ActiveMinutes, d.WeightKg, d.RHRBpm, d.HRVMs,
			d.SleepHours, d.SleepQuality, d.StressScore, d.Soreness, d.CaloricBalanceKcal); err != nil {
			return fmt.Errorf("insert daily: %w", err)
		}
	}

	for _, l := range labs {
		other, err := json.Marshal(l.Other)
		if err != nil {
			return fmt.Errorf("marshal lab other fields: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO labs (member_id, date, fpg_mgdl, ogtt2h_mgdl, ldl_mgdl, hdl_mgdl, tg_mgdl,
			    total_chol_mgdl, apob_mgdl, apoa1_mgdl, crp_mgl, other)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			memberID, l.Date, l.FPGmgdl, l.OGTT2hmgdl, l.LDLmgdl, l.HDLmgdl, l.TGmgdl,
			l.TotalCholmgdl, l.ApoBmgdl, l.ApoA1mgdl, l.CRPmgl, other); err != nil {
			return fmt.Errorf("insert lab: %w", err)
		}
	}

	for _, f := range fitness {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO fitness (member_id, week_end, vo2_max, five_k_time_min, one_rm_squat_kg,
			    one_rm_deadlift_kg, grip_kg, fms, fev1)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			memberID, f.WeekEnd, f.VO2Max, f.FiveKTimeMin, f.OneRMSquatKg, f.OneRMDeadliftKg, f.GripKg, f.FMS, f.FEV1); err != nil {
			return fmt.Errorf("insert fitness: %w", err)
		}
	}

	for _, b := range bodyComp {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO body_comp (member_id, week_end, body_fat_pct, lean_mass_kg, bone_density)
			 VALUES ($1,$2,$3,$4,$5)`,
			memberID, b.WeekEnd, b.BodyFatPct, b.LeanMassKg, b.BoneDensity); err != nil {
			return fmt.Errorf("insert body_comp: %w", err)
		}
	}

	for _, iv := range interventions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO interventions (member_id, id, date, rule_id, trigger_metric, trigger_value,
			    action, owner, follow_up_date, note)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			memberID, iv.ID, iv.Date, iv.RuleID, iv.TriggerMetric, iv.TriggerValue, iv.Action, iv.Owner, iv.FollowUpDate, iv.Note); err != nil {
			return fmt.Errorf("insert intervention: %w", err)
		}
	}

	for _, c := range chats {
		var linked *string
		if c.LinkedInterventionID != "" {
			linked = &c.LinkedInterventionID
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chats (member_id, ts, sender, role, text, tags, linked_intervention_id)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)
			 ON CONFLICT (member_id, ts, sender) DO NOTHING`,
			memberID, c.Timestamp, c.Sender, c.Role, c.Text, pqStringArray(c.Tags), linked); err != nil {
			return fmt.Errorf("insert chat: %w", err)
		}
	}

	for _, k := range kpis {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO kpi_months (member_id, month, mean_adherence, weight_change_kg, mean_sleep_hours,
			    mean_stress, session_count, consult_count, ldl_change_mgdl, vo2_change, rationale_coverage)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			memberID, k.Month, k.MeanAdherence, k.WeightChangeKg, k.MeanSleepHours, k.MeanStress,
			k.SessionCount, k.ConsultCount, k.LDLChangeMgdl, k.VO2Change, k.RationaleCoverage); err != nil {
			return fmt.Errorf("insert kpi_month: %w", err)
		}
	}

	return tx.Commit()
}

// pqStringArray formats a Go string slice as a Postgres text[] literal
// understood by pgx's simple-protocol array encoding via database/sql.
func pqStringArray(tags []string) string {
	out := "{"
	for i, t := range tags {
		if i > 0 {
			out += ","
		}
		out += `"` + t + `"`
	}
	return out + "}"
}
