package storage

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/elyx-health/conductor/internal/model"
)

// Column widths are fixed by the external interchange contract: adherence
// 3dp, sleep/stress 1dp, weight 2dp, RHR integer, HRV 1dp, labs 1-2dp.
// encoding/csv is used directly rather than a third-party CSV library — see
// DESIGN.md for why this plumbing is explicitly out of scope for a richer
// dependency.

func f(v float64, dp int) string {
	return strconv.FormatFloat(v, 'f', dp, 64)
}

const dateLayout = "2006-01-02"
const tsLayout = "2006-01-02 15:04"

// WriteDaily writes the daily table as CSV to w.
func WriteDaily(w io.Writer, rows []model.DailyRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	header := []string{"date", "adherence", "steps", "active_minutes", "weight_kg", "rhr_bpm", "hrv_ms",
		"sleep_hours", "sleep_quality", "stress_score", "soreness", "caloric_balance_kcal"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Date.Format(dateLayout),
			f(r.Adherence, 3),
			strconv.Itoa(r.Steps),
			f(r.ActiveMinutes, 1),
			f(r.WeightKg, 2),
			f(r.RHRBpm, 0),
			f(r.HRVMs, 1),
			f(r.SleepHours, 1),
			strconv.Itoa(r.SleepQuality),
			strconv.Itoa(r.StressScore),
			strconv.Itoa(r.Soreness),
			f(r.CaloricBalanceKcal, 1),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteEvents writes the events table as CSV to w.
func WriteEvents(w io.Writer, rows []model.EventRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"date", "type", "intensity", "note"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Date.Format(dateLayout), r.Type, strconv.Itoa(r.Intensity), r.Note}); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteLabs writes the labs table as CSV to w.
func WriteLabs(w io.Writer, rows []model.LabsRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"date", "fpg_mgdl", "ogtt2h_mgdl", "ldl_mgdl", "hdl_mgdl", "tg_mgdl",
		"total_chol_mgdl", "apob_mgdl", "apoa1_mgdl", "crp_mgl"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Date.Format(dateLayout), f(r.FPGmgdl, 1), f(r.OGTT2hmgdl, 1), f(r.LDLmgdl, 1),
			f(r.HDLmgdl, 1), f(r.TGmgdl, 1), f(r.TotalCholmgdl, 1), f(r.ApoBmgdl, 1), f(r.ApoA1mgdl, 1), f(r.CRPmgl, 2),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteChats writes the chat table as CSV to w.
func WriteChats(w io.Writer, rows []model.ChatRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"timestamp", "sender", "role", "text", "tags", "linked_intervention_id"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.Timestamp.Format(tsLayout) + " " + r.Timestamp.Format("-0700"),
			r.Sender, r.Role, r.Text, strings.Join(r.Tags, ";"), r.LinkedInterventionID,
		}); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteFitness writes the fitness table as CSV to w.
func WriteFitness(w io.Writer, rows []model.FitnessRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"week_end", "vo2_max", "grip_kg", "fms", "fev1",
		"five_k_time_min", "squat_1rm_kg", "deadlift_1rm_kg"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.WeekEnd.Format(dateLayout), f(r.VO2Max, 1), f(r.GripKg, 1), f(r.FMS, 0), f(r.FEV1, 2),
			f(r.FiveKTimeMin, 1), f(r.OneRMSquatKg, 1), f(r.OneRMDeadliftKg, 1),
		}); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteBodyComp writes the body composition table as CSV to w.
func WriteBodyComp(w io.Writer, rows []model.BodyCompRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"week_end", "body_fat_pct", "lean_mass_kg", "bone_density"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.WeekEnd.Format(dateLayout), f(r.BodyFatPct, 2), f(r.LeanMassKg, 2), f(r.BoneDensity, 3),
		}); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteKPIMonths writes the monthly KPI table as CSV to w.
func WriteKPIMonths(w io.Writer, rows []model.KPIMonthRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"month", "mean_adherence", "mean_sleep_hours", "mean_stress",
		"session_count", "weight_change_kg", "ldl_change_mgdl", "vo2_change", "consult_count"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.Month, f(r.MeanAdherence, 3), f(r.MeanSleepHours, 1), f(r.MeanStress, 1),
			strconv.Itoa(r.SessionCount), f(r.WeightChangeKg, 2), f(r.LDLChangeMgdl, 2), f(r.VO2Change, 1),
			strconv.Itoa(r.ConsultCount),
		}); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteInterventions writes the intervention table as CSV to w.
func WriteInterventions(w io.Writer, rows []model.InterventionRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"id", "date", "rule_id", "trigger_metric", "trigger_value", "action", "owner", "follow_up_date", "note"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.ID, r.Date.Format(dateLayout), r.RuleID, r.TriggerMetric, f(r.TriggerValue, 2),
			r.Action, r.Owner, r.FollowUpDate.Format(dateLayout), r.Note,
		}); err != nil {
			return err
		}
	}
	return cw.Error()
}
