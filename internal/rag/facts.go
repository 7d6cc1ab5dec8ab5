package rag

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/elyx-health/conductor/internal/apperrors"
)

// FactsAssembler pulls the latest role-relevant numbers directly from the
// tabular stores (C11), independent of the vector index.
type FactsAssembler struct {
	db *sql.DB
}

// NewFactsAssembler binds an assembler to db.
func NewFactsAssembler(db *sql.DB) *FactsAssembler {
	return &FactsAssembler{db: db}
}

// Assemble returns a short bulleted "latest X: V [table:date]" text block
// for role. Unknown roles fail with RoleNotFound.
func (a *FactsAssembler) Assemble(ctx context.Context, role Role) (string, error) {
	switch role {
	case RoleDrWarren:
		return a.latestLabs(ctx)
	case RoleAdvik:
		return a.latestDaily(ctx)
	case RoleCarla:
		daily, err := a.latestDaily(ctx)
		if err != nil {
			return "", err
		}
		bodyComp, err := a.latestBodyComp(ctx)
		if err != nil {
			return "", err
		}
		return daily + "\n" + bodyComp, nil
	case RoleRachel:
		fitness, err := a.latestFitness(ctx)
		if err != nil {
			return "", err
		}
		bodyComp, err := a.latestBodyComp(ctx)
		if err != nil {
			return "", err
		}
		return fitness + "\n" + bodyComp, nil
	case RoleRuby:
		interventions, err := a.latestInterventions(ctx)
		if err != nil {
			return "", err
		}
		events, err := a.latestEvents(ctx)
		if err != nil {
			return "", err
		}
		return interventions + "\n" + events, nil
	case RoleNeel:
		return a.latestKPI(ctx)
	default:
		return "", fmt.Errorf("%w: %s", apperrors.ErrRoleNotFound, role)
	}
}

func (a *FactsAssembler) latestLabs(ctx context.Context) (string, error) {
	row := a.db.QueryRowContext(ctx, `SELECT date, ldl_mgdl, hdl_mgdl, apob_mgdl, crp_mgl FROM labs ORDER BY date DESC LIMIT 1`)
	var date string
	var ldl, hdl, apob, crp float64
	if err := row.Scan(&date, &ldl, &hdl, &apob, &crp); err != nil {
		if err == sql.ErrNoRows {
			return "- no labs recorded yet", nil
		}
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "- latest LDL: %.1f mgdl [lab:%s]\n", ldl, date)
	fmt.Fprintf(&b, "- latest HDL: %.1f mgdl [lab:%s]\n", hdl, date)
	fmt.Fprintf(&b, "- latest ApoB: %.1f mgdl [lab:%s]\n", apob, date)
	fmt.Fprintf(&b, "- latest CRP: %.2f mgl [lab:%s]", crp, date)
	return b.String(), nil
}

func (a *FactsAssembler) latestDaily(ctx context.Context) (string, error) {
	row := a.db.QueryRowContext(ctx, `SELECT date, adherence, rhr_bpm, hrv_ms, sleep_hours, stress_score FROM daily ORDER BY date DESC LIMIT 1`)
	var date string
	var adh, rhr, hrv, sleep float64
	var stress int
	if err := row.Scan(&date, &adh, &rhr, &hrv, &sleep, &stress); err != nil {
		if err == sql.ErrNoRows {
			return "- no daily data recorded yet", nil
		}
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "- latest adherence: %.3f [daily:%s]\n", adh, date)
	fmt.Fprintf(&b, "- latest RHR: %.0f bpm [daily:%s]\n", rhr, date)
	fmt.Fprintf(&b, "- latest HRV: %.1f ms [daily:%s]\n", hrv, date)
	fmt.Fprintf(&b, "- latest sleep: %.1f hours [daily:%s]\n", sleep, date)
	fmt.Fprintf(&b, "- latest stress: %d [daily:%s]", stress, date)
	return b.String(), nil
}

func (a *FactsAssembler) latestBodyComp(ctx context.Context) (string, error) {
	row := a.db.QueryRowContext(ctx, `SELECT week_end, body_fat_pct, lean_mass_kg FROM body_comp ORDER BY week_end DESC LIMIT 1`)
	var date string
	var bf, lean float64
	if err := row.Scan(&date, &bf, &lean); err != nil {
		if err == sql.ErrNoRows {
			return "- no body composition data recorded yet", nil
		}
		return "", err
	}
	return fmt.Sprintf("- latest body fat: %.2f%% [body_comp:%s]\n- latest lean mass: %.2f kg [body_comp:%s]", bf, date, lean, date), nil
}

func (a *FactsAssembler) latestFitness(ctx context.Context) (string, error) {
	row := a.db.QueryRowContext(ctx, `SELECT week_end, vo2_max, grip_kg, fms FROM fitness ORDER BY week_end DESC LIMIT 1`)
	var date string
	var vo2, grip, fms float64
	if err := row.Scan(&date, &vo2, &grip, &fms); err != nil {
		if err == sql.ErrNoRows {
			return "- no fitness data recorded yet", nil
		}
		return "", err
	}
	return fmt.Sprintf("- latest VO2max: %.1f [fitness:%s]\n- latest grip: %.1f kg [fitness:%s]\n- latest FMS: %.0f [fitness:%s]", vo2, date, grip, date, fms, date), nil
}

func (a *FactsAssembler) latestInterventions(ctx context.Context) (string, error) {
	row := a.db.QueryRowContext(ctx, `SELECT id, date, rule_id, action FROM interventions ORDER BY date DESC LIMIT 1`)
	var id, date, ruleID, action string
	if err := row.Scan(&id, &date, &ruleID, &action); err != nil {
		if err == sql.ErrNoRows {
			return "- no interventions recorded yet", nil
		}
		return "", err
	}
	return fmt.Sprintf("- latest intervention: %s (%s) [intervention:%s]", action, ruleID, id), nil
}

func (a *FactsAssembler) latestEvents(ctx context.Context) (string, error) {
	row := a.db.QueryRowContext(ctx, `SELECT date, type FROM events ORDER BY date DESC LIMIT 1`)
	var date, typ string
	if err := row.Scan(&date, &typ); err != nil {
		if err == sql.ErrNoRows {
			return "- no events recorded yet", nil
		}
		return "", err
	}
	return fmt.Sprintf("- latest event: %s [event:%s]", typ, date), nil
}

func (a *FactsAssembler) latestKPI(ctx context.Context) (string, error) {
	row := a.db.QueryRowContext(ctx, `SELECT month, mean_adherence, weight_change_kg, session_count FROM kpi_months ORDER BY month DESC LIMIT 1`)
	var month string
	var adh, weightChange float64
	var sessions int
	if err := row.Scan(&month, &adh, &weightChange, &sessions); err != nil {
		if err == sql.ErrNoRows {
			return "- no KPI data recorded yet", nil
		}
		return "", err
	}
	return fmt.Sprintf("- latest monthly adherence: %.3f [kpi:%s]\n- latest weight change: %.2f kg [kpi:%s]\n- latest session count: %d [kpi:%s]",
		adh, month, weightChange, month, sessions, month), nil
}
