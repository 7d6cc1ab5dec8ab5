package index

import (
	"fmt"
	"strings"

	"github.com/elyx-health/conductor/internal/model"
)

const dateLayout = "2006-01-02"

// BuildDocuments converts every source row into a role-tagged Document with
// an embedding (C9). One Document is produced per row, across all table
// types.
func BuildDocuments(profile *model.Profile, events []model.EventRow, daily []model.DailyRow, labs []model.LabsRow,
	fitness []model.FitnessRow, bodyComp []model.BodyCompRow, interventions []model.InterventionRow,
	chats []model.ChatRow, kpis []model.KPIMonthRow) []model.Document {

	var docs []model.Document

	docs = append(docs, newDoc("profile", profile.MemberID, fmt.Sprintf(
		"member_id:%s|rhr_baseline:%.0f|hrv_baseline:%.1f|weight_baseline:%.2f",
		profile.MemberID, profile.Baselines.RHRBpm, profile.Baselines.HRVMs, profile.Baselines.WeightKg),
		map[string]any{"type": "profile"}))

	for _, e := range events {
		date := e.Date.Format(dateLayout)
		text := fmt.Sprintf("type:%s|date:%s|intensity:%d|note:%s", e.Type, date, e.Intensity, e.Note)
		// Travel and illness blocks can overlap on the same date, so the id
		// must include the event type — a plain date id would collide and
		// the store's ON CONFLICT upsert would silently drop one row.
		docs = append(docs, newDoc("event", date+"-"+e.Type, text, map[string]any{"type": "event", "date": date, "event_type": e.Type}))
	}

	for _, d := range daily {
		date := d.Date.Format(dateLayout)
		text := fmt.Sprintf("date:%s|adherence:%.3f|rhr_bpm:%.0f|hrv_ms:%.1f|sleep_hours:%.1f|weight_kg:%.2f",
			date, d.Adherence, d.RHRBpm, d.HRVMs, d.SleepHours, d.WeightKg)
		docs = append(docs, newDoc("daily", date, text, map[string]any{
			"type": "daily", "date": date, "rhr_bpm": d.RHRBpm, "hrv_ms": d.HRVMs, "weight_kg": d.WeightKg,
		}))
	}

	for _, l := range labs {
		date := l.Date.Format(dateLayout)
		text := fmt.Sprintf("date:%s|ldl_mgdl:%.1f|hdl_mgdl:%.1f|tg_mgdl:%.1f|apob_mgdl:%.1f|crp_mgl:%.2f",
			date, l.LDLmgdl, l.HDLmgdl, l.TGmgdl, l.ApoBmgdl, l.CRPmgl)
		docs = append(docs, newDoc("lab", date, text, map[string]any{
			"type": "lab", "date": date, "ldl_mgdl": l.LDLmgdl, "hdl_mgdl": l.HDLmgdl,
		}))
	}

	for _, f := range fitness {
		date := f.WeekEnd.Format(dateLayout)
		text := fmt.Sprintf("week_end:%s|vo2_max:%.1f|grip_kg:%.1f|fms:%.0f|fev1:%.2f", date, f.VO2Max, f.GripKg, f.FMS, f.FEV1)
		docs = append(docs, newDoc("fitness", date, text, map[string]any{
			"type": "fitness", "date": date, "vo2_max": f.VO2Max,
		}))
	}

	for _, b := range bodyComp {
		date := b.WeekEnd.Format(dateLayout)
		text := fmt.Sprintf("week_end:%s|body_fat_pct:%.2f|lean_mass_kg:%.2f|bone_density:%.3f", date, b.BodyFatPct, b.LeanMassKg, b.BoneDensity)
		docs = append(docs, newDoc("body_comp", date, text, map[string]any{
			"type": "body_comp", "date": date, "body_fat_pct": b.BodyFatPct,
		}))
	}

	for _, iv := range interventions {
		date := iv.Date.Format(dateLayout)
		text := fmt.Sprintf("id:%s|date:%s|rule_id:%s|trigger_metric:%s|trigger_value:%.2f|owner:%s",
			iv.ID, date, iv.RuleID, iv.TriggerMetric, iv.TriggerValue, iv.Owner)
		docs = append(docs, model.Document{
			ID:   fmt.Sprintf("intervention:%s", iv.ID),
			Type: "intervention",
			Text: truncate(text, 300),
			Metadata: map[string]any{
				"type": "intervention", "date": date, "rule_id": iv.RuleID, "owner": iv.Owner,
			},
			Embedding: Embed(text),
		})
	}

	for _, k := range kpis {
		text := fmt.Sprintf("month:%s|mean_adherence:%.3f|weight_change_kg:%.2f|session_count:%d", k.Month, k.MeanAdherence, k.WeightChangeKg, k.SessionCount)
		docs = append(docs, model.Document{
			ID:   fmt.Sprintf("kpi:%s", k.Month),
			Type: "kpi",
			Text: truncate(text, 300),
			Metadata: map[string]any{
				"type": "kpi", "month": k.Month,
			},
			Embedding: Embed(text),
		})
	}

	for i, c := range chats {
		ts := c.Timestamp.Format("2006-01-02T15:04")
		text := fmt.Sprintf("timestamp:%s|sender:%s|role:%s|text:%s", ts, c.Sender, c.Role, c.Text)
		date := c.Timestamp.Format(dateLayout)
		docs = append(docs, model.Document{
			ID:   fmt.Sprintf("chat:%s-%d", date, i),
			Type: "chat",
			Text: truncate(text, 300),
			Metadata: map[string]any{
				"type": "chat", "date": date, "sender": c.Sender, "role": c.Role,
			},
			Embedding: Embed(text),
		})
	}

	return docs
}

func newDoc(docType, dateOrMonth, text string, metadata map[string]any) model.Document {
	text = truncate(text, 300)
	return model.Document{
		ID:        fmt.Sprintf("%s:%s", docType, dateOrMonth),
		Type:      docType,
		Text:      text,
		Metadata:  metadata,
		Embedding: Embed(text),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n])
}
