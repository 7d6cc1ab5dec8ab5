package simulate

import (
	"reflect"
	"testing"
	"time"

	"github.com/elyx-health/conductor/internal/config"
	"github.com/elyx-health/conductor/internal/model"
)

func testConfig(seed int64) *config.Config {
	profile := &model.Profile{
		MemberID:      "test-member",
		Name:          "Test Member",
		Seed:          seed,
		StartDate:     time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 4, 28, 0, 0, 0, 0, time.UTC),
		AdherenceBase: 0.82,
		Baselines: model.Baselines{
			WeightKg: 82.5, RHRBpm: 62, HRVMs: 45, SleepHours: 6.8,
			VO2Max: 38, GripKg: 42, FMS: 14, FEV1: 3.8,
			LDLmgdl: 138, HDLmgdl: 48, TGmgdl: 145, ApoBmgdl: 95, ApoA1mgdl: 140,
			FPGmgdl: 98, OGTT2hmgdl: 132, CRPmgl: 1.8,
			BodyFatPct: 24, LeanMassKg: 58, BoneDensity: 1.15,
		},
		Bounds: model.Bounds{
			WeightKg: [2]float64{65, 100}, RHRBpm: [2]float64{45, 90},
			HRVMs: [2]float64{20, 90}, SleepHours: [2]float64{4, 9.5},
			Adherence: [2]float64{0, 1}, Stress: [2]float64{1, 5}, Soreness: [2]float64{0, 5},
		},
		Cadence: model.Cadence{
			TravelEveryNWeeks:  4,
			IllnessProbWeekly:  0.06,
			QuarterlyLabsWeeks: []int{0, 13, 26, 39},
			PlateauAfterDays:   14,
		},
	}
	return &config.Config{Profile: profile, Rules: config.DefaultRules()}
}

func TestRun_ReproducibleGivenSameSeed(t *testing.T) {
	a := Run(testConfig(42))
	b := Run(testConfig(42))

	if !reflect.DeepEqual(a, b) {
		t.Fatal("Run() produced different output for the same seed")
	}
	if len(a.Daily) == 0 {
		t.Fatal("Run() produced no daily rows")
	}
}

func TestRun_DifferentSeedsDiverge(t *testing.T) {
	a := Run(testConfig(42))
	b := Run(testConfig(43))

	if reflect.DeepEqual(a.Daily, b.Daily) {
		t.Fatal("Run() produced identical daily output for different seeds")
	}
}

func TestSimulateTriggers_LIP02FiresAboveThreshold(t *testing.T) {
	cfg := testConfig(1)
	labs := []model.LabsRow{
		{Date: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), LDLmgdl: 180},
	}

	out := SimulateTriggers(cfg, nil, labs)

	if len(out) != 1 {
		t.Fatalf("got %d interventions, want 1", len(out))
	}
	row := out[0]
	if row.RuleID != "LIP-02" {
		t.Errorf("RuleID = %q, want LIP-02", row.RuleID)
	}
	if row.TriggerValue < 179 || row.TriggerValue > 181 {
		t.Errorf("TriggerValue = %v, want ~180", row.TriggerValue)
	}
}

func TestSimulateTriggers_LIP02DoesNotFireAtThreshold(t *testing.T) {
	cfg := testConfig(1)
	labs := []model.LabsRow{
		{Date: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), LDLmgdl: cfg.Rules.Triggers.LIP02LDLThreshold},
	}

	out := SimulateTriggers(cfg, nil, labs)

	if len(out) != 0 {
		t.Fatalf("got %d interventions at exactly the threshold, want 0", len(out))
	}
}
