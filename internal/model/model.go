// Package model defines the canonical row and document types shared across
// the simulation pipeline and the retrieval service.
package model

import "time"

// Profile is the single per-run member record: demographics, goals,
// baselines, bounds, and the RNG seed. Loaded once at pipeline start.
type Profile struct {
	MemberID string `yaml:"member_id"`
	Name     string `yaml:"name"`
	Seed     int64  `yaml:"seed"`

	StartDate time.Time `yaml:"-"`
	EndDate   time.Time `yaml:"-"`
	StartStr  string    `yaml:"start_date"`
	EndStr    string    `yaml:"end_date"`

	Baselines Baselines `yaml:"baselines"`
	Bounds    Bounds    `yaml:"bounds"`

	AdherenceBase float64 `yaml:"adherence_base"`

	Cadence Cadence `yaml:"cadence"`
}

// Baselines holds the member's starting values for every simulated metric.
type Baselines struct {
	WeightKg    float64 `yaml:"weight_kg"`
	RHRBpm      float64 `yaml:"rhr_bpm"`
	HRVMs       float64 `yaml:"hrv_ms"`
	SleepHours  float64 `yaml:"sleep_hours"`
	VO2Max      float64 `yaml:"vo2_max"`
	GripKg      float64 `yaml:"grip_kg"`
	FMS         float64 `yaml:"fms"`
	FEV1        float64 `yaml:"fev1"`
	LDLmgdl     float64 `yaml:"ldl_mgdl"`
	HDLmgdl     float64 `yaml:"hdl_mgdl"`
	TGmgdl      float64 `yaml:"tg_mgdl"`
	ApoBmgdl    float64 `yaml:"apob_mgdl"`
	ApoA1mgdl   float64 `yaml:"apoa1_mgdl"`
	FPGmgdl     float64 `yaml:"fpg_mgdl"`
	OGTT2hmgdl  float64 `yaml:"ogtt2h_mgdl"`
	CRPmgl      float64 `yaml:"crp_mgl"`
	BodyFatPct  float64 `yaml:"body_fat_pct"`
	LeanMassKg  float64 `yaml:"lean_mass_kg"`
	BoneDensity float64 `yaml:"bone_density"`
}

// Bounds holds the min/max clamp range for every metric that the daily
// simulator must keep its output within.
type Bounds struct {
	WeightKg   [2]float64 `yaml:"weight_kg"`
	RHRBpm     [2]float64 `yaml:"rhr_bpm"`
	HRVMs      [2]float64 `yaml:"hrv_ms"`
	SleepHours [2]float64 `yaml:"sleep_hours"`
	Adherence  [2]float64 `yaml:"adherence"`
	Stress     [2]float64 `yaml:"stress"`
	Soreness   [2]float64 `yaml:"soreness"`
}

// Cadence holds scheduling knobs: travel/illness frequency and quarterly
// lab week offsets.
type Cadence struct {
	TravelEveryNWeeks    int   `yaml:"travel_every_n_weeks"`
	IllnessProbWeekly    float64 `yaml:"illness_probability_weekly"`
	QuarterlyLabsWeeks   []int `yaml:"quarterly_labs_weeks"`
	PlateauAfterDays     int   `yaml:"plateau_after_days"`
}

// EventRow is a single travel or illness calendar event.
type EventRow struct {
	Date      time.Time
	Type      string // "travel" | "illness"
	Intensity int    // 1..3
	Note      string
}

// DailyRow is one day's biometrics.
type DailyRow struct {
	Date               time.Time
	Adherence          float64
	Steps              int
	ActiveMinutes      float64
	WeightKg           float64
	RHRBpm             float64
	HRVMs              float64
	SleepHours         float64
	SleepQuality       int // 1..5
	StressScore        int // 1..5
	Soreness           int // 0..10
	CaloricBalanceKcal float64
}

// LabsRow is one quarterly panel of lab values.
type LabsRow struct {
	Date       time.Time
	FPGmgdl    float64
	OGTT2hmgdl float64
	LDLmgdl    float64
	HDLmgdl    float64
	TGmgdl     float64
	TotalCholmgdl float64
	ApoBmgdl   float64
	ApoA1mgdl  float64
	CRPmgl     float64
	// Remaining ~15 labs held near baseline with mild noise; kept generic
	// so the simulator can extend the panel without touching callers.
	Other map[string]float64
}

// FitnessRow is a weekly fitness-capacity snapshot.
type FitnessRow struct {
	WeekEnd     time.Time
	VO2Max      float64
	FiveKTimeMin float64
	OneRMSquatKg float64
	OneRMDeadliftKg float64
	GripKg      float64
	FMS         float64
	FEV1        float64
}

// BodyCompRow is a weekly body-composition snapshot.
type BodyCompRow struct {
	WeekEnd     time.Time
	BodyFatPct  float64
	LeanMassKg  float64
	BoneDensity float64
}

// InterventionRow is one rule-triggered action.
type InterventionRow struct {
	ID             string // synthesized unique id, distinct from RuleID
	Date           time.Time
	RuleID         string
	TriggerMetric  string
	TriggerValue   float64
	Action         string
	Owner          string
	FollowUpDate   time.Time
	Note           string
}

// ChatRow is one message in the synthesized conversation trace.
type ChatRow struct {
	Timestamp           time.Time
	Sender              string
	Role                string
	Text                string
	Tags                []string
	LinkedInterventionID string // optional
}

// KPIMonthRow is one month's aggregated KPIs.
type KPIMonthRow struct {
	Month               string // YYYY-MM
	MeanAdherence       float64
	WeightChangeKg      float64
	MeanSleepHours      float64
	MeanStress          float64
	SessionCount        int
	ConsultCount        int
	LDLChangeMgdl       float64
	VO2Change           float64
	RationaleCoverage   float64
}

// Document is the unit the index stores: one per source row.
type Document struct {
	ID         string
	Type       string // profile|event|daily|lab|fitness|body_comp|intervention|kpi|chat
	Text       string
	Metadata   map[string]any
	Embedding  []float64
}
