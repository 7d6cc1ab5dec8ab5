package config

// Rules holds the per-domain noise/range knobs that parameterize every
// simulation stage. Loaded from rules.yaml alongside profile.yaml.
type Rules struct {
	Daily     DailyRules     `yaml:"daily"`
	Labs      LabsRules      `yaml:"labs"`
	Fitness   FitnessRules   `yaml:"fitness"`
	Triggers  TriggerRules   `yaml:"triggers"`
	Chat      ChatRules      `yaml:"chat"`
}

// DailyRules parameterizes the day-by-day simulator (C3).
type DailyRules struct {
	TravelAdherencePenalty  float64    `yaml:"travel_adherence_penalty"`
	IllnessAdherencePenalty float64    `yaml:"illness_adherence_penalty"`
	AdherenceNoiseStd       float64    `yaml:"adherence_noise_std"`

	StepsNoiseStd         float64 `yaml:"steps_noise_std"`
	ActiveMinutesNoiseStd float64 `yaml:"active_minutes_noise_std"`

	TravelSleepPenaltyRange [2]float64 `yaml:"travel_sleep_penalty_range"`
	SleepNoiseStd           float64    `yaml:"sleep_noise_std"`

	StressNoiseStd float64 `yaml:"stress_noise_std"`

	CaloricNoiseStd float64 `yaml:"caloric_noise_std"`

	WeeklyLossIfHighAdherenceKg float64 `yaml:"weekly_loss_if_high_adherence_kg"`
	PlateauAfterDays            int     `yaml:"plateau_after_days"`
	WeightNoiseStd              float64 `yaml:"weight_noise_std"`
	TravelWaterGainKg           float64 `yaml:"travel_water_gain_kg"`

	RHRNoiseStd          float64    `yaml:"rhr_noise_std"`
	HRVNoiseStd          float64    `yaml:"hrv_noise_std"`
	TravelRHRBumpRange   [2]float64 `yaml:"travel_rhr_bump_range"`
	IllnessRHRBumpRange  [2]float64 `yaml:"illness_rhr_bump_range"`
	TravelHRVBumpRange   [2]float64 `yaml:"travel_hrv_bump_range"`
	IllnessHRVBumpRange  [2]float64 `yaml:"illness_hrv_bump_range"`
	RecoveryImprovementFrac float64 `yaml:"recovery_improvement_frac"`
}

// LabsRules parameterizes the quarterly labs simulator (C4).
type LabsRules struct {
	GlycemicRange     [2]float64 `yaml:"glycemic_range"`
	GlycemicNoiseStd  float64    `yaml:"glycemic_noise_std"`
	LDLRange          [2]float64 `yaml:"ldl_range"`
	HDLRange          [2]float64 `yaml:"hdl_range"`
	TGRange           [2]float64 `yaml:"tg_range"`
	ApoBCoef          float64    `yaml:"apob_coef"`
	ApoA1Coef         float64    `yaml:"apoa1_coef"`
	CRPNoiseStd       float64    `yaml:"crp_noise_std"`
	CRPRevertRate     float64    `yaml:"crp_revert_rate"`
	OtherNoiseStd     float64    `yaml:"other_noise_std"`
}

// FitnessRules parameterizes the weekly fitness/body-comp simulator (C5).
type FitnessRules struct {
	VO2GainRange            [2]float64 `yaml:"vo2_gain_range"`
	VO2WeeklyLossIfLow      float64    `yaml:"vo2_weekly_loss_if_low"`
	CardioSessionThreshold  int        `yaml:"cardio_session_threshold"`
	StrengthSessionThreshold int       `yaml:"strength_session_threshold"`
	GripGainRange           [2]float64 `yaml:"grip_gain_range"`
	FMSGainPer4wIfMobility2 float64    `yaml:"fms_gain_per_4w_if_mobility2"`
	BodyFatDropRange        [2]float64 `yaml:"bf_drop_range"`
	LeanMassGainKg          float64    `yaml:"lean_mass_gain_kg"`
	SpirometryMonthlyGainRange [2]float64 `yaml:"spirometry_monthly_gain_range"`
}

// TriggerRules parameterizes the rule/intervention engine (C6).
type TriggerRules struct {
	CV01RHRDeltaThreshold float64 `yaml:"cv01_rhr_delta_threshold"`
	CV01HRVDropFrac       float64 `yaml:"cv01_hrv_drop_frac"`
	CV01FollowUpDays      int     `yaml:"cv01_follow_up_days"`
	LIP02LDLThreshold     float64 `yaml:"lip02_ldl_threshold"`
	LIP02FollowUpDays     int     `yaml:"lip02_follow_up_days"`
}

// ChatRules parameterizes ambient and intervention-anchored message
// synthesis (C7).
type ChatRules struct {
	AmbientWeeklyLambda   float64            `yaml:"ambient_weekly_lambda"`
	TeamReplyProbability  float64            `yaml:"team_reply_probability"`
	TeamReplyWeights      map[string]float64 `yaml:"team_reply_weights"`
	BusinessHourStart     int                `yaml:"business_hour_start"`
	BusinessHourEnd       int                `yaml:"business_hour_end"`
	LinkWindowDays        int                `yaml:"link_window_days"`
}
