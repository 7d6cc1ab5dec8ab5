package config

import "fmt"

// Validator checks loaded configuration for the required fields the
// simulation stages depend on, failing fast with ConfigInvalid rather than
// letting a zero-valued field silently propagate into generated data.
type Validator struct {
	cfg *Config
}

// NewValidator creates a validator bound to cfg.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateAll runs every validation check and returns the first failure.
func (v *Validator) ValidateAll() error {
	if err := v.validateProfile(); err != nil {
		return err
	}
	if err := v.validateCadence(); err != nil {
		return err
	}
	return nil
}

func (v *Validator) validateProfile() error {
	p := v.cfg.Profile
	if p.MemberID == "" {
		return NewValidationError("profile", "member_id", fmt.Errorf("%w: required", ErrValidationFailed))
	}
	if !p.EndDate.After(p.StartDate) {
		return NewValidationError("profile", "end_date", fmt.Errorf("%w: must be after start_date", ErrValidationFailed))
	}
	if p.Baselines.RHRBpm <= 0 {
		return NewValidationError("profile.baselines", "rhr_bpm", fmt.Errorf("%w: must be positive", ErrValidationFailed))
	}
	if p.Baselines.HRVMs <= 0 {
		return NewValidationError("profile.baselines", "hrv_ms", fmt.Errorf("%w: must be positive", ErrValidationFailed))
	}
	if p.Baselines.WeightKg <= 0 {
		return NewValidationError("profile.baselines", "weight_kg", fmt.Errorf("%w: must be positive", ErrValidationFailed))
	}
	if p.Bounds.WeightKg[1] <= p.Bounds.WeightKg[0] {
		return NewValidationError("profile.bounds", "weight_kg", fmt.Errorf("%w: max must exceed min", ErrValidationFailed))
	}
	if p.Bounds.RHRBpm[1] <= p.Bounds.RHRBpm[0] {
		return NewValidationError("profile.bounds", "rhr_bpm", fmt.Errorf("%w: max must exceed min", ErrValidationFailed))
	}
	if p.AdherenceBase < 0 || p.AdherenceBase > 1 {
		return NewValidationError("profile", "adherence_base", fmt.Errorf("%w: must be in [0,1]", ErrValidationFailed))
	}
	return nil
}

func (v *Validator) validateCadence() error {
	c := v.cfg.Profile.Cadence
	if c.TravelEveryNWeeks <= 0 {
		return NewValidationError("profile.cadence", "travel_every_n_weeks", fmt.Errorf("%w: must be positive", ErrValidationFailed))
	}
	if c.IllnessProbWeekly < 0 || c.IllnessProbWeekly > 1 {
		return NewValidationError("profile.cadence", "illness_probability_weekly", fmt.Errorf("%w: must be in [0,1]", ErrValidationFailed))
	}
	if len(c.QuarterlyLabsWeeks) == 0 {
		return NewValidationError("profile.cadence", "quarterly_labs_weeks", fmt.Errorf("%w: at least one required", ErrValidationFailed))
	}
	return nil
}
