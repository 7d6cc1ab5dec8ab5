package config

// DefaultRules returns the built-in rule parameters used to fill in any
// value a user's rules.yaml leaves unset. User-provided non-zero values
// override these via mergo in loader.go.
func DefaultRules() *Rules {
	return &Rules{
		Daily: DailyRules{
			TravelAdherencePenalty:  0.05,
			IllnessAdherencePenalty: 0.10,
			AdherenceNoiseStd:       0.05,
			StepsNoiseStd:           500,
			ActiveMinutesNoiseStd:   5,
			TravelSleepPenaltyRange: [2]float64{0.3, 1.2},
			SleepNoiseStd:           0.4,
			StressNoiseStd:          0.5,
			CaloricNoiseStd:         100,
			WeeklyLossIfHighAdherenceKg: 0.4,
			PlateauAfterDays:            14,
			WeightNoiseStd:              0.15,
			TravelWaterGainKg:           0.3,
			RHRNoiseStd:                 1.0,
			HRVNoiseStd:                 2.0,
			TravelRHRBumpRange:          [2]float64{1, 4},
			IllnessRHRBumpRange:         [2]float64{3, 8},
			TravelHRVBumpRange:          [2]float64{-4, -1},
			IllnessHRVBumpRange:         [2]float64{-8, -3},
			RecoveryImprovementFrac:     0.01,
		},
		Labs: LabsRules{
			GlycemicRange:    [2]float64{2, 8},
			GlycemicNoiseStd: 2,
			LDLRange:         [2]float64{1, 4},
			HDLRange:         [2]float64{0.2, 1.0},
			TGRange:          [2]float64{1, 5},
			ApoBCoef:         0.3,
			ApoA1Coef:        0.8,
			CRPNoiseStd:      0.3,
			CRPRevertRate:    0.2,
			OtherNoiseStd:    0.05,
		},
		Fitness: FitnessRules{
			VO2GainRange:               [2]float64{0.1, 0.4},
			VO2WeeklyLossIfLow:         0.1,
			CardioSessionThreshold:     3,
			StrengthSessionThreshold:   2,
			GripGainRange:              [2]float64{0.1, 0.5},
			FMSGainPer4wIfMobility2:    1,
			BodyFatDropRange:           [2]float64{0.05, 0.2},
			LeanMassGainKg:             0.1,
			SpirometryMonthlyGainRange: [2]float64{0.01, 0.05},
		},
		Triggers: TriggerRules{
			CV01RHRDeltaThreshold: 5,
			CV01HRVDropFrac:       0.15,
			CV01FollowUpDays:      7,
			LIP02LDLThreshold:     130,
			LIP02FollowUpDays:     84,
		},
		Chat: ChatRules{
			AmbientWeeklyLambda:  5,
			TeamReplyProbability: 0.6,
			TeamReplyWeights: map[string]float64{
				"coach":        0.75,
				"nutritionist": 0.15,
				"concierge":    0.10,
			},
			BusinessHourStart: 8,
			BusinessHourEnd:   22,
			LinkWindowDays:    1,
		},
	}
}
