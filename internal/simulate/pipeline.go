package simulate

import (
	"github.com/elyx-health/conductor/internal/config"
	"github.com/elyx-health/conductor/internal/model"
)

// Output bundles every canonical table produced by one pipeline run.
type Output struct {
	Events        []model.EventRow
	Daily         []model.DailyRow
	Labs          []model.LabsRow
	Fitness       []model.FitnessRow
	BodyComp      []model.BodyCompRow
	Interventions []model.InterventionRow
	Chats         []model.ChatRow
	KPIMonths     []model.KPIMonthRow
}

// Run executes C2 through C8 in strict order against cfg, threading a
// single seeded random source through every stage so that two runs with
// the same seed produce byte-identical output (C1).
func Run(cfg *config.Config) Output {
	r := cfg.NewRNG()

	events := GenerateEvents(cfg.Profile, r)
	daily := SimulateDaily(cfg, events, r)
	labs := SimulateLabs(cfg, daily, r)
	fitness, bodyComp := SimulateFitness(cfg, daily, r)
	interventions := SimulateTriggers(cfg, daily, labs)
	chats := SimulateChats(cfg, interventions, r)
	kpis := SimulateKPIs(daily, labs, fitness, chats)

	return Output{
		Events:        events,
		Daily:         daily,
		Labs:          labs,
		Fitness:       fitness,
		BodyComp:      bodyComp,
		Interventions: interventions,
		Chats:         chats,
		KPIMonths:     kpis,
	}
}
