package reminders

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/carelinkhq/carelink-api/databases"
	"github.com/carelinkhq/carelink-api/models"
)

// Materializer expands a senior's active schedule rules into concrete dose
// instances over a window and reconciles each instant against the dose log.
// Missed status is entirely computed from the clock, so materialization never
// writes anything.
type Materializer struct {
	Rules databases.ScheduleRuleDatabase
	Logs  databases.DoseLogDatabase
}

// Materialize returns the dose instances for seniorID whose scheduled instant
// falls in [start, end), ordered by scheduled instant with rule-id tiebreak.
// now decides pending vs missed for instants without a terminal log; loc is
// the senior's timezone, in which slot times are interpreted.
func (m *Materializer) Materialize(ctx context.Context, seniorID string, start, end, now time.Time, loc *time.Location) ([]models.DoseInstance, error) {
	rules, err := m.Rules.FindBySeniorID(ctx, seniorID)
	if err != nil {
		return nil, err
	}

	logs, err := m.Logs.FindBySeniorWindow(ctx, seniorID, start, end)
	if err != nil {
		return nil, err
	}
	logByID := make(map[string]models.DoseLog, len(logs))
	for _, l := range logs {
		logByID[l.ID] = l
	}

	var instances []models.DoseInstance
	for i := range rules {
		rule := &rules[i]
		if rule.Schedule.Status != models.RuleStatusActive {
			continue
		}

		// walk every civil date the window touches in the senior's zone
		for day := civilDateIn(start, loc); !day.After(civilDateIn(end, loc)); day = day.AddDate(0, 0, 1) {
			slots, err := SlotsOn(rule, day)
			if err != nil {
				zap.S().Errorw("skipping rule with unevaluable recurrence",
					"ruleID", rule.ID.Hex(),
					"error", err,
				)
				break
			}
			for _, slot := range slots {
				instant, err := ScheduledInstant(day, slot, loc)
				if err != nil {
					continue
				}
				if instant.Before(start) || !instant.Before(end) {
					continue
				}
				instances = append(instances, m.reconcile(rule, slot, instant, now, logByID))
			}
		}
	}

	sort.Slice(instances, func(i, j int) bool {
		if !instances[i].ScheduledAt.Equal(instances[j].ScheduledAt) {
			return instances[i].ScheduledAt.Before(instances[j].ScheduledAt)
		}
		return instances[i].RuleID < instances[j].RuleID
	})
	return instances, nil
}

// reconcile derives the display status for one scheduled instant:
// a terminal log wins; a persisted pending log past its instant shows as
// missed; with no log at all the clock decides pending vs missed.
func (m *Materializer) reconcile(rule *models.ScheduleRule, slot string, instant, now time.Time, logByID map[string]models.DoseLog) models.DoseInstance {
	ruleID := rule.ID.Hex()
	logID := models.DoseLogID(ruleID, instant)

	inst := models.DoseInstance{
		LogID:        logID,
		RuleID:       ruleID,
		SeniorID:     rule.Schedule.SeniorID,
		DrugName:     rule.Schedule.DrugName,
		DoseQuantity: rule.Schedule.DoseQuantity,
		DoseUnit:     rule.Schedule.DoseUnit,
		Instruction:  rule.Schedule.Instruction,
		Slot:         slot,
		ScheduledAt:  instant,
	}

	if log, ok := logByID[logID]; ok {
		inst.Status = log.Log.Status
		inst.Note = log.Log.Note
		if log.Log.TakenAt != nil {
			takenAt := log.Log.TakenAt.Time()
			inst.TakenAt = &takenAt
		}
		if inst.Status == models.DoseStatusPending && instant.Before(now) {
			inst.Status = models.DoseStatusMissed
		}
		return inst
	}

	if instant.Before(now) {
		inst.Status = models.DoseStatusMissed
	} else {
		inst.Status = models.DoseStatusPending
	}
	return inst
}

func civilDateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
