package adherence

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/carelinkhq/carelink-api/databases"
	"github.com/carelinkhq/carelink-api/models"
	"github.com/carelinkhq/carelink-api/notify"
	"github.com/carelinkhq/carelink-api/reminders"
)

// DefaultOverdueLookback bounds how far back the overdue view reaches
const DefaultOverdueLookback = 48 * time.Hour

// Tracker records dosing outcomes and keeps medication stock in step with
// confirmed doses. Recording is idempotent per (rule, scheduled instant):
// repeating a confirmation never decrements stock twice.
type Tracker struct {
	Rules    databases.ScheduleRuleDatabase
	Logs     databases.DoseLogDatabase
	Doses    *reminders.Materializer
	Notifier notify.Notifier
}

// TakeResult reports what one outcome recording actually did
type TakeResult struct {
	Applied  bool                 `json:"applied"`
	Rule     *models.ScheduleRule `json:"rule"`
	LowStock bool                 `json:"lowStock"`
}

// BatchConfirmResult reports the per-dose outcome of a batch confirmation.
// Invalid or already-settled entries never block the valid ones.
type BatchConfirmResult struct {
	Confirmed   []string          `json:"confirmed"`
	AlreadyDone []string          `json:"alreadyDone"`
	Failed      map[string]string `json:"failed,omitempty"`
}

// RecordTaken marks the dose instant of ruleID at scheduledAt as taken and
// decrements the rule's stock by one, floored at zero. When the dose was
// already settled the call is a no-op success with Applied false and stock
// untouched. A low-stock signal is emitted when the decrement lands the stock
// at or below the rule's alert threshold.
func (t *Tracker) RecordTaken(ctx context.Context, ruleID string, scheduledAt, takenAt time.Time, note string) (*TakeResult, error) {
	rule, err := t.Rules.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	return t.recordTaken(ctx, rule, scheduledAt, takenAt, note)
}

func (t *Tracker) recordTaken(ctx context.Context, rule *models.ScheduleRule, scheduledAt, takenAt time.Time, note string) (*TakeResult, error) {
	ruleID := rule.ID.Hex()

	taken := primitive.NewDateTimeFromTime(takenAt)
	log := &models.DoseLog{
		ID: models.DoseLogID(ruleID, scheduledAt),
		Log: models.DoseLogDetails{
			RuleID:      ruleID,
			SeniorID:    rule.Schedule.SeniorID,
			ScheduledAt: primitive.NewDateTimeFromTime(scheduledAt),
			TakenAt:     &taken,
			Status:      models.DoseStatusTaken,
			Note:        note,
		},
	}

	applied, err := t.Logs.MarkOutcome(ctx, log)
	if err != nil {
		return nil, err
	}
	if !applied {
		return &TakeResult{Applied: false, Rule: rule}, nil
	}

	updated, err := t.Rules.DecrementStock(ctx, ruleID)
	if err != nil {
		// the outcome is recorded either way; surface the rule we have
		zap.S().Errorw("stock decrement failed after dose confirmation", "ruleID", ruleID, "error", err)
		return &TakeResult{Applied: true, Rule: rule}, nil
	}

	result := &TakeResult{Applied: true, Rule: updated}
	if updated.Schedule.EnableStockAlert && updated.Schedule.CurrentStock <= updated.Schedule.LowStockThreshold {
		result.LowStock = true
		if t.Notifier != nil {
			t.Notifier.LowStock(ctx, notify.LowStockSignal{
				SeniorID:     updated.Schedule.SeniorID,
				RuleID:       ruleID,
				DrugName:     updated.Schedule.DrugName,
				CurrentStock: updated.Schedule.CurrentStock,
				Threshold:    updated.Schedule.LowStockThreshold,
				At:           takenAt,
			})
		}
	}
	return result, nil
}

// RecordSkipped marks the dose instant as deliberately skipped. Skipping never
// touches stock, and settling an already-settled dose is a no-op success.
func (t *Tracker) RecordSkipped(ctx context.Context, ruleID string, scheduledAt time.Time, note string) (*TakeResult, error) {
	rule, err := t.Rules.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}

	log := &models.DoseLog{
		ID: models.DoseLogID(ruleID, scheduledAt),
		Log: models.DoseLogDetails{
			RuleID:      ruleID,
			SeniorID:    rule.Schedule.SeniorID,
			ScheduledAt: primitive.NewDateTimeFromTime(scheduledAt),
			Status:      models.DoseStatusSkipped,
			Note:        note,
		},
	}

	applied, err := t.Logs.MarkOutcome(ctx, log)
	if err != nil {
		return nil, err
	}
	return &TakeResult{Applied: applied, Rule: rule}, nil
}

// ConfirmBatch records a taken outcome for every checked log id in one
// confirmation sweep on behalf of seniorID. Each entry settles independently;
// a malformed id, a vanished rule, or a rule belonging to a different senior
// lands in Failed without aborting the rest. The ownership check keeps a
// caller authorized for one senior from settling another senior's doses
// through guessed log ids.
func (t *Tracker) ConfirmBatch(ctx context.Context, seniorID string, logIDs []string, takenAt time.Time) (*BatchConfirmResult, error) {
	result := &BatchConfirmResult{
		Confirmed:   []string{},
		AlreadyDone: []string{},
		Failed:      map[string]string{},
	}

	for _, logID := range logIDs {
		ruleID, scheduledAt, err := models.ParseDoseLogID(logID)
		if err != nil {
			result.Failed[logID] = err.Error()
			continue
		}

		rule, err := t.Rules.GetByID(ctx, ruleID)
		if err != nil {
			result.Failed[logID] = err.Error()
			continue
		}
		if rule.Schedule.SeniorID != seniorID {
			result.Failed[logID] = models.NewPermissionDeniedError("dose does not belong to senior " + seniorID).Error()
			continue
		}

		take, err := t.recordTaken(ctx, rule, scheduledAt, takenAt, "")
		if err != nil {
			result.Failed[logID] = err.Error()
			continue
		}
		if take.Applied {
			result.Confirmed = append(result.Confirmed, logID)
		} else {
			result.AlreadyDone = append(result.AlreadyDone, logID)
		}
	}
	return result, nil
}

// TodayStatistics summarizes the senior's adherence over today's civil date in
// their timezone. Pending doses are excluded from the denominator; a day with
// no settled or missed doses reports a rate of zero.
func (t *Tracker) TodayStatistics(ctx context.Context, seniorID string, now time.Time, loc *time.Location) (*models.TodayStatistics, error) {
	y, m, d := now.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	instances, err := t.Doses.Materialize(ctx, seniorID, start, end, now, loc)
	if err != nil {
		return nil, err
	}

	stats := &models.TodayStatistics{Total: len(instances)}
	for _, inst := range instances {
		switch inst.Status {
		case models.DoseStatusTaken:
			stats.Taken++
		case models.DoseStatusSkipped:
			stats.Skipped++
		case models.DoseStatusMissed:
			stats.Missed++
		default:
			stats.Pending++
		}
	}

	settled := stats.Total - stats.Pending
	if settled > 0 {
		stats.AdherenceRate = float64(stats.Taken) / float64(settled)
	}
	return stats, nil
}

// OverdueDoses returns the senior's missed doses within the lookback window
// ending at now, soonest first. Missed status is computed at read time, so a
// dose confirmed late simply stops appearing here.
func (t *Tracker) OverdueDoses(ctx context.Context, seniorID string, now time.Time, lookback time.Duration, loc *time.Location) ([]models.DoseInstance, error) {
	if lookback <= 0 {
		lookback = DefaultOverdueLookback
	}

	instances, err := t.Doses.Materialize(ctx, seniorID, now.Add(-lookback), now, now, loc)
	if err != nil {
		return nil, err
	}

	overdue := make([]models.DoseInstance, 0, len(instances))
	for _, inst := range instances {
		if inst.Status == models.DoseStatusMissed {
			overdue = append(overdue, inst)
		}
	}
	return overdue, nil
}
