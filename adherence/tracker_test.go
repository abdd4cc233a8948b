package adherence_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinkhq/carelink-api/adherence"
	"github.com/carelinkhq/carelink-api/databases/mocks"
	"github.com/carelinkhq/carelink-api/models"
	"github.com/carelinkhq/carelink-api/notify"
	"github.com/carelinkhq/carelink-api/reminders"
)

// signalRecorder captures emitted signals so tests can assert on them
type signalRecorder struct {
	lowStock []notify.LowStockSignal
	doseDue  []notify.DoseDueSignal
}

func (s *signalRecorder) LowStock(_ context.Context, sig notify.LowStockSignal) {
	s.lowStock = append(s.lowStock, sig)
}

func (s *signalRecorder) DoseDue(_ context.Context, sig notify.DoseDueSignal) {
	s.doseDue = append(s.doseDue, sig)
}

func newTestRule(stock, threshold int, alert bool) *models.ScheduleRule {
	return &models.ScheduleRule{
		ID: primitive.NewObjectID(),
		Schedule: models.ScheduleRuleDetails{
			SeniorID:          "senior-1",
			DrugName:          "Metformin",
			Frequency:         models.FrequencyDaily,
			TimeSlots:         []string{"08:00", "12:00", "20:00"},
			StartDate:         "2025-03-01",
			Status:            models.RuleStatusActive,
			CurrentStock:      stock,
			LowStockThreshold: threshold,
			EnableStockAlert:  alert,
		},
	}
}

func TestRecordTaken_AppliesAndDecrementsStock(t *testing.T) {
	rule := newTestRule(10, 3, true)
	ruleID := rule.ID.Hex()
	scheduledAt := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)
	takenAt := scheduledAt.Add(5 * time.Minute)

	updated := newTestRule(9, 3, true)
	updated.ID = rule.ID

	rulesDB := mocks.NewScheduleRuleDatabase(t)
	logsDB := mocks.NewDoseLogDatabase(t)
	rulesDB.On("GetByID", mock.Anything, ruleID).Return(rule, nil)
	logsDB.On("MarkOutcome", mock.Anything, mock.AnythingOfType("*models.DoseLog")).
		Return(true, nil).
		Run(func(args mock.Arguments) {
			log := args.Get(1).(*models.DoseLog)
			assert.Equal(t, models.DoseLogID(ruleID, scheduledAt), log.ID)
			assert.Equal(t, models.DoseStatusTaken, log.Log.Status)
			assert.Equal(t, "senior-1", log.Log.SeniorID)
			assert.NotNil(t, log.Log.TakenAt)
		})
	rulesDB.On("DecrementStock", mock.Anything, ruleID).Return(updated, nil)

	recorder := &signalRecorder{}
	tracker := &adherence.Tracker{Rules: rulesDB, Logs: logsDB, Notifier: recorder}

	result, err := tracker.RecordTaken(context.Background(), ruleID, scheduledAt, takenAt, "with breakfast")
	assert.NoError(t, err)
	assert.True(t, result.Applied)
	assert.False(t, result.LowStock)
	assert.Equal(t, 9, result.Rule.Schedule.CurrentStock)
	assert.Empty(t, recorder.lowStock)
}

func TestRecordTaken_SecondConfirmationIsNoOp(t *testing.T) {
	rule := newTestRule(10, 3, true)
	ruleID := rule.ID.Hex()
	scheduledAt := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)

	rulesDB := mocks.NewScheduleRuleDatabase(t)
	logsDB := mocks.NewDoseLogDatabase(t)
	rulesDB.On("GetByID", mock.Anything, ruleID).Return(rule, nil)
	// the dose is already settled, so the guarded write does not apply and
	// DecrementStock must never be called
	logsDB.On("MarkOutcome", mock.Anything, mock.AnythingOfType("*models.DoseLog")).Return(false, nil)

	tracker := &adherence.Tracker{Rules: rulesDB, Logs: logsDB}

	result, err := tracker.RecordTaken(context.Background(), ruleID, scheduledAt, scheduledAt, "")
	assert.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, 10, result.Rule.Schedule.CurrentStock)
}

func TestRecordTaken_EmitsLowStockAtThreshold(t *testing.T) {
	rule := newTestRule(4, 3, true)
	ruleID := rule.ID.Hex()
	scheduledAt := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)

	updated := newTestRule(3, 3, true)
	updated.ID = rule.ID

	rulesDB := mocks.NewScheduleRuleDatabase(t)
	logsDB := mocks.NewDoseLogDatabase(t)
	rulesDB.On("GetByID", mock.Anything, ruleID).Return(rule, nil)
	logsDB.On("MarkOutcome", mock.Anything, mock.AnythingOfType("*models.DoseLog")).Return(true, nil)
	rulesDB.On("DecrementStock", mock.Anything, ruleID).Return(updated, nil)

	recorder := &signalRecorder{}
	tracker := &adherence.Tracker{Rules: rulesDB, Logs: logsDB, Notifier: recorder}

	result, err := tracker.RecordTaken(context.Background(), ruleID, scheduledAt, scheduledAt, "")
	assert.NoError(t, err)
	assert.True(t, result.LowStock)
	assert.Len(t, recorder.lowStock, 1)
	assert.Equal(t, "Metformin", recorder.lowStock[0].DrugName)
	assert.Equal(t, 3, recorder.lowStock[0].CurrentStock)
	assert.Equal(t, 3, recorder.lowStock[0].Threshold)
}

func TestRecordTaken_NoAlertWhenDisabled(t *testing.T) {
	rule := newTestRule(1, 3, false)
	ruleID := rule.ID.Hex()
	scheduledAt := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)

	updated := newTestRule(0, 3, false)
	updated.ID = rule.ID

	rulesDB := mocks.NewScheduleRuleDatabase(t)
	logsDB := mocks.NewDoseLogDatabase(t)
	rulesDB.On("GetByID", mock.Anything, ruleID).Return(rule, nil)
	logsDB.On("MarkOutcome", mock.Anything, mock.AnythingOfType("*models.DoseLog")).Return(true, nil)
	rulesDB.On("DecrementStock", mock.Anything, ruleID).Return(updated, nil)

	recorder := &signalRecorder{}
	tracker := &adherence.Tracker{Rules: rulesDB, Logs: logsDB, Notifier: recorder}

	result, err := tracker.RecordTaken(context.Background(), ruleID, scheduledAt, scheduledAt, "")
	assert.NoError(t, err)
	assert.False(t, result.LowStock)
	assert.Empty(t, recorder.lowStock)
}

func TestRecordTaken_UnknownRule(t *testing.T) {
	rulesDB := mocks.NewScheduleRuleDatabase(t)
	logsDB := mocks.NewDoseLogDatabase(t)
	rulesDB.On("GetByID", mock.Anything, "missing").
		Return(nil, models.NewNotFoundError("schedule rule", "missing"))

	tracker := &adherence.Tracker{Rules: rulesDB, Logs: logsDB}

	_, err := tracker.RecordTaken(context.Background(), "missing", time.Now(), time.Now(), "")
	assert.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestRecordTaken_ConcurrentConfirmationsNeverUnderflowStock(t *testing.T) {
	rule := newTestRule(1, 0, false)
	ruleID := rule.ID.Hex()

	// stand-in for mongo's conditional $inc: one lock, decrement only while
	// stock is positive
	var mu sync.Mutex
	stock := 1

	rulesDB := mocks.NewScheduleRuleDatabase(t)
	logsDB := mocks.NewDoseLogDatabase(t)
	rulesDB.On("GetByID", mock.Anything, ruleID).Return(rule, nil)
	logsDB.On("MarkOutcome", mock.Anything, mock.AnythingOfType("*models.DoseLog")).Return(true, nil)
	rulesDB.On("DecrementStock", mock.Anything, ruleID).
		Return(func(ctx context.Context, id string) *models.ScheduleRule {
			mu.Lock()
			defer mu.Unlock()
			if stock > 0 {
				stock--
			}
			updated := newTestRule(stock, 0, false)
			updated.ID = rule.ID
			return updated
		}, nil)

	tracker := &adherence.Tracker{Rules: rulesDB, Logs: logsDB}

	instants := []time.Time{
		time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 20, 0, 0, 0, time.UTC),
	}

	var wg sync.WaitGroup
	for _, at := range instants {
		wg.Add(1)
		go func(at time.Time) {
			defer wg.Done()
			_, err := tracker.RecordTaken(context.Background(), ruleID, at, at, "")
			assert.NoError(t, err)
		}(at)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, stock)
}

func TestRecordSkipped_NeverTouchesStock(t *testing.T) {
	rule := newTestRule(10, 3, true)
	ruleID := rule.ID.Hex()
	scheduledAt := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)

	rulesDB := mocks.NewScheduleRuleDatabase(t)
	logsDB := mocks.NewDoseLogDatabase(t)
	rulesDB.On("GetByID", mock.Anything, ruleID).Return(rule, nil)
	logsDB.On("MarkOutcome", mock.Anything, mock.AnythingOfType("*models.DoseLog")).
		Return(true, nil).
		Run(func(args mock.Arguments) {
			log := args.Get(1).(*models.DoseLog)
			assert.Equal(t, models.DoseStatusSkipped, log.Log.Status)
			assert.Nil(t, log.Log.TakenAt)
		})

	tracker := &adherence.Tracker{Rules: rulesDB, Logs: logsDB}

	result, err := tracker.RecordSkipped(context.Background(), ruleID, scheduledAt, "nauseous")
	assert.NoError(t, err)
	assert.True(t, result.Applied)
}

func TestConfirmBatch_PartialValidity(t *testing.T) {
	rule := newTestRule(10, 3, false)
	ruleID := rule.ID.Hex()
	takenAt := time.Date(2025, 3, 5, 8, 10, 0, 0, time.UTC)

	freshID := models.DoseLogID(ruleID, time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC))
	settledID := models.DoseLogID(ruleID, time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC))
	malformedID := "not-a-log-id"

	updated := newTestRule(9, 3, false)
	updated.ID = rule.ID

	rulesDB := mocks.NewScheduleRuleDatabase(t)
	logsDB := mocks.NewDoseLogDatabase(t)
	rulesDB.On("GetByID", mock.Anything, ruleID).Return(rule, nil)
	logsDB.On("MarkOutcome", mock.Anything, mock.AnythingOfType("*models.DoseLog")).
		Return(func(ctx context.Context, log *models.DoseLog) bool {
			return log.ID == freshID
		}, nil)
	rulesDB.On("DecrementStock", mock.Anything, ruleID).Return(updated, nil).Once()

	tracker := &adherence.Tracker{Rules: rulesDB, Logs: logsDB}

	result, err := tracker.ConfirmBatch(context.Background(), "senior-1", []string{freshID, settledID, malformedID}, takenAt)
	assert.NoError(t, err)
	assert.Equal(t, []string{freshID}, result.Confirmed)
	assert.Equal(t, []string{settledID}, result.AlreadyDone)
	assert.Contains(t, result.Failed, malformedID)
}

func TestConfirmBatch_ForeignSeniorEntryFails(t *testing.T) {
	ownRule := newTestRule(10, 3, false)
	foreignRule := newTestRule(10, 3, false)
	foreignRule.Schedule.SeniorID = "senior-2"
	takenAt := time.Date(2025, 3, 5, 8, 10, 0, 0, time.UTC)

	ownID := models.DoseLogID(ownRule.ID.Hex(), time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC))
	foreignID := models.DoseLogID(foreignRule.ID.Hex(), time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC))

	updated := newTestRule(9, 3, false)
	updated.ID = ownRule.ID

	rulesDB := mocks.NewScheduleRuleDatabase(t)
	logsDB := mocks.NewDoseLogDatabase(t)
	rulesDB.On("GetByID", mock.Anything, ownRule.ID.Hex()).Return(ownRule, nil)
	rulesDB.On("GetByID", mock.Anything, foreignRule.ID.Hex()).Return(foreignRule, nil)
	// only the caller's own dose may be written; the foreign rule must see
	// neither MarkOutcome nor DecrementStock
	logsDB.On("MarkOutcome", mock.Anything, mock.AnythingOfType("*models.DoseLog")).
		Return(true, nil).
		Run(func(args mock.Arguments) {
			log := args.Get(1).(*models.DoseLog)
			assert.Equal(t, ownID, log.ID)
		}).Once()
	rulesDB.On("DecrementStock", mock.Anything, ownRule.ID.Hex()).Return(updated, nil).Once()

	tracker := &adherence.Tracker{Rules: rulesDB, Logs: logsDB}

	result, err := tracker.ConfirmBatch(context.Background(), "senior-1", []string{ownID, foreignID}, takenAt)
	assert.NoError(t, err)
	assert.Equal(t, []string{ownID}, result.Confirmed)
	assert.Contains(t, result.Failed, foreignID)
	assert.Contains(t, result.Failed[foreignID], "does not belong")
}

func TestTodayStatistics(t *testing.T) {
	rule := newTestRule(10, 3, false)
	ruleID := rule.ID.Hex()
	now := time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC)
	dayStart := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	morning := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)
	takenAt := primitive.NewDateTimeFromTime(morning)
	logs := []models.DoseLog{
		{
			ID: models.DoseLogID(ruleID, morning),
			Log: models.DoseLogDetails{
				RuleID:      ruleID,
				SeniorID:    "senior-1",
				ScheduledAt: primitive.NewDateTimeFromTime(morning),
				TakenAt:     &takenAt,
				Status:      models.DoseStatusTaken,
			},
		},
	}

	rulesDB := mocks.NewScheduleRuleDatabase(t)
	logsDB := mocks.NewDoseLogDatabase(t)
	rulesDB.On("FindBySeniorID", mock.Anything, "senior-1").Return([]models.ScheduleRule{*rule}, nil)
	logsDB.On("FindBySeniorWindow", mock.Anything, "senior-1", dayStart, dayEnd).Return(logs, nil)

	materializer := &reminders.Materializer{Rules: rulesDB, Logs: logsDB}
	tracker := &adherence.Tracker{Rules: rulesDB, Logs: logsDB, Doses: materializer}

	// 08:00 taken, 12:00 has no log and is behind the clock, 20:00 still ahead
	stats, err := tracker.TodayStatistics(context.Background(), "senior-1", now, time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Taken)
	assert.Equal(t, 1, stats.Missed)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 0, stats.Skipped)
	assert.InDelta(t, 0.5, stats.AdherenceRate, 1e-9)
}

func TestTodayStatistics_EmptyDayHasZeroRate(t *testing.T) {
	now := time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC)
	dayStart := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	rulesDB := mocks.NewScheduleRuleDatabase(t)
	logsDB := mocks.NewDoseLogDatabase(t)
	rulesDB.On("FindBySeniorID", mock.Anything, "senior-1").Return(nil, nil)
	logsDB.On("FindBySeniorWindow", mock.Anything, "senior-1", dayStart, dayEnd).Return(nil, nil)

	materializer := &reminders.Materializer{Rules: rulesDB, Logs: logsDB}
	tracker := &adherence.Tracker{Rules: rulesDB, Logs: logsDB, Doses: materializer}

	stats, err := tracker.TodayStatistics(context.Background(), "senior-1", now, time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.AdherenceRate)
}

func TestOverdueDoses(t *testing.T) {
	rule := newTestRule(10, 3, false)
	ruleID := rule.ID.Hex()
	now := time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC)
	lookback := 12 * time.Hour

	noon := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	takenAt := primitive.NewDateTimeFromTime(noon)
	logs := []models.DoseLog{
		{
			ID: models.DoseLogID(ruleID, noon),
			Log: models.DoseLogDetails{
				RuleID:      ruleID,
				SeniorID:    "senior-1",
				ScheduledAt: primitive.NewDateTimeFromTime(noon),
				TakenAt:     &takenAt,
				Status:      models.DoseStatusTaken,
			},
		},
	}

	rulesDB := mocks.NewScheduleRuleDatabase(t)
	logsDB := mocks.NewDoseLogDatabase(t)
	rulesDB.On("FindBySeniorID", mock.Anything, "senior-1").Return([]models.ScheduleRule{*rule}, nil)
	logsDB.On("FindBySeniorWindow", mock.Anything, "senior-1", now.Add(-lookback), now).Return(logs, nil)

	materializer := &reminders.Materializer{Rules: rulesDB, Logs: logsDB}
	tracker := &adherence.Tracker{Rules: rulesDB, Logs: logsDB, Doses: materializer}

	// the window covers 08:00 (missed) and 12:00 (taken late, so no longer
	// overdue); 20:00 falls outside it
	overdue, err := tracker.OverdueDoses(context.Background(), "senior-1", now, lookback, time.UTC)
	assert.NoError(t, err)
	assert.Len(t, overdue, 1)
	assert.Equal(t, "08:00", overdue[0].Slot)
	assert.Equal(t, models.DoseStatusMissed, overdue[0].Status)
}
