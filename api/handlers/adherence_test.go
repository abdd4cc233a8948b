package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carelinkhq/carelink-api/adherence"
	"github.com/carelinkhq/carelink-api/databases/mocks"
	"github.com/carelinkhq/carelink-api/models"
	"github.com/carelinkhq/carelink-api/reminders"
)

func TestRecordTakenHandler(t *testing.T) {
	rule := testRule("senior-1")
	rule.Schedule.CurrentStock = 10
	ruleID := rule.ID.Hex()
	scheduledAt := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)

	updated := testRule("senior-1")
	updated.ID = rule.ID
	updated.Schedule.CurrentStock = 9

	ruleDB := mocks.NewScheduleRuleDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	ruleDB.On("GetByID", mock.Anything, ruleID).Return(rule, nil)
	logDB.On("MarkOutcome", mock.Anything, mock.AnythingOfType("*models.DoseLog")).Return(true, nil)
	ruleDB.On("DecrementStock", mock.Anything, ruleID).Return(updated, nil)

	manager, _ := testManager(t)
	tracker := &adherence.Tracker{Rules: ruleDB, Logs: logDB}
	h := Adherence{Tracker: tracker, Rules: ruleDB, Relation: manager}

	payload, _ := json.Marshal(map[string]interface{}{
		"ruleID":      ruleID,
		"scheduledAt": scheduledAt.Format(time.RFC3339),
	})
	req := httptest.NewRequest("POST", "/api/v1/doses/take?caller_id=senior-1", bytes.NewReader(payload))
	rr := httptest.NewRecorder()

	h.RecordTakenHandler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var result adherence.TakeResult
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.Applied)
	assert.Equal(t, 9, result.Rule.Schedule.CurrentStock)
}

func TestRecordTakenHandler_MissingFields(t *testing.T) {
	manager, _ := testManager(t)
	h := Adherence{Tracker: &adherence.Tracker{}, Relation: manager}

	payload, _ := json.Marshal(map[string]interface{}{"ruleID": "abc"})
	req := httptest.NewRequest("POST", "/api/v1/doses/take?caller_id=senior-1", bytes.NewReader(payload))
	rr := httptest.NewRecorder()

	h.RecordTakenHandler(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecordTakenHandler_StrangerForbidden(t *testing.T) {
	rule := testRule("senior-1")
	ruleID := rule.ID.Hex()

	ruleDB := mocks.NewScheduleRuleDatabase(t)
	ruleDB.On("GetByID", mock.Anything, ruleID).Return(rule, nil)

	manager, relationsDB := testManager(t)
	id := models.RelationID("stranger", "senior-1")
	relationsDB.On("GetByID", mock.Anything, id).
		Return(nil, models.NewNotFoundError("caregiver relation", id))

	h := Adherence{Tracker: &adherence.Tracker{Rules: ruleDB}, Rules: ruleDB, Relation: manager}

	payload, _ := json.Marshal(map[string]interface{}{
		"ruleID":      ruleID,
		"scheduledAt": "2025-03-05T08:00:00Z",
	})
	req := httptest.NewRequest("POST", "/api/v1/doses/take?caller_id=stranger", bytes.NewReader(payload))
	rr := httptest.NewRecorder()

	h.RecordTakenHandler(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRecordSkippedHandler(t *testing.T) {
	rule := testRule("senior-1")
	ruleID := rule.ID.Hex()

	ruleDB := mocks.NewScheduleRuleDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	ruleDB.On("GetByID", mock.Anything, ruleID).Return(rule, nil)
	logDB.On("MarkOutcome", mock.Anything, mock.AnythingOfType("*models.DoseLog")).Return(true, nil)

	manager, _ := testManager(t)
	tracker := &adherence.Tracker{Rules: ruleDB, Logs: logDB}
	h := Adherence{Tracker: tracker, Rules: ruleDB, Relation: manager}

	payload, _ := json.Marshal(map[string]interface{}{
		"ruleID":      ruleID,
		"scheduledAt": "2025-03-05T08:00:00Z",
		"note":        "felt unwell",
	})
	req := httptest.NewRequest("POST", "/api/v1/doses/skip?caller_id=senior-1", bytes.NewReader(payload))
	rr := httptest.NewRecorder()

	h.RecordSkippedHandler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestConfirmBatchHandler(t *testing.T) {
	rule := testRule("senior-1")
	rule.Schedule.CurrentStock = 5
	ruleID := rule.ID.Hex()
	logID := models.DoseLogID(ruleID, time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC))

	updated := testRule("senior-1")
	updated.ID = rule.ID
	updated.Schedule.CurrentStock = 4

	ruleDB := mocks.NewScheduleRuleDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	ruleDB.On("GetByID", mock.Anything, ruleID).Return(rule, nil)
	logDB.On("MarkOutcome", mock.Anything, mock.AnythingOfType("*models.DoseLog")).Return(true, nil)
	ruleDB.On("DecrementStock", mock.Anything, ruleID).Return(updated, nil)

	manager, _ := testManager(t)
	tracker := &adherence.Tracker{Rules: ruleDB, Logs: logDB}
	h := Adherence{Tracker: tracker, Rules: ruleDB, Relation: manager}

	payload, _ := json.Marshal(map[string]interface{}{
		"seniorID": "senior-1",
		"logIDs":   []string{logID},
	})
	req := httptest.NewRequest("POST", "/api/v1/doses/confirm-batch?caller_id=senior-1", bytes.NewReader(payload))
	rr := httptest.NewRecorder()

	h.ConfirmBatchHandler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var result adherence.BatchConfirmResult
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, []string{logID}, result.Confirmed)
	assert.Empty(t, result.AlreadyDone)
}

func TestConfirmBatchHandler_CrossSeniorLogRejected(t *testing.T) {
	foreignRule := testRule("senior-2")
	foreignID := models.DoseLogID(foreignRule.ID.Hex(), time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC))

	ruleDB := mocks.NewScheduleRuleDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	// the foreign rule is looked up for the ownership check, but absent
	// MarkOutcome/DecrementStock expectations prove it is never written to
	ruleDB.On("GetByID", mock.Anything, foreignRule.ID.Hex()).Return(foreignRule, nil)

	manager, relationsDB := testManager(t)
	relationsDB.On("GetByID", mock.Anything, models.RelationID("caregiver-1", "senior-1")).
		Return(&models.CaregiverRelation{
			ID: models.RelationID("caregiver-1", "senior-1"),
			Relation: models.CaregiverRelationDetails{
				CaregiverID: "caregiver-1",
				SeniorID:    "senior-1",
				Status:      models.RelationStatusActive,
				Permissions: models.PermissionFlags{CanViewReminders: true, CanEditReminders: true},
			},
		}, nil)

	tracker := &adherence.Tracker{Rules: ruleDB, Logs: logDB}
	h := Adherence{Tracker: tracker, Rules: ruleDB, Relation: manager}

	payload, _ := json.Marshal(map[string]interface{}{
		"seniorID": "senior-1",
		"logIDs":   []string{foreignID},
	})
	req := httptest.NewRequest("POST", "/api/v1/doses/confirm-batch?caller_id=caregiver-1", bytes.NewReader(payload))
	rr := httptest.NewRecorder()

	h.ConfirmBatchHandler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var result adherence.BatchConfirmResult
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Empty(t, result.Confirmed)
	assert.Empty(t, result.AlreadyDone)
	assert.Contains(t, result.Failed, foreignID)
}

func TestConfirmBatchHandler_EmptyBatch(t *testing.T) {
	manager, _ := testManager(t)
	h := Adherence{Tracker: &adherence.Tracker{}, Relation: manager}

	payload, _ := json.Marshal(map[string]interface{}{"seniorID": "senior-1"})
	req := httptest.NewRequest("POST", "/api/v1/doses/confirm-batch?caller_id=senior-1", bytes.NewReader(payload))
	rr := httptest.NewRecorder()

	h.ConfirmBatchHandler(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTodayStatisticsHandler(t *testing.T) {
	rule := testRule("senior-1")

	ruleDB := mocks.NewScheduleRuleDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	profileDB := mocks.NewSeniorProfileDatabase(t)
	ruleDB.On("FindBySeniorID", mock.Anything, "senior-1").Return([]models.ScheduleRule{*rule}, nil)
	logDB.On("FindBySeniorWindow", mock.Anything, "senior-1", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(nil, nil)
	profileDB.On("GetByID", mock.Anything, "senior-1").Return(&models.SeniorProfile{
		ID:      "senior-1",
		Profile: models.SeniorProfileDetails{Name: "Grandma Li", Timezone: "UTC"},
	}, nil)

	manager, _ := testManager(t)
	materializer := &reminders.Materializer{Rules: ruleDB, Logs: logDB}
	tracker := &adherence.Tracker{Rules: ruleDB, Logs: logDB, Doses: materializer}
	h := Adherence{Tracker: tracker, Rules: ruleDB, Profiles: profileDB, Relation: manager}

	req := httptest.NewRequest("GET", "/api/v1/adherence/senior/senior-1/today?caller_id=senior-1", nil)
	req = mux.SetURLVars(req, map[string]string{"senior_id": "senior-1"})
	rr := httptest.NewRecorder()

	h.TodayStatisticsHandler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var stats models.TodayStatistics
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Total)
}
