package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/carelinkhq/carelink-api/adherence"
	"github.com/carelinkhq/carelink-api/databases"
	"github.com/carelinkhq/carelink-api/relations"
)

// Adherence represents the dose outcome and statistics handler
type Adherence struct {
	Tracker  *adherence.Tracker
	Rules    databases.ScheduleRuleDatabase
	Profiles databases.SeniorProfileDatabase
	Relation *relations.Manager
}

type doseOutcomeRequest struct {
	RuleID      string     `json:"ruleID"`
	ScheduledAt time.Time  `json:"scheduledAt"`
	TakenAt     *time.Time `json:"takenAt,omitempty"`
	Note        string     `json:"note,omitempty"`
}

func (h Adherence) authorizeOutcome(r *http.Request, ruleID string) error {
	rule, err := h.Rules.GetByID(r.Context(), ruleID)
	if err != nil {
		return err
	}
	return h.Relation.Authorize(r.Context(), callerID(r), rule.Schedule.SeniorID, relations.PermEditReminders)
}

// RecordTakenHandler handles POST requests to confirm a dose as taken
func (h Adherence) RecordTakenHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req doseOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if req.RuleID == "" || req.ScheduledAt.IsZero() {
		http.Error(w, "ruleID and scheduledAt are required", http.StatusBadRequest)
		return
	}

	if err := h.authorizeOutcome(r, req.RuleID); err != nil {
		writeDomainError(w, err, "failed to authorize dose confirmation")
		return
	}

	takenAt := time.Now()
	if req.TakenAt != nil {
		takenAt = *req.TakenAt
	}

	result, err := h.Tracker.RecordTaken(r.Context(), req.RuleID, req.ScheduledAt, takenAt, req.Note)
	if err != nil {
		writeDomainError(w, err, "failed to record dose as taken")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		writeDomainError(w, err, "failed to encode dose taken response")
		return
	}
}

// RecordSkippedHandler handles POST requests to mark a dose as skipped
func (h Adherence) RecordSkippedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req doseOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if req.RuleID == "" || req.ScheduledAt.IsZero() {
		http.Error(w, "ruleID and scheduledAt are required", http.StatusBadRequest)
		return
	}

	if err := h.authorizeOutcome(r, req.RuleID); err != nil {
		writeDomainError(w, err, "failed to authorize dose skip")
		return
	}

	result, err := h.Tracker.RecordSkipped(r.Context(), req.RuleID, req.ScheduledAt, req.Note)
	if err != nil {
		writeDomainError(w, err, "failed to record dose as skipped")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		writeDomainError(w, err, "failed to encode dose skipped response")
		return
	}
}

type batchConfirmRequest struct {
	SeniorID string   `json:"seniorID"`
	LogIDs   []string `json:"logIDs"`
}

// ConfirmBatchHandler handles POST requests to confirm the checked doses of a
// batch in one call.
func (h Adherence) ConfirmBatchHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req batchConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if req.SeniorID == "" {
		http.Error(w, "seniorID is required", http.StatusBadRequest)
		return
	}
	if len(req.LogIDs) == 0 {
		http.Error(w, "logIDs is required", http.StatusBadRequest)
		return
	}

	if err := h.Relation.Authorize(r.Context(), callerID(r), req.SeniorID, relations.PermEditReminders); err != nil {
		writeDomainError(w, err, "failed to authorize batch confirmation")
		return
	}

	result, err := h.Tracker.ConfirmBatch(r.Context(), req.SeniorID, req.LogIDs, time.Now())
	if err != nil {
		writeDomainError(w, err, "failed to confirm dose batch")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		writeDomainError(w, err, "failed to encode batch confirmation response")
		return
	}
}

// TodayStatisticsHandler handles GET requests for today's adherence summary
func (h Adherence) TodayStatisticsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	seniorID := mux.Vars(r)["senior_id"]
	if seniorID == "" {
		http.Error(w, "senior_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Relation.Authorize(r.Context(), callerID(r), seniorID, relations.PermViewReminders); err != nil {
		writeDomainError(w, err, "failed to authorize adherence read")
		return
	}

	profile, err := h.Profiles.GetByID(r.Context(), seniorID)
	if err != nil {
		writeDomainError(w, err, "failed to resolve senior timezone")
		return
	}

	stats, err := h.Tracker.TodayStatistics(r.Context(), seniorID, time.Now(), profile.Profile.Location())
	if err != nil {
		writeDomainError(w, err, "failed to compute today's statistics")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		writeDomainError(w, err, "failed to encode statistics response")
		return
	}
}

// OverdueDosesHandler handles GET requests for the senior's missed doses in
// the recent lookback window.
func (h Adherence) OverdueDosesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	seniorID := mux.Vars(r)["senior_id"]
	if seniorID == "" {
		http.Error(w, "senior_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Relation.Authorize(r.Context(), callerID(r), seniorID, relations.PermViewReminders); err != nil {
		writeDomainError(w, err, "failed to authorize overdue read")
		return
	}

	profile, err := h.Profiles.GetByID(r.Context(), seniorID)
	if err != nil {
		writeDomainError(w, err, "failed to resolve senior timezone")
		return
	}

	lookback := adherence.DefaultOverdueLookback
	if hoursStr := r.URL.Query().Get("hours"); hoursStr != "" {
		if d, err := time.ParseDuration(hoursStr + "h"); err == nil && d > 0 {
			lookback = d
		}
	}

	overdue, err := h.Tracker.OverdueDoses(r.Context(), seniorID, time.Now(), lookback, profile.Profile.Location())
	if err != nil {
		writeDomainError(w, err, "failed to compute overdue doses")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(overdue); err != nil {
		writeDomainError(w, err, "failed to encode overdue response")
		return
	}
}
