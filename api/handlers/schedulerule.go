package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/carelinkhq/carelink-api/databases"
	"github.com/carelinkhq/carelink-api/models"
	"github.com/carelinkhq/carelink-api/relations"
)

// ScheduleRule represents the schedule rule handler
type ScheduleRule struct {
	DB       databases.ScheduleRuleDatabase
	Relation *relations.Manager
}

// CreateScheduleRuleHandler handles POST requests to create a new schedule rule
func (h ScheduleRule) CreateScheduleRuleHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var rule models.ScheduleRule
	if err := json.Unmarshal(body, &rule); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	caller := callerID(r)
	if err := h.Relation.Authorize(r.Context(), caller, rule.Schedule.SeniorID, relations.PermEditReminders); err != nil {
		writeDomainError(w, err, "failed to authorize schedule rule creation")
		return
	}
	rule.Schedule.CreatedBy = caller

	if err := h.DB.Create(r.Context(), &rule); err != nil {
		writeDomainError(w, err, "failed to create schedule rule")
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(rule); err != nil {
		writeDomainError(w, err, "failed to encode created schedule rule response")
		return
	}
}

// ScheduleRuleByIDHandler handles GET requests for a single schedule rule
func (h ScheduleRule) ScheduleRuleByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ruleID := mux.Vars(r)["rule_id"]
	if ruleID == "" {
		http.Error(w, "rule_id is required", http.StatusBadRequest)
		return
	}

	rule, err := h.DB.GetByID(r.Context(), ruleID)
	if err != nil {
		writeDomainError(w, err, "failed to get schedule rule by ID")
		return
	}

	if err := h.Relation.Authorize(r.Context(), callerID(r), rule.Schedule.SeniorID, relations.PermViewReminders); err != nil {
		writeDomainError(w, err, "failed to authorize schedule rule read")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rule); err != nil {
		writeDomainError(w, err, "failed to encode schedule rule response")
		return
	}
}

// ScheduleRulesBySeniorIDHandler handles GET requests for a senior's schedule rules
func (h ScheduleRule) ScheduleRulesBySeniorIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	seniorID := mux.Vars(r)["senior_id"]
	if seniorID == "" {
		http.Error(w, "senior_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Relation.Authorize(r.Context(), callerID(r), seniorID, relations.PermViewReminders); err != nil {
		writeDomainError(w, err, "failed to authorize schedule rule list")
		return
	}

	rules, err := h.DB.FindBySeniorID(r.Context(), seniorID)
	if err != nil {
		writeDomainError(w, err, "failed to list schedule rules")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rules); err != nil {
		writeDomainError(w, err, "failed to encode schedule rules response")
		return
	}
}

// UpdateScheduleRuleHandler handles PUT requests to replace a schedule rule's details
func (h ScheduleRule) UpdateScheduleRuleHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ruleID := mux.Vars(r)["rule_id"]
	if ruleID == "" {
		http.Error(w, "rule_id is required", http.StatusBadRequest)
		return
	}

	existing, err := h.DB.GetByID(r.Context(), ruleID)
	if err != nil {
		writeDomainError(w, err, "failed to get schedule rule for update")
		return
	}
	if err := h.Relation.Authorize(r.Context(), callerID(r), existing.Schedule.SeniorID, relations.PermEditReminders); err != nil {
		writeDomainError(w, err, "failed to authorize schedule rule update")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var details models.ScheduleRuleDetails
	if err := json.Unmarshal(body, &details); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	// the senior binding and creator are immutable
	details.SeniorID = existing.Schedule.SeniorID
	details.CreatedBy = existing.Schedule.CreatedBy
	details.CreatedAt = existing.Schedule.CreatedAt

	if err := h.DB.Update(r.Context(), ruleID, details); err != nil {
		writeDomainError(w, err, "failed to update schedule rule")
		return
	}

	w.WriteHeader(http.StatusOK)
	response := map[string]string{"message": "Schedule rule updated successfully"}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		writeDomainError(w, err, "failed to encode update response")
		return
	}
}

type ruleStatusRequest struct {
	Status string `json:"status"`
}

// SetScheduleRuleStatusHandler handles PUT requests to pause or resume a rule
func (h ScheduleRule) SetScheduleRuleStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ruleID := mux.Vars(r)["rule_id"]
	if ruleID == "" {
		http.Error(w, "rule_id is required", http.StatusBadRequest)
		return
	}

	existing, err := h.DB.GetByID(r.Context(), ruleID)
	if err != nil {
		writeDomainError(w, err, "failed to get schedule rule for status change")
		return
	}
	if err := h.Relation.Authorize(r.Context(), callerID(r), existing.Schedule.SeniorID, relations.PermEditReminders); err != nil {
		writeDomainError(w, err, "failed to authorize schedule rule status change")
		return
	}

	var req ruleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := h.DB.SetStatus(r.Context(), ruleID, req.Status); err != nil {
		writeDomainError(w, err, "failed to set schedule rule status")
		return
	}

	w.WriteHeader(http.StatusOK)
	response := map[string]string{"message": "Schedule rule status updated successfully"}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		writeDomainError(w, err, "failed to encode status response")
		return
	}
}

// DeleteScheduleRuleHandler handles DELETE requests to remove a schedule rule
func (h ScheduleRule) DeleteScheduleRuleHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ruleID := mux.Vars(r)["rule_id"]
	if ruleID == "" {
		http.Error(w, "rule_id is required", http.StatusBadRequest)
		return
	}

	existing, err := h.DB.GetByID(r.Context(), ruleID)
	if err != nil {
		writeDomainError(w, err, "failed to get schedule rule for delete")
		return
	}
	if err := h.Relation.Authorize(r.Context(), callerID(r), existing.Schedule.SeniorID, relations.PermEditReminders); err != nil {
		writeDomainError(w, err, "failed to authorize schedule rule delete")
		return
	}

	if err := h.DB.Delete(r.Context(), ruleID); err != nil {
		writeDomainError(w, err, "failed to delete schedule rule")
		return
	}

	w.WriteHeader(http.StatusOK)
	response := map[string]string{"message": "Schedule rule deleted successfully"}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		writeDomainError(w, err, "failed to encode delete response")
		return
	}
}
