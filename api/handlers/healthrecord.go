package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinkhq/carelink-api/databases"
	"github.com/carelinkhq/carelink-api/models"
	"github.com/carelinkhq/carelink-api/relations"
)

// HealthRecord represents the health record handler
type HealthRecord struct {
	DB       databases.HealthRecordDatabase
	Relation *relations.Manager
}

// CreateHealthRecordHandler handles POST requests to record a health measurement
func (h HealthRecord) CreateHealthRecordHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var record models.HealthRecord
	if err := json.Unmarshal(body, &record); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	caller := callerID(r)
	if err := h.Relation.Authorize(r.Context(), caller, record.Record.SeniorID, relations.PermEditHealthData); err != nil {
		writeDomainError(w, err, "failed to authorize health record creation")
		return
	}
	record.Record.RecordedBy = caller
	if record.Record.RecordedAt == 0 {
		record.Record.RecordedAt = primitive.NewDateTimeFromTime(time.Now())
	}

	if err := h.DB.Create(r.Context(), &record); err != nil {
		writeDomainError(w, err, "failed to create health record")
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(record); err != nil {
		writeDomainError(w, err, "failed to encode created health record response")
		return
	}
}

// HealthRecordsBySeniorIDHandler handles GET requests for a senior's health
// records, newest first.
func (h HealthRecord) HealthRecordsBySeniorIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	seniorID := mux.Vars(r)["senior_id"]
	if seniorID == "" {
		http.Error(w, "senior_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Relation.Authorize(r.Context(), callerID(r), seniorID, relations.PermViewHealthData); err != nil {
		writeDomainError(w, err, "failed to authorize health record read")
		return
	}

	limit, page := parsePaging(r)
	response, err := h.DB.FindBySeniorID(r.Context(), seniorID, limit, page)
	if err != nil {
		writeDomainError(w, err, "failed to list health records")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		writeDomainError(w, err, "failed to encode health records response")
		return
	}
}
