package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/carelinkhq/carelink-api/databases"
	"github.com/carelinkhq/carelink-api/models"
	"github.com/carelinkhq/carelink-api/relations"
	"github.com/carelinkhq/carelink-api/reminders"
)

// Doses represents the materialized dose view handler
type Doses struct {
	Materializer *reminders.Materializer
	Logs         databases.DoseLogDatabase
	Profiles     databases.SeniorProfileDatabase
	Relation     *relations.Manager
}

func (h Doses) seniorLocation(r *http.Request, seniorID string) (*time.Location, error) {
	profile, err := h.Profiles.GetByID(r.Context(), seniorID)
	if err != nil {
		return nil, err
	}
	return profile.Profile.Location(), nil
}

// DoseWindowHandler handles GET requests for a senior's doses over a window.
// start/end default to today's civil date in the senior's timezone.
func (h Doses) DoseWindowHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	seniorID := mux.Vars(r)["senior_id"]
	if seniorID == "" {
		http.Error(w, "senior_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Relation.Authorize(r.Context(), callerID(r), seniorID, relations.PermViewReminders); err != nil {
		writeDomainError(w, err, "failed to authorize dose window read")
		return
	}

	loc, err := h.seniorLocation(r, seniorID)
	if err != nil {
		writeDomainError(w, err, "failed to resolve senior timezone")
		return
	}

	now := time.Now()
	y, m, d := now.In(loc).Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)

	start, err := parseTimeParam(r, "start", dayStart)
	if err != nil {
		writeDomainError(w, err, "invalid start")
		return
	}
	end, err := parseTimeParam(r, "end", dayStart.AddDate(0, 0, 1))
	if err != nil {
		writeDomainError(w, err, "invalid end")
		return
	}
	if !start.Before(end) {
		http.Error(w, "start must be before end", http.StatusBadRequest)
		return
	}

	doses, err := h.Materializer.Materialize(r.Context(), seniorID, start, end, now, loc)
	if err != nil {
		writeDomainError(w, err, "failed to materialize dose window")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(models.DoseWindowResponse{
		SeniorID: seniorID,
		Start:    start,
		End:      end,
		Doses:    doses,
		Total:    len(doses),
	}); err != nil {
		writeDomainError(w, err, "failed to encode dose window response")
		return
	}
}

// DoseBatchesHandler handles GET requests for the confirmation batches due
// around the current time.
func (h Doses) DoseBatchesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	seniorID := mux.Vars(r)["senior_id"]
	if seniorID == "" {
		http.Error(w, "senior_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Relation.Authorize(r.Context(), callerID(r), seniorID, relations.PermViewReminders); err != nil {
		writeDomainError(w, err, "failed to authorize dose batch read")
		return
	}

	loc, err := h.seniorLocation(r, seniorID)
	if err != nil {
		writeDomainError(w, err, "failed to resolve senior timezone")
		return
	}

	now := time.Now()
	window := reminders.DefaultBatchWindow
	doses, err := h.Materializer.Materialize(r.Context(), seniorID, now.Add(-window), now.Add(window), now, loc)
	if err != nil {
		writeDomainError(w, err, "failed to materialize dose batches")
		return
	}

	batches := reminders.GroupForConfirmation(doses, now, window)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(batches); err != nil {
		writeDomainError(w, err, "failed to encode dose batches response")
		return
	}
}

// DoseLogHistoryHandler handles GET requests for a senior's persisted dose
// log history, newest first.
func (h Doses) DoseLogHistoryHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	seniorID := mux.Vars(r)["senior_id"]
	if seniorID == "" {
		http.Error(w, "senior_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Relation.Authorize(r.Context(), callerID(r), seniorID, relations.PermViewReminders); err != nil {
		writeDomainError(w, err, "failed to authorize dose history read")
		return
	}

	limit, page := parsePaging(r)
	response, err := h.Logs.FindBySeniorID(r.Context(), seniorID, limit, page)
	if err != nil {
		writeDomainError(w, err, "failed to get dose log history")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		writeDomainError(w, err, "failed to encode dose history response")
		return
	}
}
