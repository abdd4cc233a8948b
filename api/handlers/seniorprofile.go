package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/carelinkhq/carelink-api/databases"
	"github.com/carelinkhq/carelink-api/relations"
)

// SeniorProfile represents the senior profile handler
type SeniorProfile struct {
	DB       databases.SeniorProfileDatabase
	Relation *relations.Manager
}

// SeniorProfileByIDHandler handles GET requests for a senior's profile
func (h SeniorProfile) SeniorProfileByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	seniorID := mux.Vars(r)["senior_id"]
	if seniorID == "" {
		http.Error(w, "senior_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Relation.Authorize(r.Context(), callerID(r), seniorID, relations.PermViewHealthData); err != nil {
		writeDomainError(w, err, "failed to authorize senior profile read")
		return
	}

	profile, err := h.DB.GetByID(r.Context(), seniorID)
	if err != nil {
		writeDomainError(w, err, "failed to get senior profile")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(profile); err != nil {
		writeDomainError(w, err, "failed to encode senior profile response")
		return
	}
}
