package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/carelinkhq/carelink-api/models"
	"github.com/carelinkhq/carelink-api/relations"
)

// Relation represents the caregiver relation handler
type Relation struct {
	Manager *relations.Manager
}

type relationRequest struct {
	CaregiverID string `json:"caregiverID"`
	SeniorID    string `json:"seniorID"`
	Label       string `json:"label,omitempty"`
}

// CreateRelationHandler handles POST requests for a caregiver to request a
// relation with a senior.
func (h Relation) CreateRelationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req relationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	// a caregiver may only file requests as themselves
	if caller := callerID(r); caller != "" && caller != req.CaregiverID {
		http.Error(w, "caller_id must match caregiverID", http.StatusForbidden)
		return
	}

	relation, err := h.Manager.Request(r.Context(), req.CaregiverID, req.SeniorID, req.Label)
	if err != nil {
		writeDomainError(w, err, "failed to create caregiver relation")
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(relation); err != nil {
		writeDomainError(w, err, "failed to encode relation response")
		return
	}
}

// ApproveRelationHandler handles PUT requests to approve a pending relation
func (h Relation) ApproveRelationHandler(w http.ResponseWriter, r *http.Request) {
	h.settleRelation(w, r, true)
}

// RejectRelationHandler handles PUT requests to reject a pending relation
func (h Relation) RejectRelationHandler(w http.ResponseWriter, r *http.Request) {
	h.settleRelation(w, r, false)
}

func (h Relation) settleRelation(w http.ResponseWriter, r *http.Request, approve bool) {
	w.Header().Set("Content-Type", "application/json")

	relationID := mux.Vars(r)["relation_id"]
	if relationID == "" {
		http.Error(w, "relation_id is required", http.StatusBadRequest)
		return
	}

	var relation *models.CaregiverRelation
	var err error
	if approve {
		relation, err = h.Manager.Approve(r.Context(), relationID, callerID(r))
	} else {
		relation, err = h.Manager.Reject(r.Context(), relationID, callerID(r))
	}
	if err != nil {
		writeDomainError(w, err, "failed to settle caregiver relation")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(relation); err != nil {
		writeDomainError(w, err, "failed to encode relation response")
		return
	}
}

// UpdateRelationPermissionsHandler handles PUT requests to replace a
// relation's permission flags.
func (h Relation) UpdateRelationPermissionsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	relationID := mux.Vars(r)["relation_id"]
	if relationID == "" {
		http.Error(w, "relation_id is required", http.StatusBadRequest)
		return
	}

	var flags models.PermissionFlags
	if err := json.NewDecoder(r.Body).Decode(&flags); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	relation, err := h.Manager.UpdatePermissions(r.Context(), relationID, callerID(r), flags)
	if err != nil {
		writeDomainError(w, err, "failed to update relation permissions")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(relation); err != nil {
		writeDomainError(w, err, "failed to encode relation response")
		return
	}
}

// DeleteRelationHandler handles DELETE requests to remove a relation
func (h Relation) DeleteRelationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	relationID := mux.Vars(r)["relation_id"]
	if relationID == "" {
		http.Error(w, "relation_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Manager.Remove(r.Context(), relationID, callerID(r)); err != nil {
		writeDomainError(w, err, "failed to remove caregiver relation")
		return
	}

	w.WriteHeader(http.StatusOK)
	response := map[string]string{"message": "Relation removed successfully"}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		writeDomainError(w, err, "failed to encode delete response")
		return
	}
}

// RelationsBySeniorIDHandler handles GET requests for a senior's relations
func (h Relation) RelationsBySeniorIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	seniorID := mux.Vars(r)["senior_id"]
	if seniorID == "" {
		http.Error(w, "senior_id is required", http.StatusBadRequest)
		return
	}

	list, err := h.Manager.ListForSenior(r.Context(), seniorID, callerID(r))
	if err != nil {
		writeDomainError(w, err, "failed to list senior relations")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(list); err != nil {
		writeDomainError(w, err, "failed to encode relations response")
		return
	}
}

// RelationsByCaregiverIDHandler handles GET requests for a caregiver's own relations
func (h Relation) RelationsByCaregiverIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caregiverID := mux.Vars(r)["caregiver_id"]
	if caregiverID == "" {
		http.Error(w, "caregiver_id is required", http.StatusBadRequest)
		return
	}

	list, err := h.Manager.ListForCaregiver(r.Context(), caregiverID, callerID(r))
	if err != nil {
		writeDomainError(w, err, "failed to list caregiver relations")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(list); err != nil {
		writeDomainError(w, err, "failed to encode relations response")
		return
	}
}
