package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carelinkhq/carelink-api/databases/mocks"
	"github.com/carelinkhq/carelink-api/models"
	"github.com/carelinkhq/carelink-api/relations"
)

func TestCreateRelationHandler(t *testing.T) {
	relationsDB := mocks.NewCaregiverRelationDatabase(t)
	profilesDB := mocks.NewSeniorProfileDatabase(t)
	id := models.RelationID("caregiver-1", "senior-1")

	profilesDB.On("GetByID", mock.Anything, "senior-1").Return(&models.SeniorProfile{ID: "senior-1"}, nil)
	relationsDB.On("GetByID", mock.Anything, id).Return(nil, models.NewNotFoundError("caregiver relation", id))
	relationsDB.On("Create", mock.Anything, mock.AnythingOfType("*models.CaregiverRelation")).Return(nil)

	h := Relation{Manager: &relations.Manager{Relations: relationsDB, Profiles: profilesDB}}

	payload, _ := json.Marshal(map[string]string{
		"caregiverID": "caregiver-1",
		"seniorID":    "senior-1",
		"label":       "home nurse",
	})
	req := httptest.NewRequest("POST", "/api/v1/relation?caller_id=caregiver-1", bytes.NewReader(payload))
	rr := httptest.NewRecorder()

	h.CreateRelationHandler(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var relation models.CaregiverRelation
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &relation))
	assert.Equal(t, models.RelationStatusPending, relation.Relation.Status)
}

func TestCreateRelationHandler_CallerMismatch(t *testing.T) {
	h := Relation{Manager: &relations.Manager{}}

	payload, _ := json.Marshal(map[string]string{
		"caregiverID": "caregiver-1",
		"seniorID":    "senior-1",
	})
	req := httptest.NewRequest("POST", "/api/v1/relation?caller_id=impostor", bytes.NewReader(payload))
	rr := httptest.NewRecorder()

	h.CreateRelationHandler(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCreateRelationHandler_DuplicateConflicts(t *testing.T) {
	relationsDB := mocks.NewCaregiverRelationDatabase(t)
	profilesDB := mocks.NewSeniorProfileDatabase(t)
	id := models.RelationID("caregiver-1", "senior-1")

	profilesDB.On("GetByID", mock.Anything, "senior-1").Return(&models.SeniorProfile{ID: "senior-1"}, nil)
	relationsDB.On("GetByID", mock.Anything, id).Return(&models.CaregiverRelation{
		ID: id,
		Relation: models.CaregiverRelationDetails{
			CaregiverID: "caregiver-1",
			SeniorID:    "senior-1",
			Status:      models.RelationStatusPending,
		},
	}, nil)

	h := Relation{Manager: &relations.Manager{Relations: relationsDB, Profiles: profilesDB}}

	payload, _ := json.Marshal(map[string]string{
		"caregiverID": "caregiver-1",
		"seniorID":    "senior-1",
	})
	req := httptest.NewRequest("POST", "/api/v1/relation?caller_id=caregiver-1", bytes.NewReader(payload))
	rr := httptest.NewRecorder()

	h.CreateRelationHandler(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestApproveRelationHandler(t *testing.T) {
	relationsDB := mocks.NewCaregiverRelationDatabase(t)
	id := models.RelationID("caregiver-1", "senior-1")

	pending := &models.CaregiverRelation{
		ID: id,
		Relation: models.CaregiverRelationDetails{
			CaregiverID: "caregiver-1",
			SeniorID:    "senior-1",
			Status:      models.RelationStatusPending,
			Permissions: models.DefaultPermissions(),
		},
	}
	active := &models.CaregiverRelation{
		ID: id,
		Relation: models.CaregiverRelationDetails{
			CaregiverID: "caregiver-1",
			SeniorID:    "senior-1",
			Status:      models.RelationStatusActive,
			Permissions: models.DefaultPermissions(),
		},
	}

	relationsDB.On("GetByID", mock.Anything, id).Return(pending, nil).Once()
	relationsDB.On("SetStatus", mock.Anything, id, models.RelationStatusActive, "senior-1", mock.AnythingOfType("time.Time")).Return(nil)
	relationsDB.On("GetByID", mock.Anything, id).Return(active, nil).Once()

	h := Relation{Manager: &relations.Manager{Relations: relationsDB}}

	req := httptest.NewRequest("PUT", "/api/v1/relation/"+id+"/approve?caller_id=senior-1", nil)
	req = mux.SetURLVars(req, map[string]string{"relation_id": id})
	rr := httptest.NewRecorder()

	h.ApproveRelationHandler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var relation models.CaregiverRelation
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &relation))
	assert.Equal(t, models.RelationStatusActive, relation.Relation.Status)
}

func TestDeleteRelationHandler_StrangerForbidden(t *testing.T) {
	relationsDB := mocks.NewCaregiverRelationDatabase(t)
	id := models.RelationID("caregiver-1", "senior-1")
	relationsDB.On("GetByID", mock.Anything, id).Return(&models.CaregiverRelation{
		ID: id,
		Relation: models.CaregiverRelationDetails{
			CaregiverID: "caregiver-1",
			SeniorID:    "senior-1",
			Status:      models.RelationStatusActive,
		},
	}, nil)

	h := Relation{Manager: &relations.Manager{Relations: relationsDB}}

	req := httptest.NewRequest("DELETE", "/api/v1/relation/"+id+"?caller_id=stranger", nil)
	req = mux.SetURLVars(req, map[string]string{"relation_id": id})
	rr := httptest.NewRecorder()

	h.DeleteRelationHandler(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRelationsByCaregiverIDHandler_SelfOnly(t *testing.T) {
	relationsDB := mocks.NewCaregiverRelationDatabase(t)
	h := Relation{Manager: &relations.Manager{Relations: relationsDB}}

	req := httptest.NewRequest("GET", "/api/v1/relations/caregiver/caregiver-1?caller_id=other", nil)
	req = mux.SetURLVars(req, map[string]string{"caregiver_id": "caregiver-1"})
	rr := httptest.NewRecorder()

	h.RelationsByCaregiverIDHandler(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	relationsDB.On("FindByCaregiverID", mock.Anything, "caregiver-1").Return([]models.CaregiverRelation{}, nil)
	req = httptest.NewRequest("GET", "/api/v1/relations/caregiver/caregiver-1?caller_id=caregiver-1", nil)
	req = mux.SetURLVars(req, map[string]string{"caregiver_id": "caregiver-1"})
	rr = httptest.NewRecorder()

	h.RelationsByCaregiverIDHandler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
