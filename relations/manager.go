package relations

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinkhq/carelink-api/databases"
	"github.com/carelinkhq/carelink-api/models"
)

// Permission names an action a caller may need on a senior's data
type Permission int

const (
	// PermViewHealthData allows reading health records
	PermViewHealthData Permission = iota
	// PermEditHealthData allows writing health records
	PermEditHealthData
	// PermViewReminders allows reading schedules, doses and adherence
	PermViewReminders
	// PermEditReminders allows creating and changing schedule rules and
	// recording dose outcomes
	PermEditReminders
	// PermApproveRequests allows acting on pending caregiver requests
	PermApproveRequests
)

// Manager owns the caregiver relation lifecycle: request, approve or reject,
// permission changes and removal, plus the permission checks the rest of the
// API gates on. A relation moves pending -> active or pending -> rejected and
// never backwards; a rejected pair may only re-request from scratch.
type Manager struct {
	Relations databases.CaregiverRelationDatabase
	Profiles  databases.SeniorProfileDatabase
}

// Request files a caregiver's request to care for a senior. The new relation
// starts pending with read-only default permissions. An existing active or
// pending relation for the pair is a conflict; a rejected one is discarded so
// the pair can try again.
func (m *Manager) Request(ctx context.Context, caregiverID, seniorID, label string) (*models.CaregiverRelation, error) {
	if caregiverID == "" || seniorID == "" {
		return nil, models.NewValidationError("caregiverID and seniorID are required")
	}
	if caregiverID == seniorID {
		return nil, models.NewValidationError("a senior cannot be their own caregiver")
	}

	if _, err := m.Profiles.GetByID(ctx, seniorID); err != nil {
		return nil, err
	}

	id := models.RelationID(caregiverID, seniorID)
	existing, err := m.Relations.GetByID(ctx, id)
	if err != nil && !models.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		switch existing.Relation.Status {
		case models.RelationStatusActive:
			return nil, models.NewConflictError("caregiver is already active for this senior")
		case models.RelationStatusPending:
			return nil, models.NewConflictError("a request for this senior is already pending")
		case models.RelationStatusRejected:
			// a fresh request supersedes the old rejection
			if err := m.Relations.Delete(ctx, id); err != nil {
				return nil, err
			}
		}
	}

	relation := &models.CaregiverRelation{
		ID: id,
		Relation: models.CaregiverRelationDetails{
			CaregiverID: caregiverID,
			SeniorID:    seniorID,
			Label:       label,
			Status:      models.RelationStatusPending,
			Permissions: models.DefaultPermissions(),
			RequestedAt: primitive.NewDateTimeFromTime(time.Now()),
		},
	}
	if err := m.Relations.Create(ctx, relation); err != nil {
		return nil, err
	}
	return relation, nil
}

// Approve activates a pending relation. Only the senior themselves, or an
// active caregiver holding the approve permission, may act.
func (m *Manager) Approve(ctx context.Context, relationID, callerID string) (*models.CaregiverRelation, error) {
	return m.settle(ctx, relationID, callerID, models.RelationStatusActive)
}

// Reject declines a pending relation under the same authorization rule as
// Approve. The rejected record stays behind as an audit trace until the pair
// re-requests.
func (m *Manager) Reject(ctx context.Context, relationID, callerID string) (*models.CaregiverRelation, error) {
	return m.settle(ctx, relationID, callerID, models.RelationStatusRejected)
}

func (m *Manager) settle(ctx context.Context, relationID, callerID, status string) (*models.CaregiverRelation, error) {
	relation, err := m.Relations.GetByID(ctx, relationID)
	if err != nil {
		return nil, err
	}
	if relation.Relation.Status != models.RelationStatusPending {
		return nil, models.NewConflictError("relation is not pending")
	}
	if err := m.Authorize(ctx, callerID, relation.Relation.SeniorID, PermApproveRequests); err != nil {
		return nil, err
	}
	if err := m.Relations.SetStatus(ctx, relationID, status, callerID, time.Now()); err != nil {
		return nil, err
	}
	return m.Relations.GetByID(ctx, relationID)
}

// UpdatePermissions replaces the permission flags on an active relation.
// Only the senior, or an active caregiver with the approve permission, may
// change what another caregiver is allowed to do.
func (m *Manager) UpdatePermissions(ctx context.Context, relationID, callerID string, flags models.PermissionFlags) (*models.CaregiverRelation, error) {
	relation, err := m.Relations.GetByID(ctx, relationID)
	if err != nil {
		return nil, err
	}
	if relation.Relation.Status != models.RelationStatusActive {
		return nil, models.NewConflictError("permissions can only be changed on an active relation")
	}
	if err := m.Authorize(ctx, callerID, relation.Relation.SeniorID, PermApproveRequests); err != nil {
		return nil, err
	}
	if err := m.Relations.UpdatePermissions(ctx, relationID, flags); err != nil {
		return nil, err
	}
	return m.Relations.GetByID(ctx, relationID)
}

// Remove deletes a relation. Either side of the pair may sever it at any time;
// nobody else can.
func (m *Manager) Remove(ctx context.Context, relationID, callerID string) error {
	relation, err := m.Relations.GetByID(ctx, relationID)
	if err != nil {
		return err
	}
	if callerID != relation.Relation.SeniorID && callerID != relation.Relation.CaregiverID {
		return models.NewPermissionDeniedError("only the senior or the caregiver may remove this relation")
	}
	return m.Relations.Delete(ctx, relationID)
}

// ListForSenior returns all relations attached to a senior. Only the senior or
// one of their active caregivers may look.
func (m *Manager) ListForSenior(ctx context.Context, seniorID, callerID string) ([]models.CaregiverRelation, error) {
	if callerID != seniorID {
		if _, err := m.activeRelation(ctx, callerID, seniorID); err != nil {
			return nil, err
		}
	}
	return m.Relations.FindBySeniorID(ctx, seniorID)
}

// ListForCaregiver returns the caller's own relations across all seniors
func (m *Manager) ListForCaregiver(ctx context.Context, caregiverID, callerID string) ([]models.CaregiverRelation, error) {
	if callerID != caregiverID {
		return nil, models.NewPermissionDeniedError("caregivers may only list their own relations")
	}
	return m.Relations.FindByCaregiverID(ctx, caregiverID)
}

// Authorize checks that callerID may perform perm against seniorID's data.
// The senior always passes on their own data. Anyone else needs an active
// relation whose flags grant the permission; a pending or rejected relation
// grants nothing.
func (m *Manager) Authorize(ctx context.Context, callerID, seniorID string, perm Permission) error {
	if callerID == "" {
		return models.NewPermissionDeniedError("caller identity is required")
	}
	if callerID == seniorID {
		return nil
	}

	relation, err := m.activeRelation(ctx, callerID, seniorID)
	if err != nil {
		return err
	}

	flags := relation.Relation.Permissions
	var allowed bool
	switch perm {
	case PermViewHealthData:
		allowed = flags.CanViewHealthData
	case PermEditHealthData:
		allowed = flags.CanEditHealthData
	case PermViewReminders:
		allowed = flags.CanViewReminders
	case PermEditReminders:
		allowed = flags.CanEditReminders
	case PermApproveRequests:
		allowed = flags.CanApproveRequests
	}
	if !allowed {
		return models.NewPermissionDeniedError("caregiver lacks the required permission")
	}
	return nil
}

func (m *Manager) activeRelation(ctx context.Context, caregiverID, seniorID string) (*models.CaregiverRelation, error) {
	relation, err := m.Relations.GetByID(ctx, models.RelationID(caregiverID, seniorID))
	if models.IsNotFound(err) {
		return nil, models.NewPermissionDeniedError("no caregiver relation with this senior")
	}
	if err != nil {
		return nil, err
	}
	if relation.Relation.Status != models.RelationStatusActive {
		return nil, models.NewPermissionDeniedError("caregiver relation is not active")
	}
	return relation, nil
}
