package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Relation statuses
const (
	RelationStatusPending  = "pending"
	RelationStatusActive   = "active"
	RelationStatusRejected = "rejected"
)

// PermissionFlags is the flattened permission bag attached to a caregiver
// relation. Flags are independently toggleable once the relation is active.
type PermissionFlags struct {
	CanViewHealthData  bool `json:"canViewHealthData" bson:"canViewHealthData"`
	CanEditHealthData  bool `json:"canEditHealthData" bson:"canEditHealthData"`
	CanViewReminders   bool `json:"canViewReminders" bson:"canViewReminders"`
	CanEditReminders   bool `json:"canEditReminders" bson:"canEditReminders"`
	CanApproveRequests bool `json:"canApproveRequests" bson:"canApproveRequests"`
}

// DefaultPermissions returns the permission set granted to a freshly requested
// relation: read-only access to health data and reminders.
func DefaultPermissions() PermissionFlags {
	return PermissionFlags{
		CanViewHealthData: true,
		CanViewReminders:  true,
	}
}

// CaregiverRelation holds the structure for the caregiver_relations collection
// in mongo. The document id is the concatenation of the caregiver and senior
// ids, so at most one relation can ever exist per pair.
type CaregiverRelation struct {
	ID       string                   `json:"_id" bson:"_id"`
	Relation CaregiverRelationDetails `json:"relation" bson:"relation"`
	Version  int32                    `json:"__v" bson:"__v"`
}

// CaregiverRelationDetails holds the inner structure for a caregiver relation
type CaregiverRelationDetails struct {
	CaregiverID string              `json:"caregiverID" bson:"caregiverID"`
	SeniorID    string              `json:"seniorID" bson:"seniorID"`
	Label       string              `json:"label" bson:"label"` // e.g. "daughter", "home nurse"
	Status      string              `json:"status" bson:"status"`
	Permissions PermissionFlags     `json:"permissions" bson:"permissions"`
	RequestedAt primitive.DateTime  `json:"requestedAt" bson:"requestedAt"`
	ApprovedAt  *primitive.DateTime `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	ApprovedBy  string              `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	RejectedAt  *primitive.DateTime `json:"rejectedAt,omitempty" bson:"rejectedAt,omitempty"`
	RejectedBy  string              `json:"rejectedBy,omitempty" bson:"rejectedBy,omitempty"`
}

// RelationID builds the deterministic relation id for a (caregiver, senior) pair
func RelationID(caregiverID, seniorID string) string {
	return caregiverID + seniorID
}
