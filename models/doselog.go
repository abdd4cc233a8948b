package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dose outcome statuses. Missed is derived from time comparison and is never
// stored; a persisted log only ever carries pending, taken or skipped.
const (
	DoseStatusPending = "pending"
	DoseStatusTaken   = "taken"
	DoseStatusMissed  = "missed"
	DoseStatusSkipped = "skipped"
)

// DoseLog holds the structure for the dose_logs collection in mongo.
// The document id is the (ruleID, scheduledAt) natural key, which makes
// duplicate materialization of the same dose instant impossible.
type DoseLog struct {
	ID      string         `json:"_id" bson:"_id"`
	Log     DoseLogDetails `json:"log" bson:"log"`
	Version int32          `json:"__v" bson:"__v"`
}

// DoseLogDetails holds the inner structure for a dose log
type DoseLogDetails struct {
	RuleID      string              `json:"ruleID" bson:"ruleID"`
	SeniorID    string              `json:"seniorID" bson:"seniorID"`
	ScheduledAt primitive.DateTime  `json:"scheduledAt" bson:"scheduledAt"`
	TakenAt     *primitive.DateTime `json:"takenAt,omitempty" bson:"takenAt,omitempty"`
	Status      string              `json:"status" bson:"status"`
	Note        string              `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt   primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime  `json:"updatedAt" bson:"updatedAt"`
}

// DoseLogID builds the deterministic document id for a (rule, scheduled instant)
// pair. Instants are normalized to UTC so the same instant always maps to the
// same id regardless of the zone it was computed in.
func DoseLogID(ruleID string, scheduledAt time.Time) string {
	return ruleID + ":" + scheduledAt.UTC().Format(time.RFC3339)
}

// ParseDoseLogID splits a dose log id back into its rule id and scheduled
// instant. Rule ids are hex object ids and never contain a colon, so the first
// colon always separates the two parts.
func ParseDoseLogID(id string) (ruleID string, scheduledAt time.Time, err error) {
	parts := strings.SplitN(id, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", time.Time{}, NewValidationError("malformed dose log id " + id)
	}
	scheduledAt, err = time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return "", time.Time{}, NewValidationError("malformed dose log id " + id)
	}
	return parts[0], scheduledAt, nil
}

// IsTerminal reports whether the log has reached a state that must never be
// overwritten by re-materialization or repeated confirmation.
func (d *DoseLogDetails) IsTerminal() bool {
	return d.Status == DoseStatusTaken || d.Status == DoseStatusSkipped
}
