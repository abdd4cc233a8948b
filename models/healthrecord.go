package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HealthRecord holds the structure for the health_records collection in mongo
type HealthRecord struct {
	ID      primitive.ObjectID  `json:"_id" bson:"_id"`
	Record  HealthRecordDetails `json:"record" bson:"record"`
	Version int32               `json:"__v" bson:"__v"`
}

// HealthRecordDetails holds the inner structure for a health record
type HealthRecordDetails struct {
	SeniorID   string             `json:"seniorID" bson:"seniorID"`
	RecordedBy string             `json:"recordedBy" bson:"recordedBy"`
	Kind       string             `json:"kind" bson:"kind"` // e.g. "bloodPressure", "bloodSugar", "weight"
	Value      string             `json:"value" bson:"value"`
	Unit       string             `json:"unit,omitempty" bson:"unit,omitempty"`
	Note       string             `json:"note,omitempty" bson:"note,omitempty"`
	RecordedAt primitive.DateTime `json:"recordedAt" bson:"recordedAt"`
	CreatedAt  primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

// HealthRecordListResponse is the paginated health record response
type HealthRecordListResponse struct {
	Records    []HealthRecord `json:"records"`
	Pagination Pagination     `json:"pagination"`
}
