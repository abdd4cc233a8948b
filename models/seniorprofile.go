package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeniorProfile holds the structure for the senior_profiles collection in
// mongo. Profiles are owned by the external profile-management service; this
// service only reads them for display names, timezones and alert recipients.
type SeniorProfile struct {
	ID      string               `json:"_id" bson:"_id"`
	Profile SeniorProfileDetails `json:"profile" bson:"profile"`
	Version int32                `json:"__v" bson:"__v"`
}

// SeniorProfileDetails holds the inner structure for a senior profile
type SeniorProfileDetails struct {
	Name        string             `json:"name" bson:"name"`
	DateOfBirth string             `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Timezone    string             `json:"timezone" bson:"timezone"` // IANA name, e.g. "Asia/Shanghai"
	CreatedBy   string             `json:"createdBy" bson:"createdBy"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Location resolves the senior's IANA timezone, falling back to UTC when the
// profile carries none or an unknown name.
func (p *SeniorProfileDetails) Location() *time.Location {
	if p.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
