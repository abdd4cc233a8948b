package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the users collection in mongo. Users are the
// authentication principals; a senior account links to its senior profile,
// caregiver accounts link to seniors through caregiver relations.
type User struct {
	ID      string      `json:"_id" bson:"_id"`
	Details UserDetails `json:"user" bson:"user"`
	Version int32       `json:"__v" bson:"__v"`
}

// UserDetails holds the inner structure for a user
type UserDetails struct {
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password" bson:"password"` // bcrypt hash
	Name      string             `json:"name" bson:"name"`
	Role      string             `json:"role" bson:"role"` // "senior" or "caregiver"
	SeniorID  string             `json:"seniorID,omitempty" bson:"seniorID,omitempty"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
