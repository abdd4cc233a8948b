package databases

// go generate: mockery --name SeniorProfileDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carelinkhq/carelink-api/models"
)

const seniorProfileCollectionName = "senior_profiles"

// SeniorProfileDatabase contains the read-only methods for the senior profile
// collection. Profiles are written by the external profile-management service.
type SeniorProfileDatabase interface {
	GetByID(ctx context.Context, id string) (*models.SeniorProfile, error)
	ListIDs(ctx context.Context) ([]string, error)
}

type seniorProfileDatabase struct {
	db DatabaseHelper
}

// NewSeniorProfileDatabase initializes a new instance of senior profile database with the provided db connection
func NewSeniorProfileDatabase(db DatabaseHelper) SeniorProfileDatabase {
	return &seniorProfileDatabase{
		db: db,
	}
}

func (s *seniorProfileDatabase) GetByID(ctx context.Context, id string) (*models.SeniorProfile, error) {
	profile := &models.SeniorProfile{}
	err := s.db.Collection(seniorProfileCollectionName).FindOne(ctx, bson.M{"_id": id}).Decode(profile)
	if err == mongo.ErrNoDocuments {
		return nil, models.NewNotFoundError("senior profile", id)
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// ListIDs returns the ids of all senior profiles, used by the background
// dose-due sweep.
func (s *seniorProfileDatabase) ListIDs(ctx context.Context) ([]string, error) {
	cursor, err := s.db.Collection(seniorProfileCollectionName).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.SeniorProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	return ids, nil
}
