package databases

// go generate: mockery --name CaregiverRelationDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carelinkhq/carelink-api/models"
)

const caregiverRelationCollectionName = "caregiver_relations"

// CaregiverRelationDatabase contains the methods to use with the caregiver relation database
type CaregiverRelationDatabase interface {
	GetByID(ctx context.Context, id string) (*models.CaregiverRelation, error)
	FindBySeniorID(ctx context.Context, seniorID string) ([]models.CaregiverRelation, error)
	FindByCaregiverID(ctx context.Context, caregiverID string) ([]models.CaregiverRelation, error)
	Create(ctx context.Context, relation *models.CaregiverRelation) error
	SetStatus(ctx context.Context, id, status, actorID string, at time.Time) error
	UpdatePermissions(ctx context.Context, id string, flags models.PermissionFlags) error
	Delete(ctx context.Context, id string) error
}

type caregiverRelationDatabase struct {
	db DatabaseHelper
}

// NewCaregiverRelationDatabase initializes a new instance of caregiver relation database with the provided db connection
func NewCaregiverRelationDatabase(db DatabaseHelper) CaregiverRelationDatabase {
	return &caregiverRelationDatabase{
		db: db,
	}
}

func (c *caregiverRelationDatabase) GetByID(ctx context.Context, id string) (*models.CaregiverRelation, error) {
	relation := &models.CaregiverRelation{}
	err := c.db.Collection(caregiverRelationCollectionName).FindOne(ctx, bson.M{"_id": id}).Decode(relation)
	if err == mongo.ErrNoDocuments {
		return nil, models.NewNotFoundError("caregiver relation", id)
	}
	if err != nil {
		return nil, err
	}
	return relation, nil
}

func (c *caregiverRelationDatabase) FindBySeniorID(ctx context.Context, seniorID string) ([]models.CaregiverRelation, error) {
	return c.find(ctx, bson.M{"relation.seniorID": seniorID})
}

func (c *caregiverRelationDatabase) FindByCaregiverID(ctx context.Context, caregiverID string) ([]models.CaregiverRelation, error) {
	return c.find(ctx, bson.M{"relation.caregiverID": caregiverID})
}

func (c *caregiverRelationDatabase) find(ctx context.Context, filter bson.M) ([]models.CaregiverRelation, error) {
	cursor, err := c.db.Collection(caregiverRelationCollectionName).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var relations []models.CaregiverRelation
	if err := cursor.All(ctx, &relations); err != nil {
		return nil, err
	}
	return relations, nil
}

func (c *caregiverRelationDatabase) Create(ctx context.Context, relation *models.CaregiverRelation) error {
	_, err := c.db.Collection(caregiverRelationCollectionName).InsertOne(ctx, relation)
	if mongo.IsDuplicateKeyError(err) {
		return models.NewConflictError("relation already exists for this caregiver and senior")
	}
	return err
}

func (c *caregiverRelationDatabase) SetStatus(ctx context.Context, id, status, actorID string, at time.Time) error {
	stamp := primitive.NewDateTimeFromTime(at)
	set := bson.M{"relation.status": status}

	switch status {
	case models.RelationStatusActive:
		set["relation.approvedAt"] = stamp
		set["relation.approvedBy"] = actorID
	case models.RelationStatusRejected:
		set["relation.rejectedAt"] = stamp
		set["relation.rejectedBy"] = actorID
	default:
		return models.NewValidationError("unknown relation status " + status)
	}

	res, err := c.db.Collection(caregiverRelationCollectionName).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("caregiver relation", id)
	}
	return nil
}

func (c *caregiverRelationDatabase) UpdatePermissions(ctx context.Context, id string, flags models.PermissionFlags) error {
	res, err := c.db.Collection(caregiverRelationCollectionName).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"relation.permissions": flags}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("caregiver relation", id)
	}
	return nil
}

func (c *caregiverRelationDatabase) Delete(ctx context.Context, id string) error {
	return c.db.Collection(caregiverRelationCollectionName).DeleteOne(ctx, bson.M{"_id": id})
}
