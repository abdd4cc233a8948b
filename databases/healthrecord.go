package databases

// go generate: mockery --name HealthRecordDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinkhq/carelink-api/models"
)

const healthRecordCollectionName = "health_records"

// HealthRecordDatabase contains the methods to use with the health record database
type HealthRecordDatabase interface {
	FindBySeniorID(ctx context.Context, seniorID string, limit, page int64) (*models.HealthRecordListResponse, error)
	Create(ctx context.Context, record *models.HealthRecord) error
}

type healthRecordDatabase struct {
	db DatabaseHelper
}

// NewHealthRecordDatabase initializes a new instance of health record database with the provided db connection
func NewHealthRecordDatabase(db DatabaseHelper) HealthRecordDatabase {
	return &healthRecordDatabase{
		db: db,
	}
}

func (h *healthRecordDatabase) FindBySeniorID(ctx context.Context, seniorID string, limit, page int64) (*models.HealthRecordListResponse, error) {
	filter := bson.M{"record.seniorID": seniorID}

	opts := newMongoPaginate(limit, page).getPaginatedOpts().SetSort(bson.M{"record.recordedAt": -1})

	cursor, err := h.db.Collection(healthRecordCollectionName).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.HealthRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	totalCount, err := h.db.Collection(healthRecordCollectionName).CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int64(0)
	if limit > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}

	return &models.HealthRecordListResponse{
		Records: records,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalRecords: totalCount,
			Limit:        limit,
		},
	}, nil
}

func (h *healthRecordDatabase) Create(ctx context.Context, record *models.HealthRecord) error {
	if record.Record.SeniorID == "" {
		return models.NewValidationError("seniorID is required")
	}
	if record.Record.Kind == "" {
		return models.NewValidationError("kind is required")
	}

	record.Record.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}

	_, err := h.db.Collection(healthRecordCollectionName).InsertOne(ctx, record)
	return err
}
