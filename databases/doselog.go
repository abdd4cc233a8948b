package databases

// go generate: mockery --name DoseLogDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinkhq/carelink-api/models"
)

const doseLogCollectionName = "dose_logs"

// DoseLogDatabase contains the methods to use with the dose log database
type DoseLogDatabase interface {
	GetByID(ctx context.Context, id string) (*models.DoseLog, error)
	FindBySeniorWindow(ctx context.Context, seniorID string, start, end time.Time) ([]models.DoseLog, error)
	FindBySeniorID(ctx context.Context, seniorID string, limit, page int64) (*models.DoseLogListResponse, error)
	MarkOutcome(ctx context.Context, log *models.DoseLog) (bool, error)
}

type doseLogDatabase struct {
	db DatabaseHelper
}

// NewDoseLogDatabase initializes a new instance of dose log database with the provided db connection
func NewDoseLogDatabase(db DatabaseHelper) DoseLogDatabase {
	return &doseLogDatabase{
		db: db,
	}
}

func (d *doseLogDatabase) GetByID(ctx context.Context, id string) (*models.DoseLog, error) {
	log := &models.DoseLog{}
	err := d.db.Collection(doseLogCollectionName).FindOne(ctx, bson.M{"_id": id}).Decode(log)
	if err == mongo.ErrNoDocuments {
		return nil, models.NewNotFoundError("dose log", id)
	}
	if err != nil {
		return nil, err
	}
	return log, nil
}

func (d *doseLogDatabase) FindBySeniorWindow(ctx context.Context, seniorID string, start, end time.Time) ([]models.DoseLog, error) {
	filter := bson.M{
		"log.seniorID": seniorID,
		"log.scheduledAt": bson.M{
			"$gte": primitive.NewDateTimeFromTime(start),
			"$lt":  primitive.NewDateTimeFromTime(end),
		},
	}
	cursor, err := d.db.Collection(doseLogCollectionName).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []models.DoseLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (d *doseLogDatabase) FindBySeniorID(ctx context.Context, seniorID string, limit, page int64) (*models.DoseLogListResponse, error) {
	filter := bson.M{"log.seniorID": seniorID}

	opts := newMongoPaginate(limit, page).getPaginatedOpts().SetSort(bson.M{"log.scheduledAt": -1})

	cursor, err := d.db.Collection(doseLogCollectionName).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []models.DoseLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}

	totalCount, err := d.db.Collection(doseLogCollectionName).CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int64(0)
	if limit > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}

	return &models.DoseLogListResponse{
		Logs: logs,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalRecords: totalCount,
			Limit:        limit,
		},
	}, nil
}

// MarkOutcome records a terminal dosing outcome for the log's (rule, instant)
// key. The update only matches a log that has not already reached a terminal
// status, and upserts when no log exists yet (the user acted before any
// materialization query). A duplicate-key failure on the upsert means a
// terminal log already exists under the same natural key; that is reported as
// applied=false, the idempotent no-op success path.
func (d *doseLogDatabase) MarkOutcome(ctx context.Context, log *models.DoseLog) (bool, error) {
	now := primitive.NewDateTimeFromTime(time.Now())

	filter := bson.M{
		"_id":        log.ID,
		"log.status": bson.M{"$nin": bson.A{models.DoseStatusTaken, models.DoseStatusSkipped}},
	}
	set := bson.M{
		"log.status":    log.Log.Status,
		"log.note":      log.Log.Note,
		"log.updatedAt": now,
	}
	if log.Log.TakenAt != nil {
		set["log.takenAt"] = *log.Log.TakenAt
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"log.ruleID":      log.Log.RuleID,
			"log.seniorID":    log.Log.SeniorID,
			"log.scheduledAt": log.Log.ScheduledAt,
			"log.createdAt":   now,
			"__v":             int32(0),
		},
	}

	res, err := d.db.Collection(doseLogCollectionName).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.ModifiedCount > 0 || res.UpsertedCount > 0, nil
}
