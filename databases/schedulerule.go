package databases

// go generate: mockery --name ScheduleRuleDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinkhq/carelink-api/models"
)

const scheduleRuleCollectionName = "schedule_rules"

// ScheduleRuleDatabase contains the methods to use with the schedule rule database
type ScheduleRuleDatabase interface {
	GetByID(ctx context.Context, id string) (*models.ScheduleRule, error)
	FindBySeniorID(ctx context.Context, seniorID string) ([]models.ScheduleRule, error)
	FindLowStock(ctx context.Context) ([]models.ScheduleRule, error)
	Create(ctx context.Context, rule *models.ScheduleRule) error
	Update(ctx context.Context, id string, details models.ScheduleRuleDetails) error
	SetStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string) (*models.ScheduleRule, error)
}

type scheduleRuleDatabase struct {
	db DatabaseHelper
}

// NewScheduleRuleDatabase initializes a new instance of schedule rule database with the provided db connection
func NewScheduleRuleDatabase(db DatabaseHelper) ScheduleRuleDatabase {
	return &scheduleRuleDatabase{
		db: db,
	}
}

func (s *scheduleRuleDatabase) GetByID(ctx context.Context, id string) (*models.ScheduleRule, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewNotFoundError("schedule rule", id)
	}

	rule := &models.ScheduleRule{}
	err = s.db.Collection(scheduleRuleCollectionName).FindOne(ctx, bson.M{"_id": objectID}).Decode(rule)
	if err == mongo.ErrNoDocuments {
		return nil, models.NewNotFoundError("schedule rule", id)
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *scheduleRuleDatabase) FindBySeniorID(ctx context.Context, seniorID string) ([]models.ScheduleRule, error) {
	cursor, err := s.db.Collection(scheduleRuleCollectionName).Find(ctx, bson.M{"schedule.seniorID": seniorID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []models.ScheduleRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// FindLowStock returns active rules with stock alerts enabled whose stock has
// fallen to or below their threshold.
func (s *scheduleRuleDatabase) FindLowStock(ctx context.Context) ([]models.ScheduleRule, error) {
	filter := bson.M{
		"schedule.status":           models.RuleStatusActive,
		"schedule.enableStockAlert": true,
		"$expr":                     bson.M{"$lte": bson.A{"$schedule.currentStock", "$schedule.lowStockThreshold"}},
	}
	cursor, err := s.db.Collection(scheduleRuleCollectionName).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []models.ScheduleRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (s *scheduleRuleDatabase) Create(ctx context.Context, rule *models.ScheduleRule) error {
	if err := rule.Schedule.Validate(); err != nil {
		return err
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	rule.Schedule.CreatedAt = now
	rule.Schedule.UpdatedAt = now

	if rule.ID.IsZero() {
		rule.ID = primitive.NewObjectID()
	}

	_, err := s.db.Collection(scheduleRuleCollectionName).InsertOne(ctx, rule)
	return err
}

func (s *scheduleRuleDatabase) Update(ctx context.Context, id string, details models.ScheduleRuleDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewNotFoundError("schedule rule", id)
	}

	details.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	res, err := s.db.Collection(scheduleRuleCollectionName).UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"schedule": details}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("schedule rule", id)
	}
	return nil
}

func (s *scheduleRuleDatabase) SetStatus(ctx context.Context, id string, status string) error {
	if status != models.RuleStatusActive && status != models.RuleStatusPaused {
		return models.NewValidationError("unknown status " + status)
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewNotFoundError("schedule rule", id)
	}

	res, err := s.db.Collection(scheduleRuleCollectionName).UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"schedule.status":    status,
			"schedule.updatedAt": primitive.NewDateTimeFromTime(time.Now()),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("schedule rule", id)
	}
	return nil
}

// Delete removes the rule; existing dose logs are deliberately left in place so
// history is not rewritten.
func (s *scheduleRuleDatabase) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewNotFoundError("schedule rule", id)
	}
	return s.db.Collection(scheduleRuleCollectionName).DeleteOne(ctx, bson.M{"_id": objectID})
}

// DecrementStock atomically decrements the rule's stock counter by one, floored
// at zero. The decrement is a single server-side conditional update, so two
// racing confirmations can never both observe the same stock value and lose an
// update. When stock is already zero the rule is returned unchanged.
func (s *scheduleRuleDatabase) DecrementStock(ctx context.Context, id string) (*models.ScheduleRule, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewNotFoundError("schedule rule", id)
	}

	filter := bson.M{
		"_id":                   objectID,
		"schedule.currentStock": bson.M{"$gt": 0},
	}
	update := bson.M{
		"$inc": bson.M{"schedule.currentStock": -1},
		"$set": bson.M{"schedule.updatedAt": primitive.NewDateTimeFromTime(time.Now())},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	rule := &models.ScheduleRule{}
	err = s.db.Collection(scheduleRuleCollectionName).FindOneAndUpdate(ctx, filter, update, opts).Decode(rule)
	if err == mongo.ErrNoDocuments {
		// stock already at zero, or the rule is gone; fetch to tell the two apart
		return s.GetByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}
