package databases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carelinkhq/carelink-api/databases"
	"github.com/carelinkhq/carelink-api/databases/mocks"
	"github.com/carelinkhq/carelink-api/models"
)

func TestScheduleRuleDatabase_GetByID_BadHexIsNotFound(t *testing.T) {
	ruleDB := databases.NewScheduleRuleDatabase(&mocks.DatabaseHelper{})

	_, err := ruleDB.GetByID(context.Background(), "not-a-hex-id")
	assert.True(t, models.IsNotFound(err))
}

func TestScheduleRuleDatabase_GetByID(t *testing.T) {
	objectID := primitive.NewObjectID()

	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	srHelper.On("Decode", mock.AnythingOfType("*models.ScheduleRule")).
		Return(nil).
		Run(func(args mock.Arguments) {
			rule := args.Get(0).(*models.ScheduleRule)
			rule.ID = objectID
			rule.Schedule.DrugName = "Metformin"
		})

	collectionHelper.On("FindOne", mock.Anything, mock.Anything).Return(srHelper)
	dbHelper.On("Collection", "schedule_rules").Return(collectionHelper)

	ruleDB := databases.NewScheduleRuleDatabase(dbHelper)

	rule, err := ruleDB.GetByID(context.Background(), objectID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, objectID, rule.ID)
	assert.Equal(t, "Metformin", rule.Schedule.DrugName)
}

func TestScheduleRuleDatabase_Create_RejectsInvalidRule(t *testing.T) {
	// no collection expectations: an invalid rule must never reach mongo
	ruleDB := databases.NewScheduleRuleDatabase(&mocks.DatabaseHelper{})

	err := ruleDB.Create(context.Background(), &models.ScheduleRule{
		Schedule: models.ScheduleRuleDetails{SeniorID: "senior-1"},
	})
	assert.True(t, models.IsValidation(err))
}

func TestScheduleRuleDatabase_SetStatus_RejectsUnknownStatus(t *testing.T) {
	ruleDB := databases.NewScheduleRuleDatabase(&mocks.DatabaseHelper{})

	err := ruleDB.SetStatus(context.Background(), primitive.NewObjectID().Hex(), "archived")
	assert.True(t, models.IsValidation(err))
}

// The lost-update safety of DecrementStock lives in mongo itself: the filter
// carries a positive-stock guard and the $inc applies in the same
// single-document operation, so two racing confirmations can never both match.
// These tests pin that call shape; the concurrency itself is exercised in the
// adherence package.
func TestScheduleRuleDatabase_DecrementStock(t *testing.T) {
	objectID := primitive.NewObjectID()

	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	srHelper.On("Decode", mock.AnythingOfType("*models.ScheduleRule")).
		Return(nil).
		Run(func(args mock.Arguments) {
			rule := args.Get(0).(*models.ScheduleRule)
			rule.ID = objectID
			rule.Schedule.CurrentStock = 4
		})

	collectionHelper.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(srHelper).
		Run(func(args mock.Arguments) {
			filter := args.Get(1).(bson.M)
			assert.Equal(t, objectID, filter["_id"])
			assert.Equal(t, bson.M{"$gt": 0}, filter["schedule.currentStock"])

			update := args.Get(2).(bson.M)
			assert.Equal(t, bson.M{"schedule.currentStock": -1}, update["$inc"])
		})
	dbHelper.On("Collection", "schedule_rules").Return(collectionHelper)

	ruleDB := databases.NewScheduleRuleDatabase(dbHelper)

	rule, err := ruleDB.DecrementStock(context.Background(), objectID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, 4, rule.Schedule.CurrentStock)
}

func TestScheduleRuleDatabase_DecrementStock_FloorsAtZero(t *testing.T) {
	objectID := primitive.NewObjectID()

	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srNoMatch := &mocks.SingleResultHelper{}
	srFetch := &mocks.SingleResultHelper{}

	// the conditional update matches nothing at zero stock and the fallback
	// read returns the rule unchanged
	srNoMatch.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	srFetch.On("Decode", mock.AnythingOfType("*models.ScheduleRule")).
		Return(nil).
		Run(func(args mock.Arguments) {
			rule := args.Get(0).(*models.ScheduleRule)
			rule.ID = objectID
			rule.Schedule.CurrentStock = 0
		})

	collectionHelper.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(srNoMatch)
	collectionHelper.On("FindOne", mock.Anything, mock.Anything).Return(srFetch)
	dbHelper.On("Collection", "schedule_rules").Return(collectionHelper)

	ruleDB := databases.NewScheduleRuleDatabase(dbHelper)

	rule, err := ruleDB.DecrementStock(context.Background(), objectID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, 0, rule.Schedule.CurrentStock)
}
