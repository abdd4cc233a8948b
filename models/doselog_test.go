package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinkhq/carelink-api/models"
)

func TestDoseLogID_RoundTrip(t *testing.T) {
	ruleID := primitive.NewObjectID().Hex()
	scheduledAt := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)

	id := models.DoseLogID(ruleID, scheduledAt)

	gotRule, gotAt, err := models.ParseDoseLogID(id)
	assert.NoError(t, err)
	assert.Equal(t, ruleID, gotRule)
	assert.True(t, scheduledAt.Equal(gotAt))
}

func TestDoseLogID_NormalizesToUTC(t *testing.T) {
	ruleID := primitive.NewObjectID().Hex()
	loc := time.FixedZone("UTC+8", 8*3600)
	local := time.Date(2025, 3, 5, 16, 0, 0, 0, loc)

	// the same instant expressed in two zones maps to the same id
	assert.Equal(t, models.DoseLogID(ruleID, local), models.DoseLogID(ruleID, local.UTC()))
}

func TestParseDoseLogID_Malformed(t *testing.T) {
	for _, id := range []string{
		"",
		"no-colon-here",
		":2025-03-05T08:00:00Z",
		"abc123:yesterday",
	} {
		_, _, err := models.ParseDoseLogID(id)
		assert.Error(t, err, "id %q", id)
		assert.True(t, models.IsValidation(err))
	}
}

func TestDoseLogDetails_IsTerminal(t *testing.T) {
	tests := []struct {
		status   string
		terminal bool
	}{
		{models.DoseStatusPending, false},
		{models.DoseStatusMissed, false},
		{models.DoseStatusTaken, true},
		{models.DoseStatusSkipped, true},
	}
	for _, tt := range tests {
		d := models.DoseLogDetails{Status: tt.status}
		assert.Equal(t, tt.terminal, d.IsTerminal(), "status %s", tt.status)
	}
}
