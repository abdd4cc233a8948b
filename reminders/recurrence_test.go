package reminders_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinkhq/carelink-api/models"
	"github.com/carelinkhq/carelink-api/reminders"
)

func newRule(mutate func(*models.ScheduleRuleDetails)) *models.ScheduleRule {
	rule := &models.ScheduleRule{
		ID: primitive.NewObjectID(),
		Schedule: models.ScheduleRuleDetails{
			SeniorID:  "senior-1",
			DrugName:  "Metformin",
			Frequency: models.FrequencyDaily,
			TimeSlots: []string{"08:00", "20:00"},
			StartDate: "2025-03-01",
			Status:    models.RuleStatusActive,
		},
	}
	if mutate != nil {
		mutate(&rule.Schedule)
	}
	return rule
}

func civilDay(t *testing.T, date string) time.Time {
	t.Helper()
	day, err := time.Parse(models.CivilDateLayout, date)
	assert.NoError(t, err)
	return day
}

func TestSlotsOn(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.ScheduleRuleDetails)
		date     string
		expected []string
	}{
		{
			name:     "daily rule fires every day",
			mutate:   nil,
			date:     "2025-03-05",
			expected: []string{"08:00", "20:00"},
		},
		{
			name: "paused rule never fires",
			mutate: func(d *models.ScheduleRuleDetails) {
				d.Status = models.RuleStatusPaused
			},
			date:     "2025-03-05",
			expected: nil,
		},
		{
			name:     "no doses before the start date",
			mutate:   nil,
			date:     "2025-02-28",
			expected: nil,
		},
		{
			name: "no doses after the end date",
			mutate: func(d *models.ScheduleRuleDetails) {
				d.EndDate = "2025-03-10"
			},
			date:     "2025-03-11",
			expected: nil,
		},
		{
			name: "end date itself is inclusive",
			mutate: func(d *models.ScheduleRuleDetails) {
				d.EndDate = "2025-03-10"
			},
			date:     "2025-03-10",
			expected: []string{"08:00", "20:00"},
		},
		{
			name: "specific weekdays fires on a listed day",
			mutate: func(d *models.ScheduleRuleDetails) {
				d.Frequency = models.FrequencySpecificWeekdays
				d.SpecificWeekdays = []int{1, 3} // Mon, Wed
			},
			date:     "2025-03-03", // a Monday
			expected: []string{"08:00", "20:00"},
		},
		{
			name: "specific weekdays skips an unlisted day",
			mutate: func(d *models.ScheduleRuleDetails) {
				d.Frequency = models.FrequencySpecificWeekdays
				d.SpecificWeekdays = []int{1, 3}
			},
			date:     "2025-03-04", // a Tuesday
			expected: nil,
		},
		{
			name: "specific weekdays maps sunday to 7",
			mutate: func(d *models.ScheduleRuleDetails) {
				d.Frequency = models.FrequencySpecificWeekdays
				d.SpecificWeekdays = []int{7}
			},
			date:     "2025-03-02", // a Sunday
			expected: []string{"08:00", "20:00"},
		},
		{
			name: "interval days fires on the start date",
			mutate: func(d *models.ScheduleRuleDetails) {
				d.Frequency = models.FrequencyIntervalDays
				d.IntervalDays = 3
			},
			date:     "2025-03-01",
			expected: []string{"08:00", "20:00"},
		},
		{
			name: "interval days fires every nth day",
			mutate: func(d *models.ScheduleRuleDetails) {
				d.Frequency = models.FrequencyIntervalDays
				d.IntervalDays = 3
			},
			date:     "2025-03-04",
			expected: []string{"08:00", "20:00"},
		},
		{
			name: "interval days skips off days",
			mutate: func(d *models.ScheduleRuleDetails) {
				d.Frequency = models.FrequencyIntervalDays
				d.IntervalDays = 3
			},
			date:     "2025-03-03",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := newRule(tt.mutate)
			slots, err := reminders.SlotsOn(rule, civilDay(t, tt.date))
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, slots)
		})
	}
}

func TestSlotsOn_UnknownFrequency(t *testing.T) {
	rule := newRule(func(d *models.ScheduleRuleDetails) {
		d.Frequency = "fortnightly"
	})
	slots, err := reminders.SlotsOn(rule, civilDay(t, "2025-03-05"))
	assert.Error(t, err)
	assert.Nil(t, slots)
}

func TestSlotsOn_Deterministic(t *testing.T) {
	rule := newRule(func(d *models.ScheduleRuleDetails) {
		d.Frequency = models.FrequencyIntervalDays
		d.IntervalDays = 2
	})
	day := civilDay(t, "2025-03-05")

	first, err := reminders.SlotsOn(rule, day)
	assert.NoError(t, err)
	second, err := reminders.SlotsOn(rule, day)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScheduledInstant(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	day := time.Date(2025, 3, 5, 0, 0, 0, 0, loc)

	instant, err := reminders.ScheduledInstant(day, "08:30", loc)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 5, 8, 30, 0, 0, loc), instant)

	// the same slot in a different zone is a different instant
	utcInstant, err := reminders.ScheduledInstant(day, "08:30", time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, 8*time.Hour, utcInstant.Sub(instant))
}

func TestScheduledInstant_InvalidSlot(t *testing.T) {
	day := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	_, err := reminders.ScheduledInstant(day, "8am", time.UTC)
	assert.Error(t, err)
	assert.True(t, models.IsValidation(err))
}
