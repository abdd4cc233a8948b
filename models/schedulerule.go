package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Frequency kinds for a schedule rule
const (
	FrequencyDaily            = "daily"
	FrequencySpecificWeekdays = "specificWeekdays"
	FrequencyIntervalDays     = "intervalDays"
)

// Lifecycle statuses for a schedule rule
const (
	RuleStatusActive = "active"
	RuleStatusPaused = "paused"
)

// Intake instructions
const (
	InstructionNone        = "none"
	InstructionBeforeMeal  = "beforeMeal"
	InstructionAfterMeal   = "afterMeal"
	InstructionWithFood    = "withFood"
	InstructionBeforeSleep = "beforeSleep"
)

// CivilDateLayout is the wire format for start/end dates
const CivilDateLayout = "2006-01-02"

// TimeSlotLayout is the wire format for time-of-day slots
const TimeSlotLayout = "15:04"

// ScheduleRule holds the structure for the schedule_rules collection in mongo
type ScheduleRule struct {
	ID       primitive.ObjectID  `json:"_id" bson:"_id"`
	Schedule ScheduleRuleDetails `json:"schedule" bson:"schedule"`
	Version  int32               `json:"__v" bson:"__v"`
}

// ScheduleRuleDetails holds the inner structure for a schedule rule
type ScheduleRuleDetails struct {
	SeniorID          string             `json:"seniorID" bson:"seniorID"`
	CreatedBy         string             `json:"createdBy" bson:"createdBy"`
	DrugName          string             `json:"drugName" bson:"drugName"`
	DoseQuantity      float64            `json:"doseQuantity" bson:"doseQuantity"`
	DoseUnit          string             `json:"doseUnit" bson:"doseUnit"`
	Instruction       string             `json:"instruction" bson:"instruction"`
	Frequency         string             `json:"frequency" bson:"frequency"`
	SpecificWeekdays  []int              `json:"specificWeekdays,omitempty" bson:"specificWeekdays,omitempty"` // 1=Mon .. 7=Sun
	IntervalDays      int                `json:"intervalDays,omitempty" bson:"intervalDays,omitempty"`
	TimeSlots         []string           `json:"timeSlots" bson:"timeSlots"` // "HH:MM", ascending
	StartDate         string             `json:"startDate" bson:"startDate"` // "YYYY-MM-DD"
	EndDate           string             `json:"endDate,omitempty" bson:"endDate,omitempty"`
	CurrentStock      int                `json:"currentStock" bson:"currentStock"`
	LowStockThreshold int                `json:"lowStockThreshold" bson:"lowStockThreshold"`
	EnableStockAlert  bool               `json:"enableStockAlert" bson:"enableStockAlert"`
	Status            string             `json:"status" bson:"status"`
	CreatedAt         primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt         primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Validate checks the schedule rule invariants. A rule that fails validation is
// rejected at write time and never persisted.
func (d *ScheduleRuleDetails) Validate() error {
	if d.SeniorID == "" {
		return NewValidationError("seniorID is required")
	}
	if d.DrugName == "" {
		return NewValidationError("drugName is required")
	}
	if len(d.TimeSlots) == 0 {
		return NewValidationError("at least one time slot is required")
	}
	for _, slot := range d.TimeSlots {
		if _, err := time.Parse(TimeSlotLayout, slot); err != nil {
			return NewValidationError(fmt.Sprintf("invalid time slot %q, want HH:MM", slot))
		}
	}
	start, err := time.Parse(CivilDateLayout, d.StartDate)
	if err != nil {
		return NewValidationError(fmt.Sprintf("invalid startDate %q, want YYYY-MM-DD", d.StartDate))
	}
	if d.EndDate != "" {
		end, err := time.Parse(CivilDateLayout, d.EndDate)
		if err != nil {
			return NewValidationError(fmt.Sprintf("invalid endDate %q, want YYYY-MM-DD", d.EndDate))
		}
		if end.Before(start) {
			return NewValidationError("endDate must not be before startDate")
		}
	}
	switch d.Frequency {
	case FrequencyDaily:
	case FrequencySpecificWeekdays:
		if len(d.SpecificWeekdays) == 0 {
			return NewValidationError("specificWeekdays requires at least one weekday")
		}
		for _, wd := range d.SpecificWeekdays {
			if wd < 1 || wd > 7 {
				return NewValidationError(fmt.Sprintf("weekday %d out of range 1..7", wd))
			}
		}
	case FrequencyIntervalDays:
		if d.IntervalDays < 1 {
			return NewValidationError("intervalDays must be >= 1")
		}
	default:
		return NewValidationError(fmt.Sprintf("unknown frequency %q", d.Frequency))
	}
	switch d.Status {
	case RuleStatusActive, RuleStatusPaused:
	default:
		return NewValidationError(fmt.Sprintf("unknown status %q", d.Status))
	}
	if d.CurrentStock < 0 {
		return NewValidationError("currentStock must not be negative")
	}
	if d.LowStockThreshold < 0 {
		return NewValidationError("lowStockThreshold must not be negative")
	}
	return nil
}
