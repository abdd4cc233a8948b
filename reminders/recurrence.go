package reminders

import (
	"fmt"
	"time"

	"github.com/carelinkhq/carelink-api/models"
)

// SlotsOn returns the time-of-day slots the rule fires on for the given civil
// date, or nil when the rule does not apply. It is a pure function of the rule
// and the date; re-evaluating at a different wall-clock time gives the same
// answer. The date's own location decides which civil day is meant.
func SlotsOn(rule *models.ScheduleRule, date time.Time) ([]string, error) {
	if rule.Schedule.Status == models.RuleStatusPaused {
		return nil, nil
	}

	day := civilDate(date)
	start, err := time.Parse(models.CivilDateLayout, rule.Schedule.StartDate)
	if err != nil {
		return nil, models.NewValidationError(fmt.Sprintf("invalid startDate %q", rule.Schedule.StartDate))
	}
	if day.Before(start) {
		return nil, nil
	}
	if rule.Schedule.EndDate != "" {
		end, err := time.Parse(models.CivilDateLayout, rule.Schedule.EndDate)
		if err != nil {
			return nil, models.NewValidationError(fmt.Sprintf("invalid endDate %q", rule.Schedule.EndDate))
		}
		if day.After(end) {
			return nil, nil
		}
	}

	switch rule.Schedule.Frequency {
	case models.FrequencyDaily:
		return rule.Schedule.TimeSlots, nil
	case models.FrequencySpecificWeekdays:
		wd := isoWeekday(day)
		for _, want := range rule.Schedule.SpecificWeekdays {
			if wd == want {
				return rule.Schedule.TimeSlots, nil
			}
		}
		return nil, nil
	case models.FrequencyIntervalDays:
		if rule.Schedule.IntervalDays < 1 {
			return nil, models.NewValidationError("intervalDays must be >= 1")
		}
		d := daysBetween(start, day)
		if d%rule.Schedule.IntervalDays == 0 {
			return rule.Schedule.TimeSlots, nil
		}
		return nil, nil
	default:
		// a new frequency kind was added without teaching the evaluator about it
		return nil, fmt.Errorf("unhandled frequency kind %q", rule.Schedule.Frequency)
	}
}

// ScheduledInstant combines a civil date with an "HH:MM" slot in the senior's
// timezone, yielding the exact instant the dose is due.
func ScheduledInstant(date time.Time, slot string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(models.TimeSlotLayout, slot)
	if err != nil {
		return time.Time{}, models.NewValidationError(fmt.Sprintf("invalid time slot %q", slot))
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
}

// civilDate strips the time-of-day and zone from an instant, keeping only the
// calendar date it falls on in its own location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// isoWeekday maps time.Weekday to ISO numbering, 1=Mon .. 7=Sun
func isoWeekday(day time.Time) int {
	wd := int(day.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// daysBetween counts whole calendar days from a to b; a itself is day 0.
// Both inputs must already be civil dates at UTC midnight, which keeps the
// arithmetic immune to DST offsets.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
