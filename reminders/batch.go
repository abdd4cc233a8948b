package reminders

import (
	"sort"
	"time"

	"github.com/carelinkhq/carelink-api/models"
)

// DefaultBatchWindow is the look-around window for confirmation batching:
// doses due within this distance of "now" are offered for confirmation.
const DefaultBatchWindow = 30 * time.Minute

// GroupForConfirmation clusters pending dose instances due near "now" into
// confirmation batches, one per time slot. Taken, skipped and missed doses
// never enter a batch; they belong to history views. Batches come back ordered
// by slot time, constituents by drug name with rule-id tiebreak.
func GroupForConfirmation(instances []models.DoseInstance, now time.Time, window time.Duration) []models.Batch {
	if window <= 0 {
		window = DefaultBatchWindow
	}

	bySlot := make(map[string][]models.DoseInstance)
	for _, inst := range instances {
		if inst.Status != models.DoseStatusPending {
			continue
		}
		delta := inst.ScheduledAt.Sub(now)
		if delta < -window || delta > window {
			continue
		}
		bySlot[inst.Slot] = append(bySlot[inst.Slot], inst)
	}

	batches := make([]models.Batch, 0, len(bySlot))
	for slot, doses := range bySlot {
		sort.Slice(doses, func(i, j int) bool {
			if doses[i].DrugName != doses[j].DrugName {
				return doses[i].DrugName < doses[j].DrugName
			}
			return doses[i].RuleID < doses[j].RuleID
		})

		earliest := doses[0].ScheduledAt
		for _, d := range doses[1:] {
			if d.ScheduledAt.Before(earliest) {
				earliest = d.ScheduledAt
			}
		}

		batches = append(batches, models.Batch{
			Label:       SlotLabel(earliest.Hour()),
			Slot:        slot,
			ScheduledAt: earliest,
			Doses:       doses,
		})
	}

	sort.Slice(batches, func(i, j int) bool {
		if !batches[i].ScheduledAt.Equal(batches[j].ScheduledAt) {
			return batches[i].ScheduledAt.Before(batches[j].ScheduledAt)
		}
		return batches[i].Slot < batches[j].Slot
	})
	return batches
}

// SlotLabel buckets an hour of day into the human label shown on a batch
func SlotLabel(hour int) string {
	switch {
	case hour >= 5 && hour < 11:
		return "Morning"
	case hour >= 11 && hour < 14:
		return "Midday"
	case hour >= 14 && hour < 18:
		return "Afternoon"
	default:
		return "Evening"
	}
}
