package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/carelinkhq/carelink-api/databases"
	"github.com/carelinkhq/carelink-api/models"
)

// Dispatcher resolves a signal's recipients (the senior plus every active
// caregiver allowed to view reminders) and delivers over Expo push and the
// websocket hub. It is the default Notifier wired into the tracker and the
// background sweeps.
type Dispatcher struct {
	Tokens    databases.PushTokenDatabase
	Relations databases.CaregiverRelationDatabase
	Hub       *Hub
}

// LowStock delivers a low-stock signal to the senior and their caregivers
func (d *Dispatcher) LowStock(ctx context.Context, sig LowStockSignal) {
	recipients := d.recipients(ctx, sig.SeniorID)
	title := "Medication running low"
	body := fmt.Sprintf("%s has %d dose(s) left", sig.DrugName, sig.CurrentStock)

	d.deliver(ctx, recipients, "low_stock", title, body, sig)
}

// DoseDue delivers a dose-due signal to the senior and their caregivers
func (d *Dispatcher) DoseDue(ctx context.Context, sig DoseDueSignal) {
	recipients := d.recipients(ctx, sig.SeniorID)
	title := "Time to take medicine"
	body := fmt.Sprintf("%s is due at %s", sig.DrugName, sig.Slot)

	d.deliver(ctx, recipients, "dose_due", title, body, sig)
}

func (d *Dispatcher) recipients(ctx context.Context, seniorID string) []string {
	recipients := []string{seniorID}

	relations, err := d.Relations.FindBySeniorID(ctx, seniorID)
	if err != nil {
		zap.S().Errorw("failed to resolve signal recipients", "seniorID", seniorID, "error", err)
		return recipients
	}
	for _, rel := range relations {
		if rel.Relation.Status == models.RelationStatusActive && rel.Relation.Permissions.CanViewReminders {
			recipients = append(recipients, rel.Relation.CaregiverID)
		}
	}
	return recipients
}

func (d *Dispatcher) deliver(ctx context.Context, recipients []string, event, title, body string, payload interface{}) {
	if d.Hub != nil {
		for _, userID := range recipients {
			d.Hub.SendToUser(userID, event, payload)
		}
	}

	if d.Tokens == nil {
		return
	}
	tokens, err := d.Tokens.FindByUserIDs(ctx, recipients)
	if err != nil {
		zap.S().Errorw("failed to load push tokens", "event", event, "error", err)
		return
	}
	values := make([]string, 0, len(tokens))
	for _, t := range tokens {
		values = append(values, t.Token)
	}
	data := map[string]interface{}{"event": event}
	if err := SendExpoPushNotifications(values, title, body, data); err != nil {
		zap.S().Errorw("failed to send push notifications", "event", event, "error", err)
	}
}
