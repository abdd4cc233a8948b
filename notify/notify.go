package notify

import (
	"context"
	"time"
)

// LowStockSignal is emitted when a confirmed dose drops a rule's stock to or
// below its alert threshold. Delivery (push, email) is the dispatcher's job;
// the engine only emits.
type LowStockSignal struct {
	SeniorID     string    `json:"seniorID"`
	RuleID       string    `json:"ruleID"`
	DrugName     string    `json:"drugName"`
	CurrentStock int       `json:"currentStock"`
	Threshold    int       `json:"threshold"`
	At           time.Time `json:"at"`
}

// DoseDueSignal is emitted when a pending dose reaches its scheduled instant
type DoseDueSignal struct {
	SeniorID    string    `json:"seniorID"`
	RuleID      string    `json:"ruleID"`
	DrugName    string    `json:"drugName"`
	Slot        string    `json:"slot"`
	ScheduledAt time.Time `json:"scheduledAt"`
	At          time.Time `json:"at"`
}

// Notifier receives engine signals. Implementations must be safe for
// concurrent use and must never block the write path for long; delivery
// failures are logged, not returned.
type Notifier interface {
	LowStock(ctx context.Context, sig LowStockSignal)
	DoseDue(ctx context.Context, sig DoseDueSignal)
}
