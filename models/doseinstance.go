package models

import "time"

// DoseInstance is one concrete dose instant produced by materializing a
// schedule rule over a window, reconciled against the dose log. It is a
// derived view and is never stored.
type DoseInstance struct {
	LogID        string     `json:"logID"`
	RuleID       string     `json:"ruleID"`
	SeniorID     string     `json:"seniorID"`
	DrugName     string     `json:"drugName"`
	DoseQuantity float64    `json:"doseQuantity"`
	DoseUnit     string     `json:"doseUnit"`
	Instruction  string     `json:"instruction"`
	Slot         string     `json:"slot"` // "HH:MM"
	ScheduledAt  time.Time  `json:"scheduledAt"`
	Status       string     `json:"status"`
	TakenAt      *time.Time `json:"takenAt,omitempty"`
	Note         string     `json:"note,omitempty"`
}

// Batch is a group of same-slot pending doses presented for one-shot
// confirmation. Constituents are independently toggleable client-side; the
// confirm call carries only the checked log ids.
type Batch struct {
	Label       string         `json:"label"` // Morning / Midday / Afternoon / Evening
	Slot        string         `json:"slot"`
	ScheduledAt time.Time      `json:"scheduledAt"`
	Doses       []DoseInstance `json:"doses"`
}

// DoseWindowResponse is the API response for a materialized window
type DoseWindowResponse struct {
	SeniorID string         `json:"seniorID"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Doses    []DoseInstance `json:"doses"`
	Total    int            `json:"total"`
}

// TodayStatistics summarizes today's adherence for a senior. Pending doses are
// excluded from the adherence denominator because their outcome is unknown.
type TodayStatistics struct {
	Total         int     `json:"total"`
	Taken         int     `json:"taken"`
	Skipped       int     `json:"skipped"`
	Missed        int     `json:"missed"`
	Pending       int     `json:"pending"`
	AdherenceRate float64 `json:"adherenceRate"`
}

// Pagination holds paging info for list responses
type Pagination struct {
	CurrentPage  int64 `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	Limit        int64 `json:"limit"`
}

// DoseLogListResponse is the paginated dose-log history response
type DoseLogListResponse struct {
	Logs       []DoseLog  `json:"logs"`
	Pagination Pagination `json:"pagination"`
}
