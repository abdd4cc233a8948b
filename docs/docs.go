// Package docs CareLink API.
//
// Documentation of the CareLink medication reminder API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//
// swagger:meta
package docs

import (
	"github.com/carelinkhq/carelink-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /api/v1/schedule-rule/{rule_id} schedule-rule scheduleRuleByID
// Gets a single schedule rule by ID.
// responses:
//   200: scheduleRuleByIDResponse

// Shows a single schedule rule by the given {rule_id}
// swagger:response scheduleRuleByIDResponse
type scheduleRuleByIDResponseWrapper struct {
	// in:body
	Body models.ScheduleRule
}

// swagger:route GET /api/v1/doses/senior/{senior_id} doses doseWindowBySeniorID
// Gets the materialized dose instances for a senior over a window.
// responses:
//   200: doseWindowResponse

// Shows the dose instances for the given {senior_id} over the requested window
// swagger:response doseWindowResponse
type doseWindowResponseWrapper struct {
	// in:body
	Body models.DoseWindowResponse
}

// swagger:route GET /api/v1/adherence/senior/{senior_id}/today adherence todayStatisticsBySeniorID
// Gets today's adherence summary for a senior.
// responses:
//   200: todayStatisticsResponse

// Shows today's dose counts and adherence rate for the given {senior_id}
// swagger:response todayStatisticsResponse
type todayStatisticsResponseWrapper struct {
	// in:body
	Body models.TodayStatistics
}

// swagger:route GET /api/v1/relations/senior/{senior_id} relations relationsBySeniorID
// Gets the caregiver relations attached to a senior.
// responses:
//   200: relationsResponse

// Shows the caregiver relations for the given {senior_id}
// swagger:response relationsResponse
type relationsResponseWrapper struct {
	// in:body
	Body []models.CaregiverRelation
}
