package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/carelinkhq/carelink-api/adherence"
	"github.com/carelinkhq/carelink-api/api"
	"github.com/carelinkhq/carelink-api/api/scheduler"
	"github.com/carelinkhq/carelink-api/config"
	"github.com/carelinkhq/carelink-api/databases"
	"github.com/carelinkhq/carelink-api/models"
	"github.com/carelinkhq/carelink-api/notify"
	"github.com/carelinkhq/carelink-api/relations"
	"github.com/carelinkhq/carelink-api/reminders"
)

// App stores the router, db connection and background scheduler, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Hub       *notify.Hub
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	ruleDB := databases.NewScheduleRuleDatabase(a.dbHelper)
	logDB := databases.NewDoseLogDatabase(a.dbHelper)
	relationDB := databases.NewCaregiverRelationDatabase(a.dbHelper)
	profileDB := databases.NewSeniorProfileDatabase(a.dbHelper)
	recordDB := databases.NewHealthRecordDatabase(a.dbHelper)
	tokenDB := databases.NewPushTokenDatabase(a.dbHelper)
	userDB := databases.NewUserDatabase(a.dbHelper)
	lockDB := databases.NewSchedulerLockDatabase(a.dbHelper)

	a.Hub = notify.NewHub()
	dispatcher := &notify.Dispatcher{Tokens: tokenDB, Relations: relationDB, Hub: a.Hub}
	materializer := &reminders.Materializer{Rules: ruleDB, Logs: logDB}
	tracker := &adherence.Tracker{Rules: ruleDB, Logs: logDB, Doses: materializer, Notifier: dispatcher}
	manager := &relations.Manager{Relations: relationDB, Profiles: profileDB}

	a.Scheduler = scheduler.NewScheduler(ruleDB, profileDB, userDB, lockDB, materializer, dispatcher)

	rule := ScheduleRule{DB: ruleDB, Relation: manager}
	doses := Doses{Materializer: materializer, Logs: logDB, Profiles: profileDB, Relation: manager}
	adh := Adherence{Tracker: tracker, Rules: ruleDB, Profiles: profileDB, Relation: manager}
	relation := Relation{Manager: manager}
	record := HealthRecord{DB: recordDB, Relation: manager}
	token := PushToken{DB: tokenDB}
	profile := SeniorProfile{DB: profileDB, Relation: manager}
	auth := Auth{UDB: userDB}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	// live signal stream for dashboards; kept off the timeout middleware
	// because the connection is long-lived
	r.HandleFunc("/ws/signals", a.Hub.HandleSignalsWebSocket)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/auth/login", http.HandlerFunc(auth.LoginHandler)).Methods("POST")

	apiCreate.Handle("/schedule-rule", api.Middleware(http.HandlerFunc(rule.CreateScheduleRuleHandler))).Methods("POST")
	apiCreate.Handle("/schedule-rule/{rule_id}", api.Middleware(http.HandlerFunc(rule.ScheduleRuleByIDHandler))).Methods("GET")
	apiCreate.Handle("/schedule-rule/{rule_id}", api.Middleware(http.HandlerFunc(rule.UpdateScheduleRuleHandler))).Methods("PUT")
	apiCreate.Handle("/schedule-rule/{rule_id}", api.Middleware(http.HandlerFunc(rule.DeleteScheduleRuleHandler))).Methods("DELETE")
	apiCreate.Handle("/schedule-rule/{rule_id}/status", api.Middleware(http.HandlerFunc(rule.SetScheduleRuleStatusHandler))).Methods("PUT")
	apiCreate.Handle("/schedule-rules/senior/{senior_id}", api.Middleware(http.HandlerFunc(rule.ScheduleRulesBySeniorIDHandler))).Methods("GET")

	apiCreate.Handle("/doses/senior/{senior_id}", api.Middleware(http.HandlerFunc(doses.DoseWindowHandler))).Methods("GET")
	apiCreate.Handle("/doses/senior/{senior_id}/batches", api.Middleware(http.HandlerFunc(doses.DoseBatchesHandler))).Methods("GET")
	apiCreate.Handle("/doses/senior/{senior_id}/overdue", api.Middleware(http.HandlerFunc(adh.OverdueDosesHandler))).Methods("GET")
	apiCreate.Handle("/doses/take", api.Middleware(http.HandlerFunc(adh.RecordTakenHandler))).Methods("POST")
	apiCreate.Handle("/doses/skip", api.Middleware(http.HandlerFunc(adh.RecordSkippedHandler))).Methods("POST")
	apiCreate.Handle("/doses/confirm-batch", api.Middleware(http.HandlerFunc(adh.ConfirmBatchHandler))).Methods("POST")
	apiCreate.Handle("/dose-logs/senior/{senior_id}", api.Middleware(http.HandlerFunc(doses.DoseLogHistoryHandler))).Methods("GET")

	apiCreate.Handle("/adherence/senior/{senior_id}/today", api.Middleware(http.HandlerFunc(adh.TodayStatisticsHandler))).Methods("GET")

	apiCreate.Handle("/relation", api.Middleware(http.HandlerFunc(relation.CreateRelationHandler))).Methods("POST")
	apiCreate.Handle("/relation/{relation_id}/approve", api.Middleware(http.HandlerFunc(relation.ApproveRelationHandler))).Methods("PUT")
	apiCreate.Handle("/relation/{relation_id}/reject", api.Middleware(http.HandlerFunc(relation.RejectRelationHandler))).Methods("PUT")
	apiCreate.Handle("/relation/{relation_id}/permissions", api.Middleware(http.HandlerFunc(relation.UpdateRelationPermissionsHandler))).Methods("PUT")
	apiCreate.Handle("/relation/{relation_id}", api.Middleware(http.HandlerFunc(relation.DeleteRelationHandler))).Methods("DELETE")
	apiCreate.Handle("/relations/senior/{senior_id}", api.Middleware(http.HandlerFunc(relation.RelationsBySeniorIDHandler))).Methods("GET")
	apiCreate.Handle("/relations/caregiver/{caregiver_id}", api.Middleware(http.HandlerFunc(relation.RelationsByCaregiverIDHandler))).Methods("GET")

	apiCreate.Handle("/health-record", api.Middleware(http.HandlerFunc(record.CreateHealthRecordHandler))).Methods("POST")
	apiCreate.Handle("/health-records/senior/{senior_id}", api.Middleware(http.HandlerFunc(record.HealthRecordsBySeniorIDHandler))).Methods("GET")

	apiCreate.Handle("/senior/{senior_id}", api.Middleware(http.HandlerFunc(profile.SeniorProfileByIDHandler))).Methods("GET")

	apiCreate.Handle("/push-token", api.Middleware(http.HandlerFunc(token.RegisterPushTokenHandler))).Methods("POST")
	apiCreate.Handle("/push-token/{token}", api.Middleware(http.HandlerFunc(token.DeletePushTokenHandler))).Methods("DELETE")

	// swagger docs hosted at "/"
	r.PathPrefix("/").Handler(http.StripPrefix("/", http.FileServer(http.Dir("./docs/"))))
	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("carelink-api has connected to the database")

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
