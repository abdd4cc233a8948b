package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/carelinkhq/carelink-api/databases"
	"github.com/carelinkhq/carelink-api/models"
	"github.com/carelinkhq/carelink-api/notify"
	"github.com/carelinkhq/carelink-api/reminders"
	templates "github.com/carelinkhq/carelink-api/templates/html"
)

// Scheduler runs the periodic reminder sweeps: a per-minute pass that emits
// dose-due signals for doses reaching their scheduled instant, and a daily
// pass that alerts on low medication stock. Each sweep takes a mongo-backed
// distributed lock so only one instance runs it.
type Scheduler struct {
	cron       *cron.Cron
	Rules      databases.ScheduleRuleDatabase
	Profiles   databases.SeniorProfileDatabase
	Users      databases.UserDatabase
	LockDB     databases.SchedulerLockDatabase
	Doses      *reminders.Materializer
	Notifier   notify.Notifier
	instanceID string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	rules databases.ScheduleRuleDatabase,
	profiles databases.SeniorProfileDatabase,
	users databases.UserDatabase,
	lockDB databases.SchedulerLockDatabase,
	doses *reminders.Materializer,
	notifier notify.Notifier,
) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		Rules:      rules,
		Profiles:   profiles,
		Users:      users,
		LockDB:     lockDB,
		Doses:      doses,
		Notifier:   notifier,
		instanceID: instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Emit dose-due signals every minute
	_, err := s.cron.AddFunc("* * * * *", s.sweepDueDoses)
	if err != nil {
		zap.S().Errorw("failed to register dose-due job", "error", err)
	}

	// Check medication stock levels daily at 8 AM UTC
	_, err = s.cron.AddFunc("0 8 * * *", s.sweepLowStock)
	if err != nil {
		zap.S().Errorw("failed to register low-stock job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Reminder scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Reminder scheduler stopped")
}

// sweepDueDoses emits a dose-due signal for every pending dose whose scheduled
// instant fell inside the last minute.
func (s *Scheduler) sweepDueDoses() {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Second)
	defer cancel()

	acquired, err := s.LockDB.TryAcquireLock(ctx, "dose_due_job", s.instanceID, 1*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for dose-due job", "error", err)
		return
	}
	if !acquired {
		return
	}
	defer s.LockDB.ReleaseLock(ctx, "dose_due_job", s.instanceID)

	end := time.Now().Truncate(time.Minute)
	start := end.Add(-1 * time.Minute)

	seniorIDs, err := s.Profiles.ListIDs(ctx)
	if err != nil {
		zap.S().Errorw("failed to list seniors for dose-due sweep", "error", err)
		return
	}

	emitted := 0
	for _, seniorID := range seniorIDs {
		profile, err := s.Profiles.GetByID(ctx, seniorID)
		if err != nil {
			zap.S().Errorw("failed to load senior profile in sweep", "seniorID", seniorID, "error", err)
			continue
		}

		// pass start as "now" so nothing in the window is counted missed yet
		instances, err := s.Doses.Materialize(ctx, seniorID, start, end, start, profile.Profile.Location())
		if err != nil {
			zap.S().Errorw("failed to materialize doses in sweep", "seniorID", seniorID, "error", err)
			continue
		}

		for _, inst := range instances {
			if inst.Status != models.DoseStatusPending {
				continue
			}
			s.Notifier.DoseDue(ctx, notify.DoseDueSignal{
				SeniorID:    inst.SeniorID,
				RuleID:      inst.RuleID,
				DrugName:    inst.DrugName,
				Slot:        inst.Slot,
				ScheduledAt: inst.ScheduledAt,
				At:          end,
			})
			emitted++
		}
	}

	if emitted > 0 {
		zap.S().Infow("Dose-due sweep complete", "instance", s.instanceID, "signalsEmitted", emitted)
	}
}

// sweepLowStock finds active rules at or below their stock threshold and
// alerts the senior by push signal and email.
func (s *Scheduler) sweepLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	acquired, err := s.LockDB.TryAcquireLock(ctx, "low_stock_job", s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for low-stock job", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Low-stock job already running on another instance, skipping")
		return
	}
	defer s.LockDB.ReleaseLock(ctx, "low_stock_job", s.instanceID)

	zap.S().Infow("Running low-stock sweep", "instance", s.instanceID)

	rules, err := s.Rules.FindLowStock(ctx)
	if err != nil {
		zap.S().Errorw("failed to find low-stock rules", "error", err)
		return
	}

	now := time.Now()
	for _, rule := range rules {
		s.Notifier.LowStock(ctx, notify.LowStockSignal{
			SeniorID:     rule.Schedule.SeniorID,
			RuleID:       rule.ID.Hex(),
			DrugName:     rule.Schedule.DrugName,
			CurrentStock: rule.Schedule.CurrentStock,
			Threshold:    rule.Schedule.LowStockThreshold,
			At:           now,
		})
		s.sendLowStockEmail(ctx, rule)
	}

	zap.S().Infow("Low-stock sweep complete", "rulesFlagged", len(rules))
}

// --- Email Helper Functions ---

func (s *Scheduler) sendEmail(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("CareLink", "no-reply@carelinkhq.com")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}

func (s *Scheduler) sendLowStockEmail(ctx context.Context, rule models.ScheduleRule) {
	seniorName := rule.Schedule.SeniorID
	if profile, err := s.Profiles.GetByID(ctx, rule.Schedule.SeniorID); err == nil {
		seniorName = profile.Profile.Name
	}

	user, err := s.Users.GetByID(ctx, rule.Schedule.SeniorID)
	if err != nil || user.Details.Email == "" {
		return
	}

	subject := "Medication Running Low - CareLink"
	htmlContent := templates.RenderLowStockEmail(seniorName, rule.Schedule.DrugName, rule.Schedule.CurrentStock, rule.Schedule.LowStockThreshold)
	plainText := fmt.Sprintf("%s has %d dose(s) of %s left. Please arrange a refill.",
		seniorName, rule.Schedule.CurrentStock, rule.Schedule.DrugName)

	if err := s.sendEmail(user.Details.Email, seniorName, subject, htmlContent, plainText); err != nil {
		zap.S().Errorw("failed to send low-stock email", "error", err, "ruleID", rule.ID.Hex())
	}
}
