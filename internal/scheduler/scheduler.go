package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"MoneyWise/internal/ledger"
	"MoneyWise/internal/model"
	"MoneyWise/internal/notifier"
	"MoneyWise/internal/recorder"
)

// Sender delivers a message, retrying on failure.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks and answers bot commands.
type Scheduler struct {
	Cron     *cron.Cron
	Guard    *ledger.Guard
	Notifier Sender
	Recorder recorder.Recorder
	Log      zerolog.Logger
	Ctx      context.Context
	Now      func() time.Time
}

// NewScheduler creates a new Scheduler. n may be nil, in which case messages are only logged.
func NewScheduler(ctx context.Context, g *ledger.Guard, n Sender, rec recorder.Recorder, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Guard:    g,
		Notifier: n,
		Recorder: rec,
		Log:      log,
		Ctx:      ctx,
		Now:      time.Now,
	}
}

// RegisterAll registers the weekly digest and the daily budget check.
func (s *Scheduler) RegisterAll(weeklyCron, dailyCron string) error {
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyCheck); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info().Msg("scheduler stopped")
}

// RunWeeklyNow executes the weekly task immediately.
func (s *Scheduler) RunWeeklyNow() {
	s.weeklyTask()
}

func (s *Scheduler) weeklyDigest() (string, error) {
	var msg string
	err := s.Guard.Do(func(a *ledger.Assistant) error {
		fc, err := a.PredictNextWeek()
		if err != nil {
			return err
		}
		msg = notifier.FormatWeeklyDigest(s.Now(), a.SpendingAnalysis(), fc, a.SavingsRecommendations())
		return nil
	})
	return msg, err
}

func (s *Scheduler) weeklyTask() {
	s.Log.Info().Msg("running weekly task")
	msg, err := s.weeklyDigest()
	if err != nil {
		s.Log.Error().Err(err).Msg("weekly digest")
		s.trySend(fmt.Sprintf("❌ Échec du bilan hebdomadaire: %v", err))
		return
	}
	s.trySend(msg)
}

// dailyCheck pushes the current alerts and stores them in the recorder.
func (s *Scheduler) dailyCheck() {
	s.Log.Info().Msg("running daily check")
	var alerts []model.Alert
	s.Guard.Do(func(a *ledger.Assistant) error {
		alerts = a.SpendingAnalysis().Alerts
		return nil
	})
	if len(alerts) == 0 {
		return
	}

	for _, al := range alerts {
		if err := s.Recorder.RecordAlert(&recorder.AlertEvent{
			Type:     string(al.Type),
			Category: string(al.Category),
			Spent:    al.Spent,
			Budget:   al.Budget,
			Message:  al.Message,
		}); err != nil {
			s.Log.Error().Err(err).Msg("record alert")
		}
	}
	s.trySend(notifier.FormatAlerts(alerts))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	var reply string
	err := s.Guard.Do(func(a *ledger.Assistant) error {
		switch strings.ToLower(command) {
		case "/analyse":
			reply = notifier.FormatAnalysis(a.SpendingAnalysis())
		case "/prevision":
			fc, err := a.PredictNextWeek()
			if err != nil {
				return err
			}
			reply = notifier.FormatForecast(fc)
		case "/conseils":
			reply = notifier.FormatRecommendations(a.SavingsRecommendations())
		case "/solde":
			reply = notifier.FormatBalance(a.Balance(), len(a.Transactions()))
		case "/historique":
			runs, err := s.Recorder.RecentTrainingRuns(5)
			if err != nil {
				return err
			}
			reply = formatTrainingRuns(runs)
		default:
			reply = "Commandes disponibles:\n• /analyse\n• /prevision\n• /conseils\n• /solde\n• /historique"
		}
		return nil
	})
	if err != nil {
		s.Log.Error().Err(err).Str("command", command).Msg("handle command")
		return fmt.Sprintf("❌ Erreur: %v", err)
	}
	return reply
}

func formatTrainingRuns(runs []model.TrainingRun) string {
	if len(runs) == 0 {
		return "Aucun entraînement enregistré."
	}
	var b strings.Builder
	b.WriteString("🧠 <b>Derniers entraînements</b>\n")
	for _, r := range runs {
		if !r.Trained() {
			b.WriteString(fmt.Sprintf("  %s: ignoré (%s, %d transactions)\n",
				r.StartedAt.Format("2006-01-02 15:04"), r.Skipped, r.Transactions))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: perte %.4f → %.4f (%d exemples)\n",
			r.StartedAt.Format("2006-01-02 15:04"), r.InitialLoss, r.FinalLoss, r.Samples))
	}
	return b.String()
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		s.Log.Info().Str("message", text).Msg("notification (telegram disabled)")
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Log.Error().Err(err).Msg("send notification")
	}
}
