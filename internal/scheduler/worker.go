package scheduler

import (
	"context"
	"fmt"

	"bizzybot_backend/internal/email"
	"bizzybot_backend/platform/config"
	"bizzybot_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// ContactCacheWarmer recomputes a customer's contact snapshot.
type ContactCacheWarmer interface {
	WarmContactCache(ctx context.Context, customerID uuid.UUID) error
}

// WorkerConfig combines the config interfaces the worker needs.
type WorkerConfig interface {
	config.SchedulerConfig
	config.AlertConfig
}

type Worker struct {
	server         *asynq.Server
	mux            *asynq.ServeMux
	warmer         ContactCacheWarmer
	sender         email.Sender
	alertRecipient string
	log            *logger.Logger
}

func NewWorker(cfg WorkerConfig, warmer ContactCacheWarmer, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:         server,
		mux:            mux,
		warmer:         warmer,
		sender:         sender,
		alertRecipient: cfg.GetAlertRecipient(),
		log:            log,
	}

	mux.HandleFunc(TaskHotLeadAlert, w.handleHotLeadAlert)
	mux.HandleFunc(TaskScoreRefresh, w.handleScoreRefresh)

	return w, nil
}

func (w *Worker) handleHotLeadAlert(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseHotLeadAlertPayload(task)
	if err != nil {
		return err
	}

	if w.sender == nil || w.alertRecipient == "" {
		w.log.Warn("hot lead alert dropped, no alert delivery configured", "lead_id", payload.LeadID)
		return nil
	}

	err = w.sender.SendHotLeadAlert(ctx, w.alertRecipient, email.HotLeadAlert{
		LeadID:    payload.LeadID,
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Score:     payload.Score,
		Reasoning: payload.Reasoning,
		Source:    payload.Source,
	})
	if err != nil {
		return err
	}

	w.log.Info("hot lead alert sent", "lead_id", payload.LeadID, "score", payload.Score, "source", payload.Source)
	return nil
}

func (w *Worker) handleScoreRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseScoreRefreshPayload(task)
	if err != nil {
		return err
	}

	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		return err
	}

	if w.warmer == nil {
		return nil
	}
	return w.warmer.WarmContactCache(ctx, customerID)
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
