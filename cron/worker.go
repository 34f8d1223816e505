package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fieldops/config"
	proposalRepo "fieldops/database/repository/proposal"
	"fieldops/models"
	"fieldops/services/notification"

	"github.com/hibiken/asynq"
)

const (
	// TypeProposalReminder nudges a reviewer about one stale pending proposal.
	TypeProposalReminder = "proposal:reminder"
	// TypeProposalSweep scans for pending proposals past the reminder age.
	TypeProposalSweep = "proposal:sweep"
)

// reminderPayload carries the proposal a reminder task is about.
type reminderPayload struct {
	Proposal models.ScheduleProposal `json:"proposal"`
}

// InitProposalReminderWorker runs the async worker in background. A periodic
// sweep enqueues one reminder task per pending proposal older than the
// configured age; reminder tasks hand the proposal to the notification
// boundary. Delivery beyond that boundary is external.
func InitProposalReminderWorker(repo proposalRepo.ProposalRepository, notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	client := asynq.NewClient(redisOpts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeProposalSweep, handleSweepTask(repo, client))
	mux.HandleFunc(TypeProposalReminder, handleReminderTask(notifSvc))

	go enqueueSweeps(client)

	go func() {
		log.Println("[ProposalReminder] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ProposalReminder] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ProposalReminder] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// enqueueSweeps schedules a sweep task on the configured interval.
func enqueueSweeps(client *asynq.Client) {
	every := time.Duration(config.AppConfig.ProposalReminderEveryMin) * time.Minute
	if every <= 0 {
		every = 30 * time.Minute
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		task := asynq.NewTask(TypeProposalSweep, nil)
		if _, err := client.Enqueue(task, asynq.MaxRetry(1)); err != nil {
			log.Printf("[ProposalReminder] failed to enqueue sweep: %v", err)
		}
	}
}

func handleSweepTask(repo proposalRepo.ProposalRepository, client *asynq.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		age := time.Duration(config.AppConfig.ProposalReminderAfterMin) * time.Minute
		if age <= 0 {
			age = 2 * time.Hour
		}
		cutoff := time.Now().Add(-age)

		stale, err := repo.ListPendingOlderThan(cutoff)
		if err != nil {
			log.Printf("[ProposalReminder] sweep failed to list pending proposals: %v", err)
			return err
		}

		for _, proposal := range stale {
			payload, err := json.Marshal(reminderPayload{Proposal: proposal})
			if err != nil {
				log.Printf("[ProposalReminder] failed to marshal reminder payload: %v", err)
				continue
			}
			reminder := asynq.NewTask(TypeProposalReminder, payload)
			if _, err := client.Enqueue(reminder, asynq.MaxRetry(3)); err != nil {
				log.Printf("[ProposalReminder] failed to enqueue reminder for %s: %v", proposal.ID, err)
			}
		}
		return nil
	}
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p reminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ProposalReminder] invalid payload: %v", err)
			return err
		}

		if err := notifSvc.ProposalPendingReminder(p.Proposal); err != nil {
			log.Printf("[ProposalReminder] failed to notify for proposal %s: %v", p.Proposal.ID, err)
			return err
		}
		return nil
	}
}
