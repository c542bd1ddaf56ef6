// FILE: internal/service/sync_worker_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/pkg/events"
	pktNats "fashion-chatbot-be/pkg/nats"
)

// ISyncWorkerService drains the sync job queue in the background.
type ISyncWorkerService interface {
	Consume(ctx context.Context) error
}

type syncWorkerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	syncService    ISyncService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewSyncWorkerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	syncService ISyncService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISyncWorkerService {
	return &syncWorkerService{
		pubSub:         pubSub,
		topicName:      topicName,
		syncService:    syncService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *syncWorkerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *syncWorkerService) processMessage(ctx context.Context, msg *message.Message) {
	// Jobs are not retried: a failing job is acked and reported through the
	// event stream, the caller re-triggers if needed.
	defer msg.Ack()

	var job dto.SyncJobMessage
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		s.logger.Error("SyncWorker", "Failed to unmarshal sync job", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	s.logger.Info("SyncWorker", "Processing sync job", map[string]interface{}{
		"job_id": job.JobID,
		"action": job.Action,
		"count":  len(job.ProductIDs),
	})

	var err error
	switch job.Action {
	case dto.SyncActionUpdateAll:
		err = s.syncService.SyncAll(ctx)
	case dto.SyncActionUpdate:
		err = s.syncService.SyncSpecifics(ctx, job.ProductIDs)
	case dto.SyncActionDelete:
		err = s.syncService.DeleteProducts(ctx, job.ProductIDs)
	default:
		err = fmt.Errorf("unknown sync action: %s", job.Action)
	}

	if err != nil {
		s.logger.Error("SyncWorker", "Sync job failed", map[string]interface{}{
			"job_id": job.JobID,
			"action": job.Action,
			"error":  err.Error(),
		})
		s.publishEvent(ctx, events.SyncFailed(job.JobID, job.Action, job.ProductIDs, err))
		return
	}

	s.logger.Info("SyncWorker", "Sync job completed", map[string]interface{}{
		"job_id": job.JobID,
		"action": job.Action,
	})
	s.publishEvent(ctx, events.SyncCompleted(job.JobID, job.Action, job.ProductIDs))
}

func (s *syncWorkerService) publishEvent(ctx context.Context, evt events.SyncEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("SyncWorker", "Failed to publish sync event", map[string]interface{}{
			"event_type": evt.Type,
			"error":      err.Error(),
		})
	}
}
