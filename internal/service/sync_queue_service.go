// FILE: internal/service/sync_queue_service.go
package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"fashion-chatbot-be/internal/dto"
)

// ISyncQueueService queues catalog sync jobs for background processing, so
// the HTTP handler can acknowledge immediately.
type ISyncQueueService interface {
	Enqueue(ctx context.Context, action string, productIds []int64) (string, error)
}

type syncQueueService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewSyncQueueService(topicName string, pubSub *gochannel.GoChannel) ISyncQueueService {
	return &syncQueueService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (s *syncQueueService) Enqueue(_ context.Context, action string, productIds []int64) (string, error) {
	job := dto.SyncJobMessage{
		JobID:      uuid.NewString(),
		Action:     action,
		ProductIDs: productIds,
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return "", err
	}

	msg := message.NewMessage(job.JobID, payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		return "", err
	}

	return job.JobID, nil
}
