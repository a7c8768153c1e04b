package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"artifact-tracker-backend/internal/shared"
	"artifact-tracker-backend/pkg/logger"
)

// reconcileDelay leaves in-flight toggles time to finish their counter
// write before the recount locks the rows
const reconcileDelay = 30 * time.Second

// Client enqueues background tasks for the worker
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		}),
	}
}

// EnqueueReconcile schedules a like counter recount. Tasks for the same
// artifact set are deduplicated while one is pending.
func (c *Client) EnqueueReconcile(ctx context.Context, payload shared.ReconcileLikeCountPayload) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal reconcile payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeReconcileLikeCount, b)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueCritical),
		asynq.ProcessIn(reconcileDelay),
		asynq.MaxRetry(5),
		asynq.Timeout(2*time.Minute),
		asynq.Unique(reconcileDelay),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			return nil
		}
		return fmt.Errorf("enqueue reconcile: %w", err)
	}

	logger.Info("like reconcile enqueued", map[string]interface{}{
		"task_id":   info.ID,
		"reason":    payload.Reason,
		"artifacts": payload.ArtifactIDs,
	})
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
