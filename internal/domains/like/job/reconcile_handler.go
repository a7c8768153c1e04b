package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	likeService "artifact-tracker-backend/internal/domains/like/service"
	"artifact-tracker-backend/internal/shared"
)

// ReconcileLikeCountHandler rewrites like counters that drifted from the
// number of like edges
type ReconcileLikeCountHandler struct {
	likeService likeService.ServiceInterface
}

func NewReconcileLikeCountHandler(likeService likeService.ServiceInterface) *ReconcileLikeCountHandler {
	return &ReconcileLikeCountHandler{
		likeService: likeService,
	}
}

func (h *ReconcileLikeCountHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ReconcileLikeCountPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ReconcileLikeCount payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	ids := make([]uuid.UUID, 0, len(payload.ArtifactIDs))
	for _, raw := range payload.ArtifactIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Error().Err(err).Str("artifact_id", raw).Msg("Invalid artifact id in reconcile payload")
			return fmt.Errorf("parse artifact id %q: %v: %w", raw, err, asynq.SkipRetry)
		}
		ids = append(ids, id)
	}

	log.Info().
		Str("reason", payload.Reason).
		Str("request_id", payload.RequestID).
		Int("artifacts", len(ids)).
		Msg("Reconciling like counters")

	drifts, err := h.likeService.Reconcile(ctx, ids)
	if err != nil {
		log.Error().Err(err).Str("reason", payload.Reason).Msg("Like counter reconciliation failed")
		return fmt.Errorf("reconcile like counts: %w", err)
	}

	log.Info().
		Str("reason", payload.Reason).
		Int("corrected", len(drifts)).
		Msg("Like counters reconciled")

	return nil
}
