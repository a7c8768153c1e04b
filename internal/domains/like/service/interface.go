package service

import (
	"context"

	"github.com/google/uuid"

	artifactModel "artifact-tracker-backend/internal/domains/artifact/model"
	"artifact-tracker-backend/internal/domains/like/model"
	"artifact-tracker-backend/internal/shared"
)

// =====================================================
// LIKE SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ToggleLike moves the (identity, artifactID) edge to the state named by
	// intent and keeps the artifact's like counter in step
	ToggleLike(ctx context.Context, identity string, artifactID uuid.UUID, intent model.Intent) (*model.ToggleResult, error)

	IsLiked(ctx context.Context, email string, artifactID uuid.UUID) (bool, error)

	// ListForUser lists the user's likes, newest first
	ListForUser(ctx context.Context, email string) ([]*model.LikeEdge, error)

	// Reconcile rewrites drifted like counters (all artifacts when ids is empty)
	Reconcile(ctx context.Context, ids []uuid.UUID) ([]artifactModel.LikeCountDrift, error)
}

// =====================================================
// DEPENDENCIES
// =====================================================

// ArtifactCounter is the part of the artifact store the like service writes
type ArtifactCounter interface {
	AdjustLikeCount(ctx context.Context, id uuid.UUID, delta int) (int, error)
	RecountLikes(ctx context.Context, ids []uuid.UUID) ([]artifactModel.LikeCountDrift, error)
}

// ReconcileEnqueuer schedules an asynchronous counter repair
type ReconcileEnqueuer interface {
	EnqueueReconcile(ctx context.Context, payload shared.ReconcileLikeCountPayload) error
}
