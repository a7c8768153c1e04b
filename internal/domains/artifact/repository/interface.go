package repository

import (
	"context"

	"github.com/google/uuid"

	"artifact-tracker-backend/internal/domains/artifact/model"
)

// =====================================================
// ARTIFACT REPOSITORY INTERFACE
// =====================================================

type RepositoryInterface interface {
	// ========================================
	// CRUD
	// ========================================

	Create(ctx context.Context, artifact *model.Artifact) error

	// GetByID → model.ErrArtifactNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*model.Artifact, error)

	// List returns every artifact in store order (inserted_at, id)
	List(ctx context.Context) ([]*model.Artifact, error)

	ListBySeller(ctx context.Context, sellerEmail string) ([]*model.Artifact, error)

	// Update writes descriptive fields only; like_count is never touched
	Update(ctx context.Context, artifact *model.Artifact) error

	// Delete removes the artifact and, by cascade, its like edges
	Delete(ctx context.Context, id uuid.UUID) error

	// ========================================
	// LIKE COUNTER
	// ========================================

	// AdjustLikeCount applies delta (+1/-1) atomically in the store and
	// returns the new value.
	// → model.ErrArtifactNotFound, model.ErrLikeCountUnderflow, model.ErrInvalidDelta
	AdjustLikeCount(ctx context.Context, id uuid.UUID, delta int) (int, error)

	// RecountLikes recomputes like_count from the like edges for ids
	// (all artifacts when empty) and returns the corrected drifts
	RecountLikes(ctx context.Context, ids []uuid.UUID) ([]model.LikeCountDrift, error)
}
