package repository

import (
	"context"

	"github.com/google/uuid"

	"artifact-tracker-backend/internal/domains/like/model"
)

// =====================================================
// LIKE REPOSITORY INTERFACE
// =====================================================

type RepositoryInterface interface {
	Exists(ctx context.Context, email string, artifactID uuid.UUID) (bool, error)

	// Create → model.ErrLikeAlreadyExists, artifact model.ErrArtifactNotFound
	Create(ctx context.Context, edge *model.LikeEdge) error

	// Delete → model.ErrLikeNotFound
	Delete(ctx context.Context, email string, artifactID uuid.UUID) error

	// ListByUser returns the edges of one user, newest first
	ListByUser(ctx context.Context, email string) ([]*model.LikeEdge, error)

	CountByArtifact(ctx context.Context, artifactID uuid.UUID) (int, error)
}
