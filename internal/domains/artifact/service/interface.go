package service

import (
	"context"

	"github.com/google/uuid"

	"artifact-tracker-backend/internal/domains/artifact/model"
)

// =====================================================
// ARTIFACT SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ========================================
	// PUBLIC CATALOG
	// ========================================

	// GetArtifact gets artifact by ID
	GetArtifact(ctx context.Context, id uuid.UUID) (*model.Artifact, error)

	// ListArtifacts lists every artifact in store order
	ListArtifacts(ctx context.Context) ([]*model.Artifact, error)

	// ListFeatured lists artifacts by likeCount descending, ties in store order
	ListFeatured(ctx context.Context) ([]*model.Artifact, error)

	// ========================================
	// SELLER OPERATIONS
	// ========================================

	// CreateArtifact publishes an artifact owned by sellerEmail
	CreateArtifact(ctx context.Context, sellerEmail string, req model.CreateArtifactRequest) (*model.Artifact, error)

	// ListBySeller lists the artifacts of one seller
	ListBySeller(ctx context.Context, sellerEmail string) ([]*model.Artifact, error)

	// GetOwned gets an artifact for editing, sellerEmail must own it
	GetOwned(ctx context.Context, sellerEmail string, id uuid.UUID) (*model.Artifact, error)

	// UpdateArtifact edits descriptive fields, sellerEmail must own it
	UpdateArtifact(ctx context.Context, sellerEmail string, id uuid.UUID, req model.UpdateArtifactRequest) (*model.Artifact, error)

	// DeleteArtifact removes the artifact and its like edges, sellerEmail must own it
	DeleteArtifact(ctx context.Context, sellerEmail string, id uuid.UUID) error
}
