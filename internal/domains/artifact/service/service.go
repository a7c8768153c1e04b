package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"artifact-tracker-backend/internal/domains/artifact/model"
	"artifact-tracker-backend/internal/domains/artifact/repository"
	"artifact-tracker-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type artifactService struct {
	artifactRepo repository.RepositoryInterface
}

func NewArtifactService(artifactRepo repository.RepositoryInterface) ServiceInterface {
	return &artifactService{
		artifactRepo: artifactRepo,
	}
}

// =====================================================
// PUBLIC CATALOG
// =====================================================

func (s *artifactService) GetArtifact(ctx context.Context, id uuid.UUID) (*model.Artifact, error) {
	if id == uuid.Nil {
		return nil, model.NewInvalidIDError()
	}

	artifact, err := s.artifactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return artifact, nil
}

func (s *artifactService) ListArtifacts(ctx context.Context) ([]*model.Artifact, error) {
	artifacts, err := s.artifactRepo.List(ctx)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return artifacts, nil
}

func (s *artifactService) ListFeatured(ctx context.Context) ([]*model.Artifact, error) {
	artifacts, err := s.artifactRepo.List(ctx)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	sort.SliceStable(artifacts, func(i, j int) bool {
		return artifacts[i].LikeCount > artifacts[j].LikeCount
	})
	return artifacts, nil
}

// =====================================================
// SELLER OPERATIONS
// =====================================================

func (s *artifactService) CreateArtifact(ctx context.Context, sellerEmail string, req model.CreateArtifactRequest) (*model.Artifact, error) {
	artifact := &model.Artifact{
		ID:                uuid.New(),
		ArtifactName:      strings.TrimSpace(req.ArtifactName),
		ArtifactImage:     req.ArtifactImage,
		ArtifactType:      req.ArtifactType,
		HistoricalContext: req.HistoricalContext,
		CreatedAt:         req.CreatedAt,
		DiscoveredAt:      req.DiscoveredAt,
		DiscoveredBy:      req.DiscoveredBy,
		PresentLocation:   req.PresentLocation,
		SellerName:        req.SellerName,
		SellerEmail:       normalizeEmail(sellerEmail),
	}

	if err := s.artifactRepo.Create(ctx, artifact); err != nil {
		return nil, wrapRepoError(err)
	}

	logger.Info("artifact created", map[string]interface{}{
		"artifact_id":  artifact.ID.String(),
		"seller_email": artifact.SellerEmail,
	})
	return artifact, nil
}

func (s *artifactService) ListBySeller(ctx context.Context, sellerEmail string) ([]*model.Artifact, error) {
	artifacts, err := s.artifactRepo.ListBySeller(ctx, normalizeEmail(sellerEmail))
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return artifacts, nil
}

func (s *artifactService) GetOwned(ctx context.Context, sellerEmail string, id uuid.UUID) (*model.Artifact, error) {
	artifact, err := s.GetArtifact(ctx, id)
	if err != nil {
		return nil, err
	}
	if !artifact.IsOwnedBy(sellerEmail) {
		return nil, model.NewNotOwnerError()
	}
	return artifact, nil
}

func (s *artifactService) UpdateArtifact(ctx context.Context, sellerEmail string, id uuid.UUID, req model.UpdateArtifactRequest) (*model.Artifact, error) {
	artifact, err := s.GetOwned(ctx, sellerEmail, id)
	if err != nil {
		return nil, err
	}

	req.Apply(artifact)
	if err := s.artifactRepo.Update(ctx, artifact); err != nil {
		return nil, wrapRepoError(err)
	}
	return artifact, nil
}

func (s *artifactService) DeleteArtifact(ctx context.Context, sellerEmail string, id uuid.UUID) error {
	if _, err := s.GetOwned(ctx, sellerEmail, id); err != nil {
		return err
	}

	if err := s.artifactRepo.Delete(ctx, id); err != nil {
		return wrapRepoError(err)
	}

	logger.Info("artifact deleted", map[string]interface{}{
		"artifact_id":  id.String(),
		"seller_email": normalizeEmail(sellerEmail),
	})
	return nil
}

// =====================================================
// HELPERS
// =====================================================

func wrapRepoError(err error) error {
	if errors.Is(err, model.ErrArtifactNotFound) {
		return model.NewArtifactNotFoundError()
	}
	return fmt.Errorf("artifact store: %w", err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
