package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	artifactModel "artifact-tracker-backend/internal/domains/artifact/model"
	"artifact-tracker-backend/internal/domains/like/model"
	"artifact-tracker-backend/internal/domains/like/repository"
	"artifact-tracker-backend/internal/infrastructure/database"
	"artifact-tracker-backend/internal/shared"
	"artifact-tracker-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type likeService struct {
	likeRepo   repository.RepositoryInterface
	artifacts  ArtifactCounter
	reconciler ReconcileEnqueuer // may be nil
}

func NewLikeService(
	likeRepo repository.RepositoryInterface,
	artifacts ArtifactCounter,
	reconciler ReconcileEnqueuer,
) ServiceInterface {
	return &likeService{
		likeRepo:   likeRepo,
		artifacts:  artifacts,
		reconciler: reconciler,
	}
}

// =====================================================
// TOGGLE
// =====================================================

// ToggleLike never wraps the two writes in one transaction: the edge is
// written first and is authoritative, the counter follows. Any gap left by a
// failure between the two is repaired by the reconcile job.
func (s *likeService) ToggleLike(ctx context.Context, identity string, artifactID uuid.UUID, intent model.Intent) (*model.ToggleResult, error) {
	email := normalizeEmail(identity)
	if email == "" {
		return nil, model.NewMalformedError("Identity is required")
	}
	if artifactID == uuid.Nil {
		return nil, model.NewMalformedError("Artifact id is required")
	}

	switch intent {
	case model.IntentLike:
		return s.like(ctx, email, artifactID)
	case model.IntentUnlike:
		return s.unlike(ctx, email, artifactID)
	default:
		return nil, model.NewMalformedError("Unknown intent")
	}
}

func (s *likeService) like(ctx context.Context, email string, artifactID uuid.UUID) (*model.ToggleResult, error) {
	// Step 1: Edge
	err := s.likeRepo.Create(ctx, &model.LikeEdge{Email: email, ArtifactID: artifactID})
	switch {
	case errors.Is(err, model.ErrLikeAlreadyExists):
		return s.unchanged(ctx, artifactID, true), nil
	case errors.Is(err, artifactModel.ErrArtifactNotFound):
		return nil, model.NewStaleReferenceError()
	case err != nil:
		return nil, storeError(err)
	}

	// Step 2: Counter
	likeCount, err := s.artifacts.AdjustLikeCount(ctx, artifactID, 1)
	switch {
	case err == nil:
		return changed(artifactID, true, likeCount), nil

	case errors.Is(err, artifactModel.ErrArtifactNotFound):
		// Artifact deleted between the two writes: undo the edge
		s.compensate(ctx, email, artifactID)
		return nil, model.NewStaleReferenceError()

	default:
		// Edge stands, counter lags behind it until reconciled
		s.consistencyFault(ctx, artifactID, shared.ReconcileReasonCounterFailed, err)
		return &model.ToggleResult{ArtifactID: artifactID, Liked: true, Changed: true}, nil
	}
}

func (s *likeService) unlike(ctx context.Context, email string, artifactID uuid.UUID) (*model.ToggleResult, error) {
	// Step 1: Edge
	err := s.likeRepo.Delete(ctx, email, artifactID)
	switch {
	case errors.Is(err, model.ErrLikeNotFound):
		return s.unchanged(ctx, artifactID, false), nil
	case err != nil:
		return nil, storeError(err)
	}

	// Step 2: Counter
	likeCount, err := s.artifacts.AdjustLikeCount(ctx, artifactID, -1)
	switch {
	case err == nil:
		return changed(artifactID, false, likeCount), nil

	case errors.Is(err, artifactModel.ErrArtifactNotFound):
		// Artifact and its edges are gone, nothing left to count
		return &model.ToggleResult{ArtifactID: artifactID, Liked: false, Changed: true}, nil

	case errors.Is(err, artifactModel.ErrLikeCountUnderflow):
		s.consistencyFault(ctx, artifactID, shared.ReconcileReasonUnderflow, err)
		return &model.ToggleResult{ArtifactID: artifactID, Liked: false, Changed: true}, nil

	default:
		s.consistencyFault(ctx, artifactID, shared.ReconcileReasonCounterFailed, err)
		return &model.ToggleResult{ArtifactID: artifactID, Liked: false, Changed: true}, nil
	}
}

func (s *likeService) compensate(ctx context.Context, email string, artifactID uuid.UUID) {
	err := s.likeRepo.Delete(ctx, email, artifactID)
	if err == nil || errors.Is(err, model.ErrLikeNotFound) {
		return
	}
	s.consistencyFault(ctx, artifactID, shared.ReconcileReasonCompensationFail, err)
}

// consistencyFault logs a counter/edge mismatch and asks the worker to
// recount the artifact
func (s *likeService) consistencyFault(ctx context.Context, artifactID uuid.UUID, reason string, cause error) {
	logger.ErrorFields("like counter consistency fault", cause, map[string]interface{}{
		"artifact_id": artifactID.String(),
		"reason":      reason,
	})

	if s.reconciler == nil {
		return
	}

	payload := shared.ReconcileLikeCountPayload{
		ArtifactIDs: []string{artifactID.String()},
		Reason:      reason,
	}
	if err := s.reconciler.EnqueueReconcile(ctx, payload); err != nil {
		logger.ErrorFields("failed to enqueue like reconcile", err, map[string]interface{}{
			"artifact_id": artifactID.String(),
		})
	}
}

// unchanged reports a no-op toggle. The count is read from the edges and is
// omitted when that read fails.
func (s *likeService) unchanged(ctx context.Context, artifactID uuid.UUID, liked bool) *model.ToggleResult {
	result := &model.ToggleResult{ArtifactID: artifactID, Liked: liked, Changed: false}

	count, err := s.likeRepo.CountByArtifact(ctx, artifactID)
	if err != nil {
		logger.Debug("like count unavailable for no-op toggle", map[string]interface{}{
			"artifact_id": artifactID.String(),
			"error":       err.Error(),
		})
		return result
	}
	result.LikeCount = &count
	return result
}

func changed(artifactID uuid.UUID, liked bool, likeCount int) *model.ToggleResult {
	return &model.ToggleResult{
		ArtifactID: artifactID,
		Liked:      liked,
		Changed:    true,
		LikeCount:  &likeCount,
	}
}

// =====================================================
// QUERIES
// =====================================================

func (s *likeService) IsLiked(ctx context.Context, email string, artifactID uuid.UUID) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || artifactID == uuid.Nil {
		return false, model.NewMalformedError("Email and artifact id are required")
	}

	exists, err := s.likeRepo.Exists(ctx, email, artifactID)
	if err != nil {
		return false, storeError(err)
	}
	return exists, nil
}

func (s *likeService) ListForUser(ctx context.Context, email string) ([]*model.LikeEdge, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, model.NewMalformedError("Email is required")
	}

	edges, err := s.likeRepo.ListByUser(ctx, email)
	if err != nil {
		return nil, storeError(err)
	}
	return edges, nil
}

// =====================================================
// RECONCILIATION
// =====================================================

func (s *likeService) Reconcile(ctx context.Context, ids []uuid.UUID) ([]artifactModel.LikeCountDrift, error) {
	drifts, err := s.artifacts.RecountLikes(ctx, ids)
	if err != nil {
		return nil, storeError(err)
	}

	for _, d := range drifts {
		logger.Warn("like counter drift corrected", map[string]interface{}{
			"artifact_id": d.ArtifactID.String(),
			"stored":      d.Stored,
			"actual":      d.Actual,
		})
	}

	logger.Info("like counters reconciled", map[string]interface{}{
		"scope":     len(ids),
		"corrected": len(drifts),
	})
	return drifts, nil
}

// =====================================================
// HELPERS
// =====================================================

func storeError(err error) error {
	if errors.Is(err, database.ErrTransient) {
		return model.NewTransientError(err)
	}
	return fmt.Errorf("like store: %w", err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
