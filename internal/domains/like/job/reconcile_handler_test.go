package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	artifactModel "artifact-tracker-backend/internal/domains/artifact/model"
	"artifact-tracker-backend/internal/domains/like/model"
	"artifact-tracker-backend/internal/shared"
)

type fakeLikeService struct {
	gotIDs []uuid.UUID
	called bool
	err    error
}

func (f *fakeLikeService) ToggleLike(context.Context, string, uuid.UUID, model.Intent) (*model.ToggleResult, error) {
	return nil, nil
}

func (f *fakeLikeService) IsLiked(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeLikeService) ListForUser(context.Context, string) ([]*model.LikeEdge, error) {
	return nil, nil
}

func (f *fakeLikeService) Reconcile(_ context.Context, ids []uuid.UUID) ([]artifactModel.LikeCountDrift, error) {
	f.called = true
	f.gotIDs = ids
	return nil, f.err
}

func newTask(t *testing.T, payload any) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeReconcileLikeCount, b)
}

func TestReconcileHandler_PassesArtifactIDs(t *testing.T) {
	svc := &fakeLikeService{}
	h := NewReconcileLikeCountHandler(svc)
	id := uuid.New()

	err := h.ProcessTask(context.Background(), newTask(t, shared.ReconcileLikeCountPayload{
		ArtifactIDs: []string{id.String()},
		Reason:      shared.ReconcileReasonUnderflow,
	}))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, svc.gotIDs)
}

func TestReconcileHandler_EmptyPayloadMeansAll(t *testing.T) {
	svc := &fakeLikeService{}
	h := NewReconcileLikeCountHandler(svc)

	err := h.ProcessTask(context.Background(), newTask(t, shared.ReconcileLikeCountPayload{
		Reason: shared.ReconcileReasonSchedule,
	}))
	require.NoError(t, err)
	assert.True(t, svc.called)
	assert.Empty(t, svc.gotIDs)
}

func TestReconcileHandler_BadPayloadSkipsRetry(t *testing.T) {
	svc := &fakeLikeService{}
	h := NewReconcileLikeCountHandler(svc)

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeReconcileLikeCount, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h.ProcessTask(context.Background(), newTask(t, shared.ReconcileLikeCountPayload{
		ArtifactIDs: []string{"art42"},
	}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.False(t, svc.called)
}

func TestReconcileHandler_StoreFailureIsRetried(t *testing.T) {
	svc := &fakeLikeService{err: errors.New("connection refused")}
	h := NewReconcileLikeCountHandler(svc)

	err := h.ProcessTask(context.Background(), newTask(t, shared.ReconcileLikeCountPayload{}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
