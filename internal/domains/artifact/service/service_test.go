package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifact-tracker-backend/internal/domains/artifact/model"
)

// fakeRepository keeps artifacts in insertion order
type fakeRepository struct {
	mu        sync.Mutex
	order     []uuid.UUID
	artifacts map[uuid.UUID]*model.Artifact
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{artifacts: make(map[uuid.UUID]*model.Artifact)}
}

func (f *fakeRepository) put(a *model.Artifact) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *a
	f.artifacts[a.ID] = &cp
	f.order = append(f.order, a.ID)
}

func (f *fakeRepository) Create(_ context.Context, a *model.Artifact) error {
	f.put(a)
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Artifact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.artifacts[id]
	if !ok {
		return nil, model.ErrArtifactNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepository) List(_ context.Context) ([]*model.Artifact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Artifact, 0, len(f.order))
	for _, id := range f.order {
		if a, ok := f.artifacts[id]; ok {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListBySeller(ctx context.Context, sellerEmail string) ([]*model.Artifact, error) {
	all, _ := f.List(ctx)
	out := make([]*model.Artifact, 0)
	for _, a := range all {
		if a.IsOwnedBy(sellerEmail) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepository) Update(_ context.Context, a *model.Artifact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.artifacts[a.ID]
	if !ok {
		return model.ErrArtifactNotFound
	}
	cp := *a
	cp.LikeCount = stored.LikeCount
	f.artifacts[a.ID] = &cp
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.artifacts[id]; !ok {
		return model.ErrArtifactNotFound
	}
	delete(f.artifacts, id)
	return nil
}

func (f *fakeRepository) AdjustLikeCount(_ context.Context, id uuid.UUID, delta int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.artifacts[id]
	if !ok {
		return 0, model.ErrArtifactNotFound
	}
	a.LikeCount += delta
	return a.LikeCount, nil
}

func (f *fakeRepository) RecountLikes(context.Context, []uuid.UUID) ([]model.LikeCountDrift, error) {
	return nil, nil
}

func seed(repo *fakeRepository, name, seller string, likes int) *model.Artifact {
	a := &model.Artifact{
		ID:           uuid.New(),
		ArtifactName: name,
		SellerEmail:  seller,
		LikeCount:    likes,
	}
	repo.put(a)
	return a
}

func TestListFeatured_SortsByLikesKeepingStoreOrderOnTies(t *testing.T) {
	repo := newFakeRepository()
	a := seed(repo, "a", "s@x.io", 1)
	b := seed(repo, "b", "s@x.io", 5)
	c := seed(repo, "c", "s@x.io", 1)
	d := seed(repo, "d", "s@x.io", 5)
	e := seed(repo, "e", "s@x.io", 0)

	svc := NewArtifactService(repo)
	featured, err := svc.ListFeatured(context.Background())
	require.NoError(t, err)

	var got []uuid.UUID
	for _, art := range featured {
		got = append(got, art.ID)
	}
	assert.Equal(t, []uuid.UUID{b.ID, d.ID, a.ID, c.ID, e.ID}, got)

	all, err := svc.ListArtifacts(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, a.ID, all[0].ID)
}

func TestCreateArtifact_SellerIsNormalizedIdentity(t *testing.T) {
	repo := newFakeRepository()
	svc := NewArtifactService(repo)

	created, err := svc.CreateArtifact(context.Background(), "  Seller@X.io ", model.CreateArtifactRequest{
		ArtifactName: " Rosetta Stone ",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "seller@x.io", created.SellerEmail)
	assert.Equal(t, "Rosetta Stone", created.ArtifactName)
	assert.Zero(t, created.LikeCount)

	mine, err := svc.ListBySeller(context.Background(), "SELLER@x.io")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestGetArtifact_NotFound(t *testing.T) {
	svc := NewArtifactService(newFakeRepository())

	_, err := svc.GetArtifact(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrArtifactNotFound)

	var artErr *model.ArtifactError
	require.ErrorAs(t, err, &artErr)
	assert.Equal(t, model.ErrCodeArtifactNotFound, artErr.Code)

	_, err = svc.GetArtifact(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, model.ErrInvalidArtifactID)
}

func TestUpdateArtifact_OnlySellerMayEdit(t *testing.T) {
	repo := newFakeRepository()
	art := seed(repo, "Mask", "owner@x.io", 3)
	svc := NewArtifactService(repo)

	name := "Golden Mask"
	_, err := svc.UpdateArtifact(context.Background(), "other@x.io", art.ID, model.UpdateArtifactRequest{ArtifactName: &name})
	assert.ErrorIs(t, err, model.ErrNotOwner)

	updated, err := svc.UpdateArtifact(context.Background(), "OWNER@x.io", art.ID, model.UpdateArtifactRequest{ArtifactName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Golden Mask", updated.ArtifactName)
	assert.Equal(t, 3, updated.LikeCount)
}

func TestDeleteArtifact_OnlySellerMayDelete(t *testing.T) {
	repo := newFakeRepository()
	art := seed(repo, "Vase", "owner@x.io", 0)
	svc := NewArtifactService(repo)

	err := svc.DeleteArtifact(context.Background(), "other@x.io", art.ID)
	assert.ErrorIs(t, err, model.ErrNotOwner)

	require.NoError(t, svc.DeleteArtifact(context.Background(), "owner@x.io", art.ID))

	_, err = svc.GetArtifact(context.Background(), art.ID)
	assert.ErrorIs(t, err, model.ErrArtifactNotFound)
}
