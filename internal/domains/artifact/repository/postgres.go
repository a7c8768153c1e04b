package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"artifact-tracker-backend/internal/domains/artifact/model"
	"artifact-tracker-backend/internal/infrastructure/database"
	"artifact-tracker-backend/pkg/cache"
	pkgdb "artifact-tracker-backend/pkg/database"
	"artifact-tracker-backend/pkg/logger"
)

const artifactCacheTTL = 10 * time.Minute

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) RepositoryInterface {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &postgresRepository{pool: pool, cache: c}
}

const artifactColumns = `
	id, artifact_name, artifact_image, artifact_type, historical_context,
	created_era, discovered_at, discovered_by, present_location,
	seller_name, seller_email, like_count, inserted_at, updated_at`

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("artifact:%s", id)
}

func scanArtifact(row pgx.Row) (*model.Artifact, error) {
	a := &model.Artifact{}
	err := row.Scan(
		&a.ID,
		&a.ArtifactName,
		&a.ArtifactImage,
		&a.ArtifactType,
		&a.HistoricalContext,
		&a.CreatedAt,
		&a.DiscoveredAt,
		&a.DiscoveredBy,
		&a.PresentLocation,
		&a.SellerName,
		&a.SellerEmail,
		&a.LikeCount,
		&a.InsertedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, ids ...uuid.UUID) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, cacheKey(id))
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		logger.Error("artifact cache invalidation failed", err)
	}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, a *model.Artifact) error {
	query := `
		INSERT INTO artifacts (
			id, artifact_name, artifact_image, artifact_type, historical_context,
			created_era, discovered_at, discovered_by, present_location,
			seller_name, seller_email, like_count, inserted_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, NOW(), NOW())
		RETURNING like_count, inserted_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		a.ID,
		a.ArtifactName,
		a.ArtifactImage,
		a.ArtifactType,
		a.HistoricalContext,
		a.CreatedAt,
		a.DiscoveredAt,
		a.DiscoveredBy,
		a.PresentLocation,
		a.SellerName,
		a.SellerEmail,
	).Scan(&a.LikeCount, &a.InsertedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create artifact: %w", database.Classify(err))
	}

	return nil
}

// =====================================================
// GET BY ID (cache-aside)
// =====================================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Artifact, error) {
	var cached model.Artifact
	if found, err := r.cache.Get(ctx, cacheKey(id), &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + artifactColumns + ` FROM artifacts WHERE id = $1`

	a, err := scanArtifact(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("failed to get artifact: %w", database.Classify(err))
	}

	if err := r.cache.Set(ctx, cacheKey(id), a, artifactCacheTTL); err != nil {
		logger.Error("artifact cache set failed", err)
	}
	return a, nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresRepository) List(ctx context.Context) ([]*model.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM artifacts ORDER BY inserted_at, id`
	return r.queryList(ctx, query)
}

func (r *postgresRepository) ListBySeller(ctx context.Context, sellerEmail string) ([]*model.Artifact, error) {
	query := `SELECT ` + artifactColumns + `
		FROM artifacts
		WHERE lower(seller_email) = lower($1)
		ORDER BY inserted_at, id`
	return r.queryList(ctx, query, strings.TrimSpace(sellerEmail))
}

func (r *postgresRepository) queryList(ctx context.Context, query string, args ...any) ([]*model.Artifact, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", database.Classify(err))
	}
	defer rows.Close()

	artifacts := make([]*model.Artifact, 0)
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate artifacts: %w", database.Classify(err))
	}

	return artifacts, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresRepository) Update(ctx context.Context, a *model.Artifact) error {
	query := `
		UPDATE artifacts
		SET
			artifact_name = $2,
			artifact_image = $3,
			artifact_type = $4,
			historical_context = $5,
			created_era = $6,
			discovered_at = $7,
			discovered_by = $8,
			present_location = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING like_count, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		a.ID,
		a.ArtifactName,
		a.ArtifactImage,
		a.ArtifactType,
		a.HistoricalContext,
		a.CreatedAt,
		a.DiscoveredAt,
		a.DiscoveredBy,
		a.PresentLocation,
	).Scan(&a.LikeCount, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrArtifactNotFound
		}
		return fmt.Errorf("failed to update artifact: %w", database.Classify(err))
	}

	r.invalidate(ctx, a.ID)
	return nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM artifacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete artifact: %w", database.Classify(err))
	}

	r.invalidate(ctx, id)

	if result.RowsAffected() == 0 {
		return model.ErrArtifactNotFound
	}
	return nil
}

// =====================================================
// ADJUST LIKE COUNT
// =====================================================

// AdjustLikeCount is a single conditional UPDATE: PostgreSQL serializes
// concurrent writers on the row, so each call is applied exactly once and
// the counter can never be written below zero.
func (r *postgresRepository) AdjustLikeCount(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	if delta != 1 && delta != -1 {
		return 0, model.ErrInvalidDelta
	}

	query := `
		UPDATE artifacts
		SET like_count = like_count + $2, updated_at = NOW()
		WHERE id = $1 AND like_count + $2 >= 0
		RETURNING like_count
	`

	var likeCount int
	err := r.pool.QueryRow(ctx, query, id, delta).Scan(&likeCount)
	if err == nil {
		r.invalidate(ctx, id)
		return likeCount, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to adjust like count: %w", database.Classify(err))
	}

	// No row updated: either the artifact is gone or the guard refused
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM artifacts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("failed to check artifact: %w", database.Classify(err))
	}
	if !exists {
		return 0, model.ErrArtifactNotFound
	}
	return 0, model.ErrLikeCountUnderflow
}

// =====================================================
// RECOUNT (reconciliation)
// =====================================================

// RecountLikes locks the selected artifact rows, so no counter adjustment
// can interleave, and rewrites every like_count that differs from the
// number of like edges.
func (r *postgresRepository) RecountLikes(ctx context.Context, ids []uuid.UUID) ([]model.LikeCountDrift, error) {
	var filter []string
	for _, id := range ids {
		filter = append(filter, id.String())
	}

	drifts, err := pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]model.LikeCountDrift, error) {
		query := `
			SELECT
				a.id,
				a.like_count,
				(SELECT COUNT(*) FROM liked_artifacts l WHERE l.artifact_id = a.id)::int AS actual
			FROM artifacts a
			WHERE $1::text[] IS NULL OR a.id::text = ANY($1::text[])
			ORDER BY a.id
			FOR UPDATE OF a
		`

		rows, err := tx.Query(ctx, query, pq.Array(filter))
		if err != nil {
			return nil, fmt.Errorf("failed to count likes: %w", database.Classify(err))
		}

		var drifts []model.LikeCountDrift
		for rows.Next() {
			var d model.LikeCountDrift
			if err := rows.Scan(&d.ArtifactID, &d.Stored, &d.Actual); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan like count: %w", err)
			}
			if d.Stored != d.Actual {
				drifts = append(drifts, d)
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate like counts: %w", database.Classify(err))
		}

		for _, d := range drifts {
			_, err := tx.Exec(ctx,
				`UPDATE artifacts SET like_count = $2, updated_at = NOW() WHERE id = $1`,
				d.ArtifactID, d.Actual,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to rewrite like count: %w", database.Classify(err))
			}
		}

		return drifts, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recount likes: %w", database.Classify(err))
	}

	for _, d := range drifts {
		r.invalidate(ctx, d.ArtifactID)
	}
	return drifts, nil
}
