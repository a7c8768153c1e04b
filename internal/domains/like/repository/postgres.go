package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	artifactModel "artifact-tracker-backend/internal/domains/artifact/model"
	"artifact-tracker-backend/internal/domains/like/model"
	"artifact-tracker-backend/internal/infrastructure/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Exists(ctx context.Context, email string, artifactID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM liked_artifacts WHERE email = $1 AND artifact_id = $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email, artifactID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check like: %w", database.Classify(err))
	}
	return exists, nil
}

// Create relies on the (email, artifact_id) primary key: a concurrent
// duplicate insert is a no-op, never a second row.
func (r *postgresRepository) Create(ctx context.Context, edge *model.LikeEdge) error {
	query := `
		INSERT INTO liked_artifacts (email, artifact_id, liked_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (email, artifact_id) DO NOTHING
		RETURNING liked_at
	`

	rows, err := r.pool.Query(ctx, query, edge.Email, edge.ArtifactID)
	if err != nil {
		return r.mapWriteError(err)
	}
	defer rows.Close()

	inserted := false
	for rows.Next() {
		if err := rows.Scan(&edge.LikedAt); err != nil {
			return fmt.Errorf("failed to scan like: %w", err)
		}
		inserted = true
	}
	if err := rows.Err(); err != nil {
		return r.mapWriteError(err)
	}

	if !inserted {
		return model.ErrLikeAlreadyExists
	}
	return nil
}

func (r *postgresRepository) mapWriteError(err error) error {
	if database.PgErrorCode(err) == database.CodeForeignKeyViolation {
		return artifactModel.ErrArtifactNotFound
	}
	return fmt.Errorf("failed to create like: %w", database.Classify(err))
}

func (r *postgresRepository) Delete(ctx context.Context, email string, artifactID uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM liked_artifacts WHERE email = $1 AND artifact_id = $2`,
		email, artifactID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return model.ErrLikeNotFound
	}
	return nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, email string) ([]*model.LikeEdge, error) {
	query := `
		SELECT email, artifact_id, liked_at
		FROM liked_artifacts
		WHERE email = $1
		ORDER BY liked_at DESC, artifact_id
	`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", database.Classify(err))
	}
	defer rows.Close()

	edges := make([]*model.LikeEdge, 0)
	for rows.Next() {
		edge := &model.LikeEdge{}
		if err := rows.Scan(&edge.Email, &edge.ArtifactID, &edge.LikedAt); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate likes: %w", database.Classify(err))
	}

	return edges, nil
}

func (r *postgresRepository) CountByArtifact(ctx context.Context, artifactID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM liked_artifacts WHERE artifact_id = $1`,
		artifactID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", database.Classify(err))
	}
	return count, nil
}
