package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"ethiqia/internal/models"
)

// edgeRepository backs likes and follows. The table has a primary key on
// (left, right) so Insert is idempotent.
type edgeRepository struct {
	db    *sqlx.DB
	table string
	left  string
	right string
}

func NewLikeRepository(db *sqlx.DB) EdgeRepository {
	return &edgeRepository{db: db, table: "likes", left: "post_id", right: "user_id"}
}

type followRepository struct {
	*edgeRepository
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{
		edgeRepository: &edgeRepository{db: db, table: "follows", left: "follower_id", right: "following_id"},
	}
}

func (r *edgeRepository) Exists(ctx context.Context, a, b string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`, r.table, r.left, r.right)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, a, b); err != nil {
		return false, fmt.Errorf("check %s: %w", r.table, err)
	}

	return exists, nil
}

func (r *edgeRepository) Insert(ctx context.Context, a, b string) (bool, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, created_at) VALUES ($1, $2, now()) ON CONFLICT DO NOTHING`,
		r.table, r.left, r.right)

	result, err := r.db.ExecContext(ctx, query, a, b)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("insert %s: %w", r.table, ErrNotFound)
		}
		return false, fmt.Errorf("insert %s: %w", r.table, err)
	}

	return changed(result)
}

func (r *edgeRepository) Delete(ctx context.Context, a, b string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, r.table, r.left, r.right)

	result, err := r.db.ExecContext(ctx, query, a, b)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", r.table, err)
	}

	return changed(result)
}

func (r *followRepository) Stats(ctx context.Context, userID string) (*models.FollowStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE following_id = $1) AS followers,
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1) AS following
	`

	var stats models.FollowStats
	if err := r.db.GetContext(ctx, &stats, query, userID); err != nil {
		return nil, fmt.Errorf("follow stats: %w", err)
	}

	return &stats, nil
}

func changed(result interface{ RowsAffected() (int64, error) }) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("check affected rows: %w", err)
	}
	return n > 0, nil
}
