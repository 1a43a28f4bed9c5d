package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yatube/yatube/internal/pkg/apperrors"
	"github.com/yatube/yatube/internal/pkg/dberrors"
)

// IFollowRepository defines the interface for follow-related database operations
type IFollowRepository interface {
	Create(ctx context.Context, followerID, authorID int64) error
	Delete(ctx context.Context, followerID, authorID int64) error
	Exists(ctx context.Context, followerID, authorID int64) (bool, error)
	CountFollowers(ctx context.Context, authorID int64) (int64, error)
}

// FollowRepository handles database operations for follow relations
type FollowRepository struct {
	db *pgxpool.Pool
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create adds a follow relation. Creating an already existing relation is
// a no-op, so repeated follow requests stay idempotent.
func (r *FollowRepository) Create(ctx context.Context, followerID, authorID int64) error {
	query := squirrel.Insert("follows").
		Columns("follower_id", "author_id").
		Values(followerID, authorID).
		Suffix("ON CONFLICT (follower_id, author_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		// The author can be deleted between the service check and the insert
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// Delete removes a follow relation
func (r *FollowRepository) Delete(ctx context.Context, followerID, authorID int64) error {
	query := squirrel.Delete("follows").
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrFollowNotFound
	}

	return nil
}

// Exists checks if a user follows an author
func (r *FollowRepository) Exists(ctx context.Context, followerID, authorID int64) (bool, error) {
	query := squirrel.Select("1").
		From("follows").
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// CountFollowers returns the number of followers an author has
func (r *FollowRepository) CountFollowers(ctx context.Context, authorID int64) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("follows").
		Where("author_id = ?", authorID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}
