package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yatube/yatube/internal/app/models"
	"github.com/yatube/yatube/internal/pkg/apperrors"
	"github.com/yatube/yatube/internal/pkg/dberrors"
)

// IGroupRepository defines the interface for group-related database operations
type IGroupRepository interface {
	GetAll(ctx context.Context) ([]models.Group, error)
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	Create(ctx context.Context, group *models.Group) (int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// GroupRepository handles database operations for groups
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

// GetAll retrieves all groups ordered by title
func (r *GroupRepository) GetAll(ctx context.Context) ([]models.Group, error) {
	query := squirrel.Select("id", "title", "slug", "description", "created_at").
		From("groups").
		OrderBy("title").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var group models.Group
		err := rows.Scan(
			&group.ID,
			&group.Title,
			&group.Slug,
			&group.Description,
			&group.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return groups, nil
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	query := squirrel.Select("id", "title", "slug", "description", "created_at").
		From("groups").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var group models.Group
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&group.ID,
		&group.Title,
		&group.Slug,
		&group.Description,
		&group.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &group, nil
}

// GetBySlug retrieves a group by its URL slug
func (r *GroupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	query := squirrel.Select("id", "title", "slug", "description", "created_at").
		From("groups").
		Where("slug = ?", slug).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var group models.Group
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&group.ID,
		&group.Title,
		&group.Slug,
		&group.Description,
		&group.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &group, nil
}

// Create creates a new group
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) (int64, error) {
	query := squirrel.Insert("groups").
		Columns("title", "slug", "description").
		Values(group.Title, group.Slug, group.Description).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrGroupAlreadyExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// SlugExists checks if a group slug is already taken
func (r *GroupRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM groups WHERE slug = $1)`,
		slug).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking slug: %w", err)
	}

	return exists, nil
}
