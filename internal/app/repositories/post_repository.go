package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yatube/yatube/internal/app/models"
	"github.com/yatube/yatube/internal/pkg/apperrors"
	"github.com/yatube/yatube/internal/pkg/helpers"
)

// PostFilter narrows post listings. Nil fields are ignored.
// FollowerID selects posts whose author is followed by that user.
type PostFilter struct {
	GroupID    *int64
	AuthorID   *int64
	FollowerID *int64
}

// IPostRepository defines the interface for post-related database operations
type IPostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetAll(ctx context.Context, filter PostFilter, page, pageSize int) ([]models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	CountByAuthorID(ctx context.Context, authorID int64) (int64, error)
}

// PostRepository handles database operations for posts
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

// postColumns are the columns selected for every post row, with the author
// joined in and the optional group left-joined.
var postColumns = []string{
	"p.id", "p.text", "p.pub_date", "p.author_id", "p.group_id", "p.image_url", "p.updated_at",
	"u.username", "u.first_name", "u.last_name",
	"g.id", "g.title", "g.slug", "g.description",
}

func (r *PostRepository) baseSelect() squirrel.SelectBuilder {
	return squirrel.Select(postColumns...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("groups g ON g.id = p.group_id").
		PlaceholderFormat(squirrel.Dollar)
}

func applyPostFilter(query squirrel.SelectBuilder, filter PostFilter) squirrel.SelectBuilder {
	if filter.GroupID != nil {
		query = query.Where("p.group_id = ?", *filter.GroupID)
	}
	if filter.AuthorID != nil {
		query = query.Where("p.author_id = ?", *filter.AuthorID)
	}
	if filter.FollowerID != nil {
		query = query.Where(
			"p.author_id IN (SELECT author_id FROM follows WHERE follower_id = ?)",
			*filter.FollowerID,
		)
	}
	return query
}

// scanPost scans a joined post row, populating the author and the optional group
func scanPost(rows pgx.Rows) (models.Post, error) {
	var post models.Post
	var author models.User
	var groupID *int64
	var groupTitle, groupSlug, groupDescription *string

	err := rows.Scan(
		&post.ID,
		&post.Text,
		&post.PubDate,
		&post.AuthorID,
		&post.GroupID,
		&post.ImageURL,
		&post.UpdatedAt,
		&author.Username,
		&author.FirstName,
		&author.LastName,
		&groupID,
		&groupTitle,
		&groupSlug,
		&groupDescription,
	)
	if err != nil {
		return models.Post{}, err
	}

	author.ID = post.AuthorID
	post.Author = &author

	if groupID != nil {
		post.Group = &models.Group{
			ID:          *groupID,
			Title:       *groupTitle,
			Slug:        *groupSlug,
			Description: *groupDescription,
		}
	}

	return post, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := squirrel.Insert("posts").
		Columns("text", "author_id", "group_id", "image_url").
		Values(post.Text, post.AuthorID, post.GroupID, post.ImageURL).
		Suffix("RETURNING id, pub_date").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id, &post.PubDate)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	post.ID = id
	return id, nil
}

// GetByID retrieves a post by ID with its author and group populated
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := r.baseSelect().Where("p.id = ?", id)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading row: %w", err)
		}
		return nil, apperrors.ErrPostNotFound
	}

	post, err := scanPost(rows)
	if err != nil {
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	return &post, nil
}

// GetAll retrieves a page of posts matching the filter, newest first
func (r *PostRepository) GetAll(ctx context.Context, filter PostFilter, page, pageSize int) ([]models.Post, error) {
	query := applyPostFilter(r.baseSelect(), filter).
		OrderBy("p.pub_date DESC", "p.id DESC")

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	query = query.Limit(uint64(limit)).Offset(offset)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return posts, nil
}

// Count returns the total number of posts matching the filter
func (r *PostRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	query := applyPostFilter(
		squirrel.Select("COUNT(*)").
			From("posts p").
			PlaceholderFormat(squirrel.Dollar),
		filter,
	)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return total, nil
}

// Update updates the text, group and image of an existing post.
// The author and publication date never change.
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	query := squirrel.Update("posts").
		Set("text", post.Text).
		Set("group_id", post.GroupID).
		Set("image_url", post.ImageURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", post.ID).
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
		return apperrors.ErrPostNotFound
	}

	return nil
}

// CountByAuthorID returns the number of posts published by an author
func (r *PostRepository) CountByAuthorID(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM posts WHERE author_id = $1`,
		authorID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting posts: %w", err)
	}

	return count, nil
}
