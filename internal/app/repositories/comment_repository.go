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

// ICommentRepository defines the interface for comment-related database operations
type ICommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	GetByPostID(ctx context.Context, postID int64) ([]models.Comment, error)
}

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	query := squirrel.Insert("comments").
		Columns("post_id", "author_id", "text").
		Values(comment.PostID, comment.AuthorID, comment.Text).
		Suffix("RETURNING id, created").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id, &comment.Created)
	if err != nil {
		// The post can disappear between the service check and the insert
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	comment.ID = id
	return id, nil
}

// GetByID retrieves a comment by ID with its author populated
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := squirrel.Select(
		"c.id", "c.post_id", "c.author_id", "c.text", "c.created",
		"u.username", "u.first_name", "u.last_name",
	).
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Where("c.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var comment models.Comment
	var author models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Text,
		&comment.Created,
		&author.Username,
		&author.FirstName,
		&author.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	author.ID = comment.AuthorID
	comment.Author = &author

	return &comment, nil
}

// GetByPostID retrieves all comments for a post, oldest first
func (r *CommentRepository) GetByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := squirrel.Select(
		"c.id", "c.post_id", "c.author_id", "c.text", "c.created",
		"u.username", "u.first_name", "u.last_name",
	).
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Where("c.post_id = ?", postID).
		OrderBy("c.created ASC", "c.id ASC").
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

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		var author models.User
		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Text,
			&comment.Created,
			&author.Username,
			&author.FirstName,
			&author.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}

		author.ID = comment.AuthorID
		comment.Author = &author
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return comments, nil
}

