package dto

import (
	"time"

	"github.com/yatube/yatube/internal/app/models"
)

// CreateCommentRequest represents comment creation data
type CreateCommentRequest struct {
	Text string `json:"text" form:"text" binding:"required" example:"Well said"`
}

// CommentResponse represents a single comment on a post
type CommentResponse struct {
	ID      int64        `json:"id" example:"1"`
	Text    string       `json:"text" example:"Well said"`
	Author  UserResponse `json:"author"`
	Created time.Time    `json:"created" example:"2025-04-23T12:05:00Z"`
}

// FromComment converts a models.Comment to a CommentResponse
func FromComment(comment *models.Comment) CommentResponse {
	if comment == nil {
		return CommentResponse{}
	}

	resp := CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		Created: comment.Created,
	}
	if comment.Author != nil {
		resp.Author = FromUser(comment.Author)
	}
	return resp
}

// FromComments converts a slice of comments preserving order
func FromComments(comments []models.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, FromComment(&comments[i]))
	}
	return responses
}
