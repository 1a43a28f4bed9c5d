package dto

import (
	"time"

	"github.com/yatube/yatube/internal/app/models"
)

// --- Request DTOs ---

// PostFormRequest carries the creation/edit form fields. The optional image
// is handled separately in the multipart form.
type PostFormRequest struct {
	Text    string `json:"text" form:"text" binding:"required" example:"A new post text"`
	GroupID *int64 `json:"groupId" form:"groupId" binding:"omitempty,gt=0" example:"1"`
}

// --- Response DTOs ---

// PostResponse represents a single post
type PostResponse struct {
	ID       int64          `json:"id" example:"1"`
	Text     string         `json:"text" example:"A new post text"`
	PubDate  time.Time      `json:"pubDate" example:"2025-04-23T12:00:00Z"`
	Author   UserResponse   `json:"author"`
	Group    *GroupResponse `json:"group,omitempty"`
	ImageURL string         `json:"imageUrl,omitempty" example:"/media/2f1e7f0a.gif"`
}

// PostListResponse represents one page of posts with pagination metadata
type PostListResponse struct {
	Posts      []PostResponse `json:"posts"`
	Pagination PaginationInfo `json:"pagination"`
}

// PostDetailResponse is the payload of the post detail page: the post, its
// author's total post count, and the post's comments oldest first.
type PostDetailResponse struct {
	Post      PostResponse      `json:"post"`
	PostCount int64             `json:"postCount" example:"13"`
	Comments  []CommentResponse `json:"comments"`
}

// PostFormResponse is the payload of the creation/edit form page. Post is
// set only when editing, pre-filled with the current values.
type PostFormResponse struct {
	IsEdit bool            `json:"isEdit" example:"false"`
	Post   *PostResponse   `json:"post,omitempty"`
	Groups []GroupResponse `json:"groups"`
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
}

// FromPost converts a models.Post to a PostResponse
func FromPost(post *models.Post) PostResponse {
	if post == nil {
		return PostResponse{}
	}

	resp := PostResponse{
		ID:      post.ID,
		Text:    post.Text,
		PubDate: post.PubDate,
	}
	if post.Author != nil {
		resp.Author = FromUser(post.Author)
	}
	if post.Group != nil {
		group := FromGroup(post.Group)
		resp.Group = &group
	}
	if post.ImageURL != nil {
		resp.ImageURL = *post.ImageURL
	}
	return resp
}

// FromPosts converts a slice of posts preserving order
func FromPosts(posts []models.Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, FromPost(&posts[i]))
	}
	return responses
}
