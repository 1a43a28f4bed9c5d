package dto

import "github.com/yatube/yatube/internal/app/models"

// GroupResponse represents basic group information
type GroupResponse struct {
	ID          int64  `json:"id" example:"1"`
	Title       string `json:"title" example:"Classic prose"`
	Slug        string `json:"slug" example:"classic-prose"`
	Description string `json:"description" example:"Long reads from the nineteenth century"`
}

// GroupPageResponse is the payload of the group page: the group's metadata
// plus one page of its posts.
type GroupPageResponse struct {
	Group      GroupResponse  `json:"group"`
	Posts      []PostResponse `json:"posts"`
	Pagination PaginationInfo `json:"pagination"`
}

// GroupListResponse represents all groups, used by the post form to populate
// the group choices.
type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// FromGroup converts a models.Group to a GroupResponse
func FromGroup(group *models.Group) GroupResponse {
	if group == nil {
		return GroupResponse{}
	}
	return GroupResponse{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
}

// FromGroups converts a slice of groups preserving order
func FromGroups(groups []models.Group) []GroupResponse {
	responses := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		responses = append(responses, FromGroup(&groups[i]))
	}
	return responses
}
