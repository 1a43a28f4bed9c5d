package dto

// AboutPageResponse is the payload of a static informational page
type AboutPageResponse struct {
	Title      string   `json:"title" example:"About the author"`
	Paragraphs []string `json:"paragraphs"`
}
