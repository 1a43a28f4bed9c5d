package dto

// PageQuery carries the page number shared by every paginated listing.
// Values below 1 and unparsable input are treated as the first page.
type PageQuery struct {
	Page int `form:"page" json:"page" example:"1"`
}
