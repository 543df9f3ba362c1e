package dto

// Summary is the platform-wide aggregate served to the admin dashboard.
// totalNewsPublished never exceeds totalNews.
type Summary struct {
	TotalNews          int64 `json:"totalNews"`
	TotalNewsPublished int64 `json:"totalNewsPublished"`
	TotalViews         int64 `json:"totalViews"`
	TotalComments      int64 `json:"totalComments"`
}
