package dto

// ListActivityParams are the query parameters for the activity log.
type ListActivityParams struct {
	BranchID string `form:"branch_id" binding:"required"`
	Limit    int    `form:"limit"`
}
