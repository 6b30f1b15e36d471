package api

// swagger:model api.CommentRequest
type CommentRequest struct {
	Comment string `form:"comment" validate:"required" example:"<p>Great post!</p>"`
}
