package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Email    string `form:"email" validate:"required,email,max=250" example:"alice@example.com"`
	Password string `form:"password" validate:"required,min=8,max=72" example:"Secret123!"`
	Name     string `form:"name" validate:"required,max=250" example:"Alice"`
}
