package api

// PostRequest backs both the create and edit post forms.
// swagger:model api.PostRequest
type PostRequest struct {
	Title    string `form:"title" validate:"required,max=250" example:"The Life of Cactus"`
	Subtitle string `form:"subtitle" validate:"required,max=250" example:"Who knew cacti lived such interesting lives."`
	ImgURL   string `form:"img_url" validate:"required,url,max=250" example:"https://images.example.com/cactus.jpg"`
	Body     string `form:"body" validate:"required" example:"<p>Nori grape silver beet...</p>"`
}
