package view

import (
	"personal-blog/internal/flash"
	"personal-blog/internal/middleware"
	"personal-blog/internal/model"

	"github.com/labstack/echo/v4"
)

// CSRFContextKey is where the CSRF middleware leaves the token for forms.
const CSRFContextKey = "csrf"

// Page is the data every template receives. Form holds submitted or
// pre-populated input keyed by form field name; Errors holds the matching
// validation messages.
type Page struct {
	Title string
	User  *model.User
	Flash string
	CSRF  string

	Form   map[string]string
	Errors map[string]string

	Posts    []model.Post
	Post     *model.Post
	Comments []model.Comment
	IsEdit   bool

	Status  int
	Message string
}

// NewPage fills in the session, flash and CSRF state for the request.
func NewPage(c echo.Context, title string) *Page {
	p := &Page{Title: title, Flash: flash.Pop(c)}
	if u, ok := middleware.CurrentUser(c); ok {
		p.User = u
	}
	if tok, ok := c.Get(CSRFContextKey).(string); ok {
		p.CSRF = tok
	}
	return p
}

func (p *Page) LoggedIn() bool { return p.User != nil }

func (p *Page) IsAdmin() bool { return p.User != nil && p.User.IsAdmin }
