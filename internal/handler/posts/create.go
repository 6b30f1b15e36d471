package posts

import (
	"errors"
	"net/http"
	"strings"

	"personal-blog/internal/api"
	"personal-blog/internal/database"
	"personal-blog/internal/middleware"
	"personal-blog/internal/model"
	"personal-blog/internal/sanitizer"
	"personal-blog/internal/store"

	"github.com/labstack/echo/v4"
)

// NewPostPageHandler renders the empty post editor.
func NewPostPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return renderEditor(c, http.StatusOK, nil, nil, nil)
	}
}

// bindPost binds, validates and sanitizes the editor form. On failure it
// returns the status and field errors to re-render with.
func bindPost(c echo.Context) (api.PostRequest, int, map[string]string) {
	var req api.PostRequest
	if err := c.Bind(&req); err != nil {
		return req, http.StatusBadRequest, map[string]string{api.FormErrorKey: msgBadForm}
	}
	if err := c.Validate(&req); err != nil {
		return req, http.StatusBadRequest, api.FieldErrors(err)
	}

	clean := api.PostRequest{
		Title:    sanitizer.PlainText(req.Title),
		Subtitle: sanitizer.PlainText(req.Subtitle),
		ImgURL:   strings.TrimSpace(req.ImgURL),
		Body:     sanitizer.RichText(req.Body),
	}
	errs := map[string]string{}
	if clean.Title == "" {
		errs["title"] = msgRequired
	}
	if clean.Subtitle == "" {
		errs["subtitle"] = msgRequired
	}
	if clean.Body == "" {
		errs["body"] = msgRequired
	}
	if len(errs) > 0 {
		return req, http.StatusBadRequest, errs
	}
	return clean, 0, nil
}

// saveError turns a store failure into the status and errors for the
// editor. Only a title collision is attributed to a field.
func saveError(c echo.Context, op string, err error) (int, map[string]string) {
	if errors.Is(err, store.ErrDuplicate) {
		return http.StatusConflict, map[string]string{"title": msgDuplicateTitle}
	}
	c.Logger().Errorf("%s: %v", op, err)
	return http.StatusServiceUnavailable, map[string]string{api.FormErrorKey: msgSaveFailed}
}

// CreatePostHandler publishes a new post authored by the current admin,
// dated today.
// @Summary     Create post
// @Tags        posts
// @Accept      application/x-www-form-urlencoded
// @Produce     html
// @Param       title    formData string true "Title (unique)"
// @Param       subtitle formData string true "Subtitle"
// @Param       img_url  formData string true "Cover image URL"
// @Param       body     formData string true "Body (HTML)"
// @Success     303 "Redirect to /"
// @Failure     400 "Editor re-rendered with field errors"
// @Failure     403 "not an admin"
// @Failure     409 "title already used"
// @Router      /new-post [post]
func CreatePostHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok || !user.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden)
		}

		req, code, errs := bindPost(c)
		if errs != nil {
			return renderEditor(c, code, nil, formFromRequest(req), errs)
		}

		post := &model.Post{
			Title:    req.Title,
			Subtitle: req.Subtitle,
			Date:     timeNow().Format(DateLayout),
			Body:     req.Body,
			ImgURL:   req.ImgURL,
			AuthorID: user.ID,
		}
		if err := createPost(c.Request().Context(), db, post); err != nil {
			code, errs = saveError(c, "create post", err)
			return renderEditor(c, code, nil, formFromRequest(req), errs)
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}
}
