package posts

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"personal-blog/internal/database"
	"personal-blog/internal/middleware"
	"personal-blog/internal/model"
	"personal-blog/internal/store"
	"personal-blog/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var (
	admin  = &model.User{ID: 1, Name: "Admin", IsAdmin: true}
	reader = &model.User{ID: 2, Name: "Reader"}
)

func restoreSeams() {
	listPosts = store.ListPosts
	getPostByID = store.GetPostByID
	createPost = store.CreatePost
	updatePost = store.UpdatePost
	deletePost = store.DeletePost
	createComment = store.CreateComment
	listComments = store.ListCommentsByPost
	timeNow = time.Now
}

// failStore makes every store call fail the test unless a test overrides it.
func failStore(t *testing.T) {
	t.Helper()
	t.Cleanup(restoreSeams)
	listPosts = func(context.Context, database.DB) ([]model.Post, error) {
		t.Fatal("unexpected listPosts")
		return nil, nil
	}
	getPostByID = func(context.Context, database.DB, int) (*model.Post, error) {
		t.Fatal("unexpected getPostByID")
		return nil, nil
	}
	createPost = func(context.Context, database.DB, *model.Post) error {
		t.Fatal("unexpected createPost")
		return nil
	}
	updatePost = func(context.Context, database.DB, *model.Post) error {
		t.Fatal("unexpected updatePost")
		return nil
	}
	deletePost = func(context.Context, database.DB, int) error {
		t.Fatal("unexpected deletePost")
		return nil
	}
	createComment = func(context.Context, database.DB, *model.Comment) error {
		t.Fatal("unexpected createComment")
		return nil
	}
	listComments = func(context.Context, database.DB, int) ([]model.Comment, error) {
		return nil, nil
	}
}

func havePost(p *model.Post) {
	getPostByID = func(_ context.Context, _ database.DB, id int) (*model.Post, error) {
		if id != p.ID {
			return nil, store.ErrNotFound
		}
		cp := *p
		return &cp, nil
	}
}

type errBinder struct{}

func (errBinder) Bind(i any, c echo.Context) error { return errors.New("bind") }

type errValidator struct{}

func (errValidator) Validate(i any) error { return errors.New("v") }

type okValidator struct{}

func (okValidator) Validate(i any) error { return nil }

type stubRenderer struct {
	name string
	page *view.Page
}

func (r *stubRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	r.name = name
	r.page, _ = data.(*view.Page)
	_, err := io.WriteString(w, name)
	return err
}

func newEcho() (*echo.Echo, *stubRenderer) {
	e := echo.New()
	r := &stubRenderer{}
	e.Renderer = r
	e.Validator = okValidator{}
	return e, r
}

// newCtx builds a request context for user (nil for anonymous) with the
// given :post_id.
func newCtx(e *echo.Echo, method, body string, user *model.User, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if id != "" {
		ctx.SetParamNames("post_id")
		ctx.SetParamValues(id)
	}
	if user != nil {
		ctx.Set(middleware.ContextUserKey, user)
	}
	return ctx, rec
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, code, he.Code)
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, code int, loc string) {
	t.Helper()
	require.Equal(t, code, rec.Code)
	require.Equal(t, loc, rec.Header().Get(echo.HeaderLocation))
}

