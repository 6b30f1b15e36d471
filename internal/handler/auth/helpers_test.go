package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"personal-blog/internal/cache"
	"personal-blog/internal/flash"
	"personal-blog/internal/middleware"
	"personal-blog/internal/service"
	"personal-blog/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func restoreSeams() {
	registerUser = service.RegisterUser
	logIn = service.LogIn
}

type errBinder struct{}

func (errBinder) Bind(i any, c echo.Context) error { return errors.New("bind") }

type errValidator struct{ err error }

func (v errValidator) Validate(i any) error {
	if v.err != nil {
		return v.err
	}
	return errors.New("v")
}

type okValidator struct{}

func (okValidator) Validate(i any) error { return nil }

// stubRenderer records the last rendered template and page.
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

func newFormCtx(e *echo.Echo, method, body string, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newSessions(t *testing.T, cch cache.Cache) *service.Sessions {
	t.Helper()
	if cch == nil {
		cch = &cache.FakeCache{}
	}
	s, err := service.NewSessions(testSecret, time.Hour, cch)
	require.NoError(t, err)
	return s
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			return ck
		}
	}
	return nil
}

func notRevoked() *cache.FakeCache {
	return &cache.FakeCache{GetFn: func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult("", redis.Nil)
	}}
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, code int, loc string) {
	t.Helper()
	require.Equal(t, code, rec.Code)
	require.Equal(t, loc, rec.Header().Get(echo.HeaderLocation))
}

func popFlash(ctx echo.Context) string { return flash.Pop(ctx) }
