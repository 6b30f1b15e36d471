package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"personal-blog/internal/api"
	"personal-blog/internal/cache"
	"personal-blog/internal/database"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func restoreGlobals() {
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc = func(code int) {}
}

func setEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("REDIS_ADDR", "127")
	t.Setenv("REDIS_DB", "1")
	t.Setenv("REDIS_PASSWORD", "pw")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("ADDR", "")
}

func TestCustomValidator(t *testing.T) {
	cv := newValidator()
	type s struct {
		Name string `validate:"required"`
	}
	require.NoError(t, cv.Validate(&s{Name: "ok"}))
	require.Error(t, cv.Validate(&s{}))

	// field errors are keyed by form field name
	errs := api.FieldErrors(cv.Validate(&api.PostRequest{Title: "t", Subtitle: "s", Body: "b", ImgURL: "nope"}))
	require.Equal(t, map[string]string{"img_url": "Enter a valid URL."}, errs)
}

func TestLoadConfig(t *testing.T) {
	setEnv(t)
	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, defaultAddr, cfg.addr)
	require.Equal(t, defaultSessionTTL, cfg.sessionTTL)
	require.Equal(t, 1, cfg.redisDB)

	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("ADDR", ":9000")
	t.Setenv("REDIS_PASSWORD", "")
	cfg, err = loadConfig()
	require.NoError(t, err)
	require.Equal(t, 2*time.Hour, cfg.sessionTTL)
	require.Equal(t, ":9000", cfg.addr)
	require.Empty(t, cfg.redisPassword)

	t.Setenv("SESSION_TTL", "soon")
	_, err = loadConfig()
	require.Error(t, err)
	t.Setenv("SESSION_TTL", "-1h")
	_, err = loadConfig()
	require.Error(t, err)
}

func TestRunSuccess(t *testing.T) {
	t.Cleanup(restoreGlobals)
	called := make(map[string]bool)
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, "db", url)
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127", addr)
		require.Equal(t, "pw", pwd)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		require.Equal(t, ":8080", addr)
		require.NotNil(t, e.Renderer)

		paths := map[string]bool{}
		for _, r := range e.Routes() {
			paths[r.Path] = true
		}
		require.True(t, paths["/swagger/*"])
		require.True(t, paths["/"])
		return nil
	}

	setEnv(t)

	require.NoError(t, run())
	require.True(t, called["pgx"])
	require.True(t, called["redis"])
	require.True(t, called["migrate"])
	require.True(t, called["start"])
	require.True(t, called["dbClose"])
	require.True(t, called["redisClose"])
}

// startTestServer runs run() with fakes and returns the configured Echo.
func startTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	t.Cleanup(restoreGlobals)
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	runMigrationsFn = func(string) error { return nil }

	var srv *echo.Echo
	startServer = func(e *echo.Echo, addr string) error { srv = e; return nil }
	setEnv(t)
	require.NoError(t, run())
	require.NotNil(t, srv)
	return srv
}

// csrfToken fetches the login form and returns the issued CSRF cookie.
func csrfToken(t *testing.T, srv *echo.Echo) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "_csrf" {
			return ck
		}
	}
	t.Fatal("no _csrf cookie issued")
	return nil
}

func postForm(srv *echo.Echo, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestRunCSRF(t *testing.T) {
	srv := startTestServer(t)

	// a form post without the token never reaches the handler
	rec := postForm(srv, "/login", "email=a%40b.co&password=x")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), msgFormExpired)

	// the form page hands out a token
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `name="_csrf"`)
	require.Contains(t, rec.Header().Get(echo.HeaderSetCookie), "_csrf=")

	// a mismatched token is rejected the same way
	ck := csrfToken(t, srv)
	rec = postForm(srv, "/login", "_csrf=wrong&email=a%40b.co&password=x", ck)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRunAdminRoutesForbiddenForAnonymous(t *testing.T) {
	srv := startTestServer(t)
	ck := csrfToken(t, srv)
	form := "title=T&subtitle=S&img_url=https%3A%2F%2Fa.b%2Fc.jpg&body=b"

	for _, path := range []string{"/new-post", "/edit-post/1"} {
		// without a form token
		rec := postForm(srv, path, form)
		require.Equal(t, http.StatusForbidden, rec.Code, "POST %s without token", path)

		// with a valid form token the admin guard answers
		rec = postForm(srv, path, form+"&_csrf="+ck.Value, ck)
		require.Equal(t, http.StatusForbidden, rec.Code, "POST %s with token", path)
		require.Contains(t, rec.Body.String(), "login required")
	}
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)
	setEnv(t)

	t.Setenv("DATABASE_URL", "")
	require.Error(t, run())
	t.Setenv("DATABASE_URL", "db")

	t.Setenv("SESSION_SECRET", "")
	require.Error(t, run())
	t.Setenv("SESSION_SECRET", "short")
	require.Error(t, run())
	t.Setenv("SESSION_SECRET", testSecret)

	t.Setenv("REDIS_ADDR", "")
	require.Error(t, run())
	t.Setenv("REDIS_ADDR", "addr")
	t.Setenv("REDIS_DB", "")
	require.Error(t, run())
	t.Setenv("REDIS_DB", "bad")
	require.Error(t, run())
	t.Setenv("REDIS_DB", "0")

	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.Error(t, run())

	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.Error(t, run())

	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.Error(t, run())

	runMigrationsFn = func(string) error { return nil }
	startServer = func(*echo.Echo, string) error { return errors.New("start") }
	require.Error(t, run())
}

func TestMainFunction(t *testing.T) {
	t.Cleanup(restoreGlobals)
	startServer = func(*echo.Echo, string) error { return nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	runMigrationsFn = func(string) error { return nil }
	setEnv(t)
	main()
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("fail") }
	setEnv(t)
	main()
	require.Equal(t, 1, exitCode)
}
