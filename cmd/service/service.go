// @title        Personal Blog
// @version      1.0
// @description  Server-rendered personal blog: posts, comments and accounts. Form routes answer with HTML pages or redirects.
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"personal-blog/internal/cache"
	"personal-blog/internal/database"
	"personal-blog/internal/router"
	"personal-blog/internal/service"
	"personal-blog/internal/view"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "personal-blog/docs" // swag generated docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	defaultAddr       = ":8080"
	defaultSessionTTL = 7 * 24 * time.Hour
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// newValidator reports field errors under their form field names.
func newValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

var (
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

type config struct {
	dbURL         string
	sessionSecret string
	sessionTTL    time.Duration
	redisAddr     string
	redisDB       int
	redisPassword string
	addr          string
}

func loadConfig() (config, error) {
	cfg := config{
		dbURL:         os.Getenv("DATABASE_URL"),
		sessionSecret: os.Getenv("SESSION_SECRET"),
		redisAddr:     os.Getenv("REDIS_ADDR"),
		redisPassword: os.Getenv("REDIS_PASSWORD"),
		sessionTTL:    defaultSessionTTL,
		addr:          defaultAddr,
	}
	if cfg.dbURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.sessionSecret == "" {
		return cfg, fmt.Errorf("SESSION_SECRET is not set")
	}
	if len(cfg.sessionSecret) < service.MinSecretLength {
		return cfg, fmt.Errorf("SESSION_SECRET must be at least %d bytes", service.MinSecretLength)
	}
	if cfg.redisAddr == "" {
		return cfg, fmt.Errorf("REDIS_ADDR is not set")
	}

	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		return cfg, fmt.Errorf("REDIS_DB is not set")
	}
	redisIndex, err := strconv.Atoi(redisDBStr)
	if err != nil {
		return cfg, fmt.Errorf("invalid REDIS_DB: %v", err)
	}
	cfg.redisDB = redisIndex

	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return cfg, fmt.Errorf("invalid SESSION_TTL %q", v)
		}
		cfg.sessionTTL = ttl
	}
	if v := os.Getenv("ADDR"); v != "" {
		cfg.addr = v
	}
	return cfg, nil
}

// skipNonForms leaves the JSON and docs routes out of CSRF checks.
func skipNonForms(c echo.Context) bool {
	p := c.Request().URL.Path
	return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/swagger/")
}

const msgFormExpired = "Your form has expired. Please reload the page and try again."

// csrfError rejects a missing or mismatched form token with 403, the same
// status the admin guard uses, so an unauthorized form post never sees 400.
func csrfError(err error, c echo.Context) error {
	c.Logger().Debugf("csrf: %v", err)
	return echo.NewHTTPError(http.StatusForbidden, msgFormExpired)
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := newPgxPool(context.Background(), cfg.dbURL)
	if err != nil {
		return fmt.Errorf("connect database: %v", err)
	}
	defer db.Close()

	redis, err := newRedisClient(cfg.redisAddr, cfg.redisPassword, cfg.redisDB)
	if err != nil {
		return fmt.Errorf("connect redis: %v", err)
	}
	defer redis.Close()

	if err := runMigrationsFn(cfg.dbURL); err != nil {
		return fmt.Errorf("run migrations: %v", err)
	}

	sessions, err := service.NewSessions([]byte(cfg.sessionSecret), cfg.sessionTTL, redis)
	if err != nil {
		return fmt.Errorf("sessions: %v", err)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return fmt.Errorf("load templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()
	e.Renderer = renderer
	e.HTTPErrorHandler = view.HTTPErrorHandler(e)
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		Skipper:        skipNonForms,
		TokenLookup:    "form:_csrf",
		ContextKey:     view.CSRFContextKey,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
		ErrorHandler:   csrfError,
	}))

	router.Setup(e, db, redis, sessions)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, cfg.addr)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
