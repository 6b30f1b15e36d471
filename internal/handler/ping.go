package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"personal-blog/internal/api"
	"personal-blog/internal/cache"
	"personal-blog/internal/database"

	"github.com/labstack/echo/v4"
)

const healthValue = "pong"

// PingHandler reports whether the database and the session cache are reachable.
// The cache check writes a key and reads it back, the same two calls that
// logging out and session lookup depend on.
// @Summary     Health Check
// @Description Returns pong once the database and the session cache both answer
// @Tags        health
// @Produce     json
// @Success     200 {object} api.PingResponse
// @Failure     503 {object} api.ErrorResponse
// @Router      /api/ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			c.Logger().Errorf("ping database: %v", err)
			return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "database unhealthy"})
		}
		if err := roundTrip(c, cch); err != nil {
			c.Logger().Errorf("ping cache: %v", err)
			return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, api.PingResponse{Message: healthValue})
	}
}

func roundTrip(c echo.Context, cch cache.Cache) error {
	ctx := c.Request().Context()
	if err := cch.Set(ctx, cache.HealthKey, healthValue, time.Minute).Err(); err != nil {
		return fmt.Errorf("set: %w", err)
	}
	got, err := cch.Get(ctx, cache.HealthKey).Result()
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}
	if got != healthValue {
		return errors.New("read back " + got)
	}
	return nil
}
