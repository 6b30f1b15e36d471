package view

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders error.html for browser routes. API and docs
// routes, and any failure to render, fall back to Echo's JSON handler.
func HTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		p := c.Request().URL.Path
		if strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/swagger/") {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			c.Logger().Error(err)
			he = echo.NewHTTPError(http.StatusInternalServerError)
		}

		page := NewPage(c, http.StatusText(he.Code))
		page.Status = he.Code
		page.Message = errorMessage(he)
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.Render(he.Code, "error.html", page)
		}
		if err != nil {
			c.Logger().Error(err)
			e.DefaultHTTPErrorHandler(he, c)
		}
	}
}

func errorMessage(he *echo.HTTPError) string {
	if he.Code >= http.StatusInternalServerError {
		return "Something went wrong on our side. Please try again later."
	}
	if msg, ok := he.Message.(string); ok && msg != "" {
		return msg
	}
	return http.StatusText(he.Code)
}
