package auth

import (
	"net/http"

	"personal-blog/internal/middleware"
	"personal-blog/internal/service"

	"github.com/labstack/echo/v4"
)

// LogoutHandler revokes the session token, clears the cookie and returns
// to the post listing. It succeeds whether or not anyone is logged in.
// @Summary     Log out
// @Tags        auth
// @Success     302 "Redirect to /"
// @Router      /logout [get]
func LogoutHandler(sessions *service.Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ck, err := c.Cookie(middleware.SessionCookieName); err == nil && ck.Value != "" {
			if err := sessions.Revoke(c.Request().Context(), ck.Value); err != nil {
				// the cookie is still cleared; the token lives until it expires
				c.Logger().Warnf("logout: %v", err)
			}
		}
		middleware.ClearSessionCookie(c)
		return c.Redirect(http.StatusFound, "/")
	}
}
