package middleware

import (
	"errors"
	"net/http"
	"time"

	"personal-blog/internal/database"
	"personal-blog/internal/model"
	"personal-blog/internal/service"
	"personal-blog/internal/store"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserKey    = "user"
	SessionCookieName = "session"
)

var getUserByID = store.GetUserByID

// LoadSession resolves the session cookie to a user and stores it under
// ContextUserKey. It never rejects a request: anything short of a valid,
// unrevoked token for an existing user leaves the visitor anonymous.
func LoadSession(db database.DB, sessions *service.Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookieName)
			if err != nil || ck.Value == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			claims, err := sessions.Verify(ctx, ck.Value)
			if errors.Is(err, service.ErrInvalidSession) {
				ClearSessionCookie(c)
				return next(c)
			}
			if err != nil {
				// revocation list unreachable; keep the cookie for the next request
				c.Logger().Warnf("session verify: %v", err)
				return next(c)
			}

			user, err := getUserByID(ctx, db, claims.UserID)
			if errors.Is(err, store.ErrNotFound) {
				ClearSessionCookie(c)
				return next(c)
			}
			if err != nil {
				c.Logger().Errorf("session user lookup: %v", err)
				return next(c)
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the logged-in user, if any.
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(ContextUserKey).(*model.User)
	return u, ok && u != nil
}

// SetSessionCookie stores token and marks the request as logged in as user,
// so a page rendered in the same request already sees the session.
func SetSessionCookie(c echo.Context, user *model.User, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(ContextUserKey, user)
}

// ClearSessionCookie expires the session cookie and forgets the user.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(ContextUserKey, (*model.User)(nil))
}
