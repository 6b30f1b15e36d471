// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"personal-blog/internal/api"
	"personal-blog/internal/database"
	"personal-blog/internal/flash"
	"personal-blog/internal/middleware"
	"personal-blog/internal/service"
	"personal-blog/internal/view"

	"github.com/labstack/echo/v4"
)

var logIn = service.LogIn

// LoginPageHandler renders the login form.
func LoginPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "login.html", view.NewPage(c, "Log In"))
	}
}

// LoginHandler checks email and password and starts a session.
// @Summary     Log in
// @Description Verifies email and password and sets the session cookie. Every failure redirects back to /login with a message.
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     html
// @Param       email    formData string true "Email"
// @Param       password formData string true "Password"
// @Success     303 "Redirect to /"
// @Failure     400 "Form re-rendered with field errors"
// @Router      /login [post]
func LoginHandler(db database.DB, sessions *service.Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return renderLogin(c, req, map[string]string{api.FormErrorKey: msgBadForm})
		}
		if err := c.Validate(&req); err != nil {
			return renderLogin(c, req, api.FieldErrors(err))
		}

		user, err := logIn(c.Request().Context(), db, req.Email, req.Password)
		switch {
		case errors.Is(err, service.ErrUnknownAccount):
			return loginFailed(c, msgUnknownAccount)
		case errors.Is(err, service.ErrInvalidCredentials):
			return loginFailed(c, msgBadPassword)
		case err != nil:
			c.Logger().Errorf("login: %v", err)
			return loginFailed(c, msgLoginFailed)
		}

		token, expires, err := sessions.Issue(*user)
		if err != nil {
			c.Logger().Errorf("login: issue session: %v", err)
			return loginFailed(c, msgLoginFailed)
		}
		middleware.SetSessionCookie(c, user, token, expires)
		return c.Redirect(http.StatusSeeOther, "/")
	}
}

func loginFailed(c echo.Context, msg string) error {
	flash.Set(c, msg)
	return c.Redirect(http.StatusSeeOther, "/login")
}

func renderLogin(c echo.Context, req api.LoginRequest, errs map[string]string) error {
	page := view.NewPage(c, "Log In")
	page.Form = map[string]string{"email": req.Email}
	page.Errors = errs
	return c.Render(http.StatusBadRequest, "login.html", page)
}
