// File: internal/handler/auth/register.go
package auth

import (
	"errors"
	"net/http"

	"personal-blog/internal/api"
	"personal-blog/internal/database"
	"personal-blog/internal/flash"
	"personal-blog/internal/middleware"
	"personal-blog/internal/sanitizer"
	"personal-blog/internal/service"
	"personal-blog/internal/view"

	"github.com/labstack/echo/v4"
)

var registerUser = service.RegisterUser

// RegisterPageHandler renders the empty registration form.
func RegisterPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "register.html", view.NewPage(c, "Register"))
	}
}

// RegisterHandler creates an account and logs it in.
// @Summary     Register
// @Description Creates an account with a hashed password and starts a session. A duplicate email redirects to /login.
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     html
// @Param       email    formData string true "Email"
// @Param       password formData string true "Password (8-72 characters)"
// @Param       name     formData string true "Display name"
// @Success     303 "Redirect to / (or /login when the email is taken)"
// @Failure     400 "Form re-rendered with field errors"
// @Router      /register [post]
func RegisterHandler(db database.DB, sessions *service.Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return renderRegister(c, http.StatusBadRequest, req, map[string]string{api.FormErrorKey: msgBadForm})
		}
		if err := c.Validate(&req); err != nil {
			return renderRegister(c, http.StatusBadRequest, req, api.FieldErrors(err))
		}

		name := sanitizer.PlainText(req.Name)
		if name == "" {
			return renderRegister(c, http.StatusBadRequest, req, map[string]string{"name": "This field is required."})
		}

		user, err := registerUser(c.Request().Context(), db, name, req.Email, req.Password)
		if errors.Is(err, service.ErrDuplicateAccount) {
			flash.Set(c, msgDuplicateAccount)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		if errors.Is(err, service.ErrPasswordTooLong) {
			return renderRegister(c, http.StatusBadRequest, req, map[string]string{"password": msgPasswordTooLong})
		}
		if err != nil {
			c.Logger().Errorf("register: %v", err)
			return renderRegister(c, http.StatusServiceUnavailable, req, map[string]string{api.FormErrorKey: msgRegisterFailed})
		}

		token, expires, err := sessions.Issue(*user)
		if err != nil {
			c.Logger().Errorf("register: issue session: %v", err)
			flash.Set(c, msgRegisteredLogIn)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		middleware.SetSessionCookie(c, user, token, expires)
		return c.Redirect(http.StatusSeeOther, "/")
	}
}

// renderRegister never echoes the password back.
func renderRegister(c echo.Context, code int, req api.RegisterRequest, errs map[string]string) error {
	page := view.NewPage(c, "Register")
	page.Form = map[string]string{"email": req.Email, "name": req.Name}
	page.Errors = errs
	return c.Render(code, "register.html", page)
}
