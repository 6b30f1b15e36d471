// Package flash carries a one-shot message across a redirect in a cookie.
package flash

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

const (
	CookieName = "flash"
	maxAge     = 60
	// the message is also stashed on the context so a page rendered in the
	// same request can show it
	contextKey = "flash"
)

type state struct {
	msg      string
	consumed bool
}

// Set queues msg for the next rendered page.
func Set(c echo.Context, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(contextKey, &state{msg: msg})
}

// Pop returns the pending message, if any, and clears it. Later calls in
// the same request return "".
func Pop(c echo.Context) string {
	if st, ok := c.Get(contextKey).(*state); ok {
		if st.consumed {
			return ""
		}
		st.consumed = true
		expire(c)
		return st.msg
	}
	c.Set(contextKey, &state{consumed: true})

	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return ""
	}
	expire(c)
	msg, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return msg
}

func expire(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
