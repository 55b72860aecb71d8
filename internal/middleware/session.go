package middleware // reusable HTTP middleware for the task service

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-vault/internal/repository"
	"github.com/iliyamo/task-vault/internal/session"
)

// CookieName is the cookie the session token travels in. Non-browser
// clients may send the same token as "Authorization: Bearer <token>".
const CookieName = "session_token"

// userIDKey is the echo context key the guard stores the caller's id
// under. Handlers read it through UserID below instead of touching the
// key directly.
const userIDKey = "user_id"

// unauthorized is the single 401 body the guard ever produces. The
// redirect hint tells UI callers where to send the user; API callers
// can ignore it.
func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"error":    "authentication required",
		"redirect": "/login",
	})
}

// SessionAuth returns the Authorization Guard: an Echo middleware that
// resolves the request's session token and refuses to run the wrapped
// handler without a live, valid session. A session whose user no
// longer exists is treated as invalid (the session only weakly
// references the user) and destroyed on the spot. On success the
// caller's user id is stored in the request context for handlers.
func SessionAuth(sessions session.Store, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return unauthorized(c)
			}

			ctx := c.Request().Context()
			sess, err := sessions.Get(ctx, token)
			if errors.Is(err, session.ErrNotFound) {
				// Expired, destroyed or never issued: all the same 401.
				return unauthorized(c)
			}
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session lookup failed"})
			}

			if _, err := users.GetByID(ctx, sess.UserID); err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					_ = sessions.Destroy(ctx, token)
					return unauthorized(c)
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "user lookup failed"})
			}

			c.Set(userIDKey, sess.UserID)
			return next(c)
		}
	}
}

// TokenFromRequest extracts the session token from the cookie or, when
// no cookie is present, from a Bearer Authorization header. Returns ""
// when the request carries neither.
func TokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// UserID returns the authenticated caller's id placed in the context
// by SessionAuth. The second return is false when the guard did not
// run, which on a guarded route means a wiring bug rather than a
// client error.
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(userIDKey).(int64)
	return id, ok
}
