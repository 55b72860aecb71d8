package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-vault/internal/config"
	"github.com/iliyamo/task-vault/internal/middleware"
	"github.com/iliyamo/task-vault/internal/model"
	"github.com/iliyamo/task-vault/internal/repository"
	"github.com/iliyamo/task-vault/internal/session"
	"github.com/iliyamo/task-vault/internal/utils"
	"github.com/iliyamo/task-vault/internal/validate"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions session.Store
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, sessions session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Sessions: sessions}
}

// ----- DTOs -----

type registerReq struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPart is the sanitized user view returned by every auth endpoint.
// The password hash never leaves the repository layer.
type userPart struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserPart(u model.User) userPart {
	return userPart{ID: u.ID, FullName: u.FullName, Email: u.Email, CreatedAt: u.CreatedAt}
}

// violationsJSON writes a 400 carrying the full violation set.
func violationsJSON(c echo.Context, verrs *validate.Errors) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"violations": verrs.Violations})
}

// Register creates a user and logs them in as a side effect.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	err := validate.Run(ctx,
		validate.Length("fullName", req.FullName, 3, 50),
		validate.Email("email", req.Email),
		validate.UniqueEmail("email", req.Email, h.Users),
		validate.MinLength("password", req.Password, 6),
	)
	var verrs *validate.Errors
	if errors.As(err, &verrs) {
		return violationsJSON(c, verrs)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}

	u, err := h.Users.Create(ctx, req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			// Lost the race against a concurrent registration after the
			// pipeline check passed; same response as the rule firing.
			return violationsJSON(c, &validate.Errors{Violations: []validate.Violation{
				{Field: "email", Message: "a user with this email already exists"},
			}})
		}
		c.Logger().Errorf("register: create user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	// No rollback if session creation fails: the user exists and can
	// simply log in.
	sess, err := h.Sessions.Create(ctx, u.ID)
	if err != nil {
		c.Logger().Errorf("register: create session: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session creation failed"})
	}
	setSessionCookie(c, sess)

	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}

// Login verifies credentials and opens a new session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	err := validate.Run(ctx,
		validate.Email("email", req.Email),
		validate.Required("password", req.Password),
	)
	var verrs *validate.Errors
	if errors.As(err, &verrs) {
		return violationsJSON(c, verrs)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err != nil {
		c.Logger().Errorf("login: query user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	sess, err := h.Sessions.Create(ctx, u.ID)
	if err != nil {
		c.Logger().Errorf("login: create session: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session creation failed"})
	}
	setSessionCookie(c, sess)

	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}

// Logout destroys the current session if one exists. Always succeeds:
// logging out twice, or without being logged in, is a no-op 200.
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := middleware.TokenFromRequest(c); token != "" {
		if err := h.Sessions.Destroy(c.Request().Context(), token); err != nil {
			c.Logger().Errorf("logout: destroy session: %v", err)
		}
	}
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Me returns the authenticated caller's profile. Guarded route — the
// session middleware has already resolved and checked the user.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required", "redirect": "/login"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), uid)
	if err != nil {
		c.Logger().Errorf("me: load user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}

// setSessionCookie hands the opaque token to the client. HttpOnly so
// scripts cannot read it; expiry mirrors the server-side session TTL.
func setSessionCookie(c echo.Context, sess model.Session) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
