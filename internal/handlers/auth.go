package handlers

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"github.com/labstack/echo/v4"
)

// IDTokenVerifier verifies Firebase ID tokens. *auth.Client implements it.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	accounts *services.AccountService
	firebase IDTokenVerifier
}

// NewAuthHandler creates a new AuthHandler. verifier may be nil, in which
// case Firebase login is not offered.
func NewAuthHandler(accounts *services.AccountService, verifier IDTokenVerifier) *AuthHandler {
	return &AuthHandler{accounts: accounts, firebase: verifier}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register/", h.Register)
	g.POST("/login/", h.Login)
	if h.firebase != nil {
		g.POST("/auth/firebase-login/", h.FirebaseLogin)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	session, err := h.accounts.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": session.User, "token": session.Token})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	session, err := h.accounts.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":    session.Token,
		"user_id":  session.User.ID,
		"username": session.User.Username,
	})
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin verifies a Firebase ID token and issues a local JWT.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req FirebaseLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, err := h.firebase.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return errorx.New(errorx.Unauthorized, "Invalid Firebase ID token")
	}
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	session, err := h.accounts.FirebaseLogin(ctx, token.UID, email, name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":    session.Token,
		"user_id":  session.User.ID,
		"username": session.User.Username,
	})
}
