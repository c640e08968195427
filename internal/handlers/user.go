package handlers

import (
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler serves profiles and the follower lists.
type UserHandler struct {
	accounts *services.AccountService
	graph    *services.SocialGraph
}

func NewUserHandler(accounts *services.AccountService, graph *services.SocialGraph) *UserHandler {
	return &UserHandler{accounts: accounts, graph: graph}
}

// RegisterUserRoutes registers user profile-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/profile/", h.GetProfile)
	g.PUT("/profile/", h.UpdateProfile)
	g.PATCH("/profile/", h.UpdateProfile)
	g.GET("/users/search/", h.SearchUsers)
	g.GET("/users/:id/", h.GetUser)
	g.GET("/users/:id/followers/", h.GetFollowers)
	g.GET("/users/:id/following/", h.GetFollowing)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	profile, err := h.graph.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.graph.OwnProfile(c.Request().Context(), caller(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := services.MemberPolicy.Check(caller(c), services.OpWrite); err != nil {
		return err
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if _, err := h.accounts.UpdateProfile(ctx, caller(c), req); err != nil {
		return err
	}
	profile, err := h.graph.OwnProfile(ctx, caller(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.accounts.SearchUsers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetFollowers(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	users, err := h.graph.Followers(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetFollowing(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	users, err := h.graph.Following(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
