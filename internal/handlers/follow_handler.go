package handlers

import (
	"fmt"
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	graph *services.SocialGraph
}

func NewFollowHandler(graph *services.SocialGraph) *FollowHandler {
	return &FollowHandler{graph: graph}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow/", h.FollowUser)
	g.POST("/users/:id/unfollow/", h.UnfollowUser)
}

func (h *FollowHandler) FollowUser(c echo.Context) error {
	id, err := writeID(c, services.MemberPolicy, "id")
	if err != nil {
		return err
	}
	result, err := h.graph.Follow(c.Request().Context(), caller(c), id)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("You are now following %s", result.Target.Username)
	if !result.Changed {
		msg = fmt.Sprintf("You are already following %s", result.Target.Username)
	}
	return c.JSON(http.StatusOK, echo.Map{"detail": msg, "following": true})
}

func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	id, err := writeID(c, services.MemberPolicy, "id")
	if err != nil {
		return err
	}
	result, err := h.graph.Unfollow(c.Request().Context(), caller(c), id)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("You have unfollowed %s", result.Target.Username)
	if !result.Changed {
		msg = fmt.Sprintf("You were not following %s", result.Target.Username)
	}
	return c.JSON(http.StatusOK, echo.Map{"detail": msg, "following": false})
}
