package handlers

import (
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	engagement *services.Engagement
}

func NewLikeHandler(engagement *services.Engagement) *LikeHandler {
	return &LikeHandler{engagement: engagement}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like/", h.LikePost)
	g.POST("/posts/:id/unlike/", h.UnlikePost)
}

// LikePost answers 201 for a new like and 200 when the like already existed.
func (h *LikeHandler) LikePost(c echo.Context) error {
	id, err := writeID(c, services.MemberPolicy, "id")
	if err != nil {
		return err
	}
	result, err := h.engagement.Like(c.Request().Context(), caller(c), id)
	if err != nil {
		return err
	}
	if result == models.AlreadyLiked {
		return c.JSON(http.StatusOK, detail("Already liked"))
	}
	return c.JSON(http.StatusCreated, detail("Post liked"))
}

func (h *LikeHandler) UnlikePost(c echo.Context) error {
	id, err := writeID(c, services.MemberPolicy, "id")
	if err != nil {
		return err
	}
	if err := h.engagement.Unlike(c.Request().Context(), caller(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail("Post unliked"))
}
