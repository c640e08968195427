package handlers

import (
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	content *services.ContentService
}

func NewCommentHandler(content *services.ContentService) *CommentHandler {
	return &CommentHandler{content: content}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/comments/", h.GetComments)
	g.POST("/comments/", h.CreateComment)
	g.GET("/comments/:id/", h.GetComment)
	g.PUT("/comments/:id/", h.UpdateComment)
	g.PATCH("/comments/:id/", h.UpdateComment)
	g.DELETE("/comments/:id/", h.DeleteComment)
}

// GetComments lists comments newest first, narrowed by ?post= when given.
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := queryUint(c, "post")
	if err != nil {
		return err
	}
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	comments, err := h.content.ListComments(c.Request().Context(), postID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := services.ContentPolicy.Check(caller(c), services.OpWrite); err != nil {
		return err
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.content.CreateComment(c.Request().Context(), caller(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.content.GetComment(c.Request().Context(), caller(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) UpdateComment(c echo.Context) error {
	id, err := writeID(c, services.ContentPolicy, "id")
	if err != nil {
		return err
	}
	var req models.UpdateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.content.UpdateComment(c.Request().Context(), caller(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := writeID(c, services.ContentPolicy, "id")
	if err != nil {
		return err
	}
	if err := h.content.DeleteComment(c.Request().Context(), caller(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
