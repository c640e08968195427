package handlers

import (
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	content *services.ContentService
}

func NewPostHandler(content *services.ContentService) *PostHandler {
	return &PostHandler{content: content}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts/", h.GetPosts)
	g.POST("/posts/", h.CreatePost)
	g.GET("/posts/:id/", h.GetPost)
	g.PUT("/posts/:id/", h.UpdatePost)
	g.PATCH("/posts/:id/", h.UpdatePost)
	g.DELETE("/posts/:id/", h.DeletePost)
	g.GET("/posts/:id/comments/", h.GetPostComments)
}

// GetPosts lists posts newest first, optionally filtered by ?search= over
// title and content and by ?author=.
func (h *PostHandler) GetPosts(c echo.Context) error {
	authorID, err := queryUint(c, "author")
	if err != nil {
		return err
	}
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	filter := models.PostFilter{Search: c.QueryParam("search"), AuthorID: authorID}
	posts, err := h.content.ListPosts(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := services.ContentPolicy.Check(caller(c), services.OpWrite); err != nil {
		return err
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.content.CreatePost(c.Request().Context(), caller(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	post, err := h.content.GetPost(c.Request().Context(), caller(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost serves both PUT and PATCH; absent fields are left untouched.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := writeID(c, services.ContentPolicy, "id")
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.content.UpdatePost(c.Request().Context(), caller(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := writeID(c, services.ContentPolicy, "id")
	if err != nil {
		return err
	}
	if err := h.content.DeletePost(c.Request().Context(), caller(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) GetPostComments(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	comments, err := h.content.ListComments(c.Request().Context(), id, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}
