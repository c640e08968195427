package handlers

import (
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the posts of followed accounts.
type FeedHandler struct {
	feed *services.FeedAssembler
}

func NewFeedHandler(feed *services.FeedAssembler) *FeedHandler {
	return &FeedHandler{feed: feed}
}

func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed/", h.GetFeed)
}

// GetFeed returns the whole feed unless ?limit= or ?offset= is given.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	posts, err := h.feed.Feed(c.Request().Context(), caller(c), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}
