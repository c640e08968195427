package handlers

import (
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications/", h.GetNotifications)
	g.GET("/notifications/unread-count/", h.GetUnreadCount)
	g.POST("/notifications/read-all/", h.MarkAllAsRead)
	g.POST("/notifications/:id/read/", h.MarkAsRead)
}

func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	notifications, err := h.notifications.List(c.Request().Context(), caller(c), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.UnreadCount(c.Request().Context(), caller(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	id, err := writeID(c, services.ContentPolicy, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkAsRead(c.Request().Context(), caller(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail("Notification marked as read"))
}

func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.notifications.MarkAllAsRead(c.Request().Context(), caller(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail("All notifications marked as read"))
}
