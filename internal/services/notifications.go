package services

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
)

// NotificationService serves a user's own notifications.
type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
}

func NewNotificationService(repos Repositories) *NotificationService {
	return &NotificationService{notifications: repos.Notifications, users: repos.Users}
}

func (s *NotificationService) List(ctx context.Context, caller *models.Identity, page models.Page) ([]models.NotificationView, error) {
	if err := MemberPolicy.Check(caller, OpRead); err != nil {
		return nil, err
	}
	notifications, err := s.notifications.GetByRecipientID(ctx, caller.UserID, page)
	if err != nil {
		return nil, err
	}

	actorIDs := make([]uint, 0, len(notifications))
	seen := make(map[uint]bool)
	for _, n := range notifications {
		if !seen[n.ActorID] {
			seen[n.ActorID] = true
			actorIDs = append(actorIDs, n.ActorID)
		}
	}
	users, err := s.users.GetUsersByIDs(ctx, actorIDs)
	if err != nil {
		return nil, err
	}
	actors := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		actors[users[i].ID] = users[i].ToCompact()
	}

	views := make([]models.NotificationView, len(notifications))
	for i, n := range notifications {
		views[i] = models.NotificationView{Notification: n, Actor: actors[n.ActorID]}
	}
	return views, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, caller *models.Identity) (int64, error) {
	if err := MemberPolicy.Check(caller, OpRead); err != nil {
		return 0, err
	}
	return s.notifications.GetUnreadCount(ctx, caller.UserID)
}

// MarkAsRead is limited to the recipient.
func (s *NotificationService) MarkAsRead(ctx context.Context, caller *models.Identity, id uint) error {
	_, err := Authorize(ctx, ContentPolicy, caller, OpWrite, func(ctx context.Context) (*models.Notification, error) {
		n, err := s.notifications.GetByID(ctx, id)
		if err != nil {
			return nil, notFoundAs(err, errorx.ErrNotificationNotFound)
		}
		return n, nil
	})
	if err != nil {
		return err
	}
	return s.notifications.MarkAsRead(ctx, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, caller *models.Identity) error {
	if err := MemberPolicy.Check(caller, OpWrite); err != nil {
		return err
	}
	return s.notifications.MarkAllAsRead(ctx, caller.UserID)
}
