package services

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"go.uber.org/zap"
)

// Engagement manages likes and the notifications they raise.
type Engagement struct {
	posts         repositories.PostRepository
	likes         repositories.LikeRepository
	notifications repositories.NotificationRepository
	tx            repositories.Transactor
	log           *zap.Logger
}

func NewEngagement(repos Repositories, log *zap.Logger) *Engagement {
	return &Engagement{
		posts:         repos.Posts,
		likes:         repos.Likes,
		notifications: repos.Notifications,
		tx:            repos.Tx,
		log:           log,
	}
}

// Like records caller's like on postID. A repeated like returns AlreadyLiked
// and writes nothing. The pre-check only saves a transaction; the unique
// (user, post) index decides, and the notification is written only when the
// insert created the row.
func (e *Engagement) Like(ctx context.Context, caller *models.Identity, postID uint) (models.LikeResult, error) {
	if err := MemberPolicy.Check(caller, OpWrite); err != nil {
		return 0, err
	}
	post, err := e.posts.GetPostByID(ctx, postID)
	if err != nil {
		return 0, notFoundAs(err, errorx.ErrPostNotFound)
	}

	liked, err := e.likes.HasUserLikedPost(ctx, caller.UserID, post.ID)
	if err != nil {
		return 0, err
	}
	if liked {
		return models.AlreadyLiked, nil
	}

	result := models.AlreadyLiked
	err = e.tx.Transaction(ctx, func(ctx context.Context) error {
		created, err := e.likes.CreateLike(ctx, caller.UserID, post.ID)
		if err != nil || !created {
			return err
		}
		result = models.Liked
		if post.AuthorID == caller.UserID {
			return nil
		}
		return e.notifications.CreateNotification(ctx, &models.Notification{
			RecipientID: post.AuthorID,
			ActorID:     caller.UserID,
			Verb:        models.VerbLikedPost,
			TargetType:  models.TargetPost,
			TargetID:    post.ID,
		})
	})
	if err != nil {
		return 0, err
	}

	e.log.Debug("post liked",
		zap.Uint("user_id", caller.UserID),
		zap.Uint("post_id", post.ID),
		zap.Bool("created", result == models.Liked))
	return result, nil
}

// Unlike removes caller's like on postID. It fails with ErrNotLiked when there
// is nothing to remove. Notifications already sent are kept.
func (e *Engagement) Unlike(ctx context.Context, caller *models.Identity, postID uint) error {
	if err := MemberPolicy.Check(caller, OpWrite); err != nil {
		return err
	}
	post, err := e.posts.GetPostByID(ctx, postID)
	if err != nil {
		return notFoundAs(err, errorx.ErrPostNotFound)
	}

	deleted, err := e.likes.DeleteLike(ctx, caller.UserID, post.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return errorx.ErrNotLiked
	}
	return nil
}
