package services

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"go.uber.org/zap"
)

// postPresenter turns stored posts into API views with author and like count.
type postPresenter struct {
	users repositories.UserRepository
	likes repositories.LikeRepository
}

func (p *postPresenter) present(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	views := make([]models.PostView, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	postIDs := make([]uint, len(posts))
	seen := make(map[uint]bool)
	authorIDs := []uint{}
	for i, post := range posts {
		postIDs[i] = post.ID
		if !seen[post.AuthorID] {
			seen[post.AuthorID] = true
			authorIDs = append(authorIDs, post.AuthorID)
		}
	}

	users, err := p.users.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authors := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		authors[users[i].ID] = users[i].ToCompact()
	}

	counts, err := p.likes.GetLikesCountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	for i, post := range posts {
		views[i] = models.PostView{
			Post:       post,
			Author:     authors[post.AuthorID],
			LikesCount: counts[post.ID],
		}
	}
	return views, nil
}

func (p *postPresenter) presentOne(ctx context.Context, post *models.Post) (*models.PostView, error) {
	views, err := p.present(ctx, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ContentService manages posts and comments under the owner-or-read-only
// policy.
type ContentService struct {
	posts         repositories.PostRepository
	comments      repositories.CommentRepository
	notifications repositories.NotificationRepository
	tx            repositories.Transactor
	presenter     *postPresenter
	log           *zap.Logger
}

func NewContentService(repos Repositories, presenter *postPresenter, log *zap.Logger) *ContentService {
	return &ContentService{
		posts:         repos.Posts,
		comments:      repos.Comments,
		notifications: repos.Notifications,
		tx:            repos.Tx,
		presenter:     presenter,
		log:           log,
	}
}

func (s *ContentService) loadPost(id uint) func(context.Context) (*models.Post, error) {
	return func(ctx context.Context) (*models.Post, error) {
		post, err := s.posts.GetPostByID(ctx, id)
		if err != nil {
			return nil, notFoundAs(err, errorx.ErrPostNotFound)
		}
		return post, nil
	}
}

func (s *ContentService) loadComment(id uint) func(context.Context) (*models.Comment, error) {
	return func(ctx context.Context) (*models.Comment, error) {
		comment, err := s.comments.GetCommentByID(ctx, id)
		if err != nil {
			return nil, notFoundAs(err, errorx.ErrCommentNotFound)
		}
		return comment, nil
	}
}

func (s *ContentService) ListPosts(ctx context.Context, filter models.PostFilter, page models.Page) ([]models.PostView, error) {
	posts, err := s.posts.GetPosts(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return s.presenter.present(ctx, posts)
}

func (s *ContentService) GetPost(ctx context.Context, caller *models.Identity, id uint) (*models.PostView, error) {
	post, err := Authorize(ctx, ContentPolicy, caller, OpRead, s.loadPost(id))
	if err != nil {
		return nil, err
	}
	return s.presenter.presentOne(ctx, post)
}

// CreatePost stores a post authored by caller.
func (s *ContentService) CreatePost(ctx context.Context, caller *models.Identity, req models.CreatePostRequest) (*models.PostView, error) {
	if err := ContentPolicy.Check(caller, OpWrite); err != nil {
		return nil, err
	}
	post := &models.Post{AuthorID: caller.UserID, Title: req.Title, Content: req.Content}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.presenter.presentOne(ctx, post)
}

// UpdatePost applies the non-nil fields of req. The author is never changed.
func (s *ContentService) UpdatePost(ctx context.Context, caller *models.Identity, id uint, req models.UpdatePostRequest) (*models.PostView, error) {
	post, err := Authorize(ctx, ContentPolicy, caller, OpWrite, s.loadPost(id))
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.presenter.presentOne(ctx, post)
}

func (s *ContentService) DeletePost(ctx context.Context, caller *models.Identity, id uint) error {
	if _, err := Authorize(ctx, ContentPolicy, caller, OpWrite, s.loadPost(id)); err != nil {
		return err
	}
	return notFoundAs(s.posts.DeletePost(ctx, id), errorx.ErrPostNotFound)
}

// ListComments lists comments newest first, optionally for a single post.
func (s *ContentService) ListComments(ctx context.Context, postID uint, page models.Page) ([]models.Comment, error) {
	if postID != 0 {
		if _, err := s.loadPost(postID)(ctx); err != nil {
			return nil, err
		}
	}
	return s.comments.GetComments(ctx, postID, page)
}

func (s *ContentService) GetComment(ctx context.Context, caller *models.Identity, id uint) (*models.Comment, error) {
	return Authorize(ctx, ContentPolicy, caller, OpRead, s.loadComment(id))
}

// CreateComment stores caller's comment and notifies the post author when
// the commenter is someone else.
func (s *ContentService) CreateComment(ctx context.Context, caller *models.Identity, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := ContentPolicy.Check(caller, OpWrite); err != nil {
		return nil, err
	}
	post, err := s.loadPost(req.PostID)(ctx)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: post.ID, AuthorID: caller.UserID, Content: req.Content}
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.comments.CreateComment(ctx, comment); err != nil {
			return err
		}
		if post.AuthorID == caller.UserID {
			return nil
		}
		return s.notifications.CreateNotification(ctx, &models.Notification{
			RecipientID: post.AuthorID,
			ActorID:     caller.UserID,
			Verb:        models.VerbCommentedPost,
			TargetType:  models.TargetPost,
			TargetID:    post.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ContentService) UpdateComment(ctx context.Context, caller *models.Identity, id uint, req models.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := Authorize(ctx, ContentPolicy, caller, OpWrite, s.loadComment(id))
	if err != nil {
		return nil, err
	}
	comment.Content = req.Content
	if err := s.comments.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ContentService) DeleteComment(ctx context.Context, caller *models.Identity, id uint) error {
	if _, err := Authorize(ctx, ContentPolicy, caller, OpWrite, s.loadComment(id)); err != nil {
		return err
	}
	return notFoundAs(s.comments.DeleteComment(ctx, id), errorx.ErrCommentNotFound)
}
