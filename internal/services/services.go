package services

import (
	"errors"

	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories is the storage a set of services is built on.
type Repositories struct {
	Users         repositories.UserRepository
	Follows       repositories.FollowRepository
	Posts         repositories.PostRepository
	Comments      repositories.CommentRepository
	Likes         repositories.LikeRepository
	Notifications repositories.NotificationRepository
	Catalog       repositories.CatalogRepository
	Libraries     repositories.LibraryRepository
	Tx            repositories.Transactor
}

// NewGormRepositories wires every relational repository on db. The catalog
// can be replaced afterwards when it lives in another store.
func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:         repositories.NewPostgresUserRepository(db),
		Follows:       repositories.NewPostgresFollowRepository(db),
		Posts:         repositories.NewPostgresPostRepository(db),
		Comments:      repositories.NewPostgresCommentRepository(db),
		Likes:         repositories.NewPostgresLikeRepository(db),
		Notifications: repositories.NewPostgresNotificationRepository(db),
		Catalog:       repositories.NewPostgresCatalogRepository(db),
		Libraries:     repositories.NewPostgresLibraryRepository(db),
		Tx:            repositories.NewTransactor(db),
	}
}

// Services is a container holding every service of the API.
type Services struct {
	Accounts      *AccountService
	Graph         *SocialGraph
	Content       *ContentService
	Engagement    *Engagement
	Feed          *FeedAssembler
	Notifications *NotificationService
	Catalog       *CatalogService
}

type Options struct {
	Tokens       *TokenManager
	FeedMaxLimit int
	Logger       *zap.Logger
}

func New(repos Repositories, opts Options) *Services {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	presenter := &postPresenter{users: repos.Users, likes: repos.Likes}
	return &Services{
		Accounts:      NewAccountService(repos, opts.Tokens, log),
		Graph:         NewSocialGraph(repos, log),
		Content:       NewContentService(repos, presenter, log),
		Engagement:    NewEngagement(repos, log),
		Feed:          NewFeedAssembler(repos, presenter, opts.FeedMaxLimit),
		Notifications: NewNotificationService(repos),
		Catalog:       NewCatalogService(repos.Catalog, repos.Libraries),
	}
}

// notFoundAs maps a storage miss to the given public error.
func notFoundAs(err error, public errorx.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return public
	}
	return err
}
