package services

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
)

// FeedAssembler builds a user's feed from the accounts they follow. It keeps
// no state; every call reads the graph and the posts afresh.
type FeedAssembler struct {
	follows   repositories.FollowRepository
	posts     repositories.PostRepository
	presenter *postPresenter
	maxLimit  int
}

func NewFeedAssembler(repos Repositories, presenter *postPresenter, maxLimit int) *FeedAssembler {
	return &FeedAssembler{
		follows:   repos.Follows,
		posts:     repos.Posts,
		presenter: presenter,
		maxLimit:  maxLimit,
	}
}

// Feed returns the posts authored by the accounts caller follows, newest
// first, ties broken by id descending. A zero page returns everything.
func (f *FeedAssembler) Feed(ctx context.Context, caller *models.Identity, page models.Page) ([]models.PostView, error) {
	if err := MemberPolicy.Check(caller, OpRead); err != nil {
		return nil, err
	}

	following, err := f.follows.GetFollowingIDs(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if len(following) == 0 {
		return []models.PostView{}, nil
	}

	if f.maxLimit > 0 && page.Limit > f.maxLimit {
		page.Limit = f.maxLimit
	}
	posts, err := f.posts.GetPostsByAuthors(ctx, following, page)
	if err != nil {
		return nil, err
	}
	return f.presenter.present(ctx, posts)
}
