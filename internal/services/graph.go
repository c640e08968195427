package services

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"go.uber.org/zap"
)

// SocialGraph manages directed follow edges between users.
type SocialGraph struct {
	users         repositories.UserRepository
	follows       repositories.FollowRepository
	notifications repositories.NotificationRepository
	tx            repositories.Transactor
	log           *zap.Logger
}

func NewSocialGraph(repos Repositories, log *zap.Logger) *SocialGraph {
	return &SocialGraph{
		users:         repos.Users,
		follows:       repos.Follows,
		notifications: repos.Notifications,
		tx:            repos.Tx,
		log:           log,
	}
}

// FollowResult describes the edge after a follow or unfollow call.
type FollowResult struct {
	Target    *models.User
	Following bool
	// Changed is false when the call found the edge already in the
	// requested state.
	Changed bool
}

// Follow makes caller follow followeeID. Following twice keeps one edge and
// succeeds; only a new edge notifies the followee.
func (g *SocialGraph) Follow(ctx context.Context, caller *models.Identity, followeeID uint) (*FollowResult, error) {
	if err := MemberPolicy.Check(caller, OpWrite); err != nil {
		return nil, err
	}
	if caller.UserID == followeeID {
		return nil, errorx.ErrSelfFollow
	}
	target, err := g.users.GetUserByID(ctx, followeeID)
	if err != nil {
		return nil, notFoundAs(err, errorx.ErrUserNotFound)
	}

	result := &FollowResult{Target: target, Following: true}
	err = g.tx.Transaction(ctx, func(ctx context.Context) error {
		created, err := g.follows.CreateFollow(ctx, caller.UserID, followeeID)
		if err != nil || !created {
			return err
		}
		result.Changed = true
		return g.notifications.CreateNotification(ctx, &models.Notification{
			RecipientID: followeeID,
			ActorID:     caller.UserID,
			Verb:        models.VerbFollowed,
			TargetType:  models.TargetUser,
			TargetID:    followeeID,
		})
	})
	if err != nil {
		return nil, err
	}

	if result.Changed {
		g.log.Debug("follow created", zap.Uint("follower_id", caller.UserID), zap.Uint("followee_id", followeeID))
	}
	return result, nil
}

// Unfollow removes the edge; an absent edge is a successful no-op.
func (g *SocialGraph) Unfollow(ctx context.Context, caller *models.Identity, followeeID uint) (*FollowResult, error) {
	if err := MemberPolicy.Check(caller, OpWrite); err != nil {
		return nil, err
	}
	target, err := g.users.GetUserByID(ctx, followeeID)
	if err != nil {
		return nil, notFoundAs(err, errorx.ErrUserNotFound)
	}

	deleted, err := g.follows.DeleteFollow(ctx, caller.UserID, followeeID)
	if err != nil {
		return nil, err
	}
	return &FollowResult{Target: target, Following: false, Changed: deleted}, nil
}

// ListFollowing returns the ids userID follows.
func (g *SocialGraph) ListFollowing(ctx context.Context, userID uint) ([]uint, error) {
	return g.follows.GetFollowingIDs(ctx, userID)
}

// ListFollowers returns the ids following userID.
func (g *SocialGraph) ListFollowers(ctx context.Context, userID uint) ([]uint, error) {
	return g.follows.GetFollowerIDs(ctx, userID)
}

// Following resolves ListFollowing to users, failing with NotFound for an
// unknown user.
func (g *SocialGraph) Following(ctx context.Context, userID uint) ([]models.UserCompact, error) {
	return g.resolve(ctx, userID, g.ListFollowing)
}

func (g *SocialGraph) Followers(ctx context.Context, userID uint) ([]models.UserCompact, error) {
	return g.resolve(ctx, userID, g.ListFollowers)
}

func (g *SocialGraph) resolve(
	ctx context.Context,
	userID uint,
	list func(context.Context, uint) ([]uint, error),
) ([]models.UserCompact, error) {
	if _, err := g.users.GetUserByID(ctx, userID); err != nil {
		return nil, notFoundAs(err, errorx.ErrUserNotFound)
	}
	ids, err := list(ctx, userID)
	if err != nil {
		return nil, err
	}
	users, err := g.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out, nil
}

// Profile returns userID with its derived follow counts.
func (g *SocialGraph) Profile(ctx context.Context, userID uint) (*models.Profile, error) {
	user, err := g.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, errorx.ErrUserNotFound)
	}
	followers, err := g.follows.GetFollowersCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := g.follows.GetFollowingCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.Profile{User: *user, FollowersCount: followers, FollowingCount: following}, nil
}

// OwnProfile is Profile for the authenticated caller.
func (g *SocialGraph) OwnProfile(ctx context.Context, caller *models.Identity) (*models.Profile, error) {
	if err := MemberPolicy.Check(caller, OpRead); err != nil {
		return nil, err
	}
	return g.Profile(ctx, caller.UserID)
}
