package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/internal/testutil"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Test_Accounts_RegisterLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t)

	req := models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "correct horse"}
	session, err := svc.Accounts.Register(ctx, req)
	require.NoError(t, err)
	require.NotZero(t, session.User.ID)
	require.NotEqual(t, req.Password, session.User.Password)
	require.NotEmpty(t, session.Token)

	_, err = svc.Accounts.Register(ctx, req)
	require.True(t, errorx.Is(err, errorx.Validation))
	require.Contains(t, err.(errorx.Error).Fields, "username")

	_, err = svc.Accounts.Login(ctx, models.LoginRequest{Username: "alice", Password: "wrong"})
	require.Equal(t, errorx.ErrInvalidCredentials, err)
	_, err = svc.Accounts.Login(ctx, models.LoginRequest{Username: "nobody", Password: "wrong"})
	require.Equal(t, errorx.ErrInvalidCredentials, err)

	session, err = svc.Accounts.Login(ctx, models.LoginRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)
	require.Equal(t, "alice", session.User.Username)
}

func Test_Accounts_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestServices(t)
	alice := testutil.CreateUser(t, db, "alice")

	_, err := svc.Accounts.UpdateProfile(ctx, nil, models.UpdateProfileRequest{Bio: strPtr("x")})
	require.True(t, errorx.Is(err, errorx.Unauthorized))

	user, err := svc.Accounts.UpdateProfile(ctx, testutil.Identity(alice), models.UpdateProfileRequest{Bio: strPtr("gopher")})
	require.NoError(t, err)
	require.Equal(t, "gopher", user.Bio)
	require.Equal(t, "alice@example.com", user.Email)

	profile, err := svc.Graph.OwnProfile(ctx, testutil.Identity(alice))
	require.NoError(t, err)
	require.Equal(t, "gopher", profile.Bio)
}

func Test_Accounts_FirebaseLogin(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestServices(t)
	testutil.CreateUser(t, db, "taken")

	first, err := svc.Accounts.FirebaseLogin(ctx, "uid-1", "new@example.com", "taken")
	require.NoError(t, err)
	require.Equal(t, "uid-1", first.User.Username)

	again, err := svc.Accounts.FirebaseLogin(ctx, "uid-1", "new@example.com", "taken")
	require.NoError(t, err)
	require.Equal(t, first.User.ID, again.User.ID)
}

func Test_Accounts_FirebaseLoginLinksByEmail(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestServices(t)
	alice := testutil.CreateUser(t, db, "alice")
	before := testutil.Count(t, db, &models.User{}, "")

	session, err := svc.Accounts.FirebaseLogin(ctx, "uid-alice", "Alice@Example.com", "Alice Liddell")
	require.NoError(t, err)
	require.Equal(t, alice.ID, session.User.ID)
	require.Equal(t, before, testutil.Count(t, db, &models.User{}, ""))

	again, err := svc.Accounts.FirebaseLogin(ctx, "uid-alice", "", "")
	require.NoError(t, err)
	require.Equal(t, alice.ID, again.User.ID)

	// An account already linked to another Firebase user is left alone.
	other, err := svc.Accounts.FirebaseLogin(ctx, "uid-other", "alice@example.com", "")
	require.NoError(t, err)
	require.NotEqual(t, alice.ID, other.User.ID)
}

// lateUsernameCheck hides existing usernames so Register reaches the insert,
// as a concurrent registration would.
type lateUsernameCheck struct {
	repositories.UserRepository
}

func (lateUsernameCheck) GetUserByUsername(context.Context, string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func Test_Accounts_RegisterDuplicateInsert(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "alice")

	repos := NewGormRepositories(db)
	repos.Users = lateUsernameCheck{repos.Users}
	accounts := NewAccountService(repos, NewTokenManager("test-secret", time.Hour), zap.NewNop())

	_, err := accounts.Register(ctx, models.RegisterRequest{Username: "alice", Email: "a2@example.com", Password: "correct horse"})
	require.True(t, errorx.Is(err, errorx.Validation))
	require.Contains(t, err.(errorx.Error).Fields, "username")
}
