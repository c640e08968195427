package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/testutil"
	"github.com/stretchr/testify/require"
)

func Test_FollowRepository_UniquePair(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")
	repo := NewPostgresFollowRepository(db)

	created, err := repo.CreateFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.True(t, created)

	created, err = repo.CreateFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, int64(1), testutil.Count(t, db, &models.Follow{}, ""))

	following, err := repo.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.True(t, following)
	following, err = repo.IsFollowing(ctx, b.ID, a.ID)
	require.NoError(t, err)
	require.False(t, following)

	deleted, err := repo.DeleteFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.True(t, deleted)
	deleted, err = repo.DeleteFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}

func Test_Transactor_RollsBack(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")
	follows := NewPostgresFollowRepository(db)

	err := NewTransactor(db).Transaction(ctx, func(ctx context.Context) error {
		if _, err := follows.CreateFollow(ctx, a.ID, b.ID); err != nil {
			return err
		}
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int64(0), testutil.Count(t, db, &models.Follow{}, ""))
}
