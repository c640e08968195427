package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/testutil"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func titles(views []models.PostView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Title
	}
	return out
}

func Test_Feed_OnlyFollowedAuthorsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestServices(t)
	reader := testutil.CreateUser(t, db, "reader")
	x := testutil.CreateUser(t, db, "x")
	y := testutil.CreateUser(t, db, "y")
	stranger := testutil.CreateUser(t, db, "stranger")

	testutil.CreatePost(t, db, x, "x-old", 1*time.Minute)
	testutil.CreatePost(t, db, y, "y-mid", 2*time.Minute)
	testutil.CreatePost(t, db, reader, "own", 3*time.Minute)
	testutil.CreatePost(t, db, stranger, "stranger", 4*time.Minute)
	testutil.CreatePost(t, db, x, "x-new", 5*time.Minute)

	for _, u := range []*models.User{x, y} {
		_, err := svc.Graph.Follow(ctx, testutil.Identity(reader), u.ID)
		require.NoError(t, err)
	}

	feed, err := svc.Feed.Feed(ctx, testutil.Identity(reader), models.Page{})
	require.NoError(t, err)
	require.Equal(t, []string{"x-new", "y-mid", "x-old"}, titles(feed))
	require.Equal(t, "x", feed[0].Author.Username)
}

func Test_Feed_TiesBrokenByIDDescending(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestServices(t)
	reader := testutil.CreateUser(t, db, "reader")
	x := testutil.CreateUser(t, db, "x")

	first := testutil.CreatePost(t, db, x, "first", 0)
	second := testutil.CreatePost(t, db, x, "second", 0)
	_, err := svc.Graph.Follow(ctx, testutil.Identity(reader), x.ID)
	require.NoError(t, err)

	feed, err := svc.Feed.Feed(ctx, testutil.Identity(reader), models.Page{})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	require.Equal(t, second.ID, feed[0].ID)
	require.Equal(t, first.ID, feed[1].ID)
}

func Test_Feed_FollowingNobody(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestServices(t)
	loner := testutil.CreateUser(t, db, "loner")
	testutil.CreatePost(t, db, loner, "own", 0)

	feed, err := svc.Feed.Feed(ctx, testutil.Identity(loner), models.Page{})
	require.NoError(t, err)
	require.NotNil(t, feed)
	require.Empty(t, feed)

	_, err = svc.Feed.Feed(ctx, nil, models.Page{})
	require.True(t, errorx.Is(err, errorx.Unauthorized))
}

func Test_Feed_WindowIsClamped(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := New(NewGormRepositories(db), Options{FeedMaxLimit: 2})
	reader := testutil.CreateUser(t, db, "reader")
	x := testutil.CreateUser(t, db, "x")
	for i := 0; i < 4; i++ {
		testutil.CreatePost(t, db, x, string(rune('a'+i)), time.Duration(i)*time.Minute)
	}
	_, err := svc.Graph.Follow(ctx, testutil.Identity(reader), x.ID)
	require.NoError(t, err)

	feed, err := svc.Feed.Feed(ctx, testutil.Identity(reader), models.Page{Limit: 50})
	require.NoError(t, err)
	require.Equal(t, []string{"d", "c"}, titles(feed))

	feed, err = svc.Feed.Feed(ctx, testutil.Identity(reader), models.Page{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"c"}, titles(feed))

	// No window returns everything.
	feed, err = svc.Feed.Feed(ctx, testutil.Identity(reader), models.Page{})
	require.NoError(t, err)
	require.Len(t, feed, 4)
}
