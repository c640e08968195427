package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

func Test_bookSort(t *testing.T) {
	require.Equal(t, bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}}, bookSort(""))
	require.Equal(t, bson.D{{Key: "publication_year", Value: -1}, {Key: "_id", Value: 1}}, bookSort("-publication_year"))
	require.Equal(t, bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}}, bookSort("$where"))
}

func Test_notFound(t *testing.T) {
	require.ErrorIs(t, notFound(mongo.ErrNoDocuments), gorm.ErrRecordNotFound)
	require.ErrorIs(t, notFound(context.Canceled), context.Canceled)
}

// Test_MongoCatalogRepository runs against a live server when
// MONGO_TEST_URI is set.
func Test_MongoCatalogRepository(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer client.Disconnect(ctx) //nolint:errcheck

	db := client.Database("catalog_test_" + time.Now().Format("20060102150405"))
	defer db.Drop(ctx) //nolint:errcheck
	repo := NewMongoCatalogRepository(db)

	orwell := &models.Author{Name: "George Orwell"}
	require.NoError(t, repo.CreateAuthor(ctx, orwell))
	huxley := &models.Author{Name: "Aldous Huxley"}
	require.NoError(t, repo.CreateAuthor(ctx, huxley))
	require.NotEqual(t, orwell.ID, huxley.ID)

	farm := &models.Book{Title: "Animal Farm", PublicationYear: 1945, AuthorID: orwell.ID}
	require.NoError(t, repo.CreateBook(ctx, farm))
	require.NoError(t, repo.CreateBook(ctx, &models.Book{Title: "Brave New World", PublicationYear: 1932, AuthorID: huxley.ID}))

	books, err := repo.GetBooks(ctx, models.BookFilter{Search: "orwell"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, "Animal Farm", books[0].Title)

	books, err = repo.GetBooks(ctx, models.BookFilter{Ordering: "publication_year"})
	require.NoError(t, err)
	require.Equal(t, "Brave New World", books[0].Title)

	farm.Title = "Animal Farm: A Fairy Story"
	require.NoError(t, repo.UpdateBook(ctx, farm))
	got, err := repo.GetBookByID(ctx, farm.ID)
	require.NoError(t, err)
	require.Equal(t, "Animal Farm: A Fairy Story", got.Title)

	require.NoError(t, repo.DeleteBook(ctx, farm.ID))
	require.ErrorIs(t, repo.DeleteBook(ctx, farm.ID), gorm.ErrRecordNotFound)
	_, err = repo.GetBookByID(ctx, farm.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
