package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// Every connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// Epoch is the base timestamp fixtures are created relative to.
var Epoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

func CreateUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

// CreatePost stores a post by author created at Epoch plus offset.
func CreatePost(t testing.TB, db *gorm.DB, author *models.User, title string, offset time.Duration) *models.Post {
	t.Helper()
	at := Epoch.Add(offset)
	post := &models.Post{
		AuthorID:  author.ID,
		Title:     title,
		Content:   title + " content",
		CreatedAt: at,
		UpdatedAt: at,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func CreateAuthor(t testing.TB, db *gorm.DB, name string) *models.Author {
	t.Helper()
	author := &models.Author{Name: name}
	require.NoError(t, db.Create(author).Error)
	return author
}

func CreateBook(t testing.TB, db *gorm.DB, author *models.Author, title string, year int) *models.Book {
	t.Helper()
	book := &models.Book{Title: title, PublicationYear: year, AuthorID: author.ID}
	require.NoError(t, db.Omit("Author").Create(book).Error)
	return book
}

func Identity(user *models.User) *models.Identity {
	return &models.Identity{UserID: user.ID, Username: user.Username}
}

func Count(t testing.TB, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	tx := db.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	require.NoError(t, tx.Count(&n).Error)
	return n
}
