package services

import (
	"context"
	"testing"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/testutil"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func bookTitles(books []models.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func Test_Catalog_ListBooks(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestServices(t)
	orwell := testutil.CreateAuthor(t, db, "George Orwell")
	huxley := testutil.CreateAuthor(t, db, "Aldous Huxley")
	testutil.CreateBook(t, db, orwell, "Nineteen Eighty-Four", 1949)
	testutil.CreateBook(t, db, orwell, "Animal Farm", 1945)
	testutil.CreateBook(t, db, huxley, "Brave New World", 1932)

	testCases := []struct {
		name   string
		filter models.BookFilter
		want   []string
	}{
		{name: "default ordering by title", want: []string{"Animal Farm", "Brave New World", "Nineteen Eighty-Four"}},
		{name: "by year descending", filter: models.BookFilter{Ordering: "-publication_year"},
			want: []string{"Nineteen Eighty-Four", "Animal Farm", "Brave New World"}},
		{name: "unknown ordering falls back", filter: models.BookFilter{Ordering: "id; DROP"},
			want: []string{"Animal Farm", "Brave New World", "Nineteen Eighty-Four"}},
		{name: "publication year", filter: models.BookFilter{PublicationYear: 1945}, want: []string{"Animal Farm"}},
		{name: "author", filter: models.BookFilter{AuthorID: huxley.ID}, want: []string{"Brave New World"}},
		{name: "search title", filter: models.BookFilter{Search: "farm"}, want: []string{"Animal Farm"}},
		{name: "search author name", filter: models.BookFilter{Search: "orwell", Ordering: "publication_year"},
			want: []string{"Animal Farm", "Nineteen Eighty-Four"}},
		{name: "search and filter combine", filter: models.BookFilter{Search: "orwell", PublicationYear: 1932},
			want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			books, err := svc.Catalog.ListBooks(ctx, tc.filter)
			require.NoError(t, err)
			require.Equal(t, tc.want, bookTitles(books))
		})
	}
}

func Test_Catalog_Writes(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestServices(t)
	user := testutil.CreateUser(t, db, "librarian")
	caller := testutil.Identity(user)

	_, err := svc.Catalog.CreateAuthor(ctx, nil, models.AuthorRequest{Name: "Anon"})
	require.True(t, errorx.Is(err, errorx.Unauthorized))

	author, err := svc.Catalog.CreateAuthor(ctx, caller, models.AuthorRequest{Name: "Ursula K. Le Guin"})
	require.NoError(t, err)

	req := models.BookRequest{Title: "The Dispossessed", PublicationYear: 1974, AuthorID: author.ID}
	_, err = svc.Catalog.CreateBook(ctx, nil, req)
	require.True(t, errorx.Is(err, errorx.Unauthorized))

	_, err = svc.Catalog.CreateBook(ctx, caller, models.BookRequest{Title: "x", PublicationYear: 2000, AuthorID: author.ID + 100})
	require.True(t, errorx.Is(err, errorx.Validation))
	require.Contains(t, err.(errorx.Error).Fields, "author")

	book, err := svc.Catalog.CreateBook(ctx, caller, req)
	require.NoError(t, err)
	require.Equal(t, "Ursula K. Le Guin", book.AuthorName)

	req.Title = "The Left Hand of Darkness"
	req.PublicationYear = 1969
	updated, err := svc.Catalog.UpdateBook(ctx, caller, book.ID, req)
	require.NoError(t, err)
	require.Equal(t, "The Left Hand of Darkness", updated.Title)

	got, err := svc.Catalog.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 1969, got.PublicationYear)

	_, err = svc.Catalog.UpdateBook(ctx, caller, book.ID+100, req)
	require.True(t, errorx.Is(err, errorx.NotFound))

	require.True(t, errorx.Is(svc.Catalog.DeleteBook(ctx, nil, book.ID), errorx.Unauthorized))
	require.NoError(t, svc.Catalog.DeleteBook(ctx, caller, book.ID))
	require.True(t, errorx.Is(svc.Catalog.DeleteBook(ctx, caller, book.ID), errorx.NotFound))
}

func Test_Catalog_Library(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestServices(t)
	author := testutil.CreateAuthor(t, db, "Author")
	book := testutil.CreateBook(t, db, author, "Book", 2001)

	library := &models.Library{Name: "Central", Books: []models.Book{*book}}
	require.NoError(t, db.Omit("Books.*").Create(library).Error)
	require.NoError(t, db.Create(&models.Librarian{Name: "Lib", LibraryID: library.ID}).Error)

	got, err := svc.Catalog.GetLibrary(ctx, library.ID)
	require.NoError(t, err)
	require.Len(t, got.Books, 1)
	require.Equal(t, "Book", got.Books[0].Title)
	require.NotNil(t, got.Librarian)
	require.Equal(t, "Lib", got.Librarian.Name)

	_, err = svc.Catalog.GetLibrary(ctx, library.ID+100)
	require.True(t, errorx.Is(err, errorx.NotFound))

	books, err := svc.Catalog.ListAllBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
}
