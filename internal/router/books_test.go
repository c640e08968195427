package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/testutil"
)

func (s *apiSuite) TestBooksReadAnonymously() {
	orwell := testutil.CreateAuthor(s.T(), s.db, "George Orwell")
	huxley := testutil.CreateAuthor(s.T(), s.db, "Aldous Huxley")
	book := testutil.CreateBook(s.T(), s.db, orwell, "Animal Farm", 1945)
	testutil.CreateBook(s.T(), s.db, huxley, "Brave New World", 1932)

	rec, _ := s.do(http.MethodGet, "/api/books/?ordering=-publication_year", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	books := s.list(rec)
	s.Require().Len(books, 2)
	s.Equal("Animal Farm", books[0]["title"])
	s.Equal("George Orwell", books[0]["author_name"])

	rec, _ = s.do(http.MethodGet, "/api/books/?search=huxley", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	books = s.list(rec)
	s.Require().Len(books, 1)
	s.Equal("Brave New World", books[0]["title"])

	rec, _ = s.do(http.MethodGet, fmt.Sprintf("/api/books/?author=%d&publication_year=1945", orwell.ID), "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(s.list(rec), 1)

	rec, _ = s.do(http.MethodGet, "/api/books/?publication_year=abc", "", nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec, body := s.do(http.MethodGet, fmt.Sprintf("/api/books/%d/", book.ID), "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.EqualValues(orwell.ID, body["author"])

	rec, _ = s.do(http.MethodGet, "/api/books/999/", "", nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/authors/", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Len(s.list(rec), 2)
}

func (s *apiSuite) TestBooksWrite() {
	user := testutil.CreateUser(s.T(), s.db, "librarian")
	token := s.token(user)
	author := testutil.CreateAuthor(s.T(), s.db, "Octavia Butler")
	payload := map[string]interface{}{"title": "Kindred", "publication_year": 1979, "author": author.ID}

	rec, _ := s.do(http.MethodPost, "/api/books/create/", "", payload)
	s.Equal(http.StatusUnauthorized, rec.Code)

	// Identity is checked before the payload.
	rec, _ = s.do(http.MethodPost, "/api/books/create/", "", map[string]interface{}{})
	s.Equal(http.StatusUnauthorized, rec.Code)

	future := map[string]interface{}{"title": "Later", "publication_year": time.Now().Year() + 1, "author": author.ID}
	rec, body := s.do(http.MethodPost, "/api/books/create/", token, future)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(body, "publication_year")

	unknown := map[string]interface{}{"title": "Ghost", "publication_year": 2000, "author": author.ID + 100}
	rec, body = s.do(http.MethodPost, "/api/books/create/", token, unknown)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(body, "author")

	rec, body = s.do(http.MethodPost, "/api/books/create/", token, payload)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	id := body["id"]

	payload["title"] = "Kindred (reissue)"
	rec, _ = s.do(http.MethodPut, fmt.Sprintf("/api/books/%v/update/", id), "", payload)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec, body = s.do(http.MethodPut, fmt.Sprintf("/api/books/%v/update/", id), token, payload)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Kindred (reissue)", body["title"])

	rec, _ = s.do(http.MethodPut, "/api/books/999/update/", token, payload)
	s.Equal(http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/books/%v/delete/", id), "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/books/%v/delete/", id), token, nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/books/%v/delete/", id), token, nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/authors/", token, map[string]string{"name": "N. K. Jemisin"})
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *apiSuite) TestLibraryBooks() {
	orwell := testutil.CreateAuthor(s.T(), s.db, "George Orwell")
	huxley := testutil.CreateAuthor(s.T(), s.db, "Aldous Huxley")
	testutil.CreateBook(s.T(), s.db, orwell, "Nineteen Eighty-Four", 1949)
	testutil.CreateBook(s.T(), s.db, huxley, "Brave New World", 1932)

	rec, _ := s.do(http.MethodGet, "/api/libraries/books/", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	books := s.list(rec)
	s.Require().Len(books, 2)
	s.Equal("Brave New World", books[0]["title"])
	s.Equal("Aldous Huxley", books[0]["author_name"])
	s.Equal("George Orwell", books[1]["author_name"])
}
