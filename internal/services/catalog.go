package services

import (
	"context"
	"errors"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"gorm.io/gorm"
)

// CatalogService is the book catalog: public reads, authenticated writes.
type CatalogService struct {
	catalog   repositories.CatalogRepository
	libraries repositories.LibraryRepository
}

func NewCatalogService(catalog repositories.CatalogRepository, libraries repositories.LibraryRepository) *CatalogService {
	return &CatalogService{catalog: catalog, libraries: libraries}
}

var errUnknownAuthor = errorx.Error{
	Kind:    errorx.Validation,
	Message: "Invalid author",
	Fields:  map[string]string{"author": "Invalid pk - object does not exist."},
}

func (s *CatalogService) ListBooks(ctx context.Context, filter models.BookFilter) ([]models.Book, error) {
	return s.catalog.GetBooks(ctx, filter)
}

func (s *CatalogService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.catalog.GetBookByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, errorx.ErrBookNotFound)
	}
	return book, nil
}

func (s *CatalogService) CreateBook(ctx context.Context, caller *models.Identity, req models.BookRequest) (*models.Book, error) {
	if err := CatalogPolicy.Check(caller, OpWrite); err != nil {
		return nil, err
	}
	if err := s.requireAuthor(ctx, req.AuthorID); err != nil {
		return nil, err
	}
	book := &models.Book{Title: req.Title, PublicationYear: req.PublicationYear, AuthorID: req.AuthorID}
	if err := s.catalog.CreateBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *CatalogService) UpdateBook(ctx context.Context, caller *models.Identity, id uint, req models.BookRequest) (*models.Book, error) {
	if err := CatalogPolicy.Check(caller, OpWrite); err != nil {
		return nil, err
	}
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireAuthor(ctx, req.AuthorID); err != nil {
		return nil, err
	}
	book.Title = req.Title
	book.PublicationYear = req.PublicationYear
	book.AuthorID = req.AuthorID
	book.Author = nil
	if err := s.catalog.UpdateBook(ctx, book); err != nil {
		return nil, notFoundAs(err, errorx.ErrBookNotFound)
	}
	return book, nil
}

func (s *CatalogService) DeleteBook(ctx context.Context, caller *models.Identity, id uint) error {
	if err := CatalogPolicy.Check(caller, OpWrite); err != nil {
		return err
	}
	return notFoundAs(s.catalog.DeleteBook(ctx, id), errorx.ErrBookNotFound)
}

func (s *CatalogService) ListAuthors(ctx context.Context) ([]models.Author, error) {
	return s.catalog.GetAuthors(ctx)
}

func (s *CatalogService) CreateAuthor(ctx context.Context, caller *models.Identity, req models.AuthorRequest) (*models.Author, error) {
	if err := CatalogPolicy.Check(caller, OpWrite); err != nil {
		return nil, err
	}
	author := &models.Author{Name: req.Name}
	if err := s.catalog.CreateAuthor(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *CatalogService) GetLibrary(ctx context.Context, id uint) (*models.Library, error) {
	library, err := s.libraries.GetLibraryByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, errorx.ErrLibraryNotFound)
	}
	return library, nil
}

// ListAllBooks is the plain relational listing behind /libraries/books/.
func (s *CatalogService) ListAllBooks(ctx context.Context) ([]models.Book, error) {
	return s.libraries.GetBooksWithAuthors(ctx)
}

func (s *CatalogService) requireAuthor(ctx context.Context, authorID uint) error {
	_, err := s.catalog.GetAuthorByID(ctx, authorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errUnknownAuthor
	}
	return err
}
