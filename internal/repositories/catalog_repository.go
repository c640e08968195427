package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"gorm.io/gorm"
)

// CatalogRepository stores authors and books. It has a relational and a
// document implementation.
type CatalogRepository interface {
	CreateAuthor(ctx context.Context, author *models.Author) error
	GetAuthorByID(ctx context.Context, id uint) (*models.Author, error)
	GetAuthors(ctx context.Context) ([]models.Author, error)

	CreateBook(ctx context.Context, book *models.Book) error
	GetBookByID(ctx context.Context, id uint) (*models.Book, error)
	GetBooks(ctx context.Context, filter models.BookFilter) ([]models.Book, error)
	UpdateBook(ctx context.Context, book *models.Book) error
	DeleteBook(ctx context.Context, id uint) error
}

// PostgresCatalogRepository implements CatalogRepository on gorm
type PostgresCatalogRepository struct {
	db *gorm.DB
}

func NewPostgresCatalogRepository(db *gorm.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

func (r *PostgresCatalogRepository) CreateAuthor(ctx context.Context, author *models.Author) error {
	return conn(ctx, r.db).Create(author).Error
}

func (r *PostgresCatalogRepository) GetAuthorByID(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	if err := conn(ctx, r.db).First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *PostgresCatalogRepository) GetAuthors(ctx context.Context) ([]models.Author, error) {
	authors := []models.Author{}
	err := conn(ctx, r.db).Order("name").Order("id").Find(&authors).Error
	return authors, err
}

func (r *PostgresCatalogRepository) CreateBook(ctx context.Context, book *models.Book) error {
	if err := conn(ctx, r.db).Omit("Author").Create(book).Error; err != nil {
		return err
	}
	return r.fillAuthorName(ctx, book)
}

func (r *PostgresCatalogRepository) GetBookByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := conn(ctx, r.db).Preload("Author").First(&book, id).Error; err != nil {
		return nil, err
	}
	if book.Author != nil {
		book.AuthorName = book.Author.Name
	}
	return &book, nil
}

func (r *PostgresCatalogRepository) GetBooks(ctx context.Context, filter models.BookFilter) ([]models.Book, error) {
	books := []models.Book{}
	tx := conn(ctx, r.db).Model(&models.Book{}).
		Joins("Author")
	if filter.PublicationYear != 0 {
		tx = tx.Where("books.publication_year = ?", filter.PublicationYear)
	}
	if filter.AuthorID != 0 {
		tx = tx.Where("books.author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		tx = tx.Where(`(LOWER(books.title) LIKE LOWER(?) ESCAPE '\' OR LOWER("Author"."name") LIKE LOWER(?) ESCAPE '\')`, p, p)
	}
	if err := tx.Order(bookOrderClause(filter.Ordering)).Order("books.id").Find(&books).Error; err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].Author != nil {
			books[i].AuthorName = books[i].Author.Name
		}
	}
	return books, nil
}

func (r *PostgresCatalogRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	err := conn(ctx, r.db).Model(book).
		Select("title", "publication_year", "author_id").
		Updates(map[string]any{
			"title":            book.Title,
			"publication_year": book.PublicationYear,
			"author_id":        book.AuthorID,
		}).Error
	if err != nil {
		return err
	}
	return r.fillAuthorName(ctx, book)
}

func (r *PostgresCatalogRepository) DeleteBook(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresCatalogRepository) fillAuthorName(ctx context.Context, book *models.Book) error {
	author, err := r.GetAuthorByID(ctx, book.AuthorID)
	if err != nil {
		return err
	}
	book.AuthorName = author.Name
	return nil
}

func bookOrderClause(ordering string) string {
	if !models.BookOrderings[ordering] {
		ordering = models.DefaultBookOrdering
	}
	if strings.HasPrefix(ordering, "-") {
		return "books." + ordering[1:] + " DESC"
	}
	return "books." + ordering + " ASC"
}

// LibraryRepository reads libraries with their books and librarian.
type LibraryRepository interface {
	GetLibraryByID(ctx context.Context, id uint) (*models.Library, error)
	GetBooksWithAuthors(ctx context.Context) ([]models.Book, error)
}

type postgresLibraryRepository struct {
	db *gorm.DB
}

func NewPostgresLibraryRepository(db *gorm.DB) LibraryRepository {
	return &postgresLibraryRepository{db: db}
}

func (r *postgresLibraryRepository) GetLibraryByID(ctx context.Context, id uint) (*models.Library, error) {
	var library models.Library
	err := conn(ctx, r.db).
		Preload("Books", func(tx *gorm.DB) *gorm.DB { return tx.Order("books.title") }).
		Preload("Books.Author").
		Preload("Librarian").
		First(&library, id).Error
	if err != nil {
		return nil, err
	}
	for i := range library.Books {
		if library.Books[i].Author != nil {
			library.Books[i].AuthorName = library.Books[i].Author.Name
		}
	}
	return &library, nil
}

func (r *postgresLibraryRepository) GetBooksWithAuthors(ctx context.Context) ([]models.Book, error) {
	books := []models.Book{}
	if err := conn(ctx, r.db).Preload("Author").Order("title").Find(&books).Error; err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].Author != nil {
			books[i].AuthorName = books[i].Author.Name
		}
	}
	return books, nil
}
