package handlers

import (
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// BookHandler serves the book catalog: public reads, authenticated writes.
type BookHandler struct {
	catalog *services.CatalogService
}

func NewBookHandler(catalog *services.CatalogService) *BookHandler {
	return &BookHandler{catalog: catalog}
}

// RegisterBookRoutes registers the catalog routes on the /api group.
func (h *BookHandler) RegisterBookRoutes(g *echo.Group) {
	g.GET("/books/", h.ListBooks)
	g.GET("/books/:id/", h.GetBook)
	g.POST("/books/create/", h.CreateBook)
	g.PUT("/books/:id/update/", h.UpdateBook)
	g.PATCH("/books/:id/update/", h.UpdateBook)
	g.DELETE("/books/:id/delete/", h.DeleteBook)

	g.GET("/authors/", h.ListAuthors)
	g.POST("/authors/", h.CreateAuthor)

	g.GET("/libraries/books/", h.ListLibraryBooks)
	g.GET("/libraries/:id/", h.GetLibrary)
}

// ListBooks supports ?publication_year=, ?author=, ?search= over title and
// author name, and ?ordering= on title or publication_year.
func (h *BookHandler) ListBooks(c echo.Context) error {
	year, err := queryUint(c, "publication_year")
	if err != nil {
		return err
	}
	authorID, err := queryUint(c, "author")
	if err != nil {
		return err
	}
	filter := models.BookFilter{
		PublicationYear: int(year),
		AuthorID:        authorID,
		Search:          c.QueryParam("search"),
		Ordering:        c.QueryParam("ordering"),
	}
	books, err := h.catalog.ListBooks(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	book, err := h.catalog.GetBook(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHandler) CreateBook(c echo.Context) error {
	var req models.BookRequest
	if err := services.CatalogPolicy.Check(caller(c), services.OpWrite); err != nil {
		return err
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	book, err := h.catalog.CreateBook(c.Request().Context(), caller(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) UpdateBook(c echo.Context) error {
	id, err := writeID(c, services.CatalogPolicy, "id")
	if err != nil {
		return err
	}
	var req models.BookRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	book, err := h.catalog.UpdateBook(c.Request().Context(), caller(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHandler) DeleteBook(c echo.Context) error {
	id, err := writeID(c, services.CatalogPolicy, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteBook(c.Request().Context(), caller(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookHandler) ListAuthors(c echo.Context) error {
	authors, err := h.catalog.ListAuthors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authors)
}

func (h *BookHandler) CreateAuthor(c echo.Context) error {
	var req models.AuthorRequest
	if err := services.CatalogPolicy.Check(caller(c), services.OpWrite); err != nil {
		return err
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	author, err := h.catalog.CreateAuthor(c.Request().Context(), caller(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, author)
}

func (h *BookHandler) GetLibrary(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	library, err := h.catalog.GetLibrary(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, library)
}

// ListLibraryBooks lists every book with its author, unfiltered.
func (h *BookHandler) ListLibraryBooks(c echo.Context) error {
	books, err := h.catalog.ListAllBooks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}
