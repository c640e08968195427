package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// MongoCatalogRepository implements CatalogRepository for MongoDB. Numeric ids
// come from a counters collection so the API looks the same on both stores.
// Lookup misses are reported as gorm.ErrRecordNotFound for the same reason.
type MongoCatalogRepository struct {
	authors  *mongo.Collection
	books    *mongo.Collection
	counters *mongo.Collection
}

func NewMongoCatalogRepository(db *mongo.Database) *MongoCatalogRepository {
	return &MongoCatalogRepository{
		authors:  db.Collection("authors"),
		books:    db.Collection("books"),
		counters: db.Collection("counters"),
	}
}

func (r *MongoCatalogRepository) nextID(ctx context.Context, name string) (uint, error) {
	var out struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return 0, fmt.Errorf("allocate %s id: %w", name, err)
	}
	return uint(out.Seq), nil
}

func (r *MongoCatalogRepository) CreateAuthor(ctx context.Context, author *models.Author) error {
	id, err := r.nextID(ctx, "authors")
	if err != nil {
		return err
	}
	author.ID = id
	_, err = r.authors.InsertOne(ctx, author)
	return err
}

func (r *MongoCatalogRepository) GetAuthorByID(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	if err := r.authors.FindOne(ctx, bson.M{"_id": id}).Decode(&author); err != nil {
		return nil, notFound(err)
	}
	return &author, nil
}

func (r *MongoCatalogRepository) GetAuthors(ctx context.Context) ([]models.Author, error) {
	authors := []models.Author{}
	cursor, err := r.authors.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	if err = cursor.All(ctx, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *MongoCatalogRepository) CreateBook(ctx context.Context, book *models.Book) error {
	author, err := r.GetAuthorByID(ctx, book.AuthorID)
	if err != nil {
		return err
	}
	id, err := r.nextID(ctx, "books")
	if err != nil {
		return err
	}
	book.ID = id
	book.AuthorName = author.Name
	_, err = r.books.InsertOne(ctx, book)
	return err
}

func (r *MongoCatalogRepository) GetBookByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.books.FindOne(ctx, bson.M{"_id": id}).Decode(&book); err != nil {
		return nil, notFound(err)
	}
	return &book, nil
}

func (r *MongoCatalogRepository) GetBooks(ctx context.Context, filter models.BookFilter) ([]models.Book, error) {
	query := bson.M{}
	if filter.PublicationYear != 0 {
		query["publication_year"] = filter.PublicationYear
	}
	if filter.AuthorID != 0 {
		query["author_id"] = filter.AuthorID
	}
	if filter.Search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
		query["$or"] = []bson.M{{"title": pattern}, {"author_name": pattern}}
	}

	books := []models.Book{}
	cursor, err := r.books.Find(ctx, query, options.Find().SetSort(bookSort(filter.Ordering)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	if err = cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *MongoCatalogRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	author, err := r.GetAuthorByID(ctx, book.AuthorID)
	if err != nil {
		return err
	}
	book.AuthorName = author.Name
	res, err := r.books.UpdateOne(ctx, bson.M{"_id": book.ID}, bson.M{"$set": bson.M{
		"title":            book.Title,
		"publication_year": book.PublicationYear,
		"author_id":        book.AuthorID,
		"author_name":      book.AuthorName,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MongoCatalogRepository) DeleteBook(ctx context.Context, id uint) error {
	res, err := r.books.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func bookSort(ordering string) bson.D {
	if !models.BookOrderings[ordering] {
		ordering = models.DefaultBookOrdering
	}
	dir := 1
	if strings.HasPrefix(ordering, "-") {
		dir = -1
		ordering = ordering[1:]
	}
	return bson.D{{Key: ordering, Value: dir}, {Key: "_id", Value: 1}}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return gorm.ErrRecordNotFound
	}
	return err
}
