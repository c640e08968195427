package models

// Author writes books. In the document store books carry the author name
// denormalised so search does not need a join.
type Author struct {
	ID   uint   `json:"id" gorm:"primaryKey" bson:"_id"`
	Name string `json:"name" gorm:"size:100;not null" bson:"name"`
}

type Book struct {
	ID              uint    `json:"id" gorm:"primaryKey" bson:"_id"`
	Title           string  `json:"title" gorm:"size:200;not null;index" bson:"title"`
	PublicationYear int     `json:"publication_year" gorm:"index" bson:"publication_year"`
	AuthorID        uint    `json:"author" gorm:"index;not null" bson:"author_id"`
	Author          *Author `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" bson:"-"`
	AuthorName      string  `json:"author_name" gorm:"-" bson:"author_name"`
}

type Library struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"size:100;not null"`
	Books     []Book     `json:"books" gorm:"many2many:library_books"`
	Librarian *Librarian `json:"librarian,omitempty" gorm:"foreignKey:LibraryID"`
}

type Librarian struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"size:100;not null"`
	LibraryID uint   `json:"library_id" gorm:"uniqueIndex;not null"`
}

// BookRequest is the create/update payload of the catalog API.
type BookRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	PublicationYear int    `json:"publication_year" validate:"required,notfuture"`
	AuthorID        uint   `json:"author" validate:"required"`
}

type AuthorRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// BookFilter drives catalog listing.
type BookFilter struct {
	PublicationYear int
	AuthorID        uint
	Search          string
	Ordering        string
}

var BookOrderings = map[string]bool{
	"title":             true,
	"-title":            true,
	"publication_year":  true,
	"-publication_year": true,
}

const DefaultBookOrdering = "title"
