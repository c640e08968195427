package repositories

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPosts(ctx context.Context, filter models.PostFilter, page models.Page) ([]models.Post, error)
	// GetPostsByAuthors returns the posts of the given authors, newest first
	// with ties broken by id.
	GetPostsByAuthors(ctx context.Context, authorIDs []uint, page models.Page) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uint) error
}

// PostgresPostRepository implements PostRepository on gorm
type PostgresPostRepository struct {
	db *gorm.DB
}

func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return conn(ctx, r.db).Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := conn(ctx, r.db).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetPosts(ctx context.Context, filter models.PostFilter, page models.Page) ([]models.Post, error) {
	posts := []models.Post{}
	tx := conn(ctx, r.db).Model(&models.Post{})
	if filter.AuthorID != 0 {
		tx = tx.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		tx = tx.Where(`(LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(content) LIKE LOWER(?) ESCAPE '\')`, p, p)
	}
	err := paginate(tx, page.Limit, page.Offset).
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) GetPostsByAuthors(ctx context.Context, authorIDs []uint, page models.Page) ([]models.Post, error) {
	posts := []models.Post{}
	if len(authorIDs) == 0 {
		return posts, nil
	}
	err := paginate(conn(ctx, r.db).Where("author_id IN ?", authorIDs), page.Limit, page.Offset).
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	return posts, err
}

// UpdatePost saves title and content only; the author is never rewritten.
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	return conn(ctx, r.db).Model(post).Select("title", "content", "updated_at").Updates(post).Error
}

func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
