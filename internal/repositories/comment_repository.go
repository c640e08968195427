package repositories

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	// GetComments lists comments newest first; postID 0 lists all posts.
	GetComments(ctx context.Context, postID uint, page models.Page) ([]models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error
}

// PostgresCommentRepository implements CommentRepository on gorm
type PostgresCommentRepository struct {
	db *gorm.DB
}

func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return conn(ctx, r.db).Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := conn(ctx, r.db).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *PostgresCommentRepository) GetComments(ctx context.Context, postID uint, page models.Page) ([]models.Comment, error) {
	comments := []models.Comment{}
	tx := conn(ctx, r.db).Model(&models.Comment{})
	if postID != 0 {
		tx = tx.Where("post_id = ?", postID)
	}
	err := paginate(tx, page.Limit, page.Offset).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	return conn(ctx, r.db).Model(comment).Select("content", "updated_at").Updates(comment).Error
}

func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
