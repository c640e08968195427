package models

import "time"

// Post is owned by its author for its whole lifetime.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) OwnerID() uint { return p.AuthorID }

// PostView is the API representation of a post.
type PostView struct {
	Post
	Author     UserCompact `json:"author"`
	LikesCount int64       `json:"likes_count"`
}

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1"`
}

// UpdatePostRequest is used for both PUT and PATCH; nil fields are left untouched.
type UpdatePostRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// PostFilter drives post listing.
type PostFilter struct {
	Search   string
	AuthorID uint
}

// Page is an optional window over a result set. Limit 0 means no limit.
type Page struct {
	Limit  int
	Offset int
}
