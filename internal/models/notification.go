package models

import "time"

const (
	VerbLikedPost     = "liked your post"
	VerbCommentedPost = "commented on your post"
	VerbFollowed      = "followed you"

	TargetPost    = "post"
	TargetComment = "comment"
	TargetUser    = "user"
)

// Notification is created as a side effect of another user's action.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index;not null"`
	ActorID     uint      `json:"actor_id" gorm:"index;not null"`
	Verb        string    `json:"verb" gorm:"size:50;not null"`
	TargetType  string    `json:"target_type" gorm:"size:20"`
	TargetID    uint      `json:"target_id"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func (n *Notification) OwnerID() uint { return n.RecipientID }

// NotificationView includes actor info
type NotificationView struct {
	Notification
	Actor UserCompact `json:"actor"`
}
