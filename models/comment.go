package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;index"`
	AuthorID  uint64 `gorm:"not null"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PostID    uint64 `gorm:"not null;index"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string `gorm:"type:text;not null"`
}

func (c Comment) Created() time.Time {
	return time.UnixMilli(c.CreatedAt)
}

func CommentCreate(tx *gorm.DB, authorID, postID uint64, text string) (c Comment, err error) {
	if text == "" {
		return Comment{}, NewValidationError("text", "This field is required.")
	}
	var count int64
	if err = tx.Model(&Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return
	}
	if count == 0 {
		return Comment{}, ErrNotFound
	}
	c = Comment{AuthorID: authorID, PostID: postID, Text: text}
	if err = tx.Create(&c).Error; err != nil {
		return Comment{}, err
	}
	return c, nil
}

// CommentsForPost returns the comments newest first
func CommentsForPost(tx *gorm.DB, postID uint64) (comments []Comment, err error) {
	err = tx.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return
}
