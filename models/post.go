package models

import (
	"time"

	"gorm.io/gorm"
)

const defaultPostTitle = "title_post"

type Post struct {
	ID        uint64  `gorm:"primaryKey"`
	CreatedAt int64   `gorm:"autoCreateTime:milli;index"` // set once, edits leave it untouched
	UpdatedAt int64   `gorm:"autoUpdateTime:milli"`
	Title     string  `gorm:"type:varchar(200);not null"`
	Text      string  `gorm:"type:text;not null"`
	AuthorID  uint64  `gorm:"not null;index"`
	Author    User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint64 `gorm:"index"` // can be null
	Group     *Group  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Image     string  `gorm:"type:varchar(300)"` // storage path, empty if none
}

// PostFields are the user editable parts of a Post
type PostFields struct {
	Title   string
	Text    string
	GroupID *uint64
	Image   string // new storage path, empty keeps the current image
}

func (p Post) Created() time.Time {
	return time.UnixMilli(p.CreatedAt)
}

// Excerpt returns the first 15 characters of the text
func (p Post) Excerpt() string {
	r := []rune(p.Text)
	if len(r) > 15 {
		return string(r[:15])
	}
	return p.Text
}

func (f *PostFields) apply(p *Post) {
	p.Title = f.Title
	if p.Title == "" {
		p.Title = defaultPostTitle
	}
	p.Text = f.Text
	p.GroupID = f.GroupID
	if f.Image != "" {
		p.Image = f.Image
	}
}

func PostCreate(tx *gorm.DB, authorID uint64, fields PostFields) (p Post, err error) {
	if fields.Text == "" {
		return Post{}, NewValidationError("text", "This field is required.")
	}
	p.AuthorID = authorID
	fields.apply(&p)
	if err = tx.Create(&p).Error; err != nil {
		return Post{}, err
	}
	return p, nil
}

func PostByID(tx *gorm.DB, id uint64) (p Post, err error) {
	err = tx.Preload("Author").Preload("Group").First(&p, id).Error
	return p, notFound(err)
}

// PostByAuthor loads a post only when it was written by username
func PostByAuthor(tx *gorm.DB, username string, id uint64) (p Post, err error) {
	err = tx.
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ? AND users.username = ?", id, username).
		Preload("Author").
		Preload("Group").
		First(&p).Error
	return p, notFound(err)
}

// PostUpdate changes the post in place. Only the author is allowed to do so,
// anybody else gets ErrForbidden and the post is left unchanged
func PostUpdate(tx *gorm.DB, actorID, postID uint64, fields PostFields) (p Post, err error) {
	if p, err = PostByID(tx, postID); err != nil {
		return
	}
	if p.AuthorID != actorID {
		return p, ErrForbidden
	}
	if fields.Text == "" {
		return p, NewValidationError("text", "This field is required.")
	}
	fields.apply(&p)
	err = tx.Model(&Post{ID: p.ID}).Updates(map[string]interface{}{
		"title":    p.Title,
		"text":     p.Text,
		"group_id": p.GroupID,
		"image":    p.Image,
	}).Error
	if err != nil {
		return
	}
	// Group association is stale after changing GroupID
	return PostByID(tx, postID)
}

// PostDelete removes the post with all of its comments
func PostDelete(tx *gorm.DB, actorID, postID uint64) (p Post, err error) {
	if p, err = PostByID(tx, postID); err != nil {
		return
	}
	if p.AuthorID != actorID {
		return p, ErrForbidden
	}
	err = tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Post{}, postID).Error
	})
	return
}

func PostCountByAuthor(tx *gorm.DB, authorID uint64) (count int64, err error) {
	err = tx.Model(&Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return
}
