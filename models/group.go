package models

import (
	"yatube/db"

	"gorm.io/gorm"
)

type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Title       string `gorm:"type:varchar(200);not null"`
	Slug        string `gorm:"type:varchar(20);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

func GroupCreate(tx *gorm.DB, title, slug, description string) (g Group, err error) {
	g = Group{Title: title, Slug: slug, Description: description}
	err = tx.Create(&g).Error
	if db.IsDuplicateKey(err) {
		return Group{}, ErrDuplicate
	}
	return g, err
}

func GroupBySlug(tx *gorm.DB, slug string) (g Group, err error) {
	err = tx.First(&g, "slug = ?", slug).Error
	return g, notFound(err)
}

func GroupByID(tx *gorm.DB, id uint64) (g Group, err error) {
	err = tx.First(&g, id).Error
	return g, notFound(err)
}

func GroupList(tx *gorm.DB) (groups []Group, err error) {
	err = tx.Order("title").Find(&groups).Error
	return
}

// GroupDelete detaches the group's posts (they survive without a group) and
// removes the group itself
func GroupDelete(tx *gorm.DB, id uint64) error {
	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Post{}).Where("group_id = ?", id).Update("group_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&Group{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
