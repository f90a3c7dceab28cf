package models

import (
	"yatube/db"

	"gorm.io/gorm"
)

type Permission uint8

const (
	PermissionNone   Permission = 0
	PermissionAdmin  Permission = 1 // cache control, user management
	PermissionGroups Permission = 2 // can create groups
)

type Grant struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	UserID     uint64     `gorm:"index:user_permission,unique"`
	User       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Permission Permission `gorm:"index:user_permission,unique"`
}

// GrantPermission is a no-op when the user already has the permission
func GrantPermission(tx *gorm.DB, userID uint64, permission Permission) error {
	err := tx.Create(&Grant{UserID: userID, Permission: permission}).Error
	if db.IsDuplicateKey(err) {
		return nil
	}
	return err
}
