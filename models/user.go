package models

import (
	"errors"
	"yatube/db"
	"yatube/utils"

	"gorm.io/gorm"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Username  string  `gorm:"type:varchar(150);uniqueIndex;not null"`
	FirstName string  `gorm:"type:varchar(150)"`
	LastName  string  `gorm:"type:varchar(150)"`
	Password  string  `gorm:"type:varchar(128)"`
	PassSalt  string  `gorm:"type:varchar(200)"`
	Grants    []Grant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

const saltSize = 60

var ErrUsernameTaken = errors.New("username is already taken")

func UserCreate(tx *gorm.DB, username, firstName, lastName, plainTextPassword string) (u User, err error) {
	u.Username = username
	u.FirstName = firstName
	u.LastName = lastName
	u.SetPassword(plainTextPassword)
	err = tx.Create(&u).Error
	if db.IsDuplicateKey(err) {
		return User{}, ErrUsernameTaken
	}
	return u, err
}

func (u *User) SetPassword(plainTextPassword string) {
	u.PassSalt = utils.RandSalt(saltSize)
	u.Password = utils.Sha512String(plainTextPassword + u.PassSalt)
}

func UserLogin(tx *gorm.DB, username, plainTextPassword string) (u User, success bool) {
	result := tx.Preload("Grants").First(&u, "username = ?", username)
	if result.Error != nil {
		return User{}, false
	}
	if u.Password != utils.Sha512String(plainTextPassword+u.PassSalt) {
		return User{}, false
	}
	return u, true
}

func UserByID(tx *gorm.DB, id uint64) (u User, err error) {
	err = tx.Preload("Grants").First(&u, id).Error
	return u, notFound(err)
}

func UserByUsername(tx *gorm.DB, username string) (u User, err error) {
	err = tx.First(&u, "username = ?", username).Error
	return u, notFound(err)
}

// DisplayName is the full name when known, the username otherwise
func (u User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	if u.FirstName == "" {
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) HasPermission(required Permission) bool {
	for _, grant := range u.Grants {
		if grant.Permission == required {
			return true
		}
	}
	return false
}

func (u *User) HasPermissions(required []Permission) bool {
	for _, permission := range required {
		if !u.HasPermission(permission) {
			return false
		}
	}
	return true
}
