package models

import "gorm.io/gorm"

func Init(tx *gorm.DB) error {
	return tx.AutoMigrate(
		&User{},
		&Grant{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	)
}
