package testutils

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"yatube/db"
	"yatube/models"

	"gorm.io/gorm"
)

var dbCounter atomic.Uint64

// NewDB opens a private in-memory SQLite database with all tables migrated.
// It is closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, dbCounter.Add(1))
	tx, err := db.OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err = models.Init(tx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := tx.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return tx
}

// NewUser creates a user whose password equals the username
func NewUser(t *testing.T, tx *gorm.DB, username string) models.User {
	t.Helper()
	u, err := models.UserCreate(tx, username, "", "", username)
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func NewGroup(t *testing.T, tx *gorm.DB, slug string) models.Group {
	t.Helper()
	g, err := models.GroupCreate(tx, "Group "+slug, slug, "about "+slug)
	if err != nil {
		t.Fatalf("create group %s: %v", slug, err)
	}
	return g
}

// NewPost inserts a post with an explicit creation time (milliseconds)
func NewPost(t *testing.T, tx *gorm.DB, author models.User, group *models.Group, text string, createdAt int64) models.Post {
	t.Helper()
	p := models.Post{
		Title:     "title_post",
		Text:      text,
		AuthorID:  author.ID,
		CreatedAt: createdAt,
	}
	if group != nil {
		p.GroupID = &group.ID
	}
	if err := tx.Create(&p).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}
