// Package feed assembles the paginated post timelines: everything, a group,
// a single author and the posts of the authors somebody follows.
package feed

import (
	"context"
	"yatube/models"
	"yatube/pagination"

	"gorm.io/gorm"
)

const DefaultPageSize = 10

type Page = pagination.Page[models.Post]

type Assembler struct {
	db       *gorm.DB
	pageSize int
}

func New(db *gorm.DB, pageSize int) *Assembler {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Assembler{db: db, pageSize: pageSize}
}

type GroupFeed struct {
	Group models.Group
	Page  Page
}

type ProfileFeed struct {
	Author      models.User
	Page        Page
	PostCount   int64
	Followers   int64 // users following Author
	Following   int64 // users Author follows
	IsFollowing bool  // the viewer follows Author
}

func (a *Assembler) posts(ctx context.Context, order Order) *gorm.DB {
	return order.apply(a.db.WithContext(ctx).Model(&models.Post{}))
}

func (a *Assembler) paginate(query *gorm.DB, number int) (Page, error) {
	return pagination.Paginate[models.Post](query, number, a.pageSize, "Author", "Group")
}

// Home lists all posts
func (a *Assembler) Home(ctx context.Context, order Order, number int) (Page, error) {
	return a.paginate(a.posts(ctx, order), number)
}

// Group lists the posts of the group identified by slug
func (a *Assembler) Group(ctx context.Context, slug string, order Order, number int) (result GroupFeed, err error) {
	if result.Group, err = models.GroupBySlug(a.db.WithContext(ctx), slug); err != nil {
		return
	}
	result.Page, err = a.paginate(a.posts(ctx, order).Where("posts.group_id = ?", result.Group.ID), number)
	return
}

// Profile lists the posts written by username together with the follow
// statistics of the author. viewerID is 0 for anonymous visitors.
func (a *Assembler) Profile(ctx context.Context, username string, viewerID uint64, order Order, number int) (result ProfileFeed, err error) {
	tx := a.db.WithContext(ctx)
	if result.Author, err = models.UserByUsername(tx, username); err != nil {
		return
	}
	result.Page, err = a.paginate(a.posts(ctx, order).Where("posts.author_id = ?", result.Author.ID), number)
	if err != nil {
		return
	}
	result.PostCount = result.Page.Count
	if result.Followers, err = models.FollowerCount(tx, result.Author.ID); err != nil {
		return
	}
	if result.Following, err = models.FollowingCount(tx, result.Author.ID); err != nil {
		return
	}
	if viewerID != 0 {
		result.IsFollowing, err = models.IsFollowing(tx, viewerID, result.Author.ID)
	}
	return
}

// Personal lists the posts of everybody viewerID follows. Following nobody
// simply yields an empty page.
func (a *Assembler) Personal(ctx context.Context, viewerID uint64, order Order, number int) (Page, error) {
	followees := models.FolloweesOf(a.db.WithContext(ctx), viewerID)
	return a.paginate(a.posts(ctx, order).Where("posts.author_id IN (?)", followees), number)
}
