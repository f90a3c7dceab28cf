package web

import (
	"yatube/feed"
	"yatube/models"
)

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined responses
	OKResponse          = Response{}
	NotFoundResponse    = Response{"not found"}
	ServerErrorResponse = Response{"server error"}
)

type PostInfo struct {
	ID      uint64 `json:"id"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	Created int64  `json:"created"` // unix milliseconds
	Author  string `json:"author"`
	Group   string `json:"group,omitempty"` // slug
	Image   string `json:"image,omitempty"` // URL
}

type PageInfo struct {
	Number      int        `json:"page"`
	NumPages    int        `json:"num_pages"`
	Count       int64      `json:"count"`
	HasNext     bool       `json:"has_next"`
	HasPrevious bool       `json:"has_previous"`
	Posts       []PostInfo `json:"posts"`
}

type GroupInfo struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type ProfileInfo struct {
	Username    string   `json:"username"`
	Name        string   `json:"name"`
	PostCount   int64    `json:"post_count"`
	Followers   int64    `json:"followers"`
	Following   int64    `json:"following"`
	IsFollowing bool     `json:"is_following"`
	Page        PageInfo `json:"page"`
}

func NewPostInfo(p *models.Post) PostInfo {
	info := PostInfo{
		ID:      p.ID,
		Title:   p.Title,
		Text:    p.Text,
		Created: p.CreatedAt,
		Author:  p.Author.Username,
	}
	if p.Group != nil {
		info.Group = p.Group.Slug
	}
	if p.Image != "" {
		info.Image = "/media/" + p.Image
	}
	return info
}

func NewPageInfo(page feed.Page) PageInfo {
	info := PageInfo{
		Number:      page.Number,
		NumPages:    page.NumPages,
		Count:       page.Count,
		HasNext:     page.HasNext(),
		HasPrevious: page.HasPrevious(),
		Posts:       make([]PostInfo, 0, len(page.Items)),
	}
	for i := range page.Items {
		info.Posts = append(info.Posts, NewPostInfo(&page.Items[i]))
	}
	return info
}

func NewGroupInfo(g *models.Group) GroupInfo {
	return GroupInfo{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}
