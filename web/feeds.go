package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"yatube/auth"
	"yatube/feed"
	"yatube/models"
	"yatube/utils"

	"github.com/gin-gonic/gin"
)

const indexCacheKey = "index_page"

func homeCacheKey(number int, asJSON bool) string {
	format := "html"
	if asJSON {
		format = "json"
	}
	return indexCacheKey + ":" + format + ":" + strconv.Itoa(number)
}

// Index shows all posts. The feed is served from the page cache, new posts
// show up once the cached copy expires.
func (s *Site) Index(c *gin.Context) {
	number := utils.PageNumber(c.Query("page"))
	asJSON := wantsJSON(c)
	body, err := s.Cache.GetOrSet(homeCacheKey(number, asJSON), s.IndexTTL, func() ([]byte, error) {
		page, err := s.Feed.Home(c.Request.Context(), feed.NewestFirst, number)
		if err != nil {
			return nil, err
		}
		if asJSON {
			return json.Marshal(NewPageInfo(page))
		}
		buf := bytes.Buffer{}
		err = s.Templates.ExecuteTemplate(&buf, "index_feed", gin.H{"page": page, "base": "/"})
		return buf.Bytes(), err
	})
	if err != nil {
		s.serverError(c, err)
		return
	}
	if asJSON {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}
	s.render(c, http.StatusOK, "index.tmpl", gin.H{"feed": template.HTML(body)})
}

func (s *Site) GroupPosts(c *gin.Context) {
	result, err := s.Feed.Group(c.Request.Context(), c.Param("slug"), feed.NewestFirst, utils.PageNumber(c.Query("page")))
	if err != nil {
		s.handleError(c, err)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"group": NewGroupInfo(&result.Group),
			"page":  NewPageInfo(result.Page),
		})
		return
	}
	s.render(c, http.StatusOK, "group.tmpl", gin.H{
		"title": result.Group.Title,
		"group": result.Group,
		"page":  result.Page,
		"base":  c.Request.URL.Path,
	})
}

func (s *Site) Profile(c *gin.Context) {
	var viewerID uint64
	if viewer := auth.CurrentUser(c, s.DB); viewer != nil {
		viewerID = viewer.ID
	}
	result, err := s.Feed.Profile(c.Request.Context(), c.Param("username"), viewerID, feed.NewestFirst, utils.PageNumber(c.Query("page")))
	if err != nil {
		s.handleError(c, err)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, ProfileInfo{
			Username:    result.Author.Username,
			Name:        result.Author.DisplayName(),
			PostCount:   result.PostCount,
			Followers:   result.Followers,
			Following:   result.Following,
			IsFollowing: result.IsFollowing,
			Page:        NewPageInfo(result.Page),
		})
		return
	}
	s.render(c, http.StatusOK, "profile.tmpl", gin.H{
		"title":        result.Author.DisplayName(),
		"author":       result.Author,
		"page":         result.Page,
		"post_count":   result.PostCount,
		"followers":    result.Followers,
		"following":    result.Following,
		"is_following": result.IsFollowing,
		"base":         c.Request.URL.Path,
	})
}

// FollowIndex shows the posts of the authors the user follows
func (s *Site) FollowIndex(c *gin.Context, user *models.User) {
	page, err := s.Feed.Personal(c.Request.Context(), user.ID, feed.NewestFirst, utils.PageNumber(c.Query("page")))
	if err != nil {
		s.serverError(c, err)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, NewPageInfo(page))
		return
	}
	s.render(c, http.StatusOK, "follow.tmpl", gin.H{
		"title": "Following",
		"page":  page,
		"base":  c.Request.URL.Path,
	})
}
