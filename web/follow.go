package web

import (
	"errors"
	"net/http"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

// ProfileFollow subscribes the user to the author. Following twice, or
// following yourself, changes nothing and still lands on the profile.
func (s *Site) ProfileFollow(c *gin.Context, user *models.User) {
	tx := s.DB.WithContext(c.Request.Context())
	username := c.Param("username")
	author, err := models.UserByUsername(tx, username)
	if err != nil {
		s.handleError(c, err)
		return
	}
	err = models.FollowUser(tx, user.ID, author.ID)
	if err != nil && !errors.Is(err, models.ErrSelfFollow) {
		s.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, profileURL(username))
}

func (s *Site) ProfileUnfollow(c *gin.Context, user *models.User) {
	tx := s.DB.WithContext(c.Request.Context())
	username := c.Param("username")
	author, err := models.UserByUsername(tx, username)
	if err != nil {
		s.handleError(c, err)
		return
	}
	if err = models.UnfollowUser(tx, user.ID, author.ID); err != nil {
		s.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, profileURL(username))
}
