package web

import (
	"errors"
	"log"
	"net/http"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

// GroupCreate is a JSON endpoint for users holding the groups permission
func (s *Site) GroupCreate(c *gin.Context, user *models.User) {
	form := GroupForm{}
	if verr := bindForm(c, &form); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}
	group, err := models.GroupCreate(s.DB.WithContext(c.Request.Context()), form.Title, form.Slug, form.Description)
	if errors.Is(err, models.ErrDuplicate) {
		c.JSON(http.StatusBadRequest, Response{"slug already exists"})
		return
	}
	if err != nil {
		log.Printf("Cannot create group %s: %v", form.Slug, err)
		c.JSON(http.StatusInternalServerError, ServerErrorResponse)
		return
	}
	log.Printf("Group %s created by %s", group.Slug, user.Username)
	c.JSON(http.StatusOK, NewGroupInfo(&group))
}

// CacheClear drops every cached page, new posts become visible right away
func (s *Site) CacheClear(c *gin.Context, user *models.User) {
	log.Printf("Page cache (%d entries) cleared by %s", s.Cache.Len(), user.Username)
	s.Cache.Clear()
	c.JSON(http.StatusOK, OKResponse)
}
