package auth

import (
	"yatube/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	userIdKey      = "id"
	userContextKey = "user"
)

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginUser(user *models.User) error {
	s.Set(userIdKey, user.ID)
	return s.Save()
}

func (s *Session) LogoutUser() error {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}

func (s *Session) UserID() uint64 {
	id, _ := s.Get(userIdKey).(uint64)
	return id
}

// User loads the logged in user. ID is 0 for anonymous visitors.
func (s *Session) User(tx *gorm.DB) (user models.User) {
	id := s.UserID()
	if id == 0 {
		return
	}
	user, err := models.UserByID(tx, id)
	if err != nil {
		user.ID = 0
	}
	return
}

// CurrentUser returns the user for this request, loading it at most once.
// It returns nil for anonymous visitors.
func CurrentUser(c *gin.Context, tx *gorm.DB) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		return v.(*models.User)
	}
	var result *models.User
	user := LoadSession(c).User(tx.WithContext(c.Request.Context()))
	if user.ID != 0 {
		result = &user
	}
	c.Set(userContextKey, result)
	return result
}
