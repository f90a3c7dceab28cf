package auth

import (
	"net/http"
	"net/url"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const LoginURL = "/auth/login/"

// User is authenticated and posseses the required permissions
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper class that adds auth checks + User pre-loading.
// Anonymous visitors are sent to the login page and brought back afterwards.
type Router struct {
	Base gin.IRoutes
	DB   *gorm.DB
}

// LoginRedirectURL returns the login page URL that leads back to next
func LoginRedirectURL(next string) string {
	return LoginURL + "?next=" + url.QueryEscape(next)
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, required []models.Permission) {
	user := CurrentUser(c, cr.DB)
	if user == nil {
		c.Redirect(http.StatusFound, LoginRedirectURL(c.Request.URL.RequestURI()))
		return
	}
	if !user.HasPermissions(required) {
		c.String(http.StatusForbidden, "access denied")
		return
	}
	handler(c, user)
}

func (cr *Router) POST(path string, handler HandlerFunc, required ...models.Permission) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc, required ...models.Permission) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

// Any registers the handler for both GET and POST (form pages)
func (cr *Router) Any(path string, handler HandlerFunc, required ...models.Permission) {
	cr.GET(path, handler, required...)
	cr.POST(path, handler, required...)
}
